package chain

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	client := newFakeClient(t,
		"How can I help with your order?",
		`{"quantity": 3}`,
		"Three it is. Can you confirm?",
	)
	conv := NewConversation(orderGoal(), client)
	conv.Turn(ctx, "")
	conv.Turn(ctx, "3 widgets please")

	snap := conv.Snapshot()
	if snap.ID != conv.ID() {
		t.Errorf("snapshot ID should match conversation ID")
	}
	if snap.ActiveGoal != "product_order" {
		t.Errorf("unexpected active goal %q", snap.ActiveGoal)
	}
	if snap.UpdatedAt.IsZero() {
		t.Error("snapshot should carry a timestamp")
	}

	// Restore into a fresh conversation over the same graph, via a JSON
	// round trip as a store would do it.
	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var loaded Snapshot
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}

	client2 := newFakeClient(t,
		`{"quantity": 3}`,
		"Confirmed, your order is on its way.",
	)
	conv2 := NewConversation(orderGoal(), client2)
	if err := conv2.Restore(&loaded); err != nil {
		t.Fatalf("restore: %v", err)
	}

	if conv2.ID() != conv.ID() {
		t.Errorf("restored ID mismatch: %s vs %s", conv2.ID(), conv.ID())
	}
	if conv2.ActiveGoal().Label() != "product_order" {
		t.Errorf("restored active goal %q", conv2.ActiveGoal().Label())
	}
	if got := conv2.Data()["quantity"]; got != float64(3) {
		t.Errorf("restored shared data mismatch: %v", got)
	}
	if len(conv2.Transcript(nil)) != len(conv.Transcript(nil)) {
		t.Errorf("restored transcript length mismatch")
	}

	// The restored conversation resumes mid-flight: no opener, no start
	// hook, straight into a continuation turn.
	res := conv2.Turn(ctx, "yes, confirm")
	if res.Type != ResultMessage {
		t.Fatalf("expected message result after restore, got %s", res.Type)
	}
	// Only the continuation call should have happened, after the
	// extraction.
	if client2.requests[0].JSONMode != true {
		t.Error("first call after restore should be the per-turn extraction")
	}
}

func TestRestoreRejectsUnknownGoals(t *testing.T) {
	client := newFakeClient(t)
	conv := NewConversation(orderGoal(), client)

	err := conv.Restore(&Snapshot{ID: "x", ActiveGoal: "no_such_goal"})
	if !errors.Is(err, ErrUnknownGoal) {
		t.Fatalf("expected ErrUnknownGoal for active goal, got %v", err)
	}

	err = conv.Restore(&Snapshot{
		ID:         "x",
		ActiveGoal: "product_order",
		Sessions:   map[string]GoalSnapshot{"ghost": {}},
	})
	if !errors.Is(err, ErrUnknownGoal) {
		t.Fatalf("expected ErrUnknownGoal for session label, got %v", err)
	}
}

func TestSnapshotIsolatedFromLiveState(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient(t,
		"How can I help with your order?",
		`{"quantity": 3}`,
		"Got it.",
	)
	conv := NewConversation(orderGoal(), client)
	conv.Turn(ctx, "")

	snap := conv.Snapshot()
	before := len(snap.Sessions["product_order"].Messages)

	conv.Turn(ctx, "3 widgets")
	if len(snap.Sessions["product_order"].Messages) != before {
		t.Error("snapshot must not alias the live transcript")
	}
}
