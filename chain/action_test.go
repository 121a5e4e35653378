package chain

import (
	"context"
	"strings"
	"testing"
)

func actionTurnContext(t *testing.T, responses ...string) (*TurnContext, *fakeClient) {
	t.Helper()
	client := newFakeClient(t, responses...)
	g := NewGoal("order", "to take an order", "Hi!")
	conv := NewConversation(g, client)
	return conv.turnContext(context.Background(), g), client
}

func TestActionRunRendersTemplate(t *testing.T) {
	a := NewAction(
		func(data map[string]any) (map[string]any, error) {
			data["order_number"] = "ORD42"
			return data, nil
		},
		WithResponseTemplate("Order {{.order_number}} is confirmed."),
	)

	tc, client := actionTurnContext(t)
	res, err := a.run(tc, map[string]any{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.rendered || res.content != "Order ORD42 is confirmed." {
		t.Errorf("unexpected rendered response: %+v", res)
	}
	if res.data["order_number"] != "ORD42" {
		t.Errorf("result data should carry the function's output, got %v", res.data)
	}
	if len(client.requests) != 0 {
		t.Error("run without rephrase must not call the model")
	}
}

func TestActionRunWithoutTemplate(t *testing.T) {
	a := NewAction(func(data map[string]any) (map[string]any, error) {
		return map[string]any{"ok": true}, nil
	})

	tc, _ := actionTurnContext(t)
	res, err := a.run(tc, map[string]any{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.rendered {
		t.Error("no template means no rendered content")
	}
	if res.data["ok"] != true {
		t.Errorf("unexpected result data %v", res.data)
	}
}

func TestActionRunRephrasesThroughModel(t *testing.T) {
	a := NewAction(
		func(data map[string]any) (map[string]any, error) { return data, nil },
		WithResponseTemplate("Your order is confirmed."),
		WithRephrase(),
	)

	tc, client := actionTurnContext(t, "Great news, your order is all set!")
	res, err := a.run(tc, map[string]any{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.content != "Great news, your order is all set!" {
		t.Errorf("unexpected rephrased content %q", res.content)
	}
	if len(client.requests) != 1 {
		t.Fatalf("expected 1 rephrase call, got %d", len(client.requests))
	}
	if !strings.Contains(client.requests[0].Messages[0].Content, "Your order is confirmed.") {
		t.Error("rephrase prompt should embed the rendered response")
	}
}

func TestActionConditionsResolveNextGoal(t *testing.T) {
	fallback := NewGoal("fallback", "d", "o")
	special := NewGoal("special", "d", "o")

	a := NewAction(func(data map[string]any) (map[string]any, error) { return data, nil })
	a.SetNextGoal(fallback)
	a.AddCondition(func(result map[string]any) bool {
		return result["special"] == true
	}, special)

	tc, _ := actionTurnContext(t)

	res, err := a.run(tc, map[string]any{"special": true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.next != special {
		t.Errorf("matching condition should pick its target, got %v", res.next)
	}

	// The definition itself is never mutated, so a second run with
	// different data resolves independently.
	res, err = a.run(tc, map[string]any{"special": false})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.next != fallback {
		t.Errorf("non-matching condition should fall back to the static next goal, got %v", res.next)
	}
	if a.NextGoal() != fallback {
		t.Error("running must not rewrite the action definition")
	}
}

func TestActionNilResultTreatedAsEmpty(t *testing.T) {
	a := NewAction(func(data map[string]any) (map[string]any, error) {
		return nil, nil
	})
	tc, _ := actionTurnContext(t)
	res, err := a.run(tc, map[string]any{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.data == nil || len(res.data) != 0 {
		t.Errorf("nil function result should become an empty mapping, got %v", res.data)
	}
}
