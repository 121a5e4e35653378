package chain

import (
	"context"
	"testing"

	"github.com/smallnest/goalchain/llm"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestNewGoalDefaults(t *testing.T) {
	g := NewGoal("order", "to take an order", "Hi!")

	if g.Label() != "order" {
		t.Errorf("unexpected label %q", g.Label())
	}
	if g.Description() != "to take an order" {
		t.Errorf("unexpected description %q", g.Description())
	}
	if g.Opener() != "Hi!" {
		t.Errorf("unexpected opener %q", g.Opener())
	}
	if !g.confirm {
		t.Error("confirmation should default to on")
	}
	if g.model != DefaultModel || g.jsonModel != DefaultModel {
		t.Errorf("models should default to %s, got %s/%s", DefaultModel, g.model, g.jsonModel)
	}
}

func TestGoalBuilderPanics(t *testing.T) {
	mustPanic(t, "empty label", func() {
		NewGoal("", "desc", "opener")
	})
	mustPanic(t, "empty field name", func() {
		NewGoal("g", "d", "o").AddField("", Field{})
	})
	mustPanic(t, "duplicate field", func() {
		NewGoal("g", "d", "o").
			AddField("quantity", Field{}).
			AddField("quantity", Field{})
	})
	mustPanic(t, "nil connection target", func() {
		NewGoal("g", "d", "o").AddConnection(nil, "intent")
	})
	mustPanic(t, "nil condition predicate", func() {
		NewGoal("g", "d", "o").AddCondition(nil, NewGoal("t", "d", "o"))
	})
	mustPanic(t, "nil action fn", func() {
		NewAction(nil)
	})
	mustPanic(t, "bad action template", func() {
		NewAction(func(data map[string]any) (map[string]any, error) { return data, nil },
			WithResponseTemplate("{{.unclosed"))
	})
	nop := llm.CompleteFunc(func(_ context.Context, _ llm.Request) (string, error) {
		return "", nil
	})
	mustPanic(t, "nil conversation start", func() {
		NewConversation(nil, nop)
	})
	mustPanic(t, "nil conversation client", func() {
		NewConversation(NewGoal("g", "d", "o"), nil)
	})
}

func TestFieldNamesPreserveDeclarationOrder(t *testing.T) {
	g := NewGoal("g", "d", "o").
		AddField("product_name", Field{}).
		AddField("customer_email", Field{}).
		AddField("quantity", Field{})

	names := g.FieldNames()
	want := []string{"product_name", "customer_email", "quantity"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i, n := range names {
		if n != want[i] {
			t.Errorf("name %d: expected %q, got %q", i, want[i], n)
		}
	}
}

func TestEdgeDefaults(t *testing.T) {
	target := NewGoal("t", "d", "o")
	g := NewGoal("g", "d", "o").
		AddConnection(target, "to switch").
		AddCondition(func(data map[string]any) bool { return false }, target,
			HandOver(false), KeepMessages(false), SilentText("switching"))

	cn := g.Connections()[0]
	if !cn.HandOver || !cn.KeepMessages {
		t.Errorf("connection should default to hand-over and keep-messages, got %+v", cn)
	}

	cond := g.Conditions()[0]
	if cond.HandOver || cond.KeepMessages {
		t.Errorf("options should override edge defaults, got %+v", cond)
	}
	if cond.SilentText != "switching" {
		t.Errorf("unexpected silent text %q", cond.SilentText)
	}
}

func TestConnectionsReturnsCopy(t *testing.T) {
	target := NewGoal("t", "d", "o")
	g := NewGoal("g", "d", "o").AddConnection(target, "to switch")

	cns := g.Connections()
	cns[0].UserIntent = "mutated"
	if g.Connections()[0].UserIntent != "to switch" {
		t.Error("Connections must return a copy")
	}
}

func TestIndexGoalsWalksWholeGraph(t *testing.T) {
	a := NewGoal("a", "d", "o")
	b := NewGoal("b", "d", "o")
	c := NewGoal("c", "d", "o")
	d := NewGoal("d", "d", "o")
	e := NewGoal("e", "d", "o")

	a.AddConnection(b, "to b")
	b.AddCondition(func(data map[string]any) bool { return false }, c)
	action := NewAction(func(data map[string]any) (map[string]any, error) { return data, nil })
	action.SetNextGoal(d)
	action.AddCondition(func(result map[string]any) bool { return false }, e)
	c.SetNextAction(action)
	// Cycle back to the root must not loop the walk.
	d.AddConnection(a, "back to a")

	goals := indexGoals(a)
	for _, label := range []string{"a", "b", "c", "d", "e"} {
		if _, ok := goals[label]; !ok {
			t.Errorf("goal %s missing from index", label)
		}
	}
	if len(goals) != 5 {
		t.Errorf("expected 5 goals, got %d", len(goals))
	}
}
