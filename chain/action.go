package chain

import (
	"github.com/smallnest/goalchain/prompt"
)

// ActionFunc is the deterministic side-effecting step of an Action. It
// receives the shared data mapping and returns the result mapping the
// action's response template and conditions are evaluated against. The
// returned mapping is merged back into shared data.
type ActionFunc func(data map[string]any) (map[string]any, error)

// ActionCondition is a data-predicate edge owned by an action, evaluated
// against the action function's result (not shared data).
type ActionCondition struct {
	When   func(result map[string]any) bool
	Target *Goal
}

// Action is a deterministic post-goal step: run a function over the
// collected data, optionally render (and rephrase) a response, and pick
// the next goal from its own condition list. Like Goal, an Action is
// immutable after building; running it never mutates the definition.
type Action struct {
	fn              ActionFunc
	responseTpl     *prompt.Template
	rephrase        bool
	conversationEnd bool
	nextGoal        *Goal
	conditions      []ActionCondition
	rephraseTpl     *prompt.Template
}

// ActionOption configures an Action at construction time.
type ActionOption func(*Action)

// WithResponseTemplate sets the response template rendered against the
// action function's result. Template variables are the result's keys.
// The text is parsed immediately; invalid template text panics, as a
// graph-definition error.
func WithResponseTemplate(text string) ActionOption {
	return func(a *Action) {
		a.responseTpl = prompt.MustNew("action_response", text)
	}
}

// WithRephrase passes the rendered response through a model rephrase
// call, using the owning goal's transcript for context.
func WithRephrase() ActionOption {
	return func(a *Action) { a.rephrase = true }
}

// WithEndConversation marks the action as conversation-ending: the
// orchestrator returns a terminal "end" result after it runs.
func WithEndConversation() ActionOption {
	return func(a *Action) { a.conversationEnd = true }
}

// WithActionRephraseTemplate overrides the rephrase prompt template used
// when WithRephrase is set.
func WithActionRephraseTemplate(t *prompt.Template) ActionOption {
	return func(a *Action) { a.rephraseTpl = t }
}

// NewAction creates an action around the given function.
func NewAction(fn ActionFunc, opts ...ActionOption) *Action {
	if fn == nil {
		panic("chain: action function must not be nil")
	}
	a := &Action{
		fn:          fn,
		rephraseTpl: prompt.DefaultActionRephrase,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddCondition declares a condition selecting the next goal from the
// action function's result. Declaration order, first match wins.
func (a *Action) AddCondition(when func(result map[string]any) bool, target *Goal) *Action {
	if when == nil || target == nil {
		panic("chain: action condition predicate and target must not be nil")
	}
	a.conditions = append(a.conditions, ActionCondition{When: when, Target: target})
	return a
}

// SetNextGoal sets the goal control passes to unconditionally after the
// action, unless one of the action's conditions matches first.
func (a *Action) SetNextGoal(g *Goal) *Action {
	a.nextGoal = g
	return a
}

// ConversationEnd reports whether the action ends the conversation.
func (a *Action) ConversationEnd() bool { return a.conversationEnd }

// NextGoal returns the statically declared next goal, if any.
func (a *Action) NextGoal() *Goal { return a.nextGoal }

// Conditions returns a copy of the action's conditions.
func (a *Action) Conditions() []ActionCondition {
	out := make([]ActionCondition, len(a.conditions))
	copy(out, a.conditions)
	return out
}

// actionResult is what one action run produced: the rendered (possibly
// rephrased) response, the raw function result, and the resolved next
// goal. The next goal is returned rather than written back onto the
// Action, so concurrent conversations never race on the definition.
type actionResult struct {
	content  string
	rendered bool
	data     map[string]any
	next     *Goal
}

// run executes the action within the given turn context. tc belongs to
// the goal that owns the action; its transcript provides the rephrase
// context.
func (a *Action) run(tc *TurnContext, data map[string]any) (*actionResult, error) {
	result, err := a.fn(data)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = map[string]any{}
	}

	res := &actionResult{data: result, next: a.nextGoal}
	for _, cond := range a.conditions {
		if cond.When(result) {
			res.next = cond.Target
			break
		}
	}

	if a.responseTpl == nil {
		return res, nil
	}

	text, err := a.responseTpl.Render(result)
	if err != nil {
		return nil, err
	}
	if a.rephrase {
		text, err = tc.rephraseWith(a.rephraseTpl, map[string]any{
			"response":        text,
			"goal":            tc.goal.description,
			"message_history": copyMessages(tc.sess.messages),
		})
		if err != nil {
			return nil, err
		}
	}
	res.content = text
	res.rendered = true
	return res, nil
}
