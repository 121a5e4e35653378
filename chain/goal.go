package chain

import (
	"fmt"

	"github.com/smallnest/goalchain/prompt"
)

// CompletedToken is the token the model is instructed to emit, wrapped in
// sentinel delimiters, to signal that data gathering is complete.
//
// Detection is a case-insensitive substring search over the raw
// completion text, which is inherently ambiguous: a message that quotes
// "<completed>" as ordinary content triggers it all the same. A stricter
// structured signal channel would remove the ambiguity at the cost of a
// different model contract; the substring protocol is kept as is.
const CompletedToken = "completed"

// DefaultModel is the completion model used by goals that don't override it.
const DefaultModel = "gpt-4o"

// StartHook runs exactly once per goal activation, before the goal's
// first utterance. It is the place for out-of-band side effects such as
// dispatching a verification code; expected state can be stashed in the
// turn context's session scratch values.
type StartHook func(tc *TurnContext) error

// CompleteHook runs when all extracted fields validate. The default
// behavior (nil hook) returns the data mapping unchanged; a custom hook
// may instead return a message or handoff outcome, e.g. to reject a wrong
// verification code and keep the goal active.
type CompleteHook func(tc *TurnContext, data map[string]any) (*Outcome, error)

// Goal is the static definition of a conversational objective: the fixed
// set of fields to gather, the outgoing edges, the prompts and the model
// configuration. A Goal is built once at graph-definition time and is
// immutable afterwards; all per-conversation state (transcript, started
// flag, hand-over flag) lives in the Conversation's activation records,
// so one goal graph safely serves many concurrent conversations.
type Goal struct {
	label       string
	description string
	opener      string
	outOfScope  string
	confirm     bool

	model     string
	jsonModel string
	params    map[string]any

	fields      []fieldDecl
	fieldNames  map[string]struct{}
	connections []Connection
	conditions  []Condition
	nextAction  *Action

	onStart    StartHook
	onComplete CompleteHook

	goalTpl       *prompt.Template
	extractionTpl *prompt.Template
	validationTpl *prompt.Template
	rephraseTpl   *prompt.Template
	closingTpl    *prompt.Template
	errorText     string
}

// GoalOption configures a Goal at construction time.
type GoalOption func(*Goal)

// WithOutOfScope sets the fallback instruction for requests outside the
// goal's scope. Connected-goal intents are only offered to the model when
// an out-of-scope text is set, matching the goal prompt's structure.
func WithOutOfScope(text string) GoalOption {
	return func(g *Goal) { g.outOfScope = text }
}

// WithConfirm controls whether the model asks for a confirmation before
// signalling completion. Defaults to true.
func WithConfirm(confirm bool) GoalOption {
	return func(g *Goal) { g.confirm = confirm }
}

// WithModel sets the model used for free-text continuation calls.
func WithModel(model string) GoalOption {
	return func(g *Goal) { g.model = model }
}

// WithJSONModel sets the model used for structured extraction calls.
func WithJSONModel(model string) GoalOption {
	return func(g *Goal) { g.jsonModel = model }
}

// WithParams sets extra provider parameters passed on every completion
// call of this goal (temperature, top_p, max_tokens).
func WithParams(params map[string]any) GoalOption {
	return func(g *Goal) {
		g.params = make(map[string]any, len(params))
		for k, v := range params {
			g.params[k] = v
		}
	}
}

// WithGoalTemplate overrides the continuation prompt template.
func WithGoalTemplate(t *prompt.Template) GoalOption {
	return func(g *Goal) { g.goalTpl = t }
}

// WithExtractionTemplate overrides the structured-extraction prompt template.
func WithExtractionTemplate(t *prompt.Template) GoalOption {
	return func(g *Goal) { g.extractionTpl = t }
}

// WithValidationTemplate overrides the remediation prompt template.
func WithValidationTemplate(t *prompt.Template) GoalOption {
	return func(g *Goal) { g.validationTpl = t }
}

// WithRephraseTemplate overrides the rephrase prompt template.
func WithRephraseTemplate(t *prompt.Template) GoalOption {
	return func(g *Goal) { g.rephraseTpl = t }
}

// WithClosingRephraseTemplate overrides the closing rephrase template
// used for the final courtesy message at conversation end.
func WithClosingRephraseTemplate(t *prompt.Template) GoalOption {
	return func(g *Goal) { g.closingTpl = t }
}

// WithErrorText overrides the fixed apology used when a structured
// extraction cannot be parsed.
func WithErrorText(text string) GoalOption {
	return func(g *Goal) { g.errorText = text }
}

// OnStart sets the goal's activation hook.
func OnStart(hook StartHook) GoalOption {
	return func(g *Goal) { g.onStart = hook }
}

// OnComplete sets the goal's completion hook.
func OnComplete(hook CompleteHook) GoalOption {
	return func(g *Goal) { g.onComplete = hook }
}

// NewGoal creates a goal definition. The label doubles as the handoff
// sentinel token, the description is the "Goal:" line of every prompt,
// and the opener is the goal's first utterance when it becomes active.
func NewGoal(label, description, opener string, opts ...GoalOption) *Goal {
	if label == "" {
		panic("chain: goal label must not be empty")
	}
	g := &Goal{
		label:       label,
		description: description,
		opener:      opener,
		confirm:     true,
		model:       DefaultModel,
		jsonModel:   DefaultModel,

		fieldNames:    make(map[string]struct{}),
		goalTpl:       prompt.DefaultGoal,
		extractionTpl: prompt.DefaultExtraction,
		validationTpl: prompt.DefaultValidation,
		rephraseTpl:   prompt.DefaultRephrase,
		closingTpl:    prompt.DefaultClosingRephrase,
		errorText:     prompt.DefaultErrorText,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddField declares a field to extract under the given name. Field names
// must be unique within a goal; duplicates are a graph-definition error
// and panic, like any other misuse of the builder API.
func (g *Goal) AddField(name string, field Field) *Goal {
	if name == "" {
		panic(fmt.Sprintf("chain: goal %q: field name must not be empty", g.label))
	}
	if _, dup := g.fieldNames[name]; dup {
		panic(fmt.Sprintf("chain: goal %q: duplicate field %q", g.label, name))
	}
	g.fieldNames[name] = struct{}{}
	g.fields = append(g.fields, fieldDecl{name: name, field: field})
	return g
}

// AddConnection declares a user-intent-triggered edge to target. The
// model is instructed to reply with the target's sentinel when the user
// wants userIntent.
func (g *Goal) AddConnection(target *Goal, userIntent string, opts ...EdgeOption) *Goal {
	if target == nil {
		panic(fmt.Sprintf("chain: goal %q: connection target must not be nil", g.label))
	}
	s := newEdgeSettings(opts)
	g.connections = append(g.connections, Connection{
		Target:       target,
		UserIntent:   userIntent,
		HandOver:     s.handOver,
		KeepMessages: s.keepMessages,
	})
	return g
}

// AddCondition declares a data-triggered edge to target, evaluated
// against the shared data mapping in declaration order.
func (g *Goal) AddCondition(when func(data map[string]any) bool, target *Goal, opts ...EdgeOption) *Goal {
	if when == nil || target == nil {
		panic(fmt.Sprintf("chain: goal %q: condition predicate and target must not be nil", g.label))
	}
	s := newEdgeSettings(opts)
	g.conditions = append(g.conditions, Condition{
		When:         when,
		Target:       target,
		SilentText:   s.silentText,
		HandOver:     s.handOver,
		KeepMessages: s.keepMessages,
	})
	return g
}

// SetNextAction attaches the action executed when this goal completes.
func (g *Goal) SetNextAction(action *Action) *Goal {
	g.nextAction = action
	return g
}

// Label returns the goal's label, which is also its sentinel token.
func (g *Goal) Label() string { return g.label }

// Description returns the goal description shown to the model.
func (g *Goal) Description() string { return g.description }

// Opener returns the goal's configured first utterance.
func (g *Goal) Opener() string { return g.opener }

// Connections returns a copy of the goal's outgoing connections.
func (g *Goal) Connections() []Connection {
	out := make([]Connection, len(g.connections))
	copy(out, g.connections)
	return out
}

// Conditions returns a copy of the goal's data-driven conditions.
func (g *Goal) Conditions() []Condition {
	out := make([]Condition, len(g.conditions))
	copy(out, g.conditions)
	return out
}

// NextAction returns the action attached to this goal, if any.
func (g *Goal) NextAction() *Action { return g.nextAction }

// FieldNames returns the declared field names in declaration order.
func (g *Goal) FieldNames() []string {
	out := make([]string, 0, len(g.fields))
	for _, fd := range g.fields {
		out = append(out, fd.name)
	}
	return out
}

// goalPromptData builds the data mapping for the continuation prompt.
func (g *Goal) goalPromptData(messages []Message) map[string]any {
	info := make([]string, 0, len(g.fields))
	for _, fd := range g.fields {
		info = append(info, fd.field.Description)
	}
	connected := make([]map[string]any, 0, len(g.connections))
	for _, cn := range g.connections {
		connected = append(connected, map[string]any{
			"user_intent": cn.UserIntent,
			"label":       cn.Target.label,
		})
	}
	return map[string]any{
		"goal":             g.description,
		"information_list": info,
		"confirmation":     g.confirm,
		"completed_string": CompletedToken,
		"out_of_scope":     g.outOfScope,
		"connected_goals":  connected,
		"messages":         messages,
	}
}

// extractionPromptData builds the data mapping for the extraction prompt.
func (g *Goal) extractionPromptData(messages []Message) map[string]any {
	fields := make([]map[string]any, 0, len(g.fields))
	for _, fd := range g.fields {
		fields = append(fields, map[string]any{
			"name":        fd.name,
			"description": fd.field.Description,
			"format_hint": fd.field.FormatHint,
		})
	}
	return map[string]any{
		"fields":   fields,
		"messages": messages,
	}
}
