package chain

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/smallnest/goalchain/llm"
	"github.com/smallnest/goalchain/log"
	"github.com/smallnest/goalchain/prompt"
)

// maxCascadeTransitions caps the internal handoff/action chain of a
// single external turn. A well-formed graph never gets close; hitting it
// means a cycle of silent conditions, and the turn degrades to the
// apology message instead of recursing forever.
const maxCascadeTransitions = 32

// ResultType classifies the outward-facing result of one external turn.
type ResultType string

const (
	// ResultMessage is a plain assistant utterance; the conversation continues.
	ResultMessage ResultType = "message"
	// ResultData is the terminal shared data of a completed goal with no
	// pending action.
	ResultData ResultType = "data"
	// ResultEnd is the final utterance of a conversation-ending action.
	ResultEnd ResultType = "end"
)

// Result is what every external turn returns. Exactly one of the three
// types is produced per call; Content is set for message and end results,
// Data for data results.
type Result struct {
	Type    ResultType
	Content string
	Data    map[string]any
	Goal    *Goal
}

// Conversation drives one conversation over a goal graph: it holds the
// active goal pointer, the shared data mapping, and the per-goal
// activation records. The graph itself (goals, actions, templates) is
// immutable shared configuration; any number of Conversations may run
// over it concurrently, but a single Conversation must not be used from
// multiple goroutines.
type Conversation struct {
	id          string
	start       *Goal
	active      *Goal
	goals       map[string]*Goal
	sessions    map[string]*session
	data        map[string]any
	client      llm.Client
	logger      log.Logger
	apology     string
	initialized bool
}

// ConversationOption configures a Conversation.
type ConversationOption func(*Conversation)

// WithLogger sets the logger the engine reports to. Defaults to a
// NopLogger.
func WithLogger(logger log.Logger) ConversationOption {
	return func(c *Conversation) { c.logger = logger }
}

// WithApologyText overrides the generic fallback utterance produced when
// a turn cascade fails unexpectedly.
func WithApologyText(text string) ConversationOption {
	return func(c *Conversation) { c.apology = text }
}

// NewConversation creates a conversation starting at the given goal. The
// client is the model-completion collaborator every goal in the graph
// will call through.
func NewConversation(start *Goal, client llm.Client, opts ...ConversationOption) *Conversation {
	if start == nil {
		panic("chain: starting goal must not be nil")
	}
	if client == nil {
		panic("chain: completion client must not be nil")
	}
	c := &Conversation{
		id:       uuid.NewString(),
		start:    start,
		active:   start,
		goals:    indexGoals(start),
		sessions: make(map[string]*session),
		data:     make(map[string]any),
		client:   client,
		logger:   log.NopLogger{},
		apology:  prompt.DefaultApologyText,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the conversation's unique identifier.
func (c *Conversation) ID() string {
	return c.id
}

// ActiveGoal returns the goal currently in control.
func (c *Conversation) ActiveGoal() *Goal {
	return c.active
}

// Data returns a copy of the shared data mapping.
func (c *Conversation) Data() map[string]any {
	out := make(map[string]any, len(c.data))
	for k, v := range c.data {
		out[k] = v
	}
	return out
}

// Transcript returns a copy of the given goal's current transcript.
// A nil goal means the active goal.
func (c *Conversation) Transcript(g *Goal) []Message {
	if g == nil {
		g = c.active
	}
	return copyMessages(c.sessionFor(g).messages)
}

// Turn processes one external input (empty for the conversation-opening
// turn) and runs the full internal cascade of handoffs, conditions and
// chained actions to a final outward-facing result.
//
// Turn never returns an error: validation problems become remediation
// messages, unparsable extractions become the goal's fixed error text,
// and any other failure — including panics in user-supplied actions,
// hooks and validators — is logged and converted into the generic
// apology message, leaving the conversation resumable.
func (c *Conversation) Turn(ctx context.Context, input string) *Result {
	res, err := c.turnGuarded(ctx, input)
	if err != nil {
		c.logger.Error("conversation %s: turn cascade failed: %v", c.id, err)
		return c.apologize()
	}
	return res
}

func (c *Conversation) turnGuarded(ctx context.Context, input string) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in turn cascade: %v", r)
		}
	}()

	// The starting goal's activation (and its StartHook) is deferred to
	// the first turn so it runs with a caller-supplied context.
	if !c.initialized {
		c.initialized = true
		if err := c.takeOver(ctx, c.active, nil, true); err != nil {
			return nil, err
		}
	}
	return c.dispatch(ctx, input, 0)
}

// dispatch runs the active goal's turn and interprets the outcome,
// recursing with no new external input on handoffs and action chains.
func (c *Conversation) dispatch(ctx context.Context, input string, depth int) (*Result, error) {
	if depth > maxCascadeTransitions {
		return nil, fmt.Errorf("%w (active goal %s)", ErrCascadeOverflow, c.active.label)
	}

	tc := c.turnContext(ctx, c.active)
	out, err := tc.turn(input)
	if err != nil {
		return nil, err
	}

	switch out.kind {
	case outcomeMessage:
		c.logger.Debug("conversation %s: message from goal %s", c.id, c.active.label)
		return &Result{Type: ResultMessage, Content: out.text, Goal: c.active}, nil

	case outcomeHandoff:
		target := out.target
		// Re-activate when the target differs from the active goal or the
		// same goal is being entered fresh.
		if target != c.active || c.sessionFor(target).started {
			var carried []Message
			if out.keepMessages {
				carried = copyMessages(c.sessionFor(c.active).messages)
			}
			c.sessionFor(target).started = false
			if err := c.takeOver(ctx, target, carried, out.handOver); err != nil {
				return nil, err
			}
			c.active = target
			c.logger.Debug("conversation %s: control handed to goal %s", c.id, target.label)
		}
		return c.dispatch(ctx, "", depth+1)

	case outcomeData:
		for k, v := range out.data {
			c.data[k] = v
		}
		action := c.active.nextAction
		if action == nil {
			c.logger.Debug("conversation %s: goal %s completed with no pending action", c.id, c.active.label)
			return &Result{Type: ResultData, Data: c.Data(), Goal: c.active}, nil
		}

		ares, err := action.run(c.turnContext(ctx, c.active), c.data)
		if err != nil {
			return nil, err
		}
		for k, v := range ares.data {
			c.data[k] = v
		}

		if ares.next != nil {
			if err := c.takeOver(ctx, ares.next, nil, true); err != nil {
				return nil, err
			}
			c.active = ares.next
			c.logger.Debug("conversation %s: action chained to goal %s", c.id, ares.next.label)
			return c.dispatch(ctx, "", depth+1)
		}
		if action.conversationEnd {
			return &Result{Type: ResultEnd, Content: ares.content, Goal: c.active}, nil
		}
		if !ares.rendered {
			// An action without a response template surfaces the merged
			// data instead of an utterance.
			return &Result{Type: ResultData, Data: c.Data(), Goal: c.active}, nil
		}
		return &Result{Type: ResultMessage, Content: ares.content, Goal: c.active}, nil

	default:
		return nil, fmt.Errorf("unexpected outcome kind %d from goal %s", out.kind, c.active.label)
	}
}

// SimulateResponse injects text as the active goal's assistant utterance,
// optionally rephrased in context, without consuming a user turn.
func (c *Conversation) SimulateResponse(ctx context.Context, text string, rephrase bool) *Result {
	return c.scripted(ctx, text, rephrase, false)
}

// Close produces the final courtesy message of a conversation: text is
// passed through the closing rephrase template when rephrase is set.
func (c *Conversation) Close(ctx context.Context, text string, rephrase bool) *Result {
	return c.scripted(ctx, text, rephrase, true)
}

func (c *Conversation) scripted(ctx context.Context, text string, rephrase, closing bool) *Result {
	tc := c.turnContext(ctx, c.active)
	out, err := tc.simulate(text, rephrase, closing)
	if err != nil {
		c.logger.Error("conversation %s: scripted response failed: %v", c.id, err)
		return c.apologize()
	}
	return &Result{Type: ResultMessage, Content: out, Goal: c.active}
}

// apologize appends the fixed apology to the active transcript and wraps
// it as a message result. No model call is involved, so this path cannot
// fail.
func (c *Conversation) apologize() *Result {
	s := c.sessionFor(c.active)
	s.messages = append(s.messages, Message{Actor: ActorAssistant, Content: c.apology})
	return &Result{Type: ResultMessage, Content: c.apology, Goal: c.active}
}

// takeOver reinitializes a goal's activation record for re-entry:
// replaces the transcript, raises the hand-over flag, and fires the
// StartHook exactly once per activation.
func (c *Conversation) takeOver(ctx context.Context, g *Goal, messages []Message, handOver bool) error {
	s := c.sessionFor(g)
	s.messages = messages
	if handOver {
		s.handOver = true
	}
	if !s.started {
		s.started = true
		if g.onStart != nil {
			if err := g.onStart(c.turnContext(ctx, g)); err != nil {
				return fmt.Errorf("start hook of goal %s: %w", g.label, err)
			}
		}
	}
	return nil
}

func (c *Conversation) turnContext(ctx context.Context, g *Goal) *TurnContext {
	return &TurnContext{ctx: ctx, conv: c, goal: g, sess: c.sessionFor(g)}
}

func (c *Conversation) sessionFor(g *Goal) *session {
	s, ok := c.sessions[g.label]
	if !ok {
		s = newSession()
		c.sessions[g.label] = s
	}
	return s
}

// indexGoals walks the graph from the start goal through connections,
// conditions and action targets, collecting every reachable goal by
// label.
func indexGoals(start *Goal) map[string]*Goal {
	goals := make(map[string]*Goal)
	var walk func(g *Goal)
	walk = func(g *Goal) {
		if g == nil {
			return
		}
		if _, seen := goals[g.label]; seen {
			return
		}
		goals[g.label] = g
		for _, cn := range g.connections {
			walk(cn.Target)
		}
		for _, cond := range g.conditions {
			walk(cond.Target)
		}
		if a := g.nextAction; a != nil {
			walk(a.nextGoal)
			for _, cond := range a.conditions {
				walk(cond.Target)
			}
		}
	}
	walk(start)
	return goals
}
