package chain

import (
	"context"
)

// session is a goal's per-conversation activation record: the mutable
// state upstream kept on the goal object itself, separated out so the
// goal definition stays immutable shared configuration.
type session struct {
	messages []Message
	started  bool
	handOver bool
	values   map[string]any
}

func newSession() *session {
	return &session{values: make(map[string]any)}
}

// TurnContext binds a goal definition to its activation record within a
// running conversation. It is handed to StartHooks, CompleteHooks and
// Actions so they can read shared data, stash per-activation scratch
// values, and speak as the assistant.
type TurnContext struct {
	ctx  context.Context
	conv *Conversation
	goal *Goal
	sess *session
}

// Context returns the context of the external turn being processed.
func (tc *TurnContext) Context() context.Context {
	return tc.ctx
}

// Conversation returns the owning conversation.
func (tc *TurnContext) Conversation() *Conversation {
	return tc.conv
}

// Goal returns the goal this context is bound to.
func (tc *TurnContext) Goal() *Goal {
	return tc.goal
}

// Data returns the conversation's live shared data mapping. Mutations are
// visible to conditions and later goals.
func (tc *TurnContext) Data() map[string]any {
	return tc.conv.data
}

// Set stashes a scratch value on the goal's activation record. Scratch
// values survive across turns of the same activation but are not part of
// shared data and are not persisted in snapshots.
func (tc *TurnContext) Set(key string, value any) {
	tc.sess.values[key] = value
}

// Get reads a scratch value stashed with Set.
func (tc *TurnContext) Get(key string) (any, bool) {
	v, ok := tc.sess.values[key]
	return v, ok
}

// Messages returns a copy of the goal's current transcript.
func (tc *TurnContext) Messages() []Message {
	return copyMessages(tc.sess.messages)
}

// SimulateResponse appends text as an assistant message, optionally
// rephrased by the model first ("rephrase without adding new
// information"). It returns the text that was actually appended.
func (tc *TurnContext) SimulateResponse(text string, rephrase bool) (string, error) {
	return tc.simulate(text, rephrase, false)
}
