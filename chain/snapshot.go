package chain

import (
	"fmt"
	"time"
)

// GoalSnapshot is the persisted activation record of one goal.
type GoalSnapshot struct {
	Messages []Message `json:"messages"`
	Started  bool      `json:"started"`
	HandOver bool      `json:"hand_over"`
}

// Snapshot is a point-in-time capture of a conversation: the active goal,
// the shared data mapping and every goal's activation record. Together
// with the (immutable) goal graph it is enough to resume the conversation
// in another process.
//
// Session scratch values stashed by hooks are deliberately not part of a
// snapshot; a hook that needs durable state must write it into shared
// data instead.
type Snapshot struct {
	ID         string                  `json:"id"`
	ActiveGoal string                  `json:"active_goal"`
	Data       map[string]any          `json:"data"`
	Sessions   map[string]GoalSnapshot `json:"sessions"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// Snapshot captures the conversation's current state.
func (c *Conversation) Snapshot() *Snapshot {
	sessions := make(map[string]GoalSnapshot, len(c.sessions))
	for label, s := range c.sessions {
		sessions[label] = GoalSnapshot{
			Messages: copyMessages(s.messages),
			Started:  s.started,
			HandOver: s.handOver,
		}
	}
	return &Snapshot{
		ID:         c.id,
		ActiveGoal: c.active.label,
		Data:       c.Data(),
		Sessions:   sessions,
		UpdatedAt:  time.Now().UTC(),
	}
}

// Restore replaces the conversation's state with the snapshot's. The
// conversation must have been built over the same goal graph; a snapshot
// referencing labels outside the graph is rejected.
func (c *Conversation) Restore(snap *Snapshot) error {
	active, ok := c.goals[snap.ActiveGoal]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGoal, snap.ActiveGoal)
	}
	for label := range snap.Sessions {
		if _, ok := c.goals[label]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownGoal, label)
		}
	}

	c.id = snap.ID
	c.active = active
	c.data = make(map[string]any, len(snap.Data))
	for k, v := range snap.Data {
		c.data[k] = v
	}
	c.sessions = make(map[string]*session, len(snap.Sessions))
	for label, gs := range snap.Sessions {
		s := newSession()
		s.messages = copyMessages(gs.Messages)
		s.started = gs.Started
		s.handOver = gs.HandOver
		c.sessions[label] = s
	}
	// A restored conversation resumes mid-flight; the starting goal's
	// activation already happened in the originating process.
	c.initialized = true
	return nil
}
