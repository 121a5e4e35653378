package chain

type outcomeKind int

const (
	outcomeMessage outcomeKind = iota
	outcomeHandoff
	outcomeData
)

// Outcome is the internal result of one goal turn, classified by the
// orchestrator into a plain message, a handoff to another goal, or
// terminal completion data. Custom CompleteHooks build Outcomes through
// the constructor functions below.
type Outcome struct {
	kind         outcomeKind
	text         string
	data         map[string]any
	target       *Goal
	keepMessages bool
	handOver     bool
}

// MessageOutcome surfaces text as the assistant's utterance for this
// turn. When returned from a CompleteHook the text must already be part
// of the transcript (use TurnContext.SimulateResponse, which appends).
func MessageOutcome(text string) *Outcome {
	return &Outcome{kind: outcomeMessage, text: text}
}

// DataOutcome ends the goal with the given completion data, to be merged
// into the conversation's shared data.
func DataOutcome(data map[string]any) *Outcome {
	return &Outcome{kind: outcomeData, data: data}
}

// HandoffOutcome transfers control to target. The transcript is carried
// over and the target's opener rephrased unless overridden via
// KeepMessages/HandOver options.
func HandoffOutcome(target *Goal, opts ...EdgeOption) *Outcome {
	s := newEdgeSettings(opts)
	return &Outcome{
		kind:         outcomeHandoff,
		target:       target,
		keepMessages: s.keepMessages,
		handOver:     s.handOver,
	}
}
