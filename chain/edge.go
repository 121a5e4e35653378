package chain

// Connection is a user-intent-triggered edge between goals. The model is
// told "if the user wants X, reply only with <label>"; the sentinel is
// detected on the owning goal's continuation turn.
type Connection struct {
	// Target is the goal control passes to.
	Target *Goal

	// UserIntent describes, for the model, what the user wants when this
	// edge should fire.
	UserIntent string

	// HandOver makes the target goal rephrase its opener in context
	// instead of stating it verbatim.
	HandOver bool

	// KeepMessages carries the transcript over to the target goal.
	KeepMessages bool
}

// Condition is a data-triggered edge, evaluated against the shared data
// mapping after every extraction, in declaration order, first match wins.
type Condition struct {
	// When is the predicate over the shared data mapping.
	When func(data map[string]any) bool

	// Target is the goal control passes to.
	Target *Goal

	// SilentText, when set, is appended to the transcript as a scripted
	// assistant message before the handoff. It is not model-generated.
	SilentText string

	// HandOver makes the target goal rephrase its opener in context.
	HandOver bool

	// KeepMessages carries the transcript over to the target goal.
	KeepMessages bool
}

// edgeSettings holds the shared option state for connections and
// conditions. Both edge kinds default to carrying the transcript and
// rephrasing the target's opener.
type edgeSettings struct {
	handOver     bool
	keepMessages bool
	silentText   string
}

// EdgeOption configures a Connection or Condition added to a goal.
type EdgeOption func(*edgeSettings)

// KeepMessages controls whether the transcript is carried across the
// edge. Defaults to true; pass false to hand the target a fresh
// transcript.
func KeepMessages(keep bool) EdgeOption {
	return func(s *edgeSettings) {
		s.keepMessages = keep
	}
}

// HandOver controls whether the target goal's first utterance is
// rephrased in context rather than stated verbatim. Defaults to true.
func HandOver(handOver bool) EdgeOption {
	return func(s *edgeSettings) {
		s.handOver = handOver
	}
}

// SilentText sets a scripted transition narration appended as an
// assistant message when a condition fires. Only meaningful on
// conditions; connections ignore it.
func SilentText(text string) EdgeOption {
	return func(s *edgeSettings) {
		s.silentText = text
	}
}

func newEdgeSettings(opts []EdgeOption) edgeSettings {
	s := edgeSettings{handOver: true, keepMessages: true}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
