package chain

// Actor identifies the author of a transcript message.
type Actor string

const (
	// ActorUser marks messages typed by the end user.
	ActorUser Actor = "User"
	// ActorAssistant marks messages produced by the engine or model.
	ActorAssistant Actor = "Assistant"
)

// Message is one entry of a goal's conversation transcript. The
// transcript is append-only while a goal is active and is the full
// negotiation history every prompt is built from.
type Message struct {
	Actor   Actor  `json:"actor"`
	Content string `json:"content"`
}

func copyMessages(msgs []Message) []Message {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
