// Package log provides the leveled logging interface used by the goalchain
// engine and two implementations: a standard-library logger and a
// kataras/golog adapter.
//
// The engine only ever logs through the Logger interface; by default a
// Conversation uses NopLogger, so nothing is printed unless the embedding
// program wires a logger in:
//
//	conv := chain.NewConversation(start, client,
//		chain.WithLogger(log.NewGologLogger(golog.Default)))
//
// Swallowed turn-cascade errors (see the chain package's error handling
// contract) are reported at Error level; turn classification, handoffs and
// extraction merges are reported at Debug level.
package log
