// GoalChain Go - Goal-Oriented LLM Conversations in Go
//
// GoalChain is a lightweight framework for building goal-driven LLM
// conversations. Instead of prompting for free-form chat, you declare a graph
// of goals - each with the information it must gather, the edges leading to
// other goals, and the deterministic actions to run on completion - and the
// engine drives the model through it turn by turn.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/smallnest/goalchain
//
// Basic example:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"os"
//
//		"github.com/smallnest/goalchain/chain"
//		"github.com/smallnest/goalchain/llm"
//	)
//
//	func main() {
//		goal := chain.NewGoal("product_order",
//			"to obtain information on an order to be made",
//			"I see you are trying to order a product, how can I help you?",
//		)
//		goal.AddField("quantity", chain.Field{
//			Description: "quantity of product",
//			FormatHint:  "an integer",
//		})
//
//		client := llm.NewOpenAIClient(os.Getenv("OPENAI_API_KEY"))
//		conv := chain.NewConversation(goal, client)
//
//		ctx := context.Background()
//		res := conv.Turn(ctx, "")
//		fmt.Println("Assistant:", res.Content)
//
//		res = conv.Turn(ctx, "I'd like 3 widgets please")
//		fmt.Println("Assistant:", res.Content)
//	}
//
// # Key Features
//
//   - Goal Graphs: connect goals through user intents and data conditions
//   - Field Extraction: structured JSON extraction with per-field validators
//   - Actions: deterministic follow-ups that can chain into further goals
//   - Hooks: per-activation start and completion callbacks
//   - Resilience: every failure degrades to an apology, never an error
//   - Persistence: snapshot/restore with memory, Redis, SQLite and
//     PostgreSQL stores
//   - Visualization: Mermaid and DOT renderings of the goal graph
//
// # Core Concepts
//
// A Goal describes one conversational objective: what to talk about, which
// fields to extract, and where control may go next. Connections are edges
// the user triggers by intent ("I want to cancel"); Conditions are edges
// the data triggers ("quantity >= 50"). Actions run after a goal completes
// and may end the conversation or chain into another goal.
//
// A Conversation binds one end user to a goal graph. The graph itself is
// immutable shared configuration; any number of Conversations can run over
// it concurrently. All mutable state - transcripts, the shared data
// mapping, activation flags - lives on the Conversation and can be
// captured with Snapshot and resumed elsewhere with Restore.
//
// # Package Structure
//
// chain/
// The engine: goals, fields, actions, edges, the conversation orchestrator
// and the graph exporter.
//
// llm/
// Completion clients: a native OpenAI client and an adapter for any
// langchaingo llms.Model, plus the small Client interface for custom
// backends.
//
// prompt/
// The prompt templates driving continuation, extraction, validation and
// rephrase calls. All templates can be overridden per goal.
//
// store/
// Snapshot persistence: in-memory, Redis, SQLite and PostgreSQL backends
// behind one Store interface.
//
// export/
// Transcript rendering to Markdown and sanitized HTML.
//
// log/
// The Logger interface the engine reports through, with stdlib and golog
// implementations.
//
// # Configuration
//
// The library reads no environment variables itself; examples use
// OPENAI_API_KEY for LLM access.
//
// # Community and Support
//
//   - Examples: ./examples directory
//   - Issues: report bugs and request features on GitHub
//
// # License
//
// This project is licensed under the MIT License - see the LICENSE file for details.
package goalchain // import "github.com/smallnest/goalchain"
