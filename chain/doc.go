// Package chain implements a goal-graph execution engine for
// language-model conversations: developers declare a directed graph of
// goals (information to gather from a user turn by turn) and actions
// (side effects triggered once a goal's data is complete), and a
// Conversation drives that graph one external input at a time.
//
// # Building a graph
//
// Goals, fields, edges and actions are declared explicitly at
// construction time:
//
//	order := chain.NewGoal("product_order",
//		"to obtain information on an order to be made",
//		"I see you are trying to order a product, how can I help you?",
//		chain.WithOutOfScope("Ask the user to contact sales team at sales@acme.com"),
//	)
//	order.AddField("product_name", chain.Field{Description: "product to be ordered", FormatHint: "a string"})
//	order.AddField("quantity", chain.Field{Description: "quantity of product", FormatHint: "an integer", Validator: quantityValidator})
//
//	cancel := chain.NewGoal("cancel_current_order",
//		"to obtain the reason for the cancellation",
//		"I see you are trying to cancel the current order, how can I help you?",
//		chain.WithConfirm(false),
//	)
//	order.AddConnection(cancel, "to cancel the current order")
//	order.SetNextAction(chain.NewAction(processOrder,
//		chain.WithResponseTemplate("Your order number is {{.order_number}}."),
//		chain.WithRephrase(),
//		chain.WithEndConversation(),
//	))
//
// # Running a conversation
//
//	conv := chain.NewConversation(order, llm.NewOpenAIClient(apiKey))
//	fmt.Println(conv.Turn(ctx, "").Content) // opener
//	res := conv.Turn(ctx, "I'd like 5 widgets")
//
// Each Turn runs the full internal cascade (handoffs, data conditions,
// chained actions) to completion and returns exactly one Result of type
// message, data or end. Turn never returns an error; failures degrade to
// a fixed apology message and the conversation stays resumable.
//
// # Sentinel protocol
//
// The model is instructed to reply with "<completed>" to signal that data
// gathering is done, or with "<goal-label>" to request a user-intent
// handoff. Detection is a case-insensitive substring search over the raw
// completion text; see CompletedToken for the known ambiguity of that
// protocol.
//
// # Concurrency
//
// Goal and Action values are immutable after building and may be shared
// by any number of Conversations. A Conversation itself is single-caller:
// one external input produces one synchronous cascade, and its transcript
// and shared data must not be touched concurrently.
package chain
