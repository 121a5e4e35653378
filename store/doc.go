// Package store defines snapshot persistence for goalchain conversations
// and hosts its backend implementations:
//
//   - store/memory: in-process map, for tests and single-process use
//   - store/redis: Redis with optional TTL, for shared session state
//   - store/sqlite: single-file SQLite, for embedded deployments
//   - store/postgres: PostgreSQL via pgx, for server deployments
//
// The engine itself never touches a store; the embedding program decides
// when to Save a chain.Conversation's Snapshot and when to Restore one:
//
//	st := memory.NewStore()
//	_ = st.Save(ctx, conv.Snapshot())
//	...
//	snap, _ := st.Load(ctx, id)
//	conv := chain.NewConversation(start, client)
//	_ = conv.Restore(snap)
package store
