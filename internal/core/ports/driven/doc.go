// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SearchIndex: Schema retrieval, facet aggregation and query execution (Typesense)
//   - StructuredGenerator: Schema-constrained generation (Gemini, OpenAI, Anthropic, Ollama)
//   - PromptStore: The instructional template for query translation
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SnapshotStore: Shares the introspection snapshot across processes (Redis).
//   - HistoryStore: Records translation attempts (SQLite).
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
