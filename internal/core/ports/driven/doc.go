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
//   - CandidateIndex: Typo-tolerant search over medications, food items and complementary medicines
//   - InteractionBackend: The interaction-resolution service (POST /interactions/check)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - AuthBackend and SessionStore: Login, logout and the persisted session
//   - ResourceClient: Admin CRUD over backend resources
//   - CheckHistoryStore: Local log of completed check cycles
//   - CheckObserver: Metrics for searches and check cycles
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
