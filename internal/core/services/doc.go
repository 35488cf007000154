// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The interaction-checking workflow lives here: candidate search with
// debouncing, the selection state machine, eligibility rules, the check
// cycle orchestrator and the panel controller that ties them together.
//
// Services are pure Go with no external dependencies.
package services
