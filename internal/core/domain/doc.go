// Package domain defines the core business entities for medcheck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Category: The closed set of selectable entity kinds (drug, food, complementary)
//   - CheckerMode: Which pair of categories a check cross-references
//   - SelectedItem: An entity chosen for the pending check
//   - InteractionCheckRequest / InteractionCheckResult: The backend check contract
//   - InteractionEntry: The unified, display-ready view of one interaction
//   - Session: The persisted authentication state
//   - Resource: The administrable REST collections
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
