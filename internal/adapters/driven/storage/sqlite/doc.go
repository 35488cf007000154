// Package sqlite provides a SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements the local stores
// through a single database connection:
//
//   - SessionStore: the logged-in session (token, username, admin flag)
//   - CheckHistoryStore: the log of completed interaction checks
//
// # Schema
//
// The schema is managed by goose migrations embedded from the migrations/
// directory. Each file carries its own Up and Down sections.
//
// # Data Location
//
// By default, the database is stored at ~/.medcheck/data/medcheck.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
