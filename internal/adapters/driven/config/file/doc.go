// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage with MEDCHECK_*
//     environment overrides and an fsnotify-backed Watch
package file
