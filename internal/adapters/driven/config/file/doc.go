// Package file provides the file-backed configuration adapter.
//
// Adapters:
//   - ConfigStore: read-only view over a hand-edited TOML file
package file
