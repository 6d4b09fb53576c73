// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the search pipeline to function:
//
//   - AppIndex: Installed application scan/rescan
//   - FileHistoryStore: Previously opened files
//   - UsageStore: Launch frequency and recency
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the pipeline degrades gracefully:
//
//   - IndexService: External full-volume index. Without it, the external
//     source is excluded and the status flag reports it unavailable.
//   - NoteStore: Notes. Without it, no note results.
//   - PluginRegistry: Plugins. Without it, no plugin results.
//   - FolderIndex: System folders. Without it, no folder results.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
