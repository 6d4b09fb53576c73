// Package domain defines the core business entities for ReFast.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Query: A normalised query string tagged with a generation token
//   - SearchResult: A launchable item produced by one of the sources
//   - RankedResult: A SearchResult with its computed score and lane
//   - SearchSession: A server-side cursor in the external index service
//   - UsageRecord: Launch frequency and recency for a path
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
