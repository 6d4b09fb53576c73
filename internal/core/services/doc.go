// Package services implements the search aggregation pipeline.
//
// The pipeline turns one query string into a deduplicated, scored,
// two-lane, incrementally delivered result set:
//
//   - Controller: debounce, duplicate suppression, generation tokens,
//     source fan-out, and the outward subscription stream
//   - Scheduler: debounce timers and delayed calls with cancel handles
//   - Sources: app / file-history / system-folder / note / plugin /
//     pattern adapters over driven ports
//   - SessionManager: the create/paginate/close protocol against the
//     external volume index service
//   - Aggregate: cross-source deduplication
//   - Rank: the deterministic total order over heterogeneous signals
//   - SplitLanes: horizontal (icon strip) vs vertical (list) grouping
//   - delivery: the Idle/Loading/Streaming/Complete emission machine
//
// Cancellation is cooperative: every asynchronous completion compares its
// captured generation token against the controller's current one before
// touching shared state. There is no forced interruption of in-flight I/O.
//
// # Import Rules
//
//   - Can Import: domain, ports (driven and driving), logger
//   - Cannot Import: Any adapter package
package services
