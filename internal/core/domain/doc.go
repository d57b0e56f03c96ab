// Package domain defines the core business entities for orderpack.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - BatchPolicy: How fetches are scheduled (unthrottled or batched)
//   - FetchOutcome: The tagged success/failure result of one fetch
//   - BatchResult: Every outcome of one orchestrator run
//   - ArchiveEntry: A named payload inside the assembled archive
//   - RunReport / RunRecord: The terminal state of a download run
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
