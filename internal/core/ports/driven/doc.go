// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for a download run to function:
//
//   - Transport: Issues GET requests for locators
//   - ArchiveWriter: Encodes entries into a store-only ZIP
//   - OutputSink: Persists the finished archive
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Run history. Without it, runs are not recorded.
//   - LocatorSource / NameProvider: Only needed when the caller does not
//     pass locators and a label directly.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
