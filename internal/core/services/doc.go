// Package services implements the core download pipeline.
//
// Data flows one way through a run:
//
//	locators -> Dedupe -> BatchOrchestrator -> FetchUnit (x N) -> ResolveFilename
//	         -> ArchiveAssembler -> OutputSink
//
// DownloadService ties the steps together, loads the batch policy from
// SettingsService and records the outcome through an optional RunStore.
//
// # Import Rules
//
//   - Can Import: domain, ports/driven, ports/driving, logger
//   - Cannot Import: Any adapter package
package services
