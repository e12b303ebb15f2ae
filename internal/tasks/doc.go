// Package tasks orchestrates catalog lookups and playlist exports with real-time progress reporting.
//
// # Core Operations
//
// [CatalogEngine] wraps a [services.MetadataService]:
//
//  1. [CatalogEngine.Popular] : popular aggregate
//     - Queries the top ten of every configured artist through a worker pool
//     - Skips failed lookups (all-settled)
//     - Deduplicates by track id, ranks by view count, keeps the top 100
//
//  2. [CatalogEngine.Search] : combined search
//     - Track search by title, narrowed by artist when given
//     - Album search when an album name is given
//
//  3. [CatalogEngine.ExportPlaylists] : bulk export
//     - Writes json, csv, markdown or txt files per playlist through a worker pool
//     - Optional cover download, rate limited
//     - Writes manifest.json
//
// # Request Generations
//
// Catalog responses arrive out of order. [Sequencer] issues a generation per [QueryClass] when a request is
// dispatched and [CatalogState.Apply] discards any response that is not the newest of its class, so a slow
// earlier response can never overwrite a fresher one. A failed response sets the error and keeps the previous
// results.
//
// # Progress Reporting
//
// All long-running operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
