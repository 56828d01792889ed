// Package shipment implements the status and metrics engine for CTE
// shipment records.
//
// The engine is pure: every derivation (status classification, day deltas,
// report summaries, filtering) is a function of its inputs and a caller
// supplied reference date. Nothing here touches the database, the network,
// or the clock; the store and CLI layers feed records in and render the
// results out.
//
// INVARIANTS:
//   - Classify is total: every combination of present/absent dates maps to
//     exactly one Status.
//   - Volume counts are already non-negative by the time a Record exists;
//     ParseVolume coerces non-numeric and negative input to 0.
//   - Summarize partitions total count across the five statuses and total
//     volume across the three volume buckets.
package shipment
