// Package store provides the SQLite data access layer for the logistics
// dashboards.
//
// It is a read-mostly adapter over a pre-existing database file: shipment
// rows (site_carga_rastreada) joined against the hub lookup (hubs), and
// the grouped volume queries over relatorios_ctes that feed the maps.
// Opening a path creates the schema when missing so tests and fresh
// installs start from an empty but queryable database.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// Row-level cleaning (malformed dates to "absent", non-numeric volumes to
// zero) happens at scan time via the shipment package, never as errors.
package store
