// Package store persists the hotel aggregate to SQLite.
//
// Each entity store maps to one table. Save rewrites the tables named by a
// dispatch.Change inside a single transaction and appends one journal row,
// so a reloaded database always reflects a whole number of commands.
//
// # Tables
//
//   - rooms, housekeepers, assignments, items, performances,
//     satisfactions, events: one row per entity
//   - journal: one row per applied mutating command, ordered by seq
//
// Keyed stores carry a position column so Load restores insertion order.
// References from assignments and performances to rooms and housekeepers
// are deferred foreign keys, checked at commit.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
