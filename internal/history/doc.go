// Package history provides the CSV-backed log of participant-count records.
//
// The log is the only persisted state of the tracker: one line per run,
// holding a timestamp, the total count, and an optional name-filtered count.
// It is read once at the start of a run and rewritten wholesale after
// appending one record; the file is small enough that full-rewrite
// durability is acceptable. Loading is best-effort: malformed lines are
// skipped, never fatal.
package history
