// Package store archives conformance runs in SQLite: one row per run
// token with the scenario name, producer version, status, and the
// section bytes the run was fed, plus the ordered event trace. The
// archive makes runs diffable after the fact.
package store
