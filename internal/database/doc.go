// Package database stores audit history in SQLite.
//
// Each completed audit is persisted as a row holding the full report JSON
// plus the scalar columns needed to list and compare runs without decoding
// the payload. The audit engine itself never reads from here; the store
// only backs the history and compare commands.
package database
