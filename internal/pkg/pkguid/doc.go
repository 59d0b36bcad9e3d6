// Package pkguid provides helpers for generating unique identifiers.
//
// The codebase uses these interfaces to avoid hard-coding a specific UID
// strategy:
//   - String IDs (UUIDv7) identify a delivery run and correlate its logs.
//   - Numeric IDs (Snowflake) identify each chunk request sent by a run.
package pkguid
