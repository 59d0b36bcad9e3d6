// Package pkglog contains logging helpers used across the application.
//
// It is built around slog and keeps logs consistent by:
//   - Initializing a JSON handler with stable keys.
//   - Attaching correlation IDs (a request ID on the server side, the run ID
//     of a delivery on the client side) to each log record.
//   - Attaching the ID of a single chunk request, when one is known.
package pkglog
