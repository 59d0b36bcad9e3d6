// Package pkgerror defines shared error types and sentinel errors used across
// the application.
//
// The Error type carries a message, a type, and a code, which the HTTP edge
// of the receiver maps to status codes. Delivery-side failures are plain
// sentinel errors owned by the delivery entity package.
package pkgerror
