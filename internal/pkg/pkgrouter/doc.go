// Package pkgrouter wraps HTTP routing and common middleware used by the
// development receiver.
//
// It provides a small router abstraction over httprouter plus shared concerns
// like JSON encoding, error mapping, logging with secret masking, recovery,
// and correlation ID propagation.
package pkgrouter
