package pkgconfig

import (
	"io"
	"time"
)

// Config is the read-only view of the application configuration.
type Config interface {
	GetInt(key string) int64
	GetBool(key string) bool
	GetString(key string) string
	GetDuration(key string) time.Duration
	IsSet(key string) bool

	io.Closer
}
