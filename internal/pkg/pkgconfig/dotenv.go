package pkgconfig

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads the given .env files into the process environment.
//
// Missing files are ignored and variables that are already set are never
// overwritten, so the real environment always wins over a local .env file.
func LoadDotEnv(paths ...string) error {
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}

	if len(existing) == 0 {
		return nil
	}

	return godotenv.Load(existing...)
}
