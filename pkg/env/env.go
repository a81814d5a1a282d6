package env

import (
	"os"
	"strings"
)

// Prefix namespaces every rentalhub environment variable.
const Prefix = "RENTALHUB_"

// Get returns RENTALHUB_<key>, then the bare key, then fallback.
func Get(key, fallback string) string {
	for _, name := range []string{Prefix + key, key} {
		if val := strings.TrimSpace(os.Getenv(name)); val != "" {
			return val
		}
	}
	return fallback
}
