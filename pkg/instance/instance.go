package instance

import "os"

const fallbackID = "rentalhub-0"

// GetID identifies this process for lock ownership and logs. An explicit
// RENTALHUB_INSTANCE_ID wins over the platform dyno name and the hostname.
func GetID() string {
	for _, key := range []string{"RENTALHUB_INSTANCE_ID", "DYNO"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return fallbackID
}
