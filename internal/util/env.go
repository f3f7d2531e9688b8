package util

import "os"

// Getenv returns the environment variable if set and non-empty, otherwise
// the default value
func Getenv(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultValue
}
