package utils

import "os"

// GetEnv reads an environment variable with a fallback default.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
