package utils

import "os"

// GetEnv returns the value of an environment variable or a fallback default.
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
