package utils

import (
	"os"
	"strconv"
)

func ParseWithFallback(envName string, fallback string) string {
	result := os.Getenv(envName)
	if result == "" {
		result = fallback
	}

	return result
}

// ParseBoolWithFallback returns fallback when the variable is unset or not a valid bool.
func ParseBoolWithFallback(envName string, fallback bool) bool {
	raw, ok := os.LookupEnv(envName)
	if !ok {
		return fallback
	}

	result, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return result
}
