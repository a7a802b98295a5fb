// Package env reads raw process environment variables. It exists for the few
// knobs needed before the envconfig-backed configuration is parsed, such as
// the log format applied while the logger bootstraps.
package env

import "os"

// Get returns the variable's value, or fallback when it is unset or blank.
// Blank counts as unset so an empty export cannot disable a default.
func Get(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}
