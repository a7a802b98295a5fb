package db

import "strings"

// IsUniqueViolation reports whether the provided error references a unique
// constraint violation, matching the Postgres and SQLite phrasings. A
// constraintName narrows the Postgres match to one index; SQLite reports the
// column list instead of the index name, so the generic phrasing always counts.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" && strings.Contains(msg, constraintName) {
		return true
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
