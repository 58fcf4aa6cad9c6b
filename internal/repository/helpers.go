package repository

import (
	"database/sql"
	"time"

	"github.com/alexanderramin/jobcolor/internal/domain"
)

// nullableIntToValue converts a *int to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the int value.
func nullableIntToValue(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// intFromNull converts a nullable integer column back into a *int.
func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// opaqueToValue stores an opaque JSON value as text, or NULL when it is null.
func opaqueToValue(o domain.Opaque) interface{} {
	if o.IsNull() {
		return nil
	}
	return string(o)
}

func opaqueFromNull(s sql.NullString) domain.Opaque {
	if !s.Valid || s.String == "" {
		return nil
	}
	return domain.Opaque(s.String)
}

// parseTime parses an RFC3339 column, yielding the zero time on failure.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
