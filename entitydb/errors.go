package entitydb

import (
	"errors"
	"strings"
)

// Sentinel errors returned by the concrete Lookup implementations,
// following the teacher's internal/orm/crud error-variable pattern.
var (
	ErrNotFound    = errors.New("entitydb: not found")
	ErrConnFailed  = errors.New("entitydb: connection failed")
	ErrQueryFailed = errors.New("entitydb: query failed")
)

// ConvertDBError classifies a driver error into one of the sentinels
// above, the way the teacher's ConvertDBError maps pgx/pq error strings
// to ORM-level sentinels.
func ConvertDBError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no rows"):
		return ErrNotFound
	case strings.Contains(msg, "connection"):
		return ErrConnFailed
	default:
		return ErrQueryFailed
	}
}
