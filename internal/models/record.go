package models

import (
	"time"

	"github.com/google/uuid"
)

// Record is the contract every stored entity satisfies: a stable unique
// string identifier. The store engine keys collections on it.
type Record interface {
	RecordID() string
}

// NewID returns a collision-free identifier with a collection prefix,
// e.g. "r_4f9d...". The engine never resolves id collisions, so callers
// rely on this for uniqueness.
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// UnixMillis converts a time to the millisecond epoch format used by all
// persisted timestamps.
func UnixMillis(t time.Time) int64 {
	return t.UnixMilli()
}
