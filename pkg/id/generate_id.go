package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (a v4 uuid without separators).
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// IsID32 reports whether s has the NewID32 shape.
func IsID32(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}
