package uistate

import (
	"context"
	"time"
)

// Store keeps small per-browser values between requests: the session
// expiry flag, pending toasts, list and form snapshots. Values are opaque
// bytes; each key is written and read as a whole.
type Store interface {
	// Get returns the value and whether it exists
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for ttl; a zero ttl never expires
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Take returns the value and removes it in one step
	Take(ctx context.Context, key string) ([]byte, bool, error)
	// Delete removes keys, missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
}

const keyPrefix = "brotar:ui:"

// Key builds the storage key of name for one browser
func Key(browserID, name string) string {
	return keyPrefix + browserID + ":" + name
}
