package uistate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/instituto-brotar/painel-brotar/internal/logging"
	"go.uber.org/zap"
)

// Toast kinds
const (
	ToastSuccess = "success"
	ToastError   = "error"
)

const (
	toastsKey = "toasts"
	toastTTL  = 5 * time.Minute
)

// Toast is a one-shot notification shown on the next rendered page
type Toast struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Browser scopes a Store to one browser id
type Browser struct {
	store Store
	id    string
}

// ForBrowser returns the state of one browser
func ForBrowser(store Store, browserID string) *Browser {
	return &Browser{store: store, id: browserID}
}

// ID returns the browser id
func (b *Browser) ID() string {
	return b.id
}

// Store returns the underlying store
func (b *Browser) Store() Store {
	return b.store
}

// Save stores v as JSON under name
func (b *Browser) Save(ctx context.Context, name string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode ui state %s: %w", name, err)
	}
	return b.store.Set(ctx, Key(b.id, name), data, ttl)
}

// Load decodes the JSON stored under name into v and reports whether it
// was there
func (b *Browser) Load(ctx context.Context, name string, v interface{}) (bool, error) {
	data, ok, err := b.store.Get(ctx, Key(b.id, name))
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode ui state %s: %w", name, err)
	}
	return true, nil
}

// Take decodes the JSON stored under name into v and removes it
func (b *Browser) Take(ctx context.Context, name string, v interface{}) (bool, error) {
	data, ok, err := b.store.Take(ctx, Key(b.id, name))
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode ui state %s: %w", name, err)
	}
	return true, nil
}

// Forget removes the named values
func (b *Browser) Forget(ctx context.Context, names ...string) error {
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, Key(b.id, name))
	}
	return b.store.Delete(ctx, keys...)
}

// PushToast queues a notification for the next page. Failures are logged
// and swallowed; a lost toast never fails the request.
func (b *Browser) PushToast(ctx context.Context, kind, message string) {
	var toasts []Toast
	if _, err := b.Load(ctx, toastsKey, &toasts); err != nil {
		logging.Logger.Warn("failed to read pending toasts", zap.Error(err))
	}
	toasts = append(toasts, Toast{Kind: kind, Message: message})
	if err := b.Save(ctx, toastsKey, toasts, toastTTL); err != nil {
		logging.Logger.Warn("failed to queue toast", zap.Error(err))
	}
}

// PopToasts returns and clears pending notifications
func (b *Browser) PopToasts(ctx context.Context) []Toast {
	data, ok, err := b.store.Take(ctx, Key(b.id, toastsKey))
	if err != nil {
		logging.Logger.Warn("failed to take pending toasts", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var toasts []Toast
	if err := json.Unmarshal(data, &toasts); err != nil {
		logging.Logger.Warn("discarding unreadable toasts", zap.Error(err))
		return nil
	}
	return toasts
}
