package listing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/instituto-brotar/painel-brotar/internal/logging"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/uistate"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
	"go.uber.org/zap"
)

// DefaultTTL is how long a list snapshot and a pending deletion are kept
const DefaultTTL = 10 * time.Minute

// freshTTL bounds the redirect that follows a delete
const freshTTL = time.Minute

// Identified is a row that can be removed by id
type Identified interface {
	GetID() int64
}

// Source fetches a whole list. The services satisfy it.
type Source[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
}

// Deleter removes one row on the backend
type Deleter interface {
	Delete(ctx context.Context, id int64) error
}

// View is one list screen of one browser. Its rows and the pending
// deletion outlive the request in uistate.
type View[T Identified] struct {
	name    string
	browser *uistate.Browser
	ttl     time.Duration
	items   []T
	loaded  bool
}

// NewView returns the list named name for browser
func NewView[T Identified](name string, browser *uistate.Browser, ttl time.Duration) *View[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &View[T]{name: name, browser: browser, ttl: ttl, items: []T{}}
}

func (v *View[T]) snapshotName() string { return "list:" + v.name }
func (v *View[T]) pendingName() string  { return "list:" + v.name + ":pending-delete" }
func (v *View[T]) freshName() string    { return "list:" + v.name + ":fresh" }

// Name returns the list name
func (v *View[T]) Name() string { return v.name }

// Items returns the loaded rows
func (v *View[T]) Items() []T { return v.items }

// Visit loads the list for a page visit. Every visit fetches from src,
// except the first one after a delete, which shows the snapshot the delete
// left behind.
func (v *View[T]) Visit(ctx context.Context, src Source[T]) error {
	var fresh bool
	ok, err := v.browser.Take(ctx, v.freshName(), &fresh)
	if err != nil {
		logging.Logger.Warn("failed to read list marker", zap.String("list", v.name), zap.Error(err))
	}
	if ok && fresh {
		return v.Load(ctx, src)
	}
	return v.Refresh(ctx, src)
}

// Load reuses this browser's snapshot of the list or fetches it from src
func (v *View[T]) Load(ctx context.Context, src Source[T]) error {
	var cached []T
	ok, err := v.browser.Load(ctx, v.snapshotName(), &cached)
	if err != nil {
		logging.Logger.Warn("failed to read list snapshot", zap.String("list", v.name), zap.Error(err))
	}
	if ok && cached != nil {
		v.items = cached
		v.loaded = true
		return nil
	}
	return v.Refresh(ctx, src)
}

// Refresh fetches the list from src and replaces the snapshot
func (v *View[T]) Refresh(ctx context.Context, src Source[T]) error {
	items, err := src.GetAll(ctx)
	if err != nil {
		return err
	}
	v.Set(ctx, items)
	return nil
}

// Set replaces the rows and the snapshot. A nil list is stored as empty.
func (v *View[T]) Set(ctx context.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	v.items = items
	v.loaded = true
	v.save(ctx)
}

func (v *View[T]) save(ctx context.Context) {
	if err := v.browser.Save(ctx, v.snapshotName(), v.items, v.ttl); err != nil {
		logging.Logger.Warn("failed to store list snapshot", zap.String("list", v.name), zap.Error(err))
	}
}

// Filter returns the rows where any of fields contains term, ignoring
// case. Digit-only terms also match the digits of a field, so a CPF is
// found typed with or without punctuation.
func (v *View[T]) Filter(term string, fields ...func(T) string) []T {
	return Filter(v.items, term, fields...)
}

// Filter is View.Filter over a plain slice
func Filter[T any](items []T, term string, fields ...func(T) string) []T {
	term = strings.TrimSpace(term)
	if term == "" {
		return items
	}
	lowered := strings.ToLower(term)
	digits := ""
	if isNumericTerm(term) {
		digits = utils.OnlyDigits(term)
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields {
			value := field(item)
			if strings.Contains(strings.ToLower(value), lowered) ||
				(digits != "" && strings.Contains(utils.OnlyDigits(value), digits)) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func isNumericTerm(term string) bool {
	hasDigit := false
	for _, r := range term {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == '.' || r == '-' || r == ' ' || r == '(' || r == ')' || r == '/':
		default:
			return false
		}
	}
	return hasDigit
}

// Find returns the row with id
func (v *View[T]) Find(id int64) (T, bool) {
	for _, item := range v.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

type pendingDelete struct {
	ID int64 `json:"id"`
}

// RequestDelete records that the user asked to delete id. Nothing is sent
// to the backend until ConfirmDelete.
func (v *View[T]) RequestDelete(ctx context.Context, id int64) error {
	if id <= 0 {
		return models.ErrInvalidID
	}
	return v.browser.Save(ctx, v.pendingName(), pendingDelete{ID: id}, v.ttl)
}

// PendingDelete returns the id awaiting confirmation
func (v *View[T]) PendingDelete(ctx context.Context) (int64, bool) {
	var p pendingDelete
	ok, err := v.browser.Load(ctx, v.pendingName(), &p)
	if err != nil || !ok {
		return 0, false
	}
	return p.ID, true
}

// CancelDelete drops the pending deletion. The list and the backend are
// left as they were.
func (v *View[T]) CancelDelete(ctx context.Context) error {
	return v.browser.Forget(ctx, v.pendingName())
}

// ConfirmDelete deletes id on the backend when the user accepted and a
// matching request is pending. On success the row leaves the list without
// a re-fetch; on failure the list is untouched.
func (v *View[T]) ConfirmDelete(ctx context.Context, id int64, accepted bool, d Deleter) error {
	pending, ok := v.PendingDelete(ctx)
	if !accepted || !ok || pending != id {
		return models.ErrDeleteNotConfirmed
	}
	if err := v.browser.Forget(ctx, v.pendingName()); err != nil {
		logging.Logger.Warn("failed to clear pending delete", zap.String("list", v.name), zap.Error(err))
	}

	if err := d.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s %d: %w", v.name, id, err)
	}
	v.Remove(ctx, id)
	if err := v.browser.Save(ctx, v.freshName(), true, freshTTL); err != nil {
		logging.Logger.Warn("failed to mark list snapshot", zap.String("list", v.name), zap.Error(err))
	}
	return nil
}

// Remove drops the row with id from the list and the snapshot. A view
// that was never loaded edits the snapshot, if there is one.
func (v *View[T]) Remove(ctx context.Context, id int64) {
	if !v.loaded {
		var cached []T
		if ok, err := v.browser.Load(ctx, v.snapshotName(), &cached); err != nil || !ok {
			return
		}
		v.items = cached
		v.loaded = true
	}
	kept := make([]T, 0, len(v.items))
	for _, item := range v.items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	v.items = kept
	v.save(ctx)
}

// Invalidate drops the snapshots of the named lists so no view reuses them
func Invalidate(ctx context.Context, browser *uistate.Browser, names ...string) {
	keys := make([]string, 0, 2*len(names))
	for _, name := range names {
		keys = append(keys, "list:"+name, "list:"+name+":fresh")
	}
	if err := browser.Forget(ctx, keys...); err != nil {
		logging.Logger.Warn("failed to invalidate list snapshots", zap.Strings("lists", names), zap.Error(err))
	}
}

// Discard drops everything the browser holds for the named lists,
// pending deletions included
func Discard(ctx context.Context, browser *uistate.Browser, names ...string) {
	Invalidate(ctx, browser, names...)
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, "list:"+name+":pending-delete")
	}
	if err := browser.Forget(ctx, keys...); err != nil {
		logging.Logger.Warn("failed to discard pending deletions", zap.Strings("lists", names), zap.Error(err))
	}
}
