package expiry

import (
	"context"
	"time"

	"github.com/instituto-brotar/painel-brotar/internal/logging"
	"github.com/instituto-brotar/painel-brotar/internal/uistate"
	"go.uber.org/zap"
)

const (
	stateName = "session-expired"
	stateTTL  = 24 * time.Hour
)

// StateSignal keeps the signal of one browser in a uistate.Store, so a 401
// seen while handling a POST is still visible on the GET that follows the
// redirect
type StateSignal struct {
	store     uistate.Store
	key       string
	countdown time.Duration
	now       func() time.Time
}

// NewStateSignal returns the signal of browserID. A non-positive countdown
// means DefaultCountdown.
func NewStateSignal(store uistate.Store, browserID string, countdown time.Duration) *StateSignal {
	if countdown <= 0 {
		countdown = DefaultCountdown
	}
	return &StateSignal{
		store:     store,
		key:       uistate.Key(browserID, stateName),
		countdown: countdown,
		now:       time.Now,
	}
}

func (s *StateSignal) openedAt(ctx context.Context) (time.Time, bool) {
	data, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		logging.Logger.Warn("failed to read session expiry signal", zap.Error(err))
		return time.Time{}, false
	}
	if !ok {
		return time.Time{}, false
	}
	at, err := time.Parse(time.RFC3339Nano, string(data))
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

func (s *StateSignal) IsOpen(ctx context.Context) bool {
	_, ok := s.openedAt(ctx)
	return ok
}

func (s *StateSignal) Open(ctx context.Context) {
	stamp := s.now().UTC().Format(time.RFC3339Nano)
	if err := s.store.Set(ctx, s.key, []byte(stamp), stateTTL); err != nil {
		logging.Logger.Warn("failed to open session expiry signal", zap.Error(err))
	}
}

func (s *StateSignal) Close(ctx context.Context) {
	if err := s.store.Delete(ctx, s.key); err != nil {
		logging.Logger.Warn("failed to close session expiry signal", zap.Error(err))
	}
}

func (s *StateSignal) Remaining(ctx context.Context) time.Duration {
	at, ok := s.openedAt(ctx)
	if !ok {
		return 0
	}
	return remaining(at, s.now(), s.countdown)
}
