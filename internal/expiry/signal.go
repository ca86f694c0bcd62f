package expiry

import (
	"context"
	"sync"
	"time"
)

// DefaultCountdown is how long the expired-session notice stays up before
// the forced logout
const DefaultCountdown = 5 * time.Second

// Signal announces an expired session to whatever renders the notice. It
// holds no timer: Remaining is derived from the moment it was opened.
type Signal interface {
	IsOpen(ctx context.Context) bool
	// Open raises the signal; reopening restarts the countdown
	Open(ctx context.Context)
	Close(ctx context.Context)
	// Remaining is the countdown left, zero when closed or elapsed
	Remaining(ctx context.Context) time.Duration
}

func remaining(openedAt, now time.Time, countdown time.Duration) time.Duration {
	left := countdown - now.Sub(openedAt)
	if left < 0 {
		return 0
	}
	return left
}

// MemorySignal is a Signal held in process memory
type MemorySignal struct {
	mu        sync.Mutex
	open      bool
	openedAt  time.Time
	countdown time.Duration
	now       func() time.Time
}

// NewMemorySignal creates a closed signal. A non-positive countdown means
// DefaultCountdown.
func NewMemorySignal(countdown time.Duration) *MemorySignal {
	if countdown <= 0 {
		countdown = DefaultCountdown
	}
	return &MemorySignal{countdown: countdown, now: time.Now}
}

func (s *MemorySignal) IsOpen(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *MemorySignal) Open(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	s.openedAt = s.now()
}

func (s *MemorySignal) Close(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.openedAt = time.Time{}
}

func (s *MemorySignal) Remaining(context.Context) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return 0
	}
	return remaining(s.openedAt, s.now(), s.countdown)
}
