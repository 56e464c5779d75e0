package service

import (
	"context"
	"sync"
	"time"

	"sparkshift/internal/core/domain"
	"sparkshift/internal/core/port"
)

// StatusBoard keeps the latest cycle report for readers outside the control loop.
type StatusBoard struct {
	mu      sync.RWMutex
	last    *domain.CycleReport
	started time.Time
	maxAge  time.Duration
}

func NewStatusBoard(started time.Time, maxAge time.Duration) *StatusBoard {
	return &StatusBoard{
		started: started,
		maxAge:  maxAge,
	}
}

func (b *StatusBoard) ObserveCycle(_ context.Context, report domain.CycleReport) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = &report
	return nil
}

// Last returns a copy of the latest report, false before the first cycle.
func (b *StatusBoard) Last() (domain.CycleReport, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.last == nil {
		return domain.CycleReport{}, false
	}
	return *b.last, true
}

// Healthy reports whether a cycle succeeded within maxAge. The board is
// healthy during the first interval after start.
func (b *StatusBoard) Healthy(now time.Time) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ref := b.started
	if b.last != nil {
		ref = b.last.Time
	}
	return now.Sub(ref) <= b.maxAge
}

var _ port.CycleObserver = (*StatusBoard)(nil)
