// Package session owns the single in-progress booking for the lifetime of
// the process. All mutation goes through Dispatch, which applies the pure
// reducer and schedules a debounced draft autosave as a side effect.
// Persistence is always a side effect of, never a prerequisite for, an
// in-memory transition.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/mkraev/booking-wizard/internal/booking"
	"github.com/mkraev/booking-wizard/internal/domain"
	"github.com/mkraev/booking-wizard/internal/observability"
	"github.com/mkraev/booking-wizard/internal/store"
)

const flushTimeout = 5 * time.Second

type Manager struct {
	store    *store.ReservationStore
	logger   observability.Logger
	debounce time.Duration

	mu    sync.Mutex
	state domain.BookingState
	timer *time.Timer
}

func NewManager(st *store.ReservationStore, logger observability.Logger, debounce time.Duration) *Manager {
	return &Manager{
		store:    st,
		logger:   logger,
		debounce: debounce,
		state:    booking.Initial(),
	}
}

// State returns a copy of the current booking.
func (m *Manager) State() domain.BookingState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Dispatch runs the reducer and returns the new state. A Reset drops the
// draft immediately; any other action restarts the autosave timer, so the
// draft is written once input settles.
func (m *Manager) Dispatch(action booking.Action) domain.BookingState {
	m.mu.Lock()
	m.state = booking.Transition(m.state, action)
	next := m.state.Clone()

	if action.Kind == booking.KindReset {
		m.stopTimerLocked()
		m.mu.Unlock()
		observability.ActionsDispatched.WithLabelValues(string(action.Kind)).Inc()
		m.clearDraft()
		return next
	}

	if m.timer == nil {
		m.timer = time.AfterFunc(m.debounce, m.flushAsync)
	} else {
		m.timer.Reset(m.debounce)
	}
	m.mu.Unlock()

	observability.ActionsDispatched.WithLabelValues(string(action.Kind)).Inc()
	return next
}

// Flush writes the draft now and stops any pending autosave.
func (m *Manager) Flush(ctx context.Context) error {
	m.mu.Lock()
	m.stopTimerLocked()
	snapshot := m.state.Clone()
	m.mu.Unlock()

	if err := m.store.SaveDraft(ctx, snapshot); err != nil {
		return err
	}
	observability.DraftSaves.Inc()
	return nil
}

// RestoreDraft loads the autosaved draft, if any, and makes it the current
// state. It reports whether a draft was found.
func (m *Manager) RestoreDraft(ctx context.Context) (bool, error) {
	draft, err := m.store.LoadDraft(ctx)
	if err != nil {
		return false, err
	}
	if draft == nil {
		return false, nil
	}
	m.Dispatch(booking.LoadState(*draft))
	return true, nil
}

// Close stops the autosave timer without flushing.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimerLocked()
}

func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Manager) flushAsync() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := m.Flush(ctx); err != nil {
		m.logger.WithError(err).Warn("draft autosave failed")
	}
}

func (m *Manager) clearDraft() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := m.store.ClearDraft(ctx); err != nil {
		m.logger.WithError(err).Warn("draft clear failed")
	}
}
