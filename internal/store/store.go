// Package store is the persistence adapter: saved bookings and the
// single-slot autosaved draft, serialized as JSON under two fixed keys of a
// durable key-value store. Reads fail open: corrupt content is treated as
// "no saved data". Write failures surface as errors so callers can prompt a
// retry, but they never touch in-memory state.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/mkraev/booking-wizard/internal/domain"
	"github.com/mkraev/booking-wizard/internal/observability"
)

const (
	bookingsKey = "hotel-bookings"
	draftKey    = "hotel-booking-draft"
)

type ReservationStore struct {
	kv     KV
	logger observability.Logger
	now    func() time.Time
}

func NewReservationStore(kv KV, logger observability.Logger) *ReservationStore {
	return &ReservationStore{kv: kv, logger: logger, now: time.Now}
}

// ListSaved returns every saved booking. An empty or unparsable list reads
// as empty; only transport failures are reported.
func (s *ReservationStore) ListSaved(ctx context.Context) ([]domain.SavedBooking, error) {
	data, err := s.kv.Get(ctx, bookingsKey)
	if err != nil {
		return nil, errors.Wrap(domain.ErrStoreUnavailable, err.Error())
	}
	if len(data) == 0 {
		return []domain.SavedBooking{}, nil
	}
	var saved []domain.SavedBooking
	if err := json.Unmarshal(data, &saved); err != nil {
		s.logger.WithField("key", bookingsKey).Warn("discarding unparsable saved bookings")
		return []domain.SavedBooking{}, nil
	}
	return saved, nil
}

// Append assigns a fresh id and save timestamp, appends the record to the
// persisted list and returns it. Deduplication is the caller's job via
// IsDuplicate; Append itself always appends.
func (s *ReservationStore) Append(ctx context.Context, bookingState domain.BookingState) (domain.SavedBooking, error) {
	saved, err := s.ListSaved(ctx)
	if err != nil {
		return domain.SavedBooking{}, err
	}

	record := domain.SavedBooking{
		BookingState: bookingState.Clone(),
		ID:           uuid.NewString(),
		SavedAt:      s.now().UnixMilli(),
	}
	saved = append(saved, record)

	if err := s.writeList(ctx, saved); err != nil {
		return domain.SavedBooking{}, err
	}
	observability.ReservationsSaved.Inc()
	return record, nil
}

// IsDuplicate reports whether a record with the same trip fields already
// exists in the saved list.
func (s *ReservationStore) IsDuplicate(ctx context.Context, candidate domain.BookingState) (bool, error) {
	saved, err := s.ListSaved(ctx)
	if err != nil {
		return false, err
	}
	for _, record := range saved {
		if record.BookingState.EqualTrip(candidate) {
			return true, nil
		}
	}
	return false, nil
}

// Remove deletes the record with the given id. A missing id is not an
// error; it reports false and leaves the list unchanged.
func (s *ReservationStore) Remove(ctx context.Context, id string) (bool, error) {
	saved, err := s.ListSaved(ctx)
	if err != nil {
		return false, err
	}
	kept := saved[:0]
	for _, record := range saved {
		if record.ID != id {
			kept = append(kept, record)
		}
	}
	if len(kept) == len(saved) {
		return false, nil
	}
	if err := s.writeList(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// SaveDraft overwrites the single autosave slot.
func (s *ReservationStore) SaveDraft(ctx context.Context, state domain.BookingState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "marshal draft")
	}
	if err := s.kv.Set(ctx, draftKey, data); err != nil {
		observability.StoreFailures.Inc()
		return errors.Wrap(domain.ErrStoreUnavailable, err.Error())
	}
	return nil
}

// LoadDraft returns the autosaved draft, or nil when the slot is empty or
// holds corrupt data.
func (s *ReservationStore) LoadDraft(ctx context.Context) (*domain.BookingState, error) {
	data, err := s.kv.Get(ctx, draftKey)
	if err != nil {
		return nil, errors.Wrap(domain.ErrStoreUnavailable, err.Error())
	}
	if len(data) == 0 {
		return nil, nil
	}
	var state domain.BookingState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.WithField("key", draftKey).Warn("discarding unparsable draft")
		return nil, nil
	}
	return &state, nil
}

func (s *ReservationStore) ClearDraft(ctx context.Context) error {
	if err := s.kv.Del(ctx, draftKey); err != nil {
		return errors.Wrap(domain.ErrStoreUnavailable, err.Error())
	}
	return nil
}

func (s *ReservationStore) writeList(ctx context.Context, saved []domain.SavedBooking) error {
	data, err := json.Marshal(saved)
	if err != nil {
		return errors.Wrap(err, "marshal saved bookings")
	}
	if err := s.kv.Set(ctx, bookingsKey, data); err != nil {
		observability.StoreFailures.Inc()
		return errors.Wrap(domain.ErrStoreUnavailable, err.Error())
	}
	return nil
}
