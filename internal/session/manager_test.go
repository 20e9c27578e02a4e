package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/mkraev/booking-wizard/internal/booking"
	"github.com/mkraev/booking-wizard/internal/observability"
	"github.com/mkraev/booking-wizard/internal/session"
	"github.com/mkraev/booking-wizard/internal/store"
)

func newManager(debounce time.Duration) (*session.Manager, *store.ReservationStore) {
	st := store.NewReservationStore(store.NewMemoryKV(), observability.NewLogger())
	return session.NewManager(st, observability.NewLogger(), debounce), st
}

func TestDispatchUpdatesState(t *testing.T) {
	mgr, _ := newManager(time.Hour)
	defer mgr.Close()

	state := mgr.Dispatch(booking.SetField(booking.FieldCitizenship, "UAE"))
	if state.Citizenship != "UAE" {
		t.Errorf("expected citizenship UAE, got %q", state.Citizenship)
	}
	if got := mgr.State(); got.Citizenship != "UAE" {
		t.Errorf("State() out of sync: %q", got.Citizenship)
	}
}

func TestStateReturnsACopy(t *testing.T) {
	mgr, _ := newManager(time.Hour)
	defer mgr.Close()

	id := 101
	mgr.Dispatch(booking.SetDailySelection(0, booking.SelectionPatch{HotelID: &id, SetHotel: true}))

	snapshot := mgr.State()
	snapshot.DailySelections[0] = booking.EmptySelections(1)[0]

	if sel := mgr.State().DailySelections[0]; sel.HotelID == nil {
		t.Error("mutating a snapshot leaked into the manager")
	}
}

func TestDebouncedAutosave(t *testing.T) {
	mgr, st := newManager(20 * time.Millisecond)
	defer mgr.Close()

	mgr.Dispatch(booking.SetField(booking.FieldCitizenship, "Turkey"))
	mgr.Dispatch(booking.SetField(booking.FieldDestination, "Turkey"))

	deadline := time.Now().Add(2 * time.Second)
	for {
		draft, err := st.LoadDraft(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if draft != nil {
			if draft.Destination != "Turkey" {
				t.Errorf("unexpected draft: %+v", draft)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("draft was never autosaved")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFlushWritesImmediately(t *testing.T) {
	mgr, st := newManager(time.Hour)
	defer mgr.Close()

	mgr.Dispatch(booking.SetField(booking.FieldCitizenship, "Italy"))
	if err := mgr.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}

	draft, err := st.LoadDraft(context.Background())
	if err != nil || draft == nil {
		t.Fatalf("expected a draft after flush, err=%v", err)
	}
	if draft.Citizenship != "Italy" {
		t.Errorf("unexpected draft: %+v", draft)
	}
}

func TestResetClearsDraft(t *testing.T) {
	mgr, st := newManager(time.Hour)
	defer mgr.Close()

	mgr.Dispatch(booking.SetField(booking.FieldCitizenship, "Italy"))
	if err := mgr.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}

	mgr.Dispatch(booking.Reset())

	draft, err := st.LoadDraft(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if draft != nil {
		t.Errorf("expected draft cleared on reset, got %+v", draft)
	}
	if got := mgr.State(); got.Citizenship != "" {
		t.Errorf("expected initial state after reset, got %+v", got)
	}
}

func TestRestoreDraft(t *testing.T) {
	mgr, st := newManager(time.Hour)
	defer mgr.Close()

	found, err := mgr.RestoreDraft(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("restore reported a draft in an empty store")
	}

	mgr.Dispatch(booking.SetField(booking.FieldCitizenship, "UAE"))
	mgr.Dispatch(booking.SetField(booking.FieldNumDays, 3))
	if err := mgr.Flush(context.Background()); err != nil {
		t.Fatal(err)
	}

	fresh := session.NewManager(st, observability.NewLogger(), time.Hour)
	defer fresh.Close()
	found, err = fresh.RestoreDraft(context.Background())
	if err != nil || !found {
		t.Fatalf("expected restored draft, found=%v err=%v", found, err)
	}
	got := fresh.State()
	if got.Citizenship != "UAE" || got.NumDays != 3 {
		t.Errorf("restored state differs: %+v", got)
	}
}
