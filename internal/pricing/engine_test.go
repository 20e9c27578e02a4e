package pricing_test

import (
	"context"
	"testing"

	"github.com/mkraev/booking-wizard/internal/booking"
	"github.com/mkraev/booking-wizard/internal/catalog"
	"github.com/mkraev/booking-wizard/internal/domain"
	"github.com/mkraev/booking-wizard/internal/pricing"
)

func intp(v int) *int { return &v }

func newEngine(t *testing.T) *pricing.Engine {
	t.Helper()
	cat, err := catalog.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return pricing.New(cat)
}

func TestSingleDayHotelOnly(t *testing.T) {
	engine := newEngine(t)
	state := domain.BookingState{
		Citizenship: "Turkey",
		StartDate:   "2025-01-01",
		NumDays:     1,
		Destination: "Turkey",
		BoardType:   domain.BoardNone,
		DailySelections: map[int]domain.DaySelection{
			0: {HotelID: intp(101)},
		},
		Step: booking.StepSummary,
	}

	if total := engine.ComputeTotal(state); total != 120 {
		t.Errorf("expected total 120, got %v", total)
	}
}

func TestMultiDayWithMeals(t *testing.T) {
	engine := newEngine(t)
	state := domain.BookingState{
		Citizenship: "Turkey",
		StartDate:   "2025-01-01",
		NumDays:     2,
		Destination: "Turkey",
		BoardType:   domain.BoardFull,
		DailySelections: map[int]domain.DaySelection{
			0: {HotelID: intp(101), LunchID: intp(4), DinnerID: intp(1)},
			1: {HotelID: intp(102), LunchID: intp(5), DinnerID: intp(2)},
		},
		Step: booking.StepSummary,
	}

	// 120+10+15 + 90+8+18
	if total := engine.ComputeTotal(state); total != 261 {
		t.Errorf("expected total 261, got %v", total)
	}
}

func TestTotalIsSumOfDayTotals(t *testing.T) {
	engine := newEngine(t)
	state := domain.BookingState{
		NumDays:     3,
		Destination: "UAE",
		BoardType:   domain.BoardHalf,
		DailySelections: map[int]domain.DaySelection{
			0: {HotelID: intp(201), LunchID: intp(9)},
			2: {HotelID: intp(202), DinnerID: intp(7)},
		},
	}

	var sum float64
	for i := 0; i < state.NumDays; i++ {
		sum += engine.ComputeDayTotal(state, i)
	}
	if total := engine.ComputeTotal(state); total != sum {
		t.Errorf("total %v != sum of day totals %v", total, sum)
	}
}

func TestAllNullSelectionsIsZero(t *testing.T) {
	engine := newEngine(t)
	state := booking.Initial()
	state.NumDays = 4
	state.Destination = "Italy"
	state.DailySelections = booking.EmptySelections(4)

	if total := engine.ComputeTotal(state); total != 0 {
		t.Errorf("expected 0, got %v", total)
	}
}

func TestIdempotentAndNonMutating(t *testing.T) {
	engine := newEngine(t)
	state := domain.BookingState{
		NumDays:     1,
		Destination: "Turkey",
		DailySelections: map[int]domain.DaySelection{
			0: {HotelID: intp(102), DinnerID: intp(3)},
		},
	}
	before := state.Clone()

	first := engine.ComputeTotal(state)
	second := engine.ComputeTotal(state)
	if first != second {
		t.Errorf("totals differ across calls: %v vs %v", first, second)
	}
	if !state.EqualTrip(before) {
		t.Error("ComputeTotal mutated the booking")
	}
}

func TestUnknownDestinationContributesZero(t *testing.T) {
	engine := newEngine(t)
	state := domain.BookingState{
		NumDays:     2,
		Destination: "Atlantis",
		DailySelections: map[int]domain.DaySelection{
			0: {HotelID: intp(101), LunchID: intp(4)},
			1: {HotelID: intp(102)},
		},
	}

	if total := engine.ComputeTotal(state); total != 0 {
		t.Errorf("expected 0 for unknown destination, got %v", total)
	}
}

func TestUnknownIDsContributeZero(t *testing.T) {
	engine := newEngine(t)
	state := domain.BookingState{
		NumDays:     1,
		Destination: "Turkey",
		DailySelections: map[int]domain.DaySelection{
			0: {HotelID: intp(999), LunchID: intp(4)},
		},
	}

	if total := engine.ComputeTotal(state); total != 10 {
		t.Errorf("expected only the lunch price 10, got %v", total)
	}
}

func TestMealLookupIsKindScoped(t *testing.T) {
	engine := newEngine(t)
	// Meal 1 is a Turkish dinner; referencing it as lunch must not price.
	state := domain.BookingState{
		NumDays:     1,
		Destination: "Turkey",
		DailySelections: map[int]domain.DaySelection{
			0: {LunchID: intp(1)},
		},
	}

	if total := engine.ComputeTotal(state); total != 0 {
		t.Errorf("expected 0 for a dinner id in the lunch slot, got %v", total)
	}
}

func TestDaysBeyondNumDaysAreIgnored(t *testing.T) {
	engine := newEngine(t)
	state := domain.BookingState{
		NumDays:     1,
		Destination: "Turkey",
		DailySelections: map[int]domain.DaySelection{
			0: {HotelID: intp(101)},
			5: {HotelID: intp(102)},
		},
	}

	if total := engine.ComputeTotal(state); total != 120 {
		t.Errorf("expected 120, got %v", total)
	}
}
