// Package booking holds the wizard's reducer: a pure transition function
// over the in-progress BookingState. It performs no I/O and trusts its
// caller for input validation; every action is total and unknown actions
// return the input unchanged.
package booking

import "github.com/mkraev/booking-wizard/internal/domain"

// Wizard steps.
const (
	StepConfiguration  = 1
	StepDailySelection = 2
	StepSummary        = 3
)

// Initial returns the canonical starting state.
func Initial() domain.BookingState {
	return domain.BookingState{
		NumDays:         1,
		BoardType:       domain.BoardNone,
		DailySelections: map[int]domain.DaySelection{},
		Step:            StepConfiguration,
	}
}

// Transition applies an action and returns the resulting state. The input
// state is never mutated.
func Transition(state domain.BookingState, action Action) domain.BookingState {
	switch action.Kind {
	case KindSetField:
		return applyField(state, action.Field, action.Value)
	case KindSetDailySelection:
		return applySelection(state, action.Day, action.Selection)
	case KindSetStep:
		next := state.Clone()
		next.Step = action.Step
		return next
	case KindReset:
		return Initial()
	case KindLoadState:
		if action.State == nil {
			return state
		}
		loaded := action.State.Clone()
		if loaded.DailySelections == nil {
			loaded.DailySelections = map[int]domain.DaySelection{}
		}
		return loaded
	}
	return state
}

// applyField replaces a single top-level field. A value of the wrong type,
// or an unknown field name, leaves the state unchanged so that Transition
// stays total.
func applyField(state domain.BookingState, field string, value any) domain.BookingState {
	next := state.Clone()
	switch field {
	case FieldCitizenship:
		v, ok := value.(string)
		if !ok {
			return state
		}
		next.Citizenship = v
	case FieldStartDate:
		v, ok := value.(string)
		if !ok {
			return state
		}
		next.StartDate = v
	case FieldDestination:
		v, ok := value.(string)
		if !ok {
			return state
		}
		next.Destination = v
	case FieldNumDays:
		v, ok := asInt(value)
		if !ok {
			return state
		}
		next.NumDays = v
		// Reducing the trip truncates day slots past the new end; growing
		// it leaves existing days alone (new days stay absent until the
		// configuration step re-initializes them).
		for day := range next.DailySelections {
			if day >= v {
				delete(next.DailySelections, day)
			}
		}
	case FieldBoardType:
		v, ok := boardType(value)
		if !ok {
			return state
		}
		next.BoardType = v
		normalizeSelections(&next)
	case FieldDailySelections:
		v, ok := value.(map[int]domain.DaySelection)
		if !ok {
			return state
		}
		next.DailySelections = make(map[int]domain.DaySelection, len(v))
		for day, sel := range v {
			next.DailySelections[day] = sel
		}
	default:
		return state
	}
	return next
}

// applySelection merges a partial selection into one day, creating the entry
// if absent. Board-type rules are enforced here rather than left to callers:
// under HB picking a lunch clears the dinner and vice versa, and under NB
// meal ids always merge as null.
func applySelection(state domain.BookingState, day int, patch SelectionPatch) domain.BookingState {
	next := state.Clone()
	sel := next.DailySelections[day]

	if patch.SetHotel {
		sel.HotelID = patch.HotelID
	}
	if patch.SetLunch {
		sel.LunchID = patch.LunchID
		if state.BoardType == domain.BoardHalf && patch.LunchID != nil {
			sel.DinnerID = nil
		}
	}
	if patch.SetDinner {
		sel.DinnerID = patch.DinnerID
		if state.BoardType == domain.BoardHalf && patch.DinnerID != nil {
			sel.LunchID = nil
		}
	}
	if state.BoardType == domain.BoardNone {
		sel.LunchID = nil
		sel.DinnerID = nil
	}

	next.DailySelections[day] = sel
	return next
}

// normalizeSelections drops meal choices that the new board type no longer
// allows. HB keeps the lunch when a day had both meals.
func normalizeSelections(state *domain.BookingState) {
	for day, sel := range state.DailySelections {
		switch state.BoardType {
		case domain.BoardNone:
			sel.LunchID = nil
			sel.DinnerID = nil
		case domain.BoardHalf:
			if sel.LunchID != nil && sel.DinnerID != nil {
				sel.DinnerID = nil
			}
		default:
			continue
		}
		state.DailySelections[day] = sel
	}
}

// EmptySelections builds a fresh all-null selection map for numDays days.
// The configuration step dispatches this as a bulk SetField when entering
// the daily-selection step.
func EmptySelections(numDays int) map[int]domain.DaySelection {
	selections := make(map[int]domain.DaySelection, numDays)
	for i := 0; i < numDays; i++ {
		selections[i] = domain.DaySelection{}
	}
	return selections
}

// CanReachSummary reports whether every day has a hotel assigned. Step
// gating is caller-enforced; the reducer itself never blocks a SetStep.
func CanReachSummary(state domain.BookingState) bool {
	for i := 0; i < state.NumDays; i++ {
		sel, ok := state.DailySelections[i]
		if !ok || sel.HotelID == nil {
			return false
		}
	}
	return true
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}

func boardType(value any) (domain.BoardType, bool) {
	var code string
	switch v := value.(type) {
	case domain.BoardType:
		code = string(v)
	case string:
		code = v
	default:
		return "", false
	}
	switch b := domain.BoardType(code); b {
	case domain.BoardNone, domain.BoardHalf, domain.BoardFull:
		return b, true
	}
	return "", false
}
