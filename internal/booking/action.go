package booking

import "github.com/mkraev/booking-wizard/internal/domain"

// ActionKind tags the reducer action variants.
type ActionKind string

const (
	KindSetField          ActionKind = "SetField"
	KindSetDailySelection ActionKind = "SetDailySelection"
	KindSetStep           ActionKind = "SetStep"
	KindReset             ActionKind = "Reset"
	KindLoadState         ActionKind = "LoadState"
)

// Top-level field names accepted by SetField.
const (
	FieldCitizenship     = "citizenship"
	FieldStartDate       = "startDate"
	FieldNumDays         = "numDays"
	FieldDestination     = "destination"
	FieldBoardType       = "boardType"
	FieldDailySelections = "dailySelections"
)

// SelectionPatch is a partial DaySelection. Each field only applies when its
// Set flag is true; a true flag with a nil pointer clears the slot.
type SelectionPatch struct {
	HotelID   *int
	SetHotel  bool
	LunchID   *int
	SetLunch  bool
	DinnerID  *int
	SetDinner bool
}

// Action is the tagged union dispatched into Transition. Only the payload
// fields belonging to the Kind are read.
type Action struct {
	Kind      ActionKind
	Field     string
	Value     any
	Day       int
	Selection SelectionPatch
	Step      int
	State     *domain.BookingState
}

func SetField(field string, value any) Action {
	return Action{Kind: KindSetField, Field: field, Value: value}
}

func SetDailySelection(day int, patch SelectionPatch) Action {
	return Action{Kind: KindSetDailySelection, Day: day, Selection: patch}
}

func SetStep(step int) Action {
	return Action{Kind: KindSetStep, Step: step}
}

func Reset() Action {
	return Action{Kind: KindReset}
}

func LoadState(state domain.BookingState) Action {
	return Action{Kind: KindLoadState, State: &state}
}
