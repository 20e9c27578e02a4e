package domain

// BoardType is the meal-inclusion plan for a stay.
type BoardType string

const (
	BoardNone BoardType = "NB"
	BoardHalf BoardType = "HB"
	BoardFull BoardType = "FB"
)

func (b BoardType) Name() string {
	switch b {
	case BoardNone:
		return "No Board"
	case BoardHalf:
		return "Half Board"
	case BoardFull:
		return "Full Board"
	}
	return string(b)
}

// DaySelection holds the hotel and meal choice for one day of the trip.
// Nil means "nothing selected".
type DaySelection struct {
	HotelID  *int `json:"hotelId"`
	LunchID  *int `json:"lunchId"`
	DinnerID *int `json:"dinnerId"`
}

// BookingState is the single in-progress booking. Day keys are 0-based and
// contiguous up to NumDays once the daily-selection step has been entered.
type BookingState struct {
	Citizenship     string               `json:"citizenship"`
	StartDate       string               `json:"startDate"`
	NumDays         int                  `json:"numDays"`
	Destination     string               `json:"destination"`
	BoardType       BoardType            `json:"boardType"`
	DailySelections map[int]DaySelection `json:"dailySelections"`
	Step            int                  `json:"step"`
}

// SavedBooking is a BookingState committed to the durable list. Never
// mutated after creation.
type SavedBooking struct {
	BookingState
	ID      string `json:"id"`
	SavedAt int64  `json:"savedAt"`
}

// Clone returns a deep copy; the selections map is never shared.
func (s BookingState) Clone() BookingState {
	out := s
	out.DailySelections = make(map[int]DaySelection, len(s.DailySelections))
	for day, sel := range s.DailySelections {
		out.DailySelections[day] = sel
	}
	return out
}

// EqualTrip reports whether two states describe the same trip, ignoring the
// wizard step. Used for duplicate-save detection.
func (s BookingState) EqualTrip(o BookingState) bool {
	if s.Citizenship != o.Citizenship ||
		s.Destination != o.Destination ||
		s.StartDate != o.StartDate ||
		s.NumDays != o.NumDays ||
		s.BoardType != o.BoardType {
		return false
	}
	if len(s.DailySelections) != len(o.DailySelections) {
		return false
	}
	for day, sel := range s.DailySelections {
		other, ok := o.DailySelections[day]
		if !ok || !sel.Equal(other) {
			return false
		}
	}
	return true
}

func (d DaySelection) Equal(o DaySelection) bool {
	return intPtrEqual(d.HotelID, o.HotelID) &&
		intPtrEqual(d.LunchID, o.LunchID) &&
		intPtrEqual(d.DinnerID, o.DinnerID)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
