// Package pricing computes booking totals by resolving per-day selections
// against the catalog. Missing selections, unknown destinations and unknown
// ids all degrade to a zero contribution; the form may be mid-edit, so the
// engine never errors and never mutates its input.
package pricing

import (
	"github.com/mkraev/booking-wizard/internal/catalog"
	"github.com/mkraev/booking-wizard/internal/domain"
)

type Engine struct {
	catalog *catalog.Catalog
}

func New(cat *catalog.Catalog) *Engine {
	return &Engine{catalog: cat}
}

// ComputeTotal sums every day's hotel and meal prices across the trip.
func (e *Engine) ComputeTotal(booking domain.BookingState) float64 {
	var total float64
	for day := 0; day < booking.NumDays; day++ {
		total += e.ComputeDayTotal(booking, day)
	}
	return total
}

// ComputeDayTotal resolves one day's selection. An absent selection is
// treated as all-null.
func (e *Engine) ComputeDayTotal(booking domain.BookingState, day int) float64 {
	sel := booking.DailySelections[day]

	var total float64
	if sel.HotelID != nil {
		if hotel, ok := e.catalog.HotelByID(booking.Destination, *sel.HotelID); ok {
			total += hotel.Price
		}
	}
	if sel.LunchID != nil {
		if meal, ok := e.catalog.MealByID(booking.Destination, *sel.LunchID, domain.MealLunch); ok {
			total += meal.Price
		}
	}
	if sel.DinnerID != nil {
		if meal, ok := e.catalog.MealByID(booking.Destination, *sel.DinnerID, domain.MealDinner); ok {
			total += meal.Price
		}
	}
	return total
}
