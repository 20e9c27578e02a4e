// Package catalog is the read-only reference data: hotels and meals scoped
// per destination, plus the country list. Loaded once at process start,
// never mutated afterwards. Lookup misses are answered with empty values,
// never errors; callers treat absence as a zero-price contribution.
package catalog

import "github.com/mkraev/booking-wizard/internal/domain"

type Catalog struct {
	countries []domain.Country
	hotels    map[string][]domain.Hotel
	meals     map[string]domain.MealPlan
}

func (c *Catalog) Countries() []domain.Country {
	return c.countries
}

// HotelsFor returns the hotel list for a destination, empty for unknown
// destinations.
func (c *Catalog) HotelsFor(destination string) []domain.Hotel {
	return c.hotels[destination]
}

// MealsFor returns the lunch/dinner lists for a destination. ok is false for
// unknown destinations, meaning "no meals available".
func (c *Catalog) MealsFor(destination string) (domain.MealPlan, bool) {
	plan, ok := c.meals[destination]
	return plan, ok
}

func (c *Catalog) HotelByID(destination string, id int) (domain.Hotel, bool) {
	for _, h := range c.hotels[destination] {
		if h.ID == id {
			return h, true
		}
	}
	return domain.Hotel{}, false
}

// MealByID looks a meal up scoped by destination and kind. Ids are not
// globally unique, so the kind matters.
func (c *Catalog) MealByID(destination string, id int, kind domain.MealKind) (domain.Meal, bool) {
	plan, ok := c.meals[destination]
	if !ok {
		return domain.Meal{}, false
	}
	list := plan.Lunch
	if kind == domain.MealDinner {
		list = plan.Dinner
	}
	for _, m := range list {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Meal{}, false
}
