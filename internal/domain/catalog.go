package domain

type Country struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Hotel struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Meal struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// MealKind scopes meal lookups; ids are only unique per (destination, kind).
type MealKind string

const (
	MealLunch  MealKind = "lunch"
	MealDinner MealKind = "dinner"
)

type MealPlan struct {
	Lunch  []Meal `json:"lunch"`
	Dinner []Meal `json:"dinner"`
}
