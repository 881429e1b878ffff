package domain

import (
	"time"

	"github.com/google/uuid"
)

// Allocation is one product's chosen gram quantity plus its derived
// nutrient and cost contribution (grams/100 × per-100g field, rounded).
type Allocation struct {
	ProductName   string  `json:"productName"`
	Grams         float64 `json:"grams"`
	Kcal          float64 `json:"kcal"`
	Cost          float64 `json:"cost"`
	Fat           float64 `json:"fat"`
	SatFat        float64 `json:"satFat"`
	Carbs         float64 `json:"carbs"`
	Protein       float64 `json:"protein"`
	DairyProtein  float64 `json:"dairyProtein"`
	AnimalProtein float64 `json:"animalProtein"`
	PlantProtein  float64 `json:"plantProtein"`
	Sugars        float64 `json:"sugars"`
	Salt          float64 `json:"salt"`
}

// PlanTotals are the aggregate sums of the already-rounded allocation
// entries, so the totals always agree with the displayed breakdown.
type PlanTotals struct {
	TotalKcal          float64 `json:"totalKcal"`
	TotalCost          float64 `json:"totalCost"`
	TotalFat           float64 `json:"totalFat"`
	TotalCarbs         float64 `json:"totalCarbs"`
	TotalProtein       float64 `json:"totalProtein"`
	TotalDairyProtein  float64 `json:"totalDairyProtein"`
	TotalAnimalProtein float64 `json:"totalAnimalProtein"`
	TotalPlantProtein  float64 `json:"totalPlantProtein"`
	TotalSugar         float64 `json:"totalSugar"`
	TotalSatFat        float64 `json:"totalSatFat"`
	TotalSalt          float64 `json:"totalSalt"`
}

// Distinguished status tags on MenuPlan. Any other value is a raw solver
// status (Infeasible, Unbounded, NotSolved) surfaced as-is.
const (
	StatusOptimal         = "Optimal"
	StatusInvalidProducts = "InvalidProducts"
)

// MenuPlan is the optimizer's sole result contract: either a structured
// failure (InvalidProducts, or a non-optimal solver status with an empty
// plan) or an Optimal plan with totals. Callers branch on Status.
type MenuPlan struct {
	Status          string       `json:"status"`
	Message         string       `json:"message,omitempty"`
	InvalidProducts []string     `json:"invalidProducts,omitempty"`
	Plan            []Allocation `json:"plan"`
	PlanTotals
}

// SavedMenu is a plan the user chose to keep, with the request flags that
// produced it. Names are unique per user, case-insensitively.
type SavedMenu struct {
	ID           int64         `json:"id"`
	UserID       uuid.UUID     `json:"userId"`
	Name         string        `json:"name"`
	Plan         []Allocation  `json:"plan"`
	Vegan        bool          `json:"vegan"`
	Vegetarian   bool          `json:"vegetarian"`
	DairyFree    bool          `json:"dairyFree"`
	Restrictions []Restriction `json:"restrictions"`
	CreatedAt    time.Time     `json:"createdAt"`
	PlanTotals
}
