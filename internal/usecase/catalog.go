package usecase

import (
	"math"

	"github.com/nutrimize/backend/internal/domain"
)

// productKey is the composite identity used for deduplication: normalized
// name plus every nutrient/price field rounded to 2 decimals plus the
// three dietary flags. The scoped ID is deliberately not part of the key,
// so a user's private copy of a global product collapses onto the global
// one when the full profile matches.
type productKey struct {
	name       string
	kcal       float64
	fat        float64
	satFat     float64
	carbs      float64
	sugars     float64
	protein    float64
	dairyProt  float64
	animalProt float64
	plantProt  float64
	salt       float64
	price100g  float64
	vegan      bool
	vegetarian bool
	dairyFree  bool
}

func keyOf(p domain.Product) productKey {
	return productKey{
		name:       normalizeName(p.Name),
		kcal:       round2(p.Kcal),
		fat:        round2(p.Fat),
		satFat:     round2(p.SatFat),
		carbs:      round2(p.Carbs),
		sugars:     round2(p.Sugars),
		protein:    round2(p.Protein),
		dairyProt:  round2(p.DairyProt),
		animalProt: round2(p.AnimalProt),
		plantProt:  round2(p.PlantProt),
		salt:       round2(p.Salt),
		price100g:  round2(p.Price100g),
		vegan:      p.Vegan,
		vegetarian: p.Vegetarian,
		dairyFree:  p.DairyFree,
	}
}

// CombineProducts merges the global catalog with a user's private products
// into one candidate list, keeping the first occurrence of any fully
// identical profile. Input order is preserved, so the result is stable
// within one call.
func CombineProducts(global, user []domain.Product) []domain.Product {
	seen := make(map[productKey]struct{}, len(global)+len(user))
	combined := make([]domain.Product, 0, len(global)+len(user))

	for _, p := range append(append([]domain.Product{}, global...), user...) {
		k := keyOf(p)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		combined = append(combined, p)
	}
	return combined
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
