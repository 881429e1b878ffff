package domain

// DietTarget is the caller-supplied specification for one optimization run.
// All nutrient targets are absolute daily amounts (kcal for Kcal, grams for
// everything else). Zero is a valid target (the band collapses to [0,0]),
// so the fields carry no required-binding tags; Validate rejects negatives.
type DietTarget struct {
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
	SatFat  float64 `json:"satFat"`
	Carbs   float64 `json:"carbs"`
	Sugars  float64 `json:"sugars"`
	Salt    float64 `json:"salt"`

	Vegan      bool `json:"vegan"`
	Vegetarian bool `json:"vegetarian"`
	DairyFree  bool `json:"dairyFree"`

	Restrictions []Restriction `json:"restrictions"`
}

// Validate checks the target before any catalog access. Vegan diets are
// dairy-free by definition, so vegan without dairyFree or vegetarian is a
// contradiction the caller has to resolve, not one we correct silently.
func (t *DietTarget) Validate() error {
	for _, v := range []float64{t.Kcal, t.Protein, t.Fat, t.SatFat, t.Carbs, t.Sugars, t.Salt} {
		if v < 0 {
			return ErrInvalidTarget
		}
	}
	if t.Vegan && !(t.DairyFree || t.Vegetarian) {
		return ErrVeganRequiresDairyFree
	}
	return nil
}
