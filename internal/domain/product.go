package domain

import "fmt"

// IDScope distinguishes the two product ID spaces. Global catalog products
// and user-owned products both use int64 keys, so the scope is part of the
// identifier and maps keyed by ProductID never collide across the sources.
type IDScope int

const (
	ScopeGlobal IDScope = iota
	ScopeUser
)

// ProductID identifies a candidate product across both catalogs.
type ProductID struct {
	Scope IDScope
	ID    int64
}

// GlobalID returns the identifier of a global catalog product.
func GlobalID(id int64) ProductID { return ProductID{Scope: ScopeGlobal, ID: id} }

// UserOwnedID returns the identifier of a user-private product.
func UserOwnedID(id int64) ProductID { return ProductID{Scope: ScopeUser, ID: id} }

func (id ProductID) String() string {
	if id.Scope == ScopeUser {
		return fmt.Sprintf("user_%d", id.ID)
	}
	return fmt.Sprintf("%d", id.ID)
}

// Product is a read-only candidate for menu optimization. All nutrient
// fields are per 100 g; Price100g is the price of 100 g. The protein
// sub-components (dairy/animal/plant) are treated independently and need
// not sum to Protein.
type Product struct {
	ID         ProductID `json:"-"`
	Name       string    `json:"productName"`
	Kcal       float64   `json:"kcal"`
	Fat        float64   `json:"fat"`
	SatFat     float64   `json:"satFat"`
	Carbs      float64   `json:"carbs"`
	Sugars     float64   `json:"sugars"`
	Protein    float64   `json:"protein"`
	DairyProt  float64   `json:"dairyProt"`
	AnimalProt float64   `json:"animalProt"`
	PlantProt  float64   `json:"plantProt"`
	Salt       float64   `json:"salt"`
	Price100g  float64   `json:"price100g"`
	Vegan      bool      `json:"vegan"`
	Vegetarian bool      `json:"vegetarian"`
	DairyFree  bool      `json:"dairyFree"`
}
