package domain

import (
	"encoding/json"
	"fmt"
)

// RestrictionType is the kind of per-product override a user can request.
type RestrictionType string

const (
	RestrictionExclude   RestrictionType = "exclude"
	RestrictionMinWeight RestrictionType = "min_weight"
	RestrictionMaxWeight RestrictionType = "max_weight"
)

// Restriction is a user-supplied override for one named product. Grams is
// meaningful only for min_weight/max_weight; the JSON boundary rejects
// records that omit it where it is required, so the model builder never
// sees a half-formed restriction.
type Restriction struct {
	Type    RestrictionType `json:"type"`
	Product string          `json:"product"`
	Grams   float64         `json:"value,omitempty"`
}

// UnmarshalJSON validates the tagged record at the boundary instead of
// passing loosely-typed maps into the optimizer.
func (r *Restriction) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type    RestrictionType `json:"type"`
		Product string          `json:"product"`
		Value   *float64        `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Type {
	case RestrictionExclude:
		// No value needed; ignore one if present.
	case RestrictionMinWeight, RestrictionMaxWeight:
		if raw.Value == nil {
			return fmt.Errorf("restriction %q on %q: missing value", raw.Type, raw.Product)
		}
		if *raw.Value < 0 {
			return fmt.Errorf("restriction %q on %q: value must be non-negative", raw.Type, raw.Product)
		}
		r.Grams = *raw.Value
	default:
		return fmt.Errorf("unknown restriction type %q", raw.Type)
	}

	r.Type = raw.Type
	r.Product = raw.Product
	return nil
}
