package usecase

import (
	"strings"

	"github.com/nutrimize/backend/internal/domain"
)

// normalizeName prepares a product name for case-insensitive comparison.
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FilterByDiet applies the hard dietary eligibility filters. Vegan takes
// precedence over vegetarian (vegan products are a subset of vegetarian
// ones); dairyFree applies on top of either branch.
func FilterByDiet(products []domain.Product, vegan, vegetarian, dairyFree bool) []domain.Product {
	out := make([]domain.Product, 0, len(products))

	if vegan {
		for _, p := range products {
			if p.Vegan {
				out = append(out, p)
			}
		}
	} else if vegetarian {
		for _, p := range products {
			if p.Vegetarian || p.Vegan {
				out = append(out, p)
			}
		}
	} else {
		out = append(out, products...)
	}

	if dairyFree {
		kept := out[:0]
		for _, p := range out {
			if p.DairyFree {
				kept = append(kept, p)
			}
		}
		out = kept
	}
	return out
}

// InvalidRestrictionNames returns the product names of every restriction
// that cannot be matched against the filtered candidate list. A non-empty
// result means the optimization model must not be built.
func InvalidRestrictionNames(products []domain.Product, restrictions []domain.Restriction) []string {
	if len(restrictions) == 0 {
		return nil
	}

	valid := make(map[string]struct{}, len(products))
	for _, p := range products {
		valid[normalizeName(p.Name)] = struct{}{}
	}

	var invalid []string
	for _, r := range restrictions {
		name := normalizeName(r.Product)
		if name == "" {
			continue
		}
		if _, ok := valid[name]; !ok {
			invalid = append(invalid, r.Product)
		}
	}
	return invalid
}
