package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nutrimize/backend/internal/domain"
	"github.com/nutrimize/backend/internal/milp"
)

// Solver runs a built optimization model. It is an interface so tests can
// count or stub solver invocations.
type Solver interface {
	Solve(p *milp.Problem) (*milp.Solution, error)
}

// branchAndBound is the default Solver backed by the milp package.
type branchAndBound struct {
	opts milp.Options
}

func (s branchAndBound) Solve(p *milp.Problem) (*milp.Solution, error) {
	return p.SolveWith(s.opts)
}

// PlannerConfig holds the optimization model constants.
type PlannerConfig struct {
	// MinProducts is the diversity floor: the minimum number of distinct
	// products a plan must use.
	MinProducts int
	// MinPortionGrams is the smallest meaningful portion of a selected
	// product.
	MinPortionGrams float64
	// MaxPortionGrams caps the grams of any single product.
	MaxPortionGrams float64
	// MaxSolverNodes caps the branch-and-bound search.
	MaxSolverNodes int
}

// PlannerService generates cost-minimal diet menus. Each call is
// stateless and side-effect-free: it reads a catalog snapshot, builds and
// solves one model, and returns.
type PlannerService struct {
	products domain.ProductRepository
	solver   Solver
	cfg      PlannerConfig
}

// NewPlannerService creates a planner. A nil solver selects the built-in
// branch-and-bound.
func NewPlannerService(products domain.ProductRepository, solver Solver, cfg PlannerConfig) *PlannerService {
	if cfg.MinProducts == 0 {
		cfg.MinProducts = 10
	}
	if cfg.MinPortionGrams == 0 {
		cfg.MinPortionGrams = 50
	}
	if cfg.MaxPortionGrams == 0 {
		cfg.MaxPortionGrams = 400
	}
	if solver == nil {
		opts := milp.DefaultOptions
		if cfg.MaxSolverNodes > 0 {
			opts.MaxNodes = cfg.MaxSolverNodes
		}
		solver = branchAndBound{opts: opts}
	}
	return &PlannerService{products: products, solver: solver, cfg: cfg}
}

// GenerateMenu selects products and gram quantities meeting the target at
// minimum cost.
//
// Expected user-facing failures come back in two forms: flag and catalog
// problems as domain sentinel errors (ErrVeganRequiresDairyFree,
// ErrNoProducts, ErrNoMatchingProducts), and restriction or solver
// problems as a MenuPlan whose Status is not "Optimal". Infrastructure
// failures are returned as wrapped errors.
func (s *PlannerService) GenerateMenu(ctx context.Context, userID uuid.UUID, target *domain.DietTarget) (*domain.MenuPlan, error) {
	if target == nil {
		return nil, domain.ErrInvalidTarget
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	global, err := s.products.GlobalProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global catalog: %w", err)
	}
	private, err := s.products.UserProducts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user catalog: %w", err)
	}

	products := CombineProducts(global, private)
	if len(products) == 0 {
		return nil, domain.ErrNoProducts
	}

	products = FilterByDiet(products, target.Vegan, target.Vegetarian, target.DairyFree)
	if len(products) == 0 {
		return nil, domain.ErrNoMatchingProducts
	}

	if invalid := InvalidRestrictionNames(products, target.Restrictions); len(invalid) > 0 {
		return &domain.MenuPlan{
			Status:          domain.StatusInvalidProducts,
			InvalidProducts: invalid,
			Message:         "The following products were not found in the database: " + strings.Join(invalid, ", "),
			Plan:            []domain.Allocation{},
		}, nil
	}

	prob, grams := s.buildModel(products, target)

	sol, err := s.solver.Solve(prob)
	if err != nil {
		return nil, fmt.Errorf("solving diet model: %w", err)
	}
	if sol.Status != milp.StatusOptimal {
		return &domain.MenuPlan{
			Status:  sol.Status.String(),
			Message: "No optimal solution found.",
			Plan:    []domain.Allocation{},
		}, nil
	}

	return assemblePlan(products, grams, sol), nil
}

// nutrientBand is one [lower×target, upper×target] pair on a per-100g
// product field.
type nutrientBand struct {
	name   string
	field  func(domain.Product) float64
	target float64
	lower  float64
	upper  float64
}

// buildModel constructs the MILP over the filtered, validated candidates.
// It returns the problem and the grams variables aligned with products.
func (s *PlannerService) buildModel(products []domain.Product, t *domain.DietTarget) (*milp.Problem, []*milp.Var) {
	prob := milp.NewProblem("balanced_diet")

	n := len(products)
	grams := make([]*milp.Var, n)
	used := make([]*milp.Var, n)
	for i, p := range products {
		grams[i] = prob.NewVar("x_"+p.ID.String(), 0, s.cfg.MaxPortionGrams)
		used[i] = prob.NewBinary("y_" + p.ID.String())
	}

	// Minimize total cost.
	cost := milp.NewExpr()
	for i, p := range products {
		cost.Add(grams[i], p.Price100g/100)
	}
	prob.SetObjective(cost)

	// Protein-source sub-targets. Branch order matters: vegan before
	// vegetarian before dairyFree; it is not commutative.
	var animalTarget, dairyTarget, plantTarget float64
	switch {
	case t.Vegan:
		plantTarget = t.Protein
	case t.Vegetarian:
		dairyTarget = 0.6 * t.Protein
		plantTarget = 0.4 * t.Protein
	case t.DairyFree:
		animalTarget = 0.6 * t.Protein
		plantTarget = 0.4 * t.Protein
	default:
		animalTarget = 0.4 * t.Protein
		dairyTarget = 0.3 * t.Protein
		plantTarget = 0.3 * t.Protein
	}

	bands := []nutrientBand{
		{"calories", func(p domain.Product) float64 { return p.Kcal }, t.Kcal, 0.9, 1.3},
		{"protein", func(p domain.Product) float64 { return p.Protein }, t.Protein, 0.9, 1.6},
		{"fat", func(p domain.Product) float64 { return p.Fat }, t.Fat, 0.6, 1.1},
		{"saturatedFat", func(p domain.Product) float64 { return p.SatFat }, t.SatFat, 0.6, 1.1},
		{"carbs", func(p domain.Product) float64 { return p.Carbs }, t.Carbs, 0.6, 1.1},
		{"sugars", func(p domain.Product) float64 { return p.Sugars }, t.Sugars, 0.6, 1.1},
		{"salt", func(p domain.Product) float64 { return p.Salt }, t.Salt, 0.6, 1.1},
	}
	// A sub-target of zero adds no constraint: the source stays
	// unconstrained, it is not forced to zero.
	if animalTarget > 0 {
		bands = append(bands, nutrientBand{"animalProtein", func(p domain.Product) float64 { return p.AnimalProt }, animalTarget, 0.7, 1.1})
	}
	if dairyTarget > 0 {
		bands = append(bands, nutrientBand{"dairyProtein", func(p domain.Product) float64 { return p.DairyProt }, dairyTarget, 0.7, 1.1})
	}
	if plantTarget > 0 {
		bands = append(bands, nutrientBand{"plantProtein", func(p domain.Product) float64 { return p.PlantProt }, plantTarget, 0.7, 1.1})
	}

	for _, b := range bands {
		expr := milp.NewExpr()
		for i, p := range products {
			expr.Add(grams[i], b.field(p)/100)
		}
		prob.AddConstraint(b.name+"Min", expr, milp.GreaterEq, b.target*b.lower)
		prob.AddConstraint(b.name+"Max", expr, milp.LessEq, b.target*b.upper)
	}

	// Big-M usage linking: x is zero when unused and within the portion
	// window when used.
	for i, p := range products {
		maxLink := milp.NewExpr().Add(grams[i], 1).Add(used[i], -s.cfg.MaxPortionGrams)
		prob.AddConstraint("maxLink_"+p.ID.String(), maxLink, milp.LessEq, 0)

		minLink := milp.NewExpr().Add(grams[i], 1).Add(used[i], -s.cfg.MinPortionGrams)
		prob.AddConstraint("minLink_"+p.ID.String(), minLink, milp.GreaterEq, 0)
	}

	// Diversity floor.
	diversity := milp.NewExpr()
	for i := range products {
		diversity.Add(used[i], 1)
	}
	prob.AddConstraint("minProducts", diversity, milp.GreaterEq, float64(s.cfg.MinProducts))

	// User restrictions, matched by normalized name. Restrictions on the
	// same product accumulate.
	for _, r := range t.Restrictions {
		want := normalizeName(r.Product)
		for i, p := range products {
			if normalizeName(p.Name) != want {
				continue
			}
			switch r.Type {
			case domain.RestrictionExclude:
				prob.AddConstraint("exclude_"+p.ID.String(), milp.NewExpr().Add(grams[i], 1), milp.Equal, 0)
				prob.AddConstraint("excludeUse_"+p.ID.String(), milp.NewExpr().Add(used[i], 1), milp.Equal, 0)
			case domain.RestrictionMinWeight:
				prob.AddConstraint("minWeight_"+p.ID.String(), milp.NewExpr().Add(grams[i], 1), milp.GreaterEq, r.Grams)
			case domain.RestrictionMaxWeight:
				prob.AddConstraint("maxWeight_"+p.ID.String(), milp.NewExpr().Add(grams[i], 1), milp.LessEq, r.Grams)
			}
		}
	}

	return prob, grams
}

// assemblePlan extracts nonzero allocations and aggregates totals. Each
// allocation is rounded first (1 decimal for nutrients, 2 for cost) and
// the totals sum the rounded values, so totals always agree with the
// displayed breakdown.
func assemblePlan(products []domain.Product, grams []*milp.Var, sol *milp.Solution) *domain.MenuPlan {
	plan := make([]domain.Allocation, 0, len(products))
	var totals domain.PlanTotals

	for i, p := range products {
		g := sol.Value(grams[i])
		if g <= 1e-6 {
			continue
		}
		a := domain.Allocation{
			ProductName:   p.Name,
			Grams:         round1(g),
			Kcal:          round1(p.Kcal * g / 100),
			Cost:          round2(p.Price100g * g / 100),
			Fat:           round1(p.Fat * g / 100),
			SatFat:        round1(p.SatFat * g / 100),
			Carbs:         round1(p.Carbs * g / 100),
			Protein:       round1(p.Protein * g / 100),
			DairyProtein:  round1(p.DairyProt * g / 100),
			AnimalProtein: round1(p.AnimalProt * g / 100),
			PlantProtein:  round1(p.PlantProt * g / 100),
			Sugars:        round1(p.Sugars * g / 100),
			Salt:          round1(p.Salt * g / 100),
		}
		plan = append(plan, a)

		totals.TotalKcal += a.Kcal
		totals.TotalCost += a.Cost
		totals.TotalFat += a.Fat
		totals.TotalSatFat += a.SatFat
		totals.TotalCarbs += a.Carbs
		totals.TotalProtein += a.Protein
		totals.TotalDairyProtein += a.DairyProtein
		totals.TotalAnimalProtein += a.AnimalProtein
		totals.TotalPlantProtein += a.PlantProtein
		totals.TotalSugar += a.Sugars
		totals.TotalSalt += a.Salt
	}

	totals.TotalKcal = round1(totals.TotalKcal)
	totals.TotalCost = round2(totals.TotalCost)
	totals.TotalFat = round1(totals.TotalFat)
	totals.TotalSatFat = round1(totals.TotalSatFat)
	totals.TotalCarbs = round1(totals.TotalCarbs)
	totals.TotalProtein = round1(totals.TotalProtein)
	totals.TotalDairyProtein = round1(totals.TotalDairyProtein)
	totals.TotalAnimalProtein = round1(totals.TotalAnimalProtein)
	totals.TotalPlantProtein = round1(totals.TotalPlantProtein)
	totals.TotalSugar = round1(totals.TotalSugar)
	totals.TotalSalt = round1(totals.TotalSalt)

	return &domain.MenuPlan{
		Status:     domain.StatusOptimal,
		Plan:       plan,
		PlanTotals: totals,
	}
}
