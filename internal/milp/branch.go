package milp

import (
	"math"
)

// Status is the terminal state of a solve.
type Status int

const (
	StatusNotSolved Status = iota
	StatusOptimal
	StatusInfeasible
	StatusUnbounded
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	default:
		return "NotSolved"
	}
}

// Solution holds the outcome of a solve. Variable values are meaningful
// only when Status is StatusOptimal.
type Solution struct {
	Status    Status
	Objective float64
	values    []float64
}

// Value returns the solved value of v, or 0 if the solve did not reach an
// optimum.
func (s *Solution) Value(v *Var) float64 {
	if s.values == nil || v.idx >= len(s.values) {
		return 0
	}
	return s.values[v.idx]
}

// Options tune the branch-and-bound search.
type Options struct {
	// IntTol is the tolerance within which a relaxation value counts as
	// integral.
	IntTol float64
	// MaxNodes caps the number of explored branch-and-bound nodes. A search
	// that exhausts the cap before proving optimality reports NotSolved.
	MaxNodes int
}

// DefaultOptions are sized for catalogs of a few hundred products.
var DefaultOptions = Options{
	IntTol:   1e-6,
	MaxNodes: 100000,
}

type node struct {
	lower []float64
	upper []float64
}

// Solve runs branch-and-bound with DefaultOptions.
func (p *Problem) Solve() (*Solution, error) {
	return p.SolveWith(DefaultOptions)
}

// SolveWith runs branch-and-bound on the problem. Infeasible and unbounded
// models are reported through Solution.Status, not as errors; the error
// return is reserved for numerical failures inside the simplex.
func (p *Problem) SolveWith(opts Options) (*Solution, error) {
	if opts.IntTol <= 0 {
		opts.IntTol = DefaultOptions.IntTol
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = DefaultOptions.MaxNodes
	}

	n := len(p.vars)
	root := node{lower: make([]float64, n), upper: make([]float64, n)}
	for j, v := range p.vars {
		root.lower[j] = v.lower
		root.upper[j] = v.upper
	}

	var (
		incumbent *Solution
		incObj    = math.Inf(1)
		stack     = []node{root}
		explored  = 0
	)

	for len(stack) > 0 {
		if explored >= opts.MaxNodes {
			return &Solution{Status: StatusNotSolved}, nil
		}
		explored++

		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		res, err := p.solveRelaxation(nd.lower, nd.upper)
		if err != nil {
			return &Solution{Status: StatusNotSolved}, err
		}

		switch res.status {
		case StatusInfeasible:
			continue
		case StatusUnbounded:
			// An unbounded relaxation anywhere means the MILP itself has no
			// finite optimum.
			return &Solution{Status: StatusUnbounded}, nil
		}

		// Bound: a relaxation no better than the incumbent cannot improve.
		if res.obj >= incObj-1e-9 {
			continue
		}

		branchVar := p.mostFractional(res.x, opts.IntTol)
		if branchVar < 0 {
			// Integral solution, new incumbent.
			incObj = res.obj
			incumbent = &Solution{Status: StatusOptimal, Objective: res.obj, values: res.x}
			continue
		}

		frac := res.x[branchVar]
		down := node{lower: cloneBounds(nd.lower), upper: cloneBounds(nd.upper)}
		down.upper[branchVar] = math.Floor(frac)
		up := node{lower: cloneBounds(nd.lower), upper: cloneBounds(nd.upper)}
		up.lower[branchVar] = math.Ceil(frac)

		// Depth-first, exploring the rounding-nearest child first.
		if frac-math.Floor(frac) < 0.5 {
			stack = append(stack, up, down)
		} else {
			stack = append(stack, down, up)
		}
	}

	if incumbent != nil {
		return incumbent, nil
	}
	return &Solution{Status: StatusInfeasible}, nil
}

// mostFractional picks the integer variable whose relaxation value is
// farthest from integral, or -1 if all integer variables are integral
// within tol.
func (p *Problem) mostFractional(x []float64, tol float64) int {
	best := -1
	bestDist := tol
	for j, v := range p.vars {
		if !v.integer {
			continue
		}
		_, frac := math.Modf(x[j])
		dist := math.Min(frac, 1-frac)
		if dist > bestDist {
			bestDist = dist
			best = j
		}
	}
	return best
}

func cloneBounds(b []float64) []float64 {
	out := make([]float64, len(b))
	copy(out, b)
	return out
}
