package milp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// simplexTol is the pivot tolerance handed to gonum's simplex.
const simplexTol = 1e-10

// relaxResult is the outcome of one LP relaxation solve.
type relaxResult struct {
	status Status
	obj    float64
	x      []float64 // in original variable space
}

// solveRelaxation solves the LP relaxation of p under the given variable
// bounds, which may be tighter than the declared ones during branching.
//
// The problem is converted to simplex standard form (minimize c'x subject
// to Ax = b, x >= 0): each variable is shifted by its lower bound, finite
// upper bounds become rows, and inequality rows get slack or surplus
// columns.
func (p *Problem) solveRelaxation(lower, upper []float64) (relaxResult, error) {
	n := len(p.vars)
	if n == 0 {
		return relaxResult{status: StatusOptimal}, nil
	}

	for j := 0; j < n; j++ {
		if lower[j] > upper[j]+1e-12 {
			return relaxResult{status: StatusInfeasible}, nil
		}
	}

	type row struct {
		coefs []float64
		rel   Relation
		rhs   float64
	}
	rows := make([]row, 0, len(p.cons)+n)

	for _, con := range p.cons {
		coefs := make([]float64, n)
		for _, t := range con.expr.terms {
			coefs[t.v.idx] += t.coef
		}
		// Shift to x = lower + x' with x' >= 0.
		rhs := con.rhs
		for j := 0; j < n; j++ {
			if coefs[j] != 0 && lower[j] != 0 {
				rhs -= coefs[j] * lower[j]
			}
		}
		rows = append(rows, row{coefs: coefs, rel: con.rel, rhs: rhs})
	}

	for j := 0; j < n; j++ {
		if math.IsInf(upper[j], 1) {
			continue
		}
		coefs := make([]float64, n)
		coefs[j] = 1
		rows = append(rows, row{coefs: coefs, rel: LessEq, rhs: upper[j] - lower[j]})
	}

	// With no rows at all the problem decomposes per variable: any
	// negative cost on a variable without an upper bound is unbounded,
	// otherwise every variable sits at its lower bound.
	if len(rows) == 0 {
		c := p.objectiveCoeffs()
		obj := 0.0
		x := make([]float64, n)
		for j := 0; j < n; j++ {
			if c[j] < 0 {
				return relaxResult{status: StatusUnbounded}, nil
			}
			x[j] = lower[j]
			obj += c[j] * lower[j]
		}
		return relaxResult{status: StatusOptimal, obj: obj, x: x}, nil
	}

	nSlack := 0
	for _, r := range rows {
		if r.rel != Equal {
			nSlack++
		}
	}

	m := len(rows)
	a := mat.NewDense(m, n+nSlack, nil)
	b := make([]float64, m)
	c := make([]float64, n+nSlack)
	copy(c, p.objectiveCoeffs())

	slack := n
	for i, r := range rows {
		for j := 0; j < n; j++ {
			if r.coefs[j] != 0 {
				a.Set(i, j, r.coefs[j])
			}
		}
		switch r.rel {
		case LessEq:
			a.Set(i, slack, 1)
			slack++
		case GreaterEq:
			a.Set(i, slack, -1)
			slack++
		}
		b[i] = r.rhs
	}

	// The bound shift contributes a constant to the objective.
	offset := 0.0
	for j := 0; j < n; j++ {
		offset += c[j] * lower[j]
	}

	opt, xStd, err := lp.Simplex(c, a, b, simplexTol, nil)
	if err != nil {
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return relaxResult{status: StatusInfeasible}, nil
		case errors.Is(err, lp.ErrUnbounded):
			return relaxResult{status: StatusUnbounded}, nil
		default:
			return relaxResult{status: StatusNotSolved}, fmt.Errorf("milp: simplex failed on %q: %w", p.name, err)
		}
	}

	x := make([]float64, n)
	for j := 0; j < n; j++ {
		x[j] = xStd[j] + lower[j]
	}
	return relaxResult{status: StatusOptimal, obj: opt + offset, x: x}, nil
}
