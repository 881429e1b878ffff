// Package milp builds and solves small mixed-integer linear programs.
//
// Problems are built through a declarative API (variables, linear
// expressions, constraints, a minimization objective) and solved by
// branch-and-bound over LP relaxations. The relaxations are handled by
// gonum's dense simplex. Every problem is fully local: building and
// solving holds no package-level state, so independent problems may be
// solved concurrently.
package milp

import (
	"fmt"
	"math"
)

// Relation compares a linear expression to its right-hand side.
type Relation int

const (
	LessEq Relation = iota
	GreaterEq
	Equal
)

func (r Relation) String() string {
	switch r {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	default:
		return "="
	}
}

// Var is a decision variable belonging to one Problem. Bounds are
// inclusive; Upper may be +Inf for an unbounded variable.
type Var struct {
	idx     int
	name    string
	lower   float64
	upper   float64
	integer bool
}

// Name returns the variable's name as given at creation.
func (v *Var) Name() string { return v.name }

type term struct {
	v    *Var
	coef float64
}

// Expr is a linear expression, a sum of coefficient·variable terms.
// Adding the same variable twice accumulates its coefficient.
type Expr struct {
	terms []term
}

// NewExpr returns an empty linear expression.
func NewExpr() *Expr { return &Expr{} }

// Add appends coef·v to the expression and returns the expression for
// chaining.
func (e *Expr) Add(v *Var, coef float64) *Expr {
	e.terms = append(e.terms, term{v: v, coef: coef})
	return e
}

// Len returns the number of terms in the expression.
func (e *Expr) Len() int { return len(e.terms) }

type constraint struct {
	name string
	expr *Expr
	rel  Relation
	rhs  float64
}

// Problem is a minimization MILP under construction.
type Problem struct {
	name      string
	vars      []*Var
	objective *Expr
	cons      []constraint
}

// NewProblem creates an empty minimization problem.
func NewProblem(name string) *Problem {
	return &Problem{name: name, objective: NewExpr()}
}

// NewVar adds a continuous variable with the given inclusive bounds.
// Panics on lower > upper or a non-finite lower bound: those are
// programming errors in the model, not solvable states.
func (p *Problem) NewVar(name string, lower, upper float64) *Var {
	if math.IsInf(lower, 0) || math.IsNaN(lower) || math.IsNaN(upper) {
		panic(fmt.Sprintf("milp: variable %q has invalid lower bound %v", name, lower))
	}
	if lower > upper {
		panic(fmt.Sprintf("milp: variable %q has lower bound %v above upper bound %v", name, lower, upper))
	}
	v := &Var{idx: len(p.vars), name: name, lower: lower, upper: upper}
	p.vars = append(p.vars, v)
	return v
}

// NewBinary adds a 0/1 integer variable.
func (p *Problem) NewBinary(name string) *Var {
	v := p.NewVar(name, 0, 1)
	v.integer = true
	return v
}

// SetObjective sets the expression to minimize.
func (p *Problem) SetObjective(e *Expr) {
	p.objective = e
}

// AddConstraint adds expr rel rhs to the problem. The name is kept for
// diagnostics only and need not be unique.
func (p *Problem) AddConstraint(name string, e *Expr, rel Relation, rhs float64) {
	p.cons = append(p.cons, constraint{name: name, expr: e, rel: rel, rhs: rhs})
}

// NumVars returns the number of decision variables.
func (p *Problem) NumVars() int { return len(p.vars) }

// NumConstraints returns the number of constraints.
func (p *Problem) NumConstraints() int { return len(p.cons) }

// objectiveCoeffs returns the dense objective vector.
func (p *Problem) objectiveCoeffs() []float64 {
	c := make([]float64, len(p.vars))
	for _, t := range p.objective.terms {
		c[t.v.idx] += t.coef
	}
	return c
}
