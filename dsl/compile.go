package dsl

import (
	"fmt"

	"github.com/grindlemire/go-vars"
)

// Scope maps condition names to the boolean variables backing them.
type Scope map[string]vars.Var[bool]

// Compile builds a reactive boolean variable evaluating the expression over
// the scope. The result recomputes lazily: each node is a memoized Map or
// Map2 over its operands, so a condition read costs at most one evaluation
// per changed source version. Unknown names are an error.
func Compile(e *Expr, scope Scope) (vars.Var[bool], error) {
	var or vars.Var[bool]
	for _, and := range e.Or {
		term, err := compileAnd(and, scope)
		if err != nil {
			return nil, err
		}
		if or == nil {
			or = term
			continue
		}
		or = vars.Map2(or, term, func(a, b bool) bool { return a || b })
	}
	return or, nil
}

// CompileString parses and compiles in one step.
func CompileString(src string, scope Scope) (vars.Var[bool], error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Compile(e, scope)
}

func compileAnd(e *AndExpr, scope Scope) (vars.Var[bool], error) {
	var and vars.Var[bool]
	for _, u := range e.Terms {
		term, err := compileUnary(u, scope)
		if err != nil {
			return nil, err
		}
		if and == nil {
			and = term
			continue
		}
		and = vars.Map2(and, term, func(a, b bool) bool { return a && b })
	}
	return and, nil
}

func compileUnary(u *Unary, scope Scope) (vars.Var[bool], error) {
	term, err := compileTerm(u.Term, scope)
	if err != nil {
		return nil, err
	}
	if u.Not {
		return vars.Map(term, func(b bool) bool { return !b }), nil
	}
	return term, nil
}

func compileTerm(t *Term, scope Scope) (vars.Var[bool], error) {
	if t.Sub != nil {
		return Compile(t.Sub, scope)
	}
	v, ok := scope[t.Ident]
	if !ok {
		return nil, fmt.Errorf("unknown condition %q", t.Ident)
	}
	return v, nil
}

// Case pairs a condition expression with the value active while it holds.
type Case[T any] struct {
	Expr  string
	Value vars.Var[T]
}

// When compiles every case's expression against the scope and builds a
// conditional variable over them. Declaration order is the priority order:
// the first case whose condition is true wins.
func When[T any](def vars.Var[T], scope Scope, cases ...Case[T]) (*vars.WhenVar[T], error) {
	built := make([]vars.WhenCase[T], 0, len(cases))
	for _, c := range cases {
		cond, err := CompileString(c.Expr, scope)
		if err != nil {
			return nil, err
		}
		built = append(built, vars.Case(cond, c.Value))
	}
	return vars.When(def, built...), nil
}
