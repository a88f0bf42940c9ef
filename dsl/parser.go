// Package dsl compiles boolean condition expressions into reactive
// variables. It is the declarative surface for conditional styling: widget
// code writes conditions like "hovered && !disabled" against named
// condition variables, and the compiler wires up the equivalent derived
// variable tree.
package dsl

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	exprLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Operator", Pattern: `\|\||&&|!|\(|\)`},
	})

	exprParser = participle.MustBuild[Expr](
		participle.Lexer(exprLexer),
		participle.Elide("Whitespace"),
	)
)

// Expr is the root AST node: one or more and-terms joined by "||".
type Expr struct {
	Pos lexer.Position `parser:""`
	Or  []*AndExpr     `parser:"@@ ( '||' @@ )*"`
}

// AndExpr is one or more unary terms joined by "&&". "&&" binds tighter
// than "||".
type AndExpr struct {
	Terms []*Unary `parser:"@@ ( '&&' @@ )*"`
}

// Unary is an optionally negated term.
type Unary struct {
	Not  bool  `parser:"@'!'?"`
	Term *Term `parser:"@@"`
}

// Term is a named condition or a parenthesized sub-expression.
type Term struct {
	Ident string `parser:"  @Ident"`
	Sub   *Expr  `parser:"| '(' @@ ')'"`
}

// Parse parses a condition expression into its AST.
func Parse(src string) (*Expr, error) {
	expr, err := exprParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse condition %q: %w", src, err)
	}
	return expr, nil
}

// Idents returns the distinct condition names referenced by the expression,
// in first-appearance order.
func (e *Expr) Idents() []string {
	seen := map[string]bool{}
	var out []string
	var walk func(e *Expr)
	walk = func(e *Expr) {
		for _, and := range e.Or {
			for _, u := range and.Terms {
				if u.Term.Sub != nil {
					walk(u.Term.Sub)
					continue
				}
				if !seen[u.Term.Ident] {
					seen[u.Term.Ident] = true
					out = append(out, u.Term.Ident)
				}
			}
		}
	}
	walk(e)
	return out
}
