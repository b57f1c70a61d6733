// Package expr evaluates the small arithmetic expressions accepted for
// transform parameters: numbers, + - * / and parentheses, the sqrt function
// (or a leading √), and the constant pi (or π).
//
// Expressions are parsed by a fixed recursive-descent grammar and evaluated
// over the resulting tree; user text is never executed.
package expr

import (
	"fmt"
	"math"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// ParseError reports an expression that is not well-formed or does not
// evaluate to a finite number.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot evaluate %q: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var parser = participle.MustBuild[Expression](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
)

// Eval evaluates text. Blank text evaluates to 0.
func Eval(text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	tree, err := parser.ParseString("", text)
	if err != nil {
		return 0, &ParseError{Text: text, Err: err}
	}
	v := tree.eval()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Text: text, Err: fmt.Errorf("result %v is not a finite number", v)}
	}
	return v, nil
}

// MustEval is like Eval but panics on error. Intended for constants.
func MustEval(text string) float64 {
	v, err := Eval(text)
	if err != nil {
		panic(err)
	}
	return v
}

// EvalAll evaluates every text in order and stops at the first error.
func EvalAll(texts ...string) ([]float64, error) {
	out := make([]float64, len(texts))
	for i, t := range texts {
		v, err := Eval(t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *Expression) eval() float64 {
	v := e.Head.eval()
	for _, t := range e.Tail {
		switch t.Op {
		case "+":
			v += t.Term.eval()
		case "-":
			v -= t.Term.eval()
		}
	}
	return v
}

func (t *Term) eval() float64 {
	v := t.Head.eval()
	for _, f := range t.Tail {
		switch f.Op {
		case "*":
			v *= f.Factor.eval()
		case "/":
			v /= f.Factor.eval()
		}
	}
	return v
}

func (u *Unary) eval() float64 {
	switch {
	case u.Negate != nil:
		return -u.Negate.eval()
	case u.Plus != nil:
		return u.Plus.eval()
	case u.Root != nil:
		return math.Sqrt(u.Root.eval())
	default:
		return u.Primary.eval()
	}
}

func (p *Primary) eval() float64 {
	switch {
	case p.Number != nil:
		return *p.Number
	case p.Sqrt != nil:
		return math.Sqrt(p.Sqrt.eval())
	case p.Pi:
		return math.Pi
	default:
		return p.Group.eval()
	}
}
