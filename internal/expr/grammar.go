package expr

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// exprLexer tokenizes parameter expressions. The square-root sign and the
// Greek pi are accepted as single-rune tokens next to their ASCII spellings.
var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Root", Pattern: `√`},
	{Name: "Pi", Pattern: `π`},
	{Name: "Punct", Pattern: `[-+*/()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Expression is a sum of terms.
type Expression struct {
	Head *Term     `@@`
	Tail []*OpTerm `@@*`
}

// OpTerm is one "+ term" or "- term" continuation.
type OpTerm struct {
	Op   string `@("+" | "-")`
	Term *Term  `@@`
}

// Term is a product of unary factors.
type Term struct {
	Head *Unary      `@@`
	Tail []*OpFactor `@@*`
}

// OpFactor is one "* factor" or "/ factor" continuation.
type OpFactor struct {
	Op     string `@("*" | "/")`
	Factor *Unary `@@`
}

// Unary is a primary optionally prefixed by a sign or a square-root sign.
type Unary struct {
	Negate  *Unary   `  "-" @@`
	Plus    *Unary   `| "+" @@`
	Root    *Unary   `| Root @@`
	Primary *Primary `| @@`
}

// Primary is a literal, a constant, a sqrt call or a parenthesized
// expression.
type Primary struct {
	Number *float64    `  @Number`
	Sqrt   *Expression `| "sqrt" "(" @@ ")"`
	Pi     bool        `| @("pi" | Pi)`
	Group  *Expression `| "(" @@ ")"`
}
