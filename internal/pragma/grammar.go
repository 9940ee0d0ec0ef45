package pragma

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var constraintLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Version", Pattern: `[0-9xX*]+(\.[0-9xX*]+){0,2}`},
	{Name: "Op", Pattern: `\|\||>=|<=|[\^~><=-]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

var constraintParser = participle.MustBuild[constraintAST](
	participle.Lexer(constraintLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// constraintAST is a disjunction of ranges: "^0.8.0 || 0.7.6".
type constraintAST struct {
	Ranges []*rangeAST `@@ ( "||" @@ )*`
}

// rangeAST is either a hyphen range or a conjunction of comparators:
// "0.8.0 - 0.8.9" or ">=0.8.0 <0.9.0".
type rangeAST struct {
	Hyphen      *hyphenAST       `  @@`
	Comparators []*comparatorAST `| @@+`
}

type hyphenAST struct {
	From string `@Version "-"`
	To   string `@Version`
}

type comparatorAST struct {
	Op      string `@("^" | "~" | ">=" | "<=" | ">" | "<" | "=")?`
	Version string `@Version`
}
