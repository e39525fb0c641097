// Package circuitfile reads and writes the .circuit text format, a nested
// object notation describing a goal and the components placed on the grid.
package circuitfile

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type File struct {
	Main Object `@@`
}

type Object struct {
	Pos   lexer.Position
	Name  string `@Ident "{"`
	Items []Item `@@* "}"`
}

type Item struct {
	Field  *Field  `(@@ |`
	Object *Object `@@) ";"?`
}

func (o *Object) FindField(s string) (Value, bool) {
	for _, it := range o.Items {
		if it.Field == nil {
			continue
		}

		if it.Field.Field == s {
			return it.Field.Value, true
		}
	}

	return Value{}, false
}

// Children returns the nested objects in the order they appear.
func (o *Object) Children() []Object {
	var r []Object
	for _, it := range o.Items {
		if it.Object != nil {
			r = append(r, *it.Object)
		}
	}
	return r
}

type Field struct {
	Field string `@Ident ":"`
	Value Value  `@@`
}

type Value struct {
	Boolean *string  `@("true" | "false") |`
	List    *List    `@@ |`
	Object  *Object  `@@ |`
	Number  *float64 `@Number |`
	String  *string  `@String`
}

type List struct {
	Values []Value `"[" (@@ ( "," @@ )*)? "]"`
}

var circuitLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `(?://|#)[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[{}\[\]:;,]`},
})

var Parser = participle.MustBuild[File](
	participle.Lexer(circuitLexer),
	participle.Unquote("String"),
	participle.Elide("Comment", "Whitespace"),
)
