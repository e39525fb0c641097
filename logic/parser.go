package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var formulaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Turnstile", Pattern: `\|-|⊢`},
	{Name: "Equiv", Pattern: `↔|<->`},
	{Name: "Implies", Pattern: `→|->`},
	{Name: "Not", Pattern: `¬|~|-\.|not`},
	{Name: "And", Pattern: `∧|/\\|&`},
	{Name: "Or", Pattern: `∨|\\/|\|`},
	{Name: "Atom", Pattern: `[A-Z][a-zA-Z0-9]*`},
	{Name: "Punct", Pattern: `[()]`},
})

type goalNode struct {
	Proved  bool       `@Turnstile?`
	Formula *equivNode `@@`
}

type equivNode struct {
	Left  *impliesNode `@@`
	Right *equivNode   `( Equiv @@ )?`
}

type impliesNode struct {
	Left  *orNode      `@@`
	Right *impliesNode `( Implies @@ )?`
}

type orNode struct {
	Left  *andNode `@@`
	Right *orNode  `( Or @@ )?`
}

type andNode struct {
	Left  *unaryNode `@@`
	Right *andNode   `( And @@ )?`
}

type unaryNode struct {
	Not   *unaryNode `  Not @@`
	Group *equivNode `| "(" @@ ")"`
	Atom  *string    `| @Atom`
}

var goalParser = participle.MustBuild[goalNode](
	participle.Lexer(formulaLexer),
	participle.Elide("Whitespace"),
)

// ErrTurnstile is returned by ParseFormula when the text is a provable
// judgement rather than a plain formula.
var ErrTurnstile = errors.New("unexpected turnstile in formula")

// ParseError describes text that is not a well-formed formula or goal.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %q: %s", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parse(text string) (*goalNode, error) {
	node, err := goalParser.ParseString("", text)
	if err != nil {
		return nil, &ParseError{Text: text, Err: err}
	}
	return node, nil
}

// ParseFormula parses a single formula. Accepted spellings are ¬ ~ -. not
// for negation, → -> for implication, ∧ /\ & for conjunction, ∨ \/ | for
// disjunction and ↔ <-> for equivalence. Implication and the other binary
// connectives associate to the right; negation binds tightest.
//
// Only negation and implication belong to the puzzle's own language. The
// conjunction, disjunction and equivalence spellings are accepted on top of
// it, so a goal such as "P & Q" parses as a conjunction where a stricter
// reader would reject & as an unknown character. Only premise labels can
// carry these connectives onto a board.
func ParseFormula(text string) (Term, error) {
	node, err := parse(text)
	if err != nil {
		return nil, err
	}
	if node.Proved {
		return nil, &ParseError{Text: text, Err: ErrTurnstile}
	}
	return node.Formula.term(), nil
}

// ParseGoal parses either a formula or a provable judgement written with a
// leading |- or ⊢.
func ParseGoal(text string) (Value, error) {
	node, err := parse(text)
	if err != nil {
		return nil, err
	}
	f := node.Formula.term()
	if node.Proved {
		return Provable{f}, nil
	}
	return f, nil
}

func (n *equivNode) term() Term {
	l := n.Left.term()
	if n.Right == nil {
		return l
	}
	return Equiv{l, n.Right.term()}
}

func (n *impliesNode) term() Term {
	l := n.Left.term()
	if n.Right == nil {
		return l
	}
	return Implies{l, n.Right.term()}
}

func (n *orNode) term() Term {
	l := n.Left.term()
	if n.Right == nil {
		return l
	}
	return Or{l, n.Right.term()}
}

func (n *andNode) term() Term {
	l := n.Left.term()
	if n.Right == nil {
		return l
	}
	return And{l, n.Right.term()}
}

func (n *unaryNode) term() Term {
	switch {
	case n.Not != nil:
		return Not{n.Not.term()}
	case n.Group != nil:
		return n.Group.term()
	default:
		return Atom{*n.Atom}
	}
}

var displayReplacer = strings.NewReplacer(
	"<->", "↔",
	"->", "→",
	"-.", "¬",
	"~", "¬",
	"|-", "⊢ ",
	`/\`, "∧",
	`\/`, "∨",
)

// Display rewrites the ASCII spellings in a goal string to their Unicode
// symbols for banners and tooltips. The text is not parsed.
func Display(text string) string {
	return displayReplacer.Replace(text)
}
