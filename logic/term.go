package logic

import "fmt"

// Value is anything that can travel along a wire: a Term or a Provable.
// A nil Value is the empty signal.
type Value interface {
	fmt.Stringer
	isValue()
}

// Term is a propositional formula. The set of implementations is closed:
// Atom, Not, Implies, And, Or and Equiv.
type Term interface {
	Value
	isTerm()
}

// Atom is an atomic proposition such as P or Q.
type Atom struct {
	Name string
}

// Not is a negation.
type Not struct {
	X Term
}

// Implies is a material implication L → R.
type Implies struct {
	L, R Term
}

// And is a conjunction. No gate produces it yet; it exists so that goal
// strings and premise labels can mention it.
type And struct {
	L, R Term
}

// Or is a disjunction.
type Or struct {
	L, R Term
}

// Equiv is a biconditional.
type Equiv struct {
	L, R Term
}

// Provable is the judgement that its formula has been derived. It is a
// Value but not a Term, so provables never nest.
type Provable struct {
	Formula Term
}

func (Atom) isValue()     {}
func (Not) isValue()      {}
func (Implies) isValue()  {}
func (And) isValue()      {}
func (Or) isValue()       {}
func (Equiv) isValue()    {}
func (Provable) isValue() {}

func (Atom) isTerm()    {}
func (Not) isTerm()     {}
func (Implies) isTerm() {}
func (And) isTerm()     {}
func (Or) isTerm()      {}
func (Equiv) isTerm()   {}

func (a Atom) String() string {
	return a.Name
}

func (n Not) String() string {
	return "¬" + n.X.String()
}

func (i Implies) String() string {
	return binary(i.L, "→", i.R)
}

func (a And) String() string {
	return binary(a.L, "∧", a.R)
}

func (o Or) String() string {
	return binary(o.L, "∨", o.R)
}

func (e Equiv) String() string {
	return binary(e.L, "↔", e.R)
}

func (p Provable) String() string {
	return "⊢ " + p.Formula.String()
}

func binary(l Term, op string, r Term) string {
	return fmt.Sprintf("(%s %s %s)", l.String(), op, r.String())
}

// Equal reports whether a and b are structurally identical. Two empty
// signals are equal; an empty signal never equals a non-empty one.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case Atom:
		y, ok := b.(Atom)
		return ok && x.Name == y.Name
	case Not:
		y, ok := b.(Not)
		return ok && Equal(x.X, y.X)
	case Implies:
		y, ok := b.(Implies)
		return ok && Equal(x.L, y.L) && Equal(x.R, y.R)
	case And:
		y, ok := b.(And)
		return ok && Equal(x.L, y.L) && Equal(x.R, y.R)
	case Or:
		y, ok := b.(Or)
		return ok && Equal(x.L, y.L) && Equal(x.R, y.R)
	case Equiv:
		y, ok := b.(Equiv)
		return ok && Equal(x.L, y.L) && Equal(x.R, y.R)
	case Provable:
		y, ok := b.(Provable)
		return ok && Equal(x.Formula, y.Formula)
	default:
		panic(fmt.Sprintf("logic: unhandled value %T", a))
	}
}

// IsProvable reports whether v is a Provable judgement.
func IsProvable(v Value) bool {
	_, ok := v.(Provable)
	return ok
}

// AsTerm returns v as a Term if it is one.
func AsTerm(v Value) (Term, bool) {
	t, ok := v.(Term)
	return t, ok
}
