package logic

// Axiom1 is the schema A → (B → A).
func Axiom1(a, b Term) Provable {
	return Provable{Implies{a, Implies{b, a}}}
}

// Axiom2 is the schema (A → (B → C)) → ((A → B) → (A → C)).
func Axiom2(a, b, c Term) Provable {
	return Provable{Implies{
		Implies{a, Implies{b, c}},
		Implies{Implies{a, b}, Implies{a, c}},
	}}
}

// Axiom3 is the schema (¬A → ¬B) → (B → A).
func Axiom3(a, b Term) Provable {
	return Provable{Implies{
		Implies{Not{a}, Not{b}},
		Implies{b, a},
	}}
}

// CheckModusPonens verifies one application of modus ponens. Given the
// formulas A and B, a proof of A and a proof of A → B it returns ⊢ B.
// Anything else, including a proof of the wrong formula, yields nil: the
// rule checks a derivation, it never searches for one.
func CheckModusPonens(a, b Term, provA, provImp Value) Value {
	if a == nil || b == nil {
		return nil
	}
	if !Equal(provA, Provable{a}) {
		return nil
	}
	if !Equal(provImp, Provable{Implies{a, b}}) {
		return nil
	}
	return Provable{b}
}
