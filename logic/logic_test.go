package logic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	P = Atom{"P"}
	Q = Atom{"Q"}
	R = Atom{"R"}
)

func TestStructuralEquality(t *testing.T) {
	assert.True(t, Equal(Implies{P, Q}, Implies{Atom{"P"}, Atom{"Q"}}))
	assert.False(t, Equal(Implies{P, Q}, Implies{Q, P}))
	assert.False(t, Equal(P, Provable{P}))
	assert.False(t, Equal(And{P, Q}, Or{P, Q}))
	assert.True(t, Equal(Provable{Not{P}}, Provable{Not{P}}))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(P, nil))
	assert.False(t, Equal(nil, Provable{P}))
}

func TestPrinting(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{P, "P"},
		{Not{Not{P}}, "¬¬P"},
		{Implies{P, Q}, "(P → Q)"},
		{Implies{Not{P}, Implies{Q, R}}, "(¬P → (Q → R))"},
		{Provable{Or{And{P, Q}, Equiv{Q, R}}}, "⊢ ((P ∧ Q) ∨ (Q ↔ R))"},
		{Atom{"Long1"}, "Long1"},
		{Not{Implies{Atom{"Long1"}, Not{Atom{"Long2"}}}}, "¬(Long1 → ¬Long2)"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.v.String())
	}
}

func TestParseFormula(t *testing.T) {
	cases := []struct {
		text string
		want Term
	}{
		{"P", P},
		{"  P  ", P},
		{"P -> Q -> R", Implies{P, Implies{Q, R}}},
		{"(P -> Q) -> R", Implies{Implies{P, Q}, R}},
		{"¬P → Q", Implies{Not{P}, Q}},
		{"~P", Not{P}},
		{"-.P", Not{P}},
		{"not not P", Not{Not{P}}},
		{"-.P->Q", Implies{Not{P}, Q}},
		{"P & Q | R", Or{And{P, Q}, R}},
		{`P /\ Q \/ R`, Or{And{P, Q}, R}},
		{"P <-> Q -> R", Equiv{P, Implies{Q, R}}},
		{"P ↔ Q", Equiv{P, Q}},
		{"((((P))))", P},
		{"Ab1 -> B2", Implies{Atom{"Ab1"}, Atom{"B2"}}},
	}
	for _, tc := range cases {
		got, err := ParseFormula(tc.text)
		require.NoError(t, err, tc.text)
		assert.True(t, Equal(tc.want, got), "%q parsed as %s", tc.text, got)
	}
}

func TestParseFailures(t *testing.T) {
	for _, text := range []string{
		"",
		"   ",
		"(P",
		"P)",
		"P Q",
		"P ->",
		"-> P",
		"p",
		"P $ Q",
		"¬",
	} {
		_, err := ParseFormula(text)
		assert.Error(t, err, text)

		var perr *ParseError
		assert.True(t, errors.As(err, &perr), text)
	}

	_, err := ParseFormula("|- P")
	assert.ErrorIs(t, err, ErrTurnstile)
}

func TestExtendedConnectivesInGoals(t *testing.T) {
	v, err := ParseGoal("P & Q")
	require.NoError(t, err)
	assert.True(t, Equal(And{P, Q}, v))

	v, err = ParseGoal(`|- P \/ Q`)
	require.NoError(t, err)
	assert.True(t, Equal(Provable{Or{P, Q}}, v))

	for _, text := range []string{"P + Q", "P * Q", "P && Q", "P <- Q"} {
		_, err := ParseGoal(text)
		assert.Error(t, err, text)
	}
}

func TestParseGoal(t *testing.T) {
	v, err := ParseGoal("|-(R→(P→R))")
	require.NoError(t, err)
	assert.True(t, Equal(Provable{Implies{R, Implies{P, R}}}, v))

	v, err = ParseGoal("⊢ P")
	require.NoError(t, err)
	assert.True(t, Equal(Provable{P}, v))

	v, err = ParseGoal("P → Q")
	require.NoError(t, err)
	assert.True(t, Equal(Implies{P, Q}, v))

	_, err = ParseGoal("|- |- P")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	terms := []Term{
		P,
		Not{Not{Not{Q}}},
		Implies{Implies{P, Q}, Implies{Not{Q}, Not{P}}},
		Implies{Not{Implies{P, Q}}, R},
		And{Or{P, Q}, Equiv{Not{R}, Implies{P, R}}},
		Axiom2(P, Q, R).Formula,
		Axiom3(Implies{P, Q}, Not{R}).Formula,
	}
	for _, term := range terms {
		got, err := ParseFormula(term.String())
		require.NoError(t, err, term.String())
		assert.True(t, Equal(term, got), term.String())
	}

	goal := Axiom1(P, Q)
	got, err := ParseGoal(goal.String())
	require.NoError(t, err)
	assert.True(t, Equal(goal, got))
}

func TestAxioms(t *testing.T) {
	assert.Equal(t, "⊢ (R → (P → R))", Axiom1(R, P).String())
	assert.Equal(t, "⊢ ((P → (Q → R)) → ((P → Q) → (P → R)))", Axiom2(P, Q, R).String())
	assert.Equal(t, "⊢ ((¬P → ¬Q) → (Q → P))", Axiom3(P, Q).String())
}

func TestModusPonens(t *testing.T) {
	imp := Provable{Implies{P, Q}}

	assert.True(t, Equal(Provable{Q}, CheckModusPonens(P, Q, Provable{P}, imp)))

	assert.Nil(t, CheckModusPonens(P, Q, Provable{Q}, imp), "wrong premise")
	assert.Nil(t, CheckModusPonens(P, R, Provable{P}, imp), "wrong conclusion")
	assert.Nil(t, CheckModusPonens(P, Q, imp, Provable{P}), "swapped premises")
	assert.Nil(t, CheckModusPonens(P, Q, P, imp), "formula instead of provable")
	assert.Nil(t, CheckModusPonens(P, Q, nil, imp))
	assert.Nil(t, CheckModusPonens(nil, Q, Provable{P}, imp))
}

func TestModusPonensOnlyAcceptsExactPremises(t *testing.T) {
	terms := []Term{P, Q, Not{P}, Implies{P, Q}, Implies{Q, P}}
	for _, a := range terms {
		for _, b := range terms {
			for _, x := range terms {
				for _, y := range terms {
					got := CheckModusPonens(a, b, Provable{x}, Provable{y})
					ok := Equal(x, a) && Equal(y, Implies{a, b})
					if ok {
						assert.True(t, Equal(Provable{b}, got))
					} else {
						assert.Nil(t, got, "%s %s %s %s", a, b, x, y)
					}
				}
			}
		}
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "⊢ (R→(P→R))", Display("|-(R->(P->R))"))
	assert.Equal(t, "¬P ↔ ¬Q", Display("-.P <-> ~Q"))
	assert.Equal(t, "P ∧ Q ∨ R", Display(`P /\ Q \/ R`))
}
