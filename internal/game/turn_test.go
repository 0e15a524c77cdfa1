package game

import "testing"

func TestTurnControlEmptyPrefixAlwaysTrue(t *testing.T) {
	if !turnControl(nil, 3) {
		t.Error("empty prefix must always allow turnControl")
	}
}

func TestTurnControlRequiresSkipOrReverseTail(t *testing.T) {
	prefix := []Card{{Suit: Hearts, Rank: Three}}
	if turnControl(prefix, 3) {
		t.Error("a non-skip/reverse tail must never satisfy turnControl")
	}
}

func TestTurnControlTwoPlayerPureJackAlwaysTrue(t *testing.T) {
	// Pure-Jack stacks always keep the turn in 2-player matches, regardless
	// of how many Jacks are stacked (the one invariant spec.md itself names
	// as unambiguous).
	for n := 1; n <= 4; n++ {
		prefix := make([]Card, n)
		for i := range prefix {
			prefix[i] = Card{Suit: Hearts, Rank: Jack}
		}
		if !turnControl(prefix, 2) {
			t.Errorf("pure %d-Jack stack should satisfy turnControl for k=2", n)
		}
	}
}

func TestTurnControlTwoPlayerMixedParity(t *testing.T) {
	matched := []Card{
		{Suit: Hearts, Rank: Jack},
		{Suit: Hearts, Rank: Queen},
	}
	if !turnControl(matched, 2) {
		t.Error("1 skip + 1 reverse (matching parity) should satisfy turn control for k=2")
	}

	mismatched := []Card{
		{Suit: Hearts, Rank: Jack},
		{Suit: Hearts, Rank: Queen},
		{Suit: Hearts, Rank: Queen},
	}
	if turnControl(mismatched, 2) {
		t.Error("1 skip + 2 reverses (mismatched parity) should break turn control for k=2")
	}
}

func TestTurnControlThreePlayerNeedsMultipleOfK(t *testing.T) {
	one := []Card{{Suit: Hearts, Rank: Jack}}
	if turnControl(one, 3) {
		t.Error("a single Jack should not satisfy turn control for k=3")
	}
	two := []Card{{Suit: Hearts, Rank: Jack}, {Suit: Hearts, Rank: Jack}}
	if !turnControl(two, 3) {
		t.Error("two Jacks should satisfy turn control for k=3 ((2+1)%3==0)")
	}
	if turnControl(two, 4) {
		t.Error("two Jacks should not satisfy turn control for k=4")
	}
}

func TestTurnControlThreePlayerReverseNeverKeepsControl(t *testing.T) {
	prefix := []Card{{Suit: Hearts, Rank: Queen}}
	if turnControl(prefix, 3) {
		t.Error("a lone Queen should never satisfy turn control for k>=3")
	}
}

func TestFinalAdvanceTwoPlayerPureJackKeepsTurn(t *testing.T) {
	sc := foldStack([]Card{{Suit: Hearts, Rank: Jack}, {Suit: Hearts, Rank: Jack}})
	keeps, steps := finalAdvance(sc, 2)
	if !keeps || steps != 0 {
		t.Errorf("pure Jack stack should keep turn with zero steps, got keeps=%v steps=%d", keeps, steps)
	}
}

func TestFinalAdvanceDrawCardAlwaysPassesTurn(t *testing.T) {
	sc := foldStack([]Card{{Suit: Hearts, Rank: Jack}, {Suit: Hearts, Rank: Ace}})
	keeps, steps := finalAdvance(sc, 2)
	if keeps || steps != 1 {
		t.Errorf("a stack ending in a draw card must always pass the turn, got keeps=%v steps=%d", keeps, steps)
	}
}

func TestFinalAdvanceThreePlayerSkipAdvancesByCount(t *testing.T) {
	sc := foldStack([]Card{{Suit: Hearts, Rank: Jack}})
	keeps, steps := finalAdvance(sc, 3)
	if keeps {
		t.Error("a single Jack in a 3-player match should not let the originator keep the turn")
	}
	if steps != 2 {
		t.Errorf("expected a 2-step advance (skip one player), got %d", steps)
	}
}

func TestFinalAdvanceNormalCardAlwaysPasses(t *testing.T) {
	sc := foldStack([]Card{{Suit: Hearts, Rank: Three}})
	keeps, steps := finalAdvance(sc, 4)
	if keeps || steps != 1 {
		t.Errorf("a plain card must always pass the turn, got keeps=%v steps=%d", keeps, steps)
	}
}
