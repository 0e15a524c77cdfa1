package game

// ResolveResult is the pure outcome of applying a legal stack's effects
// (spec §4.3 "Effect application"). PlayCards (play.go) is responsible for actually
// committing these fields and for the hand-empty/safe/round-end branch
// (step 7), which happens outside this function since it needs the
// originator's post-play hand, not just the played cards.
type ResolveResult struct {
	DrawAdd         int
	NewDirection    int
	NewDeclaredSuit *Suit
	KeepsTurn       bool
	AdvanceSteps    int // position steps to apply in NewDirection
}

// resolveEffects folds a fully stack-legal play into its aggregate effect
// on the match: direction flip, draw-stack growth, declared suit, and the
// final turn index per spec §4.3 steps 1-6.
func resolveEffects(cards []Card, declaredSuit *Suit, k int, direction int) ResolveResult {
	sc := foldStack(cards)

	newDirection := direction
	if sc.reverses%2 == 1 {
		newDirection = -direction
	}

	var newDeclared *Suit
	if sc.hasWild {
		newDeclared = declaredSuit
	}

	keepsTurn, steps := finalAdvance(sc, k)

	return ResolveResult{
		DrawAdd:         sc.drawAdd,
		NewDirection:    newDirection,
		NewDeclaredSuit: newDeclared,
		KeepsTurn:       keepsTurn,
		AdvanceSteps:    steps,
	}
}

// advanceIndex applies a signed step count around a ring of size k,
// wrapping correctly for negative direction.
func advanceIndex(current, direction, steps, k int) int {
	if k <= 0 {
		return 0
	}
	idx := (current + direction*steps) % k
	if idx < 0 {
		idx += k
	}
	return idx
}
