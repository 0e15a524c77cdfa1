package game

// turnControl is the single pure function the validator and resolver both
// build on (spec §9: "keep this logic factored into one pure function
// taking (prefix, k) and returning a boolean keeps-turn"). It answers: after
// playing every card in prefix, does the originating player still hold the
// turn?
//
// The source the spec was distilled from carries two divergent 2-player
// parity formulas for mixed Jack/Queen stacks (see spec §9 Open Questions).
// This resolves them the way the spec's own testable properties (§8)
// require: a pure-Jack prefix (no Queens) always keeps the turn regardless
// of how many Jacks it contains, and an all-Queens prefix keeps the turn
// iff the Queen count is even. The remaining case — a mixed prefix with at
// least one Queen — uses the symmetric form the spec names directly: keep
// the turn iff the Jack count and the Queen count share parity. Decided in
// DESIGN.md.
func turnControl(prefix []Card, k int) bool {
	if len(prefix) == 0 {
		return true
	}
	last := prefix[len(prefix)-1]
	switch {
	case last.isSkip(), last.isReverse():
		// falls through to the counting logic below
	default:
		return false
	}

	sc := foldStack(prefix)

	if k == 2 {
		if sc.reverses == 0 {
			return true
		}
		return sc.skips%2 == sc.reverses%2
	}

	// k >= 3
	if sc.skips > 0 {
		return (sc.skips+1)%k == 0
	}
	return false
}

// finalAdvance computes the resolver's final turn outcome for a fully
// legal, fully-applied stack (spec §4.3 "Effect application" steps 5-6). It
// returns how many steps to advance activePlayers' index from the
// originator in the (already direction-adjusted) current direction, and
// whether the originator keeps the turn outright.
func finalAdvance(sc stackCounts, k int) (keepsTurn bool, steps int) {
	switch {
	case k == 2 && sc.allSkips:
		// pure-Jack stack: originator keeps turn unconditionally.
		keepsTurn = true
	case k == 2:
		passTurn := sc.lastKind == EffectNormal || sc.lastKind == EffectDraw || sc.lastKind == EffectWild ||
			(sc.skips%2 != sc.reverses%2)
		keepsTurn = !passTurn
		if !keepsTurn {
			steps = 1
		}
	default: // k >= 3
		if sc.skips > 0 {
			adv := (sc.skips + 1) % k
			keepsTurn = adv == 0
			steps = adv
		} else {
			keepsTurn = false
			steps = 1
		}
	}

	// Penalty override (step 6): a stack ending in a draw card never lets
	// the originator keep the turn, even if the count above said so.
	if sc.lastKind == EffectDraw && keepsTurn {
		keepsTurn = false
		steps = 1
	}
	return keepsTurn, steps
}
