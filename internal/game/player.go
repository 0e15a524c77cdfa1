package game

import "time"

// Player is a seat at a Match. It has no back-reference to the Match it
// belongs to — all lookups route through Match (spec §9: avoids the
// cyclic-reference/arena-pointer tangle the original code had).
type Player struct {
	ID        string
	Name      string
	Hand      []Card
	Safe      bool
	Eliminated bool
	Connected bool

	disconnectedAt *time.Time
}

func newPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name, Connected: true}
}

func (p *Player) ownsCard(c Card) bool {
	return handContains(p.Hand, c)
}

func (p *Player) removeCard(c Card) bool {
	hand, ok := handRemove(p.Hand, c)
	if ok {
		p.Hand = hand
	}
	return ok
}

// hasPlayableCard reports whether the player holds any card that can be
// played against topSuit/topRank ignoring any active draw stack — used by
// the draw subsystem to decide whether a voluntary draw must pause the
// player's turn for a pending pass (spec §4.4 step 5).
func (p *Player) hasPlayableCard(topSuit Suit, topRank Rank) bool {
	for _, c := range p.Hand {
		if c.isWild() {
			return true
		}
		if c.Suit == topSuit || c.Rank == topRank {
			return true
		}
	}
	return false
}
