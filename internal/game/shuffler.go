package game

import "math/rand"

// randShuffler adapts *rand.Rand to the Shuffler interface so production
// code and deterministic-seed tests share the same Deck.Shuffle call site
// (spec §5: "the shuffle RNG is an injected dependency").
type randShuffler struct {
	r *rand.Rand
}

// NewShuffler wraps a seed into a Shuffler. Tests pass a fixed seed for
// reproducible deals; production (cmd/server) seeds each match from
// time.Now().UnixNano().
func NewShuffler(seed int64) Shuffler {
	return &randShuffler{r: rand.New(rand.NewSource(seed))}
}

func (s *randShuffler) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}
