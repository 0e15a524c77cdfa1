package game

import "github.com/google/uuid"

// newMatchID mints a match identifier. Unlike the teacher, which reused hex
// player tokens for everything, this repo gives matches their own
// uuid-shaped identity (borrowed from jason-s-yu-cambia-service's match/round
// ids) so match IDs are visibly distinct from reconnect tokens in logs.
func newMatchID() string {
	return uuid.NewString()
}
