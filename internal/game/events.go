package game

// EventKind tags the one-way deltas a Match publishes to its sink (spec §6
// "External events"). The engine never retries a failed emit — at-least-
// once delivery, if wanted, is the sink's concern.
type EventKind string

const (
	EventPreparationStarted EventKind = "preparationPhaseStarted"
	EventPreparationUpdated EventKind = "preparationPhaseUpdated"
	EventPreparationEnded   EventKind = "preparationPhaseEnded"
	EventStateUpdated       EventKind = "stateUpdated"
	EventRoundEnded         EventKind = "roundEnded"
	EventGameFinished       EventKind = "gameFinished"

	// Supplemented beyond spec.md's literal list (SPEC_FULL.md §6),
	// grounded on the teacher's disconnect-forfeit and match-expiry
	// housekeeping.
	EventPlayerForfeited EventKind = "playerForfeited"
	EventMatchCancelled  EventKind = "matchCancelled"
)

// PreparationEndReason distinguishes why the preparation phase closed.
type PreparationEndReason string

const (
	PrepEndedByVote    PreparationEndReason = "unanimous_vote"
	PrepEndedByTimeout PreparationEndReason = "timeout"
)

// Event is the tagged payload delivered to an EventSink. Only the fields
// relevant to Kind are populated; the rest are zero.
type Event struct {
	Kind      EventKind
	MatchID   string
	Snapshot  Snapshot
	Eliminated []string             // EventRoundEnded
	Winner    string                // EventGameFinished
	Reason    PreparationEndReason  // EventPreparationEnded
	PlayerID  string                // EventPlayerForfeited
}

// EventSink is the one port through which a Match's state deltas leave the
// engine (spec §1: "everything else ... only appears through the
// interfaces §6 defines"). internal/ws's RedisEventSink, the Redis pub/sub
// bridge, is the production implementation of this port and is not part of
// the engine itself.
type EventSink interface {
	OnEvent(ev Event)
}

// NopSink discards every event; useful for tests that don't care about the
// broadcast side-channel.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}
