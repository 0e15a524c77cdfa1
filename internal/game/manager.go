package game

import (
	"log"
	"sync"
	"time"
)

// Persister is the injectable store spec §9 asks for: "expose an
// injectable Match store interface so tests can use an in-memory store and
// production can swap in a persistent one". internal/redis implements this
// against go-redis; tests can pass a no-op or map-backed stub.
type Persister interface {
	Save(state MatchState) error
	Load(matchID string) (MatchState, bool, error)
	Delete(matchID string) error
}

// MatchManager is the process-wide matchID -> *Match registry (grounded on
// the teacher's GameManager), trimmed of matchmaking-by-stake/queue/payment
// concerns and generalized to N players and tournament rounds.
type MatchManager struct {
	mu       sync.RWMutex
	matches  map[string]*Match
	shuffler func() Shuffler
	sink     EventSink
	cfg      MatchConfig
	store    Persister

	waitingExpiry   time.Duration
	disconnectGrace time.Duration

	stopCh chan struct{}
}

// NewMatchManager wires a registry. shufflerFactory is called once per
// match so every match gets an independently-seeded RNG.
func NewMatchManager(shufflerFactory func() Shuffler, sink EventSink, cfg MatchConfig, store Persister) *MatchManager {
	return &MatchManager{
		matches:         make(map[string]*Match),
		shuffler:        shufflerFactory,
		sink:            sink,
		cfg:             cfg,
		store:           store,
		waitingExpiry:   10 * time.Minute,
		disconnectGrace: 2 * time.Minute,
		stopCh:          make(chan struct{}),
	}
}

// CreateMatch seats players and registers the match (spec §6 createMatch).
func (mgr *MatchManager) CreateMatch(seats []SeatRequest) (*Match, *EngineError) {
	m, err := NewMatch(newMatchID(), seats, mgr.shuffler(), mgr.sink, mgr.cfg)
	if err != nil {
		return nil, err
	}
	mgr.mu.Lock()
	mgr.matches[m.ID()] = m
	mgr.mu.Unlock()
	log.Printf("[MATCH] created %s with %d players", m.ID(), len(seats))
	return m, nil
}

func (mgr *MatchManager) Get(matchID string) (*Match, bool) {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	m, ok := mgr.matches[matchID]
	return m, ok
}

func (mgr *MatchManager) Remove(matchID string) {
	mgr.mu.Lock()
	delete(mgr.matches, matchID)
	mgr.mu.Unlock()
	if mgr.store != nil {
		if err := mgr.store.Delete(matchID); err != nil {
			log.Printf("[MATCH] failed to delete persisted state for %s: %v", matchID, err)
		}
	}
}

// Rehydrate loads a match back from the store into the live registry, used
// after a process restart (SPEC_FULL.md §6 "Redis-backed reconnect").
func (mgr *MatchManager) Rehydrate(matchID string) (*Match, bool) {
	if mgr.store == nil {
		return nil, false
	}
	state, ok, err := mgr.store.Load(matchID)
	if err != nil || !ok {
		return nil, false
	}
	m := RestoreMatch(state, mgr.shuffler(), mgr.sink, mgr.cfg)
	mgr.mu.Lock()
	mgr.matches[matchID] = m
	mgr.mu.Unlock()
	return m, true
}

// Persist writes a match's current state to the store, called after every
// command by the transport layer (spec's delta-on-every-command contract
// makes this a natural write-through point).
func (mgr *MatchManager) Persist(m *Match) {
	if mgr.store == nil {
		return
	}
	if err := mgr.store.Save(m.ExportState()); err != nil {
		log.Printf("[MATCH] failed to persist %s: %v", m.ID(), err)
	}
}

// StartHousekeeping runs the disconnect-forfeit and waiting-expiry sweeps
// the teacher runs as checkDisconnectForfeits/checkExpiredGames background
// tickers, generalized off the stakes/matchmaking domain.
func (mgr *MatchManager) StartHousekeeping(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				mgr.sweep()
			case <-mgr.stopCh:
				return
			}
		}
	}()
}

func (mgr *MatchManager) StopHousekeeping() {
	close(mgr.stopCh)
}

func (mgr *MatchManager) sweep() {
	mgr.mu.RLock()
	snapshot := make([]*Match, 0, len(mgr.matches))
	for _, m := range mgr.matches {
		snapshot = append(snapshot, m)
	}
	mgr.mu.RUnlock()

	for _, m := range snapshot {
		m.ForfeitDisconnected(mgr.disconnectGrace)

		snap := m.Snapshot()
		if snap.Phase == PhaseWaiting && time.Since(m.createdAt) > mgr.waitingExpiry {
			mgr.cancelWaitingMatch(m)
			continue
		}
		mgr.Persist(m)
	}
}

func (mgr *MatchManager) cancelWaitingMatch(m *Match) {
	m.mu.Lock()
	m.phase = PhaseFinished
	m.emit(EventMatchCancelled, nil)
	m.mu.Unlock()
	mgr.Remove(m.ID())
	log.Printf("[MATCH] cancelled %s: never left waiting", m.ID())
}
