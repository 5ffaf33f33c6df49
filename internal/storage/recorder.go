package storage

import (
	"sync"

	"github.com/vovakirdan/orchard/internal/core"
)

// Recorder follows one play session and saves it exactly once: as completed
// when the game reports completion, or as abandoned when the host calls
// Finish before that. Sessions that never ticked are not saved.
//
// Hosts share one Recorder between their tick loop and their shutdown path,
// so it is safe for concurrent use. A nil store makes every save a no-op.
type Recorder struct {
	mu       sync.Mutex
	store    *Store
	gameID   string
	player   string
	tickRate int
	state    core.GameState
	saved    bool
	lastID   string
}

// NewRecorder creates a recorder for runs of gameID by player.
func NewRecorder(store *Store, gameID, player string, tickRate int) *Recorder {
	return &Recorder{
		store:    store,
		gameID:   gameID,
		player:   player,
		tickRate: tickRate,
	}
}

// Observe remembers the latest state of the session.
func (r *Recorder) Observe(state core.GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
}

// Finish saves the session if it has not been saved yet and returns the
// stored run. saved is false when there was nothing to save.
func (r *Recorder) Finish() (run Run, saved bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saved || r.state.Ticks == 0 {
		return Run{}, false, nil
	}
	r.saved = true
	if r.store == nil {
		return Run{}, false, nil
	}

	run = Run{
		GameID:    r.gameID,
		Player:    r.player,
		Regular:   r.state.Regular,
		Bonus:     r.state.Bonus,
		Ticks:     r.state.Ticks,
		TickRate:  r.tickRate,
		Completed: r.state.Completed,
	}
	id, err := r.store.SaveRun(run)
	if err != nil {
		return Run{}, false, err
	}
	run.ID = id
	r.lastID = id
	return run, true, nil
}

// Restart begins a new session of gameID. The previous session must have
// been finished already.
func (r *Recorder) Restart(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gameID = gameID
	r.state = core.GameState{}
	r.saved = false
}

// LastRunID returns the ID of the most recently saved run, if any.
func (r *Recorder) LastRunID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastID
}

// Standing describes where a freshly saved run ranks.
type Standing struct {
	Run     Run
	Best    *Run // fastest completed run, including this one
	NewBest bool
}

// Standing looks up the run with the given ID and the game's best run.
// It returns nil if the store is unset or the run is unknown.
func (r *Recorder) Standing(id string) (*Standing, error) {
	if r.store == nil || id == "" {
		return nil, nil
	}

	run, err := r.store.RunByID(id)
	if err != nil || run == nil {
		return nil, err
	}
	best, err := r.store.BestRun(run.GameID)
	if err != nil {
		return nil, err
	}
	return &Standing{
		Run:     *run,
		Best:    best,
		NewBest: best != nil && best.ID == run.ID,
	}, nil
}
