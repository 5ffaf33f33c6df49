// Package registry maps game IDs to factories. Game packages call Register
// from init, and the terminal, SSH and window hosts look games up by ID.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/orchard/internal/core"
)

// Game is what a host drives: it feeds held keys in, one fixed tick at a
// time, and draws whatever the game renders. Games never import a host.
type Game interface {
	// ID is the stable key for CLI arguments and stored runs.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new session from the screen size and seed in cfg.
	Reset(cfg core.RuntimeConfig)

	// Step applies one tick of held keys. A result with Continue false
	// means the session is over and hosts stop ticking.
	Step(in core.KeyState) core.StepResult

	// Render draws into dst, which the game clears itself.
	Render(dst *core.Screen)

	// State reports counters, ticks and completion.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds f under id. A second registration of the same id panics,
// since it can only come from two packages claiming one name.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	infos := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		infos = append(infos, GameInfo{ID: id, Title: e.title})
	}
	mu.RUnlock()

	slices.SortFunc(infos, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return infos
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
