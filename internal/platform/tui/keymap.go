package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/orchard/internal/core"
)

// Command is a host-level request derived from a key. Commands never reach
// the game.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandPause
	CommandRestart
	CommandScreenshot
	CommandBoard
)

// KeyMapper translates Bubble Tea key messages to game keys and host
// commands. This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game key.
// q and e are game keys, so quitting uses ctrl+c or esc.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Key, bool) {
	switch msg.String() {
	case "up":
		return core.KeyArrowUp, true
	case "down":
		return core.KeyArrowDown, true
	case "left":
		return core.KeyArrowLeft, true
	case "right":
		return core.KeyArrowRight, true
	case "q", "Q":
		return core.KeyRotateLeft, true
	case "e", "E":
		return core.KeyRotateRight, true
	}
	return "", false
}

// MapCommand translates a key message to a host command.
func (km *KeyMapper) MapCommand(msg tea.KeyMsg) Command {
	switch msg.String() {
	case "ctrl+c", "esc":
		return CommandQuit
	case "p":
		return CommandPause
	case "r":
		return CommandRestart
	case "ctrl+s":
		return CommandScreenshot
	case "tab":
		return CommandBoard
	}
	return CommandNone
}

// HoldTracker emulates key release for terminals, which only report key
// presses. A fresh press stays held for initialTicks, long enough for the
// keyboard's repeat delay to pass. Each auto-repeat of a held key then
// keeps it held for at least repeatTicks more.
type HoldTracker struct {
	keys         core.KeyState
	remaining    map[core.Key]int
	initialTicks int
	repeatTicks  int
}

// NewHoldTracker creates a tracker. repeatTicks below 1 is treated as 1,
// and initialTicks is never shorter than repeatTicks.
func NewHoldTracker(initialTicks, repeatTicks int) *HoldTracker {
	repeatTicks = max(repeatTicks, 1)
	return &HoldTracker{
		keys:         core.NewKeyState(),
		remaining:    make(map[core.Key]int),
		initialTicks: max(initialTicks, repeatTicks),
		repeatTicks:  repeatTicks,
	}
}

// Press marks k held. A key that is not held yet gets the initial hold;
// a repeat extends the current hold to at least repeatTicks.
func (h *HoldTracker) Press(k core.Key) {
	n, held := h.remaining[k]
	if !held {
		h.keys.KeyDown(k)
		h.remaining[k] = h.initialTicks
		return
	}
	h.remaining[k] = max(n, h.repeatTicks)
}

// Keys returns a snapshot of the held keys for one tick.
func (h *HoldTracker) Keys() core.KeyState {
	return h.keys.Snapshot()
}

// Tick ages every held key by one tick and releases the expired ones.
func (h *HoldTracker) Tick() {
	for k, n := range h.remaining {
		n--
		if n <= 0 {
			delete(h.remaining, k)
			h.keys.KeyUp(k)
			continue
		}
		h.remaining[k] = n
	}
}

// ReleaseAll releases every key immediately.
func (h *HoldTracker) ReleaseAll() {
	clear(h.remaining)
	h.keys.ReleaseAll()
}
