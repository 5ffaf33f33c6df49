package core

// Key is a symbolic key name as delivered by the input collaborator.
// Hosts translate their native key events into these names.
type Key string

// Keys the game reacts to. Any other name is tracked but never read.
const (
	KeyArrowUp     Key = "ArrowUp"
	KeyArrowDown   Key = "ArrowDown"
	KeyArrowLeft   Key = "ArrowLeft"
	KeyArrowRight  Key = "ArrowRight"
	KeyRotateLeft  Key = "q"
	KeyRotateRight Key = "e"
)

// GameKeys lists the keys the game reads each tick.
var GameKeys = []Key{
	KeyArrowUp, KeyArrowDown, KeyArrowLeft, KeyArrowRight,
	KeyRotateLeft, KeyRotateRight,
}

// KeyState records which keys are currently held.
// Hosts feed it key-down/key-up events between ticks and pass a
// Snapshot to the game at tick start.
type KeyState struct {
	held map[Key]bool
}

// NewKeyState creates an empty key state with nothing held.
func NewKeyState() KeyState {
	return KeyState{
		held: make(map[Key]bool),
	}
}

// KeyDown marks a key as held.
func (k *KeyState) KeyDown(key Key) {
	if k.held == nil {
		k.held = make(map[Key]bool)
	}
	k.held[key] = true
}

// KeyUp marks a key as released.
func (k *KeyState) KeyUp(key Key) {
	if k.held == nil {
		k.held = make(map[Key]bool)
	}
	k.held[key] = false
}

// IsHeld returns true if the key is currently held.
// Unknown keys are never held.
func (k KeyState) IsHeld(key Key) bool {
	if k.held == nil {
		return false
	}
	return k.held[key]
}

// Held returns the held keys among GameKeys, in GameKeys order.
func (k KeyState) Held() []Key {
	var out []Key
	for _, key := range GameKeys {
		if k.IsHeld(key) {
			out = append(out, key)
		}
	}
	return out
}

// ReleaseAll marks every key as released.
func (k *KeyState) ReleaseAll() {
	for key := range k.held {
		k.held[key] = false
	}
}

// Snapshot returns an independent copy of the current key state.
// Later KeyDown/KeyUp calls on k do not affect the snapshot.
func (k KeyState) Snapshot() KeyState {
	clone := NewKeyState()
	for key, v := range k.held {
		clone.held[key] = v
	}
	return clone
}

// Press returns a key state with the given keys held.
// Convenient for tests and scripted input.
func Press(keys ...Key) KeyState {
	k := NewKeyState()
	for _, key := range keys {
		k.KeyDown(key)
	}
	return k
}
