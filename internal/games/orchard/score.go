package orchard

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/orchard/internal/config"
)

// Score tracks collected apples against the goals.
// Only the bonus target completes the level; the regular target is shown
// but never ends the game.
type Score struct {
	Regular int
	Bonus   int
	Streak  int // Regular pickups since the last bonus spawn

	RegularTarget int
	BonusTarget   int

	completed bool
}

// NewScore creates a zeroed score with targets from cfg.
func NewScore(cfg config.GoalsConfig) Score {
	return Score{
		RegularTarget: cfg.RegularTarget,
		BonusTarget:   cfg.BonusTarget,
	}
}

// CollectRegular records a regular pickup.
func (s *Score) CollectRegular() {
	s.Regular++
	s.Streak++
}

// CollectBonus records a bonus pickup and ends the streak.
func (s *Score) CollectBonus() {
	s.Bonus++
	s.Streak = 0
}

// ResetStreak zeroes the streak after a bonus spawn.
func (s *Score) ResetStreak() {
	s.Streak = 0
}

// IsComplete reports whether the bonus target has been reached.
func (s Score) IsComplete() bool {
	return s.Bonus >= s.BonusTarget
}

// Completed returns the completion flag.
func (s Score) Completed() bool {
	return s.completed
}

// markCompleted sets the completion flag. It never clears.
func (s *Score) markCompleted() {
	s.completed = true
}

// Lines returns the score display, one line per counter.
func (s Score) Lines() []string {
	return []string{
		fmt.Sprintf("Red Apples: %d/%d", s.Regular, s.RegularTarget),
		fmt.Sprintf("Golden Apples: %d/%d", s.Bonus, s.BonusTarget),
	}
}

// Render returns the score display as text.
func (s Score) Render() string {
	return strings.Join(s.Lines(), "\n")
}
