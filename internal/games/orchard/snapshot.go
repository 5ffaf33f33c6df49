package orchard

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Phase   Phase
	Regular int
	Bonus   int
	Streak  int
	Spawns  int

	PlayerX, PlayerY, PlayerZ float64
	Yaw                       float64
	CameraX, CameraY, CameraZ float64

	RegularX, RegularZ float64
	BonusPresent       bool
	BonusX, BonusZ     float64
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	w := g.world
	s := Snapshot{
		Tick:    g.tick,
		Phase:   g.phase,
		Regular: g.score.Regular,
		Bonus:   g.score.Bonus,
		Streak:  g.score.Streak,
		Spawns:  g.spawns,

		PlayerX: w.Player.X,
		PlayerY: w.Player.Y,
		PlayerZ: w.Player.Z,
		Yaw:     w.Yaw,
		CameraX: w.Camera.Position.X,
		CameraY: w.Camera.Position.Y,
		CameraZ: w.Camera.Position.Z,

		RegularX:     w.Regular.Position.X,
		RegularZ:     w.Regular.Position.Z,
		BonusPresent: w.Bonus.Present,
	}
	if w.Bonus.Present {
		s.BonusX = w.Bonus.Position.X
		s.BonusZ = w.Bonus.Position.Z
	}
	return s
}
