package orchard

import (
	"github.com/vovakirdan/orchard/internal/config"
	"github.com/vovakirdan/orchard/internal/core"
)

// RandSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// Spawn is the outcome of one spawner run.
type Spawn struct {
	Regular  core.Vec3
	Bonus    core.Vec3
	HasBonus bool
	Forced   bool // Bonus spawned because the streak hit the threshold
}

// Spawner places collectibles at random positions on the field.
type Spawner struct {
	rng       RandSource
	extent    float64
	height    float64
	chance    float64
	threshold int
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(cfg config.OrchardConfig, rng RandSource) *Spawner {
	return &Spawner{
		rng:       rng,
		extent:    cfg.Field.HalfExtent,
		height:    cfg.CollectibleHeight(),
		chance:    cfg.Collectibles.BonusChance,
		threshold: cfg.Collectibles.StreakThreshold,
	}
}

// Spawn draws a new regular collectible and decides whether a bonus joins it.
// A bonus spawns on a chance roll or when streak has reached the threshold;
// the caller resets its streak when HasBonus is set.
//
// Draw order is fixed: regular X, regular Z, bonus roll, then bonus X and Z
// if a bonus spawns. The roll is drawn even when the streak forces a bonus.
func (s *Spawner) Spawn(streak int) Spawn {
	var sp Spawn
	sp.Regular = s.position()

	rolled := s.rng.Float64() < s.chance
	forced := streak >= s.threshold
	if rolled || forced {
		sp.HasBonus = true
		sp.Forced = forced && !rolled
		sp.Bonus = s.position()
	}
	return sp
}

func (s *Spawner) position() core.Vec3 {
	x := s.rng.Float64()*2*s.extent - s.extent
	z := s.rng.Float64()*2*s.extent - s.extent
	return core.V3(x, s.height, z)
}
