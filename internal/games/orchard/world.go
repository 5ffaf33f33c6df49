package orchard

import (
	"github.com/vovakirdan/orchard/internal/config"
	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/scene"
)

// Scene entity names.
const (
	NameGround  = "ground"
	NamePlayer  = "player"
	NameRegular = "regular-apple"
	NameBonus   = "golden-apple"
)

var (
	groundMaterial  = scene.Material{Color: core.ColorGreen, Glyph: '.'}
	playerMaterial  = scene.Material{Color: core.ColorBlue, Glyph: '#'}
	regularMaterial = scene.Material{Color: core.ColorRed, Glyph: '@'}
	bonusMaterial   = scene.Material{Color: core.ColorBrightYellow, Glyph: '*'}
)

// Kind distinguishes the two collectibles.
type Kind int

const (
	KindRegular Kind = iota
	KindBonus
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindBonus {
		return "bonus"
	}
	return "regular"
}

// Collectible is an apple on the field.
type Collectible struct {
	Kind     Kind
	Position core.Vec3
	Present  bool
	entity   *scene.Entity
}

// World holds everything that has a place on the field: the ground, the
// player, the two collectibles, and the camera that follows the player.
type World struct {
	cfg config.OrchardConfig

	Scene  *scene.Scene
	Camera *scene.Camera
	Player core.Vec3
	Yaw    float64 // Camera yaw in radians

	Regular Collectible
	Bonus   Collectible

	ground       *scene.Entity
	playerEntity *scene.Entity
}

// NewWorld builds the scene with the ground and the player at the origin.
// No collectibles are placed yet.
func NewWorld(cfg config.OrchardConfig) *World {
	w := &World{
		cfg:     cfg,
		Scene:   scene.New(),
		Camera:  scene.Perspective(cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far),
		Player:  core.V3(0, cfg.PlayerHeight(), 0),
		Regular: Collectible{Kind: KindRegular},
		Bonus:   Collectible{Kind: KindBonus},
	}

	size := 2 * cfg.Field.HalfExtent
	w.ground = scene.NewPlane(NameGround, size, size, cfg.Field.GridLines, groundMaterial)
	w.ground.SetPosition(core.V3(0, cfg.Field.GroundHeight, 0))
	w.Scene.Add(w.ground)

	ps := cfg.Player.Size
	w.playerEntity = scene.NewBox(NamePlayer, ps, ps, ps, playerMaterial)
	w.playerEntity.SetPosition(w.Player)
	w.Scene.Add(w.playerEntity)

	return w
}

// Place replaces both collectibles with the given spawn.
// The old entities leave the scene before the new ones join it.
func (w *World) Place(sp Spawn) {
	w.clear(&w.Regular)
	w.clear(&w.Bonus)

	w.attach(&w.Regular, NameRegular, sp.Regular, regularMaterial)
	if sp.HasBonus {
		w.attach(&w.Bonus, NameBonus, sp.Bonus, bonusMaterial)
	}
}

func (w *World) clear(c *Collectible) {
	if c.entity != nil {
		w.Scene.Remove(c.entity)
		c.entity = nil
	}
	c.Present = false
}

func (w *World) attach(c *Collectible, name string, pos core.Vec3, m scene.Material) {
	s := w.cfg.Collectibles.Size
	e := scene.NewBox(name, s, s, s, m)
	e.SetPosition(pos)
	w.Scene.Add(e)

	c.entity = e
	c.Position = pos
	c.Present = true
}

// syncPlayer moves the player entity to the player position.
func (w *World) syncPlayer() {
	w.playerEntity.SetPosition(w.Player)
}
