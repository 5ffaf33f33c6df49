// Package config provides YAML-based game configuration loading for the
// orchard game.
package config

import (
	"errors"
	"fmt"
)

// OrchardConfig contains all tunables of the orchard game.
type OrchardConfig struct {
	Field        FieldConfig        `yaml:"field"`
	Player       PlayerConfig       `yaml:"player"`
	Camera       CameraConfig       `yaml:"camera"`
	Collectibles CollectiblesConfig `yaml:"collectibles"`
	Goals        GoalsConfig        `yaml:"goals"`
	Input        InputConfig        `yaml:"input"`
}

// FieldConfig defines the ground plane.
type FieldConfig struct {
	HalfExtent   float64 `yaml:"half_extent"`   // Playable area is [-HalfExtent, HalfExtent] on X and Z
	GroundHeight float64 `yaml:"ground_height"` // Y of the ground surface
	GridLines    int     `yaml:"grid_lines"`    // Grid cells per side when drawn
}

// PlayerConfig defines the player cube.
type PlayerConfig struct {
	Size  float64 `yaml:"size"`  // Cube edge length
	Speed float64 `yaml:"speed"` // Units per tick per held direction key
}

// CameraConfig defines the trailing third-person camera.
type CameraConfig struct {
	YawStep float64 `yaml:"yaw_step"` // Radians per tick per rotate key
	Radius  float64 `yaml:"radius"`   // Horizontal distance behind the player
	Height  float64 `yaml:"height"`   // Height above the player
	FOV     float64 `yaml:"fov"`      // Vertical field of view in degrees
	Near    float64 `yaml:"near"`
	Far     float64 `yaml:"far"`
}

// CollectiblesConfig defines apple spawning and pickup.
type CollectiblesConfig struct {
	Size            float64 `yaml:"size"`             // Cube edge length
	PickupRadius    float64 `yaml:"pickup_radius"`    // Collected when closer than this
	BonusChance     float64 `yaml:"bonus_chance"`     // Probability a bonus spawns alongside
	StreakThreshold int     `yaml:"streak_threshold"` // Streak that forces a bonus spawn
}

// GoalsConfig defines the displayed targets. Only the bonus target ends the game.
type GoalsConfig struct {
	RegularTarget int `yaml:"regular_target"`
	BonusTarget   int `yaml:"bonus_target"`
}

// InputConfig defines how terminal hosts emulate key releases.
// A fresh press must outlast the keyboard repeat delay; once repeats
// arrive, each one only needs to bridge the repeat interval.
type InputConfig struct {
	// InitialHoldTicks is how long a fresh press stays held.
	InitialHoldTicks int `yaml:"initial_hold_ticks"`

	// HoldTicks is how long a key stays held after an auto-repeat.
	HoldTicks int `yaml:"hold_ticks"`
}

// PlayerHeight returns the fixed Y of the player center.
func (c OrchardConfig) PlayerHeight() float64 {
	return c.Field.GroundHeight + c.Player.Size/2
}

// CollectibleHeight returns the fixed Y of collectible centers.
func (c OrchardConfig) CollectibleHeight() float64 {
	return c.Field.GroundHeight + c.Collectibles.Size/2
}

// Validate reports the first out-of-range value in the config.
func (c OrchardConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Field.HalfExtent > 0, "field.half_extent must be positive, got %v", c.Field.HalfExtent)
	check(c.Field.GridLines >= 0, "field.grid_lines must not be negative, got %d", c.Field.GridLines)
	check(c.Player.Size > 0, "player.size must be positive, got %v", c.Player.Size)
	check(c.Player.Speed > 0, "player.speed must be positive, got %v", c.Player.Speed)
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera.fov must be in (0, 180), got %v", c.Camera.FOV)
	check(c.Camera.Near > 0, "camera.near must be positive, got %v", c.Camera.Near)
	check(c.Camera.Far > c.Camera.Near, "camera.far must exceed camera.near, got %v", c.Camera.Far)
	check(c.Collectibles.Size > 0, "collectibles.size must be positive, got %v", c.Collectibles.Size)
	check(c.Collectibles.PickupRadius > 0, "collectibles.pickup_radius must be positive, got %v", c.Collectibles.PickupRadius)
	check(c.Collectibles.BonusChance >= 0 && c.Collectibles.BonusChance <= 1,
		"collectibles.bonus_chance must be in [0, 1], got %v", c.Collectibles.BonusChance)
	check(c.Collectibles.StreakThreshold > 0, "collectibles.streak_threshold must be positive, got %d", c.Collectibles.StreakThreshold)
	check(c.Goals.RegularTarget > 0, "goals.regular_target must be positive, got %d", c.Goals.RegularTarget)
	check(c.Goals.BonusTarget > 0, "goals.bonus_target must be positive, got %d", c.Goals.BonusTarget)
	check(c.Input.HoldTicks >= 0, "input.hold_ticks must not be negative, got %d", c.Input.HoldTicks)
	check(c.Input.InitialHoldTicks >= 0, "input.initial_hold_ticks must not be negative, got %d", c.Input.InitialHoldTicks)

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
