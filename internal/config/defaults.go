package config

import (
	_ "embed"
)

//go:embed defaults/orchard.yaml
var defaultOrchardYAML []byte

// DefaultOrchardConfig returns the built-in orchard configuration.
func DefaultOrchardConfig() OrchardConfig {
	return OrchardConfig{
		Field: FieldConfig{
			HalfExtent:   10,
			GroundHeight: 0,
			GridLines:    10,
		},
		Player: PlayerConfig{
			Size:  1,
			Speed: 0.1,
		},
		Camera: CameraConfig{
			YawStep: 0.05,
			Radius:  5,
			Height:  5,
			FOV:     75,
			Near:    0.1,
			Far:     1000,
		},
		Collectibles: CollectiblesConfig{
			Size:            0.5,
			PickupRadius:    1,
			BonusChance:     0.3,
			StreakThreshold: 15,
		},
		Goals: GoalsConfig{
			RegularTarget: 50,
			BonusTarget:   30,
		},
		Input: InputConfig{
			InitialHoldTicks: 36, // 600ms at 60fps, covers common repeat delays
			HoldTicks:        9,  // 150ms, several repeat intervals
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultOrchardYAML
}
