package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML should parse: %v", err)
	}
	if cfg != DefaultOrchardConfig() {
		t.Errorf("embedded YAML = %+v\nhardcoded = %+v", cfg, DefaultOrchardConfig())
	}
}

func TestDefaultDerivedHeights(t *testing.T) {
	cfg := DefaultOrchardConfig()
	if cfg.PlayerHeight() != 0.5 {
		t.Errorf("PlayerHeight() = %v, expected 0.5", cfg.PlayerHeight())
	}
	if cfg.CollectibleHeight() != 0.25 {
		t.Errorf("CollectibleHeight() = %v, expected 0.25", cfg.CollectibleHeight())
	}
}

func TestLoadCustomPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orchard.yaml")
	data := "goals:\n  bonus_target: 3\nplayer:\n  speed: 0.25\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrchard(path)
	if err != nil {
		t.Fatalf("LoadOrchard() failed: %v", err)
	}
	if cfg.Goals.BonusTarget != 3 {
		t.Errorf("BonusTarget = %d, expected 3", cfg.Goals.BonusTarget)
	}
	if cfg.Player.Speed != 0.25 {
		t.Errorf("Speed = %v, expected 0.25", cfg.Player.Speed)
	}
	// Untouched keys keep their defaults
	if cfg.Goals.RegularTarget != 50 {
		t.Errorf("RegularTarget = %d, expected default 50", cfg.Goals.RegularTarget)
	}
	if cfg.Collectibles.StreakThreshold != 15 {
		t.Errorf("StreakThreshold = %d, expected default 15", cfg.Collectibles.StreakThreshold)
	}
}

func TestLoadCustomMissingFile(t *testing.T) {
	_, err := LoadOrchard(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("missing custom config should fail")
	}
	if !strings.HasPrefix(err.Error(), "config:") {
		t.Errorf("error should carry package prefix, got %q", err)
	}
}

func TestLoadCustomInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "field: [unclosed"},
		{"negative extent", "field:\n  half_extent: -1\n"},
		{"chance above one", "collectibles:\n  bonus_chance: 1.5\n"},
		{"zero bonus target", "goals:\n  bonus_target: 0\n"},
		{"far before near", "camera:\n  near: 10\n  far: 5\n"},
		{"negative initial hold", "input:\n  initial_hold_ticks: -1\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "orchard.yaml")
			if err := os.WriteFile(path, []byte(tc.data), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadOrchard(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultOrchardConfig()
	cfg.Player.Speed = 0
	cfg.Goals.RegularTarget = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "player.speed") || !strings.Contains(msg, "goals.regular_target") {
		t.Errorf("error should name both fields, got %q", msg)
	}
}

func TestMarshalRoundTripsThroughParse(t *testing.T) {
	cfg := DefaultOrchardConfig()
	cfg.Camera.YawStep = 0.1

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !strings.Contains(string(data), "yaw_step: 0.1") {
		t.Errorf("marshaled YAML missing yaw_step:\n%s", data)
	}

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got != cfg {
		t.Errorf("Parse(Marshal(cfg)) = %+v, expected %+v", got, cfg)
	}
}
