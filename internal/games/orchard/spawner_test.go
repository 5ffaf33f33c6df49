package orchard

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/orchard/internal/config"
)

// scripted returns vals in order, then fallback forever.
type scripted struct {
	vals     []float64
	fallback float64
	draws    int
}

func (s *scripted) Float64() float64 {
	s.draws++
	if len(s.vals) > 0 {
		v := s.vals[0]
		s.vals = s.vals[1:]
		return v
	}
	return s.fallback
}

// golden is a low-discrepancy sequence: frac(n * 0.618...).
type golden struct {
	n int
}

func (g *golden) Float64() float64 {
	g.n++
	return math.Mod(float64(g.n)*0.6180339887498949, 1)
}

func TestSpawnPositionsInBounds(t *testing.T) {
	cfg := config.DefaultOrchardConfig()
	sp := NewSpawner(cfg, rand.New(rand.NewSource(7)))

	for i := 0; i < 1000; i++ {
		s := sp.Spawn(0)
		for _, p := range []struct{ x, y, z float64 }{
			{s.Regular.X, s.Regular.Y, s.Regular.Z},
			{s.Bonus.X, s.Bonus.Y, s.Bonus.Z},
		} {
			if p.x < -10 || p.x >= 10 || p.z < -10 || p.z >= 10 {
				t.Fatalf("spawn %d out of bounds: %+v", i, s)
			}
		}
		if s.Regular.Y != 0.25 {
			t.Fatalf("regular Y = %v, expected 0.25", s.Regular.Y)
		}
		if s.HasBonus && s.Bonus.Y != 0.25 {
			t.Fatalf("bonus Y = %v, expected 0.25", s.Bonus.Y)
		}
	}
}

func TestSpawnDrawMapping(t *testing.T) {
	src := &scripted{vals: []float64{0, 0.75, 0.1, 0.5, 0.999}}
	sp := NewSpawner(config.DefaultOrchardConfig(), src)

	s := sp.Spawn(0)
	if s.Regular.X != -10 || s.Regular.Z != 5 {
		t.Errorf("regular at (%v, %v), expected (-10, 5)", s.Regular.X, s.Regular.Z)
	}
	if !s.HasBonus || s.Forced {
		t.Fatalf("roll 0.1 should spawn an unforced bonus, got %+v", s)
	}
	if s.Bonus.X != 0 || math.Abs(s.Bonus.Z-9.98) > 1e-9 {
		t.Errorf("bonus at (%v, %v), expected (0, 9.98)", s.Bonus.X, s.Bonus.Z)
	}
	if src.draws != 5 {
		t.Errorf("bonus spawn should draw 5 values, drew %d", src.draws)
	}
}

func TestSpawnBonusDecision(t *testing.T) {
	tests := []struct {
		name       string
		roll       float64
		streak     int
		wantBonus  bool
		wantForced bool
		wantDraws  int
	}{
		{"low roll", 0.29, 0, true, false, 5},
		{"roll at chance", 0.3, 0, false, false, 3},
		{"high roll", 0.99, 14, false, false, 3},
		{"streak threshold forces", 0.99, 15, true, true, 5},
		{"streak above threshold forces", 0.5, 40, true, true, 5},
		{"low roll with streak is not forced", 0.1, 15, true, false, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := &scripted{vals: []float64{0.5, 0.5, tc.roll}, fallback: 0.5}
			sp := NewSpawner(config.DefaultOrchardConfig(), src)

			s := sp.Spawn(tc.streak)
			if s.HasBonus != tc.wantBonus {
				t.Errorf("HasBonus = %v, expected %v", s.HasBonus, tc.wantBonus)
			}
			if s.Forced != tc.wantForced {
				t.Errorf("Forced = %v, expected %v", s.Forced, tc.wantForced)
			}
			if src.draws != tc.wantDraws {
				t.Errorf("draws = %d, expected %d", src.draws, tc.wantDraws)
			}
		})
	}
}

func TestSpawnStreakAlwaysForcesBonus(t *testing.T) {
	sp := NewSpawner(config.DefaultOrchardConfig(), rand.New(rand.NewSource(99)))

	for i := 0; i < 500; i++ {
		if s := sp.Spawn(15 + i%10); !s.HasBonus {
			t.Fatalf("spawn %d with streak %d has no bonus", i, 15+i%10)
		}
	}
}
