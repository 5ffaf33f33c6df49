package orchard

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/orchard/internal/config"
	"github.com/vovakirdan/orchard/internal/core"
	"github.com/vovakirdan/orchard/internal/registry"
)

const eps = 1e-9

// newFarGame returns a game whose first regular apple sits at (8, 8), far
// from the player, with no bonus, and whose later draws all land there too.
func newFarGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame(config.DefaultOrchardConfig(), &scripted{fallback: 0.9})
	if g.world.Bonus.Present {
		t.Fatal("fixture should start without a bonus")
	}
	return g
}

// standOn teleports the player onto a collectible.
func standOn(g *Game, c Collectible) {
	g.world.Player = core.V3(c.Position.X, g.cfg.PlayerHeight(), c.Position.Z)
}

func TestStartingState(t *testing.T) {
	g := newFarGame(t)

	if g.world.Player != core.V3(0, 0.5, 0) {
		t.Errorf("player starts at %v, expected (0, 0.5, 0)", g.world.Player)
	}
	if g.Phase() != PhaseRunning {
		t.Errorf("phase = %v, expected running", g.Phase())
	}
	st := g.State()
	if st.Regular != 0 || st.Bonus != 0 || st.Completed || st.Ticks != 0 {
		t.Errorf("unexpected starting state %+v", st)
	}
	if g.world.Scene.Count(NameRegular) != 1 {
		t.Error("a regular apple should be placed at start")
	}
	if cam := g.world.Camera.Position; math.Abs(cam.Y-5.5) > eps || math.Abs(cam.Z-5) > eps {
		t.Errorf("camera starts at %v, expected (0, 5.5, 5)", cam)
	}
}

func TestDiagonalDisplacement(t *testing.T) {
	g := newFarGame(t)

	d := g.world.movePlayer(core.Press(core.KeyArrowUp, core.KeyArrowRight))
	if math.Abs(d.X-0.1) > eps || d.Y != 0 || math.Abs(d.Z+0.1) > eps {
		t.Errorf("displacement = %v, expected (0.1, 0, -0.1)", d)
	}
	if d.Len() <= 0.1 {
		t.Errorf("diagonal speed %v should exceed axis speed 0.1", d.Len())
	}
}

func TestStepMovesPlayer(t *testing.T) {
	g := newFarGame(t)

	res := g.Step(core.Press(core.KeyArrowUp, core.KeyArrowRight))
	if !res.Continue {
		t.Fatal("game should continue")
	}
	p := g.world.Player
	if math.Abs(p.X-0.1) > eps || p.Y != 0.5 || math.Abs(p.Z+0.1) > eps {
		t.Errorf("player at %v, expected (0.1, 0.5, -0.1)", p)
	}
	if res.State.Ticks != 1 {
		t.Errorf("Ticks = %d, expected 1", res.State.Ticks)
	}
}

func TestYawKeys(t *testing.T) {
	tests := []struct {
		name     string
		keys     []core.Key
		ticks    int
		expected float64
	}{
		{"rotate left", []core.Key{core.KeyRotateLeft}, 3, -0.15},
		{"rotate right", []core.Key{core.KeyRotateRight}, 2, 0.1},
		{"both cancel", []core.Key{core.KeyRotateLeft, core.KeyRotateRight}, 5, 0},
		{"none", nil, 4, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newFarGame(t)
			for i := 0; i < tc.ticks; i++ {
				g.Step(core.Press(tc.keys...))
			}
			if math.Abs(g.world.Yaw-tc.expected) > eps {
				t.Errorf("yaw = %v, expected %v", g.world.Yaw, tc.expected)
			}
		})
	}
}

func TestMovementFollowsYaw(t *testing.T) {
	g := newFarGame(t)
	g.world.Yaw = math.Pi / 2

	d := g.world.movePlayer(core.Press(core.KeyArrowUp))
	if math.Abs(d.X+0.1) > eps || math.Abs(d.Z) > eps {
		t.Errorf("forward at quarter turn = %v, expected (-0.1, 0, 0)", d)
	}
}

func TestCameraTrailsPlayer(t *testing.T) {
	g := newFarGame(t)
	g.world.Yaw = math.Pi / 2
	g.world.Player = core.V3(2, 0.5, -3)
	g.world.updateCamera()

	cam := g.world.Camera.Position
	if math.Abs(cam.X-7) > eps || math.Abs(cam.Y-5.5) > eps || math.Abs(cam.Z+3) > eps {
		t.Errorf("camera at %v, expected (7, 5.5, -3)", cam)
	}
	if g.world.Camera.Target() != g.world.Player {
		t.Errorf("camera aims at %v, expected player %v", g.world.Camera.Target(), g.world.Player)
	}
}

func TestPlayerStaysInBounds(t *testing.T) {
	g := NewGame(config.DefaultOrchardConfig(), rand.New(rand.NewSource(3)))
	inputs := rand.New(rand.NewSource(4))

	for i := 0; i < 5000 && g.Phase() == PhaseRunning; i++ {
		var keys []core.Key
		for _, k := range core.GameKeys {
			if inputs.Intn(2) == 0 {
				keys = append(keys, k)
			}
		}
		g.Step(core.Press(keys...))

		p := g.world.Player
		if p.X < -10 || p.X > 10 || p.Z < -10 || p.Z > 10 {
			t.Fatalf("tick %d: player left the field at %v", i, p)
		}
		if p.Y != 0.5 {
			t.Fatalf("tick %d: player Y = %v, expected 0.5", i, p.Y)
		}
	}
}

func TestPlayerClampsAtCorner(t *testing.T) {
	g := newFarGame(t)

	for i := 0; i < 300; i++ {
		g.Step(core.Press(core.KeyArrowUp, core.KeyArrowLeft))
	}
	if p := g.world.Player; p.X != -10 || p.Z != -10 {
		t.Errorf("player at %v, expected corner (-10, -10)", p)
	}
}

func TestPlayerHeightIsPinned(t *testing.T) {
	g := newFarGame(t)
	g.world.Player.Y = 7

	g.Step(core.NewKeyState())
	if g.world.Player.Y != 0.5 {
		t.Errorf("player Y = %v after step, expected 0.5", g.world.Player.Y)
	}
}

func TestCollectRegularRespawnsBoth(t *testing.T) {
	// Start: regular at (8,8), bonus at (-8,-8). Later draws land at (8,8)
	// with a roll of 0.9, so no new bonus.
	src := &scripted{vals: []float64{0.9, 0.9, 0.1, 0.1, 0.1}, fallback: 0.9}
	g := NewGame(config.DefaultOrchardConfig(), src)
	if !g.world.Bonus.Present {
		t.Fatal("fixture should start with a bonus")
	}
	oldRegular := g.world.Regular.entity
	oldBonus := g.world.Bonus.entity

	standOn(g, g.world.Regular)
	g.Step(core.NewKeyState())

	s := g.Score()
	if s.Regular != 1 || s.Streak != 1 || s.Bonus != 0 {
		t.Errorf("score = %+v, expected regular 1 streak 1 bonus 0", s)
	}
	if g.spawns != 2 {
		t.Errorf("spawns = %d, expected 2", g.spawns)
	}
	if g.world.Regular.entity == oldRegular || oldRegular.Attached() {
		t.Error("regular apple entity should be replaced")
	}
	if oldBonus.Attached() || g.world.Bonus.Present {
		t.Error("old bonus should leave the scene")
	}
	if g.world.Scene.Count(NameRegular) != 1 || g.world.Scene.Count(NameBonus) != 0 {
		t.Errorf("scene holds %d regular and %d bonus entities, expected 1 and 0",
			g.world.Scene.Count(NameRegular), g.world.Scene.Count(NameBonus))
	}
}

func TestBonusSpawnResetsStreak(t *testing.T) {
	// Start without a bonus; the respawn after the pickup rolls 0.25.
	src := &scripted{vals: []float64{0.9, 0.9, 0.9, 0.25, 0.25, 0.25}, fallback: 0.25}
	g := NewGame(config.DefaultOrchardConfig(), src)
	g.score.Streak = 4

	standOn(g, g.world.Regular)
	g.Step(core.NewKeyState())

	s := g.Score()
	if s.Regular != 1 {
		t.Errorf("Regular = %d, expected 1", s.Regular)
	}
	if s.Streak != 0 {
		t.Errorf("Streak = %d, expected 0 after a bonus spawn", s.Streak)
	}
	if !g.world.Bonus.Present || g.world.Scene.Count(NameBonus) != 1 {
		t.Error("respawn with roll 0.25 should place a bonus")
	}
}

func TestCollectBonusResetsStreak(t *testing.T) {
	// Start: regular at (8,8), bonus at (-8,-8).
	src := &scripted{vals: []float64{0.9, 0.9, 0.1, 0.1, 0.1}, fallback: 0.9}
	g := NewGame(config.DefaultOrchardConfig(), src)
	g.score.Streak = 7

	standOn(g, g.world.Bonus)
	g.Step(core.NewKeyState())

	s := g.Score()
	if s.Bonus != 1 {
		t.Errorf("Bonus = %d, expected 1", s.Bonus)
	}
	if s.Streak != 0 {
		t.Errorf("Streak = %d, expected 0", s.Streak)
	}
	if s.Regular != 0 {
		t.Errorf("Regular = %d, expected 0", s.Regular)
	}
	if g.world.Bonus.Present {
		t.Error("respawn with roll 0.9 and streak 0 should leave no bonus")
	}
	if g.world.Scene.Count(NameBonus) != 0 {
		t.Error("scene should hold no bonus entity")
	}
}

func TestFiftyRegularPickups(t *testing.T) {
	cfg := config.DefaultOrchardConfig()
	cfg.Collectibles.BonusChance = 0 // only the streak spawns bonuses
	g := NewGame(cfg, &golden{})

	var resets []int
	for k := 1; k <= 50; k++ {
		standOn(g, g.world.Regular)
		res := g.Step(core.NewKeyState())
		if !res.Continue {
			t.Fatalf("pickup %d: game stopped", k)
		}

		s := g.Score()
		if s.Regular != k {
			t.Fatalf("pickup %d: Regular = %d", k, s.Regular)
		}
		if s.Bonus != 0 {
			t.Fatalf("pickup %d: unexpected bonus pickup", k)
		}
		if s.Streak != k%15 {
			t.Errorf("pickup %d: Streak = %d, expected %d", k, s.Streak, k%15)
		}
		if g.world.Bonus.Present {
			resets = append(resets, k)
		}
	}

	expected := []int{15, 30, 45}
	if len(resets) != len(expected) {
		t.Fatalf("forced bonus spawns at %v, expected %v", resets, expected)
	}
	for i := range expected {
		if resets[i] != expected[i] {
			t.Errorf("forced bonus spawns at %v, expected %v", resets, expected)
		}
	}
	if g.Phase() != PhaseRunning {
		t.Error("reaching the regular target must not complete the level")
	}
}

func TestStreakBonusNote(t *testing.T) {
	cfg := config.DefaultOrchardConfig()
	cfg.Collectibles.BonusChance = 0
	g := NewGame(cfg, &golden{})

	for k := 1; k <= 15; k++ {
		if g.StreakBonus() {
			t.Fatalf("pickup %d: no streak bonus expected yet", k)
		}
		standOn(g, g.world.Regular)
		g.Step(core.NewKeyState())
	}
	if !g.StreakBonus() {
		t.Fatal("15th regular pickup should force a streak bonus")
	}

	hud := g.HUD()
	if hud[len(hud)-1] != "Streak bonus!" {
		t.Errorf("HUD = %q, expected a streak note", hud)
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if row := screen.Row(2); !strings.Contains(row, "Streak bonus!") {
		t.Errorf("row 2 = %q, expected the streak note", row)
	}

	standOn(g, g.world.Bonus)
	g.Step(core.NewKeyState())
	if g.StreakBonus() || len(g.HUD()) != 2 {
		t.Error("note should clear once the bonus is collected")
	}
}

func TestRolledBonusHasNoNote(t *testing.T) {
	src := &scripted{vals: []float64{0.9, 0.9, 0.1, 0.1, 0.1}, fallback: 0.9}
	g := NewGame(config.DefaultOrchardConfig(), src)
	if !g.world.Bonus.Present {
		t.Fatal("fixture should start with a bonus")
	}
	if g.StreakBonus() {
		t.Error("a bonus from the chance roll is not a streak bonus")
	}
}

func TestCompletionOnThirtiethBonus(t *testing.T) {
	src := &scripted{vals: []float64{0.9, 0.9, 0.1, 0.1, 0.1}, fallback: 0.9}
	g := NewGame(config.DefaultOrchardConfig(), src)
	g.score.Bonus = 29

	standOn(g, g.world.Bonus)
	res := g.Step(core.NewKeyState())

	if !res.State.Completed || res.State.Bonus != 30 {
		t.Errorf("state = %+v, expected completed with 30 bonus", res.State)
	}
	if res.Continue {
		t.Error("completing tick should request no further ticks")
	}
	if g.Phase() != PhaseCompleted {
		t.Errorf("phase = %v, expected completed", g.Phase())
	}

	// Further steps are no-ops and completion never reverts.
	before := g.Snapshot()
	for i := 0; i < 10; i++ {
		res = g.Step(core.Press(core.KeyArrowUp, core.KeyRotateLeft))
		if res.Continue || !res.State.Completed {
			t.Fatalf("step after completion returned %+v", res)
		}
	}
	if after := g.Snapshot(); after != before {
		t.Errorf("completed game changed:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestNotCompleteBelowTarget(t *testing.T) {
	src := &scripted{vals: []float64{0.9, 0.9, 0.1, 0.1, 0.1}, fallback: 0.9}
	g := NewGame(config.DefaultOrchardConfig(), src)
	g.score.Bonus = 28

	standOn(g, g.world.Bonus)
	res := g.Step(core.NewKeyState())

	if res.State.Completed || !res.Continue {
		t.Errorf("29 bonus should not complete, got %+v", res)
	}
}

func TestSceneHoldsOneApplePerKind(t *testing.T) {
	g := NewGame(config.DefaultOrchardConfig(), rand.New(rand.NewSource(11)))

	for i := 0; i < 200 && g.Phase() == PhaseRunning; i++ {
		if i%2 == 0 || !g.world.Bonus.Present {
			standOn(g, g.world.Regular)
		} else {
			standOn(g, g.world.Bonus)
		}
		g.Step(core.NewKeyState())

		sc := g.world.Scene
		if sc.Count(NameRegular) != 1 {
			t.Fatalf("tick %d: %d regular entities", i, sc.Count(NameRegular))
		}
		if n := sc.Count(NameBonus); n > 1 || (n == 1) != g.world.Bonus.Present {
			t.Fatalf("tick %d: %d bonus entities, present=%v", i, n, g.world.Bonus.Present)
		}
		if sc.Count(NameGround) != 1 || sc.Count(NamePlayer) != 1 {
			t.Fatalf("tick %d: ground or player entity missing", i)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}

	script := make([]core.KeyState, 600)
	for i := range script {
		switch {
		case i%120 < 40:
			script[i] = core.Press(core.KeyArrowUp)
		case i%120 < 70:
			script[i] = core.Press(core.KeyArrowRight, core.KeyRotateRight)
		case i%120 < 100:
			script[i] = core.Press(core.KeyArrowDown, core.KeyArrowLeft)
		default:
			script[i] = core.Press(core.KeyRotateLeft)
		}
	}

	run := func() Snapshot {
		g := New()
		g.Reset(cfg)
		for _, in := range script {
			if !g.Step(in).Continue {
				break
			}
		}
		return g.Snapshot()
	}

	s1, s2 := run(), run()
	if s1 != s2 {
		t.Errorf("Determinism failed:\nrun1 %+v\nrun2 %+v", s1, s2)
	}
}

func TestRenderHUD(t *testing.T) {
	g := newFarGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if row := screen.Row(0); !strings.HasSuffix(row, "Red Apples: 0/50 ") {
		t.Errorf("row 0 = %q, expected right-aligned red counter", row)
	}
	if row := screen.Row(1); !strings.HasSuffix(row, "Golden Apples: 0/30 ") {
		t.Errorf("row 1 = %q, expected right-aligned golden counter", row)
	}
	if strings.Contains(screen.String(), "Level Complete!") {
		t.Error("completion message should be hidden while running")
	}

	// The "0" in the red counter is drawn in red.
	x := strings.Index(screen.Row(0), "0/50")
	if c := screen.GetCell(x, 0); c.Color != core.ColorRed {
		t.Errorf("red count color = %v, expected red", c.Color)
	}
}

func TestRenderDrawsScene(t *testing.T) {
	g := newFarGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.ContainsRune(screen.String(), '#') {
		t.Error("player cube should be visible")
	}
	if !strings.ContainsRune(screen.String(), '.') {
		t.Error("ground grid should be visible")
	}
}

func TestRenderCompletion(t *testing.T) {
	src := &scripted{vals: []float64{0.9, 0.9, 0.1, 0.1, 0.1}, fallback: 0.9}
	g := NewGame(config.DefaultOrchardConfig(), src)
	g.score.Bonus = 29
	standOn(g, g.world.Bonus)
	g.Step(core.NewKeyState())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Level Complete!") {
		t.Error("completion message should be shown")
	}
	if !strings.Contains(screen.String(), "Golden Apples: 30/30") {
		t.Error("HUD should show the final golden count")
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("orchard") {
		t.Fatal("orchard should be registered")
	}
	g, err := registry.Create("orchard")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Orchard" {
		t.Errorf("Title() = %q", g.Title())
	}
}
