package orchard

// touching reports whether the player is within pickup range of c.
func (g *Game) touching(c Collectible) bool {
	if !c.Present {
		return false
	}
	return g.world.Player.DistanceTo(c.Position) < g.cfg.Collectibles.PickupRadius
}

// checkCollisions handles pickups and the win condition for one tick.
//
// The regular apple is checked first. Any pickup respawns both apples, so
// the bonus check sees the bonus that is current after a regular pickup.
func (g *Game) checkCollisions() {
	if g.touching(g.world.Regular) {
		g.score.CollectRegular()
		g.respawn()
	}

	if g.touching(g.world.Bonus) {
		g.score.CollectBonus()
		g.respawn()
	}

	if g.score.IsComplete() {
		g.score.markCompleted()
		g.phase = PhaseCompleted
	}
}

// respawn replaces both collectibles and applies the streak reset when a
// bonus spawns.
func (g *Game) respawn() {
	sp := g.spawner.Spawn(g.score.Streak)
	if sp.HasBonus {
		g.score.ResetStreak()
	}
	g.world.Place(sp)
	g.streakBonus = sp.Forced
	g.spawns++
}
