package orchard

import (
	"math"

	"github.com/vovakirdan/orchard/internal/core"
)

// updateYaw turns the camera while q or e is held. Both keys may apply in
// the same tick.
func (w *World) updateYaw(in core.KeyState) {
	step := w.cfg.Camera.YawStep
	if in.IsHeld(core.KeyRotateLeft) {
		w.Yaw -= step
	}
	if in.IsHeld(core.KeyRotateRight) {
		w.Yaw += step
	}
}

// movement returns the camera-relative step for the held arrow keys.
// Each key adds speed along its own axis; diagonals are not normalized.
func movement(in core.KeyState, speed float64) core.Vec3 {
	var d core.Vec3
	if in.IsHeld(core.KeyArrowUp) {
		d.Z -= speed
	}
	if in.IsHeld(core.KeyArrowDown) {
		d.Z += speed
	}
	if in.IsHeld(core.KeyArrowLeft) {
		d.X -= speed
	}
	if in.IsHeld(core.KeyArrowRight) {
		d.X += speed
	}
	return d
}

// movePlayer applies one tick of movement and returns the unclamped
// displacement. The player stays inside the field and on the ground.
func (w *World) movePlayer(in core.KeyState) core.Vec3 {
	d := movement(in, w.cfg.Player.Speed).RotateY(w.Yaw)
	p := w.Player.Add(d)

	e := w.cfg.Field.HalfExtent
	p.X = core.ClampF(p.X, -e, e)
	p.Z = core.ClampF(p.Z, -e, e)
	p.Y = w.cfg.PlayerHeight()

	w.Player = p
	w.syncPlayer()
	return d
}

// updateCamera places the camera behind the player at the current yaw and
// aims it at the player.
func (w *World) updateCamera() {
	sin, cos := math.Sincos(w.Yaw)
	r := w.cfg.Camera.Radius
	w.Camera.Position = core.V3(
		w.Player.X+r*sin,
		w.Player.Y+w.cfg.Camera.Height,
		w.Player.Z+r*cos,
	)
	w.Camera.LookAt(w.Player)
}
