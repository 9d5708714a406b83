package object

import (
	"math"
	"time"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/physics"
)

// Ship constants.
const (
	ShipWidth       = 67
	ShipHeight      = 53
	ShipSpeed       = 8.0
	ShipMaxLife     = 5
	ShipFireRate    = 200 * time.Millisecond
	ShipMinFireRate = 50 * time.Millisecond
)

// Health bar colors.
var (
	healthTrackColor = draw.MustColor("#F95738")
	healthFillColor  = draw.MustColor("#1CB5E7")
)

// Ship is the player-controlled defender at the bottom of the playfield.
type Ship struct {
	Body
	Speed    float64       // Pixels per tick
	MaxLife  int           // Life restored at the start of every wave
	FireRate time.Duration // Minimum time between shots

	gateOpensAt time.Time // Shooting is allowed from this instant on
}

// NewShip creates a ship centered near the bottom of the screen.
func NewShip(screen Screen) *Ship {
	pos := physics.Vec(
		math.Floor(screen.Width/2)-math.Floor(ShipWidth/2),
		screen.Height-math.Floor(ShipHeight/2),
	)
	return &Ship{
		Body:     NewBody(KindShip, pos, physics.Vec(ShipWidth, ShipHeight), ShipMaxLife),
		Speed:    ShipSpeed,
		MaxLife:  ShipMaxLife,
		FireRate: ShipFireRate,
	}
}

// CanShoot reports whether the fire gate is open at now.
func (s *Ship) CanShoot(now time.Time) bool {
	return !now.Before(s.gateOpensAt)
}

// Update moves the ship horizontally and fires while the gate is open.
func (s *Ship) Update(ctx UpdateContext) {
	switch {
	case ctx.Input.IsHeld(input.KeyLeft):
		s.Pos.Move(-s.Speed, 0)
	case ctx.Input.IsHeld(input.KeyRight):
		s.Pos.Move(s.Speed, 0)
	}
	s.Pos.X = math.Max(s.HalfWidth, math.Min(s.Pos.X, ctx.Screen.Width-s.HalfWidth))

	if s.CanShoot(ctx.Now) && ctx.Input.IsHeld(input.KeyFire) && ctx.Spawner != nil {
		pos := s.Pos.Clone().Move(0, -s.HalfHeight)
		shot := NewProjectile(*pos, physics.Vec(0, -ProjectileSpeed), true)
		ctx.Spawner.Spawn(shot.Side(), shot)
		ctx.play(asset.SoundRaygun)
		s.gateOpensAt = ctx.Now.Add(s.FireRate)
	}
}

// Draw renders the ship sprite and its health bar.
func (s *Ship) Draw(ctx DrawContext) error {
	x, y := s.Origin()
	if err := ctx.Surface.DrawImage(asset.ImageShip, x, y, 0); err != nil {
		return err
	}
	s.drawLife(ctx)
	return nil
}

// drawLife renders the health bar in the top-right corner.
func (s *Ship) drawLife(ctx DrawContext) {
	w := ctx.Screen.Width
	ctx.Surface.FillRect(w-112, 10, 102, 12, healthTrackColor)
	if s.MaxLife > 0 && s.Life > 0 {
		ctx.Surface.FillRect(w-111, 11, float64(s.Life)*100/float64(s.MaxLife), 10, healthFillColor)
	}
}
