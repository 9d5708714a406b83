package object

import (
	"math"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Alien constants.
const (
	AlienWidth  = 50
	AlienHeight = 56
	AlienLife   = 3

	// AlienMaxRange is the lowest y an alien's bounding box may patrol to.
	AlienMaxRange = 350.0

	// AlienKeepDirection is the per-axis, per-tick chance of keeping the
	// current direction; the rest of the time the axis flips.
	AlienKeepDirection = 0.990
)

// Threat strip colors.
var (
	threatTrackColor = draw.MustColor("#1CB5E7")
	threatLifeColors = map[int]draw.Color{
		3: draw.MustColor("#539A20"),
		2: draw.MustColor("#F69417"),
		1: draw.MustColor("#F95738"),
	}
)

// Alien is an attacker patrolling the upper playfield and firing downward.
type Alien struct {
	Body
	Speed     float64        // Pixels per tick on each axis
	ShootProb float64        // Fires when a uniform draw exceeds this
	Direction physics.Vector // Each axis is +1 or -1
}

// NewAlien creates an alien at pos heading right and down.
func NewAlien(pos physics.Vector, speed, shootProb float64) *Alien {
	return &Alien{
		Body:      NewBody(KindAlien, pos, physics.Vec(AlienWidth, AlienHeight), AlienLife),
		Speed:     speed,
		ShootProb: shootProb,
		Direction: physics.Vec(1, 1),
	}
}

// Update patrols within the allowed area and occasionally fires.
func (a *Alien) Update(ctx UpdateContext) {
	a.Direction.X = patrol(a.Direction.X, a.Pos.X-a.HalfWidth, a.Pos.X+a.HalfWidth, ctx.Screen.Width, ctx.Rand)
	a.Direction.Y = patrol(a.Direction.Y, a.Pos.Y-a.HalfHeight, a.Pos.Y+a.HalfHeight, AlienMaxRange, ctx.Rand)
	a.Pos.Move(a.Speed*a.Direction.X, a.Speed*a.Direction.Y)

	if ctx.Rand.Float64() > a.ShootProb && ctx.Spawner != nil {
		pos := a.Pos.Clone().Move(0, a.HalfHeight)
		velocity := physics.Vec(ctx.Rand.Float64()-0.5, ProjectileSpeed)
		shot := NewProjectile(*pos, velocity, false)
		ctx.Spawner.Spawn(shot.Side(), shot)
		ctx.play(asset.SoundRaygun)
	}
}

// patrol returns the next direction on one axis. Edges force the direction
// back into range; in between the direction randomly flips.
func patrol(dir, low, high, limit float64, rnd Rand) float64 {
	switch {
	case low <= 0:
		return 1
	case high >= limit:
		return -1
	case rnd.Float64() > AlienKeepDirection:
		return -dir
	default:
		return dir
	}
}

// Draw renders the alien facing down.
func (a *Alien) Draw(ctx DrawContext) error {
	return ctx.Surface.DrawImage(asset.ImageFighter, a.Pos.X+a.HalfWidth, a.Pos.Y+a.HalfHeight, math.Pi)
}

// DrawThreat renders one tile per alien in the top-left corner, colored by
// remaining life.
func DrawThreat(s draw.Surface, aliens []*Body) {
	s.FillRect(10, 10, float64(10*len(aliens)+2), 12, threatTrackColor)
	for i, a := range aliens {
		color, ok := threatLifeColors[a.Life]
		if !ok {
			color = threatTrackColor
		}
		s.FillRect(float64(10*i+11), 11, 10, 10, color)
	}
}
