package object

import (
	"math"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/physics"
)

// Projectile constants.
const (
	ProjectileWidth  = 15
	ProjectileHeight = 16
	ProjectileSpeed  = 3.0
)

// Projectile is a shot fired by the ship or an alien.
// A single hit destroys it.
type Projectile struct {
	Body
	Velocity physics.Vector // Added to the position every tick
	Defender bool           // Fired by the ship
}

// NewProjectile creates a projectile at pos moving by velocity every tick.
func NewProjectile(pos, velocity physics.Vector, defender bool) *Projectile {
	return &Projectile{
		Body:     NewBody(KindProjectile, pos, physics.Vec(ProjectileWidth, ProjectileHeight), 1),
		Velocity: velocity,
		Defender: defender,
	}
}

// Side returns the collection the projectile belongs to.
func (p *Projectile) Side() Side {
	if p.Defender {
		return SideDefender
	}
	return SideAttacker
}

// Update moves the projectile.
func (p *Projectile) Update(_ UpdateContext) {
	p.Pos.Add(p.Velocity)
}

// Draw renders the projectile pointing in its direction of travel.
func (p *Projectile) Draw(ctx DrawContext) error {
	if p.Defender {
		x, y := p.Origin()
		return ctx.Surface.DrawImage(asset.ImageRebelBullet, x, y, 0)
	}
	return ctx.Surface.DrawImage(asset.ImageRepublicBullet, p.Pos.X+p.HalfWidth, p.Pos.Y+p.HalfHeight, math.Pi)
}
