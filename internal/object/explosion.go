package object

import (
	"time"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/physics"
)

// Explosion constants.
const (
	ExplosionWidth    = 115
	ExplosionHeight   = 100
	ExplosionDuration = 150 * time.Millisecond
)

// Explosion is a short-lived impact effect. It never collides.
type Explosion struct {
	Body
	CreatedAt time.Time
}

// NewExplosion creates an explosion centered on pos.
func NewExplosion(pos physics.Vector, now time.Time) *Explosion {
	return &Explosion{
		Body:      NewBody(KindExplosion, pos, physics.Vec(ExplosionWidth, ExplosionHeight), 1),
		CreatedAt: now,
	}
}

// Update expires the explosion once its duration has passed.
func (e *Explosion) Update(ctx UpdateContext) {
	if ctx.Now.Sub(e.CreatedAt) > ExplosionDuration {
		e.Life = 0
	}
}

// Draw renders the explosion sprite.
func (e *Explosion) Draw(ctx DrawContext) error {
	x, y := e.Origin()
	return ctx.Surface.DrawImage(asset.ImageExplosion, x, y, 0)
}
