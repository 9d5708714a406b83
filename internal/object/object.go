// Package object defines the game entities: the defender ship, attacking
// aliens, projectiles and explosions.
package object

import (
	"math"
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/physics"
)

// Kind tags the concrete variant of an entity.
type Kind int

const (
	KindShip Kind = iota
	KindAlien
	KindProjectile
	KindExplosion
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindAlien:
		return "alien"
	case KindProjectile:
		return "projectile"
	case KindExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Side is the collection an entity lives in.
type Side int

const (
	SideDefender Side = iota // The player's ship and its projectiles
	SideAttacker             // The alien wave and its projectiles
	SideNeutral              // Effects that never collide
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(side Side, e Entity)
}

// Rand is the random source entities draw from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// SoundPlayer plays named sound cues, fire-and-forget.
type SoundPlayer interface {
	Play(name string)
}

// Input is an alias for the input package's Input type.
type Input = input.Input

// Screen is the playfield size in logical pixels.
type Screen struct {
	Width  float64
	Height float64
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Now     time.Time
	Input   Input
	Screen  Screen
	Spawner Spawner
	Rand    Rand
	Sounds  SoundPlayer
}

func (ctx UpdateContext) play(name string) {
	if ctx.Sounds != nil {
		ctx.Sounds.Play(name)
	}
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface draw.Surface
	Screen  Screen
}

// Body is the state every entity shares: where it is, how big it is and how
// much life it has left.
type Body struct {
	Kind       Kind
	Pos        physics.Vector // Center
	Size       physics.Vector
	HalfWidth  float64 // floor(Size.X / 2)
	HalfHeight float64 // floor(Size.Y / 2)
	Life       int
}

// NewBody creates a body and derives its half extents from size.
func NewBody(kind Kind, pos, size physics.Vector, life int) Body {
	return Body{
		Kind:       kind,
		Pos:        pos,
		Size:       size,
		HalfWidth:  math.Floor(size.X / 2),
		HalfHeight: math.Floor(size.Y / 2),
		Life:       life,
	}
}

// Base returns the body itself, so embedding types satisfy Entity.
func (b *Body) Base() *Body {
	return b
}

// Alive reports whether the entity still has life left.
func (b *Body) Alive() bool {
	return b.Life > 0
}

// Box returns the bounding box centered on the body's position.
func (b *Body) Box() physics.Box {
	return physics.Box{Center: b.Pos, HalfWidth: b.HalfWidth, HalfHeight: b.HalfHeight}
}

// Area returns the nominal sprite area, used to pick which of two colliding
// entities an explosion is centered on.
func (b *Body) Area() float64 {
	return b.Size.X * b.Size.Y
}

// Origin returns the top-left corner of the bounding box.
func (b *Body) Origin() (x, y float64) {
	return b.Pos.X - b.HalfWidth, b.Pos.Y - b.HalfHeight
}

// Entity is a drawable and updatable game object.
type Entity interface {
	// Base exposes the shared state.
	Base() *Body

	// Update advances the entity by one tick.
	Update(ctx UpdateContext)

	// Draw renders the entity through the surface.
	Draw(ctx DrawContext) error
}

// Colliding reports whether two distinct entities' bounding boxes intersect.
// An entity never collides with itself.
func Colliding(a, b Entity) bool {
	if a == b {
		return false
	}
	return physics.BoxesOverlap(a.Base().Box(), b.Base().Box())
}

// InPlayfield reports whether any part of the entity is still on the playfield.
func InPlayfield(e Entity, screen Screen) bool {
	return physics.BoxWithin(e.Base().Box(), screen.Width, screen.Height)
}
