package object

import (
	"math"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/physics"
)

var testScreen = Screen{Width: 800, Height: 600}

// seqRand returns scripted values in order, then fallback forever.
type seqRand struct {
	vals     []float64
	fallback float64
	calls    int
}

func (r *seqRand) Float64() float64 {
	r.calls++
	if len(r.vals) == 0 {
		return r.fallback
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	return v
}

type spawned struct {
	side Side
	e    Entity
}

type recordingSpawner struct {
	spawned []spawned
}

func (s *recordingSpawner) Spawn(side Side, e Entity) {
	s.spawned = append(s.spawned, spawned{side, e})
}

type recordingSounds struct {
	played []string
}

func (s *recordingSounds) Play(name string) {
	s.played = append(s.played, name)
}

type imageCall struct {
	name     string
	x, y     float64
	rotation float64
}

type rectCall struct {
	x, y, w, h float64
	color      draw.Color
}

type recordingSurface struct {
	images []imageCall
	rects  []rectCall
}

func (s *recordingSurface) ClearRect(x, y, w, h float64) {}

func (s *recordingSurface) DrawImage(name string, x, y, rotation float64) error {
	s.images = append(s.images, imageCall{name, x, y, rotation})
	return nil
}

func (s *recordingSurface) FillRect(x, y, w, h float64, c draw.Color) {
	s.rects = append(s.rects, rectCall{x, y, w, h, c})
}

func (s *recordingSurface) DrawCenteredText(text string, x, y float64) {}

func newContext(now time.Time, in input.Input, rnd Rand) (UpdateContext, *recordingSpawner, *recordingSounds) {
	sp := &recordingSpawner{}
	snd := &recordingSounds{}
	return UpdateContext{
		Now:     now,
		Input:   in,
		Screen:  testScreen,
		Spawner: sp,
		Rand:    rnd,
		Sounds:  snd,
	}, sp, snd
}

func TestNewBodyHalfExtents(t *testing.T) {
	b := NewBody(KindShip, physics.Vec(0, 0), physics.Vec(67, 53), 1)
	if b.HalfWidth != 33 || b.HalfHeight != 26 {
		t.Errorf("half extents = %v x %v, want 33 x 26", b.HalfWidth, b.HalfHeight)
	}
}

func TestAliveIffLifePositive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		life := rapid.IntRange(-5, 5).Draw(t, "life")
		b := NewBody(KindAlien, physics.Vec(0, 0), physics.Vec(1, 1), life)
		if b.Alive() != (life > 0) {
			t.Fatalf("Alive() = %v for life %d", b.Alive(), life)
		}
	})
}

func genProjectile(t *rapid.T, label string) *Projectile {
	x := rapid.Float64Range(-100, 900).Draw(t, label+"x")
	y := rapid.Float64Range(-100, 700).Draw(t, label+"y")
	p := NewProjectile(physics.Vec(x, y), physics.Vec(0, 0), rapid.Bool().Draw(t, label+"defender"))
	p.Size = physics.Vec(rapid.Float64Range(0, 120).Draw(t, label+"w"), rapid.Float64Range(0, 120).Draw(t, label+"h"))
	p.HalfWidth = math.Floor(p.Size.X / 2)
	p.HalfHeight = math.Floor(p.Size.Y / 2)
	return p
}

func TestCollidingIsSymmetricAndIrreflexive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genProjectile(t, "a")
		b := genProjectile(t, "b")
		if Colliding(a, b) != Colliding(b, a) {
			t.Fatalf("Colliding not symmetric for %+v and %+v", a.Body, b.Body)
		}
		if Colliding(a, a) {
			t.Fatal("an entity must never collide with itself")
		}
	})
}

func TestCollidingSamePositionDistinctInstances(t *testing.T) {
	a := NewProjectile(physics.Vec(10, 10), physics.Vec(0, 0), true)
	b := NewProjectile(physics.Vec(10, 10), physics.Vec(0, 0), false)
	if !Colliding(a, b) {
		t.Error("distinct entities at the same spot should collide")
	}

	// Zero extents must not blow up and still overlap at the same point.
	a.HalfWidth, a.HalfHeight = 0, 0
	b.HalfWidth, b.HalfHeight = 0, 0
	if !Colliding(a, b) {
		t.Error("degenerate boxes at the same point should collide")
	}
	b.Pos.X = 11
	if Colliding(a, b) {
		t.Error("degenerate boxes apart should not collide")
	}
}

func TestInPlayfield(t *testing.T) {
	tests := []struct {
		name string
		pos  physics.Vector
		want bool
	}{
		{"center", physics.Vec(400, 300), true},
		{"partly above", physics.Vec(400, -5), true},
		{"above", physics.Vec(400, -20), false},
		{"below", physics.Vec(400, 620), false},
		{"left", physics.Vec(-10, 300), false},
		{"right", physics.Vec(810, 300), false},
		// Height, not width, bounds the vertical axis.
		{"between height and width", physics.Vec(400, 700), false},
	}
	for _, tt := range tests {
		p := NewProjectile(tt.pos, physics.Vec(0, 0), true)
		if got := InPlayfield(p, testScreen); got != tt.want {
			t.Errorf("%s: InPlayfield = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestProjectileMovesByVelocity(t *testing.T) {
	p := NewProjectile(physics.Vec(100, 100), physics.Vec(0.25, -3), true)
	ctx, _, _ := newContext(time.Unix(0, 0), input.Input{}, &seqRand{})
	p.Update(ctx)
	p.Update(ctx)
	if p.Pos.X != 100.5 || p.Pos.Y != 94 {
		t.Errorf("pos = %+v, want {100.5 94}", p.Pos)
	}
	if p.Life != 1 {
		t.Errorf("life = %d, want 1", p.Life)
	}
}

func TestProjectileSideAndOrientation(t *testing.T) {
	surface := &recordingSurface{}
	dctx := DrawContext{Surface: surface, Screen: testScreen}

	up := NewProjectile(physics.Vec(100, 100), physics.Vec(0, -3), true)
	down := NewProjectile(physics.Vec(100, 100), physics.Vec(0, 3), false)
	if up.Side() != SideDefender || down.Side() != SideAttacker {
		t.Fatal("projectile side should follow the defender flag")
	}
	if err := up.Draw(dctx); err != nil {
		t.Fatal(err)
	}
	if err := down.Draw(dctx); err != nil {
		t.Fatal(err)
	}

	want := []imageCall{
		{asset.ImageRebelBullet, 93, 92, 0},
		{asset.ImageRepublicBullet, 107, 108, math.Pi},
	}
	if len(surface.images) != len(want) {
		t.Fatalf("images = %+v", surface.images)
	}
	for i := range want {
		if surface.images[i] != want[i] {
			t.Errorf("image %d = %+v, want %+v", i, surface.images[i], want[i])
		}
	}
}

func TestShipStartsBottomCenter(t *testing.T) {
	s := NewShip(testScreen)
	if s.Pos.X != 367 || s.Pos.Y != 574 {
		t.Errorf("start = %+v, want {367 574}", s.Pos)
	}
	if s.Life != ShipMaxLife || s.FireRate != ShipFireRate {
		t.Errorf("life %d fire rate %v", s.Life, s.FireRate)
	}
}

func TestShipMovementClamped(t *testing.T) {
	now := time.Unix(0, 0)
	s := NewShip(testScreen)

	left, _, _ := newContext(now, input.Holding(input.KeyLeft), &seqRand{})
	for i := 0; i < 200; i++ {
		s.Update(left)
		if s.Pos.X-s.HalfWidth < 0 {
			t.Fatalf("ship crossed the left edge: x=%v", s.Pos.X)
		}
	}
	if s.Pos.X != s.HalfWidth {
		t.Errorf("ship should rest against the left edge, x=%v", s.Pos.X)
	}

	right, _, _ := newContext(now, input.Holding(input.KeyRight), &seqRand{})
	s.Update(right)
	if s.Pos.X != s.HalfWidth+ShipSpeed {
		t.Errorf("ship should move right by speed, x=%v", s.Pos.X)
	}
	for i := 0; i < 200; i++ {
		s.Update(right)
		if s.Pos.X+s.HalfWidth > testScreen.Width {
			t.Fatalf("ship crossed the right edge: x=%v", s.Pos.X)
		}
	}

	// Left wins when both are held.
	both, _, _ := newContext(now, input.Holding(input.KeyLeft, input.KeyRight), &seqRand{})
	before := s.Pos.X
	s.Update(both)
	if s.Pos.X != before-ShipSpeed {
		t.Errorf("left should take priority, x=%v want %v", s.Pos.X, before-ShipSpeed)
	}
}

func TestShipFireGate(t *testing.T) {
	start := time.Unix(100, 0)
	s := NewShip(testScreen)
	fire := input.Holding(input.KeyFire)

	ctx, sp, snd := newContext(start, fire, &seqRand{})
	s.Update(ctx)
	if len(sp.spawned) != 1 {
		t.Fatalf("first shot spawned %d projectiles, want 1", len(sp.spawned))
	}
	shot := sp.spawned[0]
	p, ok := shot.e.(*Projectile)
	if !ok || shot.side != SideDefender || !p.Defender {
		t.Fatalf("spawned %+v on side %v, want a defender projectile", shot.e, shot.side)
	}
	if p.Pos != physics.Vec(s.Pos.X, s.Pos.Y-s.HalfHeight) {
		t.Errorf("projectile at %+v, want ship top center", p.Pos)
	}
	if p.Velocity != physics.Vec(0, -ProjectileSpeed) {
		t.Errorf("velocity = %+v, want straight up", p.Velocity)
	}
	if len(snd.played) != 1 || snd.played[0] != asset.SoundRaygun {
		t.Errorf("sounds = %v, want raygun", snd.played)
	}

	// Gate closed: holding fire does nothing until the fire rate elapses.
	for _, dt := range []time.Duration{time.Millisecond, 100 * time.Millisecond, ShipFireRate - time.Nanosecond} {
		ctx, sp, _ := newContext(start.Add(dt), fire, &seqRand{})
		s.Update(ctx)
		if len(sp.spawned) != 0 {
			t.Errorf("shot fired %v after the previous one while gate closed", dt)
		}
	}

	// The gate reopens on its own; no input needed in between.
	idle, _, _ := newContext(start.Add(ShipFireRate), input.Input{}, &seqRand{})
	s.Update(idle)
	if !s.CanShoot(start.Add(ShipFireRate)) {
		t.Fatal("gate should be open after the fire rate")
	}

	ctx, sp, _ = newContext(start.Add(ShipFireRate+time.Millisecond), fire, &seqRand{})
	s.Update(ctx)
	if len(sp.spawned) != 1 {
		t.Errorf("reopened gate spawned %d projectiles, want exactly 1", len(sp.spawned))
	}
}

func TestShipHealthBar(t *testing.T) {
	s := NewShip(testScreen)
	s.Life = 2
	surface := &recordingSurface{}
	if err := s.Draw(DrawContext{Surface: surface, Screen: testScreen}); err != nil {
		t.Fatal(err)
	}

	if len(surface.images) != 1 || surface.images[0].name != asset.ImageShip {
		t.Fatalf("images = %+v", surface.images)
	}
	if got := surface.images[0]; got.x != s.Pos.X-33 || got.y != s.Pos.Y-26 || got.rotation != 0 {
		t.Errorf("ship drawn at %+v", got)
	}
	want := []rectCall{
		{688, 10, 102, 12, healthTrackColor},
		{689, 11, 40, 10, healthFillColor},
	}
	if len(surface.rects) != len(want) {
		t.Fatalf("rects = %+v", surface.rects)
	}
	for i := range want {
		if surface.rects[i] != want[i] {
			t.Errorf("rect %d = %+v, want %+v", i, surface.rects[i], want[i])
		}
	}
}

func TestAlienPatrolEdges(t *testing.T) {
	tests := []struct {
		name    string
		pos     physics.Vector
		dir     physics.Vector
		rand    []float64
		wantDir physics.Vector
	}{
		{"left edge forces right", physics.Vec(25, 100), physics.Vec(-1, 1), []float64{0, 0, 0}, physics.Vec(1, 1)},
		{"right edge forces left", physics.Vec(775, 100), physics.Vec(1, 1), []float64{0, 0, 0}, physics.Vec(-1, 1)},
		{"above top forces down", physics.Vec(400, -200), physics.Vec(1, -1), []float64{0, 0}, physics.Vec(1, 1)},
		{"max range forces up", physics.Vec(400, 322), physics.Vec(1, 1), []float64{0, 0}, physics.Vec(1, -1)},
		{"middle keeps direction", physics.Vec(400, 100), physics.Vec(1, -1), []float64{0.5, 0.99, 0}, physics.Vec(1, -1)},
		{"middle flips on high draw", physics.Vec(400, 100), physics.Vec(1, -1), []float64{0.995, 0.999, 0}, physics.Vec(-1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAlien(tt.pos, 2, 1)
			a.Direction = tt.dir
			ctx, sp, _ := newContext(time.Unix(0, 0), input.Input{}, &seqRand{vals: tt.rand})
			a.Update(ctx)
			if a.Direction != tt.wantDir {
				t.Errorf("direction = %+v, want %+v", a.Direction, tt.wantDir)
			}
			want := physics.Vec(tt.pos.X+2*tt.wantDir.X, tt.pos.Y+2*tt.wantDir.Y)
			if a.Pos != want {
				t.Errorf("pos = %+v, want %+v", a.Pos, want)
			}
			if len(sp.spawned) != 0 {
				t.Error("alien with ShootProb 1 must never fire")
			}
		})
	}
}

func TestAlienFires(t *testing.T) {
	a := NewAlien(physics.Vec(400, 100), 1, 0.9)
	// x patrol, y patrol, fire draw, horizontal jitter
	rnd := &seqRand{vals: []float64{0, 0, 0.95, 0.75}}
	ctx, sp, snd := newContext(time.Unix(0, 0), input.Input{}, rnd)
	a.Update(ctx)

	if len(sp.spawned) != 1 {
		t.Fatalf("spawned %d projectiles, want 1", len(sp.spawned))
	}
	p, ok := sp.spawned[0].e.(*Projectile)
	if !ok || sp.spawned[0].side != SideAttacker || p.Defender {
		t.Fatalf("spawned %+v, want an attacker projectile", sp.spawned[0])
	}
	if p.Pos != physics.Vec(a.Pos.X, a.Pos.Y+a.HalfHeight) {
		t.Errorf("projectile at %+v, want alien bottom center", p.Pos)
	}
	if p.Velocity != physics.Vec(0.25, ProjectileSpeed) {
		t.Errorf("velocity = %+v, want {0.25 3}", p.Velocity)
	}
	if len(snd.played) != 1 || snd.played[0] != asset.SoundRaygun {
		t.Errorf("sounds = %v", snd.played)
	}

	// A draw at or below the threshold holds fire.
	hold := &seqRand{vals: []float64{0, 0, 0.9}}
	ctx, sp, _ = newContext(time.Unix(0, 0), input.Input{}, hold)
	a.Update(ctx)
	if len(sp.spawned) != 0 {
		t.Error("draw equal to ShootProb should not fire")
	}
}

func TestAlienJitterBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		jitter := rapid.Float64Range(0, 0.999999).Draw(t, "jitter")
		a := NewAlien(physics.Vec(400, 100), 1, 0)
		ctx, sp, _ := newContext(time.Unix(0, 0), input.Input{}, &seqRand{vals: []float64{0, 0, 0.5, jitter}})
		a.Update(ctx)
		if len(sp.spawned) != 1 {
			t.Fatalf("spawned %d", len(sp.spawned))
		}
		v := sp.spawned[0].e.(*Projectile).Velocity
		if v.X < -0.5 || v.X >= 0.5 || v.Y != ProjectileSpeed {
			t.Fatalf("velocity %+v outside jitter range", v)
		}
	})
}

func TestAlienDrawnRotated(t *testing.T) {
	a := NewAlien(physics.Vec(100, 100), 1, 1)
	surface := &recordingSurface{}
	if err := a.Draw(DrawContext{Surface: surface, Screen: testScreen}); err != nil {
		t.Fatal(err)
	}
	want := imageCall{asset.ImageFighter, 125, 128, math.Pi}
	if len(surface.images) != 1 || surface.images[0] != want {
		t.Errorf("images = %+v, want %+v", surface.images, want)
	}
}

func TestDrawThreat(t *testing.T) {
	bodies := []*Body{{Life: 3}, {Life: 2}, {Life: 1}}
	surface := &recordingSurface{}
	DrawThreat(surface, bodies)

	want := []rectCall{
		{10, 10, 32, 12, threatTrackColor},
		{11, 11, 10, 10, draw.MustColor("#539A20")},
		{21, 11, 10, 10, draw.MustColor("#F69417")},
		{31, 11, 10, 10, draw.MustColor("#F95738")},
	}
	if len(surface.rects) != len(want) {
		t.Fatalf("rects = %+v", surface.rects)
	}
	for i := range want {
		if surface.rects[i] != want[i] {
			t.Errorf("rect %d = %+v, want %+v", i, surface.rects[i], want[i])
		}
	}
}

func TestExplosionExpiresAfterDuration(t *testing.T) {
	start := time.Unix(100, 0)
	e := NewExplosion(physics.Vec(50, 50), start)

	ctx, _, _ := newContext(start.Add(ExplosionDuration), input.Input{}, &seqRand{})
	e.Update(ctx)
	if !e.Alive() {
		t.Fatal("explosion should live through its full duration")
	}

	ctx.Now = start.Add(ExplosionDuration + time.Millisecond)
	e.Update(ctx)
	if e.Alive() {
		t.Error("explosion should expire after its duration")
	}
}
