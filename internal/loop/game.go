package loop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/object"
)

// Clock supplies the current time to the engine.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// GameOptions configures a Game. Zero values fall back to the wall clock,
// the global random source, no sound and a discarding logger.
type GameOptions struct {
	Screen object.Screen
	Clock  Clock
	Rand   object.Rand
	Sounds object.SoundPlayer
	Logger *log.Logger
}

// Game owns every live entity and advances them one tick at a time.
// It is not safe for concurrent use; each player gets their own Game.
type Game struct {
	Screen object.Screen

	defenders []object.Entity // The ship and its projectiles
	attackers []object.Entity // Aliens and their projectiles
	neutrals  []object.Entity // Explosions
	elements  []object.Entity // Draw order snapshot taken before each update

	ship  *object.Ship
	wave  int
	input object.Input
	now   time.Time

	message      string
	messageUntil time.Time // Zero when the message stays until replaced
	gameOver     bool

	clock  Clock
	rand   object.Rand
	sounds object.SoundPlayer
	logger *log.Logger
}

// Compile-time check that Game can receive spawned entities.
var _ object.Spawner = (*Game)(nil)

// NewGame creates a game with a fresh ship. The first wave arrives on the
// first update.
func NewGame(opts GameOptions) *Game {
	g := &Game{
		Screen: opts.Screen,
		clock:  opts.Clock,
		rand:   opts.Rand,
		sounds: opts.Sounds,
		logger: opts.Logger,
	}
	if g.Screen.Width <= 0 || g.Screen.Height <= 0 {
		g.Screen = object.Screen{Width: PlayfieldWidth, Height: PlayfieldHeight}
	}
	if g.clock == nil {
		g.clock = SystemClock{}
	}
	if g.rand == nil {
		g.rand = globalRand{}
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.now = g.clock.Now()
	g.reset()
	return g
}

// reset clears the playfield and puts a new ship on it.
func (g *Game) reset() {
	clear(g.defenders)
	clear(g.attackers)
	clear(g.neutrals)
	g.defenders = g.defenders[:0]
	g.attackers = g.attackers[:0]
	g.neutrals = g.neutrals[:0]
	g.elements = g.elements[:0]
	g.wave = 0
	g.message = ""
	g.messageUntil = time.Time{}
	g.gameOver = false

	g.ship = object.NewShip(g.Screen)
	g.Spawn(object.SideDefender, g.ship)
}

// Restart begins a new game from the first wave.
func (g *Game) Restart() {
	g.logger.Info("game restarted", "reachedWave", g.wave)
	g.reset()
}

// Spawn adds an entity to the collection of the given side.
func (g *Game) Spawn(side object.Side, e object.Entity) {
	switch side {
	case object.SideDefender:
		g.defenders = append(g.defenders, e)
	case object.SideAttacker:
		g.attackers = append(g.attackers, e)
	default:
		g.neutrals = append(g.neutrals, e)
	}
}

// SetInput sets the key state the next update sees.
func (g *Game) SetInput(in object.Input) {
	g.input = in
}

// ShowMessage puts msg on top of the playfield. A message that is not final
// disappears after MessageDuration; a final one stays until replaced.
func (g *Game) ShowMessage(msg string, final bool) {
	g.message = msg
	if final {
		g.messageUntil = time.Time{}
		return
	}
	g.messageUntil = g.now.Add(MessageDuration)
}

// Update advances the game by one tick.
func (g *Game) Update() {
	g.now = g.clock.Now()

	if g.gameOver && g.input.IsHeld(input.KeyRestart) {
		g.Restart()
	}

	g.handleCollisions()

	// Entities spawned below join next tick
	g.elements = g.elements[:0]
	g.elements = append(g.elements, g.neutrals...)
	g.elements = append(g.elements, g.attackers...)
	g.elements = append(g.elements, g.defenders...)

	ctx := g.UpdateContext()
	for _, e := range g.elements {
		e.Update(ctx)
	}

	if !g.messageUntil.IsZero() && !g.now.Before(g.messageUntil) {
		g.message = ""
		g.messageUntil = time.Time{}
	}

	if len(g.defenders) == 0 {
		if !g.gameOver {
			g.gameOver = true
			g.ShowMessage(MessageDefeated, true)
			g.logger.Info("game over", "wave", g.wave)
		}
		return
	}
	if len(g.attackers) == 0 {
		g.createWave()
	}
}

// UpdateContext creates an UpdateContext from the current game state.
func (g *Game) UpdateContext() object.UpdateContext {
	return object.UpdateContext{
		Now:     g.now,
		Input:   g.input,
		Screen:  g.Screen,
		Spawner: g,
		Rand:    g.rand,
		Sounds:  g.sounds,
	}
}

// Draw renders the playfield back to front, then the threat strip and the
// overlay message.
func (g *Game) Draw(s draw.Surface) error {
	s.ClearRect(0, 0, g.Screen.Width, g.Screen.Height)

	ctx := object.DrawContext{Surface: s, Screen: g.Screen}
	for _, e := range g.elements {
		if err := e.Draw(ctx); err != nil {
			return err
		}
	}

	aliens := make([]*object.Body, 0, len(g.attackers))
	for _, e := range g.attackers {
		if b := e.Base(); b.Kind == object.KindAlien {
			aliens = append(aliens, b)
		}
	}
	object.DrawThreat(s, aliens)

	if g.message != "" {
		s.DrawCenteredText(g.message, g.Screen.Width/2, g.Screen.Height/2)
	}
	if g.gameOver {
		s.DrawCenteredText(MessageRestart, g.Screen.Width/2, g.Screen.Height/2+60)
	}
	return nil
}

func (g *Game) play(name string) {
	if g.sounds != nil {
		g.sounds.Play(name)
	}
}

// Wave returns the number of the current wave, zero before the first.
func (g *Game) Wave() int { return g.wave }

// Message returns the overlay message, empty when none is shown.
func (g *Game) Message() string { return g.message }

// GameOver reports whether the defender side has been wiped out.
func (g *Game) GameOver() bool { return g.gameOver }

// Ship returns the player's ship of the current game.
func (g *Game) Ship() *object.Ship { return g.ship }

// Defenders returns the live defender-side entities.
func (g *Game) Defenders() []object.Entity { return g.defenders }

// Attackers returns the live attacker-side entities.
func (g *Game) Attackers() []object.Entity { return g.attackers }

// Neutrals returns the live effects.
func (g *Game) Neutrals() []object.Entity { return g.neutrals }
