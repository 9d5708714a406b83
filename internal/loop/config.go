package loop

import "time"

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// Playfield - logical resolution every object lives in.
// Actual rendering scales to fit terminal size.
const (
	PlayfieldWidth  = 800
	PlayfieldHeight = 600
)

// Terminal rendering
const (
	MaxTermWidth    = 160 // Columns beyond this are left as centered margin
	MaxTermHeight   = 60  // Rows beyond this are left as centered margin
	DefaultFPS      = 60
	hintRows        = 1 // Rows reserved below the playfield for the controls hint
	shutdownDisplay = 3 * time.Second
)

// Waves
const (
	WaveSize          = 24   // Aliens per wave
	WaveColumns       = 8    // Horizontal slots in the spawn grid
	WaveRows          = 3    // Vertical slots in the spawn grid
	WaveGap           = 10   // Pixels between neighbouring aliens
	WaveTop           = -200 // y of the first spawn row, above the playfield
	MinAlienShootProb = 0.5  // Aliens never fire on more than half the ticks

	// FireRateStep is how much faster the ship fires after every cleared wave.
	FireRateStep = 50 * time.Millisecond
)

// Overlay messages
const (
	MessageDuration = 1500 * time.Millisecond
	MessageWave     = "Wave %d"
	MessageDefeated = "The invaders beat you!"
	MessageRestart  = "Press ENTER to play again"
	MessageShutdown = "Server shutting down"
)
