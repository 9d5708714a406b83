package loop

import (
	"fmt"
	"math"
	"time"

	"github.com/tomz197/invaders/internal/object"
	"github.com/tomz197/invaders/internal/physics"
)

// FireRateForWave returns the ship's fire rate once the given number of
// waves has been cleared.
func FireRateForWave(cleared int) time.Duration {
	return max(object.ShipMinFireRate, object.ShipFireRate-FireRateStep*time.Duration(cleared))
}

// WaveSpeed returns the alien speed for a wave number.
func WaveSpeed(wave int) float64 {
	return math.Ceil(float64(wave) / 2)
}

// WaveShootProb returns the firing threshold for a wave number.
// Aliens fire on a tick when their draw exceeds it.
func WaveShootProb(wave int) float64 {
	return max(MinAlienShootProb, (999-float64(wave)*2)/1000)
}

// WavePosition returns the spawn position of the i-th alien of a wave.
func WavePosition(i int) physics.Vector {
	marginX := float64(object.AlienWidth + WaveGap)
	marginY := float64(object.AlienHeight + WaveGap)
	return physics.Vec(
		marginX+float64(i%WaveColumns)*marginX,
		WaveTop+float64(i%WaveRows)*marginY,
	)
}

// createWave restores the ship, speeds up its gun and sends in the next
// formation of aliens.
func (g *Game) createWave() {
	if g.ship != nil {
		g.ship.Life = g.ship.MaxLife
		g.ship.FireRate = FireRateForWave(g.wave)
	}
	g.wave++
	g.ShowMessage(fmt.Sprintf(MessageWave, g.wave), false)

	speed := WaveSpeed(g.wave)
	prob := WaveShootProb(g.wave)
	for i := range WaveSize {
		g.Spawn(object.SideAttacker, object.NewAlien(WavePosition(i), speed, prob))
	}

	g.logger.Info("wave started", "wave", g.wave, "speed", speed, "shootProb", prob)
}
