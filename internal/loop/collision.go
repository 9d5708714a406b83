package loop

import (
	"github.com/tomz197/invaders/internal/asset"
	"github.com/tomz197/invaders/internal/object"
)

// handleCollisions resolves every defender/attacker overlap and then drops
// dead entities and stray projectiles.
// Every overlapping pair costs both sides one life, so an entity touching
// several opponents in one tick loses several.
func (g *Game) handleCollisions() {
	for _, a := range g.defenders {
		for _, b := range g.attackers {
			if !object.Colliding(a, b) {
				continue
			}
			ab, bb := a.Base(), b.Base()
			ab.Life--
			bb.Life--

			// Center the explosion on the bigger of the two
			pos := bb.Pos
			if ab.Area() > bb.Area() {
				pos = ab.Pos
			}
			g.neutrals = append(g.neutrals, object.NewExplosion(pos, g.now))
			g.play(asset.SoundExplosion)
		}
	}

	g.attackers = compact(g.attackers, g.Screen)
	g.defenders = compact(g.defenders, g.Screen)
	g.neutrals = compact(g.neutrals, g.Screen)
}

// compact removes dead entities and projectiles that left the playfield,
// reusing the backing array.
func compact(entities []object.Entity, screen object.Screen) []object.Entity {
	kept := entities[:0]
	for _, e := range entities {
		b := e.Base()
		if !b.Alive() {
			continue
		}
		if b.Kind == object.KindProjectile && !object.InPlayfield(e, screen) {
			continue
		}
		kept = append(kept, e)
	}
	clear(entities[len(kept):])
	return kept
}
