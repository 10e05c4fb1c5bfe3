package game

// checkInvariants asserts the post-tick bounds on the world. Violations only
// panic in novadebug builds.
func (g *Game) checkInvariants() {
	w := g.world
	p := w.Player

	invariant(p.Health >= 0 && p.Health <= p.MaxHealth, "player health %d outside [0, %d]", p.Health, p.MaxHealth)
	invariant(p.Shield >= 0 && p.Shield <= p.MaxShield, "player shield %d outside [0, %d]", p.Shield, p.MaxShield)
	invariant(p.Alive() == (p.Health > 0), "player alive=%v with health %d", p.Alive(), p.Health)
	invariant(w.Multiplier >= 1 && w.Multiplier <= g.tuning.Scoring.MultiplierCap, "multiplier %d out of range", w.Multiplier)
	for _, e := range w.Enemies {
		invariant(e.Alive() && e.HP > 0, "%s enemy with %d hp survived pruning", e.Kind, e.HP)
	}
}
