package sim

import (
	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/component"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/system"
	"go.uber.org/zap"
)

// Stats are the running combat totals of a simulation.
type Stats struct {
	Ticks       int
	HitsDealt   int
	HitsTaken   int
	DamageDealt float64
	DamageTaken float64
	Kills       int
	Berserks    int
	Barrages    int
	PlayerDead  bool
	// BerserkTicks counts the ticks of finished berserk spells.
	BerserkTicks int
}

// collectCombat folds the events of the last tick into the stats.
func (w *World) collectCombat(events []ecs.Event) {
	for _, hit := range ecs.Payloads[system.HitEvent](events, system.EventHit) {
		switch {
		case hit.Attacker == w.Player:
			w.stats.HitsDealt++
			w.stats.DamageDealt += hit.Damage
		case hit.Target == w.Player:
			w.stats.HitsTaken++
			w.stats.DamageTaken += hit.Damage
		}
	}
	for _, e := range ecs.Payloads[ecs.Entity](events, system.EventDied) {
		if e != w.Player {
			w.stats.Kills++
			continue
		}
		w.stats.PlayerDead = true
		w.logger.Info("player died", zap.Int("tick", w.ticks))
	}
}

// watchPlayer counts berserk entries and barrage strikes of the player.
func (w *World) watchPlayer() {
	r, ok := ecs.Get(w.ECS, w.Player, component.RageComponent.Kind())
	if !ok || r.Controller == nil {
		return
	}
	rc := r.Controller
	entered := 0
	rc.OnExitedBerserk(func() {
		w.stats.BerserkTicks += w.ticks - entered
		w.logger.Info("berserk spell over", zap.Int("ticks", w.ticks-entered))
	})
	rc.OnEnteredBerserk(func() {
		entered = w.ticks
		w.stats.Berserks++
		b := rc.Berserk()
		if b == nil {
			return
		}
		b.SubscribeAttack(func(ev ai.AttackEvent) {
			if ev.Target.Valid() {
				w.stats.Barrages++
			}
		})
	})
}
