package rage

import (
	"fmt"
	"math/rand"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// TriggerState is what a barrage trigger policy sees at each periodic check.
type TriggerState struct {
	Rage      float64
	RageMax   float64
	Health    float64
	HealthMax float64
}

// Trigger decides whether a periodic barrage check fires.
type Trigger interface {
	ShouldBarrage(s TriggerState) (bool, error)
}

// ChanceTrigger fires with a fixed probability.
type ChanceTrigger struct {
	Chance float64
	rng    *rand.Rand
}

func NewChanceTrigger(chance float64, rng *rand.Rand) *ChanceTrigger {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &ChanceTrigger{Chance: chance, rng: rng}
}

func (t *ChanceTrigger) ShouldBarrage(TriggerState) (bool, error) {
	return t.rng.Float64() < t.Chance, nil
}

// ScriptTrigger runs a tengo script per check. The script reads the globals
// rage, rage_max, health, health_max, chance and roll (uniform in [0,1)) and
// sets the global trigger.
type ScriptTrigger struct {
	compiled *tengo.Compiled
	chance   float64
	rng      *rand.Rand
}

// NewScriptTrigger compiles src. The standard tengo modules are importable.
func NewScriptTrigger(src []byte, chance float64, rng *rand.Rand) (*ScriptTrigger, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	script := tengo.NewScript(src)
	for _, name := range []string{"rage", "rage_max", "health", "health_max", "chance", "roll"} {
		if err := script.Add(name, 0.0); err != nil {
			return nil, fmt.Errorf("rage: script global %s: %w", name, err)
		}
	}
	if err := script.Add("trigger", false); err != nil {
		return nil, fmt.Errorf("rage: script global trigger: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("rage: compile trigger script: %w", err)
	}
	return &ScriptTrigger{compiled: compiled, chance: chance, rng: rng}, nil
}

func (t *ScriptTrigger) ShouldBarrage(s TriggerState) (bool, error) {
	globals := map[string]float64{
		"rage":       s.Rage,
		"rage_max":   s.RageMax,
		"health":     s.Health,
		"health_max": s.HealthMax,
		"chance":     t.chance,
		"roll":       t.rng.Float64(),
	}
	for name, v := range globals {
		if err := t.compiled.Set(name, v); err != nil {
			return false, fmt.Errorf("rage: set %s: %w", name, err)
		}
	}
	if err := t.compiled.Set("trigger", false); err != nil {
		return false, fmt.Errorf("rage: set trigger: %w", err)
	}
	if err := t.compiled.Run(); err != nil {
		return false, fmt.Errorf("rage: run trigger script: %w", err)
	}
	return t.compiled.Get("trigger").Bool(), nil
}
