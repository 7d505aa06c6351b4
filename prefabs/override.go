package prefabs

import "gopkg.in/yaml.v3"

// DecodeOverride re-decodes a loosely typed value (a level entity's props)
// into T through YAML.
func DecodeOverride[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// SpawnOverride is the per-instance tuning a level may attach to an enemy.
type SpawnOverride struct {
	Patrol PatrolSpec `yaml:"patrol"`
	Health HealthSpec `yaml:"health"`
}
