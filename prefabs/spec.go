package prefabs

import (
	"fmt"
	"strings"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/combat"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/Shiru-Kage/BerserkSigilofRuin/rage"
	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

const (
	EnemyFile  = "enemy.yaml"
	PlayerFile = "player.yaml"
)

// LoadSpec reads and decodes a prefab file.
func LoadSpec[T any](l Loader, filename string) (T, error) {
	var zero T
	data, err := l.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadEnemySpec(l Loader) (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec](l, EnemyFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadPlayerSpec(l Loader) (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](l, PlayerFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Unset fields keep the built-in defaults, so a prefab only lists what it
// changes.

type EnemySpec struct {
	Name       string         `yaml:"name"`
	Collider   ColliderSpec   `yaml:"collider"`
	Health     HealthSpec     `yaml:"health"`
	Controller ControllerSpec `yaml:"controller"`
	Patrol     PatrolSpec     `yaml:"patrol"`
	Sensor     SensorSpec     `yaml:"sensor"`
	Stuck      StuckSpec      `yaml:"stuck"`
	Attack     AttackSpec     `yaml:"attack"`
	Combat     CombatSpec     `yaml:"combat"`
}

type PlayerSpec struct {
	Name     string       `yaml:"name"`
	Collider ColliderSpec `yaml:"collider"`
	Health   HealthSpec   `yaml:"health"`
	Movement MovementSpec `yaml:"movement"`
	Combo    ComboSpec    `yaml:"combo"`
	Attack   AttackSpec   `yaml:"attack"`
	Combat   CombatSpec   `yaml:"combat"`
	Rage     RageSpec     `yaml:"rage"`
}

type VecSpec struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

func (v *VecSpec) apply(dst *cp.Vector) {
	if v != nil {
		*dst = cp.Vector{X: v.X, Y: v.Y}
	}
}

type ColliderSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Mass   float64 `yaml:"mass"`
	// Layers the body lives on.
	Layers []string `yaml:"layers"`
}

type HealthSpec struct {
	Max        *float64 `yaml:"max"`
	Defense    *float64 `yaml:"defense"`
	DeathDelay *float64 `yaml:"death_delay"`
}

type ControllerSpec struct {
	Speed            *float64 `yaml:"speed"`
	JumpForce        *float64 `yaml:"jump_force"`
	JumpCooldown     *float64 `yaml:"jump_cooldown"`
	StoppingDistance *float64 `yaml:"stopping_distance"`
	ChaseMemory      *float64 `yaml:"chase_memory"`
}

type PatrolSpec struct {
	Direction        *VecSpec `yaml:"direction"`
	Distance         *float64 `yaml:"distance"`
	WaitTime         *float64 `yaml:"wait_time"`
	ArrivalThreshold *float64 `yaml:"arrival_threshold"`
}

type SensorSpec struct {
	GroundBox           *VecSpec `yaml:"ground_box"`
	GroundLayers        []string `yaml:"ground_layers"`
	ObstacleRayLength   *float64 `yaml:"obstacle_ray_length"`
	ObstacleRayOffset   *VecSpec `yaml:"obstacle_ray_offset"`
	ObstacleRayCount    *int     `yaml:"obstacle_ray_count"`
	ObstacleRaySpacing  *float64 `yaml:"obstacle_ray_spacing"`
	ObstacleLayers      []string `yaml:"obstacle_layers"`
	LedgeRayLength      *float64 `yaml:"ledge_ray_length"`
	LedgeRayOffset      *VecSpec `yaml:"ledge_ray_offset"`
	LedgeGroundFraction *float64 `yaml:"ledge_ground_fraction"`
	DetectionOffset     *VecSpec `yaml:"detection_offset"`
	DetectionRange      *float64 `yaml:"detection_range"`
	LoseInterestDelay   *float64 `yaml:"lose_interest_delay"`
	TargetLayers        []string `yaml:"target_layers"`
	OccluderLayers      []string `yaml:"occluder_layers"`
}

type StuckSpec struct {
	Epsilon   *float64 `yaml:"epsilon"`
	Threshold *float64 `yaml:"threshold"`
}

type AttackSpec struct {
	Cooldown     *float64 `yaml:"cooldown"`
	WindUp       *float64 `yaml:"wind_up"`
	Damage       *float64 `yaml:"damage"`
	Radius       *float64 `yaml:"radius"`
	Offset       *VecSpec `yaml:"offset"`
	TargetLayers []string `yaml:"target_layers"`
}

type CombatSpec struct {
	Timeout *float64 `yaml:"timeout"`
}

type MovementSpec struct {
	Speed                *float64 `yaml:"speed"`
	JumpForce            *float64 `yaml:"jump_force"`
	GroundCheckOffset    *VecSpec `yaml:"ground_check_offset"`
	GroundRaySpread      *float64 `yaml:"ground_ray_spread"`
	GroundRayLength      *float64 `yaml:"ground_ray_length"`
	GroundLayers         []string `yaml:"ground_layers"`
	ResetOnComboFinished *bool    `yaml:"reset_on_combo_finished"`
}

type ComboSpec struct {
	ResetTime *float64 `yaml:"reset_time"`
	MaxCombo  *int     `yaml:"max_combo"`
	Variants  *int     `yaml:"variants"`
}

type RageSpec struct {
	Max             *float64    `yaml:"max"`
	PerHit          *float64    `yaml:"per_hit"`
	PerDamageTaken  *float64    `yaml:"per_damage_taken"`
	DrainRate       *float64    `yaml:"drain_rate"`
	HealthDrainRate *float64    `yaml:"health_drain_rate"`
	Barrage         BarrageSpec `yaml:"barrage"`
	Berserk         BerserkSpec `yaml:"berserk"`
	// Sensor configures the barrage target search.
	Sensor SensorSpec `yaml:"sensor"`
}

type BarrageSpec struct {
	Chance           *float64 `yaml:"chance"`
	Interval         *float64 `yaml:"interval"`
	EntryGate        *float64 `yaml:"entry_gate"`
	DetectionRadius  *float64 `yaml:"detection_radius"`
	StoppingDistance *float64 `yaml:"stopping_distance"`
	// Script names a tengo trigger under scripts/. Empty uses the chance.
	Script string `yaml:"script"`
	// Disabled turns barrage off entirely.
	Disabled bool `yaml:"disabled"`
}

type BerserkSpec struct {
	Speed                *float64 `yaml:"speed"`
	JumpForce            *float64 `yaml:"jump_force"`
	JumpCooldown         *float64 `yaml:"jump_cooldown"`
	AttackIntervalFactor *float64 `yaml:"attack_interval_factor"`
	AttackCooldown       *float64 `yaml:"attack_cooldown"`
}

func setF(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setI(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func layers(dst *physics.Layer, names []string, field string) error {
	if names == nil {
		return nil
	}
	mask, unknown := physics.ParseLayers(names)
	if len(unknown) > 0 {
		return fmt.Errorf("prefabs: %s: unknown layers %s", field, strings.Join(unknown, ", "))
	}
	*dst = mask
	return nil
}

// BodyLayers returns the collider's layers, or fallback when none are set.
func (c ColliderSpec) BodyLayers(fallback physics.Layer) (physics.Layer, error) {
	l := fallback
	if err := layers(&l, c.Layers, "collider.layers"); err != nil {
		return 0, err
	}
	return l, nil
}

// Size returns width and height with 0.8x1 as the fallback.
func (c ColliderSpec) Size() (float64, float64) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = 0.8
	}
	if h <= 0 {
		h = 1
	}
	return w, h
}

func (h HealthSpec) Values(defMax float64) (max, defense, deathDelay float64) {
	max, deathDelay = defMax, 1
	setF(&max, h.Max)
	setF(&defense, h.Defense)
	setF(&deathDelay, h.DeathDelay)
	return max, defense, deathDelay
}

func (s SensorSpec) Apply(cfg *ai.SensorConfig) error {
	s.GroundBox.apply(&cfg.GroundBoxSize)
	setF(&cfg.ObstacleRayLength, s.ObstacleRayLength)
	s.ObstacleRayOffset.apply(&cfg.ObstacleRayOffset)
	setI(&cfg.ObstacleRayCount, s.ObstacleRayCount)
	setF(&cfg.ObstacleRaySpacing, s.ObstacleRaySpacing)
	setF(&cfg.LedgeRayLength, s.LedgeRayLength)
	s.LedgeRayOffset.apply(&cfg.LedgeRayOffset)
	setF(&cfg.LedgeGroundFraction, s.LedgeGroundFraction)
	s.DetectionOffset.apply(&cfg.DetectionOffset)
	setF(&cfg.DetectionRange, s.DetectionRange)
	setF(&cfg.LoseInterestDelay, s.LoseInterestDelay)
	for _, l := range []struct {
		dst   *physics.Layer
		names []string
		field string
	}{
		{&cfg.GroundLayers, s.GroundLayers, "sensor.ground_layers"},
		{&cfg.ObstacleLayers, s.ObstacleLayers, "sensor.obstacle_layers"},
		{&cfg.TargetLayers, s.TargetLayers, "sensor.target_layers"},
		{&cfg.OccluderLayers, s.OccluderLayers, "sensor.occluder_layers"},
	} {
		if err := layers(l.dst, l.names, l.field); err != nil {
			return err
		}
	}
	return nil
}

func (s AttackSpec) Config(defTargets physics.Layer) (combat.AttackerConfig, error) {
	cfg := combat.DefaultAttackerConfig()
	cfg.TargetLayers = defTargets
	setF(&cfg.Cooldown, s.Cooldown)
	setF(&cfg.WindUp, s.WindUp)
	setF(&cfg.Damage, s.Damage)
	setF(&cfg.Radius, s.Radius)
	s.Offset.apply(&cfg.Offset)
	if err := layers(&cfg.TargetLayers, s.TargetLayers, "attack.target_layers"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (s CombatSpec) TimeoutOr(def float64) float64 {
	setF(&def, s.Timeout)
	return def
}

// ControllerConfig maps the enemy prefab onto the agent controller config.
// halfHeight comes from the collider.
func (s EnemySpec) ControllerConfig(halfHeight float64) (ai.ControllerConfig, error) {
	cfg := ai.DefaultControllerConfig()
	cfg.HalfHeight = halfHeight

	c := s.Controller
	setF(&cfg.Speed, c.Speed)
	setF(&cfg.JumpForce, c.JumpForce)
	setF(&cfg.JumpCooldown, c.JumpCooldown)
	setF(&cfg.StoppingDistance, c.StoppingDistance)
	setF(&cfg.ChaseMemory, c.ChaseMemory)

	s.Patrol.Apply(&cfg.Patrol)

	setF(&cfg.Stuck.Epsilon, s.Stuck.Epsilon)
	setF(&cfg.Stuck.Threshold, s.Stuck.Threshold)

	if err := s.Sensor.Apply(&cfg.Sensor); err != nil {
		return cfg, fmt.Errorf("prefabs: %s: %w", s.Name, err)
	}
	return cfg, nil
}

func (p PatrolSpec) Apply(cfg *ai.PatrolConfig) {
	p.Direction.apply(&cfg.Direction)
	setF(&cfg.Distance, p.Distance)
	setF(&cfg.WaitTime, p.WaitTime)
	setF(&cfg.ArrivalThreshold, p.ArrivalThreshold)
}

func (s PlayerSpec) PlayerConfig() (ai.PlayerConfig, error) {
	cfg := ai.DefaultPlayerConfig()
	m := s.Movement
	setF(&cfg.Speed, m.Speed)
	setF(&cfg.JumpForce, m.JumpForce)
	m.GroundCheckOffset.apply(&cfg.GroundCheckOffset)
	setF(&cfg.GroundRaySpread, m.GroundRaySpread)
	setF(&cfg.GroundRayLength, m.GroundRayLength)
	if m.ResetOnComboFinished != nil {
		cfg.ResetOnComboFinished = *m.ResetOnComboFinished
	}
	if err := layers(&cfg.GroundLayers, m.GroundLayers, "movement.ground_layers"); err != nil {
		return cfg, fmt.Errorf("prefabs: %s: %w", s.Name, err)
	}
	return cfg, nil
}

func (s PlayerSpec) SequencerConfig() combat.SequencerConfig {
	cfg := combat.DefaultSequencerConfig()
	setF(&cfg.ResetTime, s.Combo.ResetTime)
	setI(&cfg.MaxCombo, s.Combo.MaxCombo)
	setI(&cfg.Variants, s.Combo.Variants)
	return cfg
}

// RageConfig maps the rage section. The returned sensor config drives the
// barrage target search.
func (s PlayerSpec) RageConfig(halfHeight float64) (rage.Config, ai.SensorConfig, error) {
	cfg := rage.DefaultConfig()
	r := s.Rage
	setF(&cfg.Max, r.Max)
	setF(&cfg.PerHit, r.PerHit)
	setF(&cfg.PerDamageTaken, r.PerDamageTaken)
	setF(&cfg.DrainRate, r.DrainRate)
	setF(&cfg.HealthDrainRate, r.HealthDrainRate)

	b := r.Barrage
	setF(&cfg.Barrage.Chance, b.Chance)
	setF(&cfg.Barrage.Interval, b.Interval)
	setF(&cfg.Barrage.EntryGate, b.EntryGate)
	setF(&cfg.Barrage.DetectionRadius, b.DetectionRadius)
	setF(&cfg.Barrage.StoppingDistance, b.StoppingDistance)

	z := r.Berserk
	cfg.Berserk.HalfHeight = halfHeight
	setF(&cfg.Berserk.Speed, z.Speed)
	setF(&cfg.Berserk.JumpForce, z.JumpForce)
	setF(&cfg.Berserk.JumpCooldown, z.JumpCooldown)
	setF(&cfg.Berserk.AttackIntervalFactor, z.AttackIntervalFactor)
	setF(&cfg.Berserk.AttackCooldown, z.AttackCooldown)

	sensor := ai.DefaultSensorConfig()
	sensor.TargetLayers = physics.LayerEnemy
	if err := r.Sensor.Apply(&sensor); err != nil {
		return cfg, sensor, fmt.Errorf("prefabs: %s: rage: %w", s.Name, err)
	}
	return cfg, sensor, nil
}
