package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ai"
	"github.com/Shiru-Kage/BerserkSigilofRuin/physics"
	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedEnemySpec(t *testing.T) {
	spec, err := LoadEnemySpec(Loader{})
	require.NoError(t, err)
	assert.Equal(t, "hollow_soldier", spec.Name)

	cfg, err := spec.ControllerConfig(0.5)
	require.NoError(t, err)

	want := ai.DefaultControllerConfig()
	assert.Equal(t, want.Speed, cfg.Speed)
	assert.Equal(t, want.Patrol, cfg.Patrol)
	assert.Equal(t, want.Stuck, cfg.Stuck)
	assert.Equal(t, want.Sensor, cfg.Sensor)

	layers, err := spec.Collider.BodyLayers(physics.LayerNone)
	require.NoError(t, err)
	assert.Equal(t, physics.LayerEnemy, layers)

	attack, err := spec.Attack.Config(physics.LayerNone)
	require.NoError(t, err)
	assert.Equal(t, physics.LayerPlayer, attack.TargetLayers)
}

func TestEmbeddedPlayerSpec(t *testing.T) {
	spec, err := LoadPlayerSpec(Loader{})
	require.NoError(t, err)

	pc, err := spec.PlayerConfig()
	require.NoError(t, err)
	assert.Equal(t, 6.0, pc.Speed)
	assert.True(t, pc.ResetOnComboFinished)
	assert.Equal(t, cp.Vector{Y: -0.45}, pc.GroundCheckOffset)

	seq := spec.SequencerConfig()
	assert.Equal(t, 3, seq.MaxCombo)

	rc, sensor, err := spec.RageConfig(0.5)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rc.Max)
	assert.Equal(t, 0.35, rc.Barrage.Chance)
	assert.Equal(t, 0.5, rc.Berserk.HalfHeight)
	assert.Equal(t, physics.LayerEnemy, sensor.TargetLayers)
	assert.Equal(t, "barrage.tengo", spec.Rage.Barrage.Script)

	script, err := Loader{}.LoadScript(spec.Rage.Barrage.Script)
	require.NoError(t, err)
	assert.Contains(t, string(script), "trigger")
}

func TestSpecDefaultsForUnsetFields(t *testing.T) {
	var spec EnemySpec
	cfg, err := spec.ControllerConfig(0.5)
	require.NoError(t, err)
	assert.Equal(t, ai.DefaultControllerConfig(), cfg)

	zero := 0.0
	spec.Patrol.WaitTime = &zero
	cfg, err = spec.ControllerConfig(0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Patrol.WaitTime, "explicit zero is kept")
}

func TestSpecUnknownLayer(t *testing.T) {
	spec := EnemySpec{Sensor: SensorSpec{TargetLayers: []string{"player", "ghost"}}}
	_, err := spec.ControllerConfig(0.5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestLoaderDiskOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnemyFile), []byte("name: override\ncontroller:\n  speed: 4\n"), 0o644))

	l := Loader{Dir: dir}
	spec, err := LoadEnemySpec(l)
	require.NoError(t, err)
	assert.Equal(t, "override", spec.Name)
	cfg, err := spec.ControllerConfig(0.5)
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Speed)

	assert.Equal(t, filepath.Join(dir, EnemyFile), l.Origin(EnemyFile))

	// files missing on disk fall back to the embedded copy
	player, err := LoadPlayerSpec(l)
	require.NoError(t, err)
	assert.Equal(t, "guts", player.Name)
	assert.Equal(t, "embedded", l.Origin(PlayerFile))
	assert.Equal(t, "embedded", Loader{}.Origin(EnemyFile))
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := LoadSpec[EnemySpec](Loader{}, "nope.yaml")
	assert.Error(t, err)
}

func TestCleanPaths(t *testing.T) {
	assert.Equal(t, "enemy.yaml", cleanPrefabPath("prefabs/enemy.yaml"))
	assert.Equal(t, "scripts/barrage.tengo", cleanScriptPath("barrage.tengo"))
	assert.Equal(t, "scripts/barrage.tengo", cleanScriptPath("prefabs/scripts/barrage.tengo"))
}

func TestDecodeOverride(t *testing.T) {
	raw := map[string]any{
		"patrol": map[string]any{
			"direction": map[string]any{"x": -1, "y": 0},
			"distance":  5,
		},
	}
	o, err := DecodeOverride[SpawnOverride](raw)
	require.NoError(t, err)

	cfg := ai.DefaultPatrolConfig()
	o.Patrol.Apply(&cfg)
	assert.Equal(t, cp.Vector{X: -1}, cfg.Direction)
	assert.Equal(t, 5.0, cfg.Distance)
	assert.Equal(t, 0.5, cfg.WaitTime)

	empty, err := DecodeOverride[SpawnOverride](nil)
	require.NoError(t, err)
	assert.Nil(t, empty.Patrol.Distance)
}

func TestWatcherReportsSettledEdits(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "scripts"), 0o755))
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, EnemyFile), []byte("name: x\n"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "barrage.tengo"), []byte("trigger := false"), 0o644))

	got := map[string]ChangeKind{}
	deadline := time.After(5 * time.Second)
	for len(got) < 2 {
		select {
		case c := <-w.Events:
			_, seen := got[filepath.Base(c.Path)]
			assert.False(t, seen, "burst on %s reported more than once", c.Path)
			got[filepath.Base(c.Path)] = c.Kind
		case <-deadline:
			t.Fatalf("watcher reported %v", got)
		}
	}
	assert.Equal(t, map[string]ChangeKind{EnemyFile: ChangePrefab, "barrage.tengo": ChangeScript}, got)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ChangePrefab, classify("a/enemy.YAML"))
	assert.Equal(t, ChangePrefab, classify("player.yml"))
	assert.Equal(t, ChangeScript, classify("scripts/barrage.tengo"))
	assert.Equal(t, ChangeKind(0), classify("notes.txt"))
	assert.Equal(t, "script", ChangeScript.String())
}
