package sim

import (
	"fmt"
	"os"
	"strings"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs/entity"
	"github.com/Shiru-Kage/BerserkSigilofRuin/levels"
	"github.com/Shiru-Kage/BerserkSigilofRuin/prefabs"
	"go.uber.org/zap"
)

// spawnEntities reads the prefabs and spawns the level's agents.
func (w *World) spawnEntities(env entity.Env, lvl *levels.Level) (ecs.Entity, error) {
	player, err := prefabs.LoadPlayerSpec(env.Loader)
	if err != nil {
		return 0, err
	}
	enemy, err := prefabs.LoadEnemySpec(env.Loader)
	if err != nil {
		return 0, err
	}
	w.logger.Debug("prefabs loaded",
		zap.String("player", player.Name),
		zap.String("player_origin", env.Loader.Origin(prefabs.PlayerFile)),
		zap.String("enemy", enemy.Name),
		zap.String("enemy_origin", env.Loader.Origin(prefabs.EnemyFile)),
	)
	return entity.LoadLevelToWorld(env, lvl, player, enemy)
}

// loadLevel tries the embedded levels first, then the disk.
func loadLevel(name string) (*levels.Level, error) {
	if name == "" {
		return nil, fmt.Errorf("level name is empty")
	}
	file := name
	if !strings.HasSuffix(file, ".json") {
		file += ".json"
	}

	if lvl, err := levels.LoadLevelFromFS(file); err == nil {
		return named(lvl, name), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", name, err)
	}
	lvl, err := levels.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return named(lvl, name), nil
}

// named fills in the level name from the file when the JSON has none.
func named(lvl *levels.Level, name string) *levels.Level {
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(name, ".json")
	}
	return lvl
}
