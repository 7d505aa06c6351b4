package entity

import (
	"errors"
	"fmt"

	"github.com/Shiru-Kage/BerserkSigilofRuin/ecs"
	"github.com/Shiru-Kage/BerserkSigilofRuin/levels"
	"github.com/Shiru-Kage/BerserkSigilofRuin/prefabs"
	"go.uber.org/zap"
)

// LoadLevelToWorld adds the level geometry to the space and spawns its
// entities. It returns the player entity, or 0 when the level has none.
func LoadLevelToWorld(env Env, lvl *levels.Level, player *prefabs.PlayerSpec, enemy *prefabs.EnemySpec) (ecs.Entity, error) {
	if lvl == nil {
		return 0, errors.New("level: nil level")
	}
	if err := env.validate(); err != nil {
		return 0, fmt.Errorf("level: %w", err)
	}

	boxes, err := lvl.Build(env.Space)
	if err != nil {
		return 0, fmt.Errorf("level %s: %w", lvl.Name, err)
	}
	env.logger().Debug("level geometry built", zap.String("level", lvl.Name), zap.Int("boxes", boxes))

	var playerEntity ecs.Entity
	for i, ent := range lvl.Entities {
		switch ent.Type {
		case levels.EntityPlayer:
			if player == nil {
				return 0, fmt.Errorf("level %s: entity %d: no player prefab", lvl.Name, i)
			}
			_, h := player.Collider.Size()
			e, err := NewPlayer(env, player, lvl.SpawnPosition(ent, h))
			if err != nil {
				return 0, fmt.Errorf("level %s: entity %d: %w", lvl.Name, i, err)
			}
			playerEntity = e
		case levels.EntityEnemy:
			if enemy == nil {
				return 0, fmt.Errorf("level %s: entity %d: no enemy prefab", lvl.Name, i)
			}
			override, err := prefabs.DecodeOverride[prefabs.SpawnOverride](ent.Props)
			if err != nil {
				return 0, fmt.Errorf("level %s: entity %d: props: %w", lvl.Name, i, err)
			}
			_, h := enemy.Collider.Size()
			if _, err := NewEnemy(env, enemy, lvl.SpawnPosition(ent, h), override); err != nil {
				return 0, fmt.Errorf("level %s: entity %d: %w", lvl.Name, i, err)
			}
		}
	}
	return playerEntity, nil
}
