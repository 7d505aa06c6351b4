package component

import "github.com/Shiru-Kage/BerserkSigilofRuin/ecs"

type PlayerTag struct{}

var PlayerTagComponent = ecs.NewComponent[PlayerTag]()

type EnemyTag struct{}

var EnemyTagComponent = ecs.NewComponent[EnemyTag]()
