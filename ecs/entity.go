package ecs

import "strconv"

// Entity is an opaque generational handle. The low 32 bits carry the slot id,
// the high 32 bits the generation the slot had when the handle was issued.
// A handle outlives its entity safely: once the slot is recycled the
// generation no longer matches and IsAlive reports false.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

// Valid reports whether the handle was ever issued. It says nothing about
// liveness; use IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() > 0
}
