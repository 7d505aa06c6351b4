package ecs

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// World owns entities, components, and system order.
type World struct {
	entities entityStore
	stores   map[ComponentID]*SparseSet
	systems  []System
	events   EventQueue
	tick     uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

// AddComponent stores value for e under the given component id.
func (w *World) AddComponent(e Entity, id ComponentID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return ErrEntityNotAlive
	}
	if id == 0 {
		return ErrInvalidComponentKind
	}
	if value == nil {
		return ErrNilComponent
	}
	w.store(id, true).Set(e, value)
	return nil
}

// GetComponent returns the raw component value for e.
func (w *World) GetComponent(e Entity, id ComponentID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	store := w.store(id, false)
	if !store.Has(e) {
		return nil, false
	}
	return store.Get(e), true
}

// HasComponent reports whether e carries the component.
func (w *World) HasComponent(e Entity, id ComponentID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(id, false).Has(e)
}

// RemoveComponent deletes the component from e.
func (w *World) RemoveComponent(e Entity, id ComponentID) bool {
	if w == nil {
		return false
	}
	return w.store(id, false).Remove(e)
}

func (w *World) store(id ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Systems returns a copy of the update order.
func (w *World) Systems() []System {
	if w == nil {
		return nil
	}
	return append([]System(nil), w.systems...)
}

// Update runs all systems once. Events pushed during the previous update are
// discarded first, so anything pushed by this update can be drained by the
// caller after Update returns.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.tick++
	w.events.reset(w.tick)
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
}

// Tick returns the number of completed or running updates.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
