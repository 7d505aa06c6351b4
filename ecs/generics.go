package ecs

import "fmt"

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

func Entities(w *World) []Entity {
	return w.Entities()
}

// Add stores value as e's component of the given kind, replacing any
// previous one. Errors name the component and entity.
func Add[T any](w *World, e Entity, kind ComponentKind[T], value *T) error {
	var err error
	if value == nil {
		err = ErrNilComponent
	} else {
		err = w.AddComponent(e, kind.ID(), value)
	}
	if err != nil {
		return fmt.Errorf("add %s to %s: %w", kind.Name(), e, err)
	}
	return nil
}

func Remove[T any](w *World, e Entity, kind ComponentKind[T]) bool {
	return w.RemoveComponent(e, kind.ID())
}

func Has[T any](w *World, e Entity, kind ComponentKind[T]) bool {
	return w.HasComponent(e, kind.ID())
}

func Get[T any](w *World, e Entity, kind ComponentKind[T]) (*T, bool) {
	value, ok := w.GetComponent(e, kind.ID())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// ForEach visits every live entity carrying the component. The callback may
// destroy entities; iteration runs over a snapshot.
func ForEach[T any](w *World, kind ComponentKind[T], fn func(e Entity, v *T)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range snapshot(w.store(kind.ID(), false)) {
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka ComponentKind[A], kb ComponentKind[B], fn func(e Entity, a *A, b *B)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.Query(ka, kb) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

// First returns the first live entity carrying the component.
func First[T any](w *World, kind ComponentKind[T]) (Entity, bool) {
	return w.First(kind)
}

func snapshot(s *SparseSet) []Entity {
	if s == nil || s.Len() == 0 {
		return nil
	}
	return append([]Entity(nil), s.Entities()...)
}
