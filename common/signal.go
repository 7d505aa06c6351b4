package common

// Signal is a synchronous observer list. Emit delivers to every subscriber in
// subscription order before returning.
type Signal[T any] struct {
	next int
	subs []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and returns a function that removes it.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if s == nil || fn == nil {
		return func() {}
	}
	s.next++
	id := s.next
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every subscriber with v. Subscribers added or removed during
// Emit take effect on the next call.
func (s *Signal[T]) Emit(v T) {
	if s == nil || len(s.subs) == 0 {
		return
	}
	subs := s.subs
	for _, sub := range subs {
		sub.fn(v)
	}
}

// Len returns the number of subscribers.
func (s *Signal[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.subs)
}

// Clear drops every subscriber.
func (s *Signal[T]) Clear() {
	if s == nil {
		return
	}
	s.subs = nil
}
