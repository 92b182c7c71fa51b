package events

import "sync"

// Scope groups subscriptions tied to one component's lifetime.
// Close releases every subscription made through the scope; later Subscribe calls are ignored.
type Scope struct {
	bus Bus

	mu     sync.Mutex
	unsubs []func()
	closed bool
}

// NewScope creates a scope over bus.
func NewScope(bus Bus) *Scope {
	return &Scope{bus: bus}
}

// Subscribe registers handler for topic until the scope is closed.
func (s *Scope) Subscribe(topic Topic, handler Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.unsubs = append(s.unsubs, s.bus.Subscribe(topic, handler))
}

// Len reports the number of live subscriptions.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.unsubs)
}

// Close unsubscribes everything. Safe to call more than once.
func (s *Scope) Close() {
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	s.closed = true
	s.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
}
