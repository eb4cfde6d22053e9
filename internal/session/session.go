package session

// Store holds the shell variables for one interactive session. Users
// capture values from prior command output with set/export and reference
// them as $NAME or ${NAME} in later command arguments; Resolve performs
// the substitution.
//
// A Store is not safe for concurrent use. It belongs to a single
// synchronous command loop; an embedding application that dispatches
// commands from multiple goroutines must serialize access externally.
type Store struct {
	vars map[string]string
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{vars: make(map[string]string)}
}

// Set inserts or overwrites the binding for name. Any value is legal,
// including the empty string.
func (s *Store) Set(name, value string) {
	s.vars[name] = value
}

// Get returns the current value for name and whether it is bound.
func (s *Store) Get(name string) (string, bool) {
	value, ok := s.vars[name]
	return value, ok
}

// Has reports whether name is bound.
func (s *Store) Has(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// Remove deletes the binding for name. It reports whether a binding was
// actually removed, so callers can tell "deleted" apart from "was never
// there".
func (s *Store) Remove(name string) bool {
	if _, ok := s.vars[name]; !ok {
		return false
	}
	delete(s.vars, name)
	return true
}

// Clear deletes every binding and returns how many were removed.
func (s *Store) Clear() int {
	n := len(s.vars)
	clear(s.vars)
	return n
}

// All returns an independent snapshot of the bindings. Mutating the
// returned map never affects the store.
func (s *Store) All() map[string]string {
	snapshot := make(map[string]string, len(s.vars))
	for name, value := range s.vars {
		snapshot[name] = value
	}
	return snapshot
}

// Len returns the number of bindings.
func (s *Store) Len() int {
	return len(s.vars)
}
