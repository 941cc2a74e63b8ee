package history

// Selection is a multi-selection set over tool names. Membership checks are
// set semantics, but insertion order is preserved so "last selected" is
// well defined.
type Selection struct {
	order []string
	set   map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{set: make(map[string]struct{})}
}

func (s *Selection) Has(name string) bool {
	_, ok := s.set[name]
	return ok
}

// Add appends name if not already selected.
func (s *Selection) Add(name string) {
	if s.Has(name) {
		return
	}
	s.set[name] = struct{}{}
	s.order = append(s.order, name)
}

func (s *Selection) Remove(name string) {
	if !s.Has(name) {
		return
	}
	delete(s.set, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Toggle flips membership and reports the new state.
func (s *Selection) Toggle(name string) bool {
	if s.Has(name) {
		s.Remove(name)
		return false
	}
	s.Add(name)
	return true
}

func (s *Selection) Clear() {
	s.order = s.order[:0]
	for k := range s.set {
		delete(s.set, k)
	}
}

func (s *Selection) Len() int { return len(s.order) }

// Names returns the selected names in insertion order.
func (s *Selection) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Last returns the most recently selected name.
func (s *Selection) Last() (string, bool) {
	if len(s.order) == 0 {
		return "", false
	}
	return s.order[len(s.order)-1], true
}

// Clone returns an independent copy, used when snapshotting for undo.
func (s *Selection) Clone() *Selection {
	c := NewSelection()
	for _, n := range s.order {
		c.Add(n)
	}
	return c
}

// Restore replaces the selection contents with those of other.
func (s *Selection) Restore(other *Selection) {
	s.Clear()
	for _, n := range other.order {
		s.Add(n)
	}
}
