package explorer

// Selection tracks chosen result items in toggle order. Membership survives
// page navigation and is reset only when a new result set loads.
type Selection struct {
	ids    []string
	member map[string]bool
}

func NewSelection() *Selection {
	return &Selection{member: make(map[string]bool)}
}

// Toggle adds or removes id. Repeating a toggle with the same checked state
// is a no-op.
func (s *Selection) Toggle(id string, checked bool) {
	if checked == s.member[id] {
		return
	}
	if checked {
		s.member[id] = true
		s.ids = append(s.ids, id)
		return
	}
	delete(s.member, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
}

func (s *Selection) Has(id string) bool {
	return s.member[id]
}

func (s *Selection) Count() int {
	return len(s.ids)
}

// List returns the selected ids in toggle order.
func (s *Selection) List() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Selection) Reset() {
	s.ids = nil
	s.member = make(map[string]bool)
}
