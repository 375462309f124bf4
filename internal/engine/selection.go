package engine

import "slices"

// Selection is the ordered set of selected panels, keyed by grid index.
// It shares its backing slice with the Game so values and flags stay in sync.
type Selection struct {
	panels []Panel
	order  []int
}

func NewSelection(panels []Panel) *Selection {
	return &Selection{panels: panels}
}

// Toggle deselects and removes panel i if it is selected, otherwise selects and appends it.
func (s *Selection) Toggle(i int) {
	p := &s.panels[i]
	if p.Selected {
		s.Remove(i)
	} else {
		s.order = append(s.order, i)
	}
	p.ToggleSelected()
}

// Remove drops i from the set without touching the panel.
func (s *Selection) Remove(i int) bool {
	idx := slices.Index(s.order, i)
	if idx < 0 {
		return false
	}
	s.order = slices.Delete(s.order, idx, idx+1)
	return true
}

func (s *Selection) Sum() int {
	total := 0
	for _, i := range s.order {
		total += s.panels[i].Value
	}
	return total
}

func (s *Selection) Clear() {
	for _, i := range s.order {
		s.panels[i].Selected = false
	}
	s.order = s.order[:0]
}

func (s *Selection) Contains(i int) bool { return slices.Contains(s.order, i) }

func (s *Selection) Len() int { return len(s.order) }

// Indices returns a copy of the members in selection order.
func (s *Selection) Indices() []int { return append([]int{}, s.order...) }
