package mesh

// Interactive is implemented by every entity that can be focused by the
// cursor or selected by a click: *Point, *Edge and *Face.
type Interactive interface {
	Focused() bool
	SetFocused(focused bool)
	Selected() bool
	SetSelected(selected bool)
}

// state holds the focus and selection flags shared by all entities
type state struct {
	focused  bool
	selected bool
}

// Focused reports whether the cursor currently rests on the entity
func (s *state) Focused() bool {
	return s.focused
}

// SetFocused sets the focus flag
func (s *state) SetFocused(focused bool) {
	s.focused = focused
}

// Selected reports whether the entity was selected by a click
func (s *state) Selected() bool {
	return s.selected
}

// SetSelected sets the selection flag
func (s *state) SetSelected(selected bool) {
	s.selected = selected
}
