package mesh

import "image/color"

// Coloring holds the colors of an edge or face for each interaction
// state. It is immutable once created. A nil *Coloring renders nothing.
type Coloring struct {
	normal   color.Color
	focused  color.Color
	selected color.Color
}

// NewColoring creates a coloring. A nil focused color falls back to the
// normal color, a nil selected color falls back to the focused one.
func NewColoring(normal, focused, selected color.Color) *Coloring {
	if focused == nil {
		focused = normal
	}
	if selected == nil {
		selected = focused
	}
	return &Coloring{
		normal:   normal,
		focused:  focused,
		selected: selected,
	}
}

// Normal returns the color used when neither focused nor selected
func (c *Coloring) Normal() color.Color {
	if c == nil {
		return nil
	}
	return c.normal
}

// Focused returns the color used while the cursor is on the entity
func (c *Coloring) Focused() color.Color {
	if c == nil {
		return nil
	}
	return c.focused
}

// Selected returns the color used for selected entities
func (c *Coloring) Selected() color.Color {
	if c == nil {
		return nil
	}
	return c.selected
}

// Resolve returns the color for the given state. Selection wins over
// focus. The result is nil when there is nothing to draw.
func (c *Coloring) Resolve(focused, selected bool) color.Color {
	switch {
	case selected:
		return c.Selected()
	case focused:
		return c.Focused()
	default:
		return c.Normal()
	}
}
