package viewer

import "log/slog"

// FocusEventType tells whether a target gained or lost focus
type FocusEventType int

const (
	FocusGained FocusEventType = iota
	FocusLost
)

func (t FocusEventType) String() string {
	if t == FocusLost {
		return "focus lost"
	}
	return "focus gained"
}

// FocusEvent is emitted by FocusTracker when the focused target changes
type FocusEvent struct {
	Type   FocusEventType
	Target Target
}

// FocusTracker keeps the focused flag of at most one scene entity in
// sync with the cursor and toggles selection on click.
type FocusTracker struct {
	viewer    *Viewer
	current   Target
	focused   bool
	listeners map[int]func(FocusEvent)
	nextID    int
}

// NewFocusTracker creates a tracker picking against v
func NewFocusTracker(v *Viewer) *FocusTracker {
	return &FocusTracker{
		viewer:    v,
		listeners: make(map[int]func(FocusEvent)),
	}
}

// Subscribe registers fn for focus events. The returned function removes
// the subscription.
func (t *FocusTracker) Subscribe(fn func(FocusEvent)) (cancel func()) {
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	return func() {
		delete(t.listeners, id)
	}
}

func (t *FocusTracker) emit(eventType FocusEventType, target Target) {
	t.viewer.logger.Debug("focus changed", slog.String("event", eventType.String()), slog.String("target", target.String()))
	event := FocusEvent{Type: eventType, Target: target}
	for _, fn := range t.listeners {
		fn(event)
	}
}

// Current returns the focused target, if any
func (t *FocusTracker) Current() (Target, bool) {
	return t.current, t.focused
}

// Update moves the focus to whatever lies under (x, y). Returns true if
// the focused target changed; a repaint is requested in that case.
func (t *FocusTracker) Update(x, y int) bool {
	target, ok := t.viewer.Pick(x, y)
	if ok == t.focused && (!ok || target.Same(t.current)) {
		return false
	}

	if t.focused {
		previous := t.current
		previous.Entity().SetFocused(false)
		t.current, t.focused = Target{}, false
		t.emit(FocusLost, previous)
	}
	if ok {
		target.Entity().SetFocused(true)
		t.current, t.focused = target, true
		t.emit(FocusGained, target)
	}
	t.viewer.RequestRepaint()
	return true
}

// ToggleSelection flips the selected flag of the focused target and
// returns it. Selection is independent of focus and survives it.
func (t *FocusTracker) ToggleSelection() (Target, bool) {
	if !t.focused {
		return Target{}, false
	}
	entity := t.current.Entity()
	entity.SetSelected(!entity.Selected())
	t.viewer.logger.Debug("selection toggled", "target", t.current.String(), "selected", entity.Selected())
	t.viewer.RequestRepaint()
	return t.current, true
}

// Clear drops the focus, e.g. when the cursor leaves the view
func (t *FocusTracker) Clear() {
	if !t.focused {
		return
	}
	previous := t.current
	previous.Entity().SetFocused(false)
	t.current, t.focused = Target{}, false
	t.emit(FocusLost, previous)
	t.viewer.RequestRepaint()
}
