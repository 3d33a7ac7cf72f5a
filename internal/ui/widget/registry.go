package widget

// Rect is the on-screen container of a widget, in cell coordinates. Bounds
// are inclusive. A zero Right means the container spans the full width.
type Rect struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// Contains reports whether the cell at x, y lies inside r.
func (r Rect) Contains(x, y int) bool {
	if y < r.Top || y > r.Bottom {
		return false
	}
	if r.Right == 0 {
		return x >= r.Left
	}
	return x >= r.Left && x <= r.Right
}

// SetBounds records where the widget was last drawn.
func (w *Widget) SetBounds(r Rect) {
	w.bounds = r
	w.hasBounds = true
}

// ClearBounds marks the widget as not currently drawn.
func (w *Widget) ClearBounds() {
	w.bounds = Rect{}
	w.hasBounds = false
}

// Bounds returns the last recorded container.
func (w *Widget) Bounds() (Rect, bool) {
	return w.bounds, w.hasBounds
}

// Contains reports whether a pointer at x, y falls inside the widget. A
// widget that is not on screen contains nothing.
func (w *Widget) Contains(x, y int) bool {
	if !w.hasBounds {
		return false
	}
	return w.bounds.Contains(x, y)
}

// Registry tracks live widgets so pointer presses anywhere on screen can
// dismiss dropdowns they fall outside of. Widgets are added when their form is
// built and removed when it is torn down.
type Registry struct {
	widgets []*Widget
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers w. Registering the same widget twice is a no-op.
func (r *Registry) Add(w *Widget) {
	if w == nil {
		return
	}
	for _, existing := range r.widgets {
		if existing == w {
			return
		}
	}
	r.widgets = append(r.widgets, w)
}

// Remove unregisters w, reporting whether it was present.
func (r *Registry) Remove(w *Widget) bool {
	for i, existing := range r.widgets {
		if existing == w {
			r.widgets = append(r.widgets[:i], r.widgets[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered widgets.
func (r *Registry) Len() int {
	return len(r.widgets)
}

// Widgets returns the registered widgets in registration order.
func (r *Registry) Widgets() []*Widget {
	dup := make([]*Widget, len(r.widgets))
	copy(dup, r.widgets)
	return dup
}

// PointerDown asks each registered widget whether the press at x, y fell
// outside it and closes those whose list is open. It returns the ids of the
// widgets it closed.
func (r *Registry) PointerDown(x, y int) []string {
	var closed []string
	for _, w := range r.widgets {
		if !w.IsOpen() || w.Contains(x, y) {
			continue
		}
		if w.Close("outside") {
			closed = append(closed, w.id)
		}
	}
	return closed
}
