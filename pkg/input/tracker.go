// Package input turns raw window events into action queries for the frame loop.
// Everything here runs on the main thread: the window delivers key and cursor
// events synchronously from PollEvents, so the tracker holds no locks.
package input

// CursorMode selects how cursor events are interpreted
type CursorMode int

const (
	// CursorFree reports absolute cursor positions
	CursorFree CursorMode = iota
	// CursorLocked hides the cursor and reports per-event offsets for look control
	CursorLocked
)

func (m CursorMode) String() string {
	if m == CursorLocked {
		return "locked"
	}
	return "free"
}

// Tracker records key and cursor state and answers held/clicked queries per action
type Tracker struct {
	bindings *Bindings

	keyState   map[Key]bool
	clickState map[string]bool

	mode         CursorMode
	lastX, lastY float64

	offsetObservers   []func(dx, dy float64)
	positionObservers []func(x, y float64)
}

// NewTracker creates a tracker over the given bindings. A nil table behaves
// as if no action were bound.
func NewTracker(bindings *Bindings) *Tracker {
	if bindings == nil {
		bindings = NewBindings()
	}
	return &Tracker{
		bindings:   bindings,
		keyState:   make(map[Key]bool),
		clickState: make(map[string]bool),
		mode:       CursorFree,
	}
}

// Bindings returns the table the tracker resolves actions against
func (t *Tracker) Bindings() *Bindings {
	return t.bindings
}

// OnKeyEvent records a raw key event. Repeat events only arrive while the key
// is down, so they count as pressed.
func (t *Tracker) OnKeyEvent(key Key, action KeyAction) {
	t.keyState[key] = action != Release
}

// OnCursorEvent handles a raw cursor position. In free mode the absolute
// position goes to position observers. In locked mode the offset from the
// previous event goes to offset observers, with Y inverted so that moving
// the cursor up yields a positive value.
func (t *Tracker) OnCursorEvent(x, y float64) {
	if t.mode == CursorFree {
		for _, fn := range t.positionObservers {
			fn(x, y)
		}
		return
	}

	dx := x - t.lastX
	dy := t.lastY - y
	t.lastX = x
	t.lastY = y

	for _, fn := range t.offsetObservers {
		fn(dx, dy)
	}
}

// ResetCursorAnchor moves the offset anchor without emitting an event. Call it
// whenever the cursor becomes locked, otherwise the first locked event reports
// the whole distance the cursor travelled while free.
func (t *Tracker) ResetCursorAnchor(x, y float64) {
	t.lastX = x
	t.lastY = y
}

// CursorAnchor returns the position offsets are currently measured from
func (t *Tracker) CursorAnchor() (x, y float64) {
	return t.lastX, t.lastY
}

// SetCursorMode switches between free and locked cursor handling. It does not
// touch the anchor; see ResetCursorAnchor.
func (t *Tracker) SetCursorMode(mode CursorMode) {
	t.mode = mode
}

// CursorMode returns the current cursor mode
func (t *Tracker) CursorMode() CursorMode {
	return t.mode
}

// OnLookOffset registers an observer for locked-mode cursor offsets
func (t *Tracker) OnLookOffset(fn func(dx, dy float64)) {
	t.offsetObservers = append(t.offsetObservers, fn)
}

// OnCursorPosition registers an observer for free-mode absolute positions
func (t *Tracker) OnCursorPosition(fn func(x, y float64)) {
	t.positionObservers = append(t.positionObservers, fn)
}

// Pressed reports the raw state of a single key
func (t *Tracker) Pressed(key Key) bool {
	return t.keyState[key]
}

// Held reports whether any key bound to action is down. Unbound actions are
// never held.
func (t *Tracker) Held(action string) bool {
	keys, ok := t.bindings.Keys(action)
	if !ok {
		return false
	}
	for _, k := range keys {
		if t.keyState[k] {
			return true
		}
	}
	return false
}

// Clicked reports true only on the first call that sees action held after a
// call that saw it released. It updates per-action state on every call, so
// exactly one caller may query a given action each frame; a second query in
// the same frame would never see the edge.
func (t *Tracker) Clicked(action string) bool {
	held := t.Held(action)
	armed := t.clickState[action]

	switch {
	case held && !armed:
		t.clickState[action] = true
		return true
	case !held && armed:
		t.clickState[action] = false
	}
	return false
}
