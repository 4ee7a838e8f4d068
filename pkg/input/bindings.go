package input

import "sort"

// Bindings maps symbolic action names to the physical keys that trigger them.
// Polling code asks about actions ("forward") and never about key codes.
type Bindings struct {
	actions map[string][]Key
}

// NewBindings creates an empty binding table
func NewBindings() *Bindings {
	return &Bindings{actions: make(map[string][]Key)}
}

// Bind creates or replaces the binding for action. Duplicate keys are
// dropped while keeping the order in which they were first listed.
func (b *Bindings) Bind(action string, keys ...Key) {
	seen := make(map[Key]bool, len(keys))
	bound := make([]Key, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		bound = append(bound, k)
	}
	b.actions[action] = bound
}

// Keys returns the keys bound to action and whether the action is bound at all
func (b *Bindings) Keys(action string) ([]Key, bool) {
	keys, ok := b.actions[action]
	return keys, ok
}

// Actions returns every bound action name in sorted order
func (b *Bindings) Actions() []string {
	names := make([]string, 0, len(b.actions))
	for name := range b.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy of the table
func (b *Bindings) Clone() *Bindings {
	c := NewBindings()
	for name, keys := range b.actions {
		c.actions[name] = append([]Key(nil), keys...)
	}
	return c
}

// Action names used by the camera and the frame loop
const (
	ActionForward     = "forward"
	ActionBack        = "back"
	ActionLeft        = "left"
	ActionRight       = "right"
	ActionUp          = "up"
	ActionDown        = "down"
	ActionToggleMouse = "toggle_mouse"
	ActionQuit        = "quit"
)

// DefaultBindings returns the stock WASD layout: Space/LeftShift fly up and
// down, Escape toggles the cursor lock and Q quits.
func DefaultBindings() *Bindings {
	b := NewBindings()
	b.Bind(ActionForward, KeyW)
	b.Bind(ActionBack, KeyS)
	b.Bind(ActionLeft, KeyA)
	b.Bind(ActionRight, KeyD)
	b.Bind(ActionUp, KeySpace)
	b.Bind(ActionDown, KeyLeftShift)
	b.Bind(ActionToggleMouse, KeyEscape)
	b.Bind(ActionQuit, KeyQ)
	return b
}
