package render

// Clock returns the current time in seconds. glfw.GetTime in production.
type Clock func() float64

// FrameTimer turns successive clock readings into frame delta times
type FrameTimer struct {
	previous float64
	started  bool
}

// Reset makes now the previous timestamp, so the next Tick measures from it
func (t *FrameTimer) Reset(now float64) {
	t.previous = now
	t.started = true
}

// Tick returns the time since the previous tick and advances. The first tick
// on an unstarted timer returns 0, as does a clock that stalled or went back.
func (t *FrameTimer) Tick(now float64) float32 {
	if !t.started {
		t.Reset(now)
		return 0
	}
	delta := now - t.previous
	t.previous = now
	if delta < 0 {
		return 0
	}
	return float32(delta)
}
