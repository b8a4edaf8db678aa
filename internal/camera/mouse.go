package camera

// MouseTracker turns absolute cursor positions into per-event offsets.
// The first sample only records the position so the camera does not jump
// when the cursor enters the window.
type MouseTracker struct {
	lastX, lastY float64
	first        bool
}

// NewMouseTracker starts tracking from the given cursor position.
func NewMouseTracker(x, y float64) *MouseTracker {
	return &MouseTracker{lastX: x, lastY: y, first: true}
}

// Reset makes the next sample a first sample again (used when the cursor is recaptured).
func (m *MouseTracker) Reset() {
	m.first = true
}

// Offset returns the movement since the last sample. Y is reversed since
// window coordinates grow downwards.
func (m *MouseTracker) Offset(x, y float64) (float32, float32) {
	if m.first {
		m.lastX = x
		m.lastY = y
		m.first = false
	}
	xoffset := x - m.lastX
	yoffset := m.lastY - y
	m.lastX = x
	m.lastY = y
	return float32(xoffset), float32(yoffset)
}
