package interact

// Capturer is the platform pointer-capture primitive: mouse tracking in a
// terminal, cursor disable in a window. Both calls are requests; the
// platform confirms through the bridge's Notify methods, or never.
type Capturer interface {
	RequestLock()
	ExitLock()
}

// CaptureListener receives capture session boundaries.
type CaptureListener interface {
	CaptureAcquired()
	CaptureReleased()
}

// CaptureState is the bridge's view of the platform.
type CaptureState int

const (
	// CaptureIdle means no capture is held or asked for.
	CaptureIdle CaptureState = iota
	// CaptureRequested means the platform was asked and has not confirmed.
	CaptureRequested
	// CaptureActive means the platform confirmed and the session is live.
	CaptureActive
)

func (s CaptureState) String() string {
	switch s {
	case CaptureIdle:
		return "idle"
	case CaptureRequested:
		return "requested"
	case CaptureActive:
		return "active"
	}
	return "unknown"
}

// CaptureBridge turns platform lock notifications into one acquired and
// one released event per capture session. A session ends the same way
// whether the application released it or the platform revoked it, and
// late or repeated notifications are dropped.
type CaptureBridge struct {
	platform Capturer
	listener CaptureListener
	state    CaptureState
}

// NewCaptureBridge wraps platform.
func NewCaptureBridge(platform Capturer) *CaptureBridge {
	return &CaptureBridge{platform: platform}
}

// SetListener sets the receiver of session events.
func (b *CaptureBridge) SetListener(l CaptureListener) {
	b.listener = l
}

// State returns the current capture state.
func (b *CaptureBridge) State() CaptureState {
	return b.state
}

// Captured reports whether a session is active.
func (b *CaptureBridge) Captured() bool {
	return b.state == CaptureActive
}

// RequestCapture asks the platform for capture. Repeating a pending request
// asks again, since the platform may have ignored the first one.
func (b *CaptureBridge) RequestCapture() {
	if b.state == CaptureActive {
		return
	}
	b.state = CaptureRequested
	b.platform.RequestLock()
}

// ReleaseCapture ends the active session, or cancels a pending request.
// Releasing when idle is a no-op.
func (b *CaptureBridge) ReleaseCapture() {
	switch b.state {
	case CaptureActive:
		b.state = CaptureIdle
		b.platform.ExitLock()
		if b.listener != nil {
			b.listener.CaptureReleased()
		}
	case CaptureRequested:
		b.state = CaptureIdle
		b.platform.ExitLock()
	}
}

// NotifyLocked is called by the platform when capture takes effect. A
// confirmation without a prior request still starts a session.
func (b *CaptureBridge) NotifyLocked() {
	if b.state == CaptureActive {
		return
	}
	b.state = CaptureActive
	if b.listener != nil {
		b.listener.CaptureAcquired()
	}
}

// NotifyUnlocked is called by the platform when capture ends for any
// reason, including after ReleaseCapture.
func (b *CaptureBridge) NotifyUnlocked() {
	if b.state != CaptureActive {
		return
	}
	b.state = CaptureIdle
	if b.listener != nil {
		b.listener.CaptureReleased()
	}
}
