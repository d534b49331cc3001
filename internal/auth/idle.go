package auth

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// IdleMonitor invalidates sessions after a fixed window of silence. One
// timer exists per active session; every qualifying request cancels and
// reschedules it. Timers are torn down on logout and on Close, so none
// outlive their session.
type IdleMonitor struct {
	mu      sync.Mutex
	timeout time.Duration
	timers  map[string]*time.Timer
	expired map[string]struct{}
	closed  bool
	logger  *zap.Logger
}

// NewIdleMonitor builds a monitor with the given inactivity window.
func NewIdleMonitor(timeout time.Duration, logger *zap.Logger) *IdleMonitor {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdleMonitor{
		timeout: timeout,
		timers:  make(map[string]*time.Timer),
		expired: make(map[string]struct{}),
		logger:  logger,
	}
}

// Touch marks activity for the session, pushing its deadline a full window
// out. Touching an already-expired session is ignored; only a fresh login
// (Reset) revives it.
func (m *IdleMonitor) Touch(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || sessionID == "" {
		return
	}
	if _, gone := m.expired[sessionID]; gone {
		return
	}
	if timer, ok := m.timers[sessionID]; ok {
		timer.Stop()
	}
	m.timers[sessionID] = time.AfterFunc(m.timeout, func() { m.expire(sessionID) })
}

// Reset starts a fresh window for the session, discarding any expired mark.
// Called when a session is issued.
func (m *IdleMonitor) Reset(sessionID string) {
	m.mu.Lock()
	if !m.closed {
		delete(m.expired, sessionID)
	}
	m.mu.Unlock()
	m.Touch(sessionID)
}

// Expired reports whether the session timed out since its last activity.
func (m *IdleMonitor) Expired(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, gone := m.expired[sessionID]
	return gone
}

// End cancels tracking for the session. Idempotent; called on logout and
// after an expired session has been cleared.
func (m *IdleMonitor) End(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if timer, ok := m.timers[sessionID]; ok {
		timer.Stop()
		delete(m.timers, sessionID)
	}
	delete(m.expired, sessionID)
}

// Close stops every timer. The monitor accepts no further activity.
func (m *IdleMonitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for id, timer := range m.timers {
		timer.Stop()
		delete(m.timers, id)
	}
}

func (m *IdleMonitor) expire(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	if _, ok := m.timers[sessionID]; !ok {
		return
	}
	delete(m.timers, sessionID)
	m.expired[sessionID] = struct{}{}
	m.logger.Info("session expired after inactivity", zap.String("session_id", sessionID))
}
