package browser

import (
	"sync"
	"time"

	"ordertrack/internal/domain"

	"go.uber.org/zap"
)

// Manager tracks live browsing sessions by ID so incoming navigation
// events can be routed to the right one. Ended sessions remove
// themselves.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	pageSize int
	idle     time.Duration
	logger   *zap.Logger
}

func NewManager(pageSize int, idle time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		pageSize: pageSize,
		idle:     idle,
		logger:   logger,
	}
}

// Open starts a session over a snapshot of the order list and returns it
// together with the first page for the initial reply.
func (m *Manager) Open(ownerID string, orders []domain.Order, render RenderFunc) (*Session, Page) {
	var s *Session
	var first Page
	s, first = newSession(ownerID, orders, m.pageSize, m.idle, render, func() {
		m.remove(s.ID)
	})

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug("browser session opened",
		zap.String("sessionId", s.ID),
		zap.String("owner", ownerID),
		zap.Int("orders", len(orders)),
	)
	return s, first
}

// Navigate routes an event to a live session. Unknown or already ended
// sessions swallow the event.
func (m *Manager) Navigate(sessionID, userID string, dir Direction) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return
	}
	s.Navigate(userID, dir)
}

func (m *Manager) remove(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	m.logger.Debug("browser session ended", zap.String("sessionId", sessionID))
}
