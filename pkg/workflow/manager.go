package workflow

import (
	"context"

	"ai-finance-assistant-be/internal/pkg/logger"
)

// SessionStore holds one ConversationState per user id. Implementations
// must be safe for concurrent Save/Get/Delete (sessions for distinct
// users are created in parallel).
type SessionStore interface {
	Save(state *ConversationState)
	Get(userID string) (*ConversationState, bool)
	Delete(userID string)
}

// SessionSummary is a read-only projection for diagnostics.
type SessionSummary struct {
	UserID        string             `json:"user_id"`
	MessageCount  int                `json:"message_count"`
	Portfolio     map[string]float64 `json:"portfolio"`
	Goals         []Goal             `json:"goals"`
	CurrentIntent string             `json:"current_intent,omitempty"`
	ContextKeys   []string           `json:"context_keys"`
}

// Manager owns the session map and serializes message processing per
// session. Operations on distinct users run fully in parallel.
type Manager struct {
	router   *Router
	sessions SessionStore
	logger   logger.ILogger
}

func NewManager(router *Router, sessions SessionStore, log logger.ILogger) *Manager {
	return &Manager{
		router:   router,
		sessions: sessions,
		logger:   log,
	}
}

// CreateSession always creates a fresh state, overwriting any existing
// session for the user id.
func (m *Manager) CreateSession(userID string) *ConversationState {
	state := NewConversationState(userID)
	m.sessions.Save(state)
	m.logger.Info("conversation", "Created session", map[string]interface{}{
		"user_id": userID,
	})
	return state
}

// GetSession returns the existing state, or false when none exists.
func (m *Manager) GetSession(userID string) (*ConversationState, bool) {
	return m.sessions.Get(userID)
}

// ProcessMessage routes one user message, lazily creating the session
// on first contact. Processing for one session is serialized by the
// session's own lock.
func (m *Manager) ProcessMessage(ctx context.Context, userID, text string) string {
	state, ok := m.sessions.Get(userID)
	if !ok {
		state = m.CreateSession(userID)
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	return m.router.Route(ctx, text, state)
}

// UpdatePortfolio replaces the session's holdings. No-op if the session
// does not exist.
func (m *Manager) UpdatePortfolio(userID string, holdings map[string]float64) {
	state, ok := m.sessions.Get(userID)
	if !ok {
		return
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	state.Portfolio = make(map[string]float64, len(holdings))
	for symbol, qty := range holdings {
		state.Portfolio[symbol] = qty
	}
	m.logger.Info("conversation", "Updated portfolio", map[string]interface{}{
		"user_id": userID,
		"symbols": len(holdings),
	})
}

// SetGoal appends a goal record. No-op if the session does not exist.
func (m *Manager) SetGoal(userID string, goal Goal) {
	state, ok := m.sessions.Get(userID)
	if !ok {
		return
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	state.Goals = append(state.Goals, goal)
	m.logger.Info("conversation", "Added goal", map[string]interface{}{
		"user_id": userID,
		"goal":    goal.Name,
	})
}

// ClearSession destroys the session. No-op if absent.
func (m *Manager) ClearSession(userID string) {
	m.sessions.Delete(userID)
	m.logger.Info("conversation", "Cleared session", map[string]interface{}{
		"user_id": userID,
	})
}

// GetConversationHistory returns up to limit recent message records for
// the user, oldest first. Empty when the session does not exist.
func (m *Manager) GetConversationHistory(userID string, limit int) []MessageRecord {
	state, ok := m.sessions.Get(userID)
	if !ok {
		return []MessageRecord{}
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	return state.History(limit)
}

// GetSessionSummary returns a diagnostics projection, or false when the
// session does not exist.
func (m *Manager) GetSessionSummary(userID string) (*SessionSummary, bool) {
	state, ok := m.sessions.Get(userID)
	if !ok {
		return nil, false
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	portfolio := make(map[string]float64, len(state.Portfolio))
	for symbol, qty := range state.Portfolio {
		portfolio[symbol] = qty
	}
	goals := make([]Goal, len(state.Goals))
	copy(goals, state.Goals)

	return &SessionSummary{
		UserID:        userID,
		MessageCount:  len(state.Messages),
		Portfolio:     portfolio,
		Goals:         goals,
		CurrentIntent: string(state.CurrentIntent),
		ContextKeys:   state.ContextKeys(),
	}, true
}
