package workflow

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Intent is the responder category selected to handle a query.
type Intent string

const (
	IntentFinanceQA         Intent = "finance_qa"
	IntentPortfolioAnalysis Intent = "portfolio_analysis"
	IntentMarketAnalysis    Intent = "market_analysis"
	IntentGoalPlanning      Intent = "goal_planning"
	IntentNewsSynthesizer   Intent = "news_synthesizer"
	IntentTaxEducation      Intent = "tax_education"
)

// MessageRecord is one conversation turn. The message list is
// append-only; insertion order is the only meaningful order.
type MessageRecord struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"` // "user" | "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Goal is one financial goal record.
type Goal struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount,omitempty"`
	Deadline     string  `json:"deadline,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

// ConversationState holds everything known about one user session.
// Lifetime is bounded by process uptime; there is no persistence.
// Routing for one session is serialized via mu (held by the Manager),
// so concurrent ProcessMessage calls for the same user cannot
// interleave mutations.
type ConversationState struct {
	mu sync.Mutex

	UserID        string
	Messages      []MessageRecord
	CurrentIntent Intent
	Context       map[string]interface{}
	Portfolio     map[string]float64
	Goals         []Goal
	Preferences   map[string]string
	CreatedAt     time.Time
}

func NewConversationState(userID string) *ConversationState {
	return &ConversationState{
		UserID:      userID,
		Messages:    []MessageRecord{},
		Context:     make(map[string]interface{}),
		Portfolio:   make(map[string]float64),
		Goals:       []Goal{},
		Preferences: make(map[string]string),
		CreatedAt:   time.Now(),
	}
}

// AddMessage appends one record to the conversation history.
func (s *ConversationState) AddMessage(role, content string) {
	s.Messages = append(s.Messages, MessageRecord{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// History returns the most recent limit records in insertion order.
func (s *ConversationState) History(limit int) []MessageRecord {
	if limit <= 0 || limit > len(s.Messages) {
		limit = len(s.Messages)
	}
	out := make([]MessageRecord, limit)
	copy(out, s.Messages[len(s.Messages)-limit:])
	return out
}

// UpdateContext sets one routing hint in the context mapping.
func (s *ConversationState) UpdateContext(key string, value interface{}) {
	s.Context[key] = value
}

// ContextKeys returns the context mapping's keys, sorted for stable
// diagnostics output.
func (s *ConversationState) ContextKeys() []string {
	keys := make([]string, 0, len(s.Context))
	for k := range s.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
