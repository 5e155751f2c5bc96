package memory

import (
	"github.com/patrickmn/go-cache"

	"ai-finance-assistant-be/pkg/workflow"
)

// SessionRepository keeps conversation state in process memory.
// Sessions never expire on their own; they live until ClearSession or
// process exit.
type SessionRepository struct {
	cache *cache.Cache
}

var _ workflow.SessionStore = &SessionRepository{}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (r *SessionRepository) Save(state *workflow.ConversationState) {
	r.cache.Set(state.UserID, state, cache.NoExpiration)
}

func (r *SessionRepository) Get(userID string) (*workflow.ConversationState, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*workflow.ConversationState), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
