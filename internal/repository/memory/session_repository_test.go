package memory

import (
	"testing"

	"ai-finance-assistant-be/pkg/workflow"
)

func TestSessionRepositoryRoundtrip(t *testing.T) {
	repo := NewSessionRepository()

	if _, ok := repo.Get("user-1"); ok {
		t.Error("empty repository reported a session")
	}

	state := workflow.NewConversationState("user-1")
	repo.Save(state)

	got, ok := repo.Get("user-1")
	if !ok || got != state {
		t.Errorf("Get = %v, %v; want the saved state", got, ok)
	}

	repo.Delete("user-1")
	if _, ok := repo.Get("user-1"); ok {
		t.Error("session survived Delete")
	}

	// Deleting again is a no-op.
	repo.Delete("user-1")
}
