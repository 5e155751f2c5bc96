package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-finance-assistant-be/internal/pkg/logger"
)

type stubResponder struct {
	reply string
	err   error

	lastQuery   string
	lastContext map[string]interface{}
}

func (s *stubResponder) Process(_ context.Context, query string, callContext map[string]interface{}) (string, error) {
	s.lastQuery = query
	s.lastContext = callContext
	return s.reply, s.err
}

func newTestRouter() *Router {
	return NewRouter(NewIntentDetector(), logger.NewNopLogger())
}

func TestRouteDispatchesToRegisteredResponder(t *testing.T) {
	router := newTestRouter()
	responder := &stubResponder{reply: "A stock is a share of ownership."}
	router.Register(IntentFinanceQA, responder)

	state := NewConversationState("user-1")
	got := router.Route(context.Background(), "What is a stock?", state)

	if got != responder.reply {
		t.Errorf("Route = %q, want %q", got, responder.reply)
	}
	if responder.lastQuery != "What is a stock?" {
		t.Errorf("responder received query %q", responder.lastQuery)
	}
	if state.CurrentIntent != IntentFinanceQA {
		t.Errorf("CurrentIntent = %v, want %v", state.CurrentIntent, IntentFinanceQA)
	}
}

func TestRouteRecordsExchange(t *testing.T) {
	router := newTestRouter()
	router.Register(IntentFinanceQA, &stubResponder{reply: "answer"})

	state := NewConversationState("user-1")
	router.Route(context.Background(), "What is a bond?", state)

	if len(state.Messages) != 2 {
		t.Fatalf("message count = %d, want 2", len(state.Messages))
	}
	if state.Messages[0].Role != "user" || state.Messages[0].Content != "What is a bond?" {
		t.Errorf("first record = %+v, want user query", state.Messages[0])
	}
	if state.Messages[1].Role != "assistant" || state.Messages[1].Content != "answer" {
		t.Errorf("second record = %+v, want assistant reply", state.Messages[1])
	}
}

func TestRouteMissingResponder(t *testing.T) {
	router := newTestRouter()
	// Nothing registered at all.

	state := NewConversationState("user-1")
	got := router.Route(context.Background(), "What is a stock?", state)

	if !strings.Contains(got, "not configured") {
		t.Errorf("Route = %q, want a 'not configured' notice", got)
	}
	if !strings.Contains(got, string(IntentFinanceQA)) {
		t.Errorf("Route = %q, want intent name in the notice", got)
	}
	if len(state.Messages) != 0 {
		t.Errorf("message count = %d, want 0 when dispatch never happens", len(state.Messages))
	}
}

func TestRouteResponderErrorBecomesLabeledString(t *testing.T) {
	router := newTestRouter()
	router.Register(IntentFinanceQA, &stubResponder{err: errors.New("backend unreachable")})

	state := NewConversationState("user-1")
	got := router.Route(context.Background(), "What is a stock?", state)

	if !strings.HasPrefix(got, errorPrefix) {
		t.Errorf("Route = %q, want prefix %q", got, errorPrefix)
	}
	if !strings.Contains(got, "backend unreachable") {
		t.Errorf("Route = %q, want underlying error text", got)
	}
	// The failed exchange is still recorded.
	if len(state.Messages) != 2 {
		t.Errorf("message count = %d, want 2", len(state.Messages))
	}
	if state.Messages[1].Content != got {
		t.Errorf("assistant record = %q, want the returned error string", state.Messages[1].Content)
	}
}

func TestRouteBuildsMergedCallContext(t *testing.T) {
	router := newTestRouter()
	responder := &stubResponder{reply: "ok"}
	router.Register(IntentPortfolioAnalysis, responder)

	state := NewConversationState("user-1")
	state.Portfolio = map[string]float64{"AAPL": 10, "MSFT": 5}
	state.Goals = []Goal{{Name: "retirement"}}
	state.UpdateContext("risk_profile", "moderate")

	router.Route(context.Background(), "Analyze my portfolio: AAPL 10, MSFT 5", state)

	cc := responder.lastContext
	if cc == nil {
		t.Fatal("responder received nil context")
	}
	if cc["risk_profile"] != "moderate" {
		t.Errorf("session context not merged: %v", cc["risk_profile"])
	}

	hints, ok := cc[ContextKeyHints].(map[string]bool)
	if !ok || !hints["needs_holdings"] {
		t.Errorf("hints = %v, want needs_holdings set", cc[ContextKeyHints])
	}

	holdings, ok := cc[ContextKeyHoldings].(map[string]float64)
	if !ok || holdings["AAPL"] != 10 || holdings["MSFT"] != 5 {
		t.Errorf("holdings = %v, want session portfolio", cc[ContextKeyHoldings])
	}

	goals, ok := cc[ContextKeyGoals].([]Goal)
	if !ok || len(goals) != 1 || goals[0].Name != "retirement" {
		t.Errorf("goals = %v, want session goals", cc[ContextKeyGoals])
	}

	// Mutating handed-out copies must not leak back into the session.
	holdings["AAPL"] = 999
	if state.Portfolio["AAPL"] != 10 {
		t.Errorf("session portfolio mutated through call context: %v", state.Portfolio)
	}
}

func TestRouteUpdatesHintsOnState(t *testing.T) {
	router := newTestRouter()
	router.Register(IntentGoalPlanning, &stubResponder{reply: "ok"})

	state := NewConversationState("user-1")
	router.Route(context.Background(), "Help me plan to retire early", state)

	hints, ok := state.Context[ContextKeyHints].(map[string]bool)
	if !ok {
		t.Fatalf("state context hints = %v", state.Context[ContextKeyHints])
	}
	if !hints["needs_goals"] {
		t.Errorf("hints = %v, want needs_goals set", hints)
	}
}
