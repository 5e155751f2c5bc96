package workflow

import (
	"context"
	"fmt"

	"ai-finance-assistant-be/internal/pkg/logger"
)

// Responder turns a (query, merged context) pair into an answer. Any
// type implementing it can be registered; implementations may call out
// to generation or market backends and may fail.
type Responder interface {
	Process(ctx context.Context, query string, callContext map[string]interface{}) (string, error)
}

// Merged-context keys handed to responders. Holdings and goals are
// surfaced under dedicated keys so responders never depend on the
// state's internal layout, and a stock symbol can never collide with a
// hint name.
const (
	ContextKeyHints    = "hints"
	ContextKeyHoldings = "holdings"
	ContextKeyGoals    = "goals"
)

// errorPrefix labels user-facing failure strings so they cannot be
// mistaken for responder output.
const errorPrefix = "Error processing request: "

// Router dispatches queries to the responder registered for the
// detected intent and records each exchange on the session state.
// Faults from detection, retrieval, or responders are converted to
// labeled error strings at this boundary; Route never panics and never
// returns an error to the caller.
type Router struct {
	responders map[Intent]Responder
	detector   *IntentDetector
	logger     logger.ILogger
}

func NewRouter(detector *IntentDetector, log logger.ILogger) *Router {
	return &Router{
		responders: make(map[Intent]Responder),
		detector:   detector,
		logger:     log,
	}
}

// Register binds a responder to an intent, replacing any prior binding.
func (r *Router) Register(intent Intent, responder Responder) {
	r.responders[intent] = responder
}

// Route classifies the query, dispatches it, and appends the exchange
// (user query + assistant reply) to the state. The caller must hold the
// session's serialization lock.
func (r *Router) Route(ctx context.Context, query string, state *ConversationState) string {
	intent := r.detector.DetectIntent(query)
	state.CurrentIntent = intent

	hints := r.detector.ExtractContextHints(query)
	state.UpdateContext(ContextKeyHints, hints)

	callContext := r.buildCallContext(state, hints)

	responder, ok := r.responders[intent]
	if !ok {
		r.logger.Warn("router", "No responder registered for intent", map[string]interface{}{
			"intent": string(intent),
		})
		return fmt.Sprintf("Responder for %s not configured", intent)
	}

	r.logger.Info("router", "Routing query", map[string]interface{}{
		"user_id": state.UserID,
		"intent":  string(intent),
	})

	response, err := responder.Process(ctx, query, callContext)
	if err != nil {
		r.logger.Error("router", "Responder failed", map[string]interface{}{
			"intent": string(intent),
			"error":  err.Error(),
		})
		response = errorPrefix + err.Error()
	}

	state.AddMessage("user", query)
	state.AddMessage("assistant", response)

	return response
}

// buildCallContext merges the session's context mapping with holdings
// and goals under namespaced keys. Copies are handed out so responders
// cannot mutate session state.
func (r *Router) buildCallContext(state *ConversationState, hints map[string]bool) map[string]interface{} {
	callContext := make(map[string]interface{}, len(state.Context)+3)
	for k, v := range state.Context {
		callContext[k] = v
	}

	holdings := make(map[string]float64, len(state.Portfolio))
	for symbol, qty := range state.Portfolio {
		holdings[symbol] = qty
	}

	goals := make([]Goal, len(state.Goals))
	copy(goals, state.Goals)

	callContext[ContextKeyHints] = hints
	callContext[ContextKeyHoldings] = holdings
	callContext[ContextKeyGoals] = goals

	return callContext
}
