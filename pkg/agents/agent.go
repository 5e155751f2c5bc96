package agents

import (
	"context"

	"ai-finance-assistant-be/internal/pkg/logger"
	"ai-finance-assistant-be/pkg/llm"
	"ai-finance-assistant-be/pkg/retrieval"
	"ai-finance-assistant-be/pkg/workflow"
)

// Retrieval depth and context budget shared by every specialist.
const (
	retrieveTopK       = 5
	contextTokenBudget = 2000
)

// base carries the collaborators every specialist shares: the knowledge
// retriever for grounding and the generation backend. A nil retriever
// disables grounding; generation then runs on the bare prompt.
type base struct {
	name      string
	retriever *retrieval.Retriever
	llm       llm.LLMProvider
	logger    logger.ILogger
}

func (b *base) retrieve(query string) []retrieval.Result {
	if b.retriever == nil {
		return nil
	}
	return b.retriever.Retrieve(query, retrieveTopK)
}

func (b *base) generate(ctx context.Context, prompt, background string) (string, error) {
	response, err := llm.GenerateWithContext(ctx, b.llm, prompt, background)
	if err != nil {
		b.logger.Error("agents", "Generation failed", map[string]interface{}{
			"agent": b.name,
			"error": err.Error(),
		})
		return "", err
	}
	return response, nil
}

// holdingsFromContext reads the session holdings the router merges in.
func holdingsFromContext(callContext map[string]interface{}) map[string]float64 {
	holdings, _ := callContext[workflow.ContextKeyHoldings].(map[string]float64)
	return holdings
}

// goalsFromContext reads the session goals the router merges in.
func goalsFromContext(callContext map[string]interface{}) []workflow.Goal {
	goals, _ := callContext[workflow.ContextKeyGoals].([]workflow.Goal)
	return goals
}
