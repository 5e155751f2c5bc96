package agents

import (
	"context"
	"fmt"
	"strings"

	"ai-finance-assistant-be/internal/pkg/logger"
	"ai-finance-assistant-be/pkg/llm"
	"ai-finance-assistant-be/pkg/market"
	"ai-finance-assistant-be/pkg/retrieval"
	"ai-finance-assistant-be/pkg/workflow"
)

const newsPrompt = `You are a financial news analyst. Synthesize current financial developments and their potential impact:

Query: %s

Topics of Interest: %s

Market Backdrop:
%s

Analysis Guidelines:
- Explain key implications for investors
- Contextualize within broader economic trends
- Discuss potential sector impacts
- Mention affected asset classes
- Avoid predicting specific market movements
- Provide balanced perspective
- Include appropriate disclaimers

Provide a comprehensive news synthesis.`

// ContextKeyTopics optionally narrows the synthesis to named topics.
// Callers place a []string under this key in the session context.
const ContextKeyTopics = "topics"

// NewsSynthesizer contextualizes financial news against the current
// index levels when a market backend is available.
type NewsSynthesizer struct {
	base
	market market.Provider
}

var _ workflow.Responder = &NewsSynthesizer{}

func NewNewsSynthesizer(retriever *retrieval.Retriever, provider llm.LLMProvider, marketProvider market.Provider, log logger.ILogger) *NewsSynthesizer {
	return &NewsSynthesizer{
		base: base{
			name:      "news_synthesizer",
			retriever: retriever,
			llm:       provider,
			logger:    log,
		},
		market: marketProvider,
	}
}

func (a *NewsSynthesizer) Process(ctx context.Context, query string, callContext map[string]interface{}) (string, error) {
	topicsLine := "General market news"
	if topics, ok := callContext[ContextKeyTopics].([]string); ok && len(topics) > 0 {
		topicsLine = strings.Join(topics, ", ")
	}

	backdrop := "Market data currently unavailable"
	if a.market != nil {
		trends, err := a.market.GetMarketTrends(ctx)
		if err != nil {
			a.logger.Warn("agents", "Market backdrop unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			backdrop = summarizeTrends(trends)
		}
	}

	results := a.retrieve("economic news impact market sentiment financial events")
	background := retrieval.BuildContext(results, contextTokenBudget)

	prompt := fmt.Sprintf(newsPrompt, query, topicsLine, backdrop)
	return a.generate(ctx, prompt, background)
}
