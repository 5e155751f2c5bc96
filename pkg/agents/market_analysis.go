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

const marketPrompt = `You are a market analyst. Provide insights on current market conditions:

Current Market Status:
%s

User Query: %s

Analysis Guidelines:
- Explain current market conditions in simple terms
- Discuss major market drivers
- Mention relevant economic indicators
- Avoid making specific stock predictions
- Include appropriate disclaimers
- Contextualize short-term volatility with long-term trends

Provide balanced market analysis.`

// MarketAnalysis discusses current market conditions, seeded with live
// index snapshots when a market backend is available.
type MarketAnalysis struct {
	base
	market market.Provider
}

var _ workflow.Responder = &MarketAnalysis{}

func NewMarketAnalysis(retriever *retrieval.Retriever, provider llm.LLMProvider, marketProvider market.Provider, log logger.ILogger) *MarketAnalysis {
	return &MarketAnalysis{
		base: base{
			name:      "market_analysis",
			retriever: retriever,
			llm:       provider,
			logger:    log,
		},
		market: marketProvider,
	}
}

func (a *MarketAnalysis) Process(ctx context.Context, query string, _ map[string]interface{}) (string, error) {
	marketSummary := "Market data currently unavailable"
	if a.market != nil {
		trends, err := a.market.GetMarketTrends(ctx)
		if err != nil {
			a.logger.Warn("agents", "Market trends unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			marketSummary = summarizeTrends(trends)
		}
	}

	results := a.retrieve("market trends technical analysis economic indicators")
	background := retrieval.BuildContext(results, contextTokenBudget)

	prompt := fmt.Sprintf(marketPrompt, marketSummary, query)
	return a.generate(ctx, prompt, background)
}

func summarizeTrends(trends []market.Trend) string {
	if len(trends) == 0 {
		return "Market indices data not currently available"
	}

	var b strings.Builder
	b.WriteString("Market Indices:\n")
	for _, trend := range trends {
		direction := "up"
		if trend.ChangePercent < 0 {
			direction = "down"
		}
		fmt.Fprintf(&b, "- %s: %.2f (%+.2f%%, %s)\n", trend.Index, trend.Value, trend.ChangePercent, direction)
	}
	return b.String()
}
