package agents

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ai-finance-assistant-be/internal/pkg/logger"
	"ai-finance-assistant-be/pkg/llm"
	"ai-finance-assistant-be/pkg/market"
	"ai-finance-assistant-be/pkg/retrieval"
	"ai-finance-assistant-be/pkg/workflow"
)

const portfolioPrompt = `You are a portfolio analyst. Provide insights on the following portfolio:

Portfolio Summary:
%s

Query: %s

Analysis Guidelines:
- Assess diversification level
- Identify concentration risks
- Suggest improvements based on general principles (not specific recommendations)
- Consider sector allocation
- Mention tax-loss harvesting opportunities
- Always include risk disclaimers

Provide constructive analysis.`

const missingHoldingsReply = "Please provide your portfolio holdings first, for example: AAPL: 10, MSFT: 5."

// PortfolioAnalysis reviews the session's holdings, enriched with live
// quotes when a market backend is available.
type PortfolioAnalysis struct {
	base
	market market.Provider
}

var _ workflow.Responder = &PortfolioAnalysis{}

func NewPortfolioAnalysis(retriever *retrieval.Retriever, provider llm.LLMProvider, marketProvider market.Provider, log logger.ILogger) *PortfolioAnalysis {
	return &PortfolioAnalysis{
		base: base{
			name:      "portfolio_analysis",
			retriever: retriever,
			llm:       provider,
			logger:    log,
		},
		market: marketProvider,
	}
}

func (a *PortfolioAnalysis) Process(ctx context.Context, query string, callContext map[string]interface{}) (string, error) {
	holdings := holdingsFromContext(callContext)
	if len(holdings) == 0 {
		return missingHoldingsReply, nil
	}

	// Live pricing is best-effort; the analysis still runs on bare
	// quantities when the market backend is down.
	var perf *market.PortfolioPerformance
	if a.market != nil {
		var err error
		perf, err = a.market.GetPortfolioPerformance(ctx, holdings)
		if err != nil {
			a.logger.Warn("agents", "Portfolio pricing unavailable", map[string]interface{}{
				"error": err.Error(),
			})
			perf = nil
		}
	}

	results := a.retrieve("portfolio diversification risk management")
	background := retrieval.BuildContext(results, contextTokenBudget)

	prompt := fmt.Sprintf(portfolioPrompt, summarizePortfolio(holdings, perf), query)
	return a.generate(ctx, prompt, background)
}

func summarizePortfolio(holdings map[string]float64, perf *market.PortfolioPerformance) string {
	if perf == nil || len(perf.Holdings) == 0 {
		symbols := make([]string, 0, len(holdings))
		for symbol := range holdings {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)

		parts := make([]string, 0, len(symbols))
		for _, symbol := range symbols {
			parts = append(parts, fmt.Sprintf("%s: %g", symbol, holdings[symbol]))
		}
		return "Holdings: " + strings.Join(parts, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total Portfolio Value: $%.2f\n\nHoldings:\n", perf.TotalValue)
	for _, h := range perf.Holdings {
		fmt.Fprintf(&b, "- %s: %g shares @ $%.2f ($%.2f)\n", h.Symbol, h.Quantity, h.Price, h.Value)
	}
	return b.String()
}
