package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-finance-assistant-be/internal/pkg/logger"
	"ai-finance-assistant-be/pkg/knowledge"
	"ai-finance-assistant-be/pkg/llm"
	"ai-finance-assistant-be/pkg/market"
	"ai-finance-assistant-be/pkg/retrieval"
	"ai-finance-assistant-be/pkg/workflow"
)

type stubLLM struct {
	reply      string
	err        error
	calls      int
	lastPrompt string
}

func (s *stubLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	s.calls++
	if len(history) > 0 {
		s.lastPrompt = history[len(history)-1].Content
	}
	return s.reply, s.err
}

func (s *stubLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	return s.reply, s.err
}

type stubMarket struct {
	perf   *market.PortfolioPerformance
	trends []market.Trend
	err    error
}

func (s *stubMarket) GetQuote(_ context.Context, _ string) (*market.Quote, error) {
	return nil, market.ErrQuoteNotFound
}

func (s *stubMarket) GetPortfolioPerformance(_ context.Context, _ map[string]float64) (*market.PortfolioPerformance, error) {
	return s.perf, s.err
}

func (s *stubMarket) GetMarketTrends(_ context.Context) ([]market.Trend, error) {
	return s.trends, s.err
}

func newTestRetriever() *retrieval.Retriever {
	store := knowledge.NewStore("", logger.NewNopLogger())
	store.Add(knowledge.Document{
		ID:       "doc-1",
		Title:    "What Is a Stock",
		Content:  "A stock is a share of ownership in a company.",
		Category: "investing_basics",
		Source:   "Investing Basics Guide",
	})
	store.Add(knowledge.Document{
		ID:       "doc-2",
		Title:    "Diversification",
		Content:  "Diversification spreads risk across assets.",
		Category: "investing_basics",
		Source:   "Investing Basics Guide",
	})
	// Nil embedding backend forces the fallback strategy; retrieval is
	// deterministic store order.
	return retrieval.NewRetriever(store, nil, logger.NewNopLogger())
}

func TestFinanceQAGroundsAndCites(t *testing.T) {
	backend := &stubLLM{reply: "A stock is partial ownership."}
	agent := NewFinanceQA(newTestRetriever(), backend, logger.NewNopLogger())

	got, err := agent.Process(context.Background(), "What is a stock?", nil)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if !strings.HasPrefix(got, backend.reply) {
		t.Errorf("response = %q, want it to open with the model reply", got)
	}
	if !strings.Contains(got, "Sources:") {
		t.Errorf("response = %q, want appended citations", got)
	}
	if !strings.Contains(got, "What Is a Stock (Investing Basics Guide)") {
		t.Errorf("response = %q, missing citation line", got)
	}

	if !strings.Contains(backend.lastPrompt, "Context:") {
		t.Error("prompt was not grounded with retrieved context")
	}
	if !strings.Contains(backend.lastPrompt, "What is a stock?") {
		t.Error("prompt does not carry the user query")
	}
}

func TestFinanceQAPropagatesGenerationError(t *testing.T) {
	backend := &stubLLM{err: errors.New("backend down")}
	agent := NewFinanceQA(newTestRetriever(), backend, logger.NewNopLogger())

	if _, err := agent.Process(context.Background(), "What is a bond?", nil); err == nil {
		t.Fatal("Process swallowed the generation error")
	}
}

func TestFinanceQAWithoutRetriever(t *testing.T) {
	backend := &stubLLM{reply: "answer"}
	agent := NewFinanceQA(nil, backend, logger.NewNopLogger())

	got, err := agent.Process(context.Background(), "What is a stock?", nil)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if got != "answer" {
		t.Errorf("response = %q, want bare model reply without citations", got)
	}
	if strings.Contains(backend.lastPrompt, "Context:") {
		t.Error("prompt grounded despite missing retriever")
	}
}

func TestPortfolioAnalysisRequiresHoldings(t *testing.T) {
	backend := &stubLLM{reply: "should not be called"}
	agent := NewPortfolioAnalysis(newTestRetriever(), backend, &stubMarket{}, logger.NewNopLogger())

	got, err := agent.Process(context.Background(), "Analyze my portfolio", map[string]interface{}{})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if got != missingHoldingsReply {
		t.Errorf("response = %q, want holdings request", got)
	}
	if backend.calls != 0 {
		t.Errorf("generation ran %d times without holdings", backend.calls)
	}
}

func TestPortfolioAnalysisUsesLivePricing(t *testing.T) {
	backend := &stubLLM{reply: "analysis"}
	provider := &stubMarket{perf: &market.PortfolioPerformance{
		TotalValue: 2500,
		Holdings: []market.HoldingPerformance{
			{Symbol: "AAPL", Quantity: 10, Price: 200, Value: 2000},
			{Symbol: "MSFT", Quantity: 5, Price: 100, Value: 500},
		},
	}}
	agent := NewPortfolioAnalysis(newTestRetriever(), backend, provider, logger.NewNopLogger())

	callContext := map[string]interface{}{
		workflow.ContextKeyHoldings: map[string]float64{"AAPL": 10, "MSFT": 5},
	}
	if _, err := agent.Process(context.Background(), "How diversified am I?", callContext); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if !strings.Contains(backend.lastPrompt, "Total Portfolio Value: $2500.00") {
		t.Errorf("prompt missing priced summary:\n%s", backend.lastPrompt)
	}
	if !strings.Contains(backend.lastPrompt, "- AAPL: 10 shares @ $200.00 ($2000.00)") {
		t.Errorf("prompt missing holding line:\n%s", backend.lastPrompt)
	}
}

func TestPortfolioAnalysisDegradesWithoutPricing(t *testing.T) {
	backend := &stubLLM{reply: "analysis"}
	provider := &stubMarket{err: errors.New("quote backend down")}
	agent := NewPortfolioAnalysis(newTestRetriever(), backend, provider, logger.NewNopLogger())

	callContext := map[string]interface{}{
		workflow.ContextKeyHoldings: map[string]float64{"MSFT": 5, "AAPL": 10},
	}
	if _, err := agent.Process(context.Background(), "How diversified am I?", callContext); err != nil {
		t.Fatalf("pricing failure must not fail the analysis: %v", err)
	}

	if !strings.Contains(backend.lastPrompt, "Holdings: AAPL: 10, MSFT: 5") {
		t.Errorf("prompt missing bare holdings summary:\n%s", backend.lastPrompt)
	}
}

func TestMarketAnalysisSummarizesTrends(t *testing.T) {
	backend := &stubLLM{reply: "analysis"}
	provider := &stubMarket{trends: []market.Trend{
		{Index: "S&P 500", Value: 6400.50, ChangePercent: 1.25},
		{Index: "NASDAQ", Value: 21000.00, ChangePercent: -0.40},
	}}
	agent := NewMarketAnalysis(newTestRetriever(), backend, provider, logger.NewNopLogger())

	if _, err := agent.Process(context.Background(), "How is the market doing?", nil); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if !strings.Contains(backend.lastPrompt, "- S&P 500: 6400.50 (+1.25%, up)") {
		t.Errorf("prompt missing rising index line:\n%s", backend.lastPrompt)
	}
	if !strings.Contains(backend.lastPrompt, "- NASDAQ: 21000.00 (-0.40%, down)") {
		t.Errorf("prompt missing falling index line:\n%s", backend.lastPrompt)
	}
}

func TestMarketAnalysisWithoutBackend(t *testing.T) {
	backend := &stubLLM{reply: "analysis"}
	agent := NewMarketAnalysis(newTestRetriever(), backend, nil, logger.NewNopLogger())

	if _, err := agent.Process(context.Background(), "How is the market doing?", nil); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if !strings.Contains(backend.lastPrompt, "Market data currently unavailable") {
		t.Errorf("prompt missing unavailability notice:\n%s", backend.lastPrompt)
	}
}

func TestGoalPlanningFormatsSessionGoals(t *testing.T) {
	backend := &stubLLM{reply: "plan"}
	agent := NewGoalPlanning(newTestRetriever(), backend, logger.NewNopLogger())

	callContext := map[string]interface{}{
		workflow.ContextKeyGoals: []workflow.Goal{
			{Name: "house", TargetAmount: 50000, Deadline: "2030"},
			{Name: "retirement", Notes: "prefer index funds"},
		},
	}
	if _, err := agent.Process(context.Background(), "Am I on track?", callContext); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if !strings.Contains(backend.lastPrompt, "- house, target $50000.00, by 2030") {
		t.Errorf("prompt missing goal line:\n%s", backend.lastPrompt)
	}
	if !strings.Contains(backend.lastPrompt, "- retirement (prefer index funds)") {
		t.Errorf("prompt missing notes line:\n%s", backend.lastPrompt)
	}
}

func TestGoalPlanningWithoutGoals(t *testing.T) {
	backend := &stubLLM{reply: "plan"}
	agent := NewGoalPlanning(newTestRetriever(), backend, logger.NewNopLogger())

	if _, err := agent.Process(context.Background(), "Help me plan", nil); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if !strings.Contains(backend.lastPrompt, "No specific parameters provided") {
		t.Errorf("prompt missing empty-params notice:\n%s", backend.lastPrompt)
	}
}

func TestNewsSynthesizerTopics(t *testing.T) {
	backend := &stubLLM{reply: "synthesis"}
	agent := NewNewsSynthesizer(newTestRetriever(), backend, &stubMarket{}, logger.NewNopLogger())

	callContext := map[string]interface{}{
		ContextKeyTopics: []string{"rates", "tech earnings"},
	}
	if _, err := agent.Process(context.Background(), "What happened this week?", callContext); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if !strings.Contains(backend.lastPrompt, "Topics of Interest: rates, tech earnings") {
		t.Errorf("prompt missing topics line:\n%s", backend.lastPrompt)
	}

	if _, err := agent.Process(context.Background(), "What happened this week?", nil); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if !strings.Contains(backend.lastPrompt, "Topics of Interest: General market news") {
		t.Errorf("prompt missing default topics line:\n%s", backend.lastPrompt)
	}
}

func TestTaxEducationAlwaysAppendsDisclaimer(t *testing.T) {
	backend := &stubLLM{reply: "A Roth IRA is funded with after-tax dollars."}
	agent := NewTaxEducation(newTestRetriever(), backend, logger.NewNopLogger())

	got, err := agent.Process(context.Background(), "What is a Roth IRA?", nil)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if !strings.HasSuffix(got, taxDisclaimer) {
		t.Errorf("response = %q, want trailing disclaimer", got)
	}
	if !strings.Contains(got, backend.reply) {
		t.Errorf("response = %q, missing model reply", got)
	}
}
