package agents

import (
	"context"
	"fmt"

	"ai-finance-assistant-be/internal/pkg/logger"
	"ai-finance-assistant-be/pkg/llm"
	"ai-finance-assistant-be/pkg/retrieval"
	"ai-finance-assistant-be/pkg/workflow"
)

const financeQAPrompt = `You are a financial education expert. Provide clear, jargon-free explanations of financial concepts.

Query: %s

Guidelines:
- Explain concepts in simple terms
- Use examples when helpful
- Avoid recommending specific investments
- Include risk disclaimers where appropriate
- Cite your sources

Please provide a helpful and educational response.`

// FinanceQA answers general financial education questions, grounded on
// knowledge base articles and cited back to them.
type FinanceQA struct {
	base
}

var _ workflow.Responder = &FinanceQA{}

func NewFinanceQA(retriever *retrieval.Retriever, provider llm.LLMProvider, log logger.ILogger) *FinanceQA {
	return &FinanceQA{base{
		name:      "finance_qa",
		retriever: retriever,
		llm:       provider,
		logger:    log,
	}}
}

func (a *FinanceQA) Process(ctx context.Context, query string, _ map[string]interface{}) (string, error) {
	results := a.retrieve(query)
	background := retrieval.BuildContext(results, contextTokenBudget)

	response, err := a.generate(ctx, fmt.Sprintf(financeQAPrompt, query), background)
	if err != nil {
		return "", err
	}
	return retrieval.FormatWithSources(response, results), nil
}
