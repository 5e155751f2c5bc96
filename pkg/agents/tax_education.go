package agents

import (
	"context"
	"fmt"

	"ai-finance-assistant-be/internal/pkg/logger"
	"ai-finance-assistant-be/pkg/llm"
	"ai-finance-assistant-be/pkg/retrieval"
	"ai-finance-assistant-be/pkg/workflow"
)

const taxPrompt = `You are a tax education expert. Provide clear explanations about taxes and investment accounts:

Query: %s

Education Guidelines:
- Explain tax concepts in simple language
- Compare different account types
- Discuss tax-advantaged strategies
- Mention contribution limits (if applicable)
- Discuss withdrawal rules
- Include important disclaimers
- Note that this is educational only, not tax advice
- Recommend consulting a tax professional for specific situations

Provide helpful tax education.`

// taxDisclaimer is always appended, even when the model already included
// its own wording.
const taxDisclaimer = "\n\nDISCLAIMER: This is educational information only and not tax advice. Please consult a qualified tax professional for your specific situation."

// TaxEducation explains tax concepts and account types. Strictly
// educational; every reply carries the disclaimer.
type TaxEducation struct {
	base
}

var _ workflow.Responder = &TaxEducation{}

func NewTaxEducation(retriever *retrieval.Retriever, provider llm.LLMProvider, log logger.ILogger) *TaxEducation {
	return &TaxEducation{base{
		name:      "tax_education",
		retriever: retriever,
		llm:       provider,
		logger:    log,
	}}
}

func (a *TaxEducation) Process(ctx context.Context, query string, _ map[string]interface{}) (string, error) {
	results := a.retrieve("taxes tax-advantaged accounts 401k IRA Roth traditional HSA")
	background := retrieval.BuildContext(results, contextTokenBudget)

	response, err := a.generate(ctx, fmt.Sprintf(taxPrompt, query), background)
	if err != nil {
		return "", err
	}
	return retrieval.FormatWithSources(response, results) + taxDisclaimer, nil
}
