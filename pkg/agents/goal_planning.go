package agents

import (
	"context"
	"fmt"
	"strings"

	"ai-finance-assistant-be/internal/pkg/logger"
	"ai-finance-assistant-be/pkg/llm"
	"ai-finance-assistant-be/pkg/retrieval"
	"ai-finance-assistant-be/pkg/workflow"
)

const goalPlanningPrompt = `You are a financial goal planning advisor. Help the user plan their financial goals:

User Query: %s

Goal Parameters:
%s

Planning Guidelines:
- Consider the user's risk tolerance
- Suggest appropriate time horizons
- Mention diversification strategies
- Include emergency fund recommendations
- Discuss regular contribution importance
- Tailor advice to their situation
- Always include risk disclaimers

Provide a thoughtful goal planning response.`

// GoalPlanning helps users set and plan financial goals, feeding any
// goals already recorded on the session into the prompt.
type GoalPlanning struct {
	base
}

var _ workflow.Responder = &GoalPlanning{}

func NewGoalPlanning(retriever *retrieval.Retriever, provider llm.LLMProvider, log logger.ILogger) *GoalPlanning {
	return &GoalPlanning{base{
		name:      "goal_planning",
		retriever: retriever,
		llm:       provider,
		logger:    log,
	}}
}

func (a *GoalPlanning) Process(ctx context.Context, query string, callContext map[string]interface{}) (string, error) {
	goals := goalsFromContext(callContext)

	results := a.retrieve("goal setting financial planning retirement investment strategy")
	background := retrieval.BuildContext(results, contextTokenBudget)

	prompt := fmt.Sprintf(goalPlanningPrompt, query, formatGoalParams(goals))
	return a.generate(ctx, prompt, background)
}

func formatGoalParams(goals []workflow.Goal) string {
	if len(goals) == 0 {
		return "No specific parameters provided"
	}

	var b strings.Builder
	for _, goal := range goals {
		fmt.Fprintf(&b, "- %s", goal.Name)
		if goal.TargetAmount > 0 {
			fmt.Fprintf(&b, ", target $%.2f", goal.TargetAmount)
		}
		if goal.Deadline != "" {
			fmt.Fprintf(&b, ", by %s", goal.Deadline)
		}
		if goal.Notes != "" {
			fmt.Fprintf(&b, " (%s)", goal.Notes)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
