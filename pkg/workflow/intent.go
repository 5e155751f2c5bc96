package workflow

import "strings"

// DefaultIntent handles any query no trigger matches.
const DefaultIntent = IntentFinanceQA

// IntentPriority is the fixed category order for detection. It doubles
// as the tie-break: when a query carries triggers from several
// categories, the first category in this list wins. Changing this order
// changes routing behavior, which is why tests pin it.
var IntentPriority = []Intent{
	IntentFinanceQA,
	IntentPortfolioAnalysis,
	IntentMarketAnalysis,
	IntentGoalPlanning,
	IntentNewsSynthesizer,
	IntentTaxEducation,
}

// IntentDetector classifies free-text queries against a static keyword
// table. Detection is a pure function of the query text: no state is
// mutated, and equal queries always yield equal intents.
type IntentDetector struct {
	keywords map[Intent][]string
}

func NewIntentDetector() *IntentDetector {
	return &IntentDetector{
		keywords: map[Intent][]string{
			IntentFinanceQA: {
				"explain", "what is", "how does", "teach", "learn", "understand",
				"definition", "concept", "meaning", "question", "tell me",
			},
			IntentPortfolioAnalysis: {
				"portfolio", "holdings", "investment", "analyze", "review",
				"diversification", "allocation", "rebalance", "performance",
			},
			IntentMarketAnalysis: {
				"market", "stock", "trend", "index", "economic", "outlook",
				"analysis", "sentiment", "news",
			},
			IntentGoalPlanning: {
				"goal", "plan", "save", "retire", "target", "timeline",
				"objective", "strategy", "how much",
			},
			IntentNewsSynthesizer: {
				"news", "event", "impact", "development", "headlines",
				"current", "recent", "summary",
			},
			IntentTaxEducation: {
				"tax", "401k", "ira", "roth", "account", "contribution",
				"deduction", "form", "filing",
			},
		},
	}
}

// DetectIntent returns the first category in IntentPriority whose
// trigger substrings occur in the lower-cased query, or DefaultIntent
// when nothing matches.
func (d *IntentDetector) DetectIntent(query string) Intent {
	queryLower := strings.ToLower(query)

	for _, intent := range IntentPriority {
		for _, keyword := range d.keywords[intent] {
			if strings.Contains(queryLower, keyword) {
				return intent
			}
		}
	}

	return DefaultIntent
}

// ExtractContextHints flags auxiliary state the responder may need.
// Hints are independent of intent detection and of each other.
func (d *IntentDetector) ExtractContextHints(query string) map[string]bool {
	hints := make(map[string]bool)
	queryLower := strings.ToLower(query)

	if containsAny(queryLower, "hold", "own", "portfolio", "position") {
		hints["needs_holdings"] = true
	}
	if containsAny(queryLower, "goal", "save", "retire", "target") {
		hints["needs_goals"] = true
	}
	if containsAny(queryLower, "risk", "conservative", "aggressive", "tolerance") {
		hints["needs_risk_profile"] = true
	}

	return hints
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
