package retrieval

import (
	"fmt"
	"strings"
)

// BuildContext concatenates formatted document blocks in result order
// under a word budget. Blocks are whole or skipped, never truncated:
// appending stops at the first block that would exceed maxTokens.
// "Tokens" are whitespace-delimited words, a deliberate approximation.
func BuildContext(results []Result, maxTokens int) string {
	var parts []string
	tokenCount := 0

	for _, res := range results {
		doc := res.Document
		block := fmt.Sprintf("Source: %s (%s)\nTitle: %s\n%s\n", doc.Source, doc.Category, doc.Title, doc.Content)
		tokens := len(strings.Fields(block))

		if tokenCount+tokens > maxTokens {
			break
		}

		parts = append(parts, block)
		tokenCount += tokens
	}

	return strings.Join(parts, "\n---\n")
}

// FormatWithSources appends a deduplicated list of "title (source)"
// citation lines to the answer. The answer is returned unchanged when
// there are no results.
func FormatWithSources(answer string, results []Result) string {
	if len(results) == 0 {
		return answer
	}

	seen := make(map[string]bool)
	var sources []string
	for _, res := range results {
		citation := fmt.Sprintf("%s (%s)", res.Document.Title, res.Document.Source)
		if seen[citation] {
			continue
		}
		seen[citation] = true
		sources = append(sources, citation)
	}

	var b strings.Builder
	b.WriteString(answer)
	b.WriteString("\n\nSources:\n")
	for _, source := range sources {
		b.WriteString("- ")
		b.WriteString(source)
		b.WriteString("\n")
	}
	return b.String()
}
