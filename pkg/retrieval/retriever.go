package retrieval

import (
	"fmt"
	"strings"

	"ai-finance-assistant-be/internal/pkg/logger"
	"ai-finance-assistant-be/pkg/embedding"
	"ai-finance-assistant-be/pkg/knowledge"
)

// SentinelScore marks results that were not produced by similarity
// search (fallback retrieval and category filtering). Sentinel-scored
// and distance-scored results are never mixed in one ranked list.
const SentinelScore = 0.0

// Result pairs a document with its relevance score. For similarity
// results the score is an L2 distance (lower = more relevant); for
// fallback results it is SentinelScore.
type Result struct {
	Document knowledge.Document
	Score    float64
}

// Retriever answers top-k document queries over a knowledge store.
// The strategy is probed once at construction: if the embedding backend
// can index the corpus the retriever ranks by vector distance, otherwise
// it degrades to returning documents in store order.
type Retriever struct {
	store    *knowledge.Store
	provider embedding.EmbeddingProvider
	index    *vectorIndex
	indexed  []knowledge.Document
	logger   logger.ILogger
}

// NewRetriever builds a retriever over store. Passing a nil provider
// selects the fallback strategy outright; an indexing failure also
// degrades to fallback (logged once, never surfaced to the caller).
func NewRetriever(store *knowledge.Store, provider embedding.EmbeddingProvider, log logger.ILogger) *Retriever {
	r := &Retriever{
		store:  store,
		logger: log,
	}

	if provider == nil {
		log.Warn("retrieval", "No embedding backend configured, using fallback retrieval", nil)
		return r
	}

	index, docs, err := buildIndex(store, provider)
	if err != nil {
		log.Warn("retrieval", "Embedding backend unavailable, using fallback retrieval", map[string]interface{}{
			"error": err.Error(),
		})
		return r
	}

	r.provider = provider
	r.index = index
	r.indexed = docs
	log.Info("retrieval", "Similarity index built", map[string]interface{}{
		"documents": len(docs),
	})
	return r
}

func buildIndex(store *knowledge.Store, provider embedding.EmbeddingProvider) (*vectorIndex, []knowledge.Document, error) {
	docs := store.All()
	vectors := make([][]float32, 0, len(docs))
	for _, doc := range docs {
		resp, err := provider.Generate(doc.Content, embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, nil, fmt.Errorf("embed document %s: %w", doc.ID, err)
		}
		vectors = append(vectors, resp.Embedding.Values)
	}

	index, err := newVectorIndex(vectors)
	if err != nil {
		return nil, nil, err
	}
	return index, docs, nil
}

// HasSimilarity reports whether the similarity strategy was selected at
// construction.
func (r *Retriever) HasSimilarity() bool {
	return r.index != nil
}

// Retrieve returns the top-k documents for the query. Under the
// similarity strategy results are ordered by ascending distance; under
// fallback they are the first k store documents, sentinel-scored. A
// similarity search failure degrades to fallback for that call only.
func (r *Retriever) Retrieve(query string, topK int) []Result {
	if !r.HasSimilarity() {
		return r.fallback(topK)
	}

	results, err := r.similaritySearch(query, topK)
	if err != nil {
		r.logger.Warn("retrieval", "Similarity search failed, falling back for this call", map[string]interface{}{
			"error": err.Error(),
		})
		return r.fallback(topK)
	}
	return results
}

func (r *Retriever) similaritySearch(query string, topK int) ([]Result, error) {
	if len(r.indexed) == 0 {
		return []Result{}, nil
	}

	resp, err := r.provider.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	if topK > len(r.indexed) {
		topK = len(r.indexed)
	}
	hits, err := r.index.search(resp.Embedding.Values, topK)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}

	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		results = append(results, Result{
			Document: r.indexed[hit.position],
			Score:    hit.distance,
		})
	}
	return results, nil
}

func (r *Retriever) fallback(topK int) []Result {
	docs := r.store.All()
	if topK > len(docs) {
		topK = len(docs)
	}

	results := make([]Result, 0, topK)
	for _, doc := range docs[:topK] {
		results = append(results, Result{Document: doc, Score: SentinelScore})
	}
	return results
}

// RetrieveByCategory restricts candidates to one category and matches the
// query as a case-insensitive substring of title or body. This is a
// cheap secondary mode independent of the primary strategy; results are
// sentinel-scored and kept in store order.
func (r *Retriever) RetrieveByCategory(query, category string, topK int) []Result {
	categoryDocs := r.store.ByCategory(category)
	if len(categoryDocs) == 0 {
		return []Result{}
	}

	queryLower := strings.ToLower(query)
	var results []Result
	for _, doc := range categoryDocs {
		if len(results) >= topK {
			break
		}
		if strings.Contains(strings.ToLower(doc.Content), queryLower) ||
			strings.Contains(strings.ToLower(doc.Title), queryLower) {
			results = append(results, Result{Document: doc, Score: SentinelScore})
		}
	}
	return results
}
