package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"ai-finance-assistant-be/internal/pkg/logger"
)

// Store holds the in-memory knowledge base. Documents keep their
// insertion order and are never removed or mutated after Add.
type Store struct {
	mu        sync.RWMutex
	documents []Document
	basePath  string
	logger    logger.ILogger
}

// NewStore creates an empty store backed by a directory of JSON files.
func NewStore(basePath string, log logger.ILogger) *Store {
	return &Store{
		basePath: basePath,
		logger:   log,
	}
}

// Load reads every *.json file under the backing directory and appends
// its documents to the store. Each file holds either a single document
// object or an array of documents; unknown fields are ignored. A file
// that fails to parse is skipped with a warning and does not abort the
// rest of the load.
func (s *Store) Load() (int, error) {
	files, err := filepath.Glob(filepath.Join(s.basePath, "*.json"))
	if err != nil {
		return 0, fmt.Errorf("scan knowledge base dir: %w", err)
	}

	loaded := 0
	for _, file := range files {
		docs, err := parseDocumentFile(file)
		if err != nil {
			s.logger.Warn("knowledge", "Skipping unparsable knowledge file", map[string]interface{}{
				"file":  file,
				"error": err.Error(),
			})
			continue
		}

		s.mu.Lock()
		s.documents = append(s.documents, docs...)
		s.mu.Unlock()
		loaded += len(docs)
	}

	s.logger.Info("knowledge", "Knowledge base loaded", map[string]interface{}{
		"files":     len(files),
		"documents": loaded,
	})

	return loaded, nil
}

func parseDocumentFile(path string) ([]Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	// A file carries either one document or an array of documents.
	var many []Document
	if err := json.Unmarshal(raw, &many); err == nil {
		return many, nil
	}

	var one Document
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return []Document{one}, nil
}

// Add appends a single document. Used for runtime-injected content.
func (s *Store) Add(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents = append(s.documents, doc)
}

// All returns the documents in insertion order.
func (s *Store) All() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, len(s.documents))
	copy(out, s.documents)
	return out
}

// Len reports the number of documents held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.documents)
}

// ByCategory returns documents whose category matches (case-insensitive),
// in insertion order.
func (s *Store) ByCategory(category string) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Document
	for _, doc := range s.documents {
		if strings.EqualFold(doc.Category, category) {
			out = append(out, doc)
		}
	}
	return out
}

// ByTag returns documents carrying the tag (case-insensitive exact
// match), in insertion order.
func (s *Store) ByTag(tag string) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Document
	for _, doc := range s.documents {
		for _, t := range doc.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, doc)
				break
			}
		}
	}
	return out
}
