package search

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// SearchIndex wraps a Bleve index of videos.
//
// All public methods are safe for concurrent use. The mutex guards the index
// handle across Rebuild.
type SearchIndex struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the search index.
type Options struct {
	DataPath string       // Directory for index storage
	Logger   *slog.Logger // Uses a stderr text logger if nil
}

// mappingVersion is bumped whenever buildIndexMapping changes; a mismatch
// on startup drops the index so it can be rebuilt.
const mappingVersion = "1"

// NewSearchIndex creates or opens a search index. A corrupted or outdated
// index is removed and recreated empty; Rebuilt reports that so the caller
// can reindex from the store.
func NewSearchIndex(opts Options) (*SearchIndex, bool, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	if err := os.MkdirAll(opts.DataPath, 0o750); err != nil {
		return nil, false, fmt.Errorf("create search dir: %w", err)
	}
	indexPath := filepath.Join(opts.DataPath, "videos.bleve")
	versionPath := filepath.Join(opts.DataPath, "videos.version")

	var (
		index   bleve.Index
		err     error
		created bool
	)

	if _, statErr := os.Stat(indexPath); statErr == nil {
		existing, readErr := os.ReadFile(versionPath)
		switch {
		case readErr != nil || string(existing) != mappingVersion:
			logger.Info("search index mapping version changed, will rebuild",
				"old_version", string(existing),
				"new_version", mappingVersion,
			)
		default:
			index, err = bleve.Open(indexPath)
			if err != nil {
				logger.Warn("failed to open existing index, will recreate", "path", indexPath, "error", err)
				index = nil
			}
		}
		if index == nil {
			if err := os.RemoveAll(indexPath); err != nil {
				return nil, false, fmt.Errorf("remove old index: %w", err)
			}
		}
	}

	if index == nil {
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, false, fmt.Errorf("create index: %w", err)
		}
		if err := os.WriteFile(versionPath, []byte(mappingVersion), 0o600); err != nil {
			logger.Warn("failed to write search version file", "error", err)
		}
		created = true
		logger.Info("created new search index", "path", indexPath, "mapping_version", mappingVersion)
	} else {
		logger.Info("opened existing search index", "path", indexPath)
	}

	return &SearchIndex{index: index, path: indexPath, logger: logger}, created, nil
}

// Close closes the index and releases resources.
func (s *SearchIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexVideo adds or replaces one video document.
func (s *SearchIndex) IndexVideo(doc *VideoDocument) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Index(doc.ID, doc.ToMap())
}

// IndexVideos indexes documents in batches of 500.
func (s *SearchIndex) IndexVideos(docs []*VideoDocument) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const batchSize = 500
	for i := 0; i < len(docs); i += batchSize {
		end := min(i+batchSize, len(docs))
		batch := s.index.NewBatch()
		for _, doc := range docs[i:end] {
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}
	return nil
}

// DeleteVideo removes a video document.
func (s *SearchIndex) DeleteVideo(id string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(id)
}

// DocumentCount returns the total number of indexed documents.
func (s *SearchIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild drops the index and replaces it with one holding exactly docs.
// It blocks every other index operation while it runs.
func (s *SearchIndex) Rebuild(docs []*VideoDocument) error {
	s.mu.Lock()
	if err := s.index.Close(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("close index: %w", err)
	}
	if err := os.RemoveAll(s.path); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("remove index: %w", err)
	}
	index, err := bleve.New(s.path, buildIndexMapping())
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("create index: %w", err)
	}
	s.index = index
	s.mu.Unlock()

	if err := s.IndexVideos(docs); err != nil {
		return err
	}
	s.logger.Info("rebuilt search index", "path", s.path, "documents", len(docs))
	return nil
}
