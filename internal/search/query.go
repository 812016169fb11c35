package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/reelhouse/reelhouse-server/internal/normalize"
)

// pageSize is how many hits MatchIDs pulls per round trip.
const pageSize = 1000

// buildQuery matches the text against title (boosted) and description, with
// fuzzy and prefix matching on the title for single-word queries.
func buildQuery(text string) query.Query {
	titleMatch := bleve.NewMatchQuery(text)
	titleMatch.SetField("title")
	titleMatch.SetBoost(3.0)

	descMatch := bleve.NewMatchQuery(text)
	descMatch.SetField("description")

	queries := []query.Query{titleMatch, descMatch}

	if !strings.Contains(text, " ") {
		fuzzy := bleve.NewFuzzyQuery(text)
		fuzzy.SetFuzziness(1)
		fuzzy.SetField("title")
		fuzzy.SetBoost(0.8)
		queries = append(queries, fuzzy)

		if len(text) >= 3 {
			prefix := bleve.NewPrefixQuery(text)
			prefix.SetField("title")
			prefix.SetBoost(0.5)
			queries = append(queries, prefix)
		}
	}

	return bleve.NewDisjunctionQuery(queries...)
}

// MatchIDs returns the IDs of every video matching text, best match first.
// The result is never nil, so an empty result restricts a feed to nothing.
func (s *SearchIndex) MatchIDs(ctx context.Context, text string) ([]string, error) {
	text = strings.ToLower(normalize.Query(text))
	ids := make([]string, 0)
	if text == "" {
		return ids, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	q := buildQuery(text)
	for from := 0; ; from += pageSize {
		req := bleve.NewSearchRequestOptions(q, pageSize, from, false)
		res, err := s.index.SearchInContext(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", text, err)
		}
		for _, hit := range res.Hits {
			ids = append(ids, hit.ID)
		}
		if len(res.Hits) < pageSize {
			break
		}
	}
	return ids, nil
}
