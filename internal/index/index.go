package index

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/converse-core/internal/core/domain"
	"github.com/custodia-labs/converse-core/internal/core/ports/driven"
)

// Index is an in-memory semantic search structure over one tenant's text
// units. It is immutable after Build: rebuilding means replacing the whole
// instance. The embedder used at build time is kept so queries use the same
// vector space, which keeps scores comparable across calls on one instance.
type Index struct {
	embedder driven.EmbeddingService
	units    []domain.TextUnit
	vectors  [][]float32
}

// Build embeds every unit and returns a searchable index.
// An empty corpus or a failing embedding call yields an error, never a
// partially built index.
func Build(ctx context.Context, embedder driven.EmbeddingService, units []domain.TextUnit) (*Index, error) {
	if embedder == nil {
		return nil, domain.ErrServiceUnavailable
	}
	if len(units) == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	texts := make([]string, len(units))
	for i, u := range units {
		texts[i] = u.Content
	}

	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed corpus: %w", err)
	}
	if len(vectors) != len(units) {
		return nil, fmt.Errorf("embedding count mismatch: %d units, %d vectors", len(units), len(vectors))
	}

	owned := make([]domain.TextUnit, len(units))
	copy(owned, units)

	return &Index{
		embedder: embedder,
		units:    owned,
		vectors:  vectors,
	}, nil
}

// Search returns up to k units ordered by descending cosine similarity to
// the query. Fewer than k results means the corpus is smaller than k.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]domain.ScoredUnit, error) {
	if k < 1 {
		return nil, nil
	}

	qv, err := ix.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits := make([]domain.ScoredUnit, len(ix.units))
	for i, u := range ix.units {
		hits[i] = domain.ScoredUnit{
			Unit:  u,
			Score: cosineSimilarity(qv, ix.vectors[i]),
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of units in the index.
func (ix *Index) Len() int {
	return len(ix.units)
}

// cosineSimilarity returns the cosine of the angle between a and b.
// Mismatched or zero-magnitude vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
