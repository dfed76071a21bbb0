// Package adapters bridges the raw API clients to the interfaces the engine
// consumes.
package adapters

import (
	"context"
	"fmt"

	suggest "github.com/tradegate/hs-suggest"
	"github.com/tradegate/hs-suggest/clients/gemini"
	"github.com/tradegate/hs-suggest/clients/pinecone"
	"github.com/tradegate/hs-suggest/clients/voyage"
)

// The gemini client speaks the oracle contract directly.
var _ suggest.OracleClient = (*gemini.GeminiClient)(nil)

// PineconeSimilarity implements suggest.SimilaritySource by embedding the
// query with Voyage and searching a Pinecone index.
type PineconeSimilarity struct {
	embedder interface {
		GenerateEmbedding(ctx context.Context, text string, embeddingType voyage.EmbeddingType) ([]float32, error)
	}
	index interface {
		Search(ctx context.Context, queryVector []float32, topK int, filter map[string]any) ([]pinecone.QueryMatch, error)
	}
}

// NewPineconeSimilarity creates the similarity source from an embedding
// service and a connected index.
func NewPineconeSimilarity(embedder *voyage.EmbeddingService, index *pinecone.IndexOperations) *PineconeSimilarity {
	return &PineconeSimilarity{
		embedder: embedder,
		index:    index,
	}
}

var _ suggest.SimilaritySource = (*PineconeSimilarity)(nil)

// Search implements suggest.SimilaritySource. Pinecone reports cosine
// similarity; the engine expects a distance, so matches are mapped through
// distance = 1 - score (which preserves the nearest-first ordering).
func (a *PineconeSimilarity) Search(ctx context.Context, query string, k int) ([]suggest.SearchHit, error) {
	embedding, err := a.embedder.GenerateEmbedding(ctx, query, voyage.EmbeddingTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := a.index.Search(ctx, embedding, k, nil)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	hits := make([]suggest.SearchHit, 0, len(matches))
	for _, match := range matches {
		if match.Vector == nil || match.Vector.Metadata == nil {
			continue
		}
		md := match.Vector.Metadata.AsMap()

		hit := suggest.SearchHit{
			Distance: 1.0 - float64(match.Score),
			DocID:    -1,
		}
		if content, ok := md["content"].(string); ok {
			hit.Content = content
		}
		if hsCode, ok := md["hs_code"].(string); ok {
			hit.HSCode = hsCode
		}
		if category, ok := md["category"].(string); ok {
			hit.Category = category
		}
		if docID, ok := md["doc_id"].(float64); ok {
			hit.DocID = int(docID)
		}

		hits = append(hits, hit)
	}

	return hits, nil
}
