// Package indexer bootstraps the Pinecone index from the reference knowledge
// base. Vector metadata carries the doc_id (corpus position) that the engine
// uses to join vector matches with lexical scores, so the indexer must be fed
// the same ordered corpus the lexical index is built from.
package indexer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/austinfhunter/voyageai"
	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"

	suggest "github.com/tradegate/hs-suggest"
	"github.com/tradegate/hs-suggest/clients/pinecone"
	"github.com/tradegate/hs-suggest/clients/voyage"
)

// Indexer writes reference entries into a vector index.
type Indexer struct {
	embedder interface {
		GenerateEmbeddings(ctx context.Context, texts []string, embeddingType voyage.EmbeddingType) ([]voyageai.EmbeddingObject, error)
	}
	index interface {
		Upsert(ctx context.Context, vectors []*pinecone.Vector) error
		VectorCount(ctx context.Context) (uint32, error)
	}
}

// New creates an Indexer from an embedding service and a connected index.
func New(embedder *voyage.EmbeddingService, index *pinecone.IndexOperations) *Indexer {
	return &Indexer{
		embedder: embedder,
		index:    index,
	}
}

// EnsureBuilt builds the index from the entries if it is empty, and is a
// no-op otherwise.
func (ix *Indexer) EnsureBuilt(ctx context.Context, entries []suggest.ReferenceEntry) error {
	count, err := ix.index.VectorCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to read index stats: %w", err)
	}

	slog.Info("vector index stats", "count", count)
	if count > 0 {
		return nil
	}

	slog.Info("building vector index from knowledge base", "entries", len(entries))
	return ix.Build(ctx, entries)
}

// Build embeds every entry and upserts it with its corpus position as doc_id.
func (ix *Indexer) Build(ctx context.Context, entries []suggest.ReferenceEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("cannot build index from an empty knowledge base")
	}

	texts := make([]string, len(entries))
	for i, entry := range entries {
		texts[i] = entry.Description + " , " + entry.Category
	}

	embeddings, err := ix.embedder.GenerateEmbeddings(ctx, texts, voyage.EmbeddingTypeDocument)
	if err != nil {
		return fmt.Errorf("failed to embed knowledge base: %w", err)
	}

	vectors := make([]*pinecone.Vector, len(entries))
	for i, entry := range entries {
		metadata, err := structpb.NewStruct(map[string]any{
			"content":         texts[i],
			"hs_code":         entry.HSCode,
			"category":        entry.Category,
			"raw_description": entry.Description,
			"doc_id":          i,
		})
		if err != nil {
			return fmt.Errorf("failed to build metadata for doc %d: %w", i, err)
		}

		vectors[i] = &pinecone.Vector{
			Id:       uuid.New().String(),
			Values:   embeddings[i].Embedding,
			Metadata: metadata,
		}
	}

	if err := ix.index.Upsert(ctx, vectors); err != nil {
		return fmt.Errorf("failed to upsert knowledge base vectors: %w", err)
	}

	return nil
}
