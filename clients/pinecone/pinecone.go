// Package pinecone wraps the official Pinecone SDK with the small surface the
// suggester needs: search, upsert and index stats.
package pinecone

import (
	"context"
	"fmt"

	"github.com/pinecone-io/go-pinecone/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

// NewService creates a Pinecone service from an API key.
func NewService(apiKey string) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("pinecone API key must not be empty")
	}

	client, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pinecone client: %w", err)
	}

	return &Service{client: client}, nil
}

// ForIndex connects to the index at the given host, scoped to a namespace.
func (s *Service) ForIndex(host, namespace string) (*IndexOperations, error) {
	if host == "" {
		return nil, fmt.Errorf("pinecone index host must not be empty")
	}

	conn, err := s.client.Index(pinecone.NewIndexConnParams{
		Host:      host,
		Namespace: namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to pinecone index: %w", err)
	}

	return &IndexOperations{index: conn}, nil
}

// Search performs a vector similarity search in the index.
func (idx *IndexOperations) Search(ctx context.Context, queryVector []float32, topK int, filter map[string]any) ([]QueryMatch, error) {
	req := &pinecone.QueryByVectorValuesRequest{
		Vector:          queryVector,
		TopK:            uint32(topK),
		IncludeValues:   false,
		IncludeMetadata: true,
	}

	if filter != nil {
		metadataFilter, err := structpb.NewStruct(filter)
		if err != nil {
			return nil, fmt.Errorf("failed to build metadata filter: %w", err)
		}
		req.MetadataFilter = metadataFilter
	}

	resp, err := idx.index.QueryByVectorValues(ctx, req)
	if err != nil {
		return nil, err
	}

	matches := make([]QueryMatch, len(resp.Matches))
	for i, match := range resp.Matches {
		matches[i] = *match
	}

	return matches, nil
}

// Upsert stores vectors in the index.
func (idx *IndexOperations) Upsert(ctx context.Context, vectors []*Vector) error {
	_, err := idx.index.UpsertVectors(ctx, vectors)
	return err
}

// VectorCount returns the number of vectors currently stored in the index.
func (idx *IndexOperations) VectorCount(ctx context.Context) (uint32, error) {
	stats, err := idx.index.DescribeIndexStats(ctx)
	if err != nil {
		return 0, err
	}
	return stats.TotalVectorCount, nil
}
