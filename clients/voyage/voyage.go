// Package voyage generates text embeddings through the Voyage AI API.
package voyage

import (
	"context"
	"fmt"

	"github.com/austinfhunter/voyageai"
)

// EmbeddingDimensions is the output dimension requested from the model.
const EmbeddingDimensions = 1024

// EmbeddingModel is the Voyage model used for all embeddings.
const EmbeddingModel = "voyage-3.5-lite"

// EmbeddingType distinguishes document embeddings (index side) from query
// embeddings (search side).
type EmbeddingType string

const (
	EmbeddingTypeDocument EmbeddingType = "document"
	EmbeddingTypeQuery    EmbeddingType = "query"
	EmbeddingTypeDefault  EmbeddingType = ""
)

// EmbeddingService generates embeddings for text.
type EmbeddingService struct {
	client     *voyageai.VoyageClient
	dimensions int
	model      string
}

// NewEmbeddingService creates an embedding service with its own client.
func NewEmbeddingService(apiKey string) *EmbeddingService {
	return &EmbeddingService{
		client: voyageai.NewClient(&voyageai.VoyageClientOpts{
			Key: apiKey,
		}),
		dimensions: EmbeddingDimensions,
		model:      EmbeddingModel,
	}
}

// GenerateEmbedding generates an embedding for a single text.
func (es *EmbeddingService) GenerateEmbedding(ctx context.Context, text string, embeddingType EmbeddingType) ([]float32, error) {
	embeddings, err := es.GenerateEmbeddings(ctx, []string{text}, embeddingType)
	if err != nil {
		return nil, err
	}
	return embeddings[0].Embedding, nil
}

// GenerateEmbeddings generates embeddings for multiple texts in one call.
func (es *EmbeddingService) GenerateEmbeddings(ctx context.Context, texts []string, embeddingType EmbeddingType) ([]voyageai.EmbeddingObject, error) {
	dimensions := es.dimensions
	inputType := parseEmbeddingType(embeddingType)

	embeddings, err := es.client.Embed(
		texts,
		es.model,
		&voyageai.EmbeddingRequestOpts{
			InputType:       inputType,
			OutputDimension: &dimensions,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("could not get embeddings: %w", err)
	}

	if len(embeddings.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embeddings.Data))
	}

	return embeddings.Data, nil
}

func parseEmbeddingType(embeddingType EmbeddingType) *string {
	if embeddingType != EmbeddingTypeDefault {
		value := string(embeddingType)
		return &value
	}
	return nil
}
