package suggest

import (
	"context"

	"github.com/tradegate/hs-suggest/internal/money"
)

// SimilaritySource returns the k nearest reference entries to a query,
// nearest-first, each with a distance (lower = more similar).
type SimilaritySource interface {
	Search(ctx context.Context, query string, k int) ([]SearchHit, error)
}

// LexicalScorer scores a query against every corpus document, returning one
// relevance value per document in corpus order (higher = more relevant).
type LexicalScorer interface {
	Score(query string) []float64
}

// OracleClient sends a ranking prompt to a generative-text oracle and returns
// its free-text reply together with the monetary cost of the call.
type OracleClient interface {
	Invoke(ctx context.Context, prompt string) (string, money.USD, error)
}
