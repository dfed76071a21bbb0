// Package suggest implements the retrieval-and-confidence pipeline that maps a
// free-text product description to a suggested HS code. Candidates come from a
// vector similarity source, optionally re-ranked with lexical relevance; a
// dominance ratio between the top two candidates decides whether the match is
// trusted, escalated to a generative-text oracle, or routed to manual review.
package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/tradegate/hs-suggest/internal/money"
)

// Engine orchestrates retrieval, scoring and the review decision. It holds no
// mutable state: concurrent Suggest calls are safe as long as the configured
// collaborators support concurrent use.
type Engine struct {
	similarity SimilaritySource
	lexical    LexicalScorer
	oracle     OracleClient
	log        *slog.Logger
}

// NewEngine creates an Engine from the given configuration.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Similarity == nil {
		return nil, fmt.Errorf("suggest: similarity source is required")
	}

	return &Engine{
		similarity: cfg.Similarity,
		lexical:    cfg.Lexical,
		oracle:     cfg.Oracle,
		log:        slog.Default(),
	}, nil
}

// Suggest classifies a product description. Retrieval or oracle transport
// failures surface as errors; every scoring condition (no hits, degenerate
// scores, unparseable oracle output) resolves into a valid Suggestion.
func (e *Engine) Suggest(ctx context.Context, description string, opts Options) (*Suggestion, error) {
	opts.applyDefaults()

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("suggest: cannot classify empty description")
	}

	// Step 1: nearest neighbors from the vector index.
	hits, err := e.similarity.Search(ctx, description, opts.TopK)
	if err != nil {
		return nil, fmt.Errorf("suggest: similarity search failed: %w", err)
	}

	if len(hits) == 0 {
		return &Suggestion{
			SuggestedHSCode: nil,
			Confidence:      0.0,
			ManualReview:    true,
			Cost:            money.Zero(),
			Reason:          "No retrieval hits.",
			Retrieved:       []RetrievedCandidate{},
		}, nil
	}

	retrieved := make([]RetrievedCandidate, len(hits))
	for i, hit := range hits {
		retrieved[i] = RetrievedCandidate{
			Text:     hit.Content,
			HSCode:   hit.HSCode,
			Category: hit.Category,
			DocID:    hit.DocID,
			Distance: hit.Distance,
		}
	}

	// Step 2: attach lexical relevance, joined on doc_id. The lexical index
	// and the vector index are built over the same ordered corpus.
	if e.lexical != nil {
		irScores := e.lexical.Score(description)
		for i := range retrieved {
			if id := retrieved[i].DocID; id >= 0 && id < len(irScores) {
				retrieved[i].IRScore = irScores[id]
			}
		}
	}

	// Step 3: similarity scoring.
	var sims []float64
	if opts.Hybrid {
		for i := range retrieved {
			dense := distanceToSimilarity(retrieved[i].Distance)
			sparse := retrieved[i].IRScore
			retrieved[i].HybridScore = denseWeight*dense + sparseWeight*sparse
		}

		sort.SliceStable(retrieved, func(i, j int) bool {
			return retrieved[i].HybridScore > retrieved[j].HybridScore
		})

		sims = make([]float64, len(retrieved))
		for i := range retrieved {
			sims[i] = retrieved[i].HybridScore
		}
	} else {
		sims = make([]float64, len(retrieved))
		for i := range retrieved {
			sims[i] = distanceToSimilarity(retrieved[i].Distance)
		}
	}

	if len(sims) == 0 {
		return &Suggestion{
			SuggestedHSCode: nil,
			Confidence:      0.0,
			ManualReview:    true,
			Cost:            money.Zero(),
			Reason:          "No similarity scores computed.",
			Retrieved:       retrieved,
		}, nil
	}

	topSim := sims[0]
	secondSim := 0.0
	if len(sims) > 1 {
		secondSim = sims[1]
	}

	// Dominance ratio: how much the best candidate outranks the runner-up.
	// With both scores zero the formula is undefined; fall back to zero
	// confidence so the suggestion routes to manual review.
	confidence := 0.0
	if topSim+secondSim > 0 {
		confidence = topSim / (topSim + secondSim)
	}

	bestHS := retrieved[0].HSCode
	cost := money.Zero()

	// Step 4: consult the oracle only for borderline verdicts, so spend is
	// bounded to ambiguous cases.
	if e.oracle != nil && confidence >= oracleBandLow && confidence <= oracleBandHigh {
		e.log.Info("consulting oracle for borderline confidence",
			"confidence", confidence,
			"candidates", len(retrieved))

		score, oracleCost, err := e.verifyWithOracle(ctx, description, retrieved)
		if err != nil {
			return nil, fmt.Errorf("suggest: oracle invocation failed: %w", err)
		}

		cost = oracleCost
		confidence = min(1.0, confidence+oracleBlendWeight*score)
	}

	if confidence < reviewThreshold {
		return &Suggestion{
			SuggestedHSCode: &bestHS,
			Confidence:      confidence,
			ManualReview:    true,
			Cost:            cost,
			Reason:          fmt.Sprintf("Low dominance confidence (%.2f)", confidence),
			Retrieved:       retrieved,
		}, nil
	}

	return &Suggestion{
		SuggestedHSCode: &bestHS,
		Confidence:      confidence,
		ManualReview:    false,
		Cost:            cost,
		Reason:          "High-confidence match",
		Retrieved:       retrieved,
	}, nil
}

// distanceToSimilarity maps a raw distance into (0, 1]: distance 0 is a
// perfect match, growing distance decays toward zero.
func distanceToSimilarity(d float64) float64 {
	return 1.0 / (1.0 + d)
}
