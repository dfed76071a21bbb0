package suggest_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	suggest "github.com/tradegate/hs-suggest"
	"github.com/tradegate/hs-suggest/internal/money"
	"github.com/tradegate/hs-suggest/testutil"
)

func newEngine(t *testing.T, cfg suggest.Config) *suggest.Engine {
	t.Helper()

	engine, err := suggest.NewEngine(cfg)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return engine
}

func TestNewEngine_RequiresSimilaritySource(t *testing.T) {
	_, err := suggest.NewEngine(suggest.Config{})
	if err == nil {
		t.Fatal("Expected error when no similarity source is configured")
	}
}

func TestSuggest_EmptyDescription(t *testing.T) {
	engine := newEngine(t, suggest.Config{Similarity: &testutil.MockSimilaritySource{}})

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := engine.Suggest(context.Background(), text, suggest.Options{}); err == nil {
			t.Errorf("Expected error for description %q", text)
		}
	}
}

func TestSuggest_NoRetrievalHits(t *testing.T) {
	source := &testutil.MockSimilaritySource{
		SearchFunc: func(ctx context.Context, query string, k int) ([]suggest.SearchHit, error) {
			return []suggest.SearchHit{}, nil
		},
	}
	engine := newEngine(t, suggest.Config{Similarity: source})

	s, err := engine.Suggest(context.Background(), "unclassifiable widget", suggest.Options{})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if s.SuggestedHSCode != nil {
		t.Errorf("Expected nil suggested code, got %q", *s.SuggestedHSCode)
	}
	if s.Confidence != 0.0 {
		t.Errorf("Expected confidence 0.0, got %f", s.Confidence)
	}
	if !s.ManualReview {
		t.Error("Expected manual review")
	}
	if s.Reason != "No retrieval hits." {
		t.Errorf("Unexpected reason: %q", s.Reason)
	}
	if len(s.Retrieved) != 0 {
		t.Errorf("Expected empty retrieved list, got %d entries", len(s.Retrieved))
	}
	if s.Cost.String() != "$0" {
		t.Errorf("Expected zero cost, got %s", s.Cost)
	}
}

func TestSuggest_SearchErrorPropagates(t *testing.T) {
	source := &testutil.MockSimilaritySource{
		SearchFunc: func(ctx context.Context, query string, k int) ([]suggest.SearchHit, error) {
			return nil, errors.New("index unreachable")
		},
	}
	engine := newEngine(t, suggest.Config{Similarity: source})

	if _, err := engine.Suggest(context.Background(), "coffee beans", suggest.Options{}); err == nil {
		t.Fatal("Expected error when similarity search fails")
	}
}

func TestSuggest_DefaultTopK(t *testing.T) {
	source := &testutil.MockSimilaritySource{}
	engine := newEngine(t, suggest.Config{Similarity: source})

	if _, err := engine.Suggest(context.Background(), "coffee beans", suggest.Options{}); err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if source.LastK != suggest.DefaultTopK {
		t.Errorf("Expected k=%d, got %d", suggest.DefaultTopK, source.LastK)
	}
}

// TestSuggest_SingleExactMatch covers a one-document corpus returning its only
// entry at distance zero: the dominance ratio has no runner-up, so confidence
// is 1.0 and the match is trusted.
func TestSuggest_SingleExactMatch(t *testing.T) {
	source := &testutil.MockSimilaritySource{
		SearchFunc: func(ctx context.Context, query string, k int) ([]suggest.SearchHit, error) {
			return []suggest.SearchHit{
				{Content: "Arabica coffee, not roasted", HSCode: "0901.11.10", Category: "Coffee", DocID: 0, Distance: 0.0},
			}, nil
		},
	}
	engine := newEngine(t, suggest.Config{Similarity: source})

	s, err := engine.Suggest(context.Background(), "green coffee beans", suggest.Options{})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if s.Confidence != 1.0 {
		t.Errorf("Expected confidence 1.0, got %f", s.Confidence)
	}
	if s.ManualReview {
		t.Error("Expected no manual review")
	}
	if s.Reason != "High-confidence match" {
		t.Errorf("Unexpected reason: %q", s.Reason)
	}
	if s.SuggestedHSCode == nil || *s.SuggestedHSCode != "0901.11.10" {
		t.Errorf("Unexpected suggested code: %v", s.SuggestedHSCode)
	}
}

// TestSuggest_TiedCandidates covers two candidates at identical distance: the
// dominance ratio degenerates to 0.5, which routes to manual review.
func TestSuggest_TiedCandidates(t *testing.T) {
	source := &testutil.MockSimilaritySource{
		SearchFunc: func(ctx context.Context, query string, k int) ([]suggest.SearchHit, error) {
			return []suggest.SearchHit{
				{HSCode: "8507.60.90", Category: "Electronics/Power", DocID: 9, Distance: 0.0},
				{HSCode: "8542.31.00", Category: "Electronics", DocID: 2, Distance: 0.0},
			}, nil
		},
	}
	engine := newEngine(t, suggest.Config{Similarity: source})

	s, err := engine.Suggest(context.Background(), "rechargeable battery pack", suggest.Options{})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if s.Confidence != 0.5 {
		t.Errorf("Expected confidence 0.5, got %f", s.Confidence)
	}
	if !s.ManualReview {
		t.Error("Expected manual review below threshold")
	}
	if !strings.Contains(s.Reason, "Low dominance confidence (0.50)") {
		t.Errorf("Unexpected reason: %q", s.Reason)
	}
}

// TestSuggest_NonHybridDominance covers distances [1.0, 3.0]: sims [0.5, 0.25]
// give a dominance ratio of 2/3, just below the review threshold.
func TestSuggest_NonHybridDominance(t *testing.T) {
	source := &testutil.MockSimilaritySource{
		SearchFunc: func(ctx context.Context, query string, k int) ([]suggest.SearchHit, error) {
			return []suggest.SearchHit{
				{HSCode: "0901.11.10", Category: "Coffee", DocID: 0, Distance: 1.0},
				{HSCode: "0902.10.10", Category: "Tea", DocID: 1, Distance: 3.0},
			}, nil
		},
	}
	engine := newEngine(t, suggest.Config{Similarity: source})

	s, err := engine.Suggest(context.Background(), "roasted beans", suggest.Options{})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	want := 0.5 / (0.5 + 0.25)
	if math.Abs(s.Confidence-want) > 1e-9 {
		t.Errorf("Expected confidence %f, got %f", want, s.Confidence)
	}
	if !s.ManualReview {
		t.Error("Expected manual review for confidence below 0.70")
	}
	if !strings.Contains(s.Reason, "(0.67)") {
		t.Errorf("Unexpected reason: %q", s.Reason)
	}
}

// TestSuggest_HybridReranks covers the hybrid blend promoting a candidate with
// a worse raw distance but much stronger lexical relevance.
func TestSuggest_HybridReranks(t *testing.T) {
	source := &testutil.MockSimilaritySource{
		SearchFunc: func(ctx context.Context, query string, k int) ([]suggest.SearchHit, error) {
			return []suggest.SearchHit{
				{HSCode: "code-B", Category: "B", DocID: 1, Distance: 0.5},
				{HSCode: "code-A", Category: "A", DocID: 0, Distance: 2.0},
			}, nil
		},
	}
	lex := &testutil.MockLexicalScorer{
		ScoreFunc: func(query string) []float64 {
			return []float64{0.9, 0.1}
		},
	}
	engine := newEngine(t, suggest.Config{Similarity: source, Lexical: lex})

	s, err := engine.Suggest(context.Background(), "query text", suggest.Options{Hybrid: true})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	// hybrid(A) = 0.6*(1/3) + 0.4*0.9 = 0.56, hybrid(B) = 0.6*(2/3) + 0.4*0.1 = 0.44
	if s.Retrieved[0].HSCode != "code-A" {
		t.Errorf("Expected code-A ranked first, got %s", s.Retrieved[0].HSCode)
	}
	if s.SuggestedHSCode == nil || *s.SuggestedHSCode != "code-A" {
		t.Errorf("Suggested code should track the re-ranked top candidate, got %v", s.SuggestedHSCode)
	}
	if math.Abs(s.Retrieved[0].HybridScore-0.56) > 1e-9 {
		t.Errorf("Expected hybrid score 0.56, got %f", s.Retrieved[0].HybridScore)
	}
	if math.Abs(s.Retrieved[1].HybridScore-0.44) > 1e-9 {
		t.Errorf("Expected hybrid score 0.44, got %f", s.Retrieved[1].HybridScore)
	}
	if math.Abs(s.Confidence-0.56) > 1e-9 {
		t.Errorf("Expected confidence 0.56, got %f", s.Confidence)
	}
}

// TestSuggest_DegenerateScores covers the undefined corner of the dominance
// formula: both top scores zero must not divide by zero and must route to
// manual review.
func TestSuggest_DegenerateScores(t *testing.T) {
	source := &testutil.MockSimilaritySource{
		SearchFunc: func(ctx context.Context, query string, k int) ([]suggest.SearchHit, error) {
			return []suggest.SearchHit{
				{HSCode: "a", DocID: 0, Distance: math.Inf(1)},
				{HSCode: "b", DocID: 1, Distance: math.Inf(1)},
			}, nil
		},
	}
	engine := newEngine(t, suggest.Config{Similarity: source})

	s, err := engine.Suggest(context.Background(), "anything", suggest.Options{Hybrid: true})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if s.Confidence != 0.0 {
		t.Errorf("Expected confidence 0.0, got %f", s.Confidence)
	}
	if !s.ManualReview {
		t.Error("Expected manual review for degenerate scores")
	}
}

func TestSuggest_LexicalScoresDefaultToZero(t *testing.T) {
	source := &testutil.MockSimilaritySource{
		SearchFunc: func(ctx context.Context, query string, k int) ([]suggest.SearchHit, error) {
			return []suggest.SearchHit{
				{HSCode: "0901.11.10", DocID: 0, Distance: 0.2},
			}, nil
		},
	}
	engine := newEngine(t, suggest.Config{Similarity: source})

	s, err := engine.Suggest(context.Background(), "coffee", suggest.Options{})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if s.Retrieved[0].IRScore != 0.0 {
		t.Errorf("Expected zero ir_score without a lexical index, got %f", s.Retrieved[0].IRScore)
	}
}

func twoCandidateSource(d1, d2 float64) *testutil.MockSimilaritySource {
	return &testutil.MockSimilaritySource{
		SearchFunc: func(ctx context.Context, query string, k int) ([]suggest.SearchHit, error) {
			return []suggest.SearchHit{
				{HSCode: "first", Category: "X", DocID: 0, Distance: d1},
				{HSCode: "second", Category: "Y", DocID: 1, Distance: d2},
			}, nil
		},
	}
}

func TestSuggest_OracleConsultedInsideBandOnly(t *testing.T) {
	tests := []struct {
		name      string
		distances [2]float64
		wantCall  bool
	}{
		// sims [0.5, 0.25] -> confidence 0.667, inside the band
		{name: "borderline confidence", distances: [2]float64{1.0, 3.0}, wantCall: true},
		// sims [1.0, 1.0] -> confidence 0.5, lower band edge is inclusive
		{name: "band lower edge", distances: [2]float64{0.0, 0.0}, wantCall: true},
		// sims [1.0, 0.25] -> confidence 0.8, upper band edge is inclusive
		{name: "band upper edge", distances: [2]float64{0.0, 3.0}, wantCall: true},
		// sims [1.0, 0.1] -> confidence ~0.909, above the band
		{name: "clear winner", distances: [2]float64{0.0, 9.0}, wantCall: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &testutil.MockOracleClient{
				InvokeFunc: func(ctx context.Context, prompt string) (string, money.USD, error) {
					return "0.0", money.Zero(), nil
				},
			}
			engine := newEngine(t, suggest.Config{
				Similarity: twoCandidateSource(tt.distances[0], tt.distances[1]),
				Oracle:     oracle,
			})

			if _, err := engine.Suggest(context.Background(), "some product", suggest.Options{}); err != nil {
				t.Fatalf("Suggest failed: %v", err)
			}

			called := oracle.CallCount > 0
			if called != tt.wantCall {
				t.Errorf("Oracle called=%v, want %v", called, tt.wantCall)
			}
		})
	}
}

func TestSuggest_OracleBlendRaisesConfidence(t *testing.T) {
	oracle := &testutil.MockOracleClient{
		InvokeFunc: func(ctx context.Context, prompt string) (string, money.USD, error) {
			return "The best candidate scores 0.8", money.FromFloat(0.0000123), nil
		},
	}
	engine := newEngine(t, suggest.Config{
		Similarity: twoCandidateSource(1.0, 3.0),
		Oracle:     oracle,
	})

	s, err := engine.Suggest(context.Background(), "borderline product", suggest.Options{})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	preOracle := 0.5 / (0.5 + 0.25)
	want := preOracle + 0.2*0.8
	if math.Abs(s.Confidence-want) > 1e-9 {
		t.Errorf("Expected blended confidence %f, got %f", want, s.Confidence)
	}
	if s.ManualReview {
		t.Error("Expected blended confidence to clear the review threshold")
	}
	if s.Cost.String() != "$0.0000123" {
		t.Errorf("Expected oracle cost to be recorded, got %s", s.Cost)
	}
}

func TestSuggest_OracleNeverLowersConfidence(t *testing.T) {
	tests := []struct {
		name   string
		answer string
	}{
		{name: "zero score", answer: "0.0"},
		{name: "unparseable reply", answer: "I cannot rank these."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &testutil.MockOracleClient{
				InvokeFunc: func(ctx context.Context, prompt string) (string, money.USD, error) {
					return tt.answer, money.Zero(), nil
				},
			}
			engine := newEngine(t, suggest.Config{
				Similarity: twoCandidateSource(1.0, 3.0),
				Oracle:     oracle,
			})

			s, err := engine.Suggest(context.Background(), "borderline product", suggest.Options{})
			if err != nil {
				t.Fatalf("Suggest failed: %v", err)
			}

			preOracle := 0.5 / (0.5 + 0.25)
			if s.Confidence < preOracle-1e-9 {
				t.Errorf("Oracle lowered confidence: pre=%f post=%f", preOracle, s.Confidence)
			}
			if s.Confidence > preOracle+0.2+1e-9 {
				t.Errorf("Oracle raised confidence by more than 0.2: pre=%f post=%f", preOracle, s.Confidence)
			}
		})
	}
}

func TestSuggest_OracleBlendCapsAtOne(t *testing.T) {
	oracle := &testutil.MockOracleClient{
		InvokeFunc: func(ctx context.Context, prompt string) (string, money.USD, error) {
			return "1.0", money.Zero(), nil
		},
	}
	// sims [1.0, 0.25] -> confidence exactly 0.8, blended 0.8 + 0.2 = 1.0
	engine := newEngine(t, suggest.Config{
		Similarity: twoCandidateSource(0.0, 3.0),
		Oracle:     oracle,
	})

	s, err := engine.Suggest(context.Background(), "upper edge product", suggest.Options{})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if s.Confidence != 1.0 {
		t.Errorf("Expected confidence capped at 1.0, got %f", s.Confidence)
	}
}

func TestSuggest_OraclePromptListsTopThreeCandidates(t *testing.T) {
	source := &testutil.MockSimilaritySource{
		SearchFunc: func(ctx context.Context, query string, k int) ([]suggest.SearchHit, error) {
			return []suggest.SearchHit{
				{HSCode: "1111.11.11", Category: "One", DocID: 0, Distance: 1.0},
				{HSCode: "2222.22.22", Category: "Two", DocID: 1, Distance: 3.0},
				{HSCode: "3333.33.33", Category: "Three", DocID: 2, Distance: 4.0},
				{HSCode: "4444.44.44", Category: "Four", DocID: 3, Distance: 5.0},
			}, nil
		},
	}
	oracle := &testutil.MockOracleClient{}
	engine := newEngine(t, suggest.Config{Similarity: source, Oracle: oracle})

	if _, err := engine.Suggest(context.Background(), "ambiguous product", suggest.Options{TopK: 4}); err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if oracle.CallCount != 1 {
		t.Fatalf("Expected one oracle call, got %d", oracle.CallCount)
	}
	if !strings.Contains(oracle.LastPrompt, "ambiguous product") {
		t.Error("Prompt should contain the product description")
	}
	for _, want := range []string{"HS: 1111.11.11 | Category: One", "HS: 2222.22.22 | Category: Two", "HS: 3333.33.33 | Category: Three"} {
		if !strings.Contains(oracle.LastPrompt, want) {
			t.Errorf("Prompt missing candidate line %q", want)
		}
	}
	if strings.Contains(oracle.LastPrompt, "4444.44.44") {
		t.Error("Prompt should list only the top 3 candidates")
	}
}

func TestSuggest_OracleErrorPropagates(t *testing.T) {
	oracle := &testutil.MockOracleClient{
		InvokeFunc: func(ctx context.Context, prompt string) (string, money.USD, error) {
			return "", money.Zero(), errors.New("oracle unreachable")
		},
	}
	engine := newEngine(t, suggest.Config{
		Similarity: twoCandidateSource(1.0, 3.0),
		Oracle:     oracle,
	})

	if _, err := engine.Suggest(context.Background(), "borderline product", suggest.Options{}); err == nil {
		t.Fatal("Expected error when oracle invocation fails")
	}
}

// TestSuggest_ConfidenceBoundsAndReviewCoupling sweeps distance pairs and
// checks the testable properties: confidence stays in [0,1] and manual review
// triggers exactly below 0.70.
func TestSuggest_ConfidenceBoundsAndReviewCoupling(t *testing.T) {
	distances := []float64{0.0, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0}

	for _, d1 := range distances {
		for _, d2 := range distances {
			if d2 < d1 {
				continue
			}

			t.Run(fmt.Sprintf("d1=%.1f_d2=%.1f", d1, d2), func(t *testing.T) {
				engine := newEngine(t, suggest.Config{Similarity: twoCandidateSource(d1, d2)})

				s, err := engine.Suggest(context.Background(), "sweep product", suggest.Options{})
				if err != nil {
					t.Fatalf("Suggest failed: %v", err)
				}

				if s.Confidence < 0.0 || s.Confidence > 1.0 {
					t.Errorf("Confidence %f out of [0,1]", s.Confidence)
				}
				if (s.Confidence < 0.70) != s.ManualReview {
					t.Errorf("Review flag %v inconsistent with confidence %f", s.ManualReview, s.Confidence)
				}
			})
		}
	}
}

// TestSuggest_Idempotent checks that identical input with deterministic
// collaborators yields identical output.
func TestSuggest_Idempotent(t *testing.T) {
	oracle := &testutil.MockOracleClient{
		InvokeFunc: func(ctx context.Context, prompt string) (string, money.USD, error) {
			return "0.7", money.FromFloat(0.0000042), nil
		},
	}
	engine := newEngine(t, suggest.Config{
		Similarity: twoCandidateSource(1.0, 3.0),
		Oracle:     oracle,
	})

	first, err := engine.Suggest(context.Background(), "same product twice", suggest.Options{})
	if err != nil {
		t.Fatalf("First Suggest failed: %v", err)
	}
	second, err := engine.Suggest(context.Background(), "same product twice", suggest.Options{})
	if err != nil {
		t.Fatalf("Second Suggest failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical suggestions, got %+v vs %+v", first, second)
	}
}
