// Package benchmark drives the suggestion engine over a fixed set of sample
// inputs, recording latency and cost. Pure instrumentation, no decision logic.
package benchmark

import (
	"context"
	"math"
	"time"

	suggest "github.com/tradegate/hs-suggest"
	"github.com/tradegate/hs-suggest/kb"
)

// Result is one benchmark row.
type Result struct {
	Case          string  `json:"case"`
	Input         string  `json:"input"`
	SuggestedCode string  `json:"suggested_code"`
	Confidence    float64 `json:"confidence"`
	ManualReview  bool    `json:"manual_review"`
	LatencyMS     int64   `json:"latency_ms"`
	CostUSD       string  `json:"cost_usd"`
	Reason        string  `json:"reason"`
}

// Runner executes the fixed benchmark cases against an engine.
type Runner struct {
	engine *suggest.Engine
	cases  []kb.Case
}

// NewRunner creates a Runner over the standard benchmark cases.
func NewRunner(engine *suggest.Engine) *Runner {
	return &Runner{
		engine: engine,
		cases:  kb.BenchmarkCases(),
	}
}

// Run suggests a code for every case and records wall-clock latency in
// milliseconds alongside the returned code, confidence and cost.
func (r *Runner) Run(ctx context.Context, hybrid bool) ([]Result, error) {
	results := make([]Result, 0, len(r.cases))

	for _, tc := range r.cases {
		start := time.Now()
		s, err := r.engine.Suggest(ctx, tc.Text, suggest.Options{Hybrid: hybrid})
		if err != nil {
			return nil, err
		}
		elapsed := time.Since(start)

		code := "MANUAL_REVIEW"
		if s.SuggestedHSCode != nil {
			code = *s.SuggestedHSCode
		}

		results = append(results, Result{
			Case:          tc.ID,
			Input:         tc.Text,
			SuggestedCode: code,
			Confidence:    math.Round(s.Confidence*1000) / 1000,
			ManualReview:  s.ManualReview,
			LatencyMS:     elapsed.Milliseconds(),
			CostUSD:       s.Cost.String(),
			Reason:        s.Reason,
		})
	}

	return results, nil
}
