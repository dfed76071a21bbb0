// Package testutil provides hand-written mocks for the engine's
// collaborators.
package testutil

import (
	"context"
	"sync"

	suggest "github.com/tradegate/hs-suggest"
	"github.com/tradegate/hs-suggest/internal/money"
)

// MockSimilaritySource is a mock implementation of suggest.SimilaritySource.
type MockSimilaritySource struct {
	SearchFunc func(ctx context.Context, query string, k int) ([]suggest.SearchHit, error)

	mu        sync.Mutex
	CallCount int
	LastQuery string
	LastK     int
}

func (m *MockSimilaritySource) Search(ctx context.Context, query string, k int) ([]suggest.SearchHit, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastQuery = query
	m.LastK = k
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, k)
	}

	return []suggest.SearchHit{}, nil
}

// MockLexicalScorer is a mock implementation of suggest.LexicalScorer.
type MockLexicalScorer struct {
	ScoreFunc func(query string) []float64

	mu        sync.Mutex
	CallCount int
	LastQuery string
}

func (m *MockLexicalScorer) Score(query string) []float64 {
	m.mu.Lock()
	m.CallCount++
	m.LastQuery = query
	m.mu.Unlock()

	if m.ScoreFunc != nil {
		return m.ScoreFunc(query)
	}

	return []float64{}
}

// MockOracleClient is a mock implementation of suggest.OracleClient.
type MockOracleClient struct {
	InvokeFunc func(ctx context.Context, prompt string) (string, money.USD, error)

	mu         sync.Mutex
	CallCount  int
	LastPrompt string
}

func (m *MockOracleClient) Invoke(ctx context.Context, prompt string) (string, money.USD, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastPrompt = prompt
	m.mu.Unlock()

	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, prompt)
	}

	return "0.5", money.Zero(), nil
}
