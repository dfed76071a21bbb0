package suggest

import "github.com/tradegate/hs-suggest/internal/money"

// ReferenceEntry is one row of the historical knowledge base. Entries are
// immutable once loaded; their position in the loading order is the doc_id
// that joins the vector index's metadata to the lexical index's score vector.
type ReferenceEntry struct {
	Description string `json:"description"`
	HSCode      string `json:"hs_code"`
	Category    string `json:"category"`
}

// SearchHit is a single nearest-neighbor result from a SimilaritySource.
// Distance is the source's raw metric: lower means more similar.
type SearchHit struct {
	Content  string
	HSCode   string
	Category string
	DocID    int
	Distance float64
}

// RetrievedCandidate is a per-query scoring record for one retrieved entry.
type RetrievedCandidate struct {
	Text        string  `json:"text"`
	HSCode      string  `json:"hs_code"`
	Category    string  `json:"category"`
	DocID       int     `json:"doc_id"`
	Distance    float64 `json:"distance"`
	IRScore     float64 `json:"ir_score"`
	HybridScore float64 `json:"hybrid_score,omitempty"`
}

// Suggestion is the outcome of one Suggest call. SuggestedHSCode is nil when
// retrieval produced nothing to suggest. Retrieved is ordered best-first
// (post-hybrid-sort when hybrid scoring was requested).
type Suggestion struct {
	SuggestedHSCode *string              `json:"suggested_hs_code"`
	Confidence      float64              `json:"confidence"`
	ManualReview    bool                 `json:"manual_review"`
	Cost            money.USD            `json:"cost"`
	Reason          string               `json:"reason"`
	Retrieved       []RetrievedCandidate `json:"retrieved"`
}
