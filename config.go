package suggest

const (
	// DefaultTopK is the number of neighbors retrieved per query.
	DefaultTopK = 3

	// denseWeight and sparseWeight blend vector similarity with lexical
	// relevance in hybrid mode. Fixed constants of the design.
	denseWeight  = 0.6
	sparseWeight = 0.4

	// oracleBandLow and oracleBandHigh bound the confidence band (inclusive)
	// in which the oracle is consulted. Outside the band the verdict is
	// either clear enough or too weak to be worth a billable call.
	oracleBandLow  = 0.5
	oracleBandHigh = 0.8

	// oracleBlendWeight caps how much an oracle verdict can raise confidence.
	oracleBlendWeight = 0.2

	// reviewThreshold routes low-confidence suggestions to manual review.
	reviewThreshold = 0.70
)

// Config holds the collaborators for an Engine. Similarity is required.
// Lexical and Oracle are optional: without Lexical every candidate gets a
// zero ir_score, without Oracle escalation is skipped.
type Config struct {
	Similarity SimilaritySource
	Lexical    LexicalScorer
	Oracle     OracleClient
}

// Options control a single Suggest call.
type Options struct {
	// TopK is the number of neighbors to retrieve. Zero means DefaultTopK.
	TopK int

	// Hybrid re-ranks candidates by the blended dense+sparse score instead
	// of raw vector distance.
	Hybrid bool
}

func (o *Options) applyDefaults() {
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
}
