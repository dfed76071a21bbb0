package suggest

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tradegate/hs-suggest/internal/money"
)

// scorePattern matches the first decimal in [0,1] written conventionally:
// a 0 with an optional fraction, or a 1 with an optional all-zero fraction.
var scorePattern = regexp.MustCompile(`0(?:\.\d+)?|1(?:\.0+)?`)

const rankingPromptTemplate = `You are ranking HS-code candidates in a CLOSED SET.

Product description:
%s

Candidate HS codes (ONLY these are allowed):
%s

Task:
Assume the correct HS code MUST be chosen from the candidates above.
You are NOT allowed to propose new HS codes or penalize missing options.

Compare the TOP candidate against the other candidates from BEST to WORST.
Judge ONLY which candidate is the best fit RELATIVE to the others.

Scoring guidelines:
- 1.0 = clearly the best among the given candidates
- 0.7 = likely best, but with some uncertainty
- 0.5 = comparable to others
- 0.3 = weaker than at least one alternative
- 0.0 = clearly the worst among the candidates

Important rules:
- Do NOT assess legal or technical correctness beyond comparison
- Do NOT mention HS codes outside the candidate list
- Do NOT explain your reasoning

Return ONLY a single floating-point number between 0.0 and 1.0.`

// verifyWithOracle asks the oracle to judge relative ranking among the top
// candidates and returns its score in [0,1] plus the cost of the call.
func (e *Engine) verifyWithOracle(ctx context.Context, description string, retrieved []RetrievedCandidate) (float64, money.USD, error) {
	limit := len(retrieved)
	if limit > 3 {
		limit = 3
	}

	lines := make([]string, 0, limit)
	for _, r := range retrieved[:limit] {
		lines = append(lines, fmt.Sprintf("HS: %s | Category: %s", r.HSCode, r.Category))
	}

	prompt := fmt.Sprintf(rankingPromptTemplate, description, strings.Join(lines, "\n"))

	out, cost, err := e.oracle.Invoke(ctx, prompt)
	if err != nil {
		return 0, money.Zero(), err
	}

	return parseOracleScore(out), cost, nil
}

// parseOracleScore extracts a confidence adjustment from untrusted oracle
// text: the first number in [0,1] wins, everything else is ignored, and any
// parse failure degrades to 0.0 rather than an error.
func parseOracleScore(text string) float64 {
	match := scorePattern.FindString(text)
	if match == "" {
		return 0.0
	}

	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0.0
	}

	if val < 0 {
		return 0.0
	}
	if val > 1 {
		return 1.0
	}
	return val
}
