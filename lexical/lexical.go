// Package lexical implements a term-frequency/inverse-document-frequency
// index over a fixed corpus. Terms are lowercase alphanumeric unigrams and
// bigrams; document and query vectors are L2-normalized so the score is a
// cosine-style dot product.
package lexical

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// Index scores queries against the corpus it was constructed from. It is
// read-only after construction and safe for concurrent Score calls.
type Index struct {
	vocab   map[string]int
	idf     []float64
	docVecs []map[int]float64
}

// New builds an Index over the ordered corpus. The corpus is fixed for the
// index's lifetime; an empty corpus is a construction-time error.
func New(corpus []string) (*Index, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("lexical: corpus must not be empty")
	}

	ix := &Index{
		vocab: make(map[string]int),
	}

	// First pass: vocabulary and document frequencies.
	docTerms := make([][]string, len(corpus))
	docFreq := make(map[int]int)
	for i, doc := range corpus {
		terms := tokenize(doc)
		docTerms[i] = terms

		seen := make(map[int]bool)
		for _, term := range terms {
			id, ok := ix.vocab[term]
			if !ok {
				id = len(ix.vocab)
				ix.vocab[term] = id
			}
			if !seen[id] {
				seen[id] = true
				docFreq[id]++
			}
		}
	}

	// Smoothed IDF: every term behaves as if seen in one extra document, so
	// corpus-wide terms still carry weight and nothing divides by zero.
	n := float64(len(corpus))
	ix.idf = make([]float64, len(ix.vocab))
	for id, df := range docFreq {
		ix.idf[id] = math.Log((1+n)/(1+float64(df))) + 1
	}

	// Second pass: weighted, L2-normalized document vectors.
	ix.docVecs = make([]map[int]float64, len(corpus))
	for i, terms := range docTerms {
		ix.docVecs[i] = ix.vectorize(terms)
	}

	return ix, nil
}

// Score returns the lexical relevance of the query to every corpus document,
// in corpus order. A query sharing no terms with the corpus scores all zeros.
func (ix *Index) Score(query string) []float64 {
	queryVec := ix.vectorize(tokenize(query))

	scores := make([]float64, len(ix.docVecs))
	for i, docVec := range ix.docVecs {
		// Iterate the smaller vector.
		a, b := queryVec, docVec
		if len(b) < len(a) {
			a, b = b, a
		}

		var dot float64
		for id, w := range a {
			dot += w * b[id]
		}
		scores[i] = dot
	}

	return scores
}

// vectorize maps terms to a TF-IDF weighted, L2-normalized sparse vector.
// Terms outside the vocabulary contribute nothing.
func (ix *Index) vectorize(terms []string) map[int]float64 {
	vec := make(map[int]float64)
	for _, term := range terms {
		if id, ok := ix.vocab[term]; ok {
			vec[id] += ix.idf[id]
		}
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for id := range vec {
			vec[id] /= norm
		}
	}

	return vec
}

// tokenize splits text into lowercase alphanumeric unigrams plus bigrams of
// adjacent tokens.
func tokenize(text string) []string {
	unigrams := tokenPattern.FindAllString(strings.ToLower(text), -1)

	terms := make([]string, 0, 2*len(unigrams))
	terms = append(terms, unigrams...)
	for i := 0; i+1 < len(unigrams); i++ {
		terms = append(terms, unigrams[i]+" "+unigrams[i+1])
	}

	return terms
}
