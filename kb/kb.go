// Package kb carries the historical HS-code knowledge base the indexes are
// built from, plus the fixed benchmark cases.
package kb

import suggest "github.com/tradegate/hs-suggest"

// Case is one fixed benchmark input.
type Case struct {
	ID   string
	Text string
}

// Historical returns the reference knowledge base in corpus order. The slice
// position of each entry is its doc_id in both the vector index metadata and
// the lexical score vector.
func Historical() []suggest.ReferenceEntry {
	return []suggest.ReferenceEntry{
		{Description: "Arabica coffee, not roasted, not decaffeinated", HSCode: "0901.11.10", Category: "Coffee"},
		{Description: "Green tea (fermented), in immediate packings of <= 3kg", HSCode: "0902.10.10", Category: "Tea"},
		{Description: "Integrated circuits: Processors and controllers", HSCode: "8542.31.00", Category: "Electronics"},
		{Description: "Solar cells assembled in modules or made up into panels", HSCode: "8541.43.00", Category: "Renewables"},
		{Description: "Electric motors, output not exceeding 37.5 W", HSCode: "8501.10.12", Category: "Machinery"},
		{Description: "Polymers of ethylene, in primary forms: Polyethylene", HSCode: "3901.10.12", Category: "Chemicals/Plastics"},
		{Description: "Woven fabrics of cotton, containing >= 85% cotton", HSCode: "5208.11.00", Category: "Textiles"},
		{Description: "Automatic data processing machines, portable (Laptops)", HSCode: "8471.30.20", Category: "Computing"},
		{Description: "Medical, surgical or laboratory sterilizers", HSCode: "8419.20.00", Category: "Medical"},
		{Description: "Lithium-ion accumulators (Rechargeable Batteries)", HSCode: "8507.60.90", Category: "Electronics/Power"},
	}
}

// Descriptions returns the corpus texts in loading order, for building the
// lexical index over the same ordering as the vector index.
func Descriptions() []string {
	entries := Historical()
	docs := make([]string, len(entries))
	for i, e := range entries {
		docs[i] = e.Description
	}
	return docs
}

// BenchmarkCases returns the fixed benchmark inputs.
func BenchmarkCases() []Case {
	return []Case{
		{ID: "Case 1", Text: "Premium roasted Robusta coffee beans, vacuum sealed, 25kg."},
		{ID: "Case 2", Text: "High-performance graphics processing units (GPUs) for AI data centers."},
		{ID: "Case 3", Text: "Industrial 3D printer for plastic prototyping using ethylene polymers."},
		{ID: "Case 4", Text: "100% Organic cotton t-shirts, bulk packed for retail."},
		{ID: "Case 5", Text: "Portable power bank, 10,000mAh with dual USB-C ports."},
		{ID: "Case 6", Text: "Wireless Bluetooth headphones with integrated solar charging panels."},
	}
}
