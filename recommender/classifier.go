package recommender

import (
	"pop-lab/domain"
)

// DietToken is the reserved preference restricting soda suggestions to diet sodas.
const DietToken = "diet"

// Buckets holds the recognized preferences of one request, split by category.
// Order of appearance and duplicates are preserved.
type Buckets struct {
	Syrups  []string
	Sodas   []string
	AddIns  []string
	Diet    bool
	Dropped int
}

// Classify lowercases each token and files it under the first category whose catalog
// contains it, checking syrups, then sodas, then add-ins. Unknown tokens are dropped.
func Classify(tokens []string, catalog *domain.Catalog) Buckets {
	var b Buckets
	for _, token := range tokens {
		name := domain.NormalizeName(token)
		switch {
		case catalog.Contains(domain.Syrup, name):
			b.Syrups = append(b.Syrups, name)
		case catalog.Contains(domain.Soda, name):
			b.Sodas = append(b.Sodas, name)
		case catalog.Contains(domain.AddIn, name):
			b.AddIns = append(b.AddIns, name)
		case name == DietToken:
			b.Diet = true
		default:
			b.Dropped++
		}
	}
	return b
}

// Recognized returns the kept tokens in classification order, with the diet flag last.
func (b Buckets) Recognized() []string {
	out := make([]string, 0, len(b.Syrups)+len(b.Sodas)+len(b.AddIns)+1)
	out = append(out, b.Syrups...)
	out = append(out, b.Sodas...)
	out = append(out, b.AddIns...)
	if b.Diet {
		out = append(out, DietToken)
	}
	return out
}
