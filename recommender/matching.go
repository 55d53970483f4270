package recommender

import (
	"pop-lab/ai"
	"pop-lab/domain"
	"strings"
)

// syrupQuery joins the distinct type words of the chosen syrups, first-seen order.
func (c *Composer) syrupQuery(syrups []string) string {
	seen := make(map[string]struct{})
	var words []string
	for _, name := range syrups {
		item, _ := c.catalog.Lookup(domain.Syrup, name)
		for _, w := range strings.Fields(item.Type) {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}

// matchColumn ranks every catalog row of a profile column against query.
// The query becomes a synthetic row of a request-local matrix; its own entry is
// removed before the ranking is returned, so indexes are catalog positions.
func matchColumn(v *ai.Vectorizer, query string) []ai.Similarity {
	m, synthetic := v.Augment(query)
	return ai.Without(ai.Rank(m, synthetic), synthetic)
}

// similarSyrups ranks the syrup catalog against one syrup using the type tags directly.
func (c *Composer) similarSyrups(name string) []string {
	idx, ok := c.catalog.IndexOf(domain.Syrup, name)
	if !ok {
		return nil
	}
	top := ai.TopN(ai.Rank(c.syrupTypes.Matrix(), idx), ai.TopK)
	return c.names(domain.Syrup, top)
}

func (c *Composer) names(category domain.Category, ranked []ai.Similarity) []string {
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = c.catalog.Item(category, s.Index).Name
	}
	return out
}

// firstPreferred walks ranked in order and returns the first item present in preferred.
func (c *Composer) firstPreferred(category domain.Category, ranked []ai.Similarity, preferred []string) (string, bool) {
	wanted := make(map[string]struct{}, len(preferred))
	for _, p := range preferred {
		wanted[p] = struct{}{}
	}
	for _, s := range ranked {
		name := c.catalog.Item(category, s.Index).Name
		if _, ok := wanted[name]; ok {
			return name, true
		}
	}
	return "", false
}

// intersectTop collects, in bySyrup order, the items of the bySyrup top-k that also sit
// in the bySoda top-k, stopping once k are collected.
func intersectTop(bySyrup, bySoda []ai.Similarity) []int {
	left, right := ai.TopN(bySyrup, ai.TopK), ai.TopN(bySoda, ai.TopK)
	var pool []int
	for _, l := range left {
		if len(pool) >= ai.TopK {
			break
		}
		for _, r := range right {
			if l.Index == r.Index {
				pool = append(pool, l.Index)
				break
			}
		}
	}
	return pool
}
