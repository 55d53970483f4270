// Package recommender composes drinks from preference tokens by content-based similarity
// over the catalog type tags.
package recommender

import (
	"fmt"
	"log/slog"
	"pop-lab/ai"
	"pop-lab/domain"
	"pop-lab/errors"
	"slices"

	"github.com/samber/lo"
)

// Composer runs the composition algorithm. The catalog and the cached vectorizers
// are never written after NewComposer returns; every request works on its own slices.
type Composer struct {
	catalog *domain.Catalog
	rnd     RandomSource
	log     *slog.Logger

	syrupTypes         *ai.Vectorizer
	sodaSyrupPairings  *ai.Vectorizer
	addinSyrupPairings *ai.Vectorizer
	addinSodaPairings  *ai.Vectorizer
}

// NewComposer caches one vectorizer per compared column.
// rnd is called concurrently when the Composer is shared; see NewLockedSource.
func NewComposer(catalog *domain.Catalog, rnd RandomSource, log *slog.Logger) (*Composer, error) {
	if catalog == nil {
		return nil, fmt.Errorf("%w: no catalog", errors.ErrDegenerateCatalog)
	}
	for _, category := range domain.Categories {
		if catalog.Len(category) == 0 {
			return nil, fmt.Errorf("%w: %s", errors.ErrDegenerateCatalog, category)
		}
	}
	return &Composer{
		catalog:            catalog,
		rnd:                rnd,
		log:                log,
		syrupTypes:         ai.NewVectorizer(catalog.Column(domain.Syrup, domain.ColumnType)),
		sodaSyrupPairings:  ai.NewVectorizer(catalog.Column(domain.Soda, domain.ColumnSyrupPairing)),
		addinSyrupPairings: ai.NewVectorizer(catalog.Column(domain.AddIn, domain.ColumnSyrupPairing)),
		addinSodaPairings:  ai.NewVectorizer(catalog.Column(domain.AddIn, domain.ColumnSodaPairing)),
	}, nil
}

// WithRandom returns a Composer sharing the cached state but drawing from rnd.
func (c *Composer) WithRandom(rnd RandomSource) *Composer {
	clone := *c
	clone.rnd = rnd
	return &clone
}

// Compose builds one drink from raw preference tokens.
// Without any recognized syrup the empty composition is returned with a nil error.
// errors.ErrCatalogInconsistency reports a soda or add-in preference that never ranked.
func (c *Composer) Compose(preferences []string) (domain.Composition, error) {
	buckets := Classify(preferences, c.catalog)
	if len(buckets.Syrups) == 0 {
		c.log.Debug("No syrup preference recognized", "tokens", len(preferences))
		return domain.EmptyComposition(), nil
	}

	seeds := c.chooseSeeds(buckets.Syrups)
	syrups := c.expandSeeds(seeds)
	c.log.Debug("Syrups chosen", "seeds", seeds, "syrups", syrups)

	soda, err := c.resolveSoda(buckets, syrups)
	if err != nil {
		return domain.Composition{}, err
	}

	addins, err := c.resolveAddIns(buckets, syrups, soda)
	if err != nil {
		return domain.Composition{}, err
	}
	c.log.Debug("Drink composed", "soda", soda, "addins", addins)

	return domain.Composition{
		Syrups: syrups,
		Soda:   []string{soda},
		AddIns: addins,
	}, nil
}

// chooseSeeds draws two bucket positions with replacement. The same position twice
// yields a single seed, even when the bucket holds several distinct syrups.
func (c *Composer) chooseSeeds(bucket []string) []string {
	first := c.rnd.Intn(len(bucket))
	second := c.rnd.Intn(len(bucket))
	seeds := []string{bucket[first]}
	if first != second {
		seeds = append(seeds, bucket[second])
	}
	return seeds
}

// expandSeeds appends two draws from the top-5 neighbours of every seed.
// Duplicates within and across seeds are kept.
func (c *Composer) expandSeeds(seeds []string) []string {
	syrups := make([]string, 0, 2*len(seeds))
	for _, seed := range seeds {
		top := c.similarSyrups(seed)
		syrups = append(syrups, c.pick(top), c.pick(top))
	}
	return syrups
}

func (c *Composer) resolveSoda(b Buckets, syrups []string) (string, error) {
	if len(b.Sodas) == 1 {
		return b.Sodas[0], nil
	}

	ranked := matchColumn(c.sodaSyrupPairings, c.syrupQuery(syrups))

	if len(b.Sodas) == 0 {
		if b.Diet {
			ranked = c.dietOnly(ranked)
		}
		return c.pick(c.names(domain.Soda, ai.TopN(ranked, ai.TopK))), nil
	}

	soda, ok := c.firstPreferred(domain.Soda, ranked, b.Sodas)
	if !ok {
		return "", fmt.Errorf("%w: soda preferences %v", errors.ErrCatalogInconsistency, b.Sodas)
	}
	return soda, nil
}

// dietOnly keeps the diet sodas of a ranking, or the whole ranking when none is diet.
func (c *Composer) dietOnly(ranked []ai.Similarity) []ai.Similarity {
	diet := lo.Filter(ranked, func(s ai.Similarity, _ int) bool {
		return c.catalog.Item(domain.Soda, s.Index).IsDiet()
	})
	if len(diet) == 0 {
		return ranked
	}
	return diet
}

func (c *Composer) resolveAddIns(b Buckets, syrups []string, soda string) ([]string, error) {
	k := c.rnd.Intn(3)
	if k == 0 {
		return []string{}, nil
	}
	if len(b.AddIns) == 1 {
		return []string{b.AddIns[0]}, nil
	}

	sodaItem, ok := c.catalog.Lookup(domain.Soda, soda)
	if !ok {
		return nil, fmt.Errorf("%w: soda %q", errors.ErrCatalogInconsistency, soda)
	}
	bySyrup := matchColumn(c.addinSyrupPairings, c.syrupQuery(syrups))
	bySoda := matchColumn(c.addinSodaPairings, sodaItem.Type)

	if len(b.AddIns) == 0 {
		pool := intersectTop(bySyrup, bySoda)
		if len(pool) == 0 {
			pool = lo.Map(ai.TopN(bySyrup, ai.TopK), func(s ai.Similarity, _ int) int { return s.Index })
		}
		candidates := lo.Map(pool, func(idx int, _ int) string { return c.catalog.Item(domain.AddIn, idx).Name })
		return c.draw(candidates, k), nil
	}

	fromSyrup, okSyrup := c.firstPreferred(domain.AddIn, bySyrup, b.AddIns)
	fromSoda, okSoda := c.firstPreferred(domain.AddIn, bySoda, b.AddIns)
	if !okSyrup || !okSoda {
		return nil, fmt.Errorf("%w: add-in preferences %v", errors.ErrCatalogInconsistency, b.AddIns)
	}
	candidates := []string{fromSyrup, fromSoda}

	switch {
	case k == 1:
		return []string{c.pick(candidates)}, nil
	case k == 2 && len(b.AddIns) == 2:
		return slices.Clone(b.AddIns), nil
	default:
		return c.draw(candidates, k), nil
	}
}

func (c *Composer) pick(from []string) string {
	return from[c.rnd.Intn(len(from))]
}

// draw picks k items with replacement.
func (c *Composer) draw(from []string, k int) []string {
	out := make([]string, 0, k)
	for range k {
		out = append(out, c.pick(from))
	}
	return out
}
