package calculator

import (
	"github.com/msto63/viscocorrect/pkg/core/cache"
)

// CachedCalculator memoizes results per distinct input. Batch runs often
// repeat the same operating point for different pumps of a series.
type CachedCalculator struct {
	calc    *Calculator
	results *cache.Cache[string, CorrectionFactors]
}

// NewCached wraps calc with a result cache
func NewCached(calc *Calculator, cfg cache.Config) *CachedCalculator {
	return &CachedCalculator{
		calc:    calc,
		results: cache.New[string, CorrectionFactors](cfg),
	}
}

// Calculate returns the cached result for p or computes it
func (c *CachedCalculator) Calculate(p InputParameters) CorrectionFactors {
	f, _ := c.results.GetOrSet(inputKey(p), func() (CorrectionFactors, error) {
		return c.calc.Calculate(p), nil
	})
	return f
}

// Calculator returns the wrapped calculator
func (c *CachedCalculator) Calculator() *Calculator {
	return c.calc
}

// Stats returns cache hits, misses and the hit rate in percent
func (c *CachedCalculator) Stats() (hits, misses int64, hitRate float64) {
	return c.results.Stats()
}

// Close stops the cache cleanup
func (c *CachedCalculator) Close() {
	c.results.Close()
}

func inputKey(p InputParameters) string {
	u := p.Units
	return cache.HashKey("calc",
		p.Flowrate.String(), u.Flowrate.String(),
		p.Head.String(), u.Head.String(),
		p.Viscosity.String(), u.Viscosity.String(),
		p.Density.String(), u.Density.String(),
	)
}
