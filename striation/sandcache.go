package striation

// SandCache memoizes sand-volume-above-threshold probes keyed by
// (striation item index, δ). SortedPathsCreator.Create probes it once per
// striation item, with the item's persistence as δ; NetworkCreator does not
// consult it.
//
// Single-threaded, lazily populated, lookups never block. δ is quantized to
// an int64 (in the same internal elevation units MsComplex already carries)
// so that float64 keys never miss a cache hit due to representation noise
// between two logically identical probes.
type SandCache struct {
	values map[cacheKey]float64
}

type cacheKey struct {
	item  int
	delta int64
}

// NewSandCache returns an empty cache.
func NewSandCache() *SandCache {
	return &SandCache{values: make(map[cacheKey]float64)}
}

// Get returns the cached sand volume for (item, delta), computing and
// storing it via compute if this is the first probe of that pair.
func (c *SandCache) Get(item int, delta float64, compute func() float64) float64 {
	key := cacheKey{item: item, delta: int64(delta)}
	if v, ok := c.values[key]; ok {
		return v
	}
	v := compute()
	c.values[key] = v
	return v
}

// Len returns the number of memoized probes, mostly useful for tests.
func (c *SandCache) Len() int { return len(c.values) }
