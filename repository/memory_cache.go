package repository

// MemoryCache keeps solved rates for the lifetime of the process. It is the
// rate cache used when no Redis server is configured.
type MemoryCache struct {
	rates map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{rates: map[string]string{}}
}

func (c *MemoryCache) Get(key string) (string, bool) {
	rate, ok := c.rates[key]
	return rate, ok
}

func (c *MemoryCache) Set(key string, value string) error {
	c.rates[key] = value
	return nil
}

// Len returns the number of cached rates.
func (c *MemoryCache) Len() int {
	return len(c.rates)
}
