package index

import (
	"context"
	"sync"
)

// BuildFunc constructs a tenant's index on first access.
type BuildFunc func(ctx context.Context) (*Index, error)

// Cache is the process-scoped mapping from tenant to that tenant's index.
// Indices build lazily on first access and are never evicted: operators
// provision memory for the tenant population they serve, and eviction is
// deliberately out of scope. Construct one Cache at startup and inject it;
// this is not a package-level singleton so tests can run isolated instances.
type Cache struct {
	mu      sync.Mutex
	indices map[string]*Index
	builds  map[string]*sync.Mutex
}

// NewCache creates an empty index cache.
func NewCache() *Cache {
	return &Cache{
		indices: make(map[string]*Index),
		builds:  make(map[string]*sync.Mutex),
	}
}

// GetOrBuild returns the cached index for tenant, invoking build on first
// access. Concurrent first-access for one tenant is serialized so exactly
// one build runs; builds for different tenants never block each other.
// A failed build is not cached, so a later call retries construction.
func (c *Cache) GetOrBuild(ctx context.Context, tenant string, build BuildFunc) (*Index, error) {
	c.mu.Lock()
	if ix, ok := c.indices[tenant]; ok {
		c.mu.Unlock()
		return ix, nil
	}
	lock, ok := c.builds[tenant]
	if !ok {
		lock = &sync.Mutex{}
		c.builds[tenant] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	// Another goroutine may have finished the build while we waited.
	c.mu.Lock()
	if ix, ok := c.indices[tenant]; ok {
		c.mu.Unlock()
		return ix, nil
	}
	c.mu.Unlock()

	ix, err := build(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.indices[tenant] = ix
	c.mu.Unlock()
	return ix, nil
}

// Invalidate drops the tenant's cached index. The next access rebuilds from
// current knowledge; rebuild replaces, nothing mutates in place.
func (c *Cache) Invalidate(tenant string) {
	c.mu.Lock()
	delete(c.indices, tenant)
	c.mu.Unlock()
}

// Len returns the number of cached indices.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.indices)
}
