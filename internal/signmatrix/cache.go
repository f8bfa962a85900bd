package signmatrix

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the number of distinct k values kept in memory.
const DefaultCacheSize = 8

// Cache memoizes sign matrices by k. Matrices are immutable, so one instance
// is shared by all analyses using the same k. Safe for concurrent use.
type Cache struct {
	matrices *lru.Cache[int, *Matrix]
	inflight singleflight.Group
}

// NewCache creates a cache holding at most size matrices.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	matrices, err := lru.New[int, *Matrix](size)
	if err != nil {
		return nil, err
	}
	return &Cache{matrices: matrices}, nil
}

// Get returns the matrix for k, building it at most once across concurrent callers.
func (c *Cache) Get(k int) (*Matrix, error) {
	if m, ok := c.matrices.Get(k); ok {
		return m, nil
	}

	v, err, _ := c.inflight.Do(strconv.Itoa(k), func() (interface{}, error) {
		if m, ok := c.matrices.Get(k); ok {
			return m, nil
		}
		m, err := Build(k)
		if err != nil {
			return nil, err
		}
		c.matrices.Add(k, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Matrix), nil
}

// Len returns the number of cached matrices.
func (c *Cache) Len() int { return c.matrices.Len() }

var shared, _ = NewCache(DefaultCacheSize)

// Shared returns the process-wide cache.
func Shared() *Cache { return shared }
