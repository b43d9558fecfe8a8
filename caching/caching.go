// Package caching keeps an in-process cache of semester rows. Roles are
// never updated or deleted, so a cached id stays valid until it expires.
package caching

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	defaultExpiration = 10 * time.Minute
	cleanupInterval   = 10 * time.Minute
	rolePrefix        = "role:"
)

type Cache struct {
	memoryCache *cache.Cache
}

func NewCache() *Cache {
	return &Cache{
		memoryCache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// GetRoleId returns the cached id of the semester called name.
func (s *Cache) GetRoleId(name string) (int, bool) {
	v, ok := s.memoryCache.Get(rolePrefix + name)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

func (s *Cache) SetRoleId(name string, id int) {
	s.memoryCache.SetDefault(rolePrefix+name, id)
}

func (s *Cache) Flush() {
	s.memoryCache.Flush()
}

func (s *Cache) Memory() *cache.Cache {
	return s.memoryCache
}
