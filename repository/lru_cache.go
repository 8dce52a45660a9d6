package repository

import lru "github.com/hashicorp/golang-lru"

// LRUCache is the in-process CacheRepository used when no redis address is
// configured.
type LRUCache struct {
	cache *lru.Cache
}

func NewLRUCache(size int) (*LRUCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LRUCache{cache: c}, nil
}

func (l *LRUCache) Get(key string) (string, bool) {
	v, ok := l.cache.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (l *LRUCache) Set(key string, value string) error {
	l.cache.Add(key, value)
	return nil
}
