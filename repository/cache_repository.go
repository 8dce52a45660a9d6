package repository

// CacheRepository caches serialized estimate results keyed by input hash.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
