package repository

// CacheRepository stores solved rates keyed by the loan terms they came from.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
