package cache

import "strings"

const (
	GlobalKeyPrefix = "lmsquiz"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// CatalogKey holds the validated quiz catalog.
func CatalogKey() string {
	return GenerateCacheKey("catalog", "quizzes", "all")
}

// ResultKey holds the graded result of one attempt.
func ResultKey(attemptID string) string {
	return GenerateCacheKey("attempt", "result", attemptID)
}
