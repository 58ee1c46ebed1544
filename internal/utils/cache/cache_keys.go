package cache

import (
	"fmt"
	"strings"
)

type EntityType string

const (
	EntityUser      EntityType = "user"
	EntityDashboard EntityType = "dashboard"
	EntityBusiness  EntityType = "business"
)

type KeyType string

const (
	KeyID    KeyType = "id"
	KeyEmail KeyType = "email"
	KeyStats KeyType = "stats"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}

// EntityPattern matches every key of an entity, for SCAN based invalidation.
func EntityPattern(entity EntityType) string {
	return string(entity) + ":*"
}

// ParseKey extracts the entity, key type and value from a key built by
// GenerateKey. Values may contain colons.
func ParseKey(key string) (entity EntityType, keyType KeyType, value string, ok bool) {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 {
		return "", "", "", false
	}
	return EntityType(parts[0]), KeyType(parts[1]), parts[2], true
}
