package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashKey builds a fixed length key from its parts. Parts are joined with
// '|' before hashing, so ("a|b") and ("a", "b") collide; callers pass
// parts that cannot contain the separator.
func HashKey(prefix string, parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return prefix + ":" + hex.EncodeToString(hash[:16])
}
