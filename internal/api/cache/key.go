package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// keySeparator joins the key parts. It never appears in a scope or namespace.
const keySeparator = "-"

// scopeLength is the number of hex characters kept of a scope hash.
const scopeLength = 16

// Scope returns the key scope of one backend and session. Lists cached for
// one scope are never served to another.
func Scope(baseURL, session string) string {
	sum := sha256.Sum256([]byte(baseURL + "\x00" + session))
	return hex.EncodeToString(sum[:])[:scopeLength]
}

// Key returns the cache key of a list of namespace filtered by query within scope.
// Queries differing only in surrounding whitespace share a key.
func Key(scope, namespace, query string) string {
	sum := sha256.Sum256([]byte(namespace + "\x00" + strings.TrimSpace(query)))
	return Prefix(scope, namespace) + hex.EncodeToString(sum[:])
}

// Prefix returns the key prefix shared by every key of namespace within scope.
func Prefix(scope, namespace string) string {
	return scope + keySeparator + strings.ToLower(namespace) + keySeparator
}
