// Package cache stores API list responses on disk with a TTL.
//
// Entries live as JSON files under ~/.cultivar/cache/. Keys are derived from
// the collection and the search query, prefixed with the collection name so
// that a write to a collection can drop every cached list of it at once.
package cache
