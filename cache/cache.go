// Package cache provides generated-result caching implementations.
package cache

import "github.com/holiy930561/LenDon"

// ResultCache is the interface for result caching.
// This is an alias to the main package interface for convenience.
type ResultCache = lendon.ResultCache

// Enumerable is implemented by caches whose entries can be listed for export.
type Enumerable interface {
	ResultCache
	// Entries returns all live entries as key-value pairs.
	Entries() (map[string]string, error)
}
