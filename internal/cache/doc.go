// Package cache provides the SQLite-backed translation cache.
package cache
