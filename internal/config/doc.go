// Package config loads, normalizes, and validates sublate's TOML
// configuration. Defaults live in defaults.go; Load applies file values on
// top, expands paths, and rejects unusable combinations.
package config
