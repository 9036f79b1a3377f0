// Package config manages puzzle configuration files.
//
// The config package provides the Manager type which handles:
//   - Loading puzzle configurations from JSON files
//   - Caching loaded configurations behind a read-write lock
//   - A default configuration fallback (classic.json, the first valid file
//     in the directory, or the built-in 3x4 puzzle, in that order)
//   - Saving new or edited configurations to disk
//
// Every configuration passes board.ValidateConfig before it is cached or
// saved, so malformed configurations are rejected before any enumeration or
// search can see them.
package config
