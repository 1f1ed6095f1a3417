// Package config loads the engine's tunable search parameters from an
// optional TOML file, falling back to compiled-in defaults.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the knobs the searcher and quiescence search read at
// construction time.
type Config struct {
	Search SearchConfig
}

// SearchConfig is the [search] table of the config file.
type SearchConfig struct {
	// Depth is the iterative-deepening ceiling: GetMoveList iterates depth
	// 1..Depth-1 inclusive.
	Depth int

	// NullMoveReduction is the depth reduction applied to the verification
	// search after a null move.
	NullMoveReduction int

	// NullMoveMaterialThreshold gates null-move pruning: the side to move
	// must hold more non-king material than this to try it.
	NullMoveMaterialThreshold int

	// QuiescenceSEEFloor is the minimum static-exchange value a capture
	// must reach to be searched in quiescence; captures scoring lower are
	// dropped before the node is searched.
	QuiescenceSEEFloor int
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Search: SearchConfig{
			Depth:                     4,
			NullMoveReduction:         4,
			NullMoveMaterialThreshold: 319,
			QuiescenceSEEFloor:        0,
		},
	}
}

// Load reads path as a TOML file and overlays it onto Default. A missing
// file is not an error: the defaults are returned unchanged, matching the
// "compiled-in defaults when no file is supplied" contract.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
