package cliconfig

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/optiknode/rg10pat/internal/domain"
)

// patternFile is the TOML document watched in live-tuning mode. Exactly one
// way of naming the pattern should be used: a color name, a hex triple, or
// the three channel values.
type patternFile struct {
	Color string `toml:"color"`
	Hex   string `toml:"hex"`
	R     int    `toml:"r"`
	G     int    `toml:"g"`
	B     int    `toml:"b"`
}

// LoadPatternFile reads a pattern description from a TOML file.
func LoadPatternFile(path string) (domain.Pattern, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Pattern{}, fmt.Errorf("read pattern file: %w", err)
	}
	var pf patternFile
	if err := toml.Unmarshal(b, &pf); err != nil {
		return domain.Pattern{}, fmt.Errorf("parse pattern file %s: %w", path, err)
	}
	return ResolvePattern(pf.Color, pf.Hex, pf.R, pf.G, pf.B)
}
