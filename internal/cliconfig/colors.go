package cliconfig

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/optiknode/rg10pat/internal/domain"
	"github.com/optiknode/rg10pat/pkg/rg10"
)

// colorTable maps the color names accepted on the command line to their
// 10-bit channel triples.
var colorTable = map[string]domain.Pattern{
	"grey":    {R: 512, G: 512, B: 512},
	"gray":    {R: 512, G: 512, B: 512},
	"red":     {R: 1023},
	"green":   {G: 1023},
	"blue":    {B: 1023},
	"white":   {R: 1023, G: 1023, B: 1023},
	"black":   {},
	"yellow":  {R: 1023, G: 1023},
	"magenta": {R: 1023, B: 1023},
}

// LookupColor resolves a color name to its pattern.
func LookupColor(name string) (domain.Pattern, bool) {
	p, ok := colorTable[strings.ToLower(name)]
	return p, ok
}

// ColorNames returns the accepted color names, sorted, for usage text.
func ColorNames() []string {
	names := make([]string, 0, len(colorTable))
	for name := range colorTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseHex converts an 8-bit "#RRGGBB" triple into a 10-bit pattern through
// the rg10 rescale table.
func ParseHex(s string) (domain.Pattern, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return domain.Pattern{}, fmt.Errorf("hex color %q must be #RRGGBB", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return domain.Pattern{}, fmt.Errorf("hex color %q: %w", s, err)
	}
	return domain.Pattern{
		R: int(rg10.Rescale8To10(byte(v >> 16))),
		G: int(rg10.Rescale8To10(byte(v >> 8))),
		B: int(rg10.Rescale8To10(byte(v))),
	}, nil
}

// ResolvePattern picks the pattern from the mutually exclusive inputs: a
// named color, a "#RRGGBB" hex triple, or explicit 10-bit channel values.
func ResolvePattern(color, hex string, r, g, b int) (domain.Pattern, error) {
	switch {
	case color != "" && hex != "":
		return domain.Pattern{}, fmt.Errorf("color and hex are mutually exclusive")
	case color != "":
		p, ok := LookupColor(color)
		if !ok {
			return domain.Pattern{}, fmt.Errorf("unknown color %q (available: %s)",
				color, strings.Join(ColorNames(), ", "))
		}
		return p, nil
	case hex != "":
		return ParseHex(hex)
	default:
		p := domain.Pattern{R: r, G: g, B: b}
		if err := p.Validate(); err != nil {
			return domain.Pattern{}, err
		}
		return p, nil
	}
}
