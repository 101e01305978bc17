package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Palette is the base colour cycle assigned to sources by index
var Palette = [8]string{
	"#007bff",
	"#f28e2b",
	"#e15759",
	"#76b7b2",
	"#59a14f",
	"#edc948",
	"#b07aa1",
	"#ff9da7",
}

// ShadeStep darkens each successive type of a source by this fraction
const ShadeStep = 0.1

// GenerateColorMap assigns a colour to every selected source and source_type key
//
// overrides may hold either a source key or a source_type key. A source
// override also seeds the shades of its types. Overrides that are not
// #rgb or #rrggbb hex are ignored.
func GenerateColorMap(selectedSources, selectedTypes []string, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(selectedSources)*(len(selectedTypes)+1))
	for i, src := range selectedSources {
		base := Palette[i%len(Palette)]
		if o, ok := overrides[src]; ok && validHex(o) {
			base = o
		}
		out[src] = base

		r, g, b, _ := parseHex(base)
		for j, typ := range selectedTypes {
			key := FieldKey(src, typ)
			if o, ok := overrides[key]; ok && validHex(o) {
				out[key] = o
				continue
			}
			out[key] = Shade(r, g, b, 1-float64(j+1)*ShadeStep)
		}
	}
	return out
}

// Shade scales an rgb triple by factor and renders it as rgb(r, g, b)
func Shade(r, g, b uint8, factor float64) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", scale(r, factor), scale(g, factor), scale(b, factor))
}

func scale(c uint8, f float64) int {
	v := math.Round(float64(c) * f)
	return int(math.Max(0, math.Min(255, v)))
}

func validHex(s string) bool {
	_, _, _, err := parseHex(s)
	return err == nil
}

// parseHex reads #rgb or #rrggbb
func parseHex(s string) (r, g, b uint8, err error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 || !strings.HasPrefix(strings.TrimSpace(s), "#") {
		return 0, 0, 0, fmt.Errorf("chart: bad hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("chart: bad hex colour %q: %w", s, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
