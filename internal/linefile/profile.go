package linefile

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"

	"github.com/gogpu/ribbon"
)

// profiles maps width profile names to shapes over t in [0, 1].
var profiles = map[string]func(t float32) float32{
	"constant": func(float32) float32 { return 1 },
	"taper":    func(t float32) float32 { return 1 - t },
	"swell":    func(t float32) float32 { return math32.Sin(math32.Pi * t) },
	"pulse":    func(t float32) float32 { return 0.5 + 0.5*math32.Cos(4*math32.Pi*t) },
}

// Profiles returns the known width profile names, sorted.
func Profiles() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile returns the width function name scaled by scale. An empty name
// means constant. Constant width 1 returns nil, which ribbon treats as the
// default width.
func Profile(name string, scale float32) (ribbon.WidthFunc, error) {
	if name == "" {
		name = "constant"
	}
	shape, ok := profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	if name == "constant" && scale == 1 {
		return nil, nil
	}
	return func(t float32) float32 { return scale * shape(t) }, nil
}
