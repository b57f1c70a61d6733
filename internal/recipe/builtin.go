package recipe

import (
	"fmt"
	"sort"
	"strconv"
)

// Built-in recipes. The rotate-* entries mirror the preset angle buttons;
// angles past 180 are stored wrapped.
var builtins = map[string]Recipe{
	"identity":   {Name: "identity"},
	"rotate-90":  rotatePreset(90),
	"rotate-120": rotatePreset(120),
	"rotate-180": rotatePreset(180),
	"rotate-270": rotatePreset(270),
	"italic": {
		Name:  "italic",
		Shear: Pair{X: "0.25"},
	},
	"flip-x": {
		Name:  "flip-x",
		Scale: Pair{X: "-1", Y: "1"},
	},
	"flip-y": {
		Name:  "flip-y",
		Scale: Pair{X: "1", Y: "-1"},
	},
	"squash": {
		Name:  "squash",
		Scale: Pair{X: "1", Y: "0.5"},
	},
}

func rotatePreset(angle int) Recipe {
	return Recipe{
		Name:     fmt.Sprintf("rotate-%d", angle),
		Rotation: Angle{Degrees: Value(strconv.Itoa(WrapAngle(angle)))},
	}
}

// WrapAngle maps angles above 180 into (-180, 180] by subtracting 360.
func WrapAngle(angle int) int {
	if angle > 180 {
		return angle - 360
	}
	return angle
}

// Get returns a built-in recipe by name.
func Get(name string) (Recipe, error) {
	if r, ok := builtins[name]; ok {
		return r, nil
	}
	return Recipe{}, fmt.Errorf("%w %q (known: %v)", ErrUnknownRecipe, name, Names())
}

// Names lists the built-in recipes alphabetically.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
