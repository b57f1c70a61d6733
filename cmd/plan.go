package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/matstudio/internal/recipe"
	"github.com/AnyUserName/matstudio/internal/transform"
)

// planFlags are the transform flags shared by apply, batch and matrix.
// Flags override whatever the chosen recipe sets. --matrix replaces the
// recipe's composition and refuses the composition flags.
type planFlags struct {
	recipe string
	file   string

	scaleX, scaleY string
	rotate         string
	shearX, shearY string
	order          string
	matrix         string
	entries        []string
}

func (f *planFlags) register(c *cobra.Command) {
	fs := c.Flags()
	fs.StringVarP(&f.recipe, "recipe", "r", "identity", fmt.Sprintf("built-in recipe (%s)", strings.Join(recipe.Names(), ", ")))
	fs.StringVar(&f.file, "recipe-file", "", "TOML recipe file (overrides --recipe)")
	fs.StringVar(&f.scaleX, "scale-x", "", "horizontal scale expression")
	fs.StringVar(&f.scaleY, "scale-y", "", "vertical scale expression")
	fs.StringVar(&f.rotate, "rotate", "", "rotation in degrees, counterclockwise on screen")
	fs.StringVar(&f.shearX, "shear-x", "", "horizontal shear expression")
	fs.StringVar(&f.shearY, "shear-y", "", "vertical shear expression")
	fs.StringVar(&f.order, "order", "", `application order, first acts first (e.g. "rotation,scale,shear")`)
	fs.StringVar(&f.matrix, "matrix", "", `combined 2x3 matrix, rows split by newline or ";" (excludes the composition flags)`)
	fs.StringArrayVar(&f.entries, "mat2", nil, `2x2 matrix for one kind as kind=a,b,c,d (repeatable)`)
}

// resolve builds the recipe from the flags and evaluates it. The returned
// name identifies the recipe in reports.
func (f *planFlags) resolve(c *cobra.Command, logger *log.Logger) (string, recipe.Plan, error) {
	var (
		r   recipe.Recipe
		err error
	)
	if f.file != "" {
		r, err = recipe.Load(f.file)
	} else {
		r, err = recipe.Get(f.recipe)
	}
	if err != nil {
		return "", recipe.Plan{}, err
	}

	changed := c.Flags().Changed
	if changed("matrix") {
		if err := f.matrixConflicts(changed); err != nil {
			return "", recipe.Plan{}, err
		}
	}
	overrides := []struct {
		flag string
		dst  *recipe.Value
		src  string
	}{
		{"scale-x", &r.Scale.X, f.scaleX},
		{"scale-y", &r.Scale.Y, f.scaleY},
		{"rotate", &r.Rotation.Degrees, f.rotate},
		{"shear-x", &r.Shear.X, f.shearX},
		{"shear-y", &r.Shear.Y, f.shearY},
	}
	custom := false
	for _, o := range overrides {
		if changed(o.flag) {
			*o.dst = recipe.Value(o.src)
			custom = true
		}
	}
	if changed("order") {
		r.Order = strings.Split(f.order, ",")
		custom = true
	}
	if changed("matrix") {
		r = recipe.Recipe{Name: r.Name, Matrix: strings.ReplaceAll(f.matrix, ";", "\n")}
		custom = true
	}

	plan, err := r.Resolve()
	if err != nil {
		return "", recipe.Plan{}, err
	}
	if plan.Matrix != nil && len(f.entries) > 0 {
		return "", recipe.Plan{}, fmt.Errorf("%w: --mat2", recipe.ErrMatrixConflict)
	}

	for _, e := range f.entries {
		k, cells, err := parseEntryFlag(e)
		if err != nil {
			return "", recipe.Plan{}, err
		}
		m, err := transform.ParseMat2(cells)
		if err != nil {
			return "", recipe.Plan{}, fmt.Errorf("--mat2 %s: %w", k, err)
		}
		var exact bool
		plan, exact = plan.WithEntry(k, m)
		if !exact {
			logger.Warn("matrix is not a pure "+k.String()+"; reported parameters are approximate", "kind", k)
		}
		custom = true
	}

	name := r.Name
	if custom {
		name += "+flags"
	}
	return name, plan, nil
}

// matrixConflicts rejects composition flags given alongside --matrix,
// which would otherwise be ignored.
func (f *planFlags) matrixConflicts(changed func(string) bool) error {
	var set []string
	for _, name := range []string{"scale-x", "scale-y", "rotate", "shear-x", "shear-y", "order"} {
		if changed(name) {
			set = append(set, "--"+name)
		}
	}
	if len(f.entries) > 0 {
		set = append(set, "--mat2")
	}
	if len(set) > 0 {
		return fmt.Errorf("%w: --matrix with %s", recipe.ErrMatrixConflict, strings.Join(set, ", "))
	}
	return nil
}

// parseEntryFlag splits "rotation=0,-1,1,0" into a kind and row-major
// cells.
func parseEntryFlag(s string) (transform.Kind, [2][2]string, error) {
	var cells [2][2]string
	name, values, ok := strings.Cut(s, "=")
	if !ok {
		return 0, cells, fmt.Errorf("--mat2 %q: want kind=a,b,c,d", s)
	}
	k, err := transform.ParseKind(name)
	if err != nil {
		return 0, cells, fmt.Errorf("--mat2: %w", err)
	}
	parts := strings.Split(values, ",")
	if len(parts) != 4 {
		return 0, cells, fmt.Errorf("--mat2 %q: want 4 values, got %d", s, len(parts))
	}
	for i, p := range parts {
		cells[i/2][i%2] = strings.TrimSpace(p)
	}
	return k, cells, nil
}
