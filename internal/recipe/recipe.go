// Package recipe describes a transform as configuration: the order of the
// three kinds, their parameters as expressions, or a raw combined matrix.
// Recipes come from TOML files or from the built-in table.
package recipe

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/AnyUserName/matstudio/internal/matrix"
	"github.com/AnyUserName/matstudio/internal/transform"
)

// ErrUnknownRecipe is returned by Get for names not in the built-in table.
var ErrUnknownRecipe = errors.New("unknown recipe")

// ErrMatrixConflict is returned when a manual matrix is given together
// with composition fields it would override.
var ErrMatrixConflict = errors.New("manual matrix cannot be combined with composition")

// Value is a parameter expression. In TOML it may be written as a string
// ("sqrt(2)/2") or as a plain number.
type Value string

// UnmarshalTOML implements toml.Unmarshaler.
func (v *Value) UnmarshalTOML(data any) error {
	switch d := data.(type) {
	case string:
		*v = Value(d)
	case int64:
		*v = Value(strconv.FormatInt(d, 10))
	case float64:
		*v = Value(strconv.FormatFloat(d, 'g', -1, 64))
	default:
		return fmt.Errorf("parameter must be a number or expression string, got %T", data)
	}
	return nil
}

// Recipe is the on-disk form of a transform.
type Recipe struct {
	Name     string   `toml:"name"`
	Order    []string `toml:"order"`
	Scale    Pair     `toml:"scale"`
	Rotation Angle    `toml:"rotation"`
	Shear    Pair     `toml:"shear"`

	// Entries types in the 2x2 matrix of a kind directly, keyed by kind
	// name, as two rows of two expressions. The kind's parameters are
	// synced from it on a best-effort basis.
	Entries map[string][][]Value `toml:"entries"`

	// Matrix, when set, is a 2x3 combined matrix in the text form accepted
	// by matrix.ParseText. It bypasses composition, so the fields above
	// must be left empty.
	Matrix string `toml:"matrix"`
}

// Pair holds the x and y expressions of scale or shear.
type Pair struct {
	X Value `toml:"x"`
	Y Value `toml:"y"`
}

// Angle holds the rotation expression in degrees.
type Angle struct {
	Degrees Value `toml:"degrees"`
}

// Plan is a resolved recipe, ready for the engine.
type Plan struct {
	Order  transform.Order
	Params transform.Params

	// Entries replaces the matrix built from Params for individual kinds.
	Entries map[transform.Kind]matrix.Mat2

	// Matrix is non-nil for recipes that supply the combined matrix
	// directly.
	Matrix *matrix.Mat3
}

// Set returns the per-kind matrices: built from Params, then overridden
// by Entries.
func (p Plan) Set() transform.Set {
	s := p.Params.Set()
	for k, m := range p.Entries {
		s = s.With(k, m)
	}
	return s
}

// WithEntry returns a copy of p whose kind k uses m, with the parameters
// of k synced from m. exact reports whether the synced parameters rebuild
// m on their own.
func (p Plan) WithEntry(k transform.Kind, m matrix.Mat2) (plan Plan, exact bool) {
	entries := make(map[transform.Kind]matrix.Mat2, len(p.Entries)+1)
	for kk, mm := range p.Entries {
		entries[kk] = mm
	}
	entries[k] = m
	p.Entries = entries
	p.Params, exact = p.Params.Sync(k, m)
	return p, exact
}

// Centered returns the centered combined matrix for a width x height
// image: the manual matrix when present, else the composition.
func (p Plan) Centered(width, height int) matrix.Mat3 {
	if p.Matrix != nil {
		return *p.Matrix
	}
	return transform.Compose(p.Order, p.Set(), width, height)
}

// Resolve evaluates every expression. Nothing is evaluated lazily, so a
// Plan never carries a parse failure.
func (r Recipe) Resolve() (Plan, error) {
	plan := Plan{Order: transform.DefaultOrder(), Params: transform.DefaultParams()}

	if r.Matrix != "" {
		if fields := r.composition(); len(fields) > 0 {
			return Plan{}, fmt.Errorf("%w: %s", ErrMatrixConflict, strings.Join(fields, ", "))
		}
		m, err := matrix.ParseText(r.Matrix)
		if err != nil {
			return Plan{}, err
		}
		plan.Matrix = &m
		return plan, nil
	}

	if len(r.Order) > 0 {
		if len(r.Order) != 3 {
			return Plan{}, fmt.Errorf("%w: got %v", transform.ErrInvalidOrder, r.Order)
		}
		for i, name := range r.Order {
			k, err := transform.ParseKind(name)
			if err != nil {
				return Plan{}, err
			}
			plan.Order[i] = k
		}
		if err := plan.Order.Validate(); err != nil {
			return Plan{}, err
		}
	}

	p, err := transform.ParamText{
		ScaleX:  string(r.Scale.X),
		ScaleY:  string(r.Scale.Y),
		Degrees: string(r.Rotation.Degrees),
		ShearX:  string(r.Shear.X),
		ShearY:  string(r.Shear.Y),
	}.Eval()
	if err != nil {
		return Plan{}, err
	}
	plan.Params = p

	for name, rows := range r.Entries {
		k, err := transform.ParseKind(name)
		if err != nil {
			return Plan{}, fmt.Errorf("entries: %w", err)
		}
		cells, err := entryCells(rows)
		if err != nil {
			return Plan{}, fmt.Errorf("entries.%s: %w", name, err)
		}
		m, err := transform.ParseMat2(cells)
		if err != nil {
			return Plan{}, fmt.Errorf("entries.%s: %w", name, err)
		}
		plan, _ = plan.WithEntry(k, m)
	}
	return plan, nil
}

// composition names the composition fields r sets.
func (r Recipe) composition() []string {
	var fields []string
	if len(r.Order) > 0 {
		fields = append(fields, "order")
	}
	if r.Scale != (Pair{}) {
		fields = append(fields, "scale")
	}
	if r.Rotation != (Angle{}) {
		fields = append(fields, "rotation")
	}
	if r.Shear != (Pair{}) {
		fields = append(fields, "shear")
	}
	if len(r.Entries) > 0 {
		fields = append(fields, "entries")
	}
	return fields
}

func entryCells(rows [][]Value) ([2][2]string, error) {
	var cells [2][2]string
	if len(rows) != 2 {
		return cells, fmt.Errorf("want 2 rows, got %d", len(rows))
	}
	for r, row := range rows {
		if len(row) != 2 {
			return cells, fmt.Errorf("row %d: want 2 values, got %d", r, len(row))
		}
		cells[r][0], cells[r][1] = string(row[0]), string(row[1])
	}
	return cells, nil
}

// Parse decodes a recipe from TOML text.
func Parse(data string) (Recipe, error) {
	var r Recipe
	md, err := toml.Decode(data, &r)
	if err != nil {
		return Recipe{}, fmt.Errorf("decode recipe: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Recipe{}, fmt.Errorf("decode recipe: unknown key %q", undecoded[0].String())
	}
	return r, nil
}

// Load reads a recipe file.
func Load(path string) (Recipe, error) {
	var r Recipe
	md, err := toml.DecodeFile(path, &r)
	if err != nil {
		return Recipe{}, fmt.Errorf("decode recipe %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Recipe{}, fmt.Errorf("decode recipe %s: unknown key %q", path, undecoded[0].String())
	}
	if r.Name == "" {
		r.Name = path
	}
	return r, nil
}
