package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/AnyUserName/matstudio/internal/expr"
	"github.com/AnyUserName/matstudio/internal/matrix"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"scale": Scale, "S": Scale,
		"rotation": Rotation, "rotate": Rotation, " r ": Rotation,
		"shear": Shear, "h": Shear,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseKind("skew"); err == nil {
		t.Error("ParseKind accepted an unknown kind")
	}
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("rotation, scale ,shear")
	if err != nil {
		t.Fatalf("ParseOrder: %v", err)
	}
	if o != (Order{Rotation, Scale, Shear}) {
		t.Errorf("order = %v", o)
	}
	if o.String() != "rotation,scale,shear" {
		t.Errorf("String = %q", o.String())
	}

	for _, bad := range []string{"scale,scale,shear", "scale,rotation", "scale,rotation,shear,scale"} {
		if _, err := ParseOrder(bad); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("ParseOrder(%q) err = %v, want ErrInvalidOrder", bad, err)
		}
	}
}

func TestOrderMove(t *testing.T) {
	o := DefaultOrder()

	got := o.Move(0, 1)
	if got != (Order{Rotation, Scale, Shear}) {
		t.Errorf("Move(0,+1) = %v", got)
	}
	if o != DefaultOrder() {
		t.Error("Move mutated its receiver")
	}
	if got := o.Move(2, -1); got != (Order{Scale, Shear, Rotation}) {
		t.Errorf("Move(2,-1) = %v", got)
	}
	if got := o.Move(0, -1); got != o {
		t.Errorf("Move past start = %v, want unchanged", got)
	}
	if got := o.Move(2, 1); got != o {
		t.Errorf("Move past end = %v, want unchanged", got)
	}
	if err := o.Move(1, 1).Validate(); err != nil {
		t.Errorf("moved order invalid: %v", err)
	}
}

func TestBuilders(t *testing.T) {
	if got := ScaleMatrix(2, 3); got != (matrix.Mat2{{2, 0}, {0, 3}}) {
		t.Errorf("ScaleMatrix = %v", got)
	}
	if got := ShearMatrix(0.5, -1); got != (matrix.Mat2{{1, 0.5}, {-1, 1}}) {
		t.Errorf("ShearMatrix = %v", got)
	}
	r := RotationMatrix(30)
	if !near(r[0][0], math.Sqrt(3)/2) || !near(r[0][1], -0.5) || !near(r[1][0], 0.5) || !near(r[1][1], math.Sqrt(3)/2) {
		t.Errorf("RotationMatrix(30) = %v", r)
	}
}

func TestRotationSignConvention(t *testing.T) {
	// 90 degrees on a 10x20 rectangle, about the unshifted origin.
	m := matrix.Embed(RotationMatrix(90))
	tests := []struct{ x, y, wx, wy float64 }{
		{0, 0, 0, 0},
		{10, 0, 0, 10},
		{10, 20, -20, 10},
		{0, 20, -20, 0},
	}
	for _, tt := range tests {
		x, y := m.Apply(tt.x, tt.y)
		if !near(x, tt.wx) || !near(y, tt.wy) {
			t.Errorf("(%v,%v) -> (%v,%v), want (%v,%v)", tt.x, tt.y, x, y, tt.wx, tt.wy)
		}
	}
}

func TestExtractRoundTrip(t *testing.T) {
	sx, sy, exact := ExtractScale(ScaleMatrix(1.5, 0.25))
	if !exact || sx != 1.5 || sy != 0.25 {
		t.Errorf("ExtractScale = %v, %v, %v", sx, sy, exact)
	}

	for _, deg := range []float64{0, 30, -45, 90, 179, -179} {
		got, exact := ExtractRotation(RotationMatrix(deg))
		if !exact || !near(got, deg) {
			t.Errorf("ExtractRotation(%v) = %v, %v", deg, got, exact)
		}
	}

	hx, hy, exact := ExtractShear(ShearMatrix(0.3, -0.7))
	if !exact || hx != 0.3 || hy != -0.7 {
		t.Errorf("ExtractShear = %v, %v, %v", hx, hy, exact)
	}
}

func TestExtractNonCanonical(t *testing.T) {
	composed := RotationMatrix(30).Mul(ScaleMatrix(2, 1))
	if _, exact := ExtractRotation(composed); exact {
		t.Error("scaled rotation reported as exact rotation")
	}
	if _, _, exact := ExtractScale(composed); exact {
		t.Error("rotated scale reported as exact scale")
	}
	if _, _, exact := ExtractShear(ScaleMatrix(2, 2)); exact {
		t.Error("scale reported as exact shear")
	}
}

func TestParamsSync(t *testing.T) {
	p := DefaultParams()
	p, exact := p.Sync(Rotation, RotationMatrix(45))
	if !exact || !near(p.Degrees, 45) {
		t.Errorf("Sync rotation = %+v, %v", p, exact)
	}
	if p.ScaleX != 1 || p.ScaleY != 1 || p.ShearX != 0 {
		t.Errorf("Sync touched other kinds: %+v", p)
	}
	p, _ = p.Sync(Shear, ShearMatrix(0.2, 0))
	if p.ShearX != 0.2 || !near(p.Degrees, 45) {
		t.Errorf("Sync shear = %+v", p)
	}
}

func TestParamTextEval(t *testing.T) {
	p, err := ParamText{ScaleX: "sqrt(2)", Degrees: "pi*0", ShearY: "1/4"}.Eval()
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !near(p.ScaleX, math.Sqrt2) || p.ScaleY != 1 || p.Degrees != 0 || p.ShearY != 0.25 {
		t.Errorf("params = %+v", p)
	}

	_, err = ParamText{ShearX: "1 +* 2"}.Eval()
	var pe *expr.ParseError
	if !errors.As(err, &pe) || pe.Text != "1 +* 2" {
		t.Errorf("err = %v, want ParseError carrying the text", err)
	}
}

func TestParseMat2(t *testing.T) {
	m, err := ParseMat2([2][2]string{{"√2/2", "-√2/2"}, {"√2/2", "√2/2"}})
	if err != nil {
		t.Fatalf("ParseMat2: %v", err)
	}
	deg, exact := ExtractRotation(m)
	if !exact || !near(deg, 45) {
		t.Errorf("rotation of parsed matrix = %v, %v", deg, exact)
	}
	if _, err := ParseMat2([2][2]string{{"1", "x"}, {"0", "1"}}); err == nil {
		t.Error("ParseMat2 accepted a bad cell")
	}
}

func TestComposeNeutralIsIdentity(t *testing.T) {
	m := Compose(DefaultOrder(), DefaultParams().Set(), 64, 48)
	if !m.ApproxEqual(matrix.Identity(), 1e-12) {
		t.Errorf("neutral compose = %v, want identity", m)
	}
}

func TestComposeCentersOnMidpoint(t *testing.T) {
	p := DefaultParams()
	p.Degrees = 37
	p.ScaleX = 2
	p.ShearX = 0.4
	m := Compose(DefaultOrder(), p.Set(), 40, 30)
	x, y := m.Apply(20, 15)
	if !near(x, 20) || !near(y, 15) {
		t.Errorf("center moved to (%v,%v)", x, y)
	}
}

func TestComposeOrderSensitivity(t *testing.T) {
	p := DefaultParams()
	p.ScaleX, p.ScaleY = 2, 0.5
	p.Degrees = 30
	s := p.Set()

	sr := Compose(Order{Scale, Rotation, Shear}, s, 100, 100)
	rs := Compose(Order{Rotation, Scale, Shear}, s, 100, 100)
	if sr.ApproxEqual(rs, 1e-9) {
		t.Errorf("scale-then-rotate equals rotate-then-scale: %v", sr)
	}
}

func TestComposeFirstKindActsFirst(t *testing.T) {
	s := IdentitySet().
		With(Scale, ScaleMatrix(2, 1)).
		With(Rotation, RotationMatrix(90))
	lin := Linear(Order{Scale, Rotation, Shear}, s)
	// (1,0) scales to (2,0), then rotates to (0,2).
	x, y := lin.Apply(1, 0)
	if !near(x, 0) || !near(y, 2) {
		t.Errorf("Apply(1,0) = (%v,%v), want (0,2)", x, y)
	}
}
