package matrix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// TextError reports manually entered matrix text that is not exactly two
// rows of three numbers.
type TextError struct {
	Text   string
	Reason string
}

func (e *TextError) Error() string {
	return fmt.Sprintf("invalid matrix text %q: %s", e.Text, e.Reason)
}

// Format renders the two stored rows of m, one per line, between bracket
// lines. Each value is printed with %9.3f.
func Format(m Mat3) string {
	var sb strings.Builder
	sb.WriteString("[\n")
	for r := 0; r < 2; r++ {
		row := [3]float64{m[r*3], m[r*3+1], m[r*3+2]}
		for i, v := range row {
			if v == 0 {
				row[i] = 0 // drop the sign of -0
			}
		}
		fmt.Fprintf(&sb, "  %9.3f  %9.3f  %9.3f\n", row[0], row[1], row[2])
	}
	sb.WriteString("]")
	return sb.String()
}

// FormatValue prints integral values without decimals and everything else
// with four.
func FormatValue(v float64) string {
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		if r == 0 {
			r = 0
		}
		return strconv.FormatFloat(r, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// ParseText parses text produced by Format (or typed by a user) back into a
// Mat3. Brackets are ignored, blank lines are skipped and values may be
// separated by whitespace or commas.
func ParseText(text string) (Mat3, error) {
	cleaned := strings.NewReplacer("[", "", "]", "").Replace(text)

	var lines []string
	for _, l := range strings.Split(cleaned, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) != 2 {
		return Mat3{}, &TextError{Text: text, Reason: fmt.Sprintf("want 2 rows, got %d", len(lines))}
	}

	var m Mat3
	for r, line := range lines {
		fields := strings.FieldsFunc(line, func(c rune) bool {
			return c == ',' || c == ' ' || c == '\t' || c == '\r'
		})
		if len(fields) != 3 {
			return Mat3{}, &TextError{Text: text, Reason: fmt.Sprintf("row %d: want 3 values, got %d", r+1, len(fields))}
		}
		for c, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return Mat3{}, &TextError{Text: text, Reason: fmt.Sprintf("row %d: %q is not a number", r+1, f)}
			}
			m[r*3+c] = v
		}
	}
	return m, nil
}
