package sampling

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/kika-project/kika-sampling/pkg/models"
)

// pyBuilder accumulates Python source one block at a time.
type pyBuilder struct {
	sb strings.Builder
}

func (b *pyBuilder) line(format string, args ...interface{}) *pyBuilder {
	if len(args) == 0 {
		b.sb.WriteString(format)
	} else {
		fmt.Fprintf(&b.sb, format, args...)
	}
	b.sb.WriteByte('\n')
	return b
}

func (b *pyBuilder) blank() *pyBuilder {
	b.sb.WriteByte('\n')
	return b
}

func (b *pyBuilder) comment(text string) *pyBuilder {
	return b.line("# %s", text)
}

// block appends a pre-rendered block verbatim.
func (b *pyBuilder) block(text string) *pyBuilder {
	b.sb.WriteString(text)
	return b
}

func (b *pyBuilder) String() string {
	return b.sb.String()
}

// assignment is one "name = value" line of an aligned parameter block.
type assignment struct {
	name  string
	value string
}

// assignments writes name/value pairs with names left-justified to pad columns.
func (b *pyBuilder) assignments(pad int, items ...assignment) *pyBuilder {
	for _, it := range items {
		b.line("%-*s= %s", pad, it.name, it.value)
	}
	return b
}

// call writes fn( name = value, ... ) with one keyword argument per line.
func (b *pyBuilder) call(fn string, args ...assignment) *pyBuilder {
	width := 0
	for _, a := range args {
		if len(a.name) > width {
			width = len(a.name)
		}
	}
	b.line("%s(", fn)
	for _, a := range args {
		b.line("    %-*s = %s,", width, a.name, a.value)
	}
	return b.line(")")
}

// pyQuote renders s as a Python string literal using the given quote character.
func pyQuote(s string, quote byte) string {
	var sb strings.Builder
	sb.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == quote:
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}

// pySingle renders a single-quoted Python string.
func pySingle(s string) string { return pyQuote(s, '\'') }

// pyDouble renders a double-quoted Python string.
func pyDouble(s string) string { return pyQuote(s, '"') }

func pyBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// pyFloat mirrors Python's repr for floats: integral values keep ".0" and
// very small or very large magnitudes switch to exponent notation.
func pyFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "float('nan')"
	case math.IsInf(f, 1):
		return "float('inf')"
	case math.IsInf(f, -1):
		return "-float('inf')"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func pyOptionalInt(v *int) string {
	if v == nil {
		return "None"
	}
	return strconv.Itoa(*v)
}

func pyIntList(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func pyFloatList(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = pyFloat(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// pyNameList renders [prefix_1, prefix_2, ...] spread over an indented line.
func pyNameList(prefix string, n int) string {
	return "[\n    " + pyNames(prefix, n) + "\n]"
}

func pyNames(prefix string, n int) string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s_%d", prefix, i+1)
	}
	return strings.Join(names, ", ")
}

// pyAutofix encodes the "none" policy as Python None, never as a string.
func pyAutofix(a models.Autofix) string {
	if a == models.AutofixNone || a == "" {
		return "None"
	}
	return pyDouble(string(a))
}

// pyRemoveBlocks renders the isotope -> block ranges mapping as a dict
// literal with keys in ascending order.
func pyRemoveBlocks(blocks map[int][]models.BlockRange) string {
	if len(blocks) == 0 {
		return "None"
	}
	isotopes := make([]int, 0, len(blocks))
	for iso := range blocks {
		isotopes = append(isotopes, iso)
	}
	sort.Ints(isotopes)

	entries := make([]string, 0, len(isotopes))
	for _, iso := range isotopes {
		ranges := make([]string, len(blocks[iso]))
		for i, r := range blocks[iso] {
			ranges[i] = fmt.Sprintf("(%d, %d)", r[0], r[1])
		}
		entries = append(entries, fmt.Sprintf("    %d: [%s]", iso, strings.Join(ranges, ", ")))
	}
	return "{\n" + strings.Join(entries, ",\n") + "\n}"
}
