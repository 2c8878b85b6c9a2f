// Package params builds the table of user parameters that generated scripts
// expose as top-level variables.
package params

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/philipparndt/fusion2scad/internal/host"
	"github.com/philipparndt/fusion2scad/internal/units"
)

// Parameter is a user parameter with its script identifier. Value is in
// output units for lengths and unchanged otherwise.
type Parameter struct {
	RawName    string
	Identifier string
	Value      float64
	Unit       string
	Expression string
	Comment    string
}

// Table is the read-only parameter context of one export run.
type Table struct {
	params       []Parameter
	byName       map[string]int
	byExpression map[string]int
}

var lengthUnits = map[string]bool{
	"mm": true, "cm": true, "m": true, "in": true, "ft": true,
}

// Build creates the table from host parameters, keeping host order.
func Build(hostParams []host.Parameter) *Table {
	t := &Table{
		byName:       make(map[string]int, len(hostParams)),
		byExpression: make(map[string]int, len(hostParams)),
	}
	used := make(map[string]bool, len(hostParams))

	for _, hp := range hostParams {
		ident := Sanitize(hp.Name)
		if used[ident] {
			base := ident
			for n := 2; used[ident]; n++ {
				ident = fmt.Sprintf("%s_%d", base, n)
			}
		}
		used[ident] = true

		value := hp.Value
		if IsLengthUnit(hp.Unit) {
			value = units.ToMM(value)
		}

		idx := len(t.params)
		t.params = append(t.params, Parameter{
			RawName:    hp.Name,
			Identifier: ident,
			Value:      value,
			Unit:       hp.Unit,
			Expression: hp.Expression,
			Comment:    hp.Comment,
		})

		if _, ok := t.byName[hp.Name]; !ok {
			t.byName[hp.Name] = idx
		}
		if expr := strings.TrimSpace(hp.Expression); expr != "" {
			if _, ok := t.byExpression[expr]; !ok {
				t.byExpression[expr] = idx
			}
		}
	}

	return t
}

// IsLengthUnit reports whether values in unit are stored as host lengths.
func IsLengthUnit(unit string) bool {
	return lengthUnits[strings.ToLower(strings.TrimSpace(unit))]
}

// keywords are the OpenSCAD words that cannot be assigned to.
var keywords = map[string]bool{
	"module": true, "function": true, "if": true, "else": true, "for": true,
	"let": true, "each": true, "true": true, "false": true, "undef": true,
	"include": true, "use": true, "assert": true, "echo": true,
	"intersection_for": true,
}

// Sanitize converts a host parameter name into a valid script identifier.
// Keywords get a trailing underscore.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune('_')
		}
	}

	s := b.String()
	if s == "" {
		return "_"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	if keywords[s] {
		s += "_"
	}
	return s
}

// Len returns the number of parameters.
func (t *Table) Len() int {
	return len(t.params)
}

// All returns the parameters in host order.
func (t *Table) All() []Parameter {
	out := make([]Parameter, len(t.params))
	copy(out, t.params)
	return out
}

// lookup returns the parameter with the given raw host name.
func (t *Table) lookup(rawName string) (Parameter, bool) {
	idx, ok := t.byName[rawName]
	if !ok {
		return Parameter{}, false
	}
	return t.params[idx], true
}

// Link converts a host length and links it to a parameter when its
// expression is exactly a parameter name or a parameter's own expression.
func (t *Table) Link(hostValue float64, expression string) units.Dim {
	d := units.Literal(units.ToMM(hostValue))
	if t == nil {
		return d
	}

	expr := strings.TrimSpace(expression)
	if expr == "" {
		return d
	}
	if p, ok := t.lookup(expr); ok {
		d.Ref = p.Identifier
		return d
	}
	if idx, ok := t.byExpression[expr]; ok && math.Abs(t.params[idx].Value-d.Value) < 1e-6 {
		d.Ref = t.params[idx].Identifier
	}
	return d
}

// Lines renders the parameter section of a script.
func (t *Table) Lines(precision int) []string {
	lines := make([]string, 0, len(t.params))
	for _, p := range t.params {
		line := fmt.Sprintf("%s = %s;", p.Identifier, units.Format(p.Value, precision))

		var notes []string
		if p.Comment != "" {
			notes = append(notes, p.Comment)
		}
		if p.Expression != "" && p.Expression != p.RawName {
			notes = append(notes, "expression: "+p.Expression)
		}
		if len(notes) > 0 {
			line += " // " + strings.Join(notes, "; ")
		}
		lines = append(lines, line)
	}
	return lines
}
