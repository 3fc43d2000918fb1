package pdbx

import (
	"regexp"
	"strings"
)

// dataType classifies a cell's rendering. The declaration order is the
// generality order used when inferring a loop column's type: the
// largest value observed across the column wins.
type dataType int

const (
	typeNull dataType = iota
	typeInteger
	typeFloat
	typeUnquoted
	typeItemName
	typeDoubleQuoted
	typeSingleQuoted
	typeMultiLine
)

// formatType selects the justification rule for a loop column.
type formatType int

const (
	formatNull formatType = iota
	formatNumber
	formatUnquoted
	formatQuoted
	formatMultiLine
)

func (t dataType) format() formatType {
	switch t {
	case typeInteger, typeFloat:
		return formatNumber
	case typeUnquoted:
		return formatUnquoted
	case typeItemName, typeDoubleQuoted, typeSingleQuoted:
		return formatQuoted
	case typeMultiLine:
		return formatMultiLine
	default:
		return formatNull
	}
}

var (
	integerRE = regexp.MustCompile(`^[0-9]+$`)
	floatRE   = regexp.MustCompile(
		`^-?(([0-9]+)[.]?|([0-9]*[.][0-9]+))([(][0-9]+[)])?([eE][+-]?[0-9]+)?$`)
	// A quote adjacent to whitespace confuses simple downstream
	// parsers; checked only in strict mode.
	singleNearSpaceRE = regexp.MustCompile(`('\s)|(\s')`)
	doubleNearSpaceRE = regexp.MustCompile(`("\s)|(\s")`)
)

// formatValue renders one cell following the PDBx quoting rules and
// reports the data type the rendering was chosen for. Numeric literals
// stay bare; the literal strings "." and "?" are double-quoted so they
// cannot be mistaken for null markers. The strict flag rejects quote
// styles that would leave a quote character next to whitespace inside
// the value, tightening the fallback cascade.
func formatValue(v Value, strict bool) (string, dataType) {
	if v.IsNull() {
		return "?", typeNull
	}
	s := v.Text()
	switch {
	case integerRE.MatchString(s):
		return s, typeInteger
	case floatRE.MatchString(s):
		return s, typeFloat
	case s == "." || s == "?":
		return `"` + s + `"`, typeDoubleQuoted
	case s == "":
		return ".", typeNull
	}
	if !strings.ContainsAny(s, " \t\n\r\v\f'\"") {
		if strings.HasPrefix(s, "_") {
			// An embedded item name must not lex as one.
			return `"` + s + `"`, typeItemName
		}
		return s, typeUnquoted
	}
	if strings.ContainsAny(s, "\n\r") {
		return semicolonBlock(s), typeMultiLine
	}
	if strict {
		switch {
		case !strings.Contains(s, `"`) && !singleNearSpaceRE.MatchString(s):
			return `"` + s + `"`, typeDoubleQuoted
		case !strings.Contains(s, "'") && !doubleNearSpaceRE.MatchString(s):
			return "'" + s + "'", typeSingleQuoted
		default:
			return semicolonBlock(s), typeMultiLine
		}
	}
	switch {
	case !strings.Contains(s, `"`):
		return `"` + s + `"`, typeDoubleQuoted
	case !strings.Contains(s, "'"):
		return "'" + s + "'", typeSingleQuoted
	default:
		return semicolonBlock(s), typeMultiLine
	}
}

func semicolonBlock(s string) string {
	if strings.HasSuffix(s, "\n") {
		return "\n;" + s + ";\n"
	}
	return "\n;" + s + "\n;\n"
}
