package token

// Type is the type of a token.
type Type string

// Token represents a lexical token of the CIF grammar.
//
// ITEM tokens carry the category and attribute parts of a
// _category.attribute name pair; STRING and WORD tokens carry their
// text in Literal. Line is the 1-based input line the token came from.
type Token struct {
	Type      Type
	Category  string
	Attribute string
	Literal   string
	Line      int
}

const (
	// ITEM is a _category.attribute name pair.
	ITEM Type = "ITEM"
	// STRING is a quoted or semicolon-delimited string. Its Literal
	// may legitimately be empty: '' is a valid quoted string.
	STRING Type = "STRING"
	// WORD is a maximal run of non-whitespace with no special meaning
	// assigned yet.
	WORD Type = "WORD"
)
