package lexer

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Electrostatics/mmcif-pdbx/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `data_test # trailing comment
# full-line comment
_cell.length_a   61.35
_struct.title    'A title with spaces'
_struct.pdbx_descriptor "quoted value"
_entity.details  don't
loop_
_atom_site.id
1 ? .
`

	expected := []token.Token{
		{Type: token.WORD, Literal: "data_test", Line: 1},
		{Type: token.ITEM, Category: "cell", Attribute: "length_a", Line: 3},
		{Type: token.WORD, Literal: "61.35", Line: 3},
		{Type: token.ITEM, Category: "struct", Attribute: "title", Line: 4},
		{Type: token.STRING, Literal: "A title with spaces", Line: 4},
		{Type: token.ITEM, Category: "struct", Attribute: "pdbx_descriptor", Line: 5},
		{Type: token.STRING, Literal: "quoted value", Line: 5},
		{Type: token.ITEM, Category: "entity", Attribute: "details", Line: 6},
		{Type: token.WORD, Literal: "don't", Line: 6},
		{Type: token.WORD, Literal: "loop_", Line: 7},
		{Type: token.ITEM, Category: "atom_site", Attribute: "id", Line: 8},
		{Type: token.WORD, Literal: "1", Line: 9},
		{Type: token.WORD, Literal: "?", Line: 9},
		{Type: token.WORD, Literal: ".", Line: 9},
	}

	l := New(strings.NewReader(input))
	for i, want := range expected {
		tok, err := l.Next()
		require.NoError(t, err, "token %d", i)
		require.Equal(t, want, tok, "token %d", i)
	}
	_, err := l.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestMultilineString(t *testing.T) {
	input := "_a.x\n;first line\nsecond line\n;\n_a.y B\n"

	l := New(strings.NewReader(input))

	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.ITEM, tok.Type)

	tok, err = l.Next()
	require.NoError(t, err)
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, "first line\nsecond line", tok.Literal)
	require.Equal(t, 2, tok.Line)

	tok, err = l.Next()
	require.NoError(t, err)
	require.Equal(t, token.ITEM, tok.Type)
	require.Equal(t, "y", tok.Attribute)
}

func TestMultilineClosingLineRescanned(t *testing.T) {
	// Text after the closing semicolon belongs to the next statement.
	input := ";block\n;_a.x value\n"

	l := New(strings.NewReader(input))

	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, "block", tok.Literal)

	tok, err = l.Next()
	require.NoError(t, err)
	require.Equal(t, token.ITEM, tok.Type)
	require.Equal(t, "a", tok.Category)

	tok, err = l.Next()
	require.NoError(t, err)
	require.Equal(t, token.WORD, tok.Type)
	require.Equal(t, "value", tok.Literal)
}

func TestUnterminatedMultiline(t *testing.T) {
	l := New(strings.NewReader("_a.x\n;never closed\n"))

	_, err := l.Next()
	require.NoError(t, err)
	_, err = l.Next()
	require.ErrorIs(t, err, ErrUnterminatedString)
}

func TestSemicolonNotAtLineStart(t *testing.T) {
	// A semicolon mid-line is ordinary word content.
	l := New(strings.NewReader("_a.x ;A\n"))

	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.ITEM, tok.Type)

	tok, err = l.Next()
	require.NoError(t, err)
	require.Equal(t, token.WORD, tok.Type)
	require.Equal(t, ";A", tok.Literal)
}

func TestQuoteTermination(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		literal string
		typ     token.Type
	}{
		{"apostrophe inside word", "don't", "don't", token.WORD},
		{"quote closed at eol", "'abc'", "abc", token.STRING},
		{"quote closed before space", "'a b' x", "a b", token.STRING},
		{"embedded double quote", `'say "hi" now'`, `say "hi" now`, token.STRING},
		{"empty quoted string", "'' x", "", token.STRING},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(strings.NewReader(tt.input))
			tok, err := l.Next()
			require.NoError(t, err)
			require.Equal(t, tt.typ, tok.Type)
			require.Equal(t, tt.literal, tok.Literal)
		})
	}
}

func TestCommentsProduceNoTokens(t *testing.T) {
	l := New(strings.NewReader("# one\n   # two\nword # three\n"))

	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.WORD, tok.Type)
	require.Equal(t, "word", tok.Literal)
	require.Equal(t, 3, tok.Line)

	_, err = l.Next()
	require.ErrorIs(t, err, io.EOF)
}
