package pdbx

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Electrostatics/mmcif-pdbx/internal/lexer"
	"github.com/Electrostatics/mmcif-pdbx/internal/token"
)

// state is the parser state selected from the current token on every
// step of the machine.
type state int

const (
	stateDataContainer state = iota
	stateTable
	stateGlobal
	stateDefinition
	stateStop
)

var reservedWords = map[string]state{
	"data":   stateDataContainer,
	"loop":   stateTable,
	"global": stateGlobal,
	"save":   stateDefinition,
	"stop":   stateStop,
}

// reservedState matches the text before the first underscore against
// the reserved CIF keywords, case-insensitively.
func reservedState(word string) (string, state, bool) {
	i := strings.Index(word, "_")
	if i < 0 {
		return "", 0, false
	}
	name := strings.ToLower(word[:i])
	st, ok := reservedWords[name]
	return name, st, ok
}

// containerName extracts the name suffix of a data_ or save_ keyword.
func containerName(word string) string {
	return strings.TrimSpace(word[5:])
}

// Reader parses PDBx/mmCIF data files and dictionaries into a list of
// containers.
type Reader struct {
	lex *lexer.Lexer

	tok token.Token

	containers []*Container
	container  *Container
	categories map[string]*Category // category index for the open scope
}

// NewReader returns a reader consuming CIF text from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{lex: lexer.New(r)}
}

// Read parses the whole input and returns the containers in the order
// their opening keywords were encountered. A *SyntaxError aborts the
// parse; containers completed before the failing statement are still
// returned alongside the error, with the in-progress container's
// categories possibly incomplete.
func (r *Reader) Read() ([]*Container, error) {
	err := r.parse()
	return r.containers, err
}

func (r *Reader) parse() error {
	found, err := r.skipToFirstReserved()
	if err != nil || !found {
		return err
	}
	for {
		switch r.tok.Type {
		case token.ITEM:
			done, err := r.parseItemValue()
			if err != nil || done {
				return err
			}
			continue
		case token.WORD:
		default:
			return r.syntaxError("miscellaneous syntax error")
		}
		_, st, ok := reservedState(r.tok.Literal)
		if !ok {
			return r.syntaxError("unrecognized syntax element: " + r.tok.Literal)
		}
		switch st {
		case stateTable:
			done, err := r.parseLoop()
			if err != nil || done {
				return err
			}
			continue
		case stateDataContainer:
			blockName := containerName(r.tok.Literal)
			if blockName == "" {
				blockName = "unidentified"
			}
			r.openScope(NewContainer(blockName))
		case stateDefinition:
			// An unnamed save_ only closes the current frame.
			if frameName := containerName(r.tok.Literal); frameName != "" {
				r.openScope(NewDefinition(frameName))
			}
		case stateGlobal:
			c := NewContainer("blank-global")
			c.SetGlobal()
			r.openScope(c)
		case stateStop:
			return nil
		}
		ok, err := r.next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// skipToFirstReserved advances past leading junk until the first
// reserved word. Exhausting the input first is not an error: the
// document is empty.
func (r *Reader) skipToFirstReserved() (bool, error) {
	for {
		ok, err := r.next()
		if err != nil || !ok {
			return false, err
		}
		if r.tok.Type != token.WORD {
			continue
		}
		if _, _, reserved := reservedState(r.tok.Literal); reserved {
			return true, nil
		}
	}
}

// parseItemValue consumes one _category.attribute statement and its
// value. On return the current token is the start of the next
// statement; done reports end of input.
func (r *Reader) parseItemValue() (done bool, err error) {
	catName, attrName := r.tok.Category, r.tok.Attribute
	cat, ok := r.categories[catName]
	if !ok {
		if r.container == nil {
			return false, r.syntaxError(
				"category cannot be added outside a data_ block or save_ frame")
		}
		cat = NewCategory(catName)
		r.categories[catName] = cat
		r.container.Append(cat)
		// Item-value statements for one category share its first row.
		cat.AppendRow(nil)
	}
	if cat.HasAttribute(attrName) {
		return false, r.syntaxError(fmt.Sprintf(
			"duplicate attribute _%s.%s", catName, attrName))
	}
	cat.AppendAttribute(attrName)

	ok, err = r.next()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, r.syntaxError("unexpected end of file")
	}
	v, err := r.itemValue(catName, attrName)
	if err != nil {
		return false, err
	}
	cat.rows[0] = append(cat.rows[0], v)

	ok, err = r.next()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// itemValue maps the current token to a cell value, rejecting misplaced
// reserved words.
func (r *Reader) itemValue(catName, attrName string) (Value, error) {
	switch r.tok.Type {
	case token.ITEM:
		return Value{}, r.syntaxError(fmt.Sprintf(
			"missing data for item _%s.%s", catName, attrName))
	case token.WORD:
		switch r.tok.Literal {
		case "?":
			return Null, nil
		case ".":
			return String(""), nil
		}
		if name, _, reserved := reservedState(r.tok.Literal); reserved {
			return Value{}, r.syntaxError("unexpected reserved word: " + name)
		}
		return String(r.tok.Literal), nil
	default:
		return String(r.tok.Literal), nil
	}
}

// parseLoop consumes a loop_ declaration, its header of item names, and
// the rows that follow. On return the current token is the one that
// ended the loop; done reports end of input or a stop_ keyword.
func (r *Reader) parseLoop() (done bool, err error) {
	ok, err := r.next()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, r.syntaxError("unexpected end of file")
	}
	if r.tok.Type != token.ITEM {
		return false, r.syntaxError("unexpected token in loop_ declaration")
	}
	catName := r.tok.Category
	if _, exists := r.categories[catName]; exists {
		return false, r.syntaxError("duplicate category declaration in loop_")
	}
	if r.container == nil {
		return false, r.syntaxError(
			"loop_ declaration outside of data_ block or save_ frame")
	}
	cat := NewCategory(catName)
	r.categories[catName] = cat
	r.container.Append(cat)
	cat.AppendAttribute(r.tok.Attribute)

	for {
		ok, err = r.next()
		if err != nil {
			return false, err
		}
		if !ok {
			// The formal CIF 1.1 grammar expects at least one value.
			return false, r.syntaxError("loop_ without values")
		}
		if r.tok.Type != token.ITEM {
			break
		}
		if r.tok.Category != catName {
			return false, r.syntaxError("changed category name in loop_ declaration")
		}
		cat.AppendAttribute(r.tok.Attribute)
	}

	if r.tok.Type == token.WORD {
		if name, _, reserved := reservedState(r.tok.Literal); reserved {
			if name == "stop" {
				return true, nil
			}
			return false, r.syntaxError(
				"unexpected reserved word after loop_ declaration: " + name)
		}
	}

	// Fill rows until a new statement or section begins. The row is
	// appended before it is filled, so end of input mid-row leaves a
	// truncated final row rather than an error.
	n := cat.AttributeCount()
	for {
		cat.AppendRow(make([]Value, 0, n))
		rowIdx := cat.RowCount() - 1
		for i := 0; i < n; i++ {
			switch r.tok.Type {
			case token.WORD:
				switch r.tok.Literal {
				case "?":
					cat.rows[rowIdx] = append(cat.rows[rowIdx], Null)
				case ".":
					cat.rows[rowIdx] = append(cat.rows[rowIdx], String(""))
				default:
					cat.rows[rowIdx] = append(cat.rows[rowIdx], String(r.tok.Literal))
				}
			case token.STRING:
				cat.rows[rowIdx] = append(cat.rows[rowIdx], String(r.tok.Literal))
			}
			// An item name in a value slot contributes nothing; the
			// row stays short.
			ok, err = r.next()
			if err != nil {
				return false, err
			}
			if !ok {
				return true, nil
			}
		}
		if r.tok.Type == token.ITEM {
			return false, nil
		}
		if r.tok.Type == token.WORD {
			if _, _, reserved := reservedState(r.tok.Literal); reserved {
				return false, nil
			}
		}
	}
}

func (r *Reader) openScope(c *Container) {
	r.container = c
	r.containers = append(r.containers, c)
	r.categories = make(map[string]*Category)
}

func (r *Reader) next() (bool, error) {
	tok, err := r.lex.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if errors.Is(err, lexer.ErrUnterminatedString) {
			return false, &SyntaxError{Line: r.lex.Line(), Msg: err.Error()}
		}
		return false, err
	}
	r.tok = tok
	return true, nil
}

func (r *Reader) syntaxError(msg string) error {
	return &SyntaxError{Line: r.lex.Line(), Msg: msg}
}
