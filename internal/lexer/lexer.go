package lexer

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/Electrostatics/mmcif-pdbx/internal/token"
)

// ErrUnterminatedString is returned when the input ends inside a
// semicolon-delimited multi-line string.
var ErrUnterminatedString = errors.New("unterminated multi-line string")

// lineRE recognizes, in priority order at each scan position: an item
// name pair, a single-quoted string, a double-quoted string, a trailing
// comment (discarded), or a bare word. A closing quote counts only when
// followed by whitespace or end of line, so an apostrophe inside a bare
// word passes through untouched.
var lineRE = regexp.MustCompile(
	`(?:_(.+?)\.(\S+))` +
		`|(?:'(.*?)(?:'\s|'$))` +
		`|(?:"(.*?)(?:"\s|"$))` +
		`|(?:\s*#.*$)` +
		`|(\S+)`)

// Lexer turns a line-oriented character stream into a lazy, forward-only
// stream of tokens.
type Lexer struct {
	s       *bufio.Scanner
	line    int
	pending []token.Token
}

// New creates and returns a new Lexer reading from r.
func New(r io.Reader) *Lexer {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Lexer{s: s}
}

// Line reports the 1-based number of the last input line read.
func (l *Lexer) Line() int { return l.line }

// Next returns the next token. It returns io.EOF once the input is
// exhausted and ErrUnterminatedString for an unclosed multi-line block.
func (l *Lexer) Next() (token.Token, error) {
	for len(l.pending) == 0 {
		line, ok := l.readLine()
		if !ok {
			if err := l.s.Err(); err != nil {
				return token.Token{}, err
			}
			return token.Token{}, io.EOF
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, ";") {
			rest, err := l.readMultiline(line)
			if err != nil {
				return token.Token{}, err
			}
			line = rest
		}
		l.scanLine(line)
	}
	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok, nil
}

func (l *Lexer) readLine() (string, bool) {
	if !l.s.Scan() {
		return "", false
	}
	l.line++
	return l.s.Text(), true
}

// readMultiline gathers the semicolon-delimited block opened by line,
// queues it as one STRING token, and returns the remainder of the
// closing line for normal scanning. The newline immediately preceding
// the closing semicolon belongs to the delimiter and is stripped.
func (l *Lexer) readMultiline(line string) (string, error) {
	start := l.line
	parts := []string{line[1:]}
	for {
		next, ok := l.readLine()
		if !ok {
			if err := l.s.Err(); err != nil {
				return "", err
			}
			return "", ErrUnterminatedString
		}
		if strings.HasPrefix(next, ";") {
			last := len(parts) - 1
			parts[last] = strings.TrimRight(parts[last], " \t\n\r\v\f")
			l.pending = append(l.pending, token.Token{
				Type:    token.STRING,
				Literal: strings.Join(parts, "\n"),
				Line:    start,
			})
			return next[1:], nil
		}
		parts = append(parts, next)
	}
}

func (l *Lexer) scanLine(line string) {
	for _, m := range lineRE.FindAllStringSubmatchIndex(line, -1) {
		switch {
		case m[2] >= 0: // _category.attribute
			l.pending = append(l.pending, token.Token{
				Type:      token.ITEM,
				Category:  line[m[2]:m[3]],
				Attribute: line[m[4]:m[5]],
				Line:      l.line,
			})
		case m[6] >= 0: // single-quoted string
			l.pending = append(l.pending, token.Token{
				Type:    token.STRING,
				Literal: line[m[6]:m[7]],
				Line:    l.line,
			})
		case m[8] >= 0: // double-quoted string
			l.pending = append(l.pending, token.Token{
				Type:    token.STRING,
				Literal: line[m[8]:m[9]],
				Line:    l.line,
			})
		case m[10] >= 0: // bare word
			l.pending = append(l.pending, token.Token{
				Type:    token.WORD,
				Literal: line[m[10]:m[11]],
				Line:    l.line,
			})
		}
		// Any other match is a comment and produces no token.
	}
}
