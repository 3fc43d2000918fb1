package pdbx

import (
	"io"
	"strings"
)

// Parse reads PDBx/mmCIF text from r and returns the containers it
// declares, in document order.
func Parse(r io.Reader) ([]*Container, error) {
	return NewReader(r).Read()
}

// ParseString parses PDBx/mmCIF text held in a string.
func ParseString(s string) ([]*Container, error) {
	return Parse(strings.NewReader(s))
}

// Write serializes the containers to w in PDBx/mmCIF format.
func Write(w io.Writer, containers []*Container, opts ...WriterOption) error {
	return NewWriter(w, opts...).Write(containers)
}
