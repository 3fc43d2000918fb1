package pdbx

import "fmt"

// A SyntaxError reports a CIF grammar violation and the 1-based input
// line on which it was detected. It aborts the parse that raised it;
// containers completed before the failing statement are still returned.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pdbx: syntax error at line %d: %s", e.Line, e.Msg)
}

// A ModelError reports structural misuse of the storage model, such as
// writing a category whose rows and attribute list are inconsistent, or
// addressing an attribute a category does not have.
type ModelError struct {
	Msg string
}

func (e *ModelError) Error() string { return "pdbx: " + e.Msg }
