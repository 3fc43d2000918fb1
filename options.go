package pdbx

import "errors"

// WriterOption configures a Writer.
type WriterOption func(*writeConfig) error

// RowPartition caps the number of rows sampled when sizing and typing
// loop columns. A category with more rows than n is scanned at a
// stride of RowCount/n instead of row by row. n must be positive.
func RowPartition(n int) WriterOption {
	return func(cfg *writeConfig) error {
		if n <= 0 {
			return errors.New("pdbx: row partition must be positive")
		}
		cfg.rowPartition = n
		return nil
	}
}

// AvoidEmbeddedQuoting tightens the quoting cascade: a quote style is
// only chosen when the value contains neither that quote character nor
// the opposite quote adjacent to whitespace, falling back to a
// semicolon block otherwise.
func AvoidEmbeddedQuoting() WriterOption {
	return func(cfg *writeConfig) error {
		cfg.avoidEmbedded = true
		return nil
	}
}
