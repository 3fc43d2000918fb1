package pdbx

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	columnSpacing    = 2
	definitionIndent = 3
)

var indentSpace = strings.Repeat(" ", definitionIndent)

type writeConfig struct {
	rowPartition  int
	avoidEmbedded bool
}

// Writer serializes containers to PDBx/mmCIF format.
type Writer struct {
	w    io.Writer
	opts []WriterOption
}

// NewWriter returns a writer emitting CIF text to w.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	return &Writer{w: w, opts: opts}
}

// Write serializes the containers in order. Options are applied first;
// an option error aborts before anything is written.
func (w *Writer) Write(containers []*Container) error {
	var cfg writeConfig
	for _, opt := range w.opts {
		if err := opt(&cfg); err != nil {
			return err
		}
	}
	st := &writeState{w: bufio.NewWriter(w.w), cfg: cfg}
	for _, c := range containers {
		if err := st.writeContainer(c); err != nil {
			return err
		}
	}
	return st.w.Flush()
}

// WriteContainer serializes a single container.
func (w *Writer) WriteContainer(c *Container) error {
	return w.Write([]*Container{c})
}

type writeState struct {
	w      *bufio.Writer
	cfg    writeConfig
	indent bool
}

// print ignores the write error; bufio keeps it sticky and the final
// Flush surfaces it.
func (st *writeState) print(s string) {
	st.w.WriteString(s)
}

func (st *writeState) writeContainer(c *Container) error {
	switch {
	case c.IsDefinition():
		st.print("save_" + c.Name() + "\n")
		st.indent = true
		st.print(indentSpace + "#\n")
	case c.IsGlobal():
		st.print("global_\n")
		st.indent = false
		st.print("\n")
	default:
		st.print("data_" + c.Name() + "\n")
		st.indent = false
		st.print("#\n")
	}
	err := c.VisitCategories(func(_ int, cat *Category) error {
		switch {
		case cat.RowCount() == 0:
			// Empty categories leave no trace in the output.
			return nil
		case cat.RowCount() == 1:
			st.itemValueLayout(cat)
		case cat.AttributeCount() > 0:
			st.tableLayout(cat)
		default:
			return &ModelError{Msg: fmt.Sprintf(
				"category %s has %d rows but no attributes",
				cat.Name(), cat.RowCount())}
		}
		if st.indent {
			st.print(indentSpace + "#")
		} else {
			st.print("#")
		}
		return nil
	})
	if err != nil {
		return err
	}
	if c.IsDefinition() {
		st.print("\nsave_\n")
	}
	st.print("#\n")
	return nil
}

// itemValueLayout writes a single-row category as one _name value line
// per attribute, with values aligned to a shared column.
func (st *writeState) itemValueLayout(cat *Category) {
	maxAttr := 0
	for _, a := range cat.attrs.names {
		if len(a) > maxAttr {
			maxAttr = len(a)
		}
	}
	width := columnSpacing + len(cat.Name()) + maxAttr + 2
	var b strings.Builder
	b.WriteString("#\n")
	for i, attr := range cat.attrs.names {
		if st.indent {
			b.WriteString(indentSpace)
		}
		b.WriteString(leftJustify("_"+cat.Name()+"."+attr, width))
		s, _ := formatValue(st.cellAt(cat, 0, i), st.cfg.avoidEmbedded)
		b.WriteString(s)
		b.WriteString("\n")
	}
	st.print(b.String())
}

// tableLayout writes a multi-row category as a loop_ with one header
// line per attribute and aligned value rows.
func (st *writeState) tableLayout(cat *Category) {
	var b strings.Builder
	b.WriteString("#\n")
	if st.indent {
		b.WriteString(indentSpace)
	}
	b.WriteString("loop_")
	for _, item := range cat.ItemNames() {
		b.WriteString("\n")
		if st.indent {
			b.WriteString(indentSpace)
		}
		b.WriteString(item)
	}
	st.print(b.String())

	step := 1
	if st.cfg.rowPartition > 0 {
		if s := cat.RowCount() / st.cfg.rowPartition; s > 1 {
			step = s
		}
	}
	formats, widths := st.columnLayout(cat, step)

	spacing := strings.Repeat(" ", columnSpacing)
	for row := 0; row < cat.RowCount(); row++ {
		var line strings.Builder
		line.WriteString("\n")
		if st.indent {
			line.WriteString(indentSpace + " ")
		}
		for col := 0; col < cat.AttributeCount(); col++ {
			s, _ := formatValue(st.cellAt(cat, row, col), st.cfg.avoidEmbedded)
			switch formats[col] {
			case formatNumber:
				line.WriteString(rightJustify(s, widths[col]))
			case formatQuoted:
				line.WriteString(leftJustify(s, widths[col]+2))
			case formatMultiLine:
				line.WriteString(s)
			default:
				line.WriteString(leftJustify(s, widths[col]))
			}
			line.WriteString(spacing)
		}
		st.print(line.String())
	}
	st.print("\n")
}

// columnLayout scans rows at the given stride and derives one
// justification rule and one width per column. The column type is the
// most general type observed among the sampled cells; the width is the
// longest formatted rendering among them.
func (st *writeState) columnLayout(cat *Category, step int) ([]formatType, []int) {
	n := cat.AttributeCount()
	types := make([]dataType, n)
	widths := make([]int, n)
	for row := 0; row < cat.RowCount(); row += step {
		for col := 0; col < n; col++ {
			s, t := formatValue(st.cellAt(cat, row, col), st.cfg.avoidEmbedded)
			if t > types[col] {
				types[col] = t
			}
			if len(s) > widths[col] {
				widths[col] = len(s)
			}
		}
	}
	formats := make([]formatType, n)
	for col, t := range types {
		formats[col] = t.format()
	}
	return formats, widths
}

// cellAt reads a cell positionally, treating the missing tail of a
// short row as null-unknown.
func (st *writeState) cellAt(cat *Category, row, col int) Value {
	r := cat.Row(row)
	if col >= len(r) {
		return Null
	}
	return r[col]
}

func leftJustify(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func rightJustify(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
