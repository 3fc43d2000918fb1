package pdbx

import (
	"fmt"
	"strings"
)

// Category is a named table of attributes and rows, the CIF analogue of
// a relational table. Attribute names keep their original casing but
// are unique under case-insensitive comparison and looked up that way.
// Rows align positionally with the attribute list; a row may be shorter
// than the list, in which case the missing trailing cells read as the
// null-unknown marker.
type Category struct {
	name  string
	attrs attrIndex
	rows  [][]Value
}

// attrIndex is an insertion-ordered, case-insensitive set of attribute
// names. The lowercase form is the key and the original casing the
// stored value, so insertion, rename, and lookup are single operations.
type attrIndex struct {
	names []string
	index map[string]int // lowercase name -> position in names
}

func (ix *attrIndex) lookup(name string) (int, bool) {
	i, ok := ix.index[strings.ToLower(name)]
	return i, ok
}

// add inserts name, or updates the stored casing in place when a
// case-variant of it is already present.
func (ix *attrIndex) add(name string) {
	if ix.index == nil {
		ix.index = make(map[string]int)
	}
	lower := strings.ToLower(name)
	if i, ok := ix.index[lower]; ok {
		ix.names[i] = name
		return
	}
	ix.index[lower] = len(ix.names)
	ix.names = append(ix.names, name)
}

func (ix *attrIndex) rename(oldName, newName string) bool {
	oldLower := strings.ToLower(oldName)
	newLower := strings.ToLower(newName)
	i, ok := ix.index[oldLower]
	if !ok {
		return false
	}
	if j, exists := ix.index[newLower]; exists && j != i {
		return false
	}
	delete(ix.index, oldLower)
	ix.names[i] = newName
	ix.index[newLower] = i
	return true
}

// NewCategory returns an empty category with the given name.
func NewCategory(name string) *Category {
	return &Category{name: name}
}

// NewCategoryFrom returns a category populated with the given attribute
// names and rows.
func NewCategoryFrom(name string, attributes []string, rows [][]Value) *Category {
	c := NewCategory(name)
	for _, a := range attributes {
		c.AppendAttribute(a)
	}
	c.rows = rows
	return c
}

// Name returns the category name.
func (c *Category) Name() string { return c.name }

// SetName changes the category name.
func (c *Category) SetName(name string) { c.name = name }

// Attributes returns the attribute names in insertion order.
func (c *Category) Attributes() []string {
	out := make([]string, len(c.attrs.names))
	copy(out, c.attrs.names)
	return out
}

// AttributeCount returns the number of attributes.
func (c *Category) AttributeCount() int { return len(c.attrs.names) }

// HasAttribute reports whether the category has the named attribute,
// compared case-insensitively.
func (c *Category) HasAttribute(name string) bool {
	_, ok := c.attrs.lookup(name)
	return ok
}

// AttributeIndex returns the position of the named attribute, compared
// case-insensitively.
func (c *Category) AttributeIndex(name string) (int, bool) {
	return c.attrs.lookup(name)
}

// AppendAttribute adds an attribute. Adding a case-variant of an
// existing attribute updates its stored casing in place; rows are left
// untouched.
func (c *Category) AppendAttribute(name string) {
	c.attrs.add(name)
}

// AppendAttributeExtendRows adds an attribute and pads every existing
// row with a null-unknown placeholder for the new column. A case-variant
// of an existing attribute only updates the stored casing.
func (c *Category) AppendAttributeExtendRows(name string) {
	if _, ok := c.attrs.lookup(name); ok {
		c.attrs.add(name)
		return
	}
	c.attrs.add(name)
	for i := range c.rows {
		c.rows[i] = append(c.rows[i], Null)
	}
}

// RenameAttribute changes an attribute name in place. It reports false
// when the old name does not exist or the new name would collide with
// another attribute.
func (c *Category) RenameAttribute(oldName, newName string) bool {
	return c.attrs.rename(oldName, newName)
}

// ItemNames returns the attributes as fully qualified
// _category.attribute item names.
func (c *Category) ItemNames() []string {
	out := make([]string, 0, len(c.attrs.names))
	for _, a := range c.attrs.names {
		out = append(out, "_"+c.name+"."+a)
	}
	return out
}

// RowCount returns the number of rows.
func (c *Category) RowCount() int { return len(c.rows) }

// Row returns the row at index, or nil if index is out of range. The
// returned slice aliases the stored row.
func (c *Category) Row(index int) []Value {
	if index < 0 || index >= len(c.rows) {
		return nil
	}
	return c.rows[index]
}

// FullRow returns a copy of the row at index padded with null-unknown
// placeholders to the attribute count. An out-of-range index yields an
// all-null row.
func (c *Category) FullRow(index int) []Value {
	out := make([]Value, c.AttributeCount())
	for i := range out {
		out[i] = Null
	}
	if index >= 0 && index < len(c.rows) {
		copy(out, c.rows[index])
	}
	return out
}

// AppendRow adds a row to the category.
func (c *Category) AppendRow(row []Value) {
	c.rows = append(c.rows, row)
}

// RemoveRow deletes the row at index and reports whether a row was
// removed.
func (c *Category) RemoveRow(index int) bool {
	if index < 0 || index >= len(c.rows) {
		return false
	}
	c.rows = append(c.rows[:index], c.rows[index+1:]...)
	return true
}

// Value returns the cell for the named attribute in the given row. A
// cell beyond the end of a short row reads as the null-unknown marker.
func (c *Category) Value(attribute string, rowIndex int) (Value, error) {
	i, ok := c.attrs.lookup(attribute)
	if !ok {
		return Value{}, &ModelError{Msg: fmt.Sprintf(
			"category %s has no attribute %s", c.name, attribute)}
	}
	if rowIndex < 0 || rowIndex >= len(c.rows) {
		return Value{}, &ModelError{Msg: fmt.Sprintf(
			"row index %d out of range in category %s", rowIndex, c.name)}
	}
	row := c.rows[rowIndex]
	if i >= len(row) {
		return Null, nil
	}
	return row[i], nil
}

// SetValue stores a cell for the named attribute in the given row,
// growing the row list with null-filled rows and padding short rows as
// needed.
func (c *Category) SetValue(v Value, attribute string, rowIndex int) error {
	i, ok := c.attrs.lookup(attribute)
	if !ok {
		return &ModelError{Msg: fmt.Sprintf(
			"category %s has no attribute %s", c.name, attribute)}
	}
	if rowIndex < 0 {
		return &ModelError{Msg: fmt.Sprintf(
			"row index %d out of range in category %s", rowIndex, c.name)}
	}
	for rowIndex >= len(c.rows) {
		c.rows = append(c.rows, c.emptyRow())
	}
	for i >= len(c.rows[rowIndex]) {
		c.rows[rowIndex] = append(c.rows[rowIndex], Null)
	}
	c.rows[rowIndex][i] = v
	return nil
}

func (c *Category) emptyRow() []Value {
	row := make([]Value, c.AttributeCount())
	for i := range row {
		row[i] = Null
	}
	return row
}

// ReplaceValue substitutes newValue for every cell of the named
// attribute equal to oldValue and returns the number of replacements.
func (c *Category) ReplaceValue(oldValue, newValue Value, attribute string) int {
	i, ok := c.attrs.lookup(attribute)
	if !ok {
		return 0
	}
	replaced := 0
	for _, row := range c.rows {
		if i < len(row) && row[i] == oldValue {
			row[i] = newValue
			replaced++
		}
	}
	return replaced
}

// ReplaceSubstring rewrites every occurrence of old with new inside the
// text cells of the named attribute. Null cells are left alone. It
// reports whether any cell changed.
func (c *Category) ReplaceSubstring(old, new, attribute string) bool {
	i, ok := c.attrs.lookup(attribute)
	if !ok {
		return false
	}
	changed := false
	for _, row := range c.rows {
		if i >= len(row) || row[i].IsNull() {
			continue
		}
		if s := strings.ReplaceAll(row[i].text, old, new); s != row[i].text {
			row[i] = String(s)
			changed = true
		}
	}
	return changed
}

// VisitRows calls fn once per row with the row index and the row
// itself. A non-nil error from fn stops the walk and is returned.
func (c *Category) VisitRows(fn func(index int, row []Value) error) error {
	for i, row := range c.rows {
		if err := fn(i, row); err != nil {
			return err
		}
	}
	return nil
}

// ApplyToAttribute ensures the named attribute exists, guarantees at
// least one row, pads short rows to include its column, and then
// replaces the column's cell in every row with the result of fn. The
// row index and current cell are passed explicitly; there is no cursor
// state.
func (c *Category) ApplyToAttribute(name string, fn func(rowIndex int, v Value) Value) {
	c.attrs.add(name)
	i, _ := c.attrs.lookup(name)
	if len(c.rows) == 0 {
		c.rows = append(c.rows, c.emptyRow())
	}
	for r := range c.rows {
		for i >= len(c.rows[r]) {
			c.rows[r] = append(c.rows[r], Null)
		}
		c.rows[r][i] = fn(r, c.rows[r][i])
	}
}
