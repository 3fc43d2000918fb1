package pdbx

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryAttributes(t *testing.T) {
	cat := NewCategory("atom_site")
	cat.AppendAttribute("Cartn_x")
	cat.AppendAttribute("Cartn_y")

	require.Equal(t, 2, cat.AttributeCount())
	require.Equal(t, []string{"Cartn_x", "Cartn_y"}, cat.Attributes())
	require.True(t, cat.HasAttribute("cartn_x"))
	require.True(t, cat.HasAttribute("CARTN_X"))

	i, ok := cat.AttributeIndex("cartn_y")
	require.True(t, ok)
	require.Equal(t, 1, i)

	require.Equal(t,
		[]string{"_atom_site.Cartn_x", "_atom_site.Cartn_y"},
		cat.ItemNames())
}

func TestCategoryAttributeCaseVariantUpdatesCasing(t *testing.T) {
	cat := NewCategory("a")
	cat.AppendAttribute("Name")
	cat.AppendAttribute("NAME")

	require.Equal(t, 1, cat.AttributeCount())
	require.Equal(t, []string{"NAME"}, cat.Attributes())
}

func TestCategoryRenameAttribute(t *testing.T) {
	cat := NewCategory("a")
	cat.AppendAttribute("old")
	cat.AppendAttribute("other")

	require.True(t, cat.RenameAttribute("OLD", "fresh"))
	require.Equal(t, []string{"fresh", "other"}, cat.Attributes())
	require.False(t, cat.HasAttribute("old"))

	// Collision with an existing attribute is refused.
	require.False(t, cat.RenameAttribute("fresh", "OTHER"))
	require.Equal(t, []string{"fresh", "other"}, cat.Attributes())

	require.False(t, cat.RenameAttribute("missing", "x"))
}

func TestCategoryValues(t *testing.T) {
	cat := NewCategoryFrom("a", []string{"x", "y"},
		[][]Value{{String("1"), String("2")}})

	v, err := cat.Value("x", 0)
	require.NoError(t, err)
	require.Equal(t, "1", v.Text())

	v, err = cat.Value("Y", 0)
	require.NoError(t, err)
	require.Equal(t, "2", v.Text())

	_, err = cat.Value("z", 0)
	var modelErr *ModelError
	require.ErrorAs(t, err, &modelErr)

	_, err = cat.Value("x", 5)
	require.ErrorAs(t, err, &modelErr)
}

func TestCategoryShortRowReadsNull(t *testing.T) {
	cat := NewCategoryFrom("a", []string{"x", "y"},
		[][]Value{{String("1")}})

	v, err := cat.Value("y", 0)
	require.NoError(t, err)
	require.True(t, v.IsNull())

	require.Equal(t, []Value{String("1"), Null}, cat.FullRow(0))
	require.Equal(t, []Value{String("1")}, cat.Row(0))
}

func TestCategorySetValue(t *testing.T) {
	cat := NewCategoryFrom("a", []string{"x", "y"}, nil)

	require.NoError(t, cat.SetValue(String("v"), "y", 2))
	require.Equal(t, 3, cat.RowCount())
	require.Equal(t, []Value{Null, Null}, cat.Row(0))
	require.Equal(t, []Value{Null, String("v")}, cat.Row(2))

	require.Error(t, cat.SetValue(String("v"), "missing", 0))
	require.Error(t, cat.SetValue(String("v"), "x", -1))
}

func TestCategorySetValuePadsShortRow(t *testing.T) {
	cat := NewCategoryFrom("a", []string{"x", "y", "z"},
		[][]Value{{String("1")}})

	require.NoError(t, cat.SetValue(String("3"), "z", 0))
	require.Equal(t, []Value{String("1"), Null, String("3")}, cat.Row(0))
}

func TestCategoryAppendAttributeExtendRows(t *testing.T) {
	cat := NewCategoryFrom("a", []string{"x"},
		[][]Value{{String("1")}, {String("2")}})

	cat.AppendAttributeExtendRows("y")
	require.Equal(t, []Value{String("1"), Null}, cat.Row(0))
	require.Equal(t, []Value{String("2"), Null}, cat.Row(1))

	// A case-variant must not pad the rows a second time.
	cat.AppendAttributeExtendRows("Y")
	require.Equal(t, 2, cat.AttributeCount())
	require.Equal(t, []Value{String("1"), Null}, cat.Row(0))
}

func TestCategoryRemoveRow(t *testing.T) {
	cat := NewCategoryFrom("a", []string{"x"},
		[][]Value{{String("1")}, {String("2")}, {String("3")}})

	require.True(t, cat.RemoveRow(1))
	require.Equal(t, 2, cat.RowCount())
	require.Equal(t, []Value{String("3")}, cat.Row(1))
	require.False(t, cat.RemoveRow(9))
}

func TestCategoryReplaceValue(t *testing.T) {
	cat := NewCategoryFrom("a", []string{"x", "y"},
		[][]Value{
			{String("old"), String("old")},
			{String("old"), String("keep")},
		})

	n := cat.ReplaceValue(String("old"), String("new"), "x")
	require.Equal(t, 2, n)
	require.Equal(t, []Value{String("new"), String("old")}, cat.Row(0))
	require.Zero(t, cat.ReplaceValue(String("old"), String("new"), "missing"))
}

func TestCategoryReplaceSubstring(t *testing.T) {
	cat := NewCategoryFrom("a", []string{"path"},
		[][]Value{
			{String("/tmp/one")},
			{Null},
			{String("/var/two")},
		})

	require.True(t, cat.ReplaceSubstring("/tmp", "/data", "path"))
	require.Equal(t, "/data/one", cat.Row(0)[0].Text())
	require.True(t, cat.Row(1)[0].IsNull())
	require.False(t, cat.ReplaceSubstring("absent", "x", "path"))
}

func TestCategoryVisitRows(t *testing.T) {
	cat := NewCategoryFrom("a", []string{"x"},
		[][]Value{{String("1")}, {String("2")}, {String("3")}})

	var seen []string
	err := cat.VisitRows(func(i int, row []Value) error {
		seen = append(seen, row[0].Text())
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", "3"}, seen)

	stop := errors.New("stop")
	count := 0
	err = cat.VisitRows(func(i int, row []Value) error {
		count++
		if i == 1 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 2, count)
}

func TestCategoryApplyToAttribute(t *testing.T) {
	cat := NewCategoryFrom("a", []string{"x"},
		[][]Value{{String("one")}, {String("two")}})

	cat.ApplyToAttribute("upper", func(i int, v Value) Value {
		src, err := cat.Value("x", i)
		require.NoError(t, err)
		return String(strings.ToUpper(src.Text()))
	})
	require.Equal(t, []string{"x", "upper"}, cat.Attributes())
	require.Equal(t, []Value{String("one"), String("ONE")}, cat.Row(0))
	require.Equal(t, []Value{String("two"), String("TWO")}, cat.Row(1))
}

func TestCategoryApplyToAttributeCreatesRow(t *testing.T) {
	cat := NewCategory("a")
	cat.ApplyToAttribute("x", func(i int, v Value) Value {
		require.True(t, v.IsNull())
		return String("seed")
	})
	require.Equal(t, 1, cat.RowCount())
	require.Equal(t, []Value{String("seed")}, cat.Row(0))
}
