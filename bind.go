package pdbx

import (
	"fmt"
	"reflect"
	"strconv"
)

var valueType = reflect.TypeOf(Value{})

type fieldInfo struct {
	name  string
	index int
}

// structFields resolves the attribute name for each usable field. The
// `cif` tag wins over the field name; a "-" tag skips the field.
func structFields(t reflect.Type) []fieldInfo {
	fields := make([]fieldInfo, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("cif")
		if tag == "-" {
			continue
		}
		name := f.Name
		if tag != "" {
			name = tag
		}
		fields = append(fields, fieldInfo{name: name, index: i})
	}
	return fields
}

// UnmarshalCategory copies the rows of cat into the slice pointed to by
// v, which must be a non-nil pointer to a slice of structs or struct
// pointers. Struct fields bind to attributes by `cif` tag, falling back
// to the field name; attribute matching is case-insensitive. Attributes
// without a field and fields without an attribute are ignored. Null
// cells zero the field, or leave a pointer field nil.
func UnmarshalCategory(cat *Category, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &ModelError{Msg: "unmarshal target must be a non-nil pointer to a slice"}
	}
	sliceV := rv.Elem()
	if sliceV.Kind() != reflect.Slice {
		return &ModelError{Msg: "unmarshal target must point to a slice"}
	}
	structT := sliceV.Type().Elem()
	ptrElem := structT.Kind() == reflect.Pointer
	if ptrElem {
		structT = structT.Elem()
	}
	if structT.Kind() != reflect.Struct {
		return &ModelError{Msg: "unmarshal target element must be a struct"}
	}

	type column struct {
		fieldInfo
		attr int
	}
	var cols []column
	for _, f := range structFields(structT) {
		if i, ok := cat.AttributeIndex(f.name); ok {
			cols = append(cols, column{fieldInfo: f, attr: i})
		}
	}

	out := reflect.MakeSlice(sliceV.Type(), 0, cat.RowCount())
	for row := 0; row < cat.RowCount(); row++ {
		ev := reflect.New(structT).Elem()
		r := cat.Row(row)
		for _, col := range cols {
			cell := Null
			if col.attr < len(r) {
				cell = r[col.attr]
			}
			if err := setField(ev.Field(col.index), cell); err != nil {
				return &ModelError{Msg: fmt.Sprintf(
					"category %s row %d attribute %s: %v",
					cat.Name(), row, col.name, err)}
			}
		}
		if ptrElem {
			out = reflect.Append(out, ev.Addr())
		} else {
			out = reflect.Append(out, ev)
		}
	}
	sliceV.Set(out)
	return nil
}

func setField(fv reflect.Value, cell Value) error {
	if fv.Type() == valueType {
		fv.Set(reflect.ValueOf(cell))
		return nil
	}
	if fv.Kind() == reflect.Pointer {
		if cell.IsNull() {
			fv.SetZero()
			return nil
		}
		p := reflect.New(fv.Type().Elem())
		if err := setField(p.Elem(), cell); err != nil {
			return err
		}
		fv.Set(p)
		return nil
	}
	if cell.IsNull() {
		fv.SetZero()
		return nil
	}
	s := cell.Text()
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, fv.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse %q as %s", s, fv.Type())
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, fv.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse %q as %s", s, fv.Type())
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, fv.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse %q as %s", s, fv.Type())
		}
		fv.SetFloat(f)
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
	return nil
}

// parseBool accepts the yes/no convention used in mmCIF dictionaries in
// addition to the Go literals.
func parseBool(s string) (bool, error) {
	switch s {
	case "yes", "y", "YES", "Y":
		return true, nil
	case "no", "n", "NO", "N":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("cannot parse %q as bool", s)
	}
	return b, nil
}

// MarshalCategory builds a category from a slice of structs or struct
// pointers, one row per element and one attribute per usable field.
// Nil pointer fields and nil elements become null cells.
func MarshalCategory(name string, v any) (*Category, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice {
		return nil, &ModelError{Msg: "marshal source must be a slice of structs"}
	}
	structT := rv.Type().Elem()
	ptrElem := structT.Kind() == reflect.Pointer
	if ptrElem {
		structT = structT.Elem()
	}
	if structT.Kind() != reflect.Struct {
		return nil, &ModelError{Msg: "marshal source element must be a struct"}
	}
	fields := structFields(structT)

	cat := NewCategory(name)
	for _, f := range fields {
		cat.AppendAttribute(f.name)
	}
	for i := 0; i < rv.Len(); i++ {
		ev := rv.Index(i)
		if ptrElem {
			if ev.IsNil() {
				cat.AppendRow(cat.emptyRow())
				continue
			}
			ev = ev.Elem()
		}
		row := make([]Value, 0, len(fields))
		for _, f := range fields {
			cell, err := fieldValue(ev.Field(f.index))
			if err != nil {
				return nil, &ModelError{Msg: fmt.Sprintf(
					"category %s row %d attribute %s: %v", name, i, f.name, err)}
			}
			row = append(row, cell)
		}
		cat.AppendRow(row)
	}
	return cat, nil
}

func fieldValue(fv reflect.Value) (Value, error) {
	if fv.Type() == valueType {
		return fv.Interface().(Value), nil
	}
	switch fv.Kind() {
	case reflect.Pointer:
		if fv.IsNil() {
			return Null, nil
		}
		return fieldValue(fv.Elem())
	case reflect.String:
		return String(fv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return String(strconv.FormatInt(fv.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return String(strconv.FormatUint(fv.Uint(), 10)), nil
	case reflect.Float32, reflect.Float64:
		return String(strconv.FormatFloat(fv.Float(), 'g', -1, fv.Type().Bits())), nil
	case reflect.Bool:
		if fv.Bool() {
			return String("yes"), nil
		}
		return String("no"), nil
	default:
		return Value{}, fmt.Errorf("unsupported field type %s", fv.Type())
	}
}
