package circuitfile

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

var textUnmarshaler = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// decodeValue stores v in dst, which must be settable. Strings go through
// encoding.TextUnmarshaler when dst implements it.
func decodeValue(v Value, dst reflect.Value) error {
	if dst.CanAddr() && dst.Addr().Type().Implements(textUnmarshaler) {
		if v.String == nil {
			return errors.New("not a string")
		}
		return dst.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(*v.String))
	}

	switch dst.Kind() {
	case reflect.Ptr:
		elem := reflect.New(dst.Type().Elem())
		if err := decodeValue(v, elem.Elem()); err != nil {
			return err
		}
		dst.Set(elem)
	case reflect.Slice:
		if v.List == nil {
			return errors.New("not a list")
		}
		out := reflect.MakeSlice(dst.Type(), len(v.List.Values), len(v.List.Values))
		for i, item := range v.List.Values {
			if err := decodeValue(item, out.Index(i)); err != nil {
				return fmt.Errorf("list element %d: %w", i, err)
			}
		}
		dst.Set(out)
	case reflect.Struct:
		if v.Object == nil {
			return errors.New("not an object")
		}
		return decodeFields(v.Object, dst)
	case reflect.Bool:
		if v.Boolean == nil {
			return errors.New("not a boolean")
		}
		dst.SetBool(*v.Boolean == "true")
	case reflect.Int:
		n, ok := v.number()
		if !ok {
			return errors.New("not a number")
		}
		if n != math.Trunc(n) {
			return fmt.Errorf("%g is not an integer", n)
		}
		dst.SetInt(int64(n))
	case reflect.Float64:
		n, ok := v.number()
		if !ok {
			return errors.New("not a number")
		}
		dst.SetFloat(n)
	case reflect.String:
		if v.String == nil {
			return errors.New("not a string")
		}
		dst.SetString(*v.String)
	default:
		return fmt.Errorf("can't decode into %s", dst.Type())
	}
	return nil
}

// decodeFields matches the fields of obj against the `circuit` tags of dst.
// Untagged fields use their lowercased name and "-" skips a field. Fields
// missing from obj keep their current value.
func decodeFields(obj *Object, dst reflect.Value) error {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, ok := sf.Tag.Lookup("circuit")
		if !ok {
			name = strings.ToLower(sf.Name)
		}
		if name == "-" {
			continue
		}

		fv, ok := obj.FindField(name)
		if !ok {
			continue
		}
		if err := decodeValue(fv, dst.Field(i)); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	return nil
}

func (v Value) number() (float64, bool) {
	if v.Number == nil {
		return 0, false
	}
	return *v.Number, true
}

// Unmarshal decodes v into the value pointed to by i.
func Unmarshal(v Value, i interface{}) error {
	rv := reflect.ValueOf(i)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("input value not a pointer")
	}
	return decodeValue(v, rv.Elem())
}
