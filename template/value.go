package template

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Context holds the data a template is rendered against.
type Context = map[string]any

// Lookup resolves a dotted path such as "user.name" against ctx.
// Each segment indexes a map with string keys, an exported struct field
// (by Go name or json tag) or, when numeric, a slice element. Lookup reports
// false when any segment is missing or lands on nil or a non-container value.
func Lookup(ctx Context, path string) (any, bool) {
	path = strings.TrimSpace(path)
	if path == "" || ctx == nil {
		return nil, false
	}

	if !strings.Contains(path, ".") {
		v, ok := ctx[path]
		return v, ok
	}

	var current any = ctx
	for _, part := range strings.Split(path, ".") {
		next, ok := field(current, part)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// field returns the member named key of v.
func field(v any, key string) (any, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		got, ok := m[key]
		return got, ok
	case map[string]string:
		got, ok := m[key]
		return got, ok
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		got := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !got.IsValid() {
			return nil, false
		}
		return got.Interface(), true
	case reflect.Struct:
		return structField(rv, key)
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	default:
		return nil, false
	}
}

func structField(rv reflect.Value, key string) (any, bool) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			if tagName, _, _ := strings.Cut(tag, ","); tagName != "" && tagName != "-" {
				name = tagName
			}
		}
		if name == key || sf.Name == key {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}

// IsTruthy reports whether v selects the first branch of a conditional.
// nil, false, zero numbers, empty strings and empty slices, arrays and maps
// are falsy. Nil pointers, funcs and channels are falsy as well, and so is a
// struct with no fields.
func IsTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() != 0
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	case reflect.Struct:
		return rv.NumField() > 0
	default:
		return true
	}
}

// stringify converts a looked-up value to its output text. The second result
// is false for nil, including typed nil pointers, which render as nothing.
func stringify(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return "", false
	}

	switch t := v.(type) {
	case string:
		return t, true
	case fmt.Stringer:
		return t.String(), true
	case error:
		return t.Error(), true
	case []string:
		return strings.Join(t, ","), true
	}

	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float(), rv.Type().Bits()), true
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "", true
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i], _ = stringify(rv.Index(i).Interface())
		}
		return strings.Join(parts, ","), true
	}
	return fmt.Sprint(v), true
}

// formatFloat writes f in plain decimal below 1e21 and in exponent form
// above it, so JSON-decoded integers such as 1000000 keep their digits.
func formatFloat(f float64, bitSize int) string {
	if math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}
	return strconv.FormatFloat(f, 'g', -1, bitSize)
}
