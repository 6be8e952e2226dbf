package query

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"
)

// FormatValue renders v as a query value. It reports false for values that
// must be left out: nil, empty strings, nil pointers, zero times, NaN/Inf, and
// anything that is not a scalar (maps, slices, structs, funcs, channels).
// Any fmt.Stringer counts as a scalar.
func FormatValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		// String on a pointer receiver, e.g. *big.Int.
		if s, ok := v.(fmt.Stringer); ok {
			if _, elemOK := rv.Elem().Interface().(fmt.Stringer); !elemOK {
				str := s.String()
				return str, str != ""
			}
		}
		return FormatValue(rv.Elem().Interface())
	}
	switch x := v.(type) {
	case string:
		return x, x != ""
	case bool:
		return strconv.FormatBool(x), true
	case time.Time:
		if x.IsZero() {
			return "", false
		}
		return x.UTC().Format(time.RFC3339), true
	case fmt.Stringer:
		s := x.String()
		return s, s != ""
	}
	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		return s, s != ""
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", false
		}
		bits := 64
		if rv.Kind() == reflect.Float32 {
			bits = 32
		}
		return strconv.FormatFloat(f, 'f', -1, bits), true
	}
	return "", false
}
