package descriptor

import (
	"reflect"
	"strconv"
)

// IDOf returns the canonical identity of t: the package-qualified name for
// named types, the builtin name for predeclared types and a structural
// spelling for composite literals.
func IDOf(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.Name()
		}

		return t.PkgPath() + "." + t.Name()
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + IDOf(t.Elem())
	case reflect.Slice:
		return "[]" + IDOf(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + IDOf(t.Elem())
	case reflect.Map:
		return "map[" + IDOf(t.Key()) + "]" + IDOf(t.Elem())
	default:
		return t.String()
	}
}
