package descriptor

import (
	"errors"
	"reflect"
	"strings"

	"fixture-generator/internal/common"
	"fixture-generator/primitive"
)

var (
	ErrNilInstance   = errors.New("constructor returned a nil instance")
	ErrValueMismatch = errors.New("value is not assignable to the declared type")
)

// DefaultTagName is the struct tag consulted for field options.
// A field tagged `fixture:"-"` is never synthesized.
const DefaultTagName = "fixture"

// Shape is the structural form of a type, independent of its name.
type Shape int

const (
	ShapeUnsupported Shape = iota // funcs, chans, complex numbers, unsafe pointers
	ShapeBasic                    // integers, floats, booleans, strings
	ShapePointer
	ShapeSlice
	ShapeArray
	ShapeMap
	ShapeStruct
	ShapeInterface
)

// String returns a human-readable representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeBasic:
		return "basic"
	case ShapePointer:
		return "pointer"
	case ShapeSlice:
		return "slice"
	case ShapeArray:
		return "array"
	case ShapeMap:
		return "map"
	case ShapeStruct:
		return "struct"
	case ShapeInterface:
		return "interface"
	default:
		return common.UnknownStr
	}
}

// Type describes a type to the synthesizer and knows how to assemble values
// of that type. Implementations exist for runtime reflection (Reflect) and
// for statically loaded packages (internal/analyze).
//
// Values cross the interface as any; each implementation decides how the
// pieces are represented.
type Type interface {
	// ID is the canonical identity, e.g. "int32", "[]string" or
	// "github.com/google/uuid.UUID".
	ID() string
	Shape() Shape
	// Basic is the builtin kind behind a ShapeBasic type.
	Basic() primitive.KindEnum
	// Elem is the element type of pointers, slices, arrays and maps.
	Elem() Type
	// Key is the key type of maps.
	Key() Type
	// Len is the length of an array, or the number of declared fields of a struct.
	Len() int
	// Constructors lists the ways to obtain an instance, in provider order.
	Constructors() []Constructor
	// Fields lists the fields to populate after construction.
	Fields() []Field

	// Convert adapts a strategy result to this type.
	Convert(v any) (any, error)
	// Pointer returns a pointer holding elem.
	Pointer(elem any) (any, error)
	// Collect builds a slice or array from elems.
	Collect(elems []any) (any, error)
	// Entries builds a map. A nil values slice stores zero values, which is
	// how sets (map[K]struct{}) are built.
	Entries(keys, values []any) (any, error)
	// Instantiate invokes c with args.
	Instantiate(c Constructor, args []any) (Instance, error)
}

// Instance is a constructed composite whose fields can still be assigned.
type Instance interface {
	Set(f Field, v any) error
	Value() any
}

// Constructor is one way of obtaining an instance of a composite type.
type Constructor struct {
	Name   string
	Params []Param
	// Index identifies the constructor within the provider's list.
	Index int
}

// Param is a constructor parameter.
type Param struct {
	Name string
	Type Type
}

// Field is a mutable field of a composite type.
type Field struct {
	Name  string
	Index int
	Type  Type
	Tag   reflect.StructTag
}

// JSONName returns the JSON tag name if present, otherwise the field name.
func (f Field) JSONName() string {
	if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
		if idx := strings.IndexByte(tag, ','); idx >= 0 {
			tag = tag[:idx]
		}

		if tag != "" {
			return tag
		}
	}

	return f.Name
}

// Skipped reports whether the field opts out of synthesis through tagName.
func Skipped(tag reflect.StructTag, tagName string) bool {
	if tagName == "" {
		tagName = DefaultTagName
	}

	return tag.Get(tagName) == "-"
}
