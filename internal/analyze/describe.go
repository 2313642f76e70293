package analyze

import (
	"fmt"
	"go/types"
	"reflect"
	"strconv"

	"fixture-generator/descriptor"
	"fixture-generator/primitive"
)

// Options controls how Describe presents types.
type Options struct {
	// IncludeUnexported also lists unexported struct fields.
	IncludeUnexported bool
	// TagName is the struct tag holding field options, descriptor.DefaultTagName if empty.
	TagName string
}

// Describe returns a descriptor for a graph node. Composites offer a single
// constructor, the struct literal, and are assembled into Records.
func Describe(info *TypeInfo, opts Options) descriptor.Type {
	if info == nil {
		return nil
	}

	if opts.TagName == "" {
		opts.TagName = descriptor.DefaultTagName
	}

	return staticType{info: info, opts: &opts}
}

var basicKinds = map[types.BasicKind]primitive.KindEnum{
	types.Int:     primitive.KindInt,
	types.Int8:    primitive.KindInt8,
	types.Int16:   primitive.KindInt16,
	types.Int32:   primitive.KindInt32,
	types.Int64:   primitive.KindInt64,
	types.Uint:    primitive.KindUint,
	types.Uint8:   primitive.KindUint8,
	types.Uint16:  primitive.KindUint16,
	types.Uint32:  primitive.KindUint32,
	types.Uint64:  primitive.KindUint64,
	types.Float32: primitive.KindFloat32,
	types.Float64: primitive.KindFloat64,
	types.Bool:    primitive.KindBool,
	types.String:  primitive.KindString,
}

// TypeKey spells t the way descriptor.IDOf spells the matching reflect.Type,
// so that strategies registered for Go types apply to loaded types too.
func TypeKey(t types.Type) string {
	switch tt := types.Unalias(t).(type) {
	case nil:
		return "<nil>"
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() == nil {
			return obj.Name()
		}

		return obj.Pkg().Path() + "." + obj.Name()
	case *types.Basic:
		// byte and rune resolve to uint8 and int32
		return types.Typ[tt.Kind()].Name()
	case *types.Pointer:
		return "*" + TypeKey(tt.Elem())
	case *types.Slice:
		return "[]" + TypeKey(tt.Elem())
	case *types.Array:
		return "[" + strconv.FormatInt(tt.Len(), 10) + "]" + TypeKey(tt.Elem())
	case *types.Map:
		return "map[" + TypeKey(tt.Key()) + "]" + TypeKey(tt.Elem())
	default:
		return types.TypeString(t, nil)
	}
}

type staticType struct {
	info *TypeInfo
	opts *Options
}

func (t staticType) wrap(info *TypeInfo) descriptor.Type {
	if info == nil {
		return nil
	}

	return staticType{info: info, opts: t.opts}
}

func (t staticType) base() *TypeInfo { return t.info.Resolve() }

func (t staticType) ID() string { return TypeKey(t.info.GoType) }

func (t staticType) Shape() descriptor.Shape {
	switch t.base().Kind {
	case TypeKindBasic:
		if t.Basic() != 0 {
			return descriptor.ShapeBasic
		}
	case TypeKindPointer:
		return descriptor.ShapePointer
	case TypeKindSlice:
		return descriptor.ShapeSlice
	case TypeKindArray:
		return descriptor.ShapeArray
	case TypeKindMap:
		return descriptor.ShapeMap
	case TypeKindStruct:
		return descriptor.ShapeStruct
	case TypeKindInterface:
		return descriptor.ShapeInterface
	}

	return descriptor.ShapeUnsupported
}

func (t staticType) Basic() primitive.KindEnum {
	b, ok := t.base().GoType.(*types.Basic)
	if !ok {
		return 0
	}

	return basicKinds[b.Kind()]
}

func (t staticType) Elem() descriptor.Type { return t.wrap(t.base().ElemType) }

func (t staticType) Key() descriptor.Type { return t.wrap(t.base().KeyType) }

func (t staticType) Len() int { return t.base().Len }

func (t staticType) Constructors() []descriptor.Constructor {
	if t.base().Kind != TypeKindStruct {
		return nil
	}

	return []descriptor.Constructor{{Name: t.ID() + "{}"}}
}

func (t staticType) Fields() []descriptor.Field {
	base := t.base()
	if base.Kind != TypeKindStruct {
		return nil
	}

	var res []descriptor.Field
	for _, f := range base.Fields {
		if descriptor.Skipped(f.Tag, t.opts.TagName) {
			continue
		}

		if !f.Exported && !t.opts.IncludeUnexported {
			continue
		}

		res = append(res, descriptor.Field{Name: f.Name, Index: f.Index, Type: t.wrap(f.Type), Tag: f.Tag})
	}

	return res
}

// Convert checks basic values against their builtin kind. Values already of
// the described Go type, and other shapes, are passed through.
func (t staticType) Convert(v any) (any, error) {
	if t.Shape() != descriptor.ShapeBasic || (v != nil && descriptor.IDOf(reflect.TypeOf(v)) == t.ID()) {
		return v, nil
	}

	res, err := descriptor.ConvertBasic(v, t.Basic())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.ID(), err)
	}

	return res, nil
}

// Pointer is transparent: the pointee stands for the pointer.
func (t staticType) Pointer(elem any) (any, error) { return elem, nil }

func (t staticType) Collect(elems []any) (any, error) {
	if base := t.base(); base.Kind == TypeKindArray && len(elems) != base.Len {
		return nil, fmt.Errorf("%s needs %d elements, got %d", t.ID(), base.Len, len(elems))
	}

	return elems, nil
}

// Entries builds a map[any]any. Sets, built without values, become a list of
// their keys.
func (t staticType) Entries(keys, values []any) (any, error) {
	if values == nil {
		return keys, nil
	}

	if len(values) != len(keys) {
		return nil, fmt.Errorf("%s: %d keys for %d values", t.ID(), len(keys), len(values))
	}

	out := make(map[any]any, len(keys))
	for i, key := range keys {
		if key != nil && !reflect.ValueOf(key).Comparable() {
			return nil, fmt.Errorf("%s: key of type %T cannot index a map", t.ID(), key)
		}

		out[key] = values[i]
	}

	return out, nil
}

func (t staticType) Instantiate(c descriptor.Constructor, args []any) (descriptor.Instance, error) {
	if t.base().Kind != TypeKindStruct || c.Index != 0 || len(args) != 0 {
		return nil, fmt.Errorf("%s has no constructor %q", t.ID(), c.Name)
	}

	return &Record{Type: t.ID()}, nil
}
