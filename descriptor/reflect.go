package descriptor

import (
	"fmt"
	"math"
	"reflect"
	"unsafe"

	"fixture-generator/primitive"
	"fixture-generator/utils"
)

// ReflectOptions controls how Reflect describes types.
type ReflectOptions struct {
	// Constructors supplies registered constructor functions.
	Constructors *Constructors
	// IncludeUnexported makes unexported struct fields mutable fields too.
	// They are written through unsafe.
	IncludeUnexported bool
	// TagName is the struct tag holding field options, DefaultTagName if empty.
	TagName string
}

// Reflect describes t using runtime reflection.
func Reflect(t reflect.Type, opts ReflectOptions) Type {
	if opts.TagName == "" {
		opts.TagName = DefaultTagName
	}

	return reflectType{rt: t, opts: &opts}
}

type reflectType struct {
	rt   reflect.Type
	opts *ReflectOptions
}

func (t reflectType) wrap(rt reflect.Type) Type {
	return reflectType{rt: rt, opts: t.opts}
}

func (t reflectType) ID() string { return IDOf(t.rt) }

func (t reflectType) Shape() Shape {
	switch t.rt.Kind() {
	case reflect.Ptr:
		return ShapePointer
	case reflect.Slice:
		return ShapeSlice
	case reflect.Array:
		return ShapeArray
	case reflect.Map:
		return ShapeMap
	case reflect.Struct:
		return ShapeStruct
	case reflect.Interface:
		return ShapeInterface
	}

	if primitive.Underlying(t.rt) != 0 {
		return ShapeBasic
	}

	return ShapeUnsupported
}

func (t reflectType) Basic() primitive.KindEnum { return primitive.Underlying(t.rt) }

func (t reflectType) Elem() Type {
	switch t.rt.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Map:
		return t.wrap(t.rt.Elem())
	default:
		return nil
	}
}

func (t reflectType) Key() Type {
	if t.rt.Kind() != reflect.Map {
		return nil
	}

	return t.wrap(t.rt.Key())
}

func (t reflectType) Len() int {
	switch t.rt.Kind() {
	case reflect.Array:
		return t.rt.Len()
	case reflect.Struct:
		return t.rt.NumField()
	default:
		return 0
	}
}

// Constructors lists registered functions first, then the struct literal.
func (t reflectType) Constructors() []Constructor {
	funcs := t.opts.Constructors.For(t.rt)

	res := make([]Constructor, 0, len(funcs)+1)
	for i, fn := range funcs {
		stem := utils.NewStem("arg", nil)

		params := make([]Param, len(fn.Params))
		for j, p := range fn.Params {
			params[j] = Param{Name: stem.Next(), Type: t.wrap(p)}
		}

		res = append(res, Constructor{Name: fn.PackageAlias + "." + fn.Name, Params: params, Index: i})
	}

	if t.rt.Kind() == reflect.Struct {
		res = append(res, Constructor{Name: t.ID() + "{}", Index: len(funcs)})
	}

	return res
}

func (t reflectType) Fields() []Field {
	if t.rt.Kind() != reflect.Struct {
		return nil
	}

	var res []Field
	for i := 0; i < t.rt.NumField(); i++ {
		sf := t.rt.Field(i)
		if Skipped(sf.Tag, t.opts.TagName) {
			continue
		}

		if !sf.IsExported() && !t.opts.IncludeUnexported {
			continue
		}

		res = append(res, Field{Name: sf.Name, Index: i, Type: t.wrap(sf.Type), Tag: sf.Tag})
	}

	return res
}

func (t reflectType) Convert(v any) (any, error) {
	rv, err := valueOf(v, t.rt)
	if err != nil {
		return nil, err
	}

	return rv.Interface(), nil
}

func (t reflectType) Pointer(elem any) (any, error) {
	if t.rt.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("%s is not a pointer", t.ID())
	}

	rv, err := valueOf(elem, t.rt.Elem())
	if err != nil {
		return nil, err
	}

	ptr := reflect.New(t.rt.Elem())
	ptr.Elem().Set(rv)

	return ptr.Interface(), nil
}

func (t reflectType) Collect(elems []any) (any, error) {
	var out reflect.Value

	switch t.rt.Kind() {
	default:
		return nil, fmt.Errorf("%s is not a slice or an array", t.ID())
	case reflect.Slice:
		out = reflect.MakeSlice(t.rt, len(elems), len(elems))
	case reflect.Array:
		if len(elems) != t.rt.Len() {
			return nil, fmt.Errorf("%s needs %d elements, got %d", t.ID(), t.rt.Len(), len(elems))
		}
		out = reflect.New(t.rt).Elem()
	}

	for i, elem := range elems {
		rv, err := valueOf(elem, t.rt.Elem())
		if err != nil {
			return nil, err
		}

		out.Index(i).Set(rv)
	}

	return out.Interface(), nil
}

func (t reflectType) Entries(keys, values []any) (any, error) {
	if t.rt.Kind() != reflect.Map {
		return nil, fmt.Errorf("%s is not a map", t.ID())
	}

	if values != nil && len(values) != len(keys) {
		return nil, fmt.Errorf("%s: %d keys for %d values", t.ID(), len(keys), len(values))
	}

	out := reflect.MakeMapWithSize(t.rt, len(keys))
	for i, key := range keys {
		kv, err := valueOf(key, t.rt.Key())
		if err != nil {
			return nil, err
		}

		vv := reflect.Zero(t.rt.Elem())
		if values != nil {
			vv, err = valueOf(values[i], t.rt.Elem())
			if err != nil {
				return nil, err
			}
		}

		out.SetMapIndex(kv, vv)
	}

	return out.Interface(), nil
}

func (t reflectType) Instantiate(c Constructor, args []any) (Instance, error) {
	funcs := t.opts.Constructors.For(t.rt)
	holder := reflect.New(t.rt).Elem()

	switch {
	default:
		return nil, fmt.Errorf("%s has no constructor %q", t.ID(), c.Name)

	case c.Index < len(funcs):
		fn := funcs[c.Index]
		if len(args) != len(fn.Params) {
			return nil, fmt.Errorf("%s expects %d arguments, got %d", c.Name, len(fn.Params), len(args))
		}

		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			rv, err := valueOf(arg, fn.Params[i])
			if err != nil {
				return nil, err
			}
			in[i] = rv
		}

		res, err := fn.Call(in)
		if err != nil {
			return nil, err
		}

		holder.Set(res)

	case c.Index == len(funcs) && t.rt.Kind() == reflect.Struct:
		// struct literal: the zero value is the constructed instance
	}

	return reflectInstance{holder: holder}, nil
}

type reflectInstance struct {
	holder reflect.Value
}

func (i reflectInstance) Set(f Field, v any) error {
	fv := i.holder.Field(f.Index)

	rv, err := valueOf(v, fv.Type())
	if err != nil {
		return err
	}

	if !fv.CanSet() {
		fv = reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
	}

	fv.Set(rv)

	return nil
}

func (i reflectInstance) Value() any { return i.holder.Interface() }

// valueOf turns v into a reflect.Value assignable to t. Named types convert
// from values of the same kind, and numbers convert between each other.
func valueOf(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		default:
			return reflect.Value{}, fmt.Errorf("%w: nil for %s", ErrValueMismatch, IDOf(t))
		}
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}

	from, to := primitive.Underlying(rv.Type()), primitive.Underlying(t)
	if from.IsNumber() && to.IsNumber() && !fits(rv, t, to) {
		return reflect.Value{}, fmt.Errorf("%w: %v does not fit %s", ErrValueMismatch, v, IDOf(t))
	}

	if rv.Kind() == t.Kind() || (from.IsNumber() && to.IsNumber()) {
		if rv.Type().ConvertibleTo(t) {
			return rv.Convert(t), nil
		}
	}

	return reflect.Value{}, fmt.Errorf("%w: %s for %s", ErrValueMismatch, IDOf(rv.Type()), IDOf(t))
}

// fits reports whether the number rv converts to t without overflow or
// truncation. to is the builtin kind of t.
func fits(rv reflect.Value, t reflect.Type, to primitive.KindEnum) bool {
	target := reflect.Zero(t)

	switch {
	case rv.CanInt():
		n := rv.Int()
		switch {
		case to.IsFloat():
			return !target.OverflowFloat(float64(n))
		case target.CanUint():
			return n >= 0 && !target.OverflowUint(uint64(n))
		default:
			return !target.OverflowInt(n)
		}

	case rv.CanUint():
		n := rv.Uint()
		switch {
		case to.IsFloat():
			return !target.OverflowFloat(float64(n))
		case target.CanUint():
			return !target.OverflowUint(n)
		default:
			return n <= math.MaxInt64 && !target.OverflowInt(int64(n))
		}

	case rv.CanFloat():
		f := rv.Float()
		switch {
		case to.IsFloat():
			return !target.OverflowFloat(f)
		case f != math.Trunc(f):
			// NaN lands here too
			return false
		case target.CanUint():
			return f >= 0 && f < math.MaxUint64 && !target.OverflowUint(uint64(f))
		default:
			return f >= math.MinInt64 && f < math.MaxInt64 && !target.OverflowInt(int64(f))
		}
	}

	return false
}

// ConvertBasic converts v to the builtin type of kind. Numbers must fit the
// kind exactly; other values need the same underlying kind.
func ConvertBasic(v any, kind primitive.KindEnum) (any, error) {
	t := kind.Type()
	if t == nil {
		return nil, fmt.Errorf("%w: no builtin type for kind %s", ErrValueMismatch, kind)
	}

	rv, err := valueOf(v, t)
	if err != nil {
		return nil, err
	}

	return rv.Interface(), nil
}
