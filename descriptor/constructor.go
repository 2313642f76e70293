package descriptor

import (
	"errors"
	"reflect"
	"runtime"
	"strings"

	"fixture-generator/internal/common"
	"fixture-generator/utils"
)

var (
	ErrNotAConstructor         = errors.New("provided function is not a recognizable constructor")
	ErrConstructorNotAFunction = errors.New("provided constructor is not a function")
	ErrDoublePointer           = errors.New("constructor function does not support double pointers")
)

// Func is a parsed constructor function.
type Func struct {
	// Type is the constructed type with the result pointer stripped.
	Type         reflect.Type
	Params       []reflect.Type
	PackageAlias string
	Name         string
	Pointer      bool
	HasErr       bool

	fn reflect.Value
}

// ParseConstructor inspects the provided function and returns a Func if it is a valid constructor.
//
// Supports interfaces:
//   - func(args...) (dst Type)
//   - func(args...) (dst *Type)
//   - func(args...) (dst Type, error)
//   - func(args...) (dst *Type, error)
func ParseConstructor(fn any) (Func, error) {
	if fn == nil {
		return Func{}, ErrConstructorNotAFunction
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return Func{}, ErrConstructorNotAFunction
	}

	if fnVal.IsNil() || fnType.NumOut() == 0 || fnType.NumOut() > 2 {
		return Func{}, ErrNotAConstructor
	}

	if fnType.NumOut() == 2 && fnType.Out(1) != errorType {
		return Func{}, ErrNotAConstructor
	}

	dst := fnType.Out(0)
	if dst == errorType {
		return Func{}, ErrNotAConstructor
	}

	if dst.Kind() == reflect.Ptr && dst.Elem().Kind() == reflect.Ptr {
		return Func{}, ErrDoublePointer
	}

	params := make([]reflect.Type, fnType.NumIn())
	for i := range params {
		params[i] = fnType.In(i)
	}

	alias, name := funcName(fnVal)
	ctor := Func{
		Type:         dst,
		Params:       params,
		PackageAlias: alias,
		Name:         name,
		HasErr:       fnType.NumOut() == 2,
		fn:           fnVal,
	}

	if dst.Kind() == reflect.Ptr {
		ctor.Type = dst.Elem()
		ctor.Pointer = true
	}

	return ctor, nil
}

// Call invokes the constructor. A returned error is passed through as is.
func (f Func) Call(args []reflect.Value) (reflect.Value, error) {
	var out []reflect.Value
	if f.fn.Type().IsVariadic() {
		out = f.fn.CallSlice(args)
	} else {
		out = f.fn.Call(args)
	}

	if f.HasErr && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}

	res := out[0]
	if f.Pointer {
		if res.IsNil() {
			return reflect.Value{}, ErrNilInstance
		}

		res = res.Elem()
	}

	return res, nil
}

// funcName splits the runtime name of fn, e.g. "fixture-generator/store.NewOrder",
// into the package alias and the function name.
func funcName(fnVal reflect.Value) (alias, name string) {
	fnPC := runtime.FuncForPC(fnVal.Pointer())
	if fnPC == nil {
		return "", ""
	}

	full := fnPC.Name()
	dir := ""
	if idx := strings.LastIndexByte(full, '/'); idx >= 0 {
		dir, full = full[:idx+1], full[idx+1:]
	}

	pkg, name := utils.Unpack2(strings.SplitN(full, ".", 2))

	return common.PkgAlias(dir + pkg), name
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Constructors keeps registered constructor functions per constructed type,
// in registration order.
type Constructors struct {
	byType map[reflect.Type][]Func
}

func NewConstructors() *Constructors {
	return &Constructors{byType: make(map[reflect.Type][]Func)}
}

// Add parses fn and appends it to the constructors of its result type.
func (c *Constructors) Add(fn any) error {
	ctor, err := ParseConstructor(fn)
	if err != nil {
		return err
	}

	if c.byType == nil {
		c.byType = make(map[reflect.Type][]Func)
	}

	c.byType[ctor.Type] = append(c.byType[ctor.Type], ctor)

	return nil
}

// For returns the constructors registered for t.
func (c *Constructors) For(t reflect.Type) []Func {
	if c == nil {
		return nil
	}

	return c.byType[t]
}
