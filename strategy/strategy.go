package strategy

import (
	"reflect"

	"fixture-generator/descriptor"
)

// Strategy produces values of a fixed type. It takes no input; every call
// is an independent draw.
type Strategy[T any] interface {
	Generate() (T, error)
}

// Func adapts a plain function to Strategy.
type Func[T any] func() (T, error)

func (f Func[T]) Generate() (T, error) { return f() }

// Generator is the type-erased form of a Strategy kept in a Registry.
type Generator interface {
	Generate() (any, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func() (any, error)

func (f GeneratorFunc) Generate() (any, error) { return f() }

type erased[T any] struct {
	s Strategy[T]
}

func (e erased[T]) Generate() (any, error) {
	return e.s.Generate()
}

// Erase wraps s for storage in a Registry.
func Erase[T any](s Strategy[T]) Generator {
	return erased[T]{s: s}
}

// Fixed returns a Generator that always produces v.
func Fixed(v any) Generator {
	return GeneratorFunc(func() (any, error) { return v, nil })
}

// IDFor returns the registry identity of T.
func IDFor[T any]() string {
	return descriptor.IDOf(reflect.TypeFor[T]())
}

// Register binds s to the identity of T, replacing any previous strategy.
func Register[T any](r *Registry, s Strategy[T]) {
	r.Register(IDFor[T](), Erase(s))
}
