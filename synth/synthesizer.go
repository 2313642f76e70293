package synth

import (
	"fmt"
	"log/slog"
	"reflect"

	"fixture-generator/descriptor"
	"fixture-generator/internal/common"
	"fixture-generator/node"
	"fixture-generator/strategy"
)

// Synthesizer produces values for types. It owns its strategy registry and
// constructor set; nothing is shared between synthesizers.
type Synthesizer struct {
	cfg      Config
	registry *strategy.Registry
	ctors    *descriptor.Constructors
	logger   *slog.Logger
}

// New creates a Synthesizer whose registry is seeded with the built-in strategies.
func New(cfg Config) *Synthesizer {
	if cfg.TagName == "" {
		cfg.TagName = descriptor.DefaultTagName
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Synthesizer{
		cfg:      cfg,
		registry: strategy.NewRegistry(),
		ctors:    descriptor.NewConstructors(),
		logger:   logger,
	}
}

// Registry returns the strategy registry of s.
func (s *Synthesizer) Registry() *strategy.Registry { return s.registry }

// RegisterID binds g to a type identity, replacing any previous strategy.
func (s *Synthesizer) RegisterID(id string, g strategy.Generator) {
	s.registry.Register(id, g)
}

// Register binds st to the identity of T, replacing any previous strategy.
func Register[T any](s *Synthesizer, st strategy.Strategy[T]) {
	strategy.Register(s.registry, st)
}

// RegisterConstructor adds fn as a constructor of its result type. The
// first registered constructor of a type is the one used. Named basic types
// such as `type Status string` always take the strategy of their underlying
// kind, so constructors registered for them are ignored.
func (s *Synthesizer) RegisterConstructor(fn any) error {
	if err := s.ctors.Add(fn); err != nil {
		return fmt.Errorf("register constructor: %w", err)
	}

	return nil
}

// Describe returns the reflection descriptor s uses for t.
func (s *Synthesizer) Describe(t reflect.Type) descriptor.Type {
	return descriptor.Reflect(t, descriptor.ReflectOptions{
		Constructors:      s.ctors,
		IncludeUnexported: s.cfg.IncludeUnexported,
		TagName:           s.cfg.TagName,
	})
}

// Synthesize returns a value of type t.
func (s *Synthesizer) Synthesize(t reflect.Type) (any, error) {
	if t == nil {
		return nil, UnsupportedTypeError{Type: descriptor.IDOf(nil), Path: "<root>"}
	}

	return s.SynthesizeType(s.Describe(t))
}

// SynthesizeType returns a value for any descriptor, whatever its provider.
func (s *Synthesizer) SynthesizeType(t descriptor.Type) (any, error) {
	if t == nil {
		return nil, UnsupportedTypeError{Type: descriptor.IDOf(nil), Path: "<root>"}
	}

	return s.synthesize(t, node.NewPath(t.ID()))
}

// Make returns a value of type T.
func Make[T any](s *Synthesizer) (T, error) {
	var zero T

	v, err := s.Synthesize(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}

	return as[T](v)
}

// as asserts v to T. A nil v is accepted only for interface types.
func as[T any](v any) (T, error) {
	typed, ok := v.(T)
	if ok {
		return typed, nil
	}

	rt := reflect.TypeFor[T]()
	if v == nil && rt.Kind() == reflect.Interface {
		return typed, nil
	}

	return typed, fmt.Errorf("synth: %w: got %T for %s", descriptor.ErrValueMismatch, v, descriptor.IDOf(rt))
}

// MustMake returns a value of type T or panics.
// Useful in tests where an unsupported fixture type should fail fast.
func MustMake[T any](s *Synthesizer) T {
	v, err := Make[T](s)
	if err != nil {
		panic(err)
	}

	return v
}

func (s *Synthesizer) synthesize(t descriptor.Type, path node.Path) (any, error) {
	if s.cfg.MaxDepth > 0 && path.Depth() > s.cfg.MaxDepth {
		return nil, RecursionLimitError{Limit: s.cfg.MaxDepth, Path: path.String()}
	}

	rule := node.Dispatch(t, s.registry.Has)
	s.logger.Debug("synthesize", "type", t.ID(), "rule", rule.String(), "path", path.String())

	switch rule {
	case node.DispatcherLeaf:
		return s.leaf(t, t.ID(), path)

	case node.DispatcherPrimitive:
		if ctors := t.Constructors(); len(ctors) > 0 {
			s.logger.Debug("constructor ignored for basic type", "type", t.ID(), "constructor", ctors[0].Name)
		}

		return s.leaf(t, descriptor.IDOf(t.Basic().Type()), path)

	case node.DispatcherPointer:
		elem, err := s.synthesize(t.Elem(), path.Pointer())
		if err != nil {
			return nil, err
		}

		return wrap(path, t.Pointer(elem))

	case node.DispatcherSequence:
		elem, err := s.synthesize(t.Elem(), path.Slice())
		if err != nil {
			return nil, err
		}

		return wrap(path, t.Collect([]any{elem}))

	case node.DispatcherArray:
		elems := make([]any, t.Len())
		for i := range elems {
			elem, err := s.synthesize(t.Elem(), path.Slice())
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}

		return wrap(path, t.Collect(elems))

	case node.DispatcherSet:
		key, err := s.synthesize(t.Key(), path.Key())
		if err != nil {
			return nil, err
		}

		return wrap(path, t.Entries([]any{key}, nil))

	case node.DispatcherMap:
		key, err := s.synthesize(t.Key(), path.Key())
		if err != nil {
			return nil, err
		}

		val, err := s.synthesize(t.Elem(), path.Value())
		if err != nil {
			return nil, err
		}

		return wrap(path, t.Entries([]any{key}, []any{val}))

	case node.DispatcherComposite:
		return s.construct(t, path)

	default:
		return nil, UnsupportedTypeError{Type: t.ID(), Path: path.String()}
	}
}

// leaf runs the strategy registered under id. Strategy errors are returned untouched.
func (s *Synthesizer) leaf(t descriptor.Type, id string, path node.Path) (any, error) {
	g, ok := s.registry.Lookup(id)
	if !ok {
		return nil, UnsupportedTypeError{Type: t.ID(), Path: path.String()}
	}

	v, err := g.Generate()
	if err != nil {
		return nil, err
	}

	return wrap(path, t.Convert(v))
}

// construct builds a composite with its first constructor, then overwrites
// every mutable field. Constructor errors are returned untouched.
func (s *Synthesizer) construct(t descriptor.Type, path node.Path) (any, error) {
	ctors := t.Constructors()

	ctor, ok := common.First(ctors)
	if !ok {
		return nil, UnsupportedTypeError{Type: t.ID(), Path: path.String()}
	}

	if common.IsMultiple(ctors) {
		s.logger.Debug("first constructor selected", "type", t.ID(), "constructor", ctor.Name, "candidates", len(ctors))
	}

	args := make([]any, len(ctor.Params))
	for i, p := range ctor.Params {
		arg, err := s.synthesize(p.Type, path.Param(p.Name))
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	inst, err := t.Instantiate(ctor, args)
	if err != nil {
		return nil, err
	}

	for _, f := range t.Fields() {
		fieldPath := path.Field(f.Name)

		v, err := s.synthesize(f.Type, fieldPath)
		if err != nil {
			return nil, err
		}

		if err := inst.Set(f, v); err != nil {
			return nil, fmt.Errorf("synth: set %s: %w", fieldPath, err)
		}
	}

	return inst.Value(), nil
}

func wrap(path node.Path, v any, err error) (any, error) {
	if err != nil {
		return nil, fmt.Errorf("synth: build %s: %w", path, err)
	}

	return v, nil
}
