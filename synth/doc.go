// Package synth synthesizes arbitrary, structurally valid values of Go types
// for use as test fixtures.
//
// A Synthesizer walks a type recursively and, for each type it meets, picks
// one rule (see node.Dispatch):
//
//   - a strategy registered for the type identity produces the value;
//   - slices get exactly one element, sets (map[K]struct{}) exactly one key,
//     maps exactly one entry and arrays a value in every slot;
//   - pointers point to a freshly synthesized value and are never nil;
//   - named basic types (type Status string) go through the strategy of
//     their underlying kind;
//   - composites are built with their first constructor, whose arguments are
//     synthesized, and then every mutable field is overwritten with a fresh
//     value.
//
// Anything else (interfaces without strategy or constructor, funcs, chans)
// fails with an UnsupportedTypeError and no partial value is returned.
//
// # Usage
//
//	s := synth.New(synth.DefaultConfig())
//	order, err := synth.Make[store.Order](s)
//
// Strategies and constructors extend the synthesizer:
//
//	synth.Register(s, strategy.Func[Point](func() (Point, error) { return Point{}, nil }))
//	err := s.RegisterConstructor(store.NewCustomer)
//
// # Known limitation
//
// Self-referential types (type Node struct{ Next *Node }) recurse without
// bound, which ends in a fatal stack overflow. Config.MaxDepth turns that
// into a RecursionLimitError instead; it is disabled by default.
//
// # Concurrency
//
// Synthesize may run concurrently once registration is over. Registering
// strategies or constructors while values are synthesized is a data race
// the caller must prevent.
package synth
