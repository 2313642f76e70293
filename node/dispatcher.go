package node

import (
	"fixture-generator/descriptor"
)

// Known reports whether a strategy is registered for a type identity.
type Known func(id string) bool

// Dispatch picks the synthesis rule for t. Rules are tried in order:
// registered strategy, containers, pointers, named basics, constructors.
func Dispatch(t descriptor.Type, known Known) DispatcherEnum {
	if t == nil {
		return DispatcherUnknown
	}

	if known(t.ID()) {
		return DispatcherLeaf
	}

	switch t.Shape() {
	case descriptor.ShapeSlice:
		return DispatcherSequence

	case descriptor.ShapeMap:
		if IsEmptyStruct(t.Elem()) {
			return DispatcherSet
		}

		return DispatcherMap

	case descriptor.ShapeArray:
		return DispatcherArray

	case descriptor.ShapePointer:
		return DispatcherPointer

	case descriptor.ShapeBasic:
		if kind := t.Basic(); kind.Type() != nil && known(descriptor.IDOf(kind.Type())) {
			return DispatcherPrimitive
		}
	}

	if len(t.Constructors()) > 0 {
		return DispatcherComposite
	}

	return DispatcherUnknown
}

// IsEmptyStruct reports whether t is a struct without fields, the value
// type of Go's set idiom.
func IsEmptyStruct(t descriptor.Type) bool {
	return t != nil && t.Shape() == descriptor.ShapeStruct && t.Len() == 0
}
