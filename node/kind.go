package node

//go:generate go tool stringer -type=DispatcherEnum -output=kind_string.go

// DispatcherEnum is the synthesis rule chosen for a type.
type DispatcherEnum int

const (
	DispatcherUnknown   DispatcherEnum = iota // no rule applies, the type is unsupported
	DispatcherLeaf                            // a strategy is registered for the identity
	DispatcherPrimitive                       // named basic type, generated through its underlying kind
	DispatcherPointer
	DispatcherSequence
	DispatcherArray
	DispatcherSet // map[K]struct{}
	DispatcherMap
	DispatcherComposite

	// DispatcherTotal is a constant that represents the total number of kinds defined
	DispatcherTotal = int(iota)
)
