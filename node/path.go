package node

import (
	"strings"
)

// Path builds a readable path string for a value under synthesis and counts
// how deep the recursion went to reach it.
// Examples:
//   - "Order" for the root value
//   - "Order.Items" for a nested field
//   - "Order.Items[]" for a slice element
//   - "Order.Items[].ProductID" for a field within slice elements
//   - "Customer.*Address" for a pointer target
type Path struct {
	parts []string
	depth int
}

// NewPath creates a new Path from a root type name.
func NewPath(root string) Path {
	return Path{parts: []string{root}}
}

// Field appends a field name to the path.
func (p Path) Field(name string) Path {
	return p.push(name)
}

// Param appends a constructor parameter to the path.
func (p Path) Param(name string) Path {
	return p.push("(" + name + ")")
}

// Slice appends a slice indicator "[]" to the path.
func (p Path) Slice() Path {
	return p.suffix("[]")
}

// Key appends a map key indicator "[key]" to the path.
func (p Path) Key() Path {
	return p.suffix("[key]")
}

// Value appends a map value indicator "[value]" to the path.
func (p Path) Value() Path {
	return p.suffix("[value]")
}

// Pointer prefixes the last element with a pointer indicator "*".
func (p Path) Pointer() Path {
	np := p.clone()
	if len(np.parts) == 0 {
		np.parts = []string{"*"}
	} else {
		np.parts[len(np.parts)-1] = "*" + np.parts[len(np.parts)-1]
	}
	np.depth++

	return np
}

// Depth is the number of steps taken from the root.
func (p Path) Depth() int {
	return p.depth
}

// String returns the full path string.
func (p Path) String() string {
	return strings.Join(p.parts, ".")
}

func (p Path) push(part string) Path {
	np := p.clone()
	np.parts = append(np.parts, part)
	np.depth++

	return np
}

func (p Path) suffix(s string) Path {
	np := p.clone()
	if len(np.parts) == 0 {
		np.parts = []string{s}
	} else {
		np.parts[len(np.parts)-1] += s
	}
	np.depth++

	return np
}

func (p Path) clone() Path {
	parts := make([]string, len(p.parts), len(p.parts)+1)
	copy(parts, p.parts)

	return Path{parts: parts, depth: p.depth}
}
