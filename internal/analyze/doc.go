// Package analyze loads Go packages and describes their types to the
// synthesizer without compiling them into the running binary.
//
// It uses golang.org/x/tools/go/packages with go/types to build an
// in-memory type graph, and Describe turns graph nodes into descriptor.Type
// values. Values synthesized this way are plain data (records, slices, maps)
// meant for serialization, not instances of the loaded types.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (basic/struct/pointer/slice/array/map/interface/alias)
//   - FieldInfo: describes field name, type, tags, and embedding
//   - Record: an ordered set of synthesized field values
package analyze
