// Package profile loads YAML strategy profiles.
//
// A profile overrides the strategies of leaf identities with fixed values or
// with a uniform choice among listed values:
//
//	version: "1"
//	fixed:
//	  string: Widget
//	  int64: 42
//	choices:
//	  fixture-generator/store.OrderStatus: [PENDING, PAID, SHIPPED]
//
// Identities are spelled the way descriptor.IDOf spells them. Values are
// scalars; they are converted to the target type when the synthesizer
// assembles the value.
package profile
