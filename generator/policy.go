package generator

import (
	"github.com/pablor21/typegen/descriptor"
	"github.com/pablor21/typegen/types"
)

// Next produces the structural default for the node being generated: a new
// instance populated by the generator.
type Next func() (any, error)

// Policy decides what the generator produces at every node. path addresses the
// node from the root, e.g. "items[0].name" or "byId[2][:key]".
//
// Custom policies usually embed *DefaultPolicy and override some methods.
type Policy interface {
	// IsIgnoredMember reports whether member m of d is left unset at path
	IsIgnoredMember(d *descriptor.ClassDescriptor, path string, m *descriptor.Member) bool
	// ImplementationFor returns the class generated for d at path. Returning
	// nil or d's own class keeps d.
	ImplementationFor(d descriptor.Descriptor, path string) *types.Class
	// Generate returns the value at path. Calling next yields the default
	// structural instance.
	Generate(d descriptor.Descriptor, path string, next Next) (any, error)
	// OnRecursion is called instead of Generate when instances of d are
	// already under construction. ancestors holds them, outermost first.
	// Calling next builds a new instance and continues the recursion.
	OnRecursion(d descriptor.Descriptor, path string, ancestors []any, next Next) (any, error)
	// CollectionSize returns the number of items or entries generated at path
	CollectionSize(d descriptor.Descriptor, path string) int
}
