// Package descriptor builds cached descriptors of declared types: their
// resolved generic bindings, member layout and position in the type lattice.
package descriptor

import (
	"github.com/pablor21/typegen/types"
)

// Descriptor is a declared type together with its resolved generic bindings.
// Implementations are *ClassDescriptor and *ArrayDescriptor.
type Descriptor interface {
	// Type returns the declared type the descriptor was built from
	Type() types.Type
	// ResolvedType returns the canonical structural form of the type
	ResolvedType() types.Type
	// RawType returns the erased type: a *types.Class or a raw *types.ArrayType
	RawType() types.Type
	// Key returns the structural identity, the key of ResolvedType
	Key() string
	// Intern publishes the descriptor in the process-wide cache and returns
	// the published instance, which may be another descriptor that won the race
	Intern() Descriptor
	String() string
	isDescriptor()
}

var (
	classCache = types.NewSyncMap[string, *ClassDescriptor]()
	arrayCache = types.NewSyncMap[string, *ArrayDescriptor]()
)

// Describe returns the descriptor of t. Interned descriptors are returned from
// the cache; otherwise a new descriptor is built, which the caller may Intern.
// Variables and wildcards are described through their bound.
func Describe(t types.Type) Descriptor {
	switch t := t.(type) {
	case nil:
		return nil
	case *types.Class:
		return OfClass(t)
	case *types.ParameterizedType:
		return ofParameterized(t)
	case *types.ArrayType:
		return ofArray(t)
	case *types.TypeVariable, *types.BoundedTypeVariable, *types.WildcardType:
		return Describe(types.Bound(t))
	}
	return nil
}

// Analyze describes t and interns the result
func Analyze(t types.Type) Descriptor {
	d := Describe(t)
	if d == nil {
		return nil
	}
	return d.Intern()
}

// DescribeClass describes a class or parameterized class type. It returns nil
// for arrays.
func DescribeClass(t types.Type) *ClassDescriptor {
	cd, _ := Describe(t).(*ClassDescriptor)
	return cd
}

// Equal reports whether two descriptors describe the same resolved type
func Equal(a, b Descriptor) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b || a.Key() == b.Key()
}
