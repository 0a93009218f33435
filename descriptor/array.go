package descriptor

import (
	"github.com/pablor21/typegen/types"
)

// ArrayDescriptor describes an array type and its element type
type ArrayDescriptor struct {
	original types.Type
	elem     Descriptor
	resolved lazy[types.Type]
}

func ofArray(a *types.ArrayType) *ArrayDescriptor {
	if cached, ok := arrayCache.Get(a.Key()); ok {
		return cached
	}
	return &ArrayDescriptor{original: a, elem: Describe(a.Elem())}
}

func (d *ArrayDescriptor) isDescriptor() {}

func (d *ArrayDescriptor) Type() types.Type {
	return d.original
}

// Elem returns the descriptor of the element type
func (d *ArrayDescriptor) Elem() Descriptor {
	return d.elem
}

func (d *ArrayDescriptor) ResolvedType() types.Type {
	return d.resolved.get(func() types.Type {
		return types.ResolvedArrayType(d.elem.ResolvedType())
	})
}

func (d *ArrayDescriptor) RawType() types.Type {
	return types.Erasure(d.ResolvedType())
}

func (d *ArrayDescriptor) Key() string {
	return d.ResolvedType().Key()
}

func (d *ArrayDescriptor) Intern() Descriptor {
	published, _ := arrayCache.GetOrSet(d.original.Key(), d)
	return published
}

// NewInstance allocates an array of n zero elements
func (d *ArrayDescriptor) NewInstance(n int) *types.Array {
	return types.NewArray(d.elem.RawType(), n)
}

func (d *ArrayDescriptor) String() string {
	return d.ResolvedType().String()
}
