package types

// RawClass returns the class underlying t: the raw class of a parameterized
// type and the class of the bound of variables and wildcards. Arrays have no
// raw class and return nil.
func RawClass(t Type) *Class {
	switch t := t.(type) {
	case *Class:
		return t
	case *ParameterizedType:
		return t.raw
	case *TypeVariable, *BoundedTypeVariable, *WildcardType:
		return RawClass(Bound(t))
	}
	return nil
}

// Erasure returns the raw form of t: a *Class, or an *ArrayType whose element
// is erased as well.
func Erasure(t Type) Type {
	switch t := t.(type) {
	case nil:
		return nil
	case *Class:
		return t
	case *ParameterizedType:
		return t.raw
	case *ArrayType:
		return &ArrayType{elem: Erasure(t.elem), resolved: true}
	case *TypeVariable, *BoundedTypeVariable, *WildcardType:
		return Erasure(Bound(t))
	}
	return nil
}

// Bound replaces variables by their first bound and wildcards by their lower
// bound when present, else their upper bound, until a concrete shape remains.
func Bound(t Type) Type {
	switch t := t.(type) {
	case *TypeVariable:
		return Bound(t.Bounds()[0])
	case *BoundedTypeVariable:
		if len(t.bounds) == 0 {
			return Object
		}
		return Bound(t.bounds[0])
	case *WildcardType:
		if t.lower != nil {
			return Bound(t.lower)
		}
		return Bound(t.UpperBounds()[0])
	}
	return t
}

// Box returns the wrapper class of a primitive and c itself otherwise
func Box(c *Class) *Class {
	if b, ok := boxes[c]; ok {
		return b
	}
	return c
}

// Unbox returns the primitive of a wrapper class and c itself otherwise
func Unbox(c *Class) *Class {
	for prim, box := range boxes {
		if box == c {
			return prim
		}
	}
	return c
}

// AssignableFrom reports whether values of erased type source can be used
// where erased type target is expected. Arrays are covariant in their element;
// primitive arrays only match themselves.
func AssignableFrom(target, source Type) bool {
	target, source = Erasure(target), Erasure(source)
	switch t := target.(type) {
	case *Class:
		switch s := source.(type) {
		case *Class:
			return t.IsAssignableFrom(s)
		case *ArrayType:
			return t == Object
		}
	case *ArrayType:
		s, ok := source.(*ArrayType)
		if !ok {
			return false
		}
		te, se := t.elem, s.elem
		if tc, ok := te.(*Class); ok && tc.IsPrimitive() {
			return te == se
		}
		if sc, ok := se.(*Class); ok && sc.IsPrimitive() {
			return false
		}
		return AssignableFrom(te, se)
	}
	return false
}
