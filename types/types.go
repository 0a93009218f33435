package types

import (
	"fmt"
	"strings"
)

// Type is a declared or resolved type of the class model.
// The set of implementations is closed: *Class, *ParameterizedType, *ArrayType,
// *WildcardType, *TypeVariable and *BoundedTypeVariable.
type Type interface {
	// String returns the source-like form of the type, e.g. "Map<String, List<Integer>>"
	String() string
	// Key returns the structural identity of the type. Two types with the same
	// key are interchangeable for caching and equality.
	Key() string
	isType()
}

// Modifier describes the declaration flags of a class
type Modifier uint16

const (
	ModNone      Modifier = 0
	ModInterface Modifier = 1 << iota
	ModAbstract
	ModStatic
	ModEnum
	ModPrimitive
	ModFinal
)

func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

func (m Modifier) String() string {
	var parts []string
	for _, f := range []struct {
		mod  Modifier
		name string
	}{
		{ModInterface, "interface"},
		{ModAbstract, "abstract"},
		{ModStatic, "static"},
		{ModEnum, "enum"},
		{ModPrimitive, "primitive"},
		{ModFinal, "final"},
	} {
		if m.Has(f.mod) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, " ")
}

// ---------------------------------------------------------------------------
// Type variables
// ---------------------------------------------------------------------------

// TypeVariable is a type parameter declared by a class. Its identity is the
// pointer; two variables with the same name on different classes differ.
type TypeVariable struct {
	name   string
	decl   *Class
	index  int
	bounds []Type
}

func (v *TypeVariable) isType() {}

func (v *TypeVariable) Name() string {
	return v.name
}

// Decl returns the class declaring the variable
func (v *TypeVariable) Decl() *Class {
	return v.decl
}

// Index returns the position of the variable in its class' parameter list
func (v *TypeVariable) Index() int {
	return v.index
}

// Bounds returns the declared upper bounds, Object when none were declared
func (v *TypeVariable) Bounds() []Type {
	if len(v.bounds) == 0 {
		return []Type{Object}
	}
	return v.bounds
}

// SetBounds replaces the declared bounds. Bounds may reference the variable
// itself or later parameters of the same class, so they are set after creation.
func (v *TypeVariable) SetBounds(bounds ...Type) *TypeVariable {
	v.bounds = bounds
	return v
}

func (v *TypeVariable) String() string {
	return v.name
}

func (v *TypeVariable) Key() string {
	return v.name + "@" + v.decl.ID()
}

// BoundedTypeVariable is the resolved placeholder for a type variable that has
// no binding. It keeps the variable identity and its resolved bounds.
type BoundedTypeVariable struct {
	v      *TypeVariable
	bounds []Type
}

func (b *BoundedTypeVariable) isType() {}

func (b *BoundedTypeVariable) Var() *TypeVariable {
	return b.v
}

func (b *BoundedTypeVariable) Bounds() []Type {
	return b.bounds
}

func (b *BoundedTypeVariable) String() string {
	return b.v.name
}

func (b *BoundedTypeVariable) Key() string {
	return b.v.Key() + "{" + joinKeys(b.bounds, "&") + "}"
}

// ---------------------------------------------------------------------------
// Parameterized types
// ---------------------------------------------------------------------------

// ParameterizedType is a generic class applied to type arguments, e.g. List<String>.
// Owner is the enclosing type for nested classes and nil otherwise.
type ParameterizedType struct {
	raw      *Class
	args     []Type
	owner    Type
	resolved bool
}

// NewParameterizedType validates the arity of args against raw and the owner
// against raw's enclosing class.
func NewParameterizedType(raw *Class, owner Type, args ...Type) (*ParameterizedType, error) {
	if raw == nil {
		return nil, fmt.Errorf("parameterized type without raw class")
	}
	if len(args) != len(raw.typeParams) {
		return nil, fmt.Errorf("wrong number of type arguments for %s: got %d, want %d", raw.ID(), len(args), len(raw.typeParams))
	}
	for i, a := range args {
		if a == nil {
			return nil, fmt.Errorf("nil type argument %d for %s", i, raw.ID())
		}
	}
	if owner != nil {
		if raw.enclosing == nil {
			return nil, fmt.Errorf("%s is not a nested class but has owner %s", raw.ID(), owner)
		}
		if oc := RawClass(owner); oc != raw.enclosing {
			return nil, fmt.Errorf("owner %s of %s is not its enclosing class %s", owner, raw.ID(), raw.enclosing.ID())
		}
	}
	return &ParameterizedType{raw: raw, args: args, owner: owner}, nil
}

// Parameterized applies args to raw using the raw enclosing class as owner.
// It panics on arity mismatch and is meant for static declarations.
func Parameterized(raw *Class, args ...Type) *ParameterizedType {
	var owner Type
	if raw != nil && raw.enclosing != nil {
		owner = raw.enclosing
	}
	return ParameterizedIn(owner, raw, args...)
}

// ParameterizedIn applies args to raw nested in owner, e.g. Outer<String>.Inner<Integer>.
// It panics on invalid input.
func ParameterizedIn(owner Type, raw *Class, args ...Type) *ParameterizedType {
	p, err := NewParameterizedType(raw, owner, args...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *ParameterizedType) isType() {}

// Raw returns the generic class
func (p *ParameterizedType) Raw() *Class {
	return p.raw
}

// Args returns the type arguments
func (p *ParameterizedType) Args() []Type {
	return p.args
}

// Owner returns the enclosing type, nil for top-level classes
func (p *ParameterizedType) Owner() Type {
	return p.owner
}

// IsResolved reports whether the node was produced by Resolve
func (p *ParameterizedType) IsResolved() bool {
	return p.resolved
}

func (p *ParameterizedType) String() string {
	var sb strings.Builder
	if owner, ok := p.owner.(*ParameterizedType); ok {
		sb.WriteString(owner.String())
		sb.WriteByte('.')
		sb.WriteString(p.raw.SimpleName())
	} else {
		sb.WriteString(p.raw.Name())
	}
	if len(p.args) > 0 {
		sb.WriteByte('<')
		for i, a := range p.args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte('>')
	}
	return sb.String()
}

func (p *ParameterizedType) Key() string {
	var sb strings.Builder
	if p.owner != nil {
		sb.WriteString(p.owner.Key())
		sb.WriteByte('$')
	}
	sb.WriteString(p.raw.ID())
	sb.WriteByte('<')
	sb.WriteString(joinKeys(p.args, ","))
	sb.WriteByte('>')
	return sb.String()
}

// ---------------------------------------------------------------------------
// Arrays
// ---------------------------------------------------------------------------

// ArrayType is an array of Elem. An array of a raw class is the raw array type.
type ArrayType struct {
	elem     Type
	resolved bool
}

func ArrayOf(elem Type) *ArrayType {
	return &ArrayType{elem: elem}
}

func (a *ArrayType) isType() {}

func (a *ArrayType) Elem() Type {
	return a.elem
}

func (a *ArrayType) IsResolved() bool {
	return a.resolved
}

func (a *ArrayType) String() string {
	return a.elem.String() + "[]"
}

func (a *ArrayType) Key() string {
	return a.elem.Key() + "[]"
}

// ---------------------------------------------------------------------------
// Wildcards
// ---------------------------------------------------------------------------

// WildcardType is an existential type argument with a single upper bound and
// at most one lower bound.
type WildcardType struct {
	upper    Type
	lower    Type
	resolved bool
}

// Wildcard returns the unbounded wildcard "?"
func Wildcard() *WildcardType {
	return &WildcardType{upper: Object}
}

// WildcardExtends returns "? extends t"
func WildcardExtends(t Type) *WildcardType {
	return &WildcardType{upper: t}
}

// WildcardSuper returns "? super t"
func WildcardSuper(t Type) *WildcardType {
	return &WildcardType{upper: Object, lower: t}
}

func (w *WildcardType) isType() {}

// UpperBounds always holds exactly one type
func (w *WildcardType) UpperBounds() []Type {
	if w.upper == nil {
		return []Type{Object}
	}
	return []Type{w.upper}
}

// LowerBounds holds zero or one type
func (w *WildcardType) LowerBounds() []Type {
	if w.lower == nil {
		return nil
	}
	return []Type{w.lower}
}

func (w *WildcardType) IsResolved() bool {
	return w.resolved
}

func (w *WildcardType) String() string {
	s := "?"
	if w.lower != nil {
		s += " super " + w.lower.String()
	}
	if w.upper != nil && w.upper != Type(Object) {
		s += " extends " + w.upper.String()
	}
	return s
}

func (w *WildcardType) Key() string {
	s := "?"
	if w.upper != nil {
		s += "+" + w.upper.Key()
	}
	if w.lower != nil {
		s += "-" + w.lower.Key()
	}
	return s
}

// Equal reports whether two types are structurally identical
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b || a.Key() == b.Key()
}

func joinKeys(ts []Type, sep string) string {
	keys := make([]string, len(ts))
	for i, t := range ts {
		if t == nil {
			keys[i] = "nil"
			continue
		}
		keys[i] = t.Key()
	}
	return strings.Join(keys, sep)
}
