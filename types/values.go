package types

import (
	"errors"
	"reflect"
	"time"
)

// Instance is an instance of a user class: field storage plus the enclosing
// instance for inner classes.
type Instance struct {
	class  *Class
	outer  any
	fields map[string]any
	order  []string
}

// NewInstance creates a zero instance of c. Primitive fields declared anywhere in
// the superclass chain start at their zero value, the others are nil.
func NewInstance(c *Class, outer any) *Instance {
	o := &Instance{class: c, outer: outer, fields: map[string]any{}}
	for cur := c; cur != nil; cur = cur.Superclass() {
		for _, f := range cur.fields {
			if f.IsStatic() {
				continue
			}
			if _, seen := o.fields[f.name]; seen {
				continue
			}
			o.fields[f.name] = ZeroValue(f.typ)
			o.order = append(o.order, f.name)
		}
	}
	return o
}

func (o *Instance) Class() *Class {
	return o.class
}

// Outer returns the enclosing instance, nil for top-level and static classes
func (o *Instance) Outer() any {
	return o.outer
}

// Get returns the value of a field
func (o *Instance) Get(name string) (any, bool) {
	v, ok := o.fields[name]
	return v, ok
}

// Set assigns a field declared by the object's class or one of its superclasses
func (o *Instance) Set(name string, value any) error {
	if _, ok := o.fields[name]; !ok {
		return NewMemberAccessError(o.class, name, errors.New("no such field"))
	}
	o.fields[name] = value
	return nil
}

// FieldNames returns the instance field names, most-derived first
func (o *Instance) FieldNames() []string {
	return o.order
}

// CollectionValue is implemented by values of collection classes
type CollectionValue interface {
	Class() *Class
	Add(v any)
	Len() int
	Items() []any
}

// MappingValue is implemented by values of map classes
type MappingValue interface {
	Class() *Class
	Put(key, value any)
	Get(key any) (any, bool)
	Len() int
	Keys() []any
}

// ListValue is an ordered collection allowing duplicates
type ListValue struct {
	class *Class
	items []any
}

func NewList(c *Class) *ListValue {
	return &ListValue{class: c}
}

func (l *ListValue) Class() *Class { return l.class }
func (l *ListValue) Add(v any)     { l.items = append(l.items, v) }
func (l *ListValue) Len() int      { return len(l.items) }
func (l *ListValue) Items() []any  { return l.items }

// SetValue is an insertion-ordered collection without duplicates
type SetValue struct {
	class *Class
	items []any
	index map[any]struct{}
}

func NewSet(c *Class) *SetValue {
	return &SetValue{class: c, index: map[any]struct{}{}}
}

func (s *SetValue) Class() *Class { return s.class }
func (s *SetValue) Len() int      { return len(s.items) }
func (s *SetValue) Items() []any  { return s.items }

func (s *SetValue) Add(v any) {
	if hashable(v) {
		if _, ok := s.index[v]; ok {
			return
		}
		s.index[v] = struct{}{}
	}
	s.items = append(s.items, v)
}

// Contains reports whether v was added
func (s *SetValue) Contains(v any) bool {
	if !hashable(v) {
		return false
	}
	_, ok := s.index[v]
	return ok
}

// MapValue is an insertion-ordered map
type MapValue struct {
	class  *Class
	keys   []any
	values map[any]any
}

func NewMap(c *Class) *MapValue {
	return &MapValue{class: c, values: map[any]any{}}
}

func (m *MapValue) Class() *Class { return m.class }
func (m *MapValue) Len() int      { return len(m.keys) }
func (m *MapValue) Keys() []any   { return m.keys }

func (m *MapValue) Put(key, value any) {
	if !hashable(key) {
		return
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *MapValue) Get(key any) (any, bool) {
	if !hashable(key) {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Array is a fixed-length array value
type Array struct {
	elem  Type
	items []any
}

// NewArray allocates an array of n zero elements
func NewArray(elem Type, n int) *Array {
	a := &Array{elem: elem, items: make([]any, n)}
	if z := ZeroValue(elem); z != nil {
		for i := range a.items {
			a.items[i] = z
		}
	}
	return a
}

func (a *Array) Elem() Type       { return a.elem }
func (a *Array) Len() int         { return len(a.items) }
func (a *Array) Get(i int) any    { return a.items[i] }
func (a *Array) Set(i int, v any) { a.items[i] = v }
func (a *Array) Items() []any     { return a.items }

// EnumConstant is a constant of an enum class
type EnumConstant struct {
	class   *Class
	name    string
	ordinal int
}

func (e *EnumConstant) Class() *Class  { return e.class }
func (e *EnumConstant) Name() string   { return e.name }
func (e *EnumConstant) Ordinal() int   { return e.ordinal }
func (e *EnumConstant) String() string { return e.name }

// ZeroValue returns the default value of a primitive type and nil otherwise
func ZeroValue(t Type) any {
	c, ok := t.(*Class)
	if !ok || !c.IsPrimitive() {
		return nil
	}
	switch c {
	case PrimBoolean:
		return false
	case PrimByte:
		return int8(0)
	case PrimChar:
		return uint16(0)
	case PrimShort:
		return int16(0)
	case PrimInt:
		return int32(0)
	case PrimLong:
		return int64(0)
	case PrimFloat:
		return float32(0)
	case PrimDouble:
		return float64(0)
	}
	return nil
}

// ClassOf returns the runtime type of a value produced by this package,
// nil when the value is nil or foreign.
func ClassOf(v any) Type {
	switch v := v.(type) {
	case nil:
		return nil
	case *Instance:
		return v.class
	case CollectionValue:
		return v.Class()
	case MappingValue:
		return v.Class()
	case *Array:
		return &ArrayType{elem: v.elem}
	case *EnumConstant:
		return v.class
	case Type:
		return ClassClass
	case bool:
		return Boolean
	case int8:
		return Byte
	case uint16:
		return Character
	case int16:
		return Short
	case int32:
		return Integer
	case int64:
		return Long
	case float32:
		return Float
	case float64:
		return Double
	case string:
		return String
	case time.Time:
		return Instant
	}
	return nil
}

func hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}
