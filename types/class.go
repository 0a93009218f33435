package types

import (
	"fmt"
)

// FieldModifier describes the declaration flags of a field
type FieldModifier uint8

const (
	FieldStatic FieldModifier = 1 << iota
	FieldSynthetic
)

// Field is a member declared by a class
type Field struct {
	name  string
	typ   Type
	decl  *Class
	flags FieldModifier
}

func (f *Field) Name() string {
	return f.name
}

// Type returns the declared (unresolved) type of the field
func (f *Field) Type() Type {
	return f.typ
}

// Decl returns the declaring class
func (f *Field) Decl() *Class {
	return f.decl
}

func (f *Field) IsStatic() bool {
	return f.flags&FieldStatic != 0
}

// IsSynthetic reports compiler-generated fields, which are never part of a member layout
func (f *Field) IsSynthetic() bool {
	return f.flags&FieldSynthetic != 0
}

func (f *Field) String() string {
	return fmt.Sprintf("%s.%s %s", f.decl.Name(), f.name, f.typ)
}

// ConstructorFunc creates an instance from positional arguments
type ConstructorFunc func(args []any) (any, error)

// Constructor is an invocable constructor of a class
type Constructor struct {
	Params []Type
	New    ConstructorFunc
}

// Class is a declared class, interface, enum or primitive of the model.
// Classes are built with NewClass and the builder methods, then registered.
type Class struct {
	pkg        string
	name       string
	mods       Modifier
	enclosing  *Class
	typeParams []*TypeVariable
	superclass Type
	interfaces []Type
	fields     []*Field
	ctors      []*Constructor
	noCtors    bool
	constants  []*EnumConstant
}

// NewClass creates an unregistered top-level class
func NewClass(pkg, name string, mods Modifier) *Class {
	return &Class{pkg: pkg, name: name, mods: mods}
}

// NewNested creates an unregistered class nested in c. Inner (non-static)
// classes need an enclosing instance to be constructed.
func (c *Class) NewNested(name string, mods Modifier) *Class {
	return &Class{pkg: c.pkg, name: c.name + "." + name, mods: mods, enclosing: c}
}

func (c *Class) isType() {}

// ID returns the package-qualified name, unique within the registry
func (c *Class) ID() string {
	if c.pkg == "" {
		return c.name
	}
	return c.pkg + "." + c.name
}

// Name returns the name of the class including its enclosing classes
func (c *Class) Name() string {
	return c.name
}

// SimpleName returns the name without enclosing classes
func (c *Class) SimpleName() string {
	if c.enclosing == nil {
		return c.name
	}
	return c.name[len(c.enclosing.name)+1:]
}

func (c *Class) Package() string {
	return c.pkg
}

func (c *Class) Modifiers() Modifier {
	return c.mods
}

func (c *Class) IsInterface() bool {
	return c.mods.Has(ModInterface)
}

func (c *Class) IsAbstract() bool {
	return c.mods.Has(ModAbstract) || c.mods.Has(ModInterface)
}

func (c *Class) IsStatic() bool {
	return c.mods.Has(ModStatic)
}

func (c *Class) IsEnum() bool {
	return c.mods.Has(ModEnum)
}

func (c *Class) IsPrimitive() bool {
	return c.mods.Has(ModPrimitive)
}

// IsNested reports whether c is declared inside another class
func (c *Class) IsNested() bool {
	return c.enclosing != nil
}

// IsInner reports whether c is nested and needs an enclosing instance
func (c *Class) IsInner() bool {
	return c.enclosing != nil && !c.IsStatic() && !c.IsInterface() && !c.IsEnum()
}

// Enclosing returns the class c is nested in, nil for top-level classes
func (c *Class) Enclosing() *Class {
	return c.enclosing
}

// AddTypeParam declares a new type parameter. Without bounds it is bounded by Object.
func (c *Class) AddTypeParam(name string, bounds ...Type) *TypeVariable {
	v := &TypeVariable{name: name, decl: c, index: len(c.typeParams), bounds: bounds}
	c.typeParams = append(c.typeParams, v)
	return v
}

func (c *Class) TypeParams() []*TypeVariable {
	return c.typeParams
}

// TypeParam returns the parameter with the given name
func (c *Class) TypeParam(name string) *TypeVariable {
	for _, v := range c.typeParams {
		if v.name == name {
			return v
		}
	}
	return nil
}

// Extends sets the generic superclass
func (c *Class) Extends(t Type) *Class {
	c.superclass = t
	return c
}

// Implements appends generic interfaces (or super-interfaces for interfaces)
func (c *Class) Implements(ts ...Type) *Class {
	c.interfaces = append(c.interfaces, ts...)
	return c
}

// GenericSuperclass returns the declared superclass. Classes without an
// explicit superclass extend Object; interfaces, primitives and Object have none.
func (c *Class) GenericSuperclass() Type {
	if c.superclass != nil {
		return c.superclass
	}
	if c == Object || c.IsInterface() || c.IsPrimitive() {
		return nil
	}
	return Object
}

func (c *Class) GenericInterfaces() []Type {
	return c.interfaces
}

// Superclass returns the raw superclass
func (c *Class) Superclass() *Class {
	return RawClass(c.GenericSuperclass())
}

// Interfaces returns the raw directly implemented interfaces
func (c *Class) Interfaces() []*Class {
	ret := make([]*Class, 0, len(c.interfaces))
	for _, t := range c.interfaces {
		if rc := RawClass(t); rc != nil {
			ret = append(ret, rc)
		}
	}
	return ret
}

// AddField declares a field
func (c *Class) AddField(name string, t Type, mods ...FieldModifier) *Field {
	f := &Field{name: name, typ: t, decl: c}
	for _, m := range mods {
		f.flags |= m
	}
	c.fields = append(c.fields, f)
	return f
}

func (c *Class) Fields() []*Field {
	return c.fields
}

// Field returns the declared field with the given name, nil when c declares none
func (c *Class) Field(name string) *Field {
	for _, f := range c.fields {
		if f.name == name {
			return f
		}
	}
	return nil
}

// AddConstructor declares a constructor
func (c *Class) AddConstructor(params []Type, fn ConstructorFunc) *Class {
	c.ctors = append(c.ctors, &Constructor{Params: params, New: fn})
	return c
}

// Constructors returns the declared constructors. A concrete class without
// explicit constructors has an implicit one creating an *Instance, taking the
// enclosing instance as its only parameter when the class is inner.
func (c *Class) Constructors() []*Constructor {
	if len(c.ctors) > 0 || c.noCtors || c.IsAbstract() || c.IsPrimitive() || c.IsEnum() {
		return c.ctors
	}
	if c.IsInner() {
		return []*Constructor{{
			Params: []Type{c.enclosing},
			New: func(args []any) (any, error) {
				return NewInstance(c, args[0]), nil
			},
		}}
	}
	return []*Constructor{{
		New: func([]any) (any, error) {
			return NewInstance(c, nil), nil
		},
	}}
}

// NoConstructors removes the implicit constructor of a concrete class
func (c *Class) NoConstructors() *Class {
	c.noCtors = true
	return c
}

// AddEnumConstants declares enum constants in ordinal order
func (c *Class) AddEnumConstants(names ...string) *Class {
	for _, n := range names {
		c.constants = append(c.constants, &EnumConstant{class: c, name: n, ordinal: len(c.constants)})
	}
	return c
}

func (c *Class) EnumConstants() []*EnumConstant {
	return c.constants
}

// IsAssignableFrom reports whether a value of class d can be used where c is
// expected, following superclasses and interfaces.
func (c *Class) IsAssignableFrom(d *Class) bool {
	if c == nil || d == nil {
		return false
	}
	if c == d {
		return true
	}
	if d.IsPrimitive() || c.IsPrimitive() {
		return false
	}
	if c == Object {
		return true
	}
	if sc := d.Superclass(); sc != nil && c.IsAssignableFrom(sc) {
		return true
	}
	for _, i := range d.Interfaces() {
		if c.IsAssignableFrom(i) {
			return true
		}
	}
	return false
}

func (c *Class) String() string {
	return c.name
}

func (c *Class) Key() string {
	return c.ID()
}
