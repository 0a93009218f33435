package scanner

import (
	"fmt"
	"go/token"
	gotypes "go/types"
	"sort"

	"github.com/pablor21/typegen/types"
	"golang.org/x/tools/go/packages"
)

// typeResolver maps the named types of Go packages onto classes. Declarations
// are created first so that fields and supertypes can reference any class of
// the scanned packages regardless of declaration order.
type typeResolver struct {
	ctx       *ScanningContext
	classes   map[*gotypes.TypeName]*types.Class
	vars      map[*gotypes.TypeName]*types.TypeVariable
	constants map[*gotypes.TypeName][]*gotypes.Const
	ids       map[string]*types.Class
	declared  []*gotypes.TypeName
}

func newTypeResolver(ctx *ScanningContext) *typeResolver {
	return &typeResolver{
		ctx:       ctx,
		classes:   map[*gotypes.TypeName]*types.Class{},
		vars:      map[*gotypes.TypeName]*types.TypeVariable{},
		constants: map[*gotypes.TypeName][]*gotypes.Const{},
		ids:       map[string]*types.Class{},
	}
}

func (r *typeResolver) visible(name string) bool {
	if token.IsExported(name) {
		return r.ctx.Config.Visibility.Has(VisibilityLevelExported)
	}
	return r.ctx.Config.Visibility.Has(VisibilityLevelUnexported)
}

// declare creates a class for every mappable named type of pkg
func (r *typeResolver) declare(pkg *packages.Package) {
	scope := pkg.Types.Scope()

	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*gotypes.Const)
		if !ok || !r.visible(name) {
			continue
		}
		if named, ok := c.Type().(*gotypes.Named); ok && named.Obj().Pkg() == pkg.Types {
			r.constants[named.Obj()] = append(r.constants[named.Obj()], c)
		}
	}

	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*gotypes.TypeName)
		if !ok || obj.IsAlias() || !r.visible(name) {
			continue
		}
		named, ok := obj.Type().(*gotypes.Named)
		if !ok {
			continue
		}

		var mods types.Modifier
		switch u := named.Underlying().(type) {
		case *gotypes.Struct:
			mods = types.ModNone
		case *gotypes.Interface:
			if !u.IsMethodSet() {
				r.ctx.Logger.Debug(fmt.Sprintf("skipping constraint %s.%s", pkg.PkgPath, name))
				continue
			}
			mods = types.ModInterface
		case *gotypes.Basic:
			if u.Info()&(gotypes.IsInteger|gotypes.IsString) == 0 || len(r.constants[obj]) == 0 {
				r.ctx.Logger.Debug(fmt.Sprintf("skipping named basic type %s.%s", pkg.PkgPath, name))
				continue
			}
			mods = types.ModEnum | types.ModFinal
		default:
			r.ctx.Logger.Debug(fmt.Sprintf("skipping %s.%s: unsupported underlying type %s", pkg.PkgPath, name, u))
			continue
		}

		c := types.NewClass(pkg.PkgPath, name, mods)
		tparams := named.TypeParams()
		for i := 0; i < tparams.Len(); i++ {
			tp := tparams.At(i)
			r.vars[tp.Obj()] = c.AddTypeParam(tp.Obj().Name())
		}
		r.classes[obj] = c
		r.ids[c.ID()] = c
		r.declared = append(r.declared, obj)
	}
}

// define fills supertypes, bounds, fields and enum constants of the declared classes
func (r *typeResolver) define() {
	for _, obj := range r.declared {
		c := r.classes[obj]
		named := obj.Type().(*gotypes.Named)
		r.defineBounds(named)

		switch u := named.Underlying().(type) {
		case *gotypes.Struct:
			r.defineStruct(c, u)
		case *gotypes.Interface:
			for i := 0; i < u.NumEmbeddeds(); i++ {
				if t, err := r.typeOf(u.EmbeddedType(i)); err == nil && isInterface(t) {
					c.Implements(t)
				}
			}
		case *gotypes.Basic:
			consts := r.constants[obj]
			sort.Slice(consts, func(i, j int) bool { return consts[i].Pos() < consts[j].Pos() })
			names := make([]string, len(consts))
			for i, k := range consts {
				names[i] = k.Name()
			}
			c.Extends(types.Parameterized(types.Enum, c)).AddEnumConstants(names...)
		}
	}
	r.defineImplements()
}

// defineBounds maps interface constraints to bounds. Constraints that are not
// method sets (unions, comparable) leave the parameter bounded by Object.
func (r *typeResolver) defineBounds(named *gotypes.Named) {
	tparams := named.TypeParams()
	for i := 0; i < tparams.Len(); i++ {
		tp := tparams.At(i)
		constraint, ok := gotypes.Unalias(tp.Constraint()).(*gotypes.Named)
		if !ok {
			continue
		}
		if bound, err := r.typeOf(constraint); err == nil && isInterface(bound) {
			r.vars[tp.Obj()].SetBounds(bound)
		}
	}
}

func (r *typeResolver) defineStruct(c *types.Class, st *gotypes.Struct) {
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Embedded() {
			if t, err := r.typeOf(f.Type()); err == nil {
				switch {
				case isInterface(t):
					c.Implements(t)
					continue
				case isStructClass(t) && c.Superclass() == types.Object:
					c.Extends(t)
					continue
				}
			}
		}
		if !r.visible(f.Name()) {
			continue
		}
		t, err := r.typeOf(f.Type())
		if err != nil {
			r.ctx.Logger.Debug(fmt.Sprintf("skipping field %s.%s: %v", c.Name(), f.Name(), err))
			continue
		}
		c.AddField(f.Name(), t)
	}
}

// defineImplements adds the scanned non-generic interfaces that non-generic
// structs satisfy, directly or through their pointer type
func (r *typeResolver) defineImplements() {
	for _, sobj := range r.declared {
		sc := r.classes[sobj]
		snamed := sobj.Type().(*gotypes.Named)
		if sc.IsInterface() || sc.IsEnum() || snamed.TypeParams().Len() > 0 {
			continue
		}
		for _, iobj := range r.declared {
			ic := r.classes[iobj]
			inamed := iobj.Type().(*gotypes.Named)
			if !ic.IsInterface() || inamed.TypeParams().Len() > 0 || ic.IsAssignableFrom(sc) {
				continue
			}
			iface := inamed.Underlying().(*gotypes.Interface)
			if iface.NumMethods() == 0 {
				continue
			}
			if gotypes.Implements(snamed, iface) || gotypes.Implements(gotypes.NewPointer(snamed), iface) {
				sc.Implements(ic)
			}
		}
	}
}

// typeOf maps a Go type to a type of the class model
func (r *typeResolver) typeOf(t gotypes.Type) (types.Type, error) {
	switch t := t.(type) {
	case *gotypes.Alias:
		return r.typeOf(gotypes.Unalias(t))
	case *gotypes.Basic:
		return basicClass(t)
	case *gotypes.Pointer:
		return r.typeOf(t.Elem())
	case *gotypes.Slice:
		elem, err := r.typeOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return types.ArrayOf(elem), nil
	case *gotypes.Array:
		elem, err := r.typeOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return types.ArrayOf(elem), nil
	case *gotypes.Map:
		k, err := r.typeOf(t.Key())
		if err != nil {
			return nil, err
		}
		v, err := r.typeOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return types.Parameterized(types.Map, boxed(k), boxed(v)), nil
	case *gotypes.TypeParam:
		if v, ok := r.vars[t.Obj()]; ok {
			return v, nil
		}
		return nil, fmt.Errorf("type parameter %s is not declared by a scanned type", t)
	case *gotypes.Named:
		return r.namedType(t)
	case *gotypes.Interface, *gotypes.Struct:
		return types.Object, nil
	}
	return nil, fmt.Errorf("unsupported type %s", t)
}

func (r *typeResolver) namedType(t *gotypes.Named) (types.Type, error) {
	obj := t.Obj()
	if obj.Pkg() != nil && obj.Pkg().Path() == "time" && obj.Name() == "Time" {
		return types.Instant, nil
	}

	c, ok := r.classes[t.Origin().Obj()]
	if !ok && obj.Pkg() != nil {
		id := obj.Pkg().Path() + "." + obj.Name()
		if c, ok = r.ids[id]; !ok {
			// declared by an earlier scan
			c, ok = types.Lookup(id)
		}
	}
	if !ok {
		// not scanned: fall back to the shape of the underlying type
		return r.typeOf(t.Underlying())
	}

	targs := t.TypeArgs()
	if targs.Len() == 0 {
		return c, nil
	}
	args := make([]types.Type, targs.Len())
	for i := range args {
		a, err := r.typeOf(targs.At(i))
		if err != nil {
			return nil, err
		}
		args[i] = boxed(a)
	}
	return types.NewParameterizedType(c, nil, args...)
}

func basicClass(t *gotypes.Basic) (types.Type, error) {
	switch t.Kind() {
	case gotypes.Bool:
		return types.PrimBoolean, nil
	case gotypes.Int8, gotypes.Uint8:
		return types.PrimByte, nil
	case gotypes.Int16:
		return types.PrimShort, nil
	case gotypes.Uint16:
		return types.PrimChar, nil
	case gotypes.Int32:
		return types.PrimInt, nil
	case gotypes.Int, gotypes.Int64, gotypes.Uint, gotypes.Uint32, gotypes.Uint64, gotypes.Uintptr:
		return types.PrimLong, nil
	case gotypes.Float32:
		return types.PrimFloat, nil
	case gotypes.Float64:
		return types.PrimDouble, nil
	case gotypes.String:
		return types.String, nil
	}
	return nil, fmt.Errorf("unsupported basic type %s", t)
}

// boxed replaces primitives by their box class so they can be type arguments
func boxed(t types.Type) types.Type {
	if c, ok := t.(*types.Class); ok {
		return types.Box(c)
	}
	return t
}

// isInterface reports whether t is an interface class, raw or parameterized
func isInterface(t types.Type) bool {
	switch t := t.(type) {
	case *types.Class:
		return t.IsInterface()
	case *types.ParameterizedType:
		return t.Raw().IsInterface()
	}
	return false
}

// isStructClass reports whether t can be a superclass
func isStructClass(t types.Type) bool {
	var c *types.Class
	switch t := t.(type) {
	case *types.Class:
		c = t
	case *types.ParameterizedType:
		c = t.Raw()
	default:
		return false
	}
	return c != types.Object && !c.IsPrimitive() && !c.IsInterface() && !c.IsEnum() && !types.IsBuiltin(c)
}
