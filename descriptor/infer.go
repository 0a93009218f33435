package descriptor

import (
	"github.com/pablor21/typegen/types"
)

// Variance of a position during unification
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "covariant"
	case Contravariant:
		return "contravariant"
	}
	return "invariant"
}

// Infer computes the bindings of target's type parameters consistent with
// declared. target may be declared's own class, one of its ancestors or one of
// its descendants. The consistency checks are best-effort: an
// *types.InferenceError means the declarations cannot be reconciled, while a
// nil error does not prove them legal.
func Infer(target *types.Class, declared *ClassDescriptor) (types.Env, error) {
	if target == nil || declared == nil {
		return nil, types.NewInferenceError("nil target or declared type")
	}
	dc := declared.Class()
	if target == dc {
		return declared.Env(), nil
	}
	if target == types.Object {
		return types.Env{}, nil
	}

	if target.IsAssignableFrom(dc) {
		if target.IsInterface() {
			iface := declared.Interface(target)
			if iface == nil {
				return nil, types.NewInferenceError("%s does not implement %s", declared, target.ID())
			}
			return iface.Env(), nil
		}
		sc := declared.Superclass()
		if sc == nil {
			return nil, types.NewInferenceError("%s has no superclass leading to %s", declared, target.ID())
		}
		return Infer(target, sc)
	}

	if dc.IsAssignableFrom(target) {
		if target.IsInterface() || dc.IsInterface() {
			for _, iface := range target.Interfaces() {
				if iface == dc {
					return inferDirectSubclass(target, declared)
				}
				if dc.IsAssignableFrom(iface) {
					return inferThrough(target, iface, declared)
				}
			}
		}
		if !target.IsInterface() {
			sc := target.Superclass()
			if sc == dc {
				return inferDirectSubclass(target, declared)
			}
			if sc != nil && dc.IsAssignableFrom(sc) {
				return inferThrough(target, sc, declared)
			}
		}
	}
	return nil, types.NewInferenceError("%s is not on the type chain of %s", target.ID(), declared)
}

// inferThrough infers target against declared by way of the intermediate
// supertype via.
func inferThrough(target, via *types.Class, declared *ClassDescriptor) (types.Env, error) {
	env, err := Infer(via, declared)
	if err != nil {
		return nil, err
	}
	viaDesc := DescribeClass(types.ResolvedClassType(via, env))
	if viaDesc == nil {
		return nil, types.NewInferenceError("cannot describe %s", via.ID())
	}
	return Infer(target, viaDesc)
}

// inferDirectSubclass handles a target whose superclass or one of whose
// interfaces is declared's class.
func inferDirectSubclass(target *types.Class, declared *ClassDescriptor) (types.Env, error) {
	dc := declared.Class()
	var superType types.Type
	if dc.IsInterface() {
		for _, gi := range target.GenericInterfaces() {
			if types.RawClass(gi) == dc {
				superType = gi
				break
			}
		}
	} else {
		superType = target.GenericSuperclass()
	}
	if superType == nil {
		return nil, types.NewInferenceError("%s does not directly extend %s", target.ID(), dc.ID())
	}

	// the declaration of target must reproduce the declared bindings
	check := newUnifier()
	if err := check.unify(superType, types.ResolvedClassType(dc, declared.Env()), Invariant); err != nil {
		return nil, err
	}

	u := newUnifier()
	if pt, ok := superType.(*types.ParameterizedType); ok && len(target.TypeParams()) > 0 {
		params := dc.TypeParams()
		if len(pt.Args()) != len(params) {
			return nil, types.NewInferenceError("%s: expected %d type arguments for %s, got %d", target.ID(), len(params), dc.ID(), len(pt.Args()))
		}
		for i, arg := range pt.Args() {
			if err := u.unify(arg, declared.Env().GetOrDefault(params[i]), Invariant); err != nil {
				return nil, err
			}
		}
	}
	inferred := u.env

	if target.IsInner() {
		outerClass := target.Enclosing()
		declaredOuter := declared.Outer()
		for outerClass != nil && declaredOuter != nil {
			if declaredOuter.Class().IsAssignableFrom(outerClass) {
				outerEnv, err := Infer(outerClass, declaredOuter)
				if err != nil {
					return nil, err
				}
				inferred = inferred.Merge(outerEnv)
				declaredOuter = declaredOuter.Outer()
			}
			outerClass = outerClass.Enclosing()
		}
	}
	return inferred, nil
}

type unifier struct {
	env types.Env
	// variable/actual pairs whose bounds are being checked, to stop on
	// self-referential bounds such as E extends Enum<E>
	checking map[string]bool
}

func newUnifier() *unifier {
	return &unifier{env: types.Env{}, checking: map[string]bool{}}
}

func (u *unifier) unifyAll(toInfer, actual []types.Type) error {
	if len(toInfer) != len(actual) {
		return types.NewInferenceError("expected %d types, got %d", len(toInfer), len(actual))
	}
	for i := range toInfer {
		if err := u.unify(toInfer[i], actual[i], Invariant); err != nil {
			return err
		}
	}
	return nil
}

func (u *unifier) unify(toInfer, actual types.Type, variance Variance) error {
	if toInfer == nil && actual == nil {
		return nil
	}
	if toInfer == nil || actual == nil {
		return types.NewInferenceError("cannot unify %v with %v", toInfer, actual)
	}

	switch t := toInfer.(type) {
	case *types.WildcardType:
		if a, ok := actual.(*types.WildcardType); ok {
			if err := u.unifyAll(t.LowerBounds(), a.LowerBounds()); err != nil {
				return err
			}
			return u.unifyAll(t.UpperBounds(), a.UpperBounds())
		}
		if lower := t.LowerBounds(); len(lower) > 0 {
			return u.unify(lower[0], actual, Covariant)
		}
		return u.unify(t.UpperBounds()[0], actual, Contravariant)

	case *types.TypeVariable:
		return u.unifyVar(t, t.Bounds(), actual, variance)

	case *types.BoundedTypeVariable:
		return u.unifyVar(t.Var(), t.Bounds(), actual, variance)

	case *types.ParameterizedType:
		switch a := actual.(type) {
		case *types.ParameterizedType:
			if err := u.unify(t.Raw(), a.Raw(), variance); err != nil {
				return err
			}
			if variance == Invariant {
				if err := u.unifyAll(t.Args(), a.Args()); err != nil {
					return err
				}
				return u.unify(t.Owner(), a.Owner(), Invariant)
			}
			inferred, err := rederive(t.Raw(), a)
			if err != nil {
				return err
			}
			if err := u.unifyAll(t.Args(), inferred.Args()); err != nil {
				return err
			}
			return u.unify(t.Owner(), inferred.Owner(), Invariant)
		case *types.WildcardType:
			return u.unifyWithWildcard(t, a)
		}
		return types.NewInferenceError("cannot unify %s with %s", t, actual)

	case *types.ArrayType:
		switch a := actual.(type) {
		case *types.ArrayType:
			return u.unify(t.Elem(), a.Elem(), Covariant)
		case *types.WildcardType:
			return u.unifyWithWildcard(t, a)
		}
		return types.NewInferenceError("cannot unify array %s with %s", t, actual)
	}

	actualRaw := types.Erasure(actual)
	ok := true
	switch variance {
	case Invariant:
		ok = types.Equal(toInfer, actual)
	case Covariant:
		ok = types.AssignableFrom(actualRaw, types.Erasure(toInfer))
	case Contravariant:
		ok = types.AssignableFrom(types.Erasure(toInfer), actualRaw)
	}
	if !ok {
		return types.NewInferenceError("%s is not %s with %s", toInfer, variance, actual)
	}
	return nil
}

// unifyWithWildcard unifies toInfer with the single bound of an actual wildcard
func (u *unifier) unifyWithWildcard(toInfer types.Type, actual *types.WildcardType) error {
	if lower := actual.LowerBounds(); len(lower) > 0 {
		return u.unify(toInfer, lower[0], Contravariant)
	}
	return u.unify(toInfer, actual.UpperBounds()[0], Covariant)
}

func (u *unifier) unifyVar(v *types.TypeVariable, bounds []types.Type, actual types.Type, variance Variance) error {
	actualRaw := types.Erasure(actual)
	if variance != Contravariant {
		if c, ok := actual.(*types.Class); ok && c.IsPrimitive() {
			actualRaw = types.Box(c)
			u.env[v] = actualRaw
		} else {
			u.env[v] = actual
		}
	}

	key := v.Key() + "=" + actual.Key()
	if u.checking[key] {
		return nil
	}
	u.checking[key] = true
	defer delete(u.checking, key)

	for _, b := range bounds {
		if !types.AssignableFrom(types.Erasure(b), actualRaw) {
			return types.NewInferenceError("%s does not satisfy bound %s of %s", actual, b, v)
		}
		pb, ok := b.(*types.ParameterizedType)
		if !ok {
			continue
		}
		inferred, err := rederive(pb.Raw(), actual)
		if err != nil {
			return err
		}
		if err := u.unifyAll(pb.Args(), inferred.Args()); err != nil {
			return err
		}
		if err := u.unify(pb.Owner(), inferred.Owner(), Invariant); err != nil {
			return err
		}
	}
	return nil
}

// rederive expresses actual as an instance of raw, e.g. HashMap<String, Integer>
// as Map<String, Integer>.
func rederive(raw *types.Class, actual types.Type) (*types.ParameterizedType, error) {
	d := DescribeClass(actual)
	if d == nil {
		return nil, types.NewInferenceError("%s is not a class type", actual)
	}
	env, err := Infer(raw, d)
	if err != nil {
		return nil, err
	}
	pt, ok := types.ResolvedClassType(raw, env).(*types.ParameterizedType)
	if !ok {
		return nil, types.NewInferenceError("%s has no type arguments to infer from %s", raw.ID(), actual)
	}
	return pt, nil
}
