package types

import (
	"sort"
	"strings"
)

// Env binds type variables to types. An Env is never modified after it is
// built: With and Merge return new environments.
type Env map[*TypeVariable]Type

// Lookup returns the binding of v
func (e Env) Lookup(v *TypeVariable) (Type, bool) {
	t, ok := e[v]
	return t, ok
}

// GetOrDefault returns the binding of v, or v itself when unbound
func (e Env) GetOrDefault(v *TypeVariable) Type {
	if t, ok := e[v]; ok {
		return t
	}
	return v
}

// With returns a copy of e with v bound to t
func (e Env) With(v *TypeVariable, t Type) Env {
	ret := make(Env, len(e)+1)
	for k, val := range e {
		ret[k] = val
	}
	ret[v] = t
	return ret
}

// Merge returns a copy of e extended with the bindings of other. Bindings of
// other win on conflicts.
func (e Env) Merge(other Env) Env {
	ret := make(Env, len(e)+len(other))
	for k, v := range e {
		ret[k] = v
	}
	for k, v := range other {
		ret[k] = v
	}
	return ret
}

func (e Env) Len() int {
	return len(e)
}

// Equal reports whether both environments hold structurally equal bindings
func (e Env) Equal(other Env) bool {
	if len(e) != len(other) {
		return false
	}
	for k, v := range e {
		ov, ok := other[k]
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}

// Vars returns the bound variables ordered by declaring class and position
func (e Env) Vars() []*TypeVariable {
	vars := make([]*TypeVariable, 0, len(e))
	for v := range e {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool {
		if vars[i].decl != vars[j].decl {
			return vars[i].decl.ID() < vars[j].decl.ID()
		}
		return vars[i].index < vars[j].index
	})
	return vars
}

func (e Env) String() string {
	parts := make([]string, 0, len(e))
	for _, v := range e.Vars() {
		parts = append(parts, v.decl.Name()+"."+v.name+"="+e[v].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
