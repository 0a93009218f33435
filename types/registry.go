package types

import (
	"fmt"
	"sort"
)

var (
	registry = NewSyncMap[string, *Class]()
	byName   = NewSyncMap[string, []*Class]()
)

// Register publishes classes in the process-wide registry. Only registered
// classes can be looked up by name; describing and generating works for any class.
func Register(classes ...*Class) error {
	for _, c := range classes {
		if c == nil {
			return fmt.Errorf("cannot register nil class")
		}
		if existing, loaded := registry.GetOrSet(c.ID(), c); loaded {
			if existing == c {
				continue
			}
			return fmt.Errorf("class %s already registered", c.ID())
		}
		byName.Update(c.Name(), func(list []*Class) []*Class {
			return append(list, c)
		})
	}
	return nil
}

// MustRegister is like Register but panics on error
func MustRegister(classes ...*Class) {
	if err := Register(classes...); err != nil {
		panic(err)
	}
}

// Lookup finds a class by id (package-qualified name)
func Lookup(id string) (*Class, bool) {
	return registry.Get(id)
}

// LookupName finds a class by id or, failing that, by its unqualified name.
// An unqualified name matching classes in several packages is an error.
func LookupName(name string) (*Class, error) {
	if c, ok := registry.Get(name); ok {
		return c, nil
	}
	candidates, _ := byName.Get(name)
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("unknown class %q", name)
	case 1:
		return candidates[0], nil
	}
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID()
	}
	sort.Strings(ids)
	return nil, fmt.Errorf("ambiguous class name %q: %v", name, ids)
}

// Classes returns every registered class sorted by id
func Classes() []*Class {
	ret := registry.Values()
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID() < ret[j].ID() })
	return ret
}
