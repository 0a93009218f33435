package descriptor

import "sync/atomic"

// lazy holds a value computed on first access. Concurrent first accesses may
// each run compute; the first published result is kept and returned to all.
type lazy[T any] struct {
	p atomic.Pointer[T]
}

func (l *lazy[T]) get(compute func() T) T {
	if v := l.p.Load(); v != nil {
		return *v
	}
	v := compute()
	l.p.CompareAndSwap(nil, &v)
	return *l.p.Load()
}
