package entity

import (
	"errors"
	"slices"
)

var (
	// ErrExists is returned by Insert when the key is already present.
	ErrExists = errors.New("entity already exists")

	// ErrMissing is returned by Update and Delete when the key is absent.
	ErrMissing = errors.New("entity not found")
)

// ordered is a keyed collection that iterates in insertion order.
type ordered[K comparable, V any] struct {
	keys []K
	vals map[K]V
}

func newOrdered[K comparable, V any]() *ordered[K, V] {
	return &ordered[K, V]{vals: make(map[K]V)}
}

func (o *ordered[K, V]) get(k K) (V, bool) {
	v, ok := o.vals[k]
	return v, ok
}

func (o *ordered[K, V]) has(k K) bool {
	_, ok := o.vals[k]
	return ok
}

func (o *ordered[K, V]) insert(k K, v V) error {
	if o.has(k) {
		return ErrExists
	}
	o.keys = append(o.keys, k)
	o.vals[k] = v
	return nil
}

func (o *ordered[K, V]) update(k K, v V) error {
	if !o.has(k) {
		return ErrMissing
	}
	o.vals[k] = v
	return nil
}

// rekey moves the value at old to next, keeping its position.
func (o *ordered[K, V]) rekey(old, next K, v V) error {
	if !o.has(old) {
		return ErrMissing
	}
	if old != next && o.has(next) {
		return ErrExists
	}
	i := slices.Index(o.keys, old)
	o.keys[i] = next
	delete(o.vals, old)
	o.vals[next] = v
	return nil
}

func (o *ordered[K, V]) delete(k K) error {
	if !o.has(k) {
		return ErrMissing
	}
	o.keys = slices.DeleteFunc(o.keys, func(x K) bool { return x == k })
	delete(o.vals, k)
	return nil
}

func (o *ordered[K, V]) all() []V {
	out := make([]V, 0, len(o.keys))
	for _, k := range o.keys {
		out = append(out, o.vals[k])
	}
	return out
}

func (o *ordered[K, V]) len() int { return len(o.keys) }

// list is an index-addressed collection for entities without a natural key.
type list[V any] struct {
	vals []V
}

func (l *list[V]) get(i int) (V, bool) {
	var zero V
	if i < 0 || i >= len(l.vals) {
		return zero, false
	}
	return l.vals[i], true
}

func (l *list[V]) insert(v V) int {
	l.vals = append(l.vals, v)
	return len(l.vals) - 1
}

func (l *list[V]) update(i int, v V) error {
	if i < 0 || i >= len(l.vals) {
		return ErrMissing
	}
	l.vals[i] = v
	return nil
}

func (l *list[V]) delete(i int) error {
	if i < 0 || i >= len(l.vals) {
		return ErrMissing
	}
	l.vals = slices.Delete(l.vals, i, i+1)
	return nil
}

func (l *list[V]) all() []V { return slices.Clone(l.vals) }

func (l *list[V]) len() int { return len(l.vals) }
