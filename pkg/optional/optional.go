// Package optional provides a value that may be absent, used for partial
// updates where "not provided" must differ from the zero value. A JSON null
// decodes to a nil pointer and therefore to None, so an update cannot clear a
// field: null and an omitted key both leave the stored value unchanged.
package optional

type Value[T any] struct {
	v   T
	set bool
}

func Some[T any](v T) Value[T] {
	return Value[T]{v: v, set: true}
}

func None[T any]() Value[T] {
	return Value[T]{}
}

// FromPtr is Some(*p) for a non-nil p and None otherwise.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Map converts a present value with fn. fn is not called when absent.
func Map[T, U any](o Value[T], fn func(T) U) Value[U] {
	if !o.set {
		return None[U]()
	}
	return Some(fn(o.v))
}

func (o Value[T]) Get() (T, bool) {
	return o.v, o.set
}

func (o Value[T]) IsSet() bool {
	return o.set
}

func (o Value[T]) OrElse(def T) T {
	if o.set {
		return o.v
	}
	return def
}
