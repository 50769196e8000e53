// Package optional provides Optional, a container that either holds a value
// or is explicitly empty.
//
// An empty Optional is a successful non-result, not an error:
//
//	quotient := optional.Map(engine.SafeDivide(a, b), func(q float64) float64 {
//	    return q * 10
//	}).OrElse(-1)
package optional

import (
	"fmt"

	"github.com/kbukum/funckit/functional"
)

// Optional holds either a value of type T or nothing.
// The zero value is empty.
type Optional[T any] struct {
	value   T
	present bool
}

// Of returns an Optional holding v.
func Of[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Empty returns an empty Optional.
func Empty[T any]() Optional[T] {
	return Optional[T]{}
}

// OfPointer returns an Optional holding *p, or an empty Optional if p is nil.
func OfPointer[T any](p *T) Optional[T] {
	if p == nil {
		return Empty[T]()
	}
	return Of(*p)
}

// IsPresent reports whether the Optional holds a value.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// IsEmpty reports whether the Optional is empty.
func (o Optional[T]) IsEmpty() bool {
	return !o.present
}

// Get returns the held value and true, or the zero value and false.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// MustGet returns the held value. It panics if the Optional is empty.
func (o Optional[T]) MustGet() T {
	if !o.present {
		panic("optional: MustGet called on empty Optional")
	}
	return o.value
}

// OrElse returns the held value, or def if empty.
func (o Optional[T]) OrElse(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// OrElseGet returns the held value, or the result of s if empty.
// s is not called when a value is present.
func (o Optional[T]) OrElseGet(s functional.Supplier[T]) T {
	if o.present {
		return o.value
	}
	return s()
}

// IfPresent calls c with the held value, if any.
func (o Optional[T]) IfPresent(c functional.Consumer[T]) {
	if o.present {
		c(o.value)
	}
}

// Filter returns o if it holds a value matching p, otherwise an empty Optional.
func (o Optional[T]) Filter(p functional.Predicate[T]) Optional[T] {
	if o.present && p(o.value) {
		return o
	}
	return Empty[T]()
}

// String renders the Optional as "Optional[v]" or "Optional.empty".
func (o Optional[T]) String() string {
	if !o.present {
		return "Optional.empty"
	}
	return fmt.Sprintf("Optional[%v]", o.value)
}

// Map applies f to the held value, if any. An empty Optional stays empty and
// f is not called.
func Map[T, R any](o Optional[T], f functional.Function[T, R]) Optional[R] {
	if !o.present {
		return Empty[R]()
	}
	return Of(f(o.value))
}

// FlatMap applies f to the held value, if any, and returns its Optional as is.
func FlatMap[T, R any](o Optional[T], f func(T) Optional[R]) Optional[R] {
	if !o.present {
		return Empty[R]()
	}
	return f(o.value)
}
