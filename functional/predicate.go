package functional

// Predicate is a boolean-valued test over one input.
type Predicate[T any] func(T) bool

// Test evaluates the predicate.
func (p Predicate[T]) Test(v T) bool {
	return p(v)
}

// And returns a predicate true when both p and other hold.
// other is not evaluated when p is false.
func (p Predicate[T]) And(other Predicate[T]) Predicate[T] {
	return func(v T) bool {
		return p(v) && other(v)
	}
}

// Or returns a predicate true when either p or other holds.
// other is not evaluated when p is true.
func (p Predicate[T]) Or(other Predicate[T]) Predicate[T] {
	return func(v T) bool {
		return p(v) || other(v)
	}
}

// Negate returns the logical negation of p.
func (p Predicate[T]) Negate() Predicate[T] {
	return func(v T) bool {
		return !p(v)
	}
}

// Not returns the logical negation of p.
func Not[T any](p Predicate[T]) Predicate[T] {
	return p.Negate()
}

// IsEqual returns a predicate matching values equal to target.
func IsEqual[T comparable](target T) Predicate[T] {
	return func(v T) bool {
		return v == target
	}
}

// Always returns a predicate that accepts every value.
func Always[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// Never returns a predicate that rejects every value.
func Never[T any]() Predicate[T] {
	return func(T) bool { return false }
}
