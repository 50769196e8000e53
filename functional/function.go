package functional

// Function maps one input value to one output value.
type Function[T, R any] func(T) R

// Apply invokes the function.
func (f Function[T, R]) Apply(v T) R {
	return f(v)
}

// BiFunction maps two input values to one output value.
type BiFunction[A, B, R any] func(A, B) R

// Apply invokes the function.
func (f BiFunction[A, B, R]) Apply(a A, b B) R {
	return f(a, b)
}

// AndThen returns a function that applies f, then g to its result.
func AndThen[A, B, C any](f Function[A, B], g Function[B, C]) Function[A, C] {
	return func(a A) C {
		return g(f(a))
	}
}

// Compose returns a function that applies f, then g to its result.
// It is AndThen with the arguments in mathematical (g ∘ f) order.
func Compose[A, B, C any](g Function[B, C], f Function[A, B]) Function[A, C] {
	return AndThen(f, g)
}

// Identity returns a function that returns its input unchanged.
func Identity[T any]() Function[T, T] {
	return func(v T) T { return v }
}
