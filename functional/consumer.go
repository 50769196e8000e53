package functional

// Consumer accepts a value for its side effect.
type Consumer[T any] func(T)

// Accept invokes the consumer.
func (c Consumer[T]) Accept(v T) {
	c(v)
}

// AndThen returns a consumer that calls c, then next, with the same value.
func (c Consumer[T]) AndThen(next Consumer[T]) Consumer[T] {
	return func(v T) {
		c(v)
		next(v)
	}
}

// Discard returns a consumer that ignores its input.
func Discard[T any]() Consumer[T] {
	return func(T) {}
}

// Collect returns a consumer that appends every value to *dst.
func Collect[T any](dst *[]T) Consumer[T] {
	return func(v T) {
		*dst = append(*dst, v)
	}
}
