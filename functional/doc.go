// Package functional defines named generic function types for behavior
// injection: suppliers, predicates, functions and consumers.
//
// Each type is a plain func type, so a literal or a method value converts
// to it directly and the result can be passed anywhere the bare func type
// is expected (for example to pipeline.Run).
//
//	positive := functional.Predicate[int](func(n int) bool { return n > 0 })
//	even := functional.Predicate[int](func(n int) bool { return n%2 == 0 })
//	pipeline.Run(values, positive.And(even), double, print)
//
// Composition that changes the type parameter (Function chaining) is
// expressed with the free functions AndThen and Compose, since Go methods
// cannot introduce type parameters.
package functional
