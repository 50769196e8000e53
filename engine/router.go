package engine

import "github.com/kbukum/funckit/variant"

// TransformObject routes v by kind: ints are squared, text is upper-cased,
// floats are rounded half up to an int and anything else becomes the text
// "Unsupported".
func TransformObject(v variant.Value) variant.Value {
	return variant.Transform(v)
}
