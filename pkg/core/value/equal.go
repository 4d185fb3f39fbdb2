package value

import (
	"bytes"
	"math"
	"slices"
)

// Equal reports whether a and b have the same kind and the same content.
// Floats compare by bit pattern, so a NaN equals a NaN with the same sign and
// payload and 0 differs from -0.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case Float32:
		return math.Float32bits(float32(a)) == math.Float32bits(float32(b.(Float32)))
	case Float64:
		return sameFloat(float64(a), float64(b.(Float64)))
	case LongDouble:
		return a.Equal(b.(LongDouble))
	case VectorBool:
		return slices.Equal(a, b.(VectorBool))
	case VectorInt32:
		return slices.Equal(a, b.(VectorInt32))
	case VectorInt64:
		return slices.Equal(a, b.(VectorInt64))
	case VectorFloat64:
		return slices.EqualFunc(a, b.(VectorFloat64), sameFloat)
	case VectorLongDouble:
		return slices.EqualFunc(a, b.(VectorLongDouble), LongDouble.Equal)
	case VectorString:
		return slices.Equal(a, b.(VectorString))
	case Object:
		return bytes.Equal(a.data, b.(Object).data)
	default:
		return a == b
	}
}

func sameFloat(x, y float64) bool {
	return math.Float64bits(x) == math.Float64bits(y)
}
