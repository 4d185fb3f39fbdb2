package value

// Value is an attribute value tagged with exactly one [Kind].
// The concrete types in this package are the only implementations.
type Value interface {
	Kind() Kind
	isValue()
}

type (
	// Bool is a boolean, written as 0 or 1.
	Bool bool
	// Int8 is an 8-bit signed integer. It is written as "int".
	Int8 int8
	// Int32 is a 32-bit signed integer.
	Int32 int32
	// Int64 is a 64-bit signed integer.
	Int64 int64
	// Float32 is a single-precision float. It is written as "float".
	Float32 float32
	// Float64 is a double-precision float.
	Float64 float64
	// String is a text value, written verbatim.
	String string

	// VectorBool is a vector of booleans.
	VectorBool []bool
	// VectorInt32 is a vector of 32-bit integers.
	VectorInt32 []int32
	// VectorInt64 is a vector of 64-bit integers.
	VectorInt64 []int64
	// VectorFloat64 is a vector of double-precision floats.
	VectorFloat64 []float64
	// VectorLongDouble is a vector of extended-precision floats.
	VectorLongDouble []LongDouble
	// VectorString is a vector of strings.
	VectorString []string
)

func (Bool) Kind() Kind             { return KindBool }
func (Int8) Kind() Kind             { return KindInt8 }
func (Int32) Kind() Kind            { return KindInt32 }
func (Int64) Kind() Kind            { return KindInt64 }
func (Float32) Kind() Kind          { return KindFloat32 }
func (Float64) Kind() Kind          { return KindFloat64 }
func (LongDouble) Kind() Kind       { return KindLongDouble }
func (VectorBool) Kind() Kind       { return KindVectorBool }
func (VectorInt32) Kind() Kind      { return KindVectorInt32 }
func (VectorInt64) Kind() Kind      { return KindVectorInt64 }
func (VectorFloat64) Kind() Kind    { return KindVectorFloat64 }
func (VectorLongDouble) Kind() Kind { return KindVectorLongDouble }
func (VectorString) Kind() Kind     { return KindVectorString }
func (String) Kind() Kind           { return KindString }
func (Object) Kind() Kind           { return KindObject }

func (Bool) isValue()             {}
func (Int8) isValue()             {}
func (Int32) isValue()            {}
func (Int64) isValue()            {}
func (Float32) isValue()          {}
func (Float64) isValue()          {}
func (LongDouble) isValue()       {}
func (VectorBool) isValue()       {}
func (VectorInt32) isValue()      {}
func (VectorInt64) isValue()      {}
func (VectorFloat64) isValue()    {}
func (VectorLongDouble) isValue() {}
func (VectorString) isValue()     {}
func (String) isValue()           {}
func (Object) isValue()           {}
