// Package value implements the closed set of attribute value kinds that graphkit
// can carry on graphs, vertices and edges, and their GraphML string codec.
//
// # Kinds
//
// Every attribute value is a [Value]: a sealed interface implemented by one
// concrete type per [Kind]. The set is closed; a type switch over the variants
// in this package is exhaustive:
//
//	Bool, Int8, Int32, Int64                     integral scalars
//	Float32, Float64, LongDouble                 floating point scalars
//	VectorBool, VectorInt32, VectorInt64,        vectors
//	VectorFloat64, VectorLongDouble, VectorString
//	String                                       text
//	Object                                       opaque host payload (BSON)
//
// # Type Names
//
// The registry maps each kind to the attr.type name used in GraphML <key>
// declarations. Each name decodes to exactly one canonical kind. Two kinds are
// written under a wider name and come back widened without loss:
//
//	Int8    -> "int"   -> Int32
//	Float32 -> "float" -> Float64
//
// # Encoding
//
// [Encode] is total. Booleans are written as 0/1, integers in decimal, and
// floating point values in hexadecimal (0x1.8p+01) so that [Decode] restores
// the exact bit pattern. Vectors join element encodings with ", ".
//
//	s := value.Encode(value.Float64(0.1))  // "0x1.999999999999ap-04"
//	v, err := value.Decode("float", s)     // value.Float64(0.1)
//
// [DecodeAttr] is the variant used by graph builders: its errors carry the
// attribute name and are coded with errors.ErrCodeUnknownType or
// errors.ErrCodeInvalidValue.
package value
