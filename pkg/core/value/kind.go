package value

// Kind identifies the variant of a [Value].
// Kinds are listed in registry order; the order is part of the format contract
// because it fixes which kind a shared type name decodes to.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt8
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindLongDouble
	KindVectorBool
	KindVectorInt32
	KindVectorInt64
	KindVectorFloat64
	KindVectorLongDouble
	KindVectorString
	KindString
	KindObject

	numKinds
)

// GraphML attr.type names.
const (
	TypeBool         = "boolean"
	TypeInt          = "int"
	TypeLong         = "long"
	TypeFloat        = "float"
	TypeDouble       = "double"
	TypeVectorBool   = "vector_boolean"
	TypeVectorInt    = "vector_int"
	TypeVectorLong   = "vector_long"
	TypeVectorFloat  = "vector_float"
	TypeVectorDouble = "vector_double"
	TypeVectorString = "vector_string"
	TypeString       = "string"
	TypeObject       = "python_object"
)

// typeNames is the registry: one entry per kind, indexed by Kind.
var typeNames = [numKinds]string{
	KindBool:             TypeBool,
	KindInt8:             TypeInt,
	KindInt32:            TypeInt,
	KindInt64:            TypeLong,
	KindFloat32:          TypeFloat,
	KindFloat64:          TypeFloat,
	KindLongDouble:       TypeDouble,
	KindVectorBool:       TypeVectorBool,
	KindVectorInt32:      TypeVectorInt,
	KindVectorInt64:      TypeVectorLong,
	KindVectorFloat64:    TypeVectorFloat,
	KindVectorLongDouble: TypeVectorDouble,
	KindVectorString:     TypeVectorString,
	KindString:           TypeString,
	KindObject:           TypeObject,
}

// canonical maps each type name to the kind it decodes to.
var canonical = map[string]Kind{
	TypeBool:         KindBool,
	TypeInt:          KindInt32,
	TypeLong:         KindInt64,
	TypeFloat:        KindFloat64,
	TypeDouble:       KindLongDouble,
	TypeVectorBool:   KindVectorBool,
	TypeVectorInt:    KindVectorInt32,
	TypeVectorLong:   KindVectorInt64,
	TypeVectorFloat:  KindVectorFloat64,
	TypeVectorDouble: KindVectorLongDouble,
	TypeVectorString: KindVectorString,
	TypeString:       KindString,
	TypeObject:       KindObject,
}

var kindNames = [numKinds]string{
	KindBool:             "bool",
	KindInt8:             "int8",
	KindInt32:            "int32",
	KindInt64:            "int64",
	KindFloat32:          "float32",
	KindFloat64:          "float64",
	KindLongDouble:       "longdouble",
	KindVectorBool:       "vector<bool>",
	KindVectorInt32:      "vector<int32>",
	KindVectorInt64:      "vector<int64>",
	KindVectorFloat64:    "vector<float64>",
	KindVectorLongDouble: "vector<longdouble>",
	KindVectorString:     "vector<string>",
	KindString:           "string",
	KindObject:           "object",
}

// String returns a short Go-oriented name for the kind (e.g. "int32").
func (k Kind) String() string {
	if k >= numKinds {
		return "invalid"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the registered kinds.
func (k Kind) Valid() bool { return k < numKinds }

// TypeName returns the GraphML attr.type name written for kind k.
// Unknown kinds map to "string", mirroring the fallback of GraphML writers
// that cannot classify a value.
func TypeName(k Kind) string {
	if k >= numKinds {
		return TypeString
	}
	return typeNames[k]
}

// TypeOf returns the attr.type name for v.
func TypeOf(v Value) string { return TypeName(v.Kind()) }

// Lookup returns the canonical kind decoded for an attr.type name.
func Lookup(typeName string) (Kind, bool) {
	k, ok := canonical[typeName]
	return k, ok
}

// Kinds returns all registered kinds in registry order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// TypeNames returns the distinct attr.type names in registry order.
func TypeNames() []string {
	out := make([]string, 0, len(canonical))
	seen := make(map[string]bool, len(canonical))
	for _, name := range typeNames {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
