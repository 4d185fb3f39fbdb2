package value

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	gkerrors "github.com/matzehuels/graphkit/pkg/errors"
)

var (
	// ErrUnknownType is returned by [Decode] for an attr.type name that is not
	// in the registry.
	ErrUnknownType = errors.New("unrecognized attribute type")

	// ErrSyntax is returned by [Decode] when a token does not match the grammar
	// of its declared type.
	ErrSyntax = errors.New("invalid value syntax")
)

// vectorSep joins vector elements. Decoding splits on the comma and drops
// one following space.
const vectorSep = ", "

// Encode returns the GraphML text for v. Encode is total: every kind has a
// defined representation. A nil Value encodes as "".
func Encode(v Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case Bool:
		if v {
			return "1"
		}
		return "0"
	case Int8:
		return strconv.FormatInt(int64(v), 10)
	case Int32:
		return strconv.FormatInt(int64(v), 10)
	case Int64:
		return strconv.FormatInt(int64(v), 10)
	case Float32:
		return formatFloat(float64(v), 32)
	case Float64:
		return formatFloat(float64(v), 64)
	case LongDouble:
		return formatLongDouble(v)
	case VectorBool:
		return joinVector(v, func(b bool) string { return Encode(Bool(b)) })
	case VectorInt32:
		return joinVector(v, func(i int32) string { return strconv.FormatInt(int64(i), 10) })
	case VectorInt64:
		return joinVector(v, func(i int64) string { return strconv.FormatInt(i, 10) })
	case VectorFloat64:
		return joinVector(v, func(f float64) string { return formatFloat(f, 64) })
	case VectorLongDouble:
		return joinVector(v, formatLongDouble)
	case VectorString:
		return joinVector(v, escapeElement)
	case String:
		return string(v)
	case Object:
		if len(v.data) == 0 {
			return ""
		}
		return base64.StdEncoding.EncodeToString(v.data)
	default:
		panic(fmt.Sprintf("value: unhandled kind %v", v.Kind()))
	}
}

// Decode parses token as a value of the named attr.type. It returns an error
// wrapping [ErrUnknownType] if typeName is not registered, or [ErrSyntax] if
// the token does not match the type's grammar. Decode never substitutes a
// default for a malformed token.
func Decode(typeName, token string) (Value, error) {
	k, ok := Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, typeName)
	}
	v, err := decodeKind(k, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return v, nil
}

// DecodeAttr is [Decode] with errors attributed to the named attribute.
// Errors are *errors.Error values coded ErrCodeUnknownType or ErrCodeInvalidValue.
func DecodeAttr(name, typeName, token string) (Value, error) {
	k, ok := Lookup(typeName)
	if !ok {
		return nil, gkerrors.New(gkerrors.ErrCodeUnknownType,
			"unrecognized type %q for key %q", typeName, name)
	}
	v, err := decodeKind(k, token)
	if err != nil {
		return nil, gkerrors.Wrap(gkerrors.ErrCodeInvalidValue, err,
			"invalid value %q for key %q of type %q", token, name, typeName)
	}
	return v, nil
}

func decodeKind(k Kind, token string) (Value, error) {
	switch k {
	case KindBool:
		b, err := parseBool(token)
		return Bool(b), err
	case KindInt8:
		i, err := strconv.ParseInt(strings.TrimSpace(token), 10, 8)
		return Int8(i), err
	case KindInt32:
		i, err := strconv.ParseInt(strings.TrimSpace(token), 10, 32)
		return Int32(i), err
	case KindInt64:
		i, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
		return Int64(i), err
	case KindFloat32:
		f, err := parseFloat(token, 32)
		return Float32(f), err
	case KindFloat64:
		f, err := parseFloat(token, 64)
		return Float64(f), err
	case KindLongDouble:
		return parseLongDouble(strings.TrimSpace(token))
	case KindVectorBool:
		v, err := splitVector(token, parseBool)
		return VectorBool(v), err
	case KindVectorInt32:
		v, err := splitVector(token, func(s string) (int32, error) {
			i, err := strconv.ParseInt(s, 10, 32)
			return int32(i), err
		})
		return VectorInt32(v), err
	case KindVectorInt64:
		v, err := splitVector(token, func(s string) (int64, error) {
			return strconv.ParseInt(s, 10, 64)
		})
		return VectorInt64(v), err
	case KindVectorFloat64:
		v, err := splitVector(token, func(s string) (float64, error) {
			return parseFloat(s, 64)
		})
		return VectorFloat64(v), err
	case KindVectorLongDouble:
		v, err := splitVector(token, parseLongDouble)
		return VectorLongDouble(v), err
	case KindVectorString:
		return VectorString(splitStrings(token)), nil
	case KindString:
		return String(token), nil
	case KindObject:
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
		return Object{data: data}, err
	default:
		return nil, fmt.Errorf("kind %v", k)
	}
}

// parseBool reads the integral boolean representation: a decimal integer where
// nonzero is true. "true" and "false" are accepted as well.
func parseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return false, err
	}
	return i != 0, nil
}

// formatFloat writes f in hexadecimal. A NaN keeps its sign and the fraction
// field of its float64 bits; Float32 values are widened before formatting.
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		bits := math.Float64bits(f)
		return formatNaN(bits>>63 != 0, bits&(1<<52-1), bits == math.Float64bits(math.NaN()))
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'x', -1, bitSize)
}

func parseFloat(s string, bitSize int) (float64, error) {
	neg, frac, ok, err := parseNaN(s, 52)
	if err != nil {
		return 0, err
	}
	if !ok {
		return strconv.ParseFloat(strings.TrimSpace(s), bitSize)
	}
	bits := math.Float64bits(math.NaN())
	if frac != 0 {
		bits = uint64(0x7ff)<<52 | frac
	}
	if neg {
		bits |= 1 << 63
	}
	return math.Float64frombits(bits), nil
}

func joinVector[T any](v []T, enc func(T) string) string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = enc(e)
	}
	return strings.Join(parts, vectorSep)
}

func splitVector[T any](s string, parse func(string) (T, error)) ([]T, error) {
	if strings.TrimSpace(s) == "" {
		return []T{}, nil
	}
	fields := strings.Split(s, ",")
	out := make([]T, len(fields))
	for i, f := range fields {
		v, err := parse(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func escapeElement(s string) string {
	if !strings.ContainsAny(s, `\,`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r == '\\' || r == ',' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// splitStrings reverses joinVector(escapeElement). Backslash escapes the next
// byte; an unescaped comma ends an element and one following space is skipped.
func splitStrings(s string) []string {
	if s == "" {
		return []string{}
	}
	var (
		out []string
		cur strings.Builder
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case c == ',':
			out = append(out, cur.String())
			cur.Reset()
			if i+1 < len(s) && s[i+1] == ' ' {
				i++
			}
		default:
			cur.WriteByte(c)
		}
	}
	return append(out, cur.String())
}
