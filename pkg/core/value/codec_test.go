package value

import (
	"errors"
	"math"
	"math/big"
	"strings"
	"testing"

	gkerrors "github.com/matzehuels/graphkit/pkg/errors"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"nil", nil, ""},
		{"true", Bool(true), "1"},
		{"false", Bool(false), "0"},
		{"int8", Int8(-7), "-7"},
		{"int32", Int32(42), "42"},
		{"int64", Int64(math.MinInt64), "-9223372036854775808"},
		{"float64", Float64(1.5), "0x1.8p+00"},
		{"float64 tenth", Float64(0.1), "0x1.999999999999ap-04"},
		{"float32", Float32(0.5), "0x1p-01"},
		{"float64 inf", Float64(math.Inf(1)), "inf"},
		{"float64 -inf", Float64(math.Inf(-1)), "-inf"},
		{"float64 nan", Float64(math.NaN()), "nan"},
		{"float64 nan payload", Float64(math.Float64frombits(0x7ff8000000000abc)), "nan(0x8000000000abc)"},
		{"float64 negative nan", Float64(math.Float64frombits(0xfff8000000000000)), "-nan(0x8000000000000)"},
		{"longdouble nan", NewLongDouble(math.NaN()), "nan"},
		{"longdouble nan payload", NewLongDouble(math.Float64frombits(0xfff0000000000001)), "-nan(0x800)"},
		{"longdouble inf", LongDoubleFromBig(new(big.Float).SetInf(true)), "-inf"},
		{"vector int", VectorInt32{1, 2, 3}, "1, 2, 3"},
		{"vector bool", VectorBool{true, false}, "1, 0"},
		{"vector float", VectorFloat64{1.5, 2}, "0x1.8p+00, 0x1p+01"},
		{"vector empty", VectorInt64{}, ""},
		{"vector string", VectorString{"a,b", `c\d`, ""}, `a\,b, c\\d, `},
		{"string", String("a < b"), "a < b"},
		{"object empty", Object{}, ""},
		{"object", ObjectFromBytes([]byte("hi")), "aGk="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.in); got != tt.want {
				t.Errorf("Encode(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		typ   string
		token string
		want  Value
	}{
		{TypeBool, "1", Bool(true)},
		{TypeBool, "0", Bool(false)},
		{TypeBool, " 2 ", Bool(true)},
		{TypeBool, "false", Bool(false)},
		{TypeInt, "-12", Int32(-12)},
		{TypeLong, "9223372036854775807", Int64(math.MaxInt64)},
		{TypeFloat, "0x1.8p+00", Float64(1.5)},
		{TypeFloat, "0x1.8p+1", Float64(3)},
		{TypeFloat, "inf", Float64(math.Inf(1))},
		{TypeFloat, "nan", Float64(math.NaN())},
		{TypeFloat, "-NaN(0x1)", Float64(math.Float64frombits(0xfff0000000000001))},
		{TypeDouble, "nan", NewLongDouble(math.NaN())},
		{TypeVectorFloat, "nan(0x8000000000abc), 1", VectorFloat64{math.Float64frombits(0x7ff8000000000abc), 1}},
		{TypeDouble, "0x1.8p+00", NewLongDouble(1.5)},
		{TypeVectorInt, "1, 2,3", VectorInt32{1, 2, 3}},
		{TypeVectorLong, "", VectorInt64{}},
		{TypeVectorBool, "1, 0, 1", VectorBool{true, false, true}},
		{TypeVectorFloat, "0x1p+00, -0x1p-01", VectorFloat64{1, -0.5}},
		{TypeVectorDouble, "0x1p+00", VectorLongDouble{NewLongDouble(1)}},
		{TypeVectorString, `a\,b, c\\d, `, VectorString{"a,b", `c\d`, ""}},
		{TypeString, "  padded  ", String("  padded  ")},
		{TypeObject, "aGk=", ObjectFromBytes([]byte("hi"))},
	}

	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.token, func(t *testing.T) {
			got, err := Decode(tt.typ, tt.token)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("Decode(%q, %q) = %#v, want %#v", tt.typ, tt.token, got, tt.want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		token   string
		wantErr error
	}{
		{"unknown type", "not_a_type", "1", ErrUnknownType},
		{"empty type", "", "1", ErrUnknownType},
		{"bool as character", TypeBool, "x", ErrSyntax},
		{"int overflow", TypeInt, "2147483648", ErrSyntax},
		{"int not decimal", TypeInt, "0x10", ErrSyntax},
		{"float garbage", TypeFloat, "not-a-float", ErrSyntax},
		{"float bad hex", TypeFloat, "0xZZp+1", ErrSyntax},
		{"double garbage", TypeDouble, "0x1.8q+3", ErrSyntax},
		{"nan zero payload", TypeFloat, "nan(0x0)", ErrSyntax},
		{"nan payload too wide", TypeFloat, "nan(0x10000000000000)", ErrSyntax},
		{"nan unclosed", TypeDouble, "nan(0x1", ErrSyntax},
		{"nan suffix", TypeFloat, "nanx", ErrSyntax},
		{"vector element", TypeVectorInt, "1, two, 3", ErrSyntax},
		{"object not base64", TypeObject, "***", ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode(tt.typ, tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Decode(%q, %q) error = %v, want %v", tt.typ, tt.token, err, tt.wantErr)
			}
			if v != nil {
				t.Errorf("Decode returned value %v alongside error", v)
			}
		})
	}
}

func TestDecodeAttr(t *testing.T) {
	_, err := DecodeAttr("weight", "not_a_type", "1")
	if !gkerrors.Is(err, gkerrors.ErrCodeUnknownType) {
		t.Fatalf("code = %v, want %v", gkerrors.GetCode(err), gkerrors.ErrCodeUnknownType)
	}
	for _, want := range []string{"not_a_type", "weight"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}

	_, err = DecodeAttr("weight", TypeFloat, "abc")
	if !gkerrors.Is(err, gkerrors.ErrCodeInvalidValue) {
		t.Fatalf("code = %v, want %v", gkerrors.GetCode(err), gkerrors.ErrCodeInvalidValue)
	}
	want := `invalid value "abc" for key "weight" of type "float"`
	if gkerrors.UserMessage(err) != want {
		t.Errorf("message = %q, want %q", gkerrors.UserMessage(err), want)
	}
}

func TestFloatRoundTripBitExact(t *testing.T) {
	values := []float64{
		0, math.Copysign(0, -1), 1, -1, 0.1, 1.0 / 3, math.Pi, math.E,
		math.MaxFloat64, -math.MaxFloat64,
		math.SmallestNonzeroFloat64, 2.2250738585072014e-308, // smallest normal
		math.Float64frombits(0x000fffffffffffff), // largest subnormal
		math.Inf(1), math.Inf(-1), math.NaN(),
		math.Float64frombits(0x7ff8000000000abc), // quiet NaN with payload
		math.Float64frombits(0xfff8000000000000), // negative quiet NaN
		math.Float64frombits(0x7ff0000000000001), // signaling NaN
		123456789.123456789, 1e-300, 6.02214076e23,
	}

	for _, f := range values {
		s := Encode(Float64(f))
		got, err := Decode(TypeFloat, s)
		if err != nil {
			t.Fatalf("Decode(%q): %v", s, err)
		}
		g := float64(got.(Float64))
		if math.Float64bits(g) != math.Float64bits(f) {
			t.Errorf("%q: bits %#x, want %#x", s, math.Float64bits(g), math.Float64bits(f))
		}
	}
}

func TestFloat32WidensExactly(t *testing.T) {
	for _, f := range []float32{0.1, 1.0 / 3, math.MaxFloat32, math.SmallestNonzeroFloat32} {
		got, err := Decode(TypeOf(Float32(f)), Encode(Float32(f)))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if float64(got.(Float64)) != float64(f) {
			t.Errorf("float32 %v widened to %v", f, got)
		}
	}
}

func TestLongDoubleRoundTrip(t *testing.T) {
	third := new(big.Float).SetPrec(LongDoublePrec).Quo(big.NewFloat(1), big.NewFloat(3))
	tiny, _, _ := new(big.Float).SetPrec(LongDoublePrec).Parse("0x1p-16445", 0)

	values := []LongDouble{
		{},
		NewLongDouble(math.Copysign(0, -1)),
		NewLongDouble(1.5),
		NewLongDouble(-math.MaxFloat64),
		LongDoubleFromBig(third),
		LongDoubleFromBig(tiny),
		LongDoubleFromBig(new(big.Float).SetInf(false)),
		NewLongDouble(math.NaN()),
		NewLongDouble(math.Float64frombits(0xfff8000000000abc)),
	}

	for _, d := range values {
		s := Encode(d)
		got, err := Decode(TypeDouble, s)
		if err != nil {
			t.Fatalf("Decode(%q): %v", s, err)
		}
		if !d.Equal(got.(LongDouble)) {
			t.Errorf("%q: got %v, want %v", s, got, d)
		}
	}

	if third.MinPrec() <= 53 {
		t.Fatalf("1/3 should need the full extended mantissa, MinPrec = %d", third.MinPrec())
	}
	back, _ := Decode(TypeDouble, Encode(LongDoubleFromBig(third)))
	if f, acc := back.(LongDouble).Float64(); acc == big.Exact || f != 1.0/3 {
		t.Errorf("extended 1/3 collapsed to float64: %v %v", f, acc)
	}
}

func TestVectorStringRoundTrip(t *testing.T) {
	values := []VectorString{
		{"plain"},
		{"a", "b"},
		{" leading", "trailing ", " both "},
		{`back\slash`, "com,ma", `\,`, ","},
		{"", "", "x"},
	}

	for _, v := range values {
		got, err := Decode(TypeVectorString, Encode(v))
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !Equal(got, v) {
			t.Errorf("round trip %q -> %q -> %q", []string(v), Encode(v), []string(got.(VectorString)))
		}
	}
}

func TestObject(t *testing.T) {
	type point struct {
		X, Y int
	}
	obj, err := NewObject(point{X: 3, Y: 4})
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}

	got, err := Decode(TypeObject, Encode(obj))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var p point
	if err := got.(Object).Decode(&p); err != nil {
		t.Fatalf("Object.Decode: %v", err)
	}
	if p != (point{X: 3, Y: 4}) {
		t.Errorf("decoded %+v", p)
	}

	if err := ObjectFromBytes([]byte("opaque")).Decode(&p); err == nil {
		t.Error("decoding a non-BSON payload should fail")
	}
}

func TestRegistry(t *testing.T) {
	for _, k := range Kinds() {
		name := TypeName(k)
		canon, ok := Lookup(name)
		if !ok {
			t.Errorf("kind %v writes unregistered name %q", k, name)
			continue
		}
		if TypeName(canon) != name {
			t.Errorf("name %q decodes to %v which writes %q", name, canon, TypeName(canon))
		}
	}

	if got := len(TypeNames()); got != 13 {
		t.Errorf("TypeNames() has %d names, want 13", got)
	}
	if k, _ := Lookup(TypeInt); k != KindInt32 {
		t.Errorf("int decodes to %v, want int32", k)
	}
	if k, _ := Lookup(TypeFloat); k != KindFloat64 {
		t.Errorf("float decodes to %v, want float64", k)
	}
	if TypeName(Kind(200)) != TypeString {
		t.Error("unknown kinds should fall back to string")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same int", Int32(1), Int32(1), true},
		{"different kind", Int32(1), Int64(1), false},
		{"nan", Float64(math.NaN()), Float64(math.NaN()), true},
		{"nan payloads differ", Float64(math.NaN()), Float64(math.Float64frombits(0x7ff8000000000abc)), false},
		{"nan sign differs", Float64(math.Float64frombits(0x7ff8000000000000)), Float64(math.Float64frombits(0xfff8000000000000)), false},
		{"longdouble nan", NewLongDouble(math.NaN()), NewLongDouble(math.NaN()), true},
		{"longdouble nan vs zero", NewLongDouble(math.NaN()), LongDouble{}, false},
		{"signed zero", Float64(0), Float64(math.Copysign(0, -1)), false},
		{"vectors", VectorFloat64{1, math.NaN()}, VectorFloat64{1, math.NaN()}, true},
		{"vector length", VectorInt32{1}, VectorInt32{1, 2}, false},
		{"nil", nil, nil, true},
		{"nil vs value", nil, String(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLongDoubleNaNToFloat64(t *testing.T) {
	for _, bits := range []uint64{0x7ff8000000000001, 0x7ff8000000000abc, 0xfff0000000000001} {
		f, acc := NewLongDouble(math.Float64frombits(bits)).Float64()
		if got := math.Float64bits(f); got != bits || acc != big.Exact {
			t.Errorf("%#x: Float64 = %#x (%v), want the same bits exactly", bits, got, acc)
		}
	}
	if NewLongDouble(math.NaN()).Big() != nil {
		t.Error("Big of a NaN should be nil")
	}
}
