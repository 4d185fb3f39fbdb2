package value

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// LongDoublePrec is the mantissa precision of [LongDouble], matching the
// x87 80-bit extended format.
const LongDoublePrec = 64

// ldFracBits is the width of the x87 fraction field below the explicit
// integer bit.
const ldFracBits = 63

// LongDouble is an extended-precision float with a 64-bit mantissa.
// The zero value is 0. A LongDouble is immutable; accessors return copies.
//
// NaNs keep their sign and the 63-bit fraction field of the x87 format, so
// a NaN converted from a float64 converts back to the same bits.
type LongDouble struct {
	f *big.Float

	nan     bool
	neg     bool
	payload uint64 // NaN fraction, nonzero
}

// NewLongDouble returns the extended-precision value of f.
func NewLongDouble(f float64) LongDouble {
	if math.IsNaN(f) {
		bits := math.Float64bits(f)
		return LongDouble{
			nan:     true,
			neg:     bits>>63 != 0,
			payload: (bits & (1<<52 - 1)) << (ldFracBits - 52),
		}
	}
	return LongDouble{f: newBig().SetFloat64(f)}
}

// defaultNaN is the LongDouble decoded from a bare "nan" token.
var defaultNaN = NewLongDouble(math.NaN())

// LongDoubleFromBig rounds x to [LongDoublePrec] bits (nearest even).
func LongDoubleFromBig(x *big.Float) LongDouble {
	if x == nil {
		return LongDouble{}
	}
	return LongDouble{f: newBig().Set(x)}
}

// IsNaN reports whether d is a NaN.
func (d LongDouble) IsNaN() bool { return d.nan }

// Big returns a copy of the value as a *big.Float, or nil for a NaN, which
// big.Float cannot represent.
func (d LongDouble) Big() *big.Float {
	if d.nan {
		return nil
	}
	if d.f == nil {
		return newBig()
	}
	return newBig().Set(d.f)
}

// Float64 returns the nearest float64 and the rounding accuracy. A NaN keeps
// its sign and the high 52 bits of its payload.
func (d LongDouble) Float64() (float64, big.Accuracy) {
	if d.nan {
		frac := d.payload >> (ldFracBits - 52)
		if frac == 0 {
			frac = 1 << 51
		}
		bits := uint64(0x7ff)<<52 | frac
		if d.neg {
			bits |= 1 << 63
		}
		acc := big.Exact
		if frac<<(ldFracBits-52) != d.payload {
			acc = big.Below
		}
		return math.Float64frombits(bits), acc
	}
	if d.f == nil {
		return 0, big.Exact
	}
	return d.f.Float64()
}

// Equal reports whether d and o hold the same value, including the sign of
// zero. NaNs are equal when sign and payload match.
func (d LongDouble) Equal(o LongDouble) bool {
	if d.nan || o.nan {
		return d.nan == o.nan && d.neg == o.neg && d.payload == o.payload
	}
	a, b := d.Big(), o.Big()
	return a.Cmp(b) == 0 && a.Signbit() == b.Signbit()
}

// String formats the value with 21 significant digits, enough to
// distinguish every 64-bit mantissa.
func (d LongDouble) String() string {
	if d.nan {
		return formatLongDouble(d)
	}
	return d.Big().Text('g', 21)
}

func newBig() *big.Float {
	return new(big.Float).SetPrec(LongDoublePrec).SetMode(big.ToNearestEven)
}

func formatLongDouble(d LongDouble) string {
	if d.nan {
		return formatNaN(d.neg, d.payload, d.neg == defaultNaN.neg && d.payload == defaultNaN.payload)
	}
	x := d.Big()
	if x.IsInf() {
		if x.Signbit() {
			return "-inf"
		}
		return "inf"
	}
	return x.Text('x', -1)
}

func parseLongDouble(s string) (LongDouble, error) {
	if neg, payload, ok, err := parseNaN(s, ldFracBits); ok || err != nil {
		if err != nil {
			return LongDouble{}, err
		}
		if payload == 0 {
			return LongDouble{nan: true, neg: neg, payload: defaultNaN.payload}, nil
		}
		return LongDouble{nan: true, neg: neg, payload: payload}, nil
	}
	x, _, err := newBig().Parse(s, 0)
	if err != nil {
		return LongDouble{}, err
	}
	return LongDouble{f: x}, nil
}

// formatNaN writes a NaN as "nan(0x<fraction>)", signed with "-" when the
// sign bit is set. The default quiet NaN is written as a bare "nan".
func formatNaN(neg bool, frac uint64, isDefault bool) string {
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("nan")
	if !isDefault {
		fmt.Fprintf(&b, "(0x%x)", frac)
	}
	return b.String()
}

// parseNaN recognizes "nan", "-nan", "+nan" and their "(0x<fraction>)"
// forms, case-insensitively. ok is false when s is not a NaN token at all.
// A bare "nan" returns a zero fraction; the caller picks its default.
func parseNaN(s string, fracBits uint) (neg bool, frac uint64, ok bool, err error) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(t, "-"):
		neg, t = true, t[1:]
	case strings.HasPrefix(t, "+"):
		t = t[1:]
	}
	if !strings.HasPrefix(t, "nan") {
		return false, 0, false, nil
	}
	rest := t[3:]
	if rest == "" {
		return neg, 0, true, nil
	}
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return false, 0, true, fmt.Errorf("malformed NaN %q", s)
	}
	frac, err = strconv.ParseUint(rest[1:len(rest)-1], 0, 64)
	if err != nil {
		return false, 0, true, fmt.Errorf("malformed NaN payload %q", s)
	}
	if frac == 0 || frac >= 1<<fracBits {
		return false, 0, true, fmt.Errorf("NaN payload out of range in %q", s)
	}
	return neg, frac, true, nil
}
