// File: decimal.go
// Title: Fixed Width Decimal Values
// Description: Implements Decimal, an exact decimal number stored as an
//              unsigned 64 bit magnitude and a base 10 exponent. Parsing and
//              arithmetic never fail with an error; invalid results are
//              carried as NaN or Infinity states inside the value.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core decimal operations
// - 2026-10-19 v0.2.0: Replaced big.Rat storage by magnitude/exponent pairs with
//                       NaN and Infinity states

package mathx

import (
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/msto63/viscocorrect/foundation/core/errors"
)

// DefaultFloatPrecision is the number of significant digits used when a
// float64 is converted to a Decimal.
const DefaultFloatPrecision = 17

// State tells whether a Decimal holds a number
type State uint8

const (
	// Valid marks a finite number
	Valid State = iota
	// NaN marks a value produced from malformed input
	NaN
	// Infinity marks a value that left the representable range
	Infinity
)

// String returns the name of the state
func (s State) String() string {
	switch s {
	case Valid:
		return "valid"
	case NaN:
		return "nan"
	case Infinity:
		return "infinity"
	default:
		return "unknown"
	}
}

// Decimal is the number (-1)^neg * mag * 10^-exp. The zero value is 0.
// Magnitude and exponent are only meaningful while the state is Valid.
type Decimal struct {
	mag   uint64
	exp   uint32
	neg   bool
	state State
}

// pow10 holds every power of ten that fits in a uint64
var pow10 = [...]uint64{
	1,
	10,
	100,
	1_000,
	10_000,
	100_000,
	1_000_000,
	10_000_000,
	100_000_000,
	1_000_000_000,
	10_000_000_000,
	100_000_000_000,
	1_000_000_000_000,
	10_000_000_000_000,
	100_000_000_000_000,
	1_000_000_000_000_000,
	10_000_000_000_000_000,
	100_000_000_000_000_000,
	1_000_000_000_000_000_000,
	10_000_000_000_000_000_000,
}

// float64Pow10 holds the powers of ten that are exact in a float64
var float64Pow10 = [...]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11,
	1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22,
}

// maxLeadingZeros bounds the zeros String writes after "0." before it
// switches to exponent notation
const maxLeadingZeros = 32

// Zero is the canonical zero
var Zero = Decimal{}

// NewDecimal creates a Decimal from a raw magnitude, exponent and sign
func NewDecimal(mag uint64, exp uint32, neg bool) Decimal {
	return Decimal{mag: mag, exp: exp, neg: neg}.normalize()
}

// NewFromInt creates a Decimal from an integer
func NewFromInt(i int64) Decimal {
	if i < 0 {
		return Decimal{mag: uint64(-(i + 1)) + 1, neg: true}
	}
	return Decimal{mag: uint64(i)}
}

// NaNValue returns a Decimal in the NaN state
func NaNValue() Decimal {
	return Decimal{state: NaN}
}

// Inf returns a Decimal in the Infinity state with the given sign
func Inf(neg bool) Decimal {
	return Decimal{state: Infinity, neg: neg}
}

// Parse converts a decimal string such as "-12.5", ".75" or "1.5e-3".
// Malformed input yields NaN, input that does not fit yields Infinity.
func Parse(s string) Decimal {
	s = strings.TrimSpace(s)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	var sci int64
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		var ok bool
		sci, ok = parseExponent(s[i+1:])
		if !ok {
			return NaNValue()
		}
		s = s[:i]
	}

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return NaNValue()
		}
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return NaNValue()
	}

	intPart = strings.TrimLeft(intPart, "0")
	fracPart = strings.TrimRight(fracPart, "0")
	digits := strings.TrimLeft(intPart+fracPart, "0")
	if digits == "" {
		return Zero
	}

	var mag uint64
	for i := 0; i < len(digits); i++ {
		hi, lo := bits.Mul64(mag, 10)
		sum, carry := bits.Add64(lo, uint64(digits[i]-'0'), 0)
		if hi != 0 || carry != 0 {
			return Inf(neg)
		}
		mag = sum
	}

	// sci is bounded by parseExponent, so this cannot wrap
	exp := int64(len(fracPart)) - sci
	switch {
	case exp > math.MaxUint32:
		return Inf(neg)
	case exp < 0:
		m, ok := mulPow10(mag, uint64(-exp))
		if !ok {
			return Inf(neg)
		}
		return Decimal{mag: m, neg: neg}.normalize()
	}
	return Decimal{mag: mag, exp: uint32(exp), neg: neg}.normalize()
}

// MustParse is like Parse but panics if the result is not Valid
func MustParse(s string) Decimal {
	d := Parse(s)
	if err := d.Err(); err != nil {
		panic(err)
	}
	return d
}

// FromFloat converts f by rendering it with the given number of significant
// digits (DefaultFloatPrecision if omitted) and parsing the result.
func FromFloat(f float64, precision ...int) Decimal {
	switch {
	case math.IsNaN(f):
		return NaNValue()
	case math.IsInf(f, 0):
		return Inf(f < 0)
	}
	prec := DefaultFloatPrecision
	if len(precision) > 0 && precision[0] > 0 {
		prec = precision[0]
	}
	return Parse(strconv.FormatFloat(f, 'g', prec, 64))
}

// Float64 returns the nearest float64. NaN and Infinity map to their
// float counterparts.
func (d Decimal) Float64() float64 {
	switch d.state {
	case NaN:
		return math.NaN()
	case Infinity:
		if d.neg {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	var f float64
	if d.mag <= 1<<53 && int(d.exp) < len(float64Pow10) {
		f = float64(d.mag) / float64Pow10[d.exp]
	} else {
		// out of range exponents saturate to 0 or Inf
		f, _ = strconv.ParseFloat(strconv.FormatUint(d.mag, 10)+"e-"+strconv.FormatUint(uint64(d.exp), 10), 64)
	}
	if d.neg {
		return -f
	}
	return f
}

// Mag returns the unscaled magnitude
func (d Decimal) Mag() uint64 { return d.mag }

// Exp returns the number of decimal places
func (d Decimal) Exp() uint32 { return d.exp }

// IsNeg reports whether the sign bit is set
func (d Decimal) IsNeg() bool { return d.neg }

// State returns the validity state
func (d Decimal) State() State { return d.state }

// IsValid reports whether d holds a finite number
func (d Decimal) IsValid() bool { return d.state == Valid }

// IsNaN reports whether d came from malformed input
func (d Decimal) IsNaN() bool { return d.state == NaN }

// IsInf reports whether d overflowed
func (d Decimal) IsInf() bool { return d.state == Infinity }

// IsZero reports whether d is a valid zero
func (d Decimal) IsZero() bool { return d.state == Valid && d.mag == 0 }

// Err converts the NaN and Infinity states into errors
func (d Decimal) Err() error {
	switch d.state {
	case NaN:
		return errors.DecimalParse(d.String())
	case Infinity:
		return errors.DecimalOverflow(d.String())
	}
	return nil
}

// Neg returns -d
func (d Decimal) Neg() Decimal {
	if d.state == NaN || d.IsZero() {
		return d
	}
	d.neg = !d.neg
	return d
}

// Abs returns |d|
func (d Decimal) Abs() Decimal {
	if d.state == NaN {
		return d
	}
	d.neg = false
	return d
}

// Mul returns d*e. The product is exact while the magnitudes multiply
// without overflow. Otherwise the factor with more decimal places loses
// trailing digits until the product fits; Infinity if neither has any left.
// An exponent sum beyond the uint32 range drops the excess digits from the
// product, flushing to zero when none remain.
func (d Decimal) Mul(e Decimal) Decimal {
	neg := d.neg != e.neg
	if d.state == NaN || e.state == NaN {
		return NaNValue()
	}
	if d.state == Infinity || e.state == Infinity {
		if d.IsZero() || e.IsZero() {
			return NaNValue()
		}
		return Inf(neg)
	}

	a, b := d, e
	for {
		hi, lo := bits.Mul64(a.mag, b.mag)
		if hi == 0 {
			exp := uint64(a.exp) + uint64(b.exp)
			if exp > math.MaxUint32 {
				lo = divPow10(lo, exp-math.MaxUint32)
				exp = math.MaxUint32
			}
			return Decimal{mag: lo, exp: uint32(exp), neg: neg}.normalize()
		}
		switch {
		case a.exp == 0 && b.exp == 0:
			return Inf(neg)
		case a.exp >= b.exp:
			a.mag /= 10
			a.exp--
		default:
			b.mag /= 10
			b.exp--
		}
	}
}

// Div returns d/e. A zero divisor yields Infinity. Quotients that are not
// an exact integer division of the magnitudes are computed in float64 and
// are therefore only as precise as a float64.
func (d Decimal) Div(e Decimal) Decimal {
	neg := d.neg != e.neg
	switch {
	case d.state == NaN || e.state == NaN:
		return NaNValue()
	case d.state == Infinity && e.state == Infinity:
		return NaNValue()
	case e.IsZero():
		return Inf(neg)
	case d.state == Infinity:
		return Inf(neg)
	case e.state == Infinity:
		return Zero
	case d.IsZero():
		return Zero
	}

	if d.exp >= e.exp && d.mag%e.mag == 0 {
		return Decimal{mag: d.mag / e.mag, exp: d.exp - e.exp, neg: neg}.normalize()
	}
	return FromFloat(d.Float64() / e.Float64())
}

// Add returns d+e. Operands are brought to a common exponent first; if the
// operand with fewer places cannot be scaled up far enough, the other one
// loses trailing digits.
func (d Decimal) Add(e Decimal) Decimal {
	switch {
	case d.state == NaN || e.state == NaN:
		return NaNValue()
	case d.state == Infinity && e.state == Infinity:
		if d.neg != e.neg {
			return NaNValue()
		}
		return d
	case d.state == Infinity:
		return d
	case e.state == Infinity:
		return e
	}

	a, b := align(d, e)

	if a.neg == b.neg {
		sum, carry := bits.Add64(a.mag, b.mag, 0)
		if carry != 0 {
			if a.exp == 0 {
				return Inf(a.neg)
			}
			sum = a.mag/10 + b.mag/10 + (a.mag%10+b.mag%10)/10
			return Decimal{mag: sum, exp: a.exp - 1, neg: a.neg}.normalize()
		}
		return Decimal{mag: sum, exp: a.exp, neg: a.neg}.normalize()
	}

	if a.mag >= b.mag {
		return Decimal{mag: a.mag - b.mag, exp: a.exp, neg: a.neg}.normalize()
	}
	return Decimal{mag: b.mag - a.mag, exp: a.exp, neg: b.neg}.normalize()
}

// Sub returns d-e
func (d Decimal) Sub(e Decimal) Decimal {
	return d.Add(e.Neg())
}

// Equal reports whether d and e are valid and have the same canonical
// magnitude, exponent and sign.
func (d Decimal) Equal(e Decimal) bool {
	if d.state != Valid || e.state != Valid {
		return false
	}
	return d.mag == e.mag && d.exp == e.exp && d.neg == e.neg
}

// Cmp returns -1, 0 or +1. Values that are not Valid compare through
// their float64 form, NaN compares equal to everything.
func (d Decimal) Cmp(e Decimal) int {
	if d.state != Valid || e.state != Valid {
		return cmpFloat(d.Float64(), e.Float64())
	}

	if d.neg != e.neg {
		if d.IsZero() && e.IsZero() {
			return 0
		}
		if d.neg {
			return -1
		}
		return 1
	}

	a, b := d, e
	if a.exp != b.exp {
		var lossy bool
		a, b, lossy = alignExact(a, b)
		if lossy {
			return cmpFloat(d.Float64(), e.Float64())
		}
	}

	c := 0
	switch {
	case a.mag < b.mag:
		c = -1
	case a.mag > b.mag:
		c = 1
	}
	if d.neg {
		c = -c
	}
	return c
}

// String returns the canonical decimal text, "NaN", "+Inf" or "-Inf"
func (d Decimal) String() string {
	switch d.state {
	case NaN:
		return "NaN"
	case Infinity:
		if d.neg {
			return "-Inf"
		}
		return "+Inf"
	}
	if d.neg && d.mag != 0 {
		return "-" + d.unsignedString()
	}
	return d.unsignedString()
}

// MarshalText implements encoding.TextMarshaler
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unlike Parse it
// rejects input that does not produce a Valid value.
func (d *Decimal) UnmarshalText(text []byte) error {
	v := Parse(string(text))
	switch v.state {
	case NaN:
		return errors.DecimalParse(string(text))
	case Infinity:
		return errors.DecimalOverflow(string(text))
	}
	*d = v
	return nil
}

func (d Decimal) unsignedString() string {
	digits := strconv.FormatUint(d.mag, 10)
	if d.exp == 0 {
		return digits
	}
	exp := int(d.exp)
	switch {
	case len(digits) > exp:
		return digits[:len(digits)-exp] + "." + digits[len(digits)-exp:]
	case exp-len(digits) > maxLeadingZeros:
		return digits + "e-" + strconv.Itoa(exp)
	}
	return "0." + strings.Repeat("0", exp-len(digits)) + digits
}

// normalize strips trailing zero digits from the fractional part and
// clears the sign of zero.
func (d Decimal) normalize() Decimal {
	if d.state != Valid {
		return d
	}
	if d.mag == 0 {
		return Zero
	}
	for d.exp > 0 && d.mag%10 == 0 {
		d.mag /= 10
		d.exp--
	}
	return d
}

// align returns d and e with equal exponents
func align(d, e Decimal) (Decimal, Decimal) {
	if d.exp == e.exp {
		return d, e
	}
	swapped := false
	if d.exp > e.exp {
		d, e = e, d
		swapped = true
	}

	// d has fewer places than e
	if d.mag == 0 {
		d.exp = e.exp
	} else {
		diff := uint64(e.exp - d.exp)
		k := maxScale(d.mag, diff)
		d.mag *= pow10[k]
		d.exp += uint32(k)
		if rest := diff - k; rest > 0 {
			e.mag = divPow10(e.mag, rest)
			e.exp -= uint32(rest)
		}
	}

	if swapped {
		return e, d
	}
	return d, e
}

// alignExact is align without truncation; lossy reports that the operands
// could not be aligned exactly.
func alignExact(d, e Decimal) (Decimal, Decimal, bool) {
	a, b := align(d, e)
	return a, b, a.exp < d.exp || b.exp < e.exp
}

// maxScale returns the largest k <= limit with mag*10^k < 2^64
func maxScale(mag uint64, limit uint64) uint64 {
	k := uint64(0)
	for k < limit && k+1 < uint64(len(pow10)) {
		if hi, _ := bits.Mul64(mag, pow10[k+1]); hi != 0 {
			break
		}
		k++
	}
	return k
}

func mulPow10(mag uint64, n uint64) (uint64, bool) {
	if mag == 0 {
		return 0, true
	}
	if n >= uint64(len(pow10)) {
		return 0, false
	}
	hi, lo := bits.Mul64(mag, pow10[n])
	return lo, hi == 0
}

func divPow10(mag uint64, n uint64) uint64 {
	if n >= uint64(len(pow10)) {
		return 0
	}
	return mag / pow10[n]
}

// parseExponent parses [+-]digits. Exponents beyond 10^12 are clamped so
// that they overflow the uint32 exponent range later.
func parseExponent(s string) (int64, bool) {
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" || !allDigits(s) {
		return 0, false
	}
	s = strings.TrimLeft(s, "0")
	var v int64
	if len(s) > 12 {
		v = 1e12
	} else if s != "" {
		v, _ = strconv.ParseInt(s, 10, 64)
	}
	if neg {
		v = -v
	}
	return v, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
