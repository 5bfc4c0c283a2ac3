// File: decimal_test.go
// Title: Unit Tests for Decimal Values
// Description: Tests for parsing, float conversion, arithmetic and the NaN
//              and Infinity states of Decimal. github.com/govalues/decimal is
//              used as an independent reference for parsed values.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial test implementation for decimal arithmetic
// - 2026-10-19 v0.2.0: Rewritten for magnitude/exponent decimals

package mathx

import (
	"encoding/json"
	"math"
	"strconv"
	"testing"

	gvdecimal "github.com/govalues/decimal"

	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		mag     uint64
		exp     uint32
		neg     bool
		state   State
	}{
		{"plain decimal", "123.456", 123456, 3, false, Valid},
		{"negative decimal", "-123.456", 123456, 3, true, Valid},
		{"explicit plus", "+42", 42, 0, false, Valid},
		{"leading and trailing zeros", "000123.4500", 12345, 2, false, Valid},
		{"zero with fraction", "0.0", 0, 0, false, Valid},
		{"lone point", ".", 0, 0, false, Valid},
		{"zero", "0", 0, 0, false, Valid},
		{"trailing point", "0.", 0, 0, false, Valid},
		{"leading point", ".0", 0, 0, false, Valid},
		{"empty", "", 0, 0, false, Valid},
		{"negative zero", "-0", 0, 0, false, Valid},
		{"fraction only", ".75", 75, 2, false, Valid},
		{"small fraction", "0.05", 5, 2, false, Valid},
		{"surrounding space", " 6.5 ", 65, 1, false, Valid},
		{"exponent", "1.5e3", 1500, 0, false, Valid},
		{"negative exponent", "1.5E-3", 15, 4, false, Valid},
		{"signed exponent", "2.5e+2", 250, 0, false, Valid},
		{"exponent into fraction", "12e-2", 12, 2, false, Valid},
		{"exponent cancels trailing zero", "150.0e-1", 15, 0, false, Valid},
		{"zero with huge exponent", "0e999999999999999", 0, 0, false, Valid},
		{"max magnitude", "18446744073709551615", math.MaxUint64, 0, false, Valid},
		{"max magnitude with places", "18.446744073709551615", math.MaxUint64, 18, false, Valid},
		{"largest power of ten", "1e19", 10_000_000_000_000_000_000, 0, false, Valid},
		{"magnitude overflow", "18.446744073709551616", 0, 0, false, Infinity},
		{"negative magnitude overflow", "-18446744073709551616", 0, 0, true, Infinity},
		{"exponent overflow", "1e20", 0, 0, false, Infinity},
		{"exponent underflow", "1e-4294967296", 0, 0, false, Infinity},
		{"two points", "123.456.789", 0, 0, false, NaN},
		{"letter in fraction", "123.A", 0, 0, false, NaN},
		{"letters", "abc", 0, 0, false, NaN},
		{"empty exponent", "1e", 0, 0, false, NaN},
		{"sign only exponent", "1e+", 0, 0, false, NaN},
		{"inner space", "12 34", 0, 0, false, NaN},
		{"double sign", "--1", 0, 0, false, NaN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got.State() != tt.state {
				t.Fatalf("Parse(%q).State() = %v, want %v", tt.input, got.State(), tt.state)
			}
			if got.IsNeg() != tt.neg {
				t.Errorf("Parse(%q).IsNeg() = %v, want %v", tt.input, got.IsNeg(), tt.neg)
			}
			if tt.state != Valid {
				return
			}
			if got.Mag() != tt.mag || got.Exp() != tt.exp {
				t.Errorf("Parse(%q) = (%d, %d), want (%d, %d)", tt.input, got.Mag(), got.Exp(), tt.mag, tt.exp)
			}
		})
	}
}

func TestParseMatchesReference(t *testing.T) {
	inputs := []string{
		"0", "1", "-1", "0.06", "0.227125", "0.3048", "0.001",
		"123.456", "-98765.4321", "1000000", "0.0000001",
		"9999999999999999999", "1.000000000000000001", "42.4200",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			ref, err := gvdecimal.Parse(input)
			if err != nil {
				t.Fatalf("reference Parse(%q) error = %v", input, err)
			}
			got := Parse(input)
			back, err := gvdecimal.Parse(got.String())
			if err != nil {
				t.Fatalf("reference Parse(%q) error = %v", got.String(), err)
			}
			if back.Cmp(ref) != 0 {
				t.Errorf("Parse(%q).String() = %q, reference %q", input, got.String(), ref.String())
			}
		})
	}
}

func TestRoundTripFloat(t *testing.T) {
	values := []float64{0, 1, -1, 123.456, -123.456, 0.06, 0.227125, 0.3048, 1e-7, 6.02214076e23 / 1e10, 15241.383936}

	for _, f := range values {
		s := strconv.FormatFloat(f, 'g', -1, 64)
		t.Run(s, func(t *testing.T) {
			if got := Parse(s).Float64(); got != f {
				t.Errorf("Parse(%q).Float64() = %v, want %v", s, got, f)
			}
		})
	}

	if got := Parse("18.446744073709551615").Float64(); got != 18.446744073709553 {
		t.Errorf("Parse(max/1e18).Float64() = %v, want 18.446744073709553", got)
	}
	if got := Parse("1e-40").Float64(); got != 1e-40 {
		t.Errorf("Parse(1e-40).Float64() = %v, want 1e-40", got)
	}
}

func TestFloat64States(t *testing.T) {
	if !math.IsNaN(NaNValue().Float64()) {
		t.Error("NaN.Float64() should be NaN")
	}
	if !math.IsInf(Inf(false).Float64(), 1) {
		t.Error("+Inf.Float64() should be +Inf")
	}
	if !math.IsInf(Inf(true).Float64(), -1) {
		t.Error("-Inf.Float64() should be -Inf")
	}
	if got := Parse("-0.5").Float64(); got != -0.5 {
		t.Errorf("Parse(-0.5).Float64() = %v, want -0.5", got)
	}
}

func TestFromFloat(t *testing.T) {
	tests := []struct {
		name      string
		input     float64
		precision []int
		mag       uint64
		exp       uint32
		neg       bool
		state     State
	}{
		{"half", 0.5, nil, 5, 1, false, Valid},
		{"decimal", 123.456, nil, 123456, 3, false, Valid},
		{"negative", -2.5, nil, 25, 1, true, Valid},
		{"binary noise at 17 digits", 0.1, nil, 10000000000000001, 17, false, Valid},
		{"15 digits", 0.1, []int{15}, 1, 1, false, Valid},
		{"large exponent form", 1.5e15, nil, 1500000000000000, 0, false, Valid},
		{"too large", 1e21, nil, 0, 0, false, Infinity},
		{"nan", math.NaN(), nil, 0, 0, false, NaN},
		{"negative infinity", math.Inf(-1), nil, 0, 0, true, Infinity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromFloat(tt.input, tt.precision...)
			if got.State() != tt.state {
				t.Fatalf("FromFloat(%v).State() = %v, want %v", tt.input, got.State(), tt.state)
			}
			if got.IsNeg() != tt.neg {
				t.Errorf("FromFloat(%v).IsNeg() = %v, want %v", tt.input, got.IsNeg(), tt.neg)
			}
			if tt.state == Valid && (got.Mag() != tt.mag || got.Exp() != tt.exp) {
				t.Errorf("FromFloat(%v) = (%d, %d), want (%d, %d)", tt.input, got.Mag(), got.Exp(), tt.mag, tt.exp)
			}
		})
	}
}

func TestNewDecimal(t *testing.T) {
	tests := []struct {
		mag  uint64
		exp  uint32
		neg  bool
		want string
	}{
		{5, 3, true, "-0.005"},
		{1500, 2, false, "15"},
		{0, 7, true, "0"},
		{123456, 3, false, "123.456"},
		{1, 40, false, "1e-40"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := NewDecimal(tt.mag, tt.exp, tt.neg).String(); got != tt.want {
				t.Errorf("NewDecimal(%d, %d, %v) = %q, want %q", tt.mag, tt.exp, tt.neg, got, tt.want)
			}
		})
	}

	if got := NewFromInt(math.MinInt64).String(); got != "-9223372036854775808" {
		t.Errorf("NewFromInt(MinInt64) = %q", got)
	}
}

func TestMul(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		want  string
		state State
	}{
		{"exact product", "123.456", "123.456", "15241.383936", Valid},
		{"sign xor", "-1.5", "2", "-3", Valid},
		{"negative times negative", "-1.5", "-2", "3", Valid},
		{"canonical result", "0.5", "0.2", "0.1", Valid},
		{"unit factor", "100", "0.06", "6", Valid},
		{"gallons", "440.3", "0.227125", "100.0031375", Valid},
		{"zero", "0", "123.4", "0", Valid},
		{"truncating the operand with more places", "1.8446744073709551615", "10", "18.44674407370955161", Valid},
		{"overflow without places", "18446744073709551615", "2.0", "", Infinity},
		{"nan operand", "x", "2", "", NaN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.a).Mul(Parse(tt.b))
			if got.State() != tt.state {
				t.Fatalf("%s * %s state = %v, want %v", tt.a, tt.b, got.State(), tt.state)
			}
			if tt.state == Valid && got.String() != tt.want {
				t.Errorf("%s * %s = %q, want %q", tt.a, tt.b, got.String(), tt.want)
			}
		})
	}

	p := Parse("123.456").Mul(Parse("123.456"))
	if p.Mag() != 15241383936 || p.Exp() != 6 {
		t.Errorf("123.456^2 = (%d, %d), want (15241383936, 6)", p.Mag(), p.Exp())
	}
}

func TestMulExponentUnderflow(t *testing.T) {
	tiny := NewDecimal(1, math.MaxUint32, false)
	if got := tiny.Mul(tiny); !got.IsZero() || got.State() != Valid {
		t.Errorf("tiny * tiny = %v (state %v), want valid zero", got, got.State())
	}

	got := NewDecimal(123, math.MaxUint32-1, false).Mul(NewDecimal(1, 2, false))
	if got.Mag() != 12 || got.Exp() != math.MaxUint32 {
		t.Errorf("Mul() = %d e-%d, want 12 e-%d", got.Mag(), got.Exp(), uint32(math.MaxUint32))
	}
}

func TestMulStates(t *testing.T) {
	if got := Inf(false).Mul(Parse("-2")); !got.IsInf() || !got.IsNeg() {
		t.Errorf("+Inf * -2 = %v, want -Inf", got)
	}
	if got := Inf(false).Mul(Zero); !got.IsNaN() {
		t.Errorf("+Inf * 0 = %v, want NaN", got)
	}
}

func TestDiv(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		want  float64
		state State
		neg   bool
	}{
		{"same value", "123.456", "123.456", 1, Valid, false},
		{"exact quotient", "7.5", "2.5", 3, Valid, false},
		{"float quotient", "1", "4", 0.25, Valid, false},
		{"repeating", "1", "3", 1.0 / 3.0, Valid, false},
		{"density", "4", "3", 4.0 / 3.0, Valid, false},
		{"zero dividend", "0", "3", 0, Valid, false},
		{"zero divisor", "1", "0", 0, Infinity, false},
		{"negative zero divisor", "-1", "0.0", 0, Infinity, true},
		{"nan", "1", "x", 0, NaN, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.a).Div(Parse(tt.b))
			if got.State() != tt.state {
				t.Fatalf("%s / %s state = %v, want %v", tt.a, tt.b, got.State(), tt.state)
			}
			if got.IsNeg() != tt.neg {
				t.Errorf("%s / %s IsNeg() = %v, want %v", tt.a, tt.b, got.IsNeg(), tt.neg)
			}
			if tt.state == Valid && math.Abs(got.Float64()-tt.want) > 1e-15 {
				t.Errorf("%s / %s = %v, want %v", tt.a, tt.b, got.Float64(), tt.want)
			}
		})
	}

	if got := Parse("123.456").Div(Parse("123.456")); !got.Equal(NewFromInt(1)) {
		t.Errorf("123.456 / 123.456 = %v, want exactly 1", got)
	}
	if got := Parse("5").Div(Inf(false)); !got.IsZero() {
		t.Errorf("5 / Inf = %v, want 0", got)
	}
	if got := Inf(false).Div(Inf(false)); !got.IsNaN() {
		t.Errorf("Inf / Inf = %v, want NaN", got)
	}
}

func TestAddSub(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		sum   string
		diff  string
	}{
		{"both positive", "1.5", "2.25", "3.75", "-0.75"},
		{"negative plus positive", "-1.5", "2.25", "0.75", "-3.75"},
		{"positive plus negative", "1.5", "-2.25", "-0.75", "3.75"},
		{"both negative", "-1.5", "-2.25", "-3.75", "0.75"},
		{"binary fractions", "0.1", "0.2", "0.3", "-0.1"},
		{"cancel", "1", "1", "2", "0"},
		{"carry into integer", "0.5", "0.5", "1", "0"},
		{"different scales", "100", "0.001", "100.001", "99.999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := Parse(tt.a), Parse(tt.b)
			if got := a.Add(b).String(); got != tt.sum {
				t.Errorf("%s + %s = %q, want %q", tt.a, tt.b, got, tt.sum)
			}
			if got := a.Sub(b).String(); got != tt.diff {
				t.Errorf("%s - %s = %q, want %q", tt.a, tt.b, got, tt.diff)
			}
			if !a.Sub(b).Equal(a.Add(b.Neg())) {
				t.Errorf("Sub() differs from Add(Neg())")
			}
		})
	}
}

func TestAddOverflow(t *testing.T) {
	if got := Parse("18446744073709551615").Add(Parse("1")); !got.IsInf() || got.IsNeg() {
		t.Errorf("max + 1 = %v, want +Inf", got)
	}
	if got := Parse("1844674407370955161.5").Add(Parse("0.5")); got.String() != "1844674407370955162" {
		t.Errorf("carry with places = %q, want 1844674407370955162", got.String())
	}
	if got := Parse("10000000000000000000").Add(Parse("0.5")); got.String() != "10000000000000000000" {
		t.Errorf("alignment truncation = %q, want 10000000000000000000", got.String())
	}
	if got := Inf(false).Add(Inf(true)); !got.IsNaN() {
		t.Errorf("+Inf + -Inf = %v, want NaN", got)
	}
	if got := Inf(true).Add(Parse("5")); !got.IsInf() || !got.IsNeg() {
		t.Errorf("-Inf + 5 = %v, want -Inf", got)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1.0", "1.00", true},
		{"0.0", ".", true},
		{"-0", "0", true},
		{"1.5", "-1.5", false},
		{"1.5", "1.50001", false},
		{"x", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"=="+tt.b, func(t *testing.T) {
			if got := Parse(tt.a).Equal(Parse(tt.b)); got != tt.want {
				t.Errorf("Parse(%q).Equal(Parse(%q)) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCmp(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.5", "1.25", 1},
		{"-1", "1", -1},
		{"0.001", "0.01", -1},
		{"-2.5", "-2.25", -1},
		{"3", "3.0", 0},
		{"18446744073709551615", "0.1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			if got := Parse(tt.a).Cmp(Parse(tt.b)); got != tt.want {
				t.Errorf("Parse(%q).Cmp(Parse(%q)) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}

	if got := Inf(false).Cmp(Parse("1")); got != 1 {
		t.Errorf("+Inf.Cmp(1) = %d, want 1", got)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		d    Decimal
		want string
	}{
		{Parse("-0.005"), "-0.005"},
		{Parse("42"), "42"},
		{Zero, "0"},
		{NaNValue(), "NaN"},
		{Inf(false), "+Inf"},
		{Inf(true), "-Inf"},
	}

	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestTextMarshaling(t *testing.T) {
	type payload struct {
		Flow Decimal `json:"flow"`
	}

	data, err := json.Marshal(payload{Flow: Parse("120.50")})
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `{"flow":"120.5"}` {
		t.Errorf("json.Marshal() = %s", data)
	}

	var back payload
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if !back.Flow.Equal(Parse("120.5")) {
		t.Errorf("round trip = %v, want 120.5", back.Flow)
	}

	err = json.Unmarshal([]byte(`{"flow":"12.a"}`), &back)
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidFormat) {
		t.Errorf("json.Unmarshal(12.a) error = %v, want INVALID_FORMAT", err)
	}
}

func TestErr(t *testing.T) {
	if err := Parse("1.5").Err(); err != nil {
		t.Errorf("Valid.Err() = %v, want nil", err)
	}
	if err := Parse("1.2.3").Err(); !mdwerror.HasCode(err, mdwerror.CodeInvalidFormat) {
		t.Errorf("NaN.Err() = %v, want INVALID_FORMAT", err)
	}
	if err := Parse("1e30").Err(); !mdwerror.HasCode(err, mdwerror.CodeValueOutOfRange) {
		t.Errorf("Inf.Err() = %v, want VALUE_OUT_OF_RANGE", err)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse(abc) should panic")
		}
	}()
	MustParse("abc")
}
