// File: example_test.go
// Title: Examples for mathx
// Description: Runnable examples for Decimal and the curve functions.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package mathx_test

import (
	"fmt"

	"github.com/msto63/viscocorrect/foundation/utils/mathx"
)

func ExampleParse() {
	d := mathx.Parse("123.456")
	fmt.Println(d.Mag(), d.Exp(), d.Float64())

	fmt.Println(mathx.Parse("1.5e-3"))
	fmt.Println(mathx.Parse("123.456.789").IsNaN())
	// Output:
	// 123456 3 123.456
	// 0.0015
	// true
}

func ExampleDecimal_Mul() {
	flow := mathx.Parse("440.3")
	gpm := mathx.Parse("0.227125")
	fmt.Println(flow.Mul(gpm))

	overflow := mathx.Parse("18446744073709551615").Mul(mathx.Parse("2.0"))
	fmt.Println(overflow, overflow.IsInf())
	// Output:
	// 100.0031375
	// +Inf true
}

func ExampleLinear_SolveForX() {
	head := mathx.NewLinear(-4.8, 40.0, 300.0)
	visc := mathx.NewLinear(6.4, 215.0, 350.0)
	fmt.Printf("%.2f\n", visc.SolveForX(head.Eval(50)))
	// Output:
	// 199.69
}
