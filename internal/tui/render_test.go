package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/msto63/viscocorrect/foundation/utils/mathx"
	"github.com/msto63/viscocorrect/internal/calculator"
	"github.com/msto63/viscocorrect/internal/calibration"
	"github.com/msto63/viscocorrect/pkg/core/health"
)

func reference(t *testing.T, flow string) (calculator.InputParameters, calculator.CorrectionFactors) {
	t.Helper()
	calc, err := calculator.New(calibration.Default())
	if err != nil {
		t.Fatalf("calculator.New() error = %v", err)
	}
	in := calculator.InputParameters{
		Flowrate:  mathx.MustParse(flow),
		Head:      mathx.NewFromInt(100),
		Viscosity: mathx.NewFromInt(100),
		Density:   mathx.NewFromInt(1),
	}
	return in, calc.Calculate(in)
}

func TestRenderer_FactorsPlain(t *testing.T) {
	in, res := reference(t, "100")
	out := NewRenderer(true, 3).Factors(in, in.ToBase(), res)

	for _, want := range []string{
		"Operating point",
		"Flow rate",
		"m³/h",
		"Correction factors",
		"C_Q            0.982",
		"C_η            0.748",
		"C_H 0.6·Q_BEP  0.972",
		"C_H 1.2·Q_BEP  0.917",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Factors() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "╭") {
		t.Error("plain output contains borders")
	}
}

func TestRenderer_FactorsRejected(t *testing.T) {
	in, res := reference(t, "5")
	out := NewRenderer(true, 3).Factors(in, in.ToBase(), res)

	if !strings.Contains(out, "Error: input outside the chart: flowrate") {
		t.Errorf("Factors() missing error line:\n%s", out)
	}
	if strings.Contains(out, "Correction factors") {
		t.Errorf("Factors() shows factors for rejected input:\n%s", out)
	}
}

func TestRenderer_FactorsStyled(t *testing.T) {
	in, res := reference(t, "100")
	out := NewRenderer(false, 4).Factors(in, in.ToBase(), res)

	if !strings.Contains(out, "╭") {
		t.Errorf("styled output has no rounded border:\n%s", out)
	}
	if !strings.Contains(out, "0.9822") {
		t.Errorf("styled output missing C_Q:\n%s", out)
	}
}

func TestRenderer_Coefficients(t *testing.T) {
	out := NewRenderer(true, 3).Coefficients("builtin", calibration.Default())

	if !strings.Contains(out, "source: builtin") {
		t.Errorf("Coefficients() missing source:\n%s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// title, source, header and six curves
	if len(lines) != 9 {
		t.Errorf("Coefficients() has %d lines, want 9:\n%s", len(lines), out)
	}
	if f := strings.Fields(lines[3]); len(f) != 8 || f[0] != "0" || f[1] != "Q" {
		t.Errorf("first curve line = %q", lines[3])
	}
}

func TestRenderer_Health(t *testing.T) {
	registry := health.NewRegistry("viscocorrect", "0.1.0")
	registry.Register(health.Static("calibration", health.StatusHealthy, "loaded"))
	report := registry.Check(context.Background())

	out := NewRenderer(true, 3).Health(report)
	if !strings.Contains(out, "viscocorrect 0.1.0: healthy") {
		t.Errorf("Health() missing summary:\n%s", out)
	}
	if !strings.Contains(out, "calibration") {
		t.Errorf("Health() missing check:\n%s", out)
	}
}

func TestPlainTable(t *testing.T) {
	got := plainTable([]string{"Name", "Value"}, [][]string{{"a", "1"}, {"long", "22"}})
	want := "Name  Value\na         1\nlong     22\n"
	if got != want {
		t.Errorf("plainTable() = %q, want %q", got, want)
	}
}
