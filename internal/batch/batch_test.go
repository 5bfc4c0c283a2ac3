package batch

import (
	"bytes"
	"context"
	"strings"
	"testing"

	mdwerror "github.com/msto63/viscocorrect/foundation/core/error"
	"github.com/msto63/viscocorrect/internal/calculator"
	"github.com/msto63/viscocorrect/internal/calibration"
	"github.com/msto63/viscocorrect/internal/units"
	"github.com/msto63/viscocorrect/pkg/core/cache"
)

const input = `flow,flow_unit,head,head_unit,visc,visc_unit,density,density_unit
# reference point
100,m3/h,100,m,100,mm2/s
1500,l/min,100,ft,85,cP,850,kg/m3
100,,100,,100
5,m3/h,100,m,100,cSt
abc,m3/h,100,m,100,cSt
`

func newCached(t *testing.T) *calculator.CachedCalculator {
	t.Helper()
	calc, err := calculator.New(calibration.Default())
	if err != nil {
		t.Fatalf("calculator.New() error = %v", err)
	}
	cc := calculator.NewCached(calc, cache.DefaultConfig())
	t.Cleanup(cc.Close)
	return cc
}

func TestRead(t *testing.T) {
	records, err := Read(strings.NewReader(input), units.Base())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("Read() returned %d records, want 5", len(records))
	}

	second := records[1].Input
	if second.Units.Flowrate != units.LitersPerMinute || second.Units.Viscosity != units.Centipoise {
		t.Errorf("records[1].Units = %+v", second.Units)
	}
	if got := second.Density.String(); got != "850" {
		t.Errorf("records[1].Density = %s, want 850", got)
	}
	if got := records[2].Input.Density.String(); got != "1" {
		t.Errorf("records[2].Density = %s, want default 1", got)
	}
	if records[0].Line != 3 {
		t.Errorf("records[0].Line = %d, want 3", records[0].Line)
	}
}

func TestRead_Defaults(t *testing.T) {
	defaults := units.Units{Flowrate: units.GallonsPerMinute, Head: units.Feet}
	records, err := Read(strings.NewReader("440,,328,,100\n"), defaults)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if records[0].Input.Units != defaults {
		t.Errorf("Units = %+v, want %+v", records[0].Input.Units, defaults)
	}
}

func TestRead_DefaultDensityInUnit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		defaults units.Units
		want     string
	}{
		{"row unit", "100,m3/h,100,m,85,cP,,kg/m3\n", units.Base(), "1000"},
		{"configured unit", "100,m3/h,100,m,85,cP\n", units.Units{Density: units.KilogramsPerCubicMeter}, "1000"},
		{"base unit", "100,m3/h,100,m,85,cP\n", units.Base(), "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Read(strings.NewReader(tt.input), tt.defaults)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if got := records[0].Input.Density.String(); got != tt.want {
				t.Errorf("Density = %s %s, want %s", got, records[0].Input.Units.Density, tt.want)
			}
		})
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode mdwerror.Code
	}{
		{"unknown unit", "100,furlongs/h,100,m,100,cSt\n", mdwerror.CodeInvalidInput},
		{"too many columns", "1,m3/h,1,m,1,cSt,1,g/L,extra\n", mdwerror.CodeInvalidFormat},
		{"bare quote", "100,\"m3/h,100\n", mdwerror.CodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), units.Base())
			if got := mdwerror.GetCode(err); got != tt.wantCode {
				t.Errorf("Read() code = %v, want %v (%v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestRunAndWrite(t *testing.T) {
	records, err := Read(strings.NewReader(input), units.Base())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	cc := newCached(t)

	results, err := Run(context.Background(), records, cc)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != len(records) {
		t.Fatalf("Run() returned %d results, want %d", len(results), len(records))
	}
	if got := Rejected(results); got != 2 {
		t.Errorf("Rejected() = %d, want 2", got)
	}
	if results[0].Factors != results[2].Factors {
		t.Errorf("identical inputs gave %+v and %+v", results[0].Factors, results[2].Factors)
	}
	if hits, _, _ := cc.Stats(); hits != 1 {
		t.Errorf("cache hits = %d, want 1", hits)
	}

	var buf bytes.Buffer
	if err := Write(&buf, results, 3); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("Write() produced %d lines, want 6", len(lines))
	}
	if !strings.HasSuffix(lines[0], "q,eta,h06,h08,h10,h12,error") {
		t.Errorf("header = %q", lines[0])
	}
	if want := "100,m³/h,100,m,100,mm²/s,1,g/L,0.982,0.748,0.972,0.957,0.938,0.917,"; lines[1] != want {
		t.Errorf("row 1 = %q, want %q", lines[1], want)
	}
	if !strings.HasSuffix(lines[4], ",flowrate") {
		t.Errorf("row 4 = %q, want flowrate error", lines[4])
	}
	if !strings.HasSuffix(lines[5], ",flowrate|invalid-number") {
		t.Errorf("row 5 = %q, want invalid-number error", lines[5])
	}
}

func TestRun_Cancelled(t *testing.T) {
	records, err := Read(strings.NewReader(input), units.Base())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Run(ctx, records, newCached(t))
	if err != context.Canceled {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(results) != 0 {
		t.Errorf("Run() returned %d results after cancel", len(results))
	}
}
