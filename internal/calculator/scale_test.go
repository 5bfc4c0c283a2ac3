package calculator

import (
	"testing"
)

func TestFitToScale(t *testing.T) {
	n := DefaultNomograph()

	tests := []struct {
		name  string
		scale Scale
		input float64
		start float64
		want  float64
	}{
		{"flow first tick", n.FlowScale, 6, 0, 0},
		{"flow below axis", n.FlowScale, 5.999, 0, 0},
		{"flow exact tick", n.FlowScale, 10, 0, 22},
		{"flow interpolated", n.FlowScale, 12.5, 0, 31},
		{"flow 100", n.FlowScale, 100, 0, 122},
		{"flow last tick", n.FlowScale, 2000, 0, 252},
		{"flow beyond axis", n.FlowScale, 2001, 0, OutOfScale},
		{"head with offset", n.HeadScale, 100, 300, 404},
		{"viscosity with offset", n.ViscosityScale, 100, 215, 315},
		{"empty scale", Scale{}, 1, 10, OutOfScale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitToScale(tt.scale, tt.input, tt.start); got != tt.want {
				t.Errorf("FitToScale(%v, %v) = %v, want %v", tt.input, tt.start, got, tt.want)
			}
		})
	}
}

func TestFitToScale_Monotonic(t *testing.T) {
	n := DefaultNomograph()
	scales := map[string]Scale{
		"flow":      n.FlowScale,
		"head":      n.HeadScale,
		"viscosity": n.ViscosityScale,
	}

	for name, s := range scales {
		t.Run(name, func(t *testing.T) {
			lo, hi := s.Min(), s.Max()
			steps := 5000
			prev := FitToScale(s, lo, 0)
			for i := 1; i <= steps; i++ {
				x := lo + (hi-lo)*float64(i)/float64(steps)
				got := FitToScale(s, x, 0)
				if got < prev {
					t.Fatalf("FitToScale(%v) = %v < FitToScale(previous) = %v", x, got, prev)
				}
				prev = got
			}
			if prev != s.Length() {
				t.Errorf("position at Max() = %v, want axis length %v", prev, s.Length())
			}
		})
	}
}

func TestNewScale(t *testing.T) {
	s := NewScale(map[float64]float64{100: 10, 10: 0, 50: 7})
	if len(s) != 3 || s[0].Value != 10 || s[1].Value != 50 || s[2].Value != 100 {
		t.Fatalf("NewScale() = %v, want ascending 10, 50, 100", s)
	}
	if s.Min() != 10 || s.Max() != 100 || s.Length() != 17 {
		t.Errorf("Min, Max, Length = %v, %v, %v", s.Min(), s.Max(), s.Length())
	}
	if (Scale{}).Min() != 0 || (Scale{}).Max() != 0 {
		t.Error("empty scale bounds should be 0")
	}
}

func TestDefaultNomograph_Axes(t *testing.T) {
	n := DefaultNomograph()
	axes := []struct {
		name     string
		scale    Scale
		min, max float64
	}{
		{"flow", n.FlowScale, 6, 2000},
		{"head", n.HeadScale, 5, 200},
		{"viscosity", n.ViscosityScale, 10, 4000},
	}
	for _, a := range axes {
		if a.scale.Min() != a.min || a.scale.Max() != a.max {
			t.Errorf("%s axis = [%v, %v], want [%v, %v]", a.name, a.scale.Min(), a.scale.Max(), a.min, a.max)
		}
		for i := 1; i < len(a.scale); i++ {
			if a.scale[i].Value <= a.scale[i-1].Value {
				t.Errorf("%s axis not ascending at %d", a.name, i)
			}
		}
	}
}
