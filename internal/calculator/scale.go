package calculator

import "sort"

// OutOfScale is returned by FitToScale for inputs beyond the last breakpoint
const OutOfScale = -1.0

// Breakpoint is a labelled tick on a chart axis. Distance is the pixel
// distance from the previous tick.
type Breakpoint struct {
	Value    float64
	Distance float64
}

// Scale is a chart axis, breakpoints ascending by value
type Scale []Breakpoint

// NewScale builds a scale from tick value to pixel distance pairs
func NewScale(points map[float64]float64) Scale {
	s := make(Scale, 0, len(points))
	for v, d := range points {
		s = append(s, Breakpoint{Value: v, Distance: d})
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Value < s[j].Value })
	return s
}

// Min returns the smallest tick value
func (s Scale) Min() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[0].Value
}

// Max returns the largest tick value
func (s Scale) Max() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Value
}

// Length returns the pixel length of the axis
func (s Scale) Length() float64 {
	var l float64
	for _, bp := range s {
		l += bp.Distance
	}
	return l
}

// FitToScale returns the pixel position of input on the axis starting at
// start. Between two ticks the position is interpolated linearly; inputs
// above the last tick yield OutOfScale.
func FitToScale(scale Scale, input, start float64) float64 {
	pos := start
	prev := 0.0
	for _, bp := range scale {
		if bp.Value == input {
			return pos + bp.Distance
		}
		if bp.Value > input {
			return pos + (input-prev)/(bp.Value-prev)*bp.Distance
		}
		pos += bp.Distance
		prev = bp.Value
	}
	return OutOfScale
}
