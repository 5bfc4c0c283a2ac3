package calculator

// Point is a pixel coordinate on the chart
type Point struct {
	X float64
	Y float64
}

// Domain is the closed interval of chart positions a curve was fitted on
type Domain struct {
	Min float64
	Max float64
}

// Contains reports whether x lies in [Min, Max]
func (d Domain) Contains(x float64) bool {
	return x >= d.Min && x <= d.Max
}

// Nomograph describes the digitized correction chart: the three input
// axes, the two construction lines and the ranges the result curves are
// valid for. Positions left of a curve domain read as factor 1, positions
// right of it as 0.
type Nomograph struct {
	FlowScale      Scale
	HeadScale      Scale
	ViscosityScale Scale

	// HeadStart is the anchor of the head line: its X is where the line is
	// pinned, its Y the pixel start of the head axis.
	HeadStart Point
	// ViscosityStart is the anchor of the viscosity line: its X is the pixel
	// start of the viscosity axis, its Y the level the line is pinned at.
	ViscosityStart Point

	HeadPitch      float64
	ViscosityPitch float64

	// PixelScale converts curve values from pixels to chart units
	PixelScale float64

	QDomain   Domain
	EtaDomain Domain
	HDomain   Domain

	// Offsets added after scaling the curve values
	QOffset   float64
	EtaOffset float64
	HOffset   float64
}

// DefaultNomograph returns the chart the shipped coefficients are read
// against. The axis tables, anchors, pitches, pixel scale and upper domain
// bounds are a reconstruction: they were chosen so that 100 m³/h, 100 m and
// 100 mm²/s lands at position 261.9375 and yields the published factors.
// The lower domain bounds 242, 122 and 146 are the chart's own cutoffs.
func DefaultNomograph() Nomograph {
	return Nomograph{
		FlowScale: Scale{
			{6, 0}, {7, 7}, {8, 5}, {9, 5}, {10, 5},
			{15, 18}, {20, 12}, {30, 18}, {40, 12}, {50, 10},
			{60, 8}, {70, 7}, {80, 5}, {90, 5}, {100, 5},
			{150, 18}, {200, 12}, {300, 18}, {400, 12}, {500, 10},
			{600, 8}, {700, 7}, {800, 5}, {900, 5}, {1000, 5},
			{1500, 18}, {2000, 12},
		},
		HeadScale: Scale{
			{5, 0}, {6, 6}, {7, 6}, {8, 4}, {9, 4}, {10, 4},
			{15, 14}, {20, 10}, {25, 8}, {30, 6}, {40, 10},
			{50, 8}, {60, 6}, {70, 6}, {80, 4}, {90, 4}, {100, 4},
			{150, 14}, {200, 10},
		},
		ViscosityScale: Scale{
			{10, 0}, {15, 18}, {20, 12}, {30, 18}, {40, 12}, {50, 10},
			{60, 8}, {80, 12}, {100, 10}, {150, 18}, {200, 12},
			{300, 18}, {400, 12}, {500, 10}, {600, 8}, {800, 12},
			{1000, 10}, {1500, 18}, {2000, 12}, {3000, 18}, {4000, 12},
		},
		HeadStart:      Point{X: 40, Y: 300},
		ViscosityStart: Point{X: 215, Y: 350},
		HeadPitch:      -4.8,
		ViscosityPitch: 6.4,
		PixelScale:     21.9,
		QDomain:        Domain{Min: 242, Max: 420},
		EtaDomain:      Domain{Min: 122, Max: 360},
		HDomain:        Domain{Min: 146, Max: 500},
		QOffset:        0.2,
		EtaOffset:      0.2,
		HOffset:        -0.3,
	}
}

// boundary applies the policy for positions outside a curve domain
func (d Domain) boundary(pos float64) float64 {
	if pos < d.Min {
		return 1
	}
	return 0
}
