package units

import (
	"github.com/msto63/viscocorrect/foundation/utils/mathx"
)

// Conversion factors into the base unit. Decimal so that 0.06 stays 0.06.
var (
	flowrateFactors = [...]mathx.Decimal{
		CubicMetersPerHour: mathx.MustParse("1"),
		LitersPerMinute:    mathx.MustParse("0.06"),
		GallonsPerMinute:   mathx.MustParse("0.227125"),
	}
	headFactors = [...]mathx.Decimal{
		Meters: mathx.MustParse("1"),
		Feet:   mathx.MustParse("0.3048"),
	}
	densityFactors = [...]mathx.Decimal{
		GramsPerLiter:          mathx.MustParse("1"),
		KilogramsPerCubicMeter: mathx.MustParse("0.001"),
	}
)

// FlowrateFactor returns the factor from u to m³/h. Unknown units give NaN.
func FlowrateFactor(u Flowrate) mathx.Decimal {
	if int(u) >= len(flowrateFactors) {
		return mathx.NaNValue()
	}
	return flowrateFactors[u]
}

// HeadFactor returns the factor from u to m
func HeadFactor(u Head) mathx.Decimal {
	if int(u) >= len(headFactors) {
		return mathx.NaNValue()
	}
	return headFactors[u]
}

// DensityFactor returns the factor from u to g/L
func DensityFactor(u Density) mathx.Decimal {
	if int(u) >= len(densityFactors) {
		return mathx.NaNValue()
	}
	return densityFactors[u]
}

// FlowrateToBase converts v from u to m³/h
func FlowrateToBase(v mathx.Decimal, u Flowrate) mathx.Decimal {
	if u == CubicMetersPerHour {
		return v
	}
	return v.Mul(FlowrateFactor(u))
}

// HeadToBase converts v from u to m
func HeadToBase(v mathx.Decimal, u Head) mathx.Decimal {
	if u == Meters {
		return v
	}
	return v.Mul(HeadFactor(u))
}

// DensityToBase converts v from u to g/L
func DensityToBase(v mathx.Decimal, u Density) mathx.Decimal {
	if u == GramsPerLiter {
		return v
	}
	return v.Mul(DensityFactor(u))
}

// ViscosityToBase converts v from u to mm²/s. Kinematic units pass through.
// Dynamic units are divided by the density in g/L; a zero density yields 0
// rather than Infinity, callers that care check the density themselves.
func ViscosityToBase(v mathx.Decimal, u Viscosity, density mathx.Decimal, densityUnit Density) mathx.Decimal {
	switch u {
	case SquareMillimetersPerSecond, Centistokes:
		return v
	case Centipoise, MillipascalSeconds:
		rho := DensityToBase(density, densityUnit)
		if rho.IsZero() {
			return mathx.Zero
		}
		return v.Div(rho)
	default:
		return mathx.NaNValue()
	}
}

// FlowrateFromBase converts v from m³/h to u
func FlowrateFromBase(v mathx.Decimal, u Flowrate) mathx.Decimal {
	if u == CubicMetersPerHour {
		return v
	}
	return v.Div(FlowrateFactor(u))
}

// HeadFromBase converts v from m to u
func HeadFromBase(v mathx.Decimal, u Head) mathx.Decimal {
	if u == Meters {
		return v
	}
	return v.Div(HeadFactor(u))
}

// DensityFromBase converts v from g/L to u
func DensityFromBase(v mathx.Decimal, u Density) mathx.Decimal {
	if u == GramsPerLiter {
		return v
	}
	return v.Div(DensityFactor(u))
}

// WaterDensity returns the default fluid density of 1 g/L expressed in u
func WaterDensity(u Density) mathx.Decimal {
	return DensityFromBase(mathx.NewFromInt(1), u)
}

// ViscosityFromBase converts v from mm²/s to u, multiplying by the density
// for dynamic units.
func ViscosityFromBase(v mathx.Decimal, u Viscosity, density mathx.Decimal, densityUnit Density) mathx.Decimal {
	switch u {
	case SquareMillimetersPerSecond, Centistokes:
		return v
	case Centipoise, MillipascalSeconds:
		return v.Mul(DensityToBase(density, densityUnit))
	default:
		return mathx.NaNValue()
	}
}

// ConvertFlowrate converts v between two flow rate units
func ConvertFlowrate(v mathx.Decimal, from, to Flowrate) mathx.Decimal {
	if from == to {
		return v
	}
	return FlowrateFromBase(FlowrateToBase(v, from), to)
}

// ConvertHead converts v between two head units
func ConvertHead(v mathx.Decimal, from, to Head) mathx.Decimal {
	if from == to {
		return v
	}
	return HeadFromBase(HeadToBase(v, from), to)
}

// ConvertDensity converts v between two density units
func ConvertDensity(v mathx.Decimal, from, to Density) mathx.Decimal {
	if from == to {
		return v
	}
	return DensityFromBase(DensityToBase(v, from), to)
}

// ConvertViscosity converts v between two viscosity units using the fluid
// density for dynamic units.
func ConvertViscosity(v mathx.Decimal, from, to Viscosity, density mathx.Decimal, densityUnit Density) mathx.Decimal {
	if from == to {
		return v
	}
	return ViscosityFromBase(ViscosityToBase(v, from, density, densityUnit), to, density, densityUnit)
}
