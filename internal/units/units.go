// Package units defines the physical units accepted by the calculator and
// converts values into the base units the nomograph is drawn in.
package units

import (
	"strings"

	"github.com/msto63/viscocorrect/foundation/core/errors"
)

// Flowrate is a volumetric flow rate unit. The zero value is the base unit.
type Flowrate uint8

const (
	CubicMetersPerHour Flowrate = iota
	LitersPerMinute
	GallonsPerMinute
)

// Head is a pump head unit. The zero value is the base unit.
type Head uint8

const (
	Meters Head = iota
	Feet
)

// Viscosity is a viscosity unit. Kinematic units are numerically identical;
// dynamic units need the fluid density for conversion.
type Viscosity uint8

const (
	SquareMillimetersPerSecond Viscosity = iota
	Centistokes
	Centipoise
	MillipascalSeconds
)

// Density is a fluid density unit. The zero value is the base unit.
type Density uint8

const (
	GramsPerLiter Density = iota
	KilogramsPerCubicMeter
)

var flowrateSymbols = [...]string{"m³/h", "L/min", "gpm"}
var headSymbols = [...]string{"m", "ft"}
var viscositySymbols = [...]string{"mm²/s", "cSt", "cP", "mPa·s"}
var densitySymbols = [...]string{"g/L", "kg/m³"}

var flowrateNames = map[string]Flowrate{
	"m³/h": CubicMetersPerHour, "m3/h": CubicMetersPerHour, "cmh": CubicMetersPerHour,
	"l/min": LitersPerMinute, "lpm": LitersPerMinute,
	"gpm": GallonsPerMinute, "usgpm": GallonsPerMinute, "gal/min": GallonsPerMinute,
}

var headNames = map[string]Head{
	"m": Meters, "meter": Meters, "meters": Meters,
	"ft": Feet, "feet": Feet, "foot": Feet,
}

var viscosityNames = map[string]Viscosity{
	"mm²/s": SquareMillimetersPerSecond, "mm2/s": SquareMillimetersPerSecond,
	"cst": Centistokes,
	"cp": Centipoise,
	"mpa·s": MillipascalSeconds, "mpa*s": MillipascalSeconds, "mpas": MillipascalSeconds, "mpa.s": MillipascalSeconds,
}

var densityNames = map[string]Density{
	"g/l": GramsPerLiter,
	"kg/m³": KilogramsPerCubicMeter, "kg/m3": KilogramsPerCubicMeter,
}

func (u Flowrate) String() string {
	if int(u) < len(flowrateSymbols) {
		return flowrateSymbols[u]
	}
	return "Flowrate(?)"
}

func (u Head) String() string {
	if int(u) < len(headSymbols) {
		return headSymbols[u]
	}
	return "Head(?)"
}

func (u Viscosity) String() string {
	if int(u) < len(viscositySymbols) {
		return viscositySymbols[u]
	}
	return "Viscosity(?)"
}

func (u Density) String() string {
	if int(u) < len(densitySymbols) {
		return densitySymbols[u]
	}
	return "Density(?)"
}

// IsDynamic reports whether converting u needs the fluid density
func (u Viscosity) IsDynamic() bool {
	return u == Centipoise || u == MillipascalSeconds
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseFlowrate accepts a unit symbol such as "m3/h", "L/min" or "gpm"
func ParseFlowrate(s string) (Flowrate, error) {
	if u, ok := flowrateNames[normalizeName(s)]; ok {
		return u, nil
	}
	return 0, errors.UnknownUnit("flowrate", s, flowrateSymbols[:])
}

// ParseHead accepts "m" or "ft"
func ParseHead(s string) (Head, error) {
	if u, ok := headNames[normalizeName(s)]; ok {
		return u, nil
	}
	return 0, errors.UnknownUnit("head", s, headSymbols[:])
}

// ParseViscosity accepts "mm2/s", "cSt", "cP" or "mPas"
func ParseViscosity(s string) (Viscosity, error) {
	if u, ok := viscosityNames[normalizeName(s)]; ok {
		return u, nil
	}
	return 0, errors.UnknownUnit("viscosity", s, viscositySymbols[:])
}

// ParseDensity accepts "g/L" or "kg/m3"
func ParseDensity(s string) (Density, error) {
	if u, ok := densityNames[normalizeName(s)]; ok {
		return u, nil
	}
	return 0, errors.UnknownUnit("density", s, densitySymbols[:])
}

// Units bundles the unit of each calculator input
type Units struct {
	Flowrate  Flowrate  `json:"flowrate" toml:"flowrate" yaml:"flowrate"`
	Head      Head      `json:"head" toml:"head" yaml:"head"`
	Viscosity Viscosity `json:"viscosity" toml:"viscosity" yaml:"viscosity"`
	Density   Density   `json:"density" toml:"density" yaml:"density"`
}

// Base returns the base units m³/h, m, mm²/s and g/L
func Base() Units {
	return Units{}
}

// IsBase reports whether every input is already in its base unit
func (u Units) IsBase() bool {
	return u == Units{}
}

func (u Flowrate) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *Flowrate) UnmarshalText(b []byte) error {
	v, err := ParseFlowrate(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (u Head) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *Head) UnmarshalText(b []byte) error {
	v, err := ParseHead(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (u Viscosity) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *Viscosity) UnmarshalText(b []byte) error {
	v, err := ParseViscosity(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

func (u Density) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *Density) UnmarshalText(b []byte) error {
	v, err := ParseDensity(string(b))
	if err != nil {
		return err
	}
	*u = v
	return nil
}
