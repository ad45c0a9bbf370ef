package model

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// lengthPrecision is the number of decimals the slant geometry is rounded to
// before it is used in any further length arithmetic.
const lengthPrecision = 2

// MaxModules is the most modules one profile may hold. Inputs that would fit
// more are treated as degenerate: they yield zero modules, and
// Params.Validate rejects them with ErrTooManyModules.
const MaxModules = 10000

// slantGeometry returns the rounded horizontal run and slant length of one
// slant, plus the sine and cosine of the fold angle.
func slantGeometry(peakHeight, foldAngleDegrees float64) (horizontalRun, slantLength, sin, cos float64) {
	radian := foldAngleDegrees * (math.Pi / 180.0)
	sin, cos = math.Sincos(radian)
	horizontalRun = scalar.RoundEven(peakHeight/math.Tan(radian), lengthPrecision)
	slantLength = scalar.RoundEven(peakHeight/sin, lengthPrecision)
	return horizontalRun, slantLength, sin, cos
}

// GenerateProfile fits as many complete corrugation modules as possible into
// totalLength and returns the resulting centerline.
//
// Each module is a flat run of flatWidth followed by a slant up to peakHeight
// and a slant back down, both at foldAngleDegrees from horizontal. When at
// least one module fits, the profile is closed by one more flat run, which
// consumes material and may push UsedLength past totalLength. Whatever
// material remains is described by the Leftover polyline; it never counts as
// a module.
//
// Callers are expected to validate inputs with Params.Validate. Degenerate
// geometry, including anything that would fit more than MaxModules modules,
// yields zero modules instead of a panic.
func GenerateProfile(flatWidth, peakHeight, foldAngleDegrees, totalLength float64) ProfileResult {
	horizontalRun, slantLength, sin, cos := slantGeometry(peakHeight, foldAngleDegrees)

	moduleLength := flatWidth + 2*slantLength

	moduleCount := 0
	if moduleLength > 0 && !math.IsInf(moduleLength, 0) && !math.IsNaN(moduleLength) {
		if q := floorDiv(totalLength, moduleLength); q > 0 && q <= MaxModules {
			moduleCount = int(q)
		}
	}

	usedLength := 0.0
	if moduleCount > 0 {
		usedLength = float64(moduleCount) * moduleLength
	}
	leftover := totalLength - usedLength

	profile := make(Polyline, 0, 4*moduleCount+2)
	x := 0.0

	for i := 0; i < moduleCount; i++ {
		// Flat bottom
		profile = append(profile, Point{X: x, Z: 0}, Point{X: x + flatWidth, Z: 0})
		x += flatWidth

		// Up to the peak
		profile = append(profile, Point{X: x + horizontalRun, Z: peakHeight})
		x += horizontalRun

		// Down to the valley
		profile = append(profile, Point{X: x + horizontalRun, Z: 0})
		x += horizontalRun
	}

	// Close with a final flat run
	if moduleCount > 0 {
		profile = append(profile, Point{X: x, Z: 0}, Point{X: x + flatWidth, Z: 0})
		x += flatWidth
		usedLength += flatWidth
		leftover = totalLength - usedLength
	}

	return ProfileResult{
		Profile:        profile,
		Leftover:       leftoverSegment(leftover, x, peakHeight, horizontalRun, slantLength, sin, cos),
		ModuleCount:    moduleCount,
		ModuleLength:   moduleLength,
		HorizontalRun:  horizontalRun,
		SlantLength:    slantLength,
		UsedLength:     usedLength,
		LeftoverLength: leftover,
	}
}

// leftoverSegment describes how much of one more slant the remaining material
// can form, starting at cursor x. It returns at most two points.
func leftoverSegment(remaining, x, peakHeight, horizontalRun, slantLength, sin, cos float64) Polyline {
	if !(remaining > 0) {
		return Polyline{}
	}

	if remaining < slantLength {
		// Partial slant up only
		return Polyline{{X: x + remaining*cos, Z: remaining * sin}}
	}

	segment := Polyline{{X: x + horizontalRun, Z: peakHeight}}
	x += horizontalRun
	remaining -= slantLength

	if remaining > 0 {
		partialSlant := math.Min(remaining, slantLength)
		partialHeight := peakHeight - partialSlant*sin
		segment = append(segment, Point{X: x + partialSlant*cos, Z: math.Max(0, partialHeight)})
	}
	return segment
}

// floorDiv returns the floored quotient a/b computed from the exact
// remainder, so a quotient that rounds up to an integer is not over-counted.
func floorDiv(a, b float64) float64 {
	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 && (b < 0) != (mod < 0) {
		div -= 1.0
	}
	if div == 0 {
		return math.Copysign(0, a/b)
	}
	floored := math.Floor(div)
	if div-floored > 0.5 {
		floored += 1.0
	}
	return floored
}
