package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a profile coordinate in mm: X runs along the sheet, Z is the height.
type Point struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Polyline is an ordered sequence of profile points.
type Polyline []Point

// Xs returns the horizontal coordinates of the polyline.
func (pl Polyline) Xs() []float64 {
	xs := make([]float64, len(pl))
	for i, p := range pl {
		xs[i] = p.X
	}
	return xs
}

// Zs returns the heights of the polyline.
func (pl Polyline) Zs() []float64 {
	zs := make([]float64, len(pl))
	for i, p := range pl {
		zs[i] = p.Z
	}
	return zs
}

// Length returns the developed (centerline) length of the polyline.
func (pl Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(pl); i++ {
		a := r2.Vec{X: pl[i-1].X, Y: pl[i-1].Z}
		b := r2.Vec{X: pl[i].X, Y: pl[i].Z}
		total += r2.Norm(r2.Sub(b, a))
	}
	return total
}

// MaxX returns the largest X coordinate, or 0 for an empty polyline.
func (pl Polyline) MaxX() float64 {
	var max float64
	for _, p := range pl {
		if p.X > max {
			max = p.X
		}
	}
	return max
}

// Validation errors returned by Params.Validate.
var (
	ErrInvalidAngle         = errors.New("fold angle must be strictly between 0 and 90 degrees")
	ErrNonPositiveDimension = errors.New("dimension must be positive")
	ErrInvalidCost          = errors.New("cost per bend must not be negative")
	ErrDegenerateSlant      = errors.New("slant length rounds to zero")
	ErrTooManyModules       = fmt.Errorf("profile would need more than %d modules", MaxModules)
)

// Params holds the inputs of one corrugation calculation.
type Params struct {
	FlatWidth   float64 `json:"flat_width"`    // A: flat bottom width (mm)
	PeakHeight  float64 `json:"peak_height"`   // D: corrugation height (mm)
	FoldAngle   float64 `json:"fold_angle"`    // Slant angle from horizontal (degrees)
	TotalLength float64 `json:"total_length"`  // Available sheet length (mm)
	CostPerBend float64 `json:"cost_per_bend"` // Price of one bending operation
}

// DefaultParams returns the standard roof profile: 90/60/45 on a 2440 mm sheet at 50 per bend.
func DefaultParams() Params {
	return Params{
		FlatWidth:   90,
		PeakHeight:  60,
		FoldAngle:   45,
		TotalLength: 2440,
		CostPerBend: 50,
	}
}

// Validate checks that the parameters describe a buildable profile.
func (p Params) Validate() error {
	if !(p.FoldAngle > 0 && p.FoldAngle < 90) {
		return fmt.Errorf("fold angle %.2f: %w", p.FoldAngle, ErrInvalidAngle)
	}
	dims := []struct {
		name  string
		value float64
	}{
		{"flat width", p.FlatWidth},
		{"peak height", p.PeakHeight},
		{"total length", p.TotalLength},
	}
	for _, d := range dims {
		if !(d.value > 0) || math.IsInf(d.value, 0) {
			return fmt.Errorf("%s %.2f: %w", d.name, d.value, ErrNonPositiveDimension)
		}
	}
	if p.CostPerBend < 0 || math.IsNaN(p.CostPerBend) {
		return fmt.Errorf("cost per bend %.2f: %w", p.CostPerBend, ErrInvalidCost)
	}

	_, slant, _, _ := slantGeometry(p.PeakHeight, p.FoldAngle)
	if !(slant > 0) {
		return fmt.Errorf("peak height %.4f at %.2f deg: %w", p.PeakHeight, p.FoldAngle, ErrDegenerateSlant)
	}
	if modules := p.TotalLength / (p.FlatWidth + 2*slant); modules > MaxModules {
		return fmt.Errorf("total length %.2f fits %.0f modules: %w", p.TotalLength, modules, ErrTooManyModules)
	}
	return nil
}

// Profile runs the profile generator for these parameters.
func (p Params) Profile() ProfileResult {
	return GenerateProfile(p.FlatWidth, p.PeakHeight, p.FoldAngle, p.TotalLength)
}

// ProfileResult holds the fitted corrugation layout.
type ProfileResult struct {
	Profile        Polyline `json:"profile"`         // Main corrugation centerline
	Leftover       Polyline `json:"leftover"`        // Partial slant formed by the scrap (0-2 points)
	ModuleCount    int      `json:"module_count"`    // Complete modules that fit
	ModuleLength   float64  `json:"module_length"`   // A + 2*slant (mm)
	HorizontalRun  float64  `json:"horizontal_run"`  // L, horizontal projection of one slant (mm)
	SlantLength    float64  `json:"slant_length"`    // Hypotenuse of one slant (mm)
	UsedLength     float64  `json:"used_length"`     // Material consumed incl. closing flat (mm)
	LeftoverLength float64  `json:"leftover_length"` // TotalLength - UsedLength (mm)
}

// CostResult holds the bend count and the resulting cost.
type CostResult struct {
	TotalBends          int     `json:"total_bends"`
	TotalCost           float64 `json:"total_cost"`
	CompleteModuleBends int     `json:"complete_module_bends"`
	LeftoverBends       int     `json:"leftover_bends"`
}
