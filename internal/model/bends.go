package model

// BendDirection is the side the press brake folds the sheet towards.
type BendDirection string

const (
	BendUp   BendDirection = "UP"
	BendDown BendDirection = "DOWN"
)

// BendStep is one fold on the flat blank.
type BendStep struct {
	Sequence  int           `json:"sequence"`  // 1-based order
	Module    int           `json:"module"`    // 1-based module the bend belongs to
	Position  float64       `json:"position"`  // Distance from the sheet start along the flat blank (mm)
	Angle     float64       `json:"angle"`     // Direction change at this bend (degrees)
	Direction BendDirection `json:"direction"` // Fold direction
}

// BendSchedule lists the bends needed to form the complete modules of res,
// measured along the flat (developed) blank. The partial slant in the
// leftover is not scheduled, matching EstimateCost.
func BendSchedule(res ProfileResult, flatWidth, foldAngle float64) []BendStep {
	steps := make([]BendStep, 0, res.ModuleCount*BendsPerModule)
	for i := 0; i < res.ModuleCount; i++ {
		start := float64(i) * res.ModuleLength
		folds := []struct {
			pos   float64
			angle float64
			dir   BendDirection
		}{
			{start + flatWidth, foldAngle, BendUp},
			{start + flatWidth + res.SlantLength, 2 * foldAngle, BendDown},
			{start + flatWidth + 2*res.SlantLength, foldAngle, BendUp},
		}
		for _, f := range folds {
			steps = append(steps, BendStep{
				Sequence:  len(steps) + 1,
				Module:    i + 1,
				Position:  f.pos,
				Angle:     f.angle,
				Direction: f.dir,
			})
		}
	}
	return steps
}
