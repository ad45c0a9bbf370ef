package bendprog

import (
	"fmt"
	"math"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// DefaultMinFlange is the shortest flange (mm) a typical V-die can grip.
const DefaultMinFlange = 10.0

// FlangeConflict is a bend that sits too close to the previous bend or to a
// sheet edge for the press brake to form it.
type FlangeConflict struct {
	Sequence int     `json:"sequence"` // Bend that cannot be formed
	Position float64 `json:"position"` // Bend position on the blank (mm)
	Flange   float64 `json:"flange"`   // Available flange length (mm)
	Edge     bool    `json:"edge"`     // Flange is measured to a sheet edge, not a bend
}

// CheckFlangeClearance reports every bend whose flange to the neighbouring
// bend or sheet edge is shorter than minFlange. A non-positive minFlange
// disables the check.
func CheckFlangeClearance(steps []model.BendStep, sheetLength, minFlange float64) []FlangeConflict {
	if minFlange <= 0 || len(steps) == 0 {
		return nil
	}

	var conflicts []FlangeConflict
	prev := 0.0
	for i, s := range steps {
		flange := s.Position - prev
		if flange < minFlange {
			conflicts = append(conflicts, FlangeConflict{
				Sequence: s.Sequence,
				Position: s.Position,
				Flange:   flange,
				Edge:     i == 0,
			})
		}
		prev = s.Position
	}

	last := steps[len(steps)-1]
	if tail := sheetLength - last.Position; tail < minFlange && !hasConflict(conflicts, last.Sequence) {
		conflicts = append(conflicts, FlangeConflict{
			Sequence: last.Sequence,
			Position: last.Position,
			Flange:   math.Max(0, tail),
			Edge:     true,
		})
	}
	return conflicts
}

func hasConflict(conflicts []FlangeConflict, seq int) bool {
	for _, c := range conflicts {
		if c.Sequence == seq {
			return true
		}
	}
	return false
}

// FormatClearanceWarnings produces human-readable warning messages from conflicts.
func FormatClearanceWarnings(conflicts []FlangeConflict, minFlange float64) []string {
	var warnings []string
	for _, c := range conflicts {
		to := "previous bend"
		if c.Edge {
			to = "sheet edge"
		}
		warnings = append(warnings, fmt.Sprintf(
			"Bend %d at %.2f mm: flange to %s is %.2f mm, below the %.2f mm minimum",
			c.Sequence, c.Position, to, c.Flange, minFlange))
	}
	return warnings
}
