package model

// BendsPerModule is the number of folds in one complete module:
// flat to slant up, slant up to slant down, slant down to flat.
const BendsPerModule = 3

// EstimateCost counts the bends needed to form moduleCount complete modules
// and prices them at costPerBend.
//
// Leftover bends are reported as 0 until the pricing of a partial slant in
// the leftover is decided (see the TODO below).
func EstimateCost(moduleCount int, leftover Polyline, costPerBend float64) CostResult {
	if moduleCount < 0 {
		moduleCount = 0
	}
	completeModuleBends := moduleCount * BendsPerModule

	// TODO: decide with estimating whether a partial slant in the leftover
	// should be billed as one bend; until then it contributes nothing.
	leftoverBends := 0

	totalBends := completeModuleBends + leftoverBends
	return CostResult{
		TotalBends:          totalBends,
		TotalCost:           float64(totalBends) * costPerBend,
		CompleteModuleBends: completeModuleBends,
		LeftoverBends:       leftoverBends,
	}
}
