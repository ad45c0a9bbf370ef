package model

// CrossSectionView describes one module drawn on its own, framed by a flat
// run on each side, with the positions of its three bends.
type CrossSectionView struct {
	Outline    Polyline `json:"outline"`
	BendPoints Polyline `json:"bend_points"`
	PeakToPeak float64  `json:"peak_to_peak"`
}

// CrossSection returns the cross-section of a single module with flat width a,
// peak height d and horizontal run l.
func CrossSection(a, d, l float64) CrossSectionView {
	return CrossSectionView{
		Outline: Polyline{
			{X: 0, Z: 0},
			{X: a, Z: 0},
			{X: a + l, Z: d},
			{X: a + 2*l, Z: 0},
			{X: a + 2*l + a, Z: 0},
		},
		BendPoints: Polyline{
			{X: a, Z: 0},
			{X: a + l, Z: d},
			{X: a + 2*l, Z: 0},
		},
		PeakToPeak: a + 2*l,
	}
}
