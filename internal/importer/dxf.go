package importer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// LeftoverLayer is the DXF layer holding the leftover partial slant. Every
// other layer is read as profile.
const LeftoverLayer = "LEFTOVER"

// chainTolerance is the largest gap (mm) between segment ends that still
// counts as connected.
const chainTolerance = 0.01

// segment is a line between two profile points, used for chaining
// disconnected LINE entities into polylines.
type segment struct {
	start model.Point
	end   model.Point
}

// ProfileImport is a corrugation profile read back from a drawing.
type ProfileImport struct {
	Profile  model.Polyline
	Leftover model.Polyline
	Errors   []string
	Warnings []string
}

// ImportDXFProfile reads a profile drawing. LINE and LWPOLYLINE entities are
// chained into one polyline per layer group; drawing Y is read as height.
func ImportDXFProfile(path string) ProfileImport {
	result := ProfileImport{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var profileSegs, leftoverSegs []segment
	skipped := 0
	for _, ent := range entities {
		var segs []segment
		switch e := ent.(type) {
		case *entity.Line:
			segs = []segment{{
				start: model.Point{X: e.Start[0], Z: e.Start[1]},
				end:   model.Point{X: e.End[0], Z: e.End[1]},
			}}
		case *entity.LwPolyline:
			segs = lwPolylineSegments(e)
		default:
			skipped++
			continue
		}

		if onLayer(ent, LeftoverLayer) {
			leftoverSegs = append(leftoverSegs, segs...)
		} else {
			profileSegs = append(profileSegs, segs...)
		}
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}

	var pieces int
	result.Profile, pieces = chainSegments(profileSegs, chainTolerance)
	if pieces > 1 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Profile has %d disconnected pieces, kept the longest", pieces))
	}
	result.Leftover, _ = chainSegments(leftoverSegs, chainTolerance)

	if len(result.Profile) == 0 && len(result.Leftover) == 0 {
		result.Errors = append(result.Errors, "No profile lines found in DXF file")
	}
	return result
}

func onLayer(ent entity.Entity, name string) bool {
	layer := ent.Layer()
	return layer != nil && strings.EqualFold(layer.Name(), name)
}

// lwPolylineSegments splits a LWPOLYLINE into straight segments. Bulges are
// ignored since profile drawings have sharp bends.
func lwPolylineSegments(lw *entity.LwPolyline) []segment {
	if len(lw.Vertices) < 2 {
		return nil
	}
	segs := make([]segment, 0, len(lw.Vertices)-1)
	for i := 1; i < len(lw.Vertices); i++ {
		a, b := lw.Vertices[i-1], lw.Vertices[i]
		segs = append(segs, segment{
			start: model.Point{X: a[0], Z: a[1]},
			end:   model.Point{X: b[0], Z: b[1]},
		})
	}
	return segs
}

// chainSegments connects segments into open polylines, starting each chain
// from the leftmost free end. It returns the longest chain and the number of
// chains found.
func chainSegments(segs []segment, tolerance float64) (model.Polyline, int) {
	// Zero-length segments carry no geometry
	kept := make([]segment, 0, len(segs))
	for _, s := range segs {
		if !pointsClose(s.start, s.end, tolerance) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return nil, 0
	}

	// Orient every segment left to right so chains grow along X
	for i, s := range kept {
		if s.end.X < s.start.X {
			kept[i] = segment{start: s.end, end: s.start}
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].start.X < kept[j].start.X
	})

	used := make([]bool, len(kept))
	var chains []model.Polyline

	for startIdx := range kept {
		if used[startIdx] {
			continue
		}
		chain := model.Polyline{kept[startIdx].start, kept[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]
			for i, seg := range kept {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}
		chains = append(chains, chain)
	}

	longest := chains[0]
	for _, c := range chains[1:] {
		if c.Length() > longest.Length() {
			longest = c
		}
	}
	return longest, len(chains)
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Z-b.Z) <= tolerance
}

// ProfileMeasure summarizes the geometry of an imported profile.
type ProfileMeasure struct {
	DevelopedLength float64 `json:"developed_length"` // Centerline length of the profile (mm)
	Span            float64 `json:"span"`             // Horizontal extent (mm)
	PeakHeight      float64 `json:"peak_height"`      // Highest point (mm)
	Bends           int     `json:"bends"`            // Vertices where the direction changes
}

// Measure reports the developed length, span, height and bend count of the
// imported profile.
func (pi ProfileImport) Measure() ProfileMeasure {
	pl := pi.Profile
	m := ProfileMeasure{DevelopedLength: pl.Length()}
	if len(pl) == 0 {
		return m
	}

	minX := pl[0].X
	for _, p := range pl {
		minX = math.Min(minX, p.X)
		m.PeakHeight = math.Max(m.PeakHeight, p.Z)
	}
	m.Span = pl.MaxX() - minX

	for i := 1; i+1 < len(pl); i++ {
		ax, az := pl[i].X-pl[i-1].X, pl[i].Z-pl[i-1].Z
		bx, bz := pl[i+1].X-pl[i].X, pl[i+1].Z-pl[i].Z
		if math.Abs(ax*bz-az*bx) > 1e-6*math.Hypot(ax, az)*math.Hypot(bx, bz) {
			m.Bends++
		}
	}
	return m
}
