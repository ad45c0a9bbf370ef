package export

import (
	"fmt"
	"io"
	"math"

	"github.com/hschendel/stl"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// ModelOptions sizes the 3D sheet model.
type ModelOptions struct {
	Width     float64 `json:"width"`     // Sheet width across the corrugations (mm)
	Thickness float64 `json:"thickness"` // Material thickness (mm)
}

// DefaultModelOptions is a 1 m wide sheet of 0.5 mm steel.
func DefaultModelOptions() ModelOptions {
	return ModelOptions{Width: 1000, Thickness: 0.5}
}

// ExportSTL writes the formed sheet, profile and leftover slant, as a binary
// STL mesh.
func ExportSTL(path string, est model.Estimate, opts ModelOptions) error {
	solid, err := buildSolid(est, opts)
	if err != nil {
		return err
	}
	if err := solid.WriteFile(path); err != nil {
		return fmt.Errorf("failed to write STL: %w", err)
	}
	return nil
}

// WriteSTL writes the binary STL mesh of est to w.
func WriteSTL(w io.Writer, est model.Estimate, opts ModelOptions) error {
	solid, err := buildSolid(est, opts)
	if err != nil {
		return err
	}
	return solid.WriteAll(w)
}

// sheetPath joins profile and leftover into one polyline without repeated points.
func sheetPath(res model.ProfileResult) model.Polyline {
	var out model.Polyline
	add := func(pl model.Polyline) {
		for _, p := range pl {
			if n := len(out); n > 0 && out[n-1] == p {
				continue
			}
			out = append(out, p)
		}
	}
	add(res.Profile)
	add(leftoverPath(res))
	return out
}

// buildSolid extrudes the sheet path across opts.Width. X runs along the
// sheet, Y across it and Z is height. Thickness is applied vertically.
func buildSolid(est model.Estimate, opts ModelOptions) (*stl.Solid, error) {
	if !(opts.Width > 0) || !(opts.Thickness > 0) {
		return nil, fmt.Errorf("model width and thickness must be positive, got %.2f and %.2f", opts.Width, opts.Thickness)
	}
	path := sheetPath(est.Profile)
	if len(path) < 2 {
		return nil, ErrNothingToExport
	}

	w, t := opts.Width, opts.Thickness
	bottom := func(p model.Point, y float64) stl.Vec3 { return vec(p.X, y, p.Z) }
	top := func(p model.Point, y float64) stl.Vec3 { return vec(p.X, y, p.Z+t) }

	solid := &stl.Solid{Name: "corrucalc"}
	for i := 1; i < len(path); i++ {
		p, q := path[i-1], path[i]
		addQuad(solid, bottom(p, 0), bottom(p, w), bottom(q, w), bottom(q, 0))
		addQuad(solid, top(p, 0), top(q, 0), top(q, w), top(p, w))
		addQuad(solid, bottom(p, 0), bottom(q, 0), top(q, 0), top(p, 0))
		addQuad(solid, bottom(p, w), top(p, w), top(q, w), bottom(q, w))
	}
	first, last := path[0], path[len(path)-1]
	addQuad(solid, bottom(first, 0), top(first, 0), top(first, w), bottom(first, w))
	addQuad(solid, bottom(last, 0), bottom(last, w), top(last, w), top(last, 0))
	return solid, nil
}

func vec(x, y, z float64) stl.Vec3 {
	return stl.Vec3{float32(x), float32(y), float32(z)}
}

// addQuad adds a, b, c, d (counter-clockwise seen from outside) as two triangles.
func addQuad(s *stl.Solid, a, b, c, d stl.Vec3) {
	s.Triangles = append(s.Triangles, triangle(a, b, c), triangle(a, c, d))
}

func triangle(a, b, c stl.Vec3) stl.Triangle {
	return stl.Triangle{
		Normal:   normal(a, b, c),
		Vertices: [3]stl.Vec3{a, b, c},
	}
}

func normal(a, b, c stl.Vec3) stl.Vec3 {
	u := stl.Vec3{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	v := stl.Vec3{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	n := stl.Vec3{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
	l := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
	if l == 0 {
		return stl.Vec3{}
	}
	return stl.Vec3{n[0] / l, n[1] / l, n[2] / l}
}
