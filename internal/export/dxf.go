package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// DXF layer names. The drawing uses X along the sheet and Y as height.
const (
	LayerProfile  = "PROFILE"
	LayerLeftover = "LEFTOVER"
)

// ExportDXF writes the profile and leftover of est as LINE entities on the
// PROFILE and LEFTOVER layers. Coincident points produce no line.
func ExportDXF(path string, est model.Estimate) error {
	if err := checkExportable(est); err != nil {
		return err
	}

	d := dxf.NewDrawing()

	profileColor := color.Blue
	if est.DesignFailed {
		profileColor = color.Red
	}
	if err := drawLayer(d, LayerProfile, profileColor, est.Profile.Profile); err != nil {
		return err
	}
	if err := drawLayer(d, LayerLeftover, color.Yellow, leftoverPath(est.Profile)); err != nil {
		return err
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

func drawLayer(d *drawing.Drawing, name string, cl color.ColorNumber, pl model.Polyline) error {
	if len(pl) < 2 {
		return nil
	}
	if _, err := d.AddLayer(name, cl, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", name, err)
	}
	for i := 1; i < len(pl); i++ {
		a, b := pl[i-1], pl[i]
		if a == b {
			continue
		}
		if _, err := d.Line(a.X, a.Z, 0, b.X, b.Z, 0); err != nil {
			return fmt.Errorf("failed to draw %s segment %d: %w", name, i, err)
		}
	}
	return nil
}
