// Package bendprog turns a bend schedule into a press brake program.
package bendprog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// Generator produces a bend program for one estimate.
type Generator struct {
	profile Profile

	// MinFlange is the shortest flange the press brake can form. Shorter
	// flanges are flagged in the program header. Zero disables the check.
	MinFlange float64
}

func New(profileName string) *Generator {
	return &Generator{
		profile:   GetProfile(profileName),
		MinFlange: DefaultMinFlange,
	}
}

// Profile returns the post-processor the generator writes for.
func (g *Generator) Profile() Profile {
	return g.profile
}

// Generate writes the program for the complete modules of est. The leftover
// slant is never bent, so it only appears as a comment.
func (g *Generator) Generate(est model.Estimate) string {
	var b strings.Builder
	steps := model.BendSchedule(est.Profile, est.Params.FlatWidth, est.Params.FoldAngle)

	g.writeHeader(&b, est, len(steps))
	for _, w := range FormatClearanceWarnings(CheckFlangeClearance(steps, est.Params.TotalLength, g.MinFlange), g.MinFlange) {
		b.WriteString(g.comment("WARNING: " + w))
	}

	module := 0
	for _, s := range steps {
		if g.profile.ModuleComments && s.Module != module {
			module = s.Module
			b.WriteString(g.comment(fmt.Sprintf("--- Module %d ---", module)))
		}
		g.writeBend(&b, s)
	}

	if len(est.Profile.Leftover) > 0 {
		b.WriteString(g.comment(fmt.Sprintf("Leftover %.2f mm not formed", est.Profile.LeftoverLength)))
	}

	g.writeFooter(&b, len(steps))
	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder, est model.Estimate, bends int) {
	p := est.Params
	b.WriteString(g.comment("CorruCalc bend program"))
	b.WriteString(g.comment(fmt.Sprintf("Flat %.2f mm, Height %.2f mm, Angle %.1f deg, Sheet %.2f mm",
		p.FlatWidth, p.PeakHeight, p.FoldAngle, p.TotalLength)))
	b.WriteString(g.comment(fmt.Sprintf("Modules: %d, Bends: %d, Cost: %.2f",
		est.Profile.ModuleCount, bends, est.Cost.TotalCost)))
	b.WriteString(g.comment(fmt.Sprintf("Slant %.2f mm, Run %.2f mm, Module %.2f mm",
		est.Profile.SlantLength, est.Profile.HorizontalRun, est.Profile.ModuleLength)))
	if est.DesignFailed {
		b.WriteString(g.comment("WARNING: design exceeds the sheet length"))
	}
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", g.profile.Name)))
	b.WriteString("\n")

	for _, code := range g.profile.StartCode {
		b.WriteString(code + "\n")
	}
	b.WriteString("\n")
}

func (g *Generator) writeBend(b *strings.Builder, s model.BendStep) {
	p := g.profile
	dir := p.UpDirection
	if s.Direction == model.BendDown {
		dir = p.DownDirection
	}
	b.WriteString(fmt.Sprintf("%s%d %s%s %s%s %s%s\n",
		p.BlockPrefix, s.Sequence,
		p.PositionWord, g.format(s.Position),
		p.AngleWord, g.format(s.Angle),
		p.DirectionWord, dir))
}

func (g *Generator) writeFooter(b *strings.Builder, bends int) {
	b.WriteString("\n")
	b.WriteString(g.comment("=== Program complete ==="))
	for _, code := range g.profile.EndCode {
		code = strings.ReplaceAll(code, "[Bends]", strconv.Itoa(bends))
		b.WriteString(code + "\n")
	}
}

func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a number according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	return strconv.FormatFloat(v, 'f', g.profile.DecimalPlaces, 64)
}
