package bendprog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/piwi3910/CorruCalc/internal/model"
)

// ParseProgram reads the bend blocks of a program written with profile p back
// into bend steps. Comments and start/end codes are skipped.
func ParseProgram(code string, p Profile) []model.BendStep {
	blockRe := regexp.MustCompile(fmt.Sprintf(`^%s(\d+)\s+%s(-?\d+\.?\d*)\s+%s(-?\d+\.?\d*)\s+%s(\S+)$`,
		regexp.QuoteMeta(p.BlockPrefix), regexp.QuoteMeta(p.PositionWord),
		regexp.QuoteMeta(p.AngleWord), regexp.QuoteMeta(p.DirectionWord)))

	var steps []model.BendStep
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(stripComment(line, p))
		if line == "" {
			continue
		}

		m := blockRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		seq, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		pos, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		angle, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			continue
		}

		dir := model.BendUp
		if m[4] == p.DownDirection {
			dir = model.BendDown
		}
		steps = append(steps, model.BendStep{
			Sequence:  seq,
			Module:    (seq-1)/model.BendsPerModule + 1,
			Position:  pos,
			Angle:     angle,
			Direction: dir,
		})
	}
	return steps
}

// stripComment removes a trailing or parenthesised comment from line.
func stripComment(line string, p Profile) string {
	idx := strings.Index(line, p.CommentPrefix)
	if idx < 0 {
		return line
	}
	if p.CommentSuffix == "" {
		return line[:idx]
	}
	if end := strings.Index(line[idx:], p.CommentSuffix); end >= 0 {
		return line[:idx] + line[idx+end+len(p.CommentSuffix):]
	}
	return line[:idx]
}
