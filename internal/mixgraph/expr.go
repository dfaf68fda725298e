package mixgraph

import (
	"fmt"
	"math"
	"strconv"

	"mixdown/internal/ducking"
)

// gainEpsilon is the linear-gain difference below which a pair of envelope
// points is rendered as a constant branch instead of a ramp.
const gainEpsilon = 0.001

// defaultGain is the fallback outside all defined ranges. Full-duration
// envelope coverage means it should never be evaluated.
const defaultGain = 1.0

// DbToLinear converts a dB gain to a linear multiplier.
func DbToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// VolumeExpression synthesizes the piecewise-linear automation formula for an
// envelope. The result is a nested conditional in the engine's expression
// grammar that, evaluated at any t inside the envelope, reproduces linear
// interpolation between the control points.
func VolumeExpression(points []ducking.GainPoint) string {
	switch len(points) {
	case 0:
		return formatGain(defaultGain)
	case 1:
		return formatGain(DbToLinear(points[0].GainDb))
	}

	expr := formatGain(defaultGain)
	for i := len(points) - 2; i >= 0; i-- {
		p0, p1 := points[i], points[i+1]
		v0 := DbToLinear(p0.GainDb)
		v1 := DbToLinear(p1.GainDb)

		var branch string
		if math.Abs(v1-v0) < gainEpsilon {
			branch = formatGain(v0)
		} else {
			slope := (v1 - v0) / (p1.TimeSec - p0.TimeSec)
			op := "+"
			if slope < 0 {
				op = "-"
				slope = -slope
			}
			branch = fmt.Sprintf("%s%s%s*(t-%s)", formatGain(v0), op, formatGain(slope), formatTime(p0.TimeSec))
		}
		expr = fmt.Sprintf("if(between(t,%s,%s),%s,%s)", formatTime(p0.TimeSec), formatTime(p1.TimeSec), branch, expr)
	}
	return expr
}

func formatGain(value float64) string {
	return strconv.FormatFloat(value, 'f', 6, 64)
}

func formatTime(value float64) string {
	return strconv.FormatFloat(value, 'f', 4, 64)
}
