package mixgraph_test

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"mixdown/internal/ducking"
	"mixdown/internal/mixgraph"
	"mixdown/internal/segment"
)

// evalAutomation interprets the synthesized expression grammar:
// an expression is either a constant or if(between(t,t0,t1),branch,else),
// where a branch is a constant or "v0+slope*(t-t0)" / "v0-slope*(t-t0)".
func evalAutomation(t *testing.T, expr string, tv float64) float64 {
	t.Helper()
	expr = strings.TrimSpace(expr)

	const prefix = "if(between(t,"
	if !strings.HasPrefix(expr, prefix) {
		return parseNum(t, expr)
	}

	rest := expr[len(prefix) : len(expr)-1] // strip prefix and final ')'
	comma := strings.Index(rest, ",")
	t0 := parseNum(t, rest[:comma])
	rest = rest[comma+1:]
	closing := strings.Index(rest, ")")
	t1 := parseNum(t, rest[:closing])
	rest = rest[closing+2:] // skip "),"

	// The branch holds no top-level commas; scan at paren depth 0.
	depth := 0
	split := -1
	for i, r := range rest {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				split = i
			}
		}
		if split >= 0 {
			break
		}
	}
	branch, fallback := rest[:split], rest[split+1:]

	if tv >= t0 && tv <= t1 {
		return evalBranchAt(t, branch, tv)
	}
	return evalAutomation(t, fallback, tv)
}

func evalBranchAt(t *testing.T, branch string, tv float64) float64 {
	t.Helper()
	star := strings.Index(branch, "*(t-")
	if star < 0 {
		return parseNum(t, branch)
	}
	left := branch[:star]
	t0 := parseNum(t, strings.TrimSuffix(branch[star+len("*(t-"):], ")"))

	// left is "<v0>+<slope>" or "<v0>-<slope>"; v0 is always positive.
	opIdx := strings.IndexAny(left[1:], "+-") + 1
	v0 := parseNum(t, left[:opIdx])
	slope := parseNum(t, left[opIdx+1:])
	if left[opIdx] == '-' {
		slope = -slope
	}
	return v0 + slope*(tv-t0)
}

func parseNum(t *testing.T, value string) float64 {
	t.Helper()
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		t.Fatalf("unparseable number %q: %v", value, err)
	}
	return parsed
}

// referenceGain linearly interpolates the envelope the way the compiler must.
func referenceGain(points []ducking.GainPoint, tv float64) float64 {
	for i := 0; i+1 < len(points); i++ {
		p0, p1 := points[i], points[i+1]
		if tv < p0.TimeSec || tv > p1.TimeSec {
			continue
		}
		v0 := mixgraph.DbToLinear(p0.GainDb)
		v1 := mixgraph.DbToLinear(p1.GainDb)
		if math.Abs(v1-v0) < 0.001 {
			return v0
		}
		return v0 + (v1-v0)/(p1.TimeSec-p0.TimeSec)*(tv-p0.TimeSec)
	}
	return 1.0
}

func TestVolumeExpressionEmptyEnvelope(t *testing.T) {
	expr := mixgraph.VolumeExpression(nil)
	if got := evalAutomation(t, expr, 3.2); got != 1.0 {
		t.Fatalf("expected unity gain, got %g", got)
	}
}

func TestVolumeExpressionSinglePoint(t *testing.T) {
	expr := mixgraph.VolumeExpression([]ducking.GainPoint{{TimeSec: 0, GainDb: -6}})
	want := mixgraph.DbToLinear(-6)
	if got := evalAutomation(t, expr, 1); math.Abs(got-want) > 1e-6 {
		t.Fatalf("got %g want %g", got, want)
	}
}

func TestVolumeExpressionTwoPointRamp(t *testing.T) {
	points := []ducking.GainPoint{{TimeSec: 0, GainDb: -12}, {TimeSec: 5, GainDb: -20}}
	expr := mixgraph.VolumeExpression(points)

	v0 := mixgraph.DbToLinear(-12)
	v1 := mixgraph.DbToLinear(-20)
	for _, tc := range []struct{ tv, want float64 }{
		{0, v0},
		{2.5, v0 + (v1-v0)/2},
		{5, v1},
	} {
		got := evalAutomation(t, expr, tc.tv)
		if math.Abs(got-tc.want) > 1e-4 {
			t.Fatalf("t=%g: got %g want %g", tc.tv, got, tc.want)
		}
	}
}

func TestVolumeExpressionConstantBranch(t *testing.T) {
	points := []ducking.GainPoint{{TimeSec: 0, GainDb: -8}, {TimeSec: 10, GainDb: -8}}
	expr := mixgraph.VolumeExpression(points)
	if strings.Contains(expr, "*(t-") {
		t.Fatalf("expected constant branch for flat pair, got %q", expr)
	}
	want := mixgraph.DbToLinear(-8)
	if got := evalAutomation(t, expr, 4); math.Abs(got-want) > 1e-6 {
		t.Fatalf("got %g want %g", got, want)
	}
}

func TestVolumeExpressionFallbackOutsideRange(t *testing.T) {
	points := []ducking.GainPoint{{TimeSec: 1, GainDb: -12}, {TimeSec: 2, GainDb: -20}}
	expr := mixgraph.VolumeExpression(points)
	if got := evalAutomation(t, expr, 9.5); got != 1.0 {
		t.Fatalf("expected fallback gain outside coverage, got %g", got)
	}
}

func TestVolumeExpressionMatchesGeneratedEnvelope(t *testing.T) {
	policy := ducking.Policy{
		SpeechLevelDb:  -18,
		SilenceLevelDb: -8,
		Attack:         300 * time.Millisecond,
		Release:        500 * time.Millisecond,
	}
	segments := []segment.Segment{{Start: 1, End: 3}, {Start: 6, End: 8.5}}
	points := ducking.GenerateEnvelope(segments, policy, 10)
	expr := mixgraph.VolumeExpression(points)

	for tv := 0.0; tv <= 10.0; tv += 0.25 {
		got := evalAutomation(t, expr, tv)
		want := referenceGain(points, tv)
		if math.Abs(got-want) > 1e-3 {
			t.Fatalf("t=%g: expression %g diverges from envelope %g", tv, got, want)
		}
	}
}

func TestDbToLinear(t *testing.T) {
	cases := []struct{ db, want float64 }{
		{0, 1},
		{-6, 0.501187},
		{-20, 0.1},
	}
	for _, tc := range cases {
		if got := mixgraph.DbToLinear(tc.db); math.Abs(got-tc.want) > 1e-5 {
			t.Fatalf("DbToLinear(%g) = %g, want %g", tc.db, got, tc.want)
		}
	}
}

func ExampleVolumeExpression() {
	expr := mixgraph.VolumeExpression([]ducking.GainPoint{
		{TimeSec: 0, GainDb: 0},
		{TimeSec: 2, GainDb: 0},
	})
	fmt.Println(expr)
	// Output: if(between(t,0.0000,2.0000),1.000000,1.000000)
}
