package ducking

import (
	"sort"

	"mixdown/internal/segment"
)

// GainPoint is one control point of the automation envelope.
type GainPoint struct {
	TimeSec float64
	GainDb  float64
}

// GenerateEnvelope turns speech segments and a ducking policy into a sorted
// gain curve spanning [0, totalSec]. It is a pure function: identical inputs
// always produce an identical, fully ordered point list.
//
// Same-time collisions (overlapping attack/release windows of adjacent
// segments) keep the minimum gain, so two segments can never produce a loud
// spike between them.
func GenerateEnvelope(segments []segment.Segment, policy Policy, totalSec float64) []GainPoint {
	if totalSec <= 0 {
		return nil
	}
	if len(segments) == 0 {
		return []GainPoint{
			{TimeSec: 0, GainDb: policy.SilenceLevelDb},
			{TimeSec: totalSec, GainDb: policy.SilenceLevelDb},
		}
	}

	attack := policy.Attack.Seconds()
	release := policy.Release.Seconds()

	points := make([]GainPoint, 0, len(segments)*4+2)
	points = append(points, GainPoint{TimeSec: 0, GainDb: policy.SilenceLevelDb})

	for _, seg := range segments {
		attackStart := seg.Start - attack
		if attackStart < 0 {
			attackStart = 0
		}
		releaseEnd := seg.End + release
		if releaseEnd > totalSec {
			releaseEnd = totalSec
		}

		if attackStart > 0 {
			points = append(points, GainPoint{TimeSec: attackStart, GainDb: policy.SilenceLevelDb})
		}
		points = append(points,
			GainPoint{TimeSec: seg.Start, GainDb: policy.SpeechLevelDb},
			GainPoint{TimeSec: seg.End, GainDb: policy.SpeechLevelDb},
			GainPoint{TimeSec: releaseEnd, GainDb: policy.SilenceLevelDb},
		)
	}

	if points[len(points)-1].TimeSec < totalSec {
		points = append(points, GainPoint{TimeSec: totalSec, GainDb: policy.SilenceLevelDb})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].TimeSec < points[j].TimeSec
	})
	return dedupeMinGain(points)
}

// dedupeMinGain collapses points sharing a timestamp, keeping the lowest
// (most ducked) gain.
func dedupeMinGain(points []GainPoint) []GainPoint {
	if len(points) < 2 {
		return points
	}
	deduped := make([]GainPoint, 0, len(points))
	deduped = append(deduped, points[0])
	for _, point := range points[1:] {
		last := &deduped[len(deduped)-1]
		if point.TimeSec == last.TimeSec {
			if point.GainDb < last.GainDb {
				last.GainDb = point.GainDb
			}
			continue
		}
		deduped = append(deduped, point)
	}
	return deduped
}
