package segment

// Segment is a half-open span of narration speech in seconds. Lists of
// segments are always sorted ascending and non-overlapping.
type Segment struct {
	Start float64
	End   float64
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// silenceInterval is the segmenter-internal inverse of a Segment, parsed from
// the detector's diagnostic stream. It never leaves this package.
type silenceInterval struct {
	start float64
	end   float64
}

// invertSilences converts detected silence into speech segments over [0, total].
// No silence means the whole clip is speech. Zero-length gaps are dropped.
func invertSilences(silences []silenceInterval, total float64) []Segment {
	if total <= 0 {
		return nil
	}
	if len(silences) == 0 {
		return []Segment{{Start: 0, End: total}}
	}

	var segments []Segment
	cursor := 0.0
	for _, silence := range silences {
		if silence.start > cursor {
			segments = append(segments, Segment{Start: cursor, End: silence.start})
		}
		if silence.end > cursor {
			cursor = silence.end
		}
	}
	if cursor < total {
		segments = append(segments, Segment{Start: cursor, End: total})
	}
	return segments
}

// mergeSegments extends a segment over its successor when the pause between
// them is shorter than gap, avoiding rapid duck/un-duck flapping.
func mergeSegments(segments []Segment, gap float64) []Segment {
	if len(segments) < 2 {
		return segments
	}
	merged := make([]Segment, 0, len(segments))
	merged = append(merged, segments[0])
	for _, seg := range segments[1:] {
		last := &merged[len(merged)-1]
		if seg.Start-last.End < gap {
			if seg.End > last.End {
				last.End = seg.End
			}
			continue
		}
		merged = append(merged, seg)
	}
	return merged
}
