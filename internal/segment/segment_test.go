package segment

import (
	"testing"
)

func segmentsEqual(a, b []Segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseSilencesPairsMarkers(t *testing.T) {
	diagnostic := `
[silencedetect @ 0x5555] silence_start: 2.01
[silencedetect @ 0x5555] silence_end: 3.5 | silence_duration: 1.49
[silencedetect @ 0x5555] silence_start: 7.25
[silencedetect @ 0x5555] silence_end: 8 | silence_duration: 0.75
size=N/A time=00:00:10.00 bitrate=N/A speed= 312x
`
	silences := parseSilences(diagnostic, 10)
	want := []silenceInterval{{2.01, 3.5}, {7.25, 8}}
	if len(silences) != len(want) {
		t.Fatalf("expected %d intervals, got %d", len(want), len(silences))
	}
	for i := range want {
		if silences[i] != want[i] {
			t.Fatalf("interval %d: got %+v want %+v", i, silences[i], want[i])
		}
	}
}

func TestParseSilencesClosesTrailingStart(t *testing.T) {
	diagnostic := `
silence_start: 1.0
silence_end: 2.0 | silence_duration: 1.0
silence_start: 8.5
`
	silences := parseSilences(diagnostic, 10)
	if len(silences) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(silences))
	}
	if silences[1] != (silenceInterval{8.5, 10}) {
		t.Fatalf("trailing interval not closed at total: %+v", silences[1])
	}
}

func TestParseSilencesIgnoresMalformedLines(t *testing.T) {
	diagnostic := `
silence_start: not-a-number
silence_end: 2.0
silence_start: 4.0
silence_end: 5.0
`
	// The orphaned silence_end has no matching start and is dropped.
	silences := parseSilences(diagnostic, 10)
	if len(silences) != 1 || silences[0] != (silenceInterval{4, 5}) {
		t.Fatalf("unexpected intervals: %+v", silences)
	}
}

func TestInvertSilencesExample(t *testing.T) {
	speech := invertSilences([]silenceInterval{{2, 3}}, 10)
	want := []Segment{{0, 2}, {3, 10}}
	if !segmentsEqual(speech, want) {
		t.Fatalf("got %+v want %+v", speech, want)
	}
}

func TestInvertSilencesNoSilenceIsAllSpeech(t *testing.T) {
	speech := invertSilences(nil, 12.5)
	if !segmentsEqual(speech, []Segment{{0, 12.5}}) {
		t.Fatalf("expected whole clip as speech, got %+v", speech)
	}
}

func TestInvertSilencesDropsZeroLengthGaps(t *testing.T) {
	// Silence starts at zero and another run ends exactly at total: no
	// zero-length speech segments may be emitted at either boundary.
	speech := invertSilences([]silenceInterval{{0, 4}, {6, 10}}, 10)
	if !segmentsEqual(speech, []Segment{{4, 6}}) {
		t.Fatalf("got %+v", speech)
	}
}

func TestInvertSilencesZeroDuration(t *testing.T) {
	if speech := invertSilences(nil, 0); speech != nil {
		t.Fatalf("expected no segments for zero duration, got %+v", speech)
	}
}

func TestMergeSegmentsThreshold(t *testing.T) {
	segments := []Segment{{0, 1}, {1.1, 2}}

	merged := mergeSegments(segments, 0.2)
	if !segmentsEqual(merged, []Segment{{0, 2}}) {
		t.Fatalf("expected merge below threshold, got %+v", merged)
	}

	kept := mergeSegments(segments, 0.05)
	if !segmentsEqual(kept, segments) {
		t.Fatalf("expected segments kept above threshold, got %+v", kept)
	}
}

func TestMergeSegmentsChains(t *testing.T) {
	segments := []Segment{{0, 1}, {1.05, 2}, {2.1, 3}, {5, 6}}
	merged := mergeSegments(segments, 0.2)
	want := []Segment{{0, 3}, {5, 6}}
	if !segmentsEqual(merged, want) {
		t.Fatalf("got %+v want %+v", merged, want)
	}
}
