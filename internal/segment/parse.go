package segment

import (
	"bufio"
	"strconv"
	"strings"
)

const (
	markerSilenceStart = "silence_start:"
	markerSilenceEnd   = "silence_end:"
)

// parseSilences extracts sequential silence_start/silence_end markers from the
// detector's diagnostic stream. A trailing unmatched silence_start (the audio
// ends while still silent) yields one final interval closed at total.
func parseSilences(diagnostic string, total float64) []silenceInterval {
	var (
		intervals []silenceInterval
		open      *float64
	)

	scanner := bufio.NewScanner(strings.NewReader(diagnostic))
	for scanner.Scan() {
		line := scanner.Text()
		if value, ok := markerValue(line, markerSilenceStart); ok {
			v := value
			open = &v
			continue
		}
		if value, ok := markerValue(line, markerSilenceEnd); ok && open != nil {
			intervals = append(intervals, silenceInterval{start: *open, end: value})
			open = nil
		}
	}

	if open != nil {
		intervals = append(intervals, silenceInterval{start: *open, end: total})
	}
	return intervals
}

func markerValue(line, marker string) (float64, bool) {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return 0, false
	}
	fields := strings.Fields(line[idx+len(marker):])
	if len(fields) == 0 {
		return 0, false
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
