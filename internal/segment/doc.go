// Package segment detects where speech occurs in a narration track. It drives
// the external silence detector over an analysis-only downmix, parses the
// diagnostic markers into silence intervals, and inverts them into merged
// speech segments for the ducking envelope.
package segment
