// Package ducking synthesizes the time-varying gain envelope that lowers
// music under narration and restores it during silence.
package ducking
