// Package ffmpeg wraps the external rendering/transcoding engine. The same
// binary serves three roles: the analysis transcode feeding speech detection,
// the silencedetect diagnostic pass, and the single render invocation that
// produces the final mix.
package ffmpeg
