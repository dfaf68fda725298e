// Package ffprobe wraps ffprobe JSON inspection of audio containers.
package ffprobe
