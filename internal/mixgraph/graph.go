package mixgraph

import (
	"fmt"
	"strings"

	"mixdown/internal/ducking"
	"mixdown/internal/services"
)

// Stem is one scheduled sound effect: a resolved local asset delayed to its
// trigger time and scaled by its trigger volume.
type Stem struct {
	Path    string
	DelayMs int
	Volume  float64
}

// Targets are the loudness-normalization settings applied to the final mix.
type Targets struct {
	IntegratedLUFS float64
	TruePeakDb     float64
	RangeLU        float64
}

// DefaultTargets returns the fixed normalization targets for published mixes.
func DefaultTargets() Targets {
	return Targets{IntegratedLUFS: -16, TruePeakDb: -6, RangeLU: 11}
}

// Request describes everything the compiler needs to assemble a filter graph.
type Request struct {
	VoicePath      string
	MusicPath      string
	Envelope       []ducking.GainPoint
	SpeechDetected bool
	Stems          []Stem
	Loudness       Targets
}

// Graph is the compiled program: ordered engine inputs plus the filter-graph
// text that references them by position.
type Graph struct {
	Inputs         []string
	FilterComplex  string
	OutputLabel    string
	DuckingApplied bool
}

// Compile assembles the full multi-track graph. The voice track always passes
// through unchanged; music gets the automation formula only when speech was
// detected; every stem is delayed and scaled; the sum (or the lone voice
// stream) is loudness-normalized.
func Compile(req Request) (Graph, error) {
	if strings.TrimSpace(req.VoicePath) == "" {
		return Graph{}, services.Wrap(services.ErrValidation, "compiling", "graph", "voice track is required", nil)
	}
	for i, stem := range req.Stems {
		if strings.TrimSpace(stem.Path) == "" {
			return Graph{}, services.Wrap(services.ErrValidation, "compiling", "graph",
				fmt.Sprintf("sfx stem %d has no resolved asset", i), nil)
		}
	}

	inputs := []string{req.VoicePath}
	var (
		chains  []string
		streams []string
	)

	ducked := req.MusicPath != "" && req.SpeechDetected

	if req.MusicPath != "" {
		musicIndex := len(inputs)
		inputs = append(inputs, req.MusicPath)
		if ducked {
			chains = append(chains, fmt.Sprintf("[%d:a]volume='%s':eval=frame[music]",
				musicIndex, VolumeExpression(req.Envelope)))
		} else {
			chains = append(chains, fmt.Sprintf("[%d:a]anull[music]", musicIndex))
		}
		streams = append(streams, "[music]")
	}

	for i, stem := range req.Stems {
		stemIndex := len(inputs)
		inputs = append(inputs, stem.Path)
		label := fmt.Sprintf("[sfx%d]", i)
		chains = append(chains, fmt.Sprintf("[%d:a]adelay=%d|%d,volume=%.3f%s",
			stemIndex, stem.DelayMs, stem.DelayMs, stem.Volume, label))
		streams = append(streams, label)
	}

	loudnorm := fmt.Sprintf("loudnorm=I=%g:TP=%g:LRA=%g",
		req.Loudness.IntegratedLUFS, req.Loudness.TruePeakDb, req.Loudness.RangeLU)

	if len(streams) == 0 {
		// Voice only: normalize it directly.
		chains = append(chains, fmt.Sprintf("[0:a]%s[mix]", loudnorm))
	} else {
		voiceAndRest := append([]string{"[voice]"}, streams...)
		chains = append([]string{"[0:a]anull[voice]"}, chains...)
		chains = append(chains, fmt.Sprintf("%samix=inputs=%d:duration=longest:dropout_transition=2[premix]",
			strings.Join(voiceAndRest, ""), len(voiceAndRest)))
		chains = append(chains, fmt.Sprintf("[premix]%s[mix]", loudnorm))
	}

	return Graph{
		Inputs:         inputs,
		FilterComplex:  strings.Join(chains, ";"),
		OutputLabel:    "[mix]",
		DuckingApplied: ducked,
	}, nil
}
