package ffmpeg

import (
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"mixdown/internal/config"
	"mixdown/internal/logging"
	"mixdown/internal/services"
)

// Engine invokes the external ffmpeg/ffprobe binaries for the three passes the
// pipeline needs: analysis transcode, silence detection, and the final render.
type Engine struct {
	binary        string
	probeBinary   string
	renderTimeout time.Duration
	logger        *slog.Logger
}

// Status reports the availability of a required external binary.
type Status struct {
	Name      string
	Command   string
	Available bool
	Detail    string
}

// New constructs an engine from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Engine {
	binary := "ffmpeg"
	probe := "ffprobe"
	var timeout time.Duration
	if cfg != nil {
		if cfg.FFmpeg.Binary != "" {
			binary = cfg.FFmpeg.Binary
		}
		if cfg.FFmpeg.ProbeBinary != "" {
			probe = cfg.FFmpeg.ProbeBinary
		}
		timeout = time.Duration(cfg.FFmpeg.RenderTimeout) * time.Second
	}
	return &Engine{
		binary:        binary,
		probeBinary:   probe,
		renderTimeout: timeout,
		logger:        logging.NewComponentLogger(logger, "ffmpeg"),
	}
}

// Binary returns the configured ffmpeg executable name.
func (e *Engine) Binary() string { return e.binary }

// ProbeBinary returns the configured ffprobe executable name.
func (e *Engine) ProbeBinary() string { return e.probeBinary }

// Available reports the lookup status of both required binaries.
func (e *Engine) Available() []Status {
	return []Status{
		lookup("FFmpeg", e.binary),
		lookup("FFprobe", e.probeBinary),
	}
}

// Ready returns a configuration error when the rendering engine binary cannot
// be resolved. A missing engine is fatal: no part of the mix can proceed.
func (e *Engine) Ready() error {
	for _, status := range e.Available() {
		if !status.Available {
			return services.Wrap(services.ErrConfiguration, "preflight", "engine",
				fmt.Sprintf("%s unavailable: %s", status.Name, status.Detail), nil)
		}
	}
	return nil
}

func lookup(name, command string) Status {
	status := Status{Name: name, Command: command}
	resolved, err := exec.LookPath(command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", command)
		return status
	}
	status.Command = resolved
	status.Available = true
	return status
}
