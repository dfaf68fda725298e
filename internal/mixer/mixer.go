package mixer

import (
	"context"
	"errors"
	"log/slog"

	"mixdown/internal/assets"
	"mixdown/internal/config"
	"mixdown/internal/ffmpeg"
	"mixdown/internal/history"
	"mixdown/internal/logging"
	"mixdown/internal/music"
	"mixdown/internal/notifications"
	"mixdown/internal/segment"
	"mixdown/internal/sfx"
)

// Engine is the slice of the rendering engine the mixer needs.
type Engine interface {
	Ready() error
	Render(ctx context.Context, spec ffmpeg.RenderSpec) error
}

// Segmenter locates speech activity in the narration asset.
type Segmenter interface {
	Analyze(ctx context.Context, sourcePath, workDir string) (segment.Result, error)
}

// Options carries the mixer's optional collaborators. Zero values fall back
// to no-op implementations; only the asset store is required.
type Options struct {
	Store    assets.Store
	Music    music.Selector
	SFX      sfx.Extractor
	Library  *sfx.Library
	History  *history.Store
	Notifier notifications.Service
}

// Mixer orchestrates a full mix run: asset fan-out, segmentation, envelope
// generation, graph compilation, rendering, and publishing.
type Mixer struct {
	cfg       *config.Config
	engine    Engine
	segmenter Segmenter
	store     assets.Store
	music     music.Selector
	sfx       sfx.Extractor
	library   *sfx.Library
	history   *history.Store
	notifier  notifications.Service
	logger    *slog.Logger
}

// New builds a mixer. The history store may be nil; music, sfx, and notifier
// default to no-ops when unset.
func New(cfg *config.Config, engine Engine, segmenter Segmenter, opts Options, logger *slog.Logger) (*Mixer, error) {
	if cfg == nil {
		return nil, errors.New("mixer requires config")
	}
	if engine == nil || segmenter == nil {
		return nil, errors.New("mixer requires engine and segmenter")
	}
	if opts.Store == nil {
		return nil, errors.New("mixer requires an asset store")
	}
	if opts.Music == nil {
		opts.Music = music.NoopSelector{}
	}
	if opts.SFX == nil {
		opts.SFX = sfx.NoopExtractor{}
	}
	if opts.Notifier == nil {
		opts.Notifier = notifications.NewService(cfg)
	}
	return &Mixer{
		cfg:       cfg,
		engine:    engine,
		segmenter: segmenter,
		store:     opts.Store,
		music:     opts.Music,
		sfx:       opts.SFX,
		library:   opts.Library,
		history:   opts.History,
		notifier:  opts.Notifier,
		logger:    logging.NewComponentLogger(logger, "mixer"),
	}, nil
}
