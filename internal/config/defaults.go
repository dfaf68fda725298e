package config

const (
	defaultStagingDir = "~/.local/share/mixdown/staging"
	defaultLibraryDir = "~/mixdown/library"
	defaultOutputDir  = "~/mixdown/output"
	defaultLogDir     = "~/.local/share/mixdown/logs"

	defaultFFmpegBinary  = "ffmpeg"
	defaultProbeBinary   = "ffprobe"
	defaultRenderTimeout = 0 // seconds; 0 leaves the deadline to the caller

	defaultSpeechLevelDb  = -18.0
	defaultSilenceLevelDb = -8.0
	defaultAttackMs       = 300
	defaultReleaseMs      = 500
	defaultNoiseFloorDb   = -30.0
	defaultMinSilenceMs   = 300
	defaultMergeGapMs     = 200

	defaultIntegratedLUFS = -16.0
	defaultTruePeakDb     = -6.0
	defaultRangeLU        = 11.0

	defaultSampleRate = 44100
	defaultChannels   = 2

	defaultNotifyRequestTimeout = 10

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			LibraryDir: defaultLibraryDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		FFmpeg: FFmpeg{
			Binary:        defaultFFmpegBinary,
			ProbeBinary:   defaultProbeBinary,
			RenderTimeout: defaultRenderTimeout,
		},
		Ducking: Ducking{
			SpeechLevelDb:  defaultSpeechLevelDb,
			SilenceLevelDb: defaultSilenceLevelDb,
			AttackMs:       defaultAttackMs,
			ReleaseMs:      defaultReleaseMs,
			NoiseFloorDb:   defaultNoiseFloorDb,
			MinSilenceMs:   defaultMinSilenceMs,
			MergeGapMs:     defaultMergeGapMs,
		},
		Loudness: Loudness{
			IntegratedLUFS: defaultIntegratedLUFS,
			TruePeakDb:     defaultTruePeakDb,
			RangeLU:        defaultRangeLU,
		},
		Output: Output{
			SampleRate: defaultSampleRate,
			Channels:   defaultChannels,
		},
		Music: Music{
			Enabled: true,
		},
		History: History{
			Enabled: true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
