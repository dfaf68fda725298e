package ducking

import (
	"time"

	"mixdown/internal/config"
)

// Policy describes how music reacts to narration: the ducked gain while
// speech plays, the baseline gain during silence, and the transition windows
// around each speech segment. Both levels are dB values; no ordering between
// them is enforced, though the defaults duck music below the baseline.
type Policy struct {
	SpeechLevelDb  float64
	SilenceLevelDb float64
	Attack         time.Duration
	Release        time.Duration
}

// DefaultPolicy returns the repository default ducking policy.
func DefaultPolicy() Policy {
	return Policy{
		SpeechLevelDb:  -18,
		SilenceLevelDb: -8,
		Attack:         300 * time.Millisecond,
		Release:        500 * time.Millisecond,
	}
}

// PolicyFromConfig builds a policy from the ducking config section.
func PolicyFromConfig(cfg *config.Config) Policy {
	if cfg == nil {
		return DefaultPolicy()
	}
	return Policy{
		SpeechLevelDb:  cfg.Ducking.SpeechLevelDb,
		SilenceLevelDb: cfg.Ducking.SilenceLevelDb,
		Attack:         time.Duration(cfg.Ducking.AttackMs) * time.Millisecond,
		Release:        time.Duration(cfg.Ducking.ReleaseMs) * time.Millisecond,
	}
}
