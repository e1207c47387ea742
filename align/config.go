package align

// Config holds the aligner's tunable thresholds. Zero-value fields are
// filled in by DefaultConfig / resolveConfig; callers normally start from
// DefaultConfig() and override only what they need.
type Config struct {
	PhoneticSimilarityThreshold  float64 `json:"phoneticSimilarityThreshold,omitempty"`
	SmearSimilarityThreshold     float64 `json:"smearSimilarityThreshold,omitempty"`
	InitialSearchWindowSeconds   float64 `json:"initialSearchWindowSeconds,omitempty"`
	MinPathLength                int     `json:"minPathLength,omitempty"`
	MaxConsecutiveGaps           int     `json:"maxConsecutiveGaps,omitempty"`
	GapPenalty                   float64 `json:"gapPenalty,omitempty"`
	OffsetConsistencyThresholdSD float64 `json:"offsetConsistencyThresholdSd,omitempty"`

	// SpeakerMismatchPenalty overrides the speaker penalty. Leave nil to
	// get the spec default: 0.5 when both tracks carry speaker labels,
	// 0 otherwise. A pointer is used because 0 is itself a valid,
	// deliberate override (disable the penalty) that must be
	// distinguishable from "not set".
	SpeakerMismatchPenalty *float64 `json:"speakerMismatchPenalty,omitempty"`
}

// DefaultConfig returns the defaults specified for the aligner facade (C6),
// excluding SpeakerMismatchPenalty, whose default depends on the tracks
// being aligned (see resolveConfig).
func DefaultConfig() Config {
	return Config{
		PhoneticSimilarityThreshold:  0.7,
		SmearSimilarityThreshold:     0.5,
		InitialSearchWindowSeconds:   120.0,
		MinPathLength:                5,
		MaxConsecutiveGaps:           2,
		GapPenalty:                   0.1,
		OffsetConsistencyThresholdSD: 0.5,
	}
}

// resolveConfig fills any zero-valued field of cfg with its default, and
// resolves SpeakerMismatchPenalty against the two tracks being aligned.
func resolveConfig(cfg Config, t1, t2 Track) Config {
	def := DefaultConfig()
	if cfg.PhoneticSimilarityThreshold == 0 {
		cfg.PhoneticSimilarityThreshold = def.PhoneticSimilarityThreshold
	}
	if cfg.SmearSimilarityThreshold == 0 {
		cfg.SmearSimilarityThreshold = def.SmearSimilarityThreshold
	}
	if cfg.InitialSearchWindowSeconds == 0 {
		cfg.InitialSearchWindowSeconds = def.InitialSearchWindowSeconds
	}
	if cfg.MinPathLength == 0 {
		cfg.MinPathLength = def.MinPathLength
	}
	if cfg.MaxConsecutiveGaps == 0 {
		cfg.MaxConsecutiveGaps = def.MaxConsecutiveGaps
	}
	if cfg.GapPenalty == 0 {
		cfg.GapPenalty = def.GapPenalty
	}
	if cfg.OffsetConsistencyThresholdSD == 0 {
		cfg.OffsetConsistencyThresholdSD = def.OffsetConsistencyThresholdSD
	}
	if cfg.SpeakerMismatchPenalty == nil {
		penalty := 0.0
		if tracksHaveSpeakers(t1, t2) {
			penalty = 0.5
		}
		cfg.SpeakerMismatchPenalty = &penalty
	}
	return cfg
}

func tracksHaveSpeakers(t1, t2 Track) bool {
	return trackHasSpeakers(t1) && trackHasSpeakers(t2)
}

func trackHasSpeakers(t Track) bool {
	for _, c := range t {
		if c.Speaker != "" {
			return true
		}
	}
	return false
}
