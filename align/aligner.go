package align

// Align estimates the temporal offset between track1 and track2: the
// scalar number of seconds by which track2 should be shifted to align
// with track1. See spec.md for the full contract.
//
// Align never panics on well-typed input; malformed input is reported
// through Result.Reason == ReasonInvalidInput (and a non-nil error
// satisfying errors.Is(err, ErrInvalidInput)).
func Align(track1, track2 Track, cfg Config) (Result, error) {
	if err := validateTracks(track1, track2); err != nil {
		return Result{Status: StatusFailure, Reason: ReasonInvalidInput}, err
	}

	resolved := resolveConfig(cfg, track1, track2)
	eng := newSimilarityEngine(track1, track2, resolved)

	anchor, err := findAnchor(track1, track2, eng, resolved)
	if err != nil {
		return Result{Status: StatusFailure, Reason: ReasonNoAnchorFound}, err
	}

	path := walk(track1, track2, eng, resolved, anchor)

	est := estimateOffset(path, track1, track2, resolved)
	if !est.ok {
		return Result{
			Status:       StatusFailure,
			Reason:       est.reason,
			Path:         path,
			MedianOffset: est.medianOffset,
		}, errForReason(est.reason)
	}

	return Result{
		Status:        StatusSuccess,
		OffsetSeconds: est.offset,
		Confidence:    est.confidence,
		Path:          path,
	}, nil
}

// validateTracks checks the invariants spec.md 6/7 require of the
// caller-supplied contract: both tracks non-empty, timestamps
// non-negative and non-decreasing, end >= start.
func validateTracks(tracks ...Track) error {
	for _, t := range tracks {
		if len(t) == 0 {
			return ErrInvalidInput
		}
		prevStart := -1.0
		for _, c := range t {
			if c.Start < 0 || c.End < c.Start {
				return ErrInvalidInput
			}
			if c.Start < prevStart {
				return ErrInvalidInput
			}
			prevStart = c.Start
		}
	}
	return nil
}
