package align

import "testing"

func TestFindAnchorPrefersHighestScoreThenSmallestOffset(t *testing.T) {
	cfg := DefaultConfig()
	penalty := 0.0
	cfg.SpeakerMismatchPenalty = &penalty

	t1 := Track{
		{Start: 0, End: 1, Phonemes: []string{"HH", "AH", "L", "OW"}},
	}
	t2 := Track{
		{Start: 10, End: 11, Phonemes: []string{"HH", "AH", "L", "OW"}}, // far but exact
		{Start: 1, End: 2, Phonemes: []string{"HH", "AH", "L", "OW"}},   // close and exact: should win
	}

	eng := newSimilarityEngine(t1, t2, cfg)
	anchor, err := findAnchor(t1, t2, eng, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if anchor.JStart != 1 {
		t.Errorf("expected the closer exact match to win, got JStart=%d", anchor.JStart)
	}
}

func TestFindAnchorWidensWindowOnRetry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialSearchWindowSeconds = 1
	penalty := 0.0
	cfg.SpeakerMismatchPenalty = &penalty

	t1 := Track{{Start: 0, End: 1, Phonemes: []string{"HH", "AH", "L", "OW"}}}
	// 1.5s away: outside the initial 1s window but within the doubled
	// 2s window the second attempt uses.
	t2 := Track{{Start: 1.5, End: 2.5, Phonemes: []string{"HH", "AH", "L", "OW"}}}

	eng := newSimilarityEngine(t1, t2, cfg)
	anchor, err := findAnchor(t1, t2, eng, cfg)
	if err != nil {
		t.Fatalf("expected the widened window to find the anchor: %v", err)
	}
	if anchor.I != 0 || anchor.JStart != 0 {
		t.Errorf("unexpected anchor: %+v", anchor)
	}
}

func TestFindAnchorNoMatchReturnsErrNoAnchorFound(t *testing.T) {
	cfg := DefaultConfig()
	penalty := 0.0
	cfg.SpeakerMismatchPenalty = &penalty

	t1 := Track{
		{Start: 0, End: 1, Phonemes: []string{"AA", "AA", "AA"}},
		{Start: 1, End: 2, Phonemes: []string{"AA", "AA", "AA"}},
	}
	t2 := Track{
		{Start: 0, End: 1, Phonemes: []string{"IY", "IY", "IY"}},
		{Start: 1, End: 2, Phonemes: []string{"IY", "IY", "IY"}},
	}

	eng := newSimilarityEngine(t1, t2, cfg)
	_, err := findAnchor(t1, t2, eng, cfg)
	if err != ErrNoAnchorFound {
		t.Errorf("got %v, want ErrNoAnchorFound", err)
	}
}

func TestFindAnchorSkipsEmptyPhonemeChunks(t *testing.T) {
	cfg := DefaultConfig()
	penalty := 0.0
	cfg.SpeakerMismatchPenalty = &penalty

	t1 := Track{
		{Start: 0, End: 1, Phonemes: nil}, // non-speech, must be skipped
		{Start: 1, End: 2, Phonemes: []string{"W", "ER", "L", "D"}},
	}
	t2 := Track{
		{Start: 0, End: 1, Phonemes: []string{"W", "ER", "L", "D"}},
		{Start: 1, End: 2, Phonemes: nil},
	}

	eng := newSimilarityEngine(t1, t2, cfg)
	anchor, err := findAnchor(t1, t2, eng, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if anchor.I != 1 || anchor.JStart != 0 {
		t.Errorf("expected anchor to skip the empty chunks, got %+v", anchor)
	}
}
