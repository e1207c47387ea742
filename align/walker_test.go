package align

import "testing"

func genTokens(prefix string, n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = prefix + itoa3(i)
	}
	return out
}

// itoa3 avoids pulling in strconv just for zero-padded test fixture ids.
func itoa3(n int) string {
	digits := [3]byte{}
	for i := 2; i >= 0; i-- {
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[:])
}

// TestTrySmearOneToN verifies the 1-to-N smear probe in isolation: a
// single long track1 chunk whose phonemes were split across two track2
// chunks with a partial overlap at the seam (large enough that each
// half individually clears the smear threshold, but not the stricter
// phonetic threshold — only the merged comparison does).
func TestTrySmearOneToN(t *testing.T) {
	cfg := DefaultConfig()
	penalty := 0.5
	cfg.SpeakerMismatchPenalty = &penalty

	full := genTokens("A", 100) // track1's single, unsplit chunk
	t1 := Track{
		{Phonemes: []string{"Z"}}, // cur_i
		{Phonemes: full},          // cur_i+1: the split source
		{Phonemes: []string{"Y"}}, // cur_i+2: unrelated, should not interfere
	}
	t2 := Track{
		{Phonemes: []string{"Z"}},       // cur_j
		{Phonemes: full[:63]},           // cur_j+1: first 63 tokens
		{Phonemes: full[37:]},           // cur_j+2: last 63 tokens, overlapping 26
	}

	eng := newSimilarityEngine(t1, t2, cfg)

	probeA := eng.sim(1, 1)
	probeB := eng.sim(1, 2)
	if probeA < cfg.SmearSimilarityThreshold || probeA >= cfg.PhoneticSimilarityThreshold {
		t.Fatalf("probe A should clear the smear threshold but not the phonetic one: %v", probeA)
	}
	if probeB < cfg.SmearSimilarityThreshold || probeB >= cfg.PhoneticSimilarityThreshold {
		t.Fatalf("probe B should clear the smear threshold but not the phonetic one: %v", probeB)
	}

	point, ok := trySmear(t1, t2, eng, cfg, 0, 0)
	if !ok {
		t.Fatalf("expected a smear-1toN match")
	}
	if point.Kind != KindSmearOneToN {
		t.Errorf("expected KindSmearOneToN, got %v", point.Kind)
	}
	if point.I != 1 || point.JStart != 1 || point.JEnd != 2 {
		t.Errorf("unexpected match point shape: %+v", point)
	}
	if point.Score < cfg.PhoneticSimilarityThreshold {
		t.Errorf("accepted smear score should clear the phonetic threshold: %v", point.Score)
	}
}

// TestTrySmearNToOne mirrors the 1-to-N case with the merge on track1's
// side: two track1 chunks collapse into one track2 chunk.
func TestTrySmearNToOne(t *testing.T) {
	cfg := DefaultConfig()
	penalty := 0.5
	cfg.SpeakerMismatchPenalty = &penalty

	full := genTokens("B", 100)
	t1 := Track{
		{Phonemes: []string{"Z"}},
		{Phonemes: full[:63]},
		{Phonemes: full[37:]},
	}
	t2 := Track{
		{Phonemes: []string{"Z"}},
		{Phonemes: full},
		{Phonemes: []string{"Y"}},
	}

	eng := newSimilarityEngine(t1, t2, cfg)
	point, ok := trySmear(t1, t2, eng, cfg, 0, 0)
	if !ok {
		t.Fatalf("expected a smear-Nto1 match")
	}
	if point.Kind != KindSmearNToOne {
		t.Errorf("expected KindSmearNToOne, got %v", point.Kind)
	}
	if point.I != 1 || point.JStart != 1 || point.JEnd != 1 {
		t.Errorf("unexpected match point shape: %+v", point)
	}
}

func TestTrySmearNoneWhenNothingQualifies(t *testing.T) {
	cfg := DefaultConfig()
	penalty := 0.5
	cfg.SpeakerMismatchPenalty = &penalty

	t1 := Track{{Phonemes: []string{"Z"}}, {Phonemes: []string{"AA"}}, {Phonemes: []string{"AA"}}}
	t2 := Track{{Phonemes: []string{"Z"}}, {Phonemes: []string{"IY"}}, {Phonemes: []string{"IY"}}}

	eng := newSimilarityEngine(t1, t2, cfg)
	if _, ok := trySmear(t1, t2, eng, cfg, 0, 0); ok {
		t.Errorf("expected no smear when probes don't clear the threshold")
	}
}
