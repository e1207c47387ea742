package align

import "math"

// similarityScore is the contract from spec.md 4.2: a deterministic
// function of two phoneme sequences and two (optional) speaker labels,
// normalized to [0, 1].
func similarityScore(p1, p2 []string, speaker1, speaker2 string, cfg Config) float64 {
	if len(p1) == 0 || len(p2) == 0 {
		return 0
	}

	dist := PhonemeDistance(p1, p2)
	maxLen := math.Max(float64(len(p1)), float64(len(p2)))
	minLen := math.Min(float64(len(p1)), float64(len(p2)))

	base := 1 - dist/maxLen
	ratio := minLen / maxLen
	adjusted := base * (0.5 + 0.5*ratio)

	if speaker1 != "" && speaker2 != "" && speaker1 != speaker2 {
		adjusted -= *cfg.SpeakerMismatchPenalty
	}

	if adjusted < 0 {
		adjusted = 0
	}
	if adjusted > 1 {
		adjusted = 1
	}
	return adjusted
}

// mergePhonemes concatenates the phoneme sequences of track[a..b]
// (inclusive) in order, for smear similarity evaluation.
func mergePhonemes(t Track, a, b int) []string {
	n := 0
	for k := a; k <= b; k++ {
		n += len(t[k].Phonemes)
	}
	out := make([]string, 0, n)
	for k := a; k <= b; k++ {
		out = append(out, t[k].Phonemes...)
	}
	return out
}

// mergeSpeaker picks the reference speaker label for a merged chunk
// range: the first chunk's label. Cross-chunk speaker disagreement
// within one smear range is not modeled by this spec; callers that
// care should keep segmentation fine enough that a smear never spans a
// speaker turn.
func mergeSpeaker(t Track, a int) string {
	return t[a].Speaker
}

// simKind distinguishes the three similarity cache variants. kind 0 is
// a direct (i, j) pair; kind 1 merges a track2 range against a single
// track1 chunk (1-to-N smear probe); kind 2 merges a track1 range
// against a single track2 chunk (N-to-1 smear probe).
type simKind byte

const (
	simDirect simKind = iota
	simMergeTrack2
	simMergeTrack1
)

type simKey struct {
	kind   simKind
	i, i2  int
	j, j2  int
}

// similarityEngine memoizes sim() and the merged-phoneme variants within
// a single Align call, as required by spec.md 4.2/9.
type similarityEngine struct {
	t1, t2 Track
	cfg    Config
	cache  map[simKey]float64
}

func newSimilarityEngine(t1, t2 Track, cfg Config) *similarityEngine {
	return &similarityEngine{t1: t1, t2: t2, cfg: cfg, cache: make(map[simKey]float64)}
}

// sim returns the direct similarity between t1[i] and t2[j].
func (e *similarityEngine) sim(i, j int) float64 {
	key := simKey{kind: simDirect, i: i, i2: i, j: j, j2: j}
	if v, ok := e.cache[key]; ok {
		return v
	}
	v := similarityScore(e.t1[i].Phonemes, e.t2[j].Phonemes, e.t1[i].Speaker, e.t2[j].Speaker, e.cfg)
	e.cache[key] = v
	return v
}

// simMergedTrack2 evaluates sim(i, [jA..jB]) by concatenating track2's
// phonemes across jA..jB, used by the smear-1toN probe.
func (e *similarityEngine) simMergedTrack2(i, jA, jB int) float64 {
	key := simKey{kind: simMergeTrack2, i: i, i2: i, j: jA, j2: jB}
	if v, ok := e.cache[key]; ok {
		return v
	}
	merged := mergePhonemes(e.t2, jA, jB)
	v := similarityScore(e.t1[i].Phonemes, merged, e.t1[i].Speaker, mergeSpeaker(e.t2, jA), e.cfg)
	e.cache[key] = v
	return v
}

// simMergedTrack1 evaluates sim([iA..iB], j) by concatenating track1's
// phonemes across iA..iB, used by the smear-Nto1 probe.
func (e *similarityEngine) simMergedTrack1(iA, iB, j int) float64 {
	key := simKey{kind: simMergeTrack1, i: iA, i2: iB, j: j, j2: j}
	if v, ok := e.cache[key]; ok {
		return v
	}
	merged := mergePhonemes(e.t1, iA, iB)
	v := similarityScore(merged, e.t2[j].Phonemes, mergeSpeaker(e.t1, iA), e.t2[j].Speaker, e.cfg)
	e.cache[key] = v
	return v
}
