package align

import "sort"

// maxAnchorSeed bounds how many leading track1 chunks the anchor search
// considers (K = min(N1, 10) in spec.md 4.3).
const maxAnchorSeed = 10

// findAnchor locates the highest-confidence initial match pair. track2
// is assumed sorted by Start (the Track invariant), so candidate windows
// are located with binary search rather than a linear scan.
func findAnchor(t1, t2 Track, eng *similarityEngine, cfg Config) (MatchPoint, error) {
	window := cfg.InitialSearchWindowSeconds

	for attempt := 0; attempt < 2; attempt++ {
		if best, ok := scanAnchorWindow(t1, t2, eng, cfg, window); ok {
			return best, nil
		}
		window *= 2
	}

	return MatchPoint{}, ErrNoAnchorFound
}

func scanAnchorWindow(t1, t2 Track, eng *similarityEngine, cfg Config, window float64) (MatchPoint, bool) {
	k := len(t1)
	if k > maxAnchorSeed {
		k = maxAnchorSeed
	}

	type candidate struct {
		i, j   int
		score  float64
		absOff float64
	}
	var best *candidate

	for i := 0; i < k; i++ {
		if len(t1[i].Phonemes) == 0 {
			continue
		}
		lo, hi := candidateWindow(t2, t1[i].Start, window)
		for j := lo; j < hi; j++ {
			if len(t2[j].Phonemes) == 0 {
				continue
			}
			score := eng.sim(i, j)
			if score < cfg.PhoneticSimilarityThreshold {
				continue
			}
			absOff := t2[j].Start - t1[i].Start
			if absOff < 0 {
				absOff = -absOff
			}
			c := candidate{i: i, j: j, score: score, absOff: absOff}
			if best == nil || betterAnchor(c, *best) {
				bc := c
				best = &bc
			}
		}
	}

	if best == nil {
		return MatchPoint{}, false
	}
	return MatchPoint{I: best.i, JStart: best.j, JEnd: best.j, Score: best.score, Kind: KindDirect}, true
}

// betterAnchor reports whether a should replace b as the current best
// anchor candidate: highest score first, then smallest |offset|, then
// smallest i, then smallest j (spec.md 4.3 step 5).
func betterAnchor(a, b struct {
	i, j   int
	score  float64
	absOff float64
}) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.absOff != b.absOff {
		return a.absOff < b.absOff
	}
	if a.i != b.i {
		return a.i < b.i
	}
	return a.j < b.j
}

// candidateWindow returns the half-open [lo, hi) index range of t2
// chunks whose Start lies within window seconds of center.
func candidateWindow(t2 Track, center, window float64) (int, int) {
	lo := sort.Search(len(t2), func(k int) bool { return t2[k].Start >= center-window })
	hi := sort.Search(len(t2), func(k int) bool { return t2[k].Start > center+window })
	return lo, hi
}
