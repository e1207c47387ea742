package align

import (
	"math"
	"sort"
)

// maxSmearSpan bounds the merged side of a smear to 2 chunks beyond the
// reference chunk (spec.md 4.4's literal cur_j+1/cur_j+2 probe), well
// inside the 3-chunk cap spec.md 4.4's "bounded-smear policy" allows.
const maxSmearSpan = 2

type stepCandidate struct {
	di, dj int
	i, j   int
	score  float64
	delta  float64
}

// walk runs the greedy path-construction loop from an anchor, per
// spec.md 4.4.
func walk(t1, t2 Track, eng *similarityEngine, cfg Config, anchor MatchPoint) Path {
	path := Path{anchor}
	curI, curJ := anchor.I, anchor.JStart
	consecutiveGaps := 0
	anchorOffset := t2[anchor.JStart].Start - t1[anchor.I].Start
	offsets := []float64{anchorOffset}

	lastI, lastJ := len(t1)-1, len(t2)-1

	for curI < lastI && curJ < lastJ {
		candidates := enumerateCandidates(t1, t2, eng, curI, curJ, lastI, lastJ)
		if len(candidates) == 0 {
			break
		}

		reference := currentOffsetReference(offsets, anchorOffset)
		best := bestCandidate(candidates, reference)

		if best.score >= cfg.PhoneticSimilarityThreshold {
			path = append(path, MatchPoint{I: best.i, JStart: best.j, JEnd: best.j, Score: best.score, Kind: KindDirect})
			offsets = append(offsets, best.delta)
			consecutiveGaps = 0
			curI, curJ = best.i, best.j
			continue
		}

		if point, ok := trySmear(t1, t2, eng, cfg, curI, curJ); ok {
			path = append(path, point)
			ref := t2[point.JStart].Start - t1[point.I].Start
			offsets = append(offsets, ref)
			consecutiveGaps = 0
			if point.Kind == KindSmearOneToN {
				curI, curJ = curI+1, curJ+2
			} else {
				curI, curJ = curI+2, curJ+1
			}
			continue
		}

		if consecutiveGaps < cfg.MaxConsecutiveGaps {
			consecutiveGaps++
			curI, curJ = best.i, best.j
			continue
		}

		break
	}

	return path
}

// enumerateCandidates lists the in-range (di, dj) steps from (curI, curJ)
// for di, dj in {1, 2}.
func enumerateCandidates(t1, t2 Track, eng *similarityEngine, curI, curJ, lastI, lastJ int) []stepCandidate {
	var out []stepCandidate
	for _, di := range [2]int{1, 2} {
		for _, dj := range [2]int{1, 2} {
			i, j := curI+di, curJ+dj
			if i > lastI || j > lastJ {
				continue
			}
			score := eng.sim(i, j)
			delta := t2[j].Start - t1[i].Start
			out = append(out, stepCandidate{di: di, dj: dj, i: i, j: j, score: score, delta: delta})
		}
	}
	return out
}

// currentOffsetReference implements the "running median, or anchor
// offset while the path has fewer than 3 points" rule used for
// candidate tie-breaking.
func currentOffsetReference(offsets []float64, anchorOffset float64) float64 {
	if len(offsets) < 3 {
		return anchorOffset
	}
	return medianOf(offsets)
}

// bestCandidate picks the max-score candidate, breaking ties by
// preferring (1,1), then the smallest di+dj, then the smallest
// |delta - reference| (spec.md 4.4 step 3).
func bestCandidate(candidates []stepCandidate, reference float64) stepCandidate {
	best := candidates[0]
	bestDev := math.Abs(best.delta - reference)
	for _, c := range candidates[1:] {
		dev := math.Abs(c.delta - reference)
		if isBetterStep(c, dev, best, bestDev) {
			best = c
			bestDev = dev
		}
	}
	return best
}

func isBetterStep(a stepCandidate, aDev float64, b stepCandidate, bDev float64) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	aDiag, bDiag := a.di == 1 && a.dj == 1, b.di == 1 && b.dj == 1
	if aDiag != bDiag {
		return aDiag
	}
	aSum, bSum := a.di+a.dj, b.di+b.dj
	if aSum != bSum {
		return aSum < bSum
	}
	return aDev < bDev
}

// trySmear probes a smear-1toN then a smear-Nto1 match starting at
// (curI, curJ), per spec.md 4.4's smear probe step. A fixed order
// (1toN before Nto1) keeps the walk deterministic when both qualify.
func trySmear(t1, t2 Track, eng *similarityEngine, cfg Config, curI, curJ int) (MatchPoint, bool) {
	if curI+1 <= len(t1)-1 && curJ+maxSmearSpan <= len(t2)-1 {
		a := eng.sim(curI+1, curJ+1)
		b := eng.sim(curI+1, curJ+2)
		if a >= cfg.SmearSimilarityThreshold && b >= cfg.SmearSimilarityThreshold {
			merged := eng.simMergedTrack2(curI+1, curJ+1, curJ+2)
			if merged >= cfg.PhoneticSimilarityThreshold {
				return MatchPoint{I: curI + 1, JStart: curJ + 1, JEnd: curJ + 2, Score: merged, Kind: KindSmearOneToN}, true
			}
		}
	}

	if curI+maxSmearSpan <= len(t1)-1 && curJ+1 <= len(t2)-1 {
		a := eng.sim(curI+1, curJ+1)
		b := eng.sim(curI+2, curJ+1)
		if a >= cfg.SmearSimilarityThreshold && b >= cfg.SmearSimilarityThreshold {
			merged := eng.simMergedTrack1(curI+1, curI+2, curJ+1)
			if merged >= cfg.PhoneticSimilarityThreshold {
				return MatchPoint{I: curI + 1, JStart: curJ + 1, JEnd: curJ + 1, Score: merged, Kind: KindSmearNToOne}, true
			}
		}
	}

	return MatchPoint{}, false
}

// medianOf returns the median of a slice without mutating the caller's
// backing array.
func medianOf(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
