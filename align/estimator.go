package align

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// estimate is the internal result of the offset estimator (C5), before
// it is folded into a public Result by the aligner facade.
type estimate struct {
	ok           bool
	reason       Reason
	offset       float64
	confidence   float64
	medianOffset float64
}

// estimateOffset implements spec.md 4.5: extract per-point offset
// samples, reject the path if too short, apply MAD-based outlier
// rejection, recompute the median/SD over the retained samples, reject
// on excess SD, and otherwise score a confidence in [0, 1].
func estimateOffset(path Path, t1, t2 Track, cfg Config) estimate {
	if len(path) < cfg.MinPathLength {
		return estimate{reason: ReasonPathTooShort}
	}

	deltas := make([]float64, len(path))
	for n, p := range path {
		deltas[n] = t2[p.JStart].Start - t1[p.I].Start
	}

	median := medianOf(deltas)
	absDev := make([]float64, len(deltas))
	for i, d := range deltas {
		absDev[i] = math.Abs(d - median)
	}
	mad := medianOf(absDev)

	retained := retainWithinMAD(deltas, median, mad)

	refinedMedian := medianOf(retained)
	sd := sampleStdDev(retained)

	if sd > cfg.OffsetConsistencyThresholdSD {
		return estimate{reason: ReasonOffsetInconsistent, medianOffset: refinedMedian}
	}

	pathLenFactor := math.Min(float64(len(path))/(2*float64(cfg.MinPathLength)), 1)
	avgScore := meanScore(path)
	consistencyFactor := 1 - math.Min(sd/cfg.OffsetConsistencyThresholdSD, 1)
	confidence := pathLenFactor * avgScore * consistencyFactor

	return estimate{ok: true, offset: refinedMedian, confidence: confidence}
}

// retainWithinMAD keeps samples within 3*MAD of the median, widening
// the cutoff (by keeping the samples closest to the median) when that
// would otherwise drop more than half the samples, per spec.md 4.5
// step 3.
func retainWithinMAD(deltas []float64, median, mad float64) []float64 {
	type dev struct {
		value float64
		dist  float64
	}
	devs := make([]dev, len(deltas))
	for i, d := range deltas {
		devs[i] = dev{value: d, dist: math.Abs(d - median)}
	}
	sort.Slice(devs, func(i, j int) bool { return devs[i].dist < devs[j].dist })

	cutoff := 3 * mad
	keep := 0
	for _, d := range devs {
		if d.dist <= cutoff {
			keep++
		}
	}
	required := (len(devs) + 1) / 2 // ceil(n/2)
	if keep < required {
		keep = required
	}
	if keep > len(devs) {
		keep = len(devs)
	}

	out := make([]float64, keep)
	for i := 0; i < keep; i++ {
		out[i] = devs[i].value
	}
	return out
}

func sampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

func meanScore(path Path) float64 {
	scores := make([]float64, len(path))
	for i, p := range path {
		scores[i] = p.Score
	}
	return stat.Mean(scores, nil)
}
