package align

import "math"

// confusionCost maps an unordered pair of phonetically confusable
// symbols to a reduced substitution cost. Values sit in the middle of
// the spec's allowed [0.2, 0.4] band; all other substitutions cost 1.
var confusionCost = map[string]float64{
	pairKey("P", "B"):   0.3,
	pairKey("T", "D"):   0.3,
	pairKey("K", "G"):   0.3,
	pairKey("S", "Z"):   0.3,
	pairKey("F", "V"):   0.3,
	pairKey("M", "N"):   0.3,
	pairKey("IH", "IY"): 0.3,
	pairKey("AE", "EH"): 0.3,
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

func substitutionCost(a, b string) float64 {
	if a == b {
		return 0
	}
	if cost, ok := confusionCost[pairKey(a, b)]; ok {
		return cost
	}
	return 1
}

// PhonemeDistance computes a weighted edit distance between two phoneme
// token sequences: unit insertion/deletion cost, substitution cost 0 for
// identical tokens, a reduced cost for a fixed set of confusable pairs,
// and 1 otherwise. Runs in O(len(p1)*len(p2)) time and
// O(min(len(p1),len(p2))) space via a two-row rolling DP.
func PhonemeDistance(p1, p2 []string) float64 {
	n, m := len(p1), len(p2)
	if n == 0 {
		return float64(m)
	}
	if m == 0 {
		return float64(n)
	}

	// Keep the shorter sequence as the row dimension to bound space.
	if n > m {
		p1, p2 = p2, p1
		n, m = m, n
	}

	prev := make([]float64, n+1)
	curr := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		prev[i] = float64(i)
	}

	for j := 1; j <= m; j++ {
		curr[0] = float64(j)
		for i := 1; i <= n; i++ {
			del := prev[i] + 1
			ins := curr[i-1] + 1
			sub := prev[i-1] + substitutionCost(p1[i-1], p2[j-1])
			curr[i] = math.Min(del, math.Min(ins, sub))
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
