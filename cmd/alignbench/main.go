// alignbench generates a synthetic pair of phoneme tracks and times
// Align against them, for eyeballing how the greedy walker and
// estimator scale with track length and injected drift.
//
// Usage: alignbench -chunks 500 -offset 3.2 -drift 0.01
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"phoneticwalk/align"
)

var phonemeAlphabet = []string{
	"AA", "AE", "AH", "AO", "AW", "AY", "B", "CH", "D", "DH", "EH", "ER",
	"EY", "F", "G", "HH", "IH", "IY", "JH", "K", "L", "M", "N", "NG", "OW",
	"OY", "P", "R", "S", "SH", "T", "TH", "UH", "UW", "V", "W", "Y", "Z", "ZH",
}

func main() {
	chunks := flag.Int("chunks", 500, "number of chunks per track")
	chunkLen := flag.Float64("chunk-len", 2.0, "seconds between chunk starts (each chunk lasts 80% of this)")
	phonemesPerChunk := flag.Int("phonemes", 6, "phonemes per chunk")
	offset := flag.Float64("offset", 3.2, "constant offset injected into track2, in seconds")
	drift := flag.Float64("drift", 0, "per-chunk drift added on top of offset, in seconds/chunk")
	seed := flag.Int64("seed", 1, "random seed for phoneme generation")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	track1 := make(align.Track, *chunks)
	track2 := make(align.Track, *chunks)

	for i := 0; i < *chunks; i++ {
		phonemes := make([]string, *phonemesPerChunk)
		for p := range phonemes {
			phonemes[p] = phonemeAlphabet[rng.Intn(len(phonemeAlphabet))]
		}
		chunkLenVal := *chunkLen
		start1 := float64(i) * chunkLenVal
		track1[i] = align.Chunk{Start: start1, End: start1 + chunkLenVal*0.8, Phonemes: phonemes}

		start2 := start1 + *offset + float64(i)*(*drift)
		track2[i] = align.Chunk{Start: start2, End: start2 + chunkLenVal*0.8, Phonemes: phonemes}
	}

	started := time.Now()
	result, err := align.Align(track1, track2, align.DefaultConfig())
	elapsed := time.Since(started)

	fmt.Printf("chunks=%d offset=%.3f drift=%.4f\n", *chunks, *offset, *drift)
	fmt.Printf("elapsed=%s\n", elapsed)
	if err != nil {
		fmt.Printf("status=%s reason=%s error=%v\n", result.Status, result.Reason, err)
		return
	}
	fmt.Printf("status=%s offset=%.4f confidence=%.4f path_len=%d\n",
		result.Status, result.OffsetSeconds, result.Confidence, len(result.Path))
}
