// alignctl runs a single alignment job against two JSON-encoded
// phoneme tracks and prints the result, the same direct-library-call
// shape testfull used against RecordingService.
//
// Usage: alignctl -track1 a.json -track2 b.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"phoneticwalk/align"
)

func main() {
	track1Path := flag.String("track1", "", "path to track1's JSON chunk array")
	track2Path := flag.String("track2", "", "path to track2's JSON chunk array")
	phoneticThreshold := flag.Float64("phonetic-threshold", 0, "override the phonetic similarity threshold (0 = default)")
	smearThreshold := flag.Float64("smear-threshold", 0, "override the smear similarity threshold (0 = default)")
	searchWindow := flag.Float64("search-window", 0, "override the initial anchor search window, in seconds (0 = default)")
	minPathLength := flag.Int("min-path-length", 0, "override the minimum accepted path length (0 = default)")
	flag.Parse()

	if *track1Path == "" || *track2Path == "" {
		log.Fatal("both -track1 and -track2 are required")
	}

	track1, err := loadTrack(*track1Path)
	if err != nil {
		log.Fatalf("loading track1: %v", err)
	}
	track2, err := loadTrack(*track2Path)
	if err != nil {
		log.Fatalf("loading track2: %v", err)
	}

	cfg := align.Config{
		PhoneticSimilarityThreshold: *phoneticThreshold,
		SmearSimilarityThreshold:    *smearThreshold,
		InitialSearchWindowSeconds:  *searchWindow,
		MinPathLength:               *minPathLength,
	}

	result, err := align.Align(track1, track2, cfg)
	if err != nil {
		log.Printf("alignment failed: %v", err)
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))

	if result.Status != align.StatusSuccess {
		os.Exit(1)
	}
}

func loadTrack(path string) (align.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var track align.Track
	if err := json.Unmarshal(data, &track); err != nil {
		return nil, err
	}
	return track, nil
}
