// Package config loads process-wide settings from command-line flags,
// the same flag-based approach the rest of this stack uses for its
// own configuration.
package config

import (
	"flag"
	"runtime"
)

// Config holds the API server's settings and the aligner threshold
// flags. The threshold fields are not passed on to alignment jobs: each
// job runs with the align.Config sent in its request, zero fields filled
// from align.DefaultConfig.
type Config struct {
	Port     string
	GRPCAddr string

	HistorySize int

	PhoneticSimilarityThreshold float64
	SmearSimilarityThreshold    float64
	InitialSearchWindowSeconds  float64
	MinPathLength               int
}

// Load parses flags and returns the resolved Config. It must be called
// at most once per process, before flag.Parse is needed anywhere else.
func Load() *Config {
	port := flag.String("port", "8080", "HTTP server port")
	grpcAddr := flag.String("grpc-addr", defaultGRPCAddress(), "gRPC listen address (unix:/path/to.sock or npipe:////./pipe/phoneticwalk-grpc)")
	historySize := flag.Int("history-size", 200, "number of recent alignment jobs to retain")

	phoneticThreshold := flag.Float64("phonetic-threshold", 0.7, "minimum similarity score for a direct match")
	smearThreshold := flag.Float64("smear-threshold", 0.5, "minimum similarity score to probe a smear match")
	searchWindow := flag.Float64("search-window", 120.0, "initial anchor search window, in seconds")
	minPathLength := flag.Int("min-path-length", 5, "minimum accepted path length, in match points")

	flag.Parse()

	return &Config{
		Port:                        *port,
		GRPCAddr:                    *grpcAddr,
		HistorySize:                 *historySize,
		PhoneticSimilarityThreshold: *phoneticThreshold,
		SmearSimilarityThreshold:    *smearThreshold,
		InitialSearchWindowSeconds:  *searchWindow,
		MinPathLength:               *minPathLength,
	}
}

func defaultGRPCAddress() string {
	if runtime.GOOS == "windows" {
		return "npipe:\\\\.\\pipe\\phoneticwalk-grpc"
	}
	return "unix:/tmp/phoneticwalk-grpc.sock"
}
