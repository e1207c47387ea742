// Package service wraps the align package's pure functions with the
// bookkeeping an API caller needs: a job ID, a history record, and a
// progress notification once the job finishes.
package service

import (
	"log"
	"time"

	"github.com/google/uuid"

	"phoneticwalk/align"
	"phoneticwalk/history"
)

// AlignService runs alignment jobs and records them into a
// history.Store, notifying an optional subscriber as each job
// completes.
type AlignService struct {
	History *history.Store

	// OnComplete, if set, is called after every job is recorded (success
	// or failure). It is used to push /ws progress updates.
	OnComplete func(*history.Entry)
}

// NewAlignService returns an AlignService that records into store.
func NewAlignService(store *history.Store) *AlignService {
	return &AlignService{History: store}
}

// Submit runs Align synchronously and returns the recorded entry. The
// job ID is assigned before the alignment runs so a caller can
// correlate an in-flight /ws notification with the HTTP response.
func (s *AlignService) Submit(track1, track2 align.Track, cfg align.Config) *history.Entry {
	id := uuid.New().String()
	submitted := time.Now()

	log.Printf("[AlignService] job %s: starting (track1=%d chunks, track2=%d chunks)", id, len(track1), len(track2))

	result, err := align.Align(track1, track2, cfg)

	entry := &history.Entry{
		ID:          id,
		SubmittedAt: submitted,
		FinishedAt:  time.Now(),
		Result:      result,
	}
	if err != nil {
		entry.Err = err.Error()
		log.Printf("[AlignService] job %s: failed: %v", id, err)
	} else {
		log.Printf("[AlignService] job %s: offset=%.3fs confidence=%.3f", id, result.OffsetSeconds, result.Confidence)
	}

	s.History.Put(entry)
	if s.OnComplete != nil {
		s.OnComplete(entry)
	}
	return entry
}
