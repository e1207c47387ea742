package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"phoneticwalk/align"
	"phoneticwalk/history"
	"phoneticwalk/internal/config"
	"phoneticwalk/internal/service"
)

func sampleTrack() align.Track {
	return align.Track{
		{Start: 0, End: 1, Phonemes: []string{"HH", "AH", "L", "OW"}},
		{Start: 2, End: 3, Phonemes: []string{"W", "ER", "L", "D"}},
		{Start: 4, End: 5, Phonemes: []string{"HH", "AW", "AA", "R", "Y", "UW"}},
		{Start: 6, End: 7, Phonemes: []string{"F", "AY", "N"}},
		{Start: 8, End: 9, Phonemes: []string{"G", "UH", "D", "B", "AY"}},
	}
}

func newTestServer() *Server {
	cfg := &config.Config{Port: "0", HistorySize: 50}
	svc := service.NewAlignService(history.NewStore(cfg.HistorySize))
	return NewServer(cfg, svc)
}

func TestHandleAlignRejectsNonPost(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/align", nil)
	rec := httptest.NewRecorder()
	s.handleAlign(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandleAlignSuccess(t *testing.T) {
	s := newTestServer()
	body, _ := json.Marshal(alignRequest{
		Track1: sampleTrack(),
		Track2: sampleTrack(),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/align", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleAlign(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp alignResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.JobID == "" {
		t.Errorf("expected a non-empty job id")
	}
}

func TestHandleHistoryRoundTrip(t *testing.T) {
	s := newTestServer()
	body, _ := json.Marshal(alignRequest{Track1: sampleTrack(), Track2: sampleTrack()})
	req := httptest.NewRequest(http.MethodPost, "/api/align", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.handleAlign(rec, req)

	var submitted alignResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &submitted)

	listReq := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	listRec := httptest.NewRecorder()
	s.handleHistoryList(listRec, listReq)
	var entries []*history.Entry
	if err := json.Unmarshal(listRec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("invalid list JSON: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/history/"+submitted.JobID, nil)
	getRec := httptest.NewRecorder()
	s.handleHistoryGet(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", getRec.Code)
	}
}

func TestHandleHistoryGetMissing(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/history/does-not-exist", nil)
	rec := httptest.NewRecorder()
	s.handleHistoryGet(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rec.Code)
	}
}
