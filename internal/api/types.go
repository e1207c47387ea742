package api

import "phoneticwalk/align"

// Message is the /ws payload, broadcast once per finished job. The gRPC
// Align method replies with AlignReply instead.
type Message struct {
	Type string `json:"type"`

	JobID     string        `json:"jobId,omitempty"`
	Result    *align.Result `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
	Submitted int64         `json:"submittedAtUnixMilli,omitempty"`
	Finished  int64         `json:"finishedAtUnixMilli,omitempty"`
}

// alignRequest is the POST /api/align request body.
type alignRequest struct {
	Track1 align.Track  `json:"track1"`
	Track2 align.Track  `json:"track2"`
	Config align.Config `json:"config"`
}

// alignResponse is the POST /api/align response body.
type alignResponse struct {
	JobID  string       `json:"jobId"`
	Result align.Result `json:"result"`
	Error  string       `json:"error,omitempty"`
}
