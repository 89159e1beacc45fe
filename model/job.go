package model

import "time"

// Job status values.
const (
	JobPending    = "pending"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobFailed     = "failed"
)

// Job represents one queued render in server mode.
type Job struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`   // pending, processing, completed, failed
	Progress    float64   `json:"progress"` // 0..100
	OutPath     string    `json:"outPath"`
	ArtifactURL string    `json:"artifactUrl,omitempty"` // set when uploaded to object storage
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
