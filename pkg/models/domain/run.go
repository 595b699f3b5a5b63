package domain

import "time"

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

const SuccessMessage = "All data sent successfully! Download your file below."

// Run records one report generation.
type Run struct {
	ID         string
	FileName   string
	Status     RunStatus
	Message    string
	CreatedAt  time.Time
	FinishedAt *time.Time
}

func (r *Run) Finished() bool {
	return r.Status == RunStatusSucceeded || r.Status == RunStatusFailed
}
