package store

import "time"

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

type Run struct {
	ID         string
	FileName   string
	Status     RunStatus
	Message    string
	CreatedAt  time.Time
	FinishedAt *time.Time
}

type RunIdentity struct {
	ID       string
	FileName string
}
