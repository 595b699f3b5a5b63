package api

import "time"

type Run struct {
	ID         string     `json:"id"`
	FileName   string     `json:"file_name"`
	Status     string     `json:"status"`
	Message    string     `json:"message,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

type RunDetails struct {
	Run    Run     `json:"run"`
	Report *Report `json:"report,omitempty"`
}
