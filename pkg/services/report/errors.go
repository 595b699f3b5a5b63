package report

import (
	"errors"
	"fmt"
)

type Stage string

const (
	StageConfigure Stage = "configure"
	StageFilter    Stage = "filter"
	StageExtract   Stage = "extract"
	StagePivot     Stage = "pivot"
	StageGroup     Stage = "group"
)

// StageError is the failure of one assembly stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the stage named by err, if any.
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
