package service

import (
	"errors"
	"fmt"
)

var ErrWorkflowOutdated = errors.New("workflow is outdated")

// WorkflowOutdatedError reports a workflow file that does not match what
// the project currently generates
type WorkflowOutdatedError struct {
	Path    string
	Missing bool
}

func (e WorkflowOutdatedError) Error() string {
	if e.Missing {
		return fmt.Sprintf("workflow %s does not exist", e.Path)
	}
	return fmt.Sprintf("workflow %s is out of date", e.Path)
}

func (e WorkflowOutdatedError) Unwrap() error {
	return ErrWorkflowOutdated
}

func NewWorkflowOutdatedError(path string, missing bool) *WorkflowOutdatedError {
	return &WorkflowOutdatedError{Path: path, Missing: missing}
}
