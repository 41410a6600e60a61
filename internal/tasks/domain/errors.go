package domain

import "errors"

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidStatus   = errors.New("invalid task status")
)
