package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("title is required")
	ErrSuggestionNotFound = errors.New("suggestion not found")
)
