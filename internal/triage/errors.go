package triage

import "errors"

var (
	ErrNotFound    = errors.New("article not found")
	ErrUnknownKind = errors.New("unknown action kind")
)
