package tui

import "github.com/matheuskafuri/readq/internal/triage"

type errMsg struct {
	err error
}

type refreshDoneMsg struct {
	articles []triage.Article
	errs     []error
	err      error
}
