// Package tracker implements personal application tracking: create a tracked
// application for an external job, list them, and move them through a flat
// status set. Unlike a kanban state machine, any status can be overwritten by
// any other — the workflow is a label, not a graph.
package tracker

import "fmt"

// Status values mirror the application status enum in PostgreSQL.
type Status string

const (
	StatusApplied   Status = "APPLIED"
	StatusReviewing Status = "REVIEWING"
	StatusInterview Status = "INTERVIEW"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values. Matching is case-sensitive.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusApplied, StatusReviewing, StatusInterview, StatusAccepted, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}
