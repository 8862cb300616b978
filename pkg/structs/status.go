package structs

import (
	"strings"
)

type Status string

const (
	// transient states
	PENDING Status = "pending"
	RUNNING Status = "running"

	// end states
	COMPLETED Status = "completed"
	FAILED    Status = "failed"
)

func IsFinalStatus(status Status) bool {
	switch status {
	case COMPLETED, FAILED:
		return true
	default:
		return false
	}
}

// CanTransition reports whether a job may move from one status to another.
// Jobs only ever move forward: pending -> running -> completed | failed.
func CanTransition(from, to Status) bool {
	switch from {
	case PENDING:
		return to == RUNNING
	case RUNNING:
		return to == COMPLETED || to == FAILED
	default:
		return false
	}
}

func ToStatus(s string) Status {
	switch strings.ToLower(s) {
	case "pending":
		return PENDING
	case "running":
		return RUNNING
	case "completed":
		return COMPLETED
	case "failed":
		return FAILED
	default:
		return ""
	}
}
