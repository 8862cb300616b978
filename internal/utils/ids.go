package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var validID = regexp.MustCompile(`^[0-9a-f]{32}$`)

// NewRandomID returns a random 128 bit id, hex encoded (no dashes).
func NewRandomID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// IsValidID returns if the given string looks like one of our ids.
func IsValidID(id string) bool {
	return validID.MatchString(id)
}
