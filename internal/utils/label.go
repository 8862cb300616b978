package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const suffixLength = 8

var unsafeLabel = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeLabel makes a user supplied label safe to use as a path component.
// Returns "" if nothing usable is left.
func SanitizeLabel(in string) string {
	out := unsafeLabel.ReplaceAllString(in, "-")
	out = strings.Trim(out, "-_.")
	return strings.ToLower(out)
}

// EffectiveLabel derives a unique, filesystem safe, label for a job.
// Uniqueness comes from the job id fragment, not from any lookup. A label
// with nothing usable becomes job-<id8>-<id8>.
func EffectiveLabel(display, jobID string) string {
	suffix := jobID
	if len(suffix) > suffixLength {
		suffix = suffix[:suffixLength]
	}
	safe := SanitizeLabel(display)
	if safe == "" {
		safe = "job-" + suffix
	}
	return fmt.Sprintf("%s-%s", safe, suffix)
}

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SanitizeFilename makes an uploaded document's name safe to store; the
// extension is always forced to .pdf.
func SanitizeFilename(in string) string {
	in = filepath.Base(strings.ReplaceAll(in, "\\", "/"))
	stem := strings.TrimSuffix(in, filepath.Ext(in))
	stem = unsafeFilename.ReplaceAllString(stem, "-")
	stem = strings.Trim(stem, "-_")
	if stem == "" || stem == "." {
		stem = "document"
	}
	return stem + ".pdf"
}
