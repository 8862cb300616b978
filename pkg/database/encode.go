package database

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/voidshard/platen/pkg/structs"
)

// timeLayout is fixed width so that text timestamps sort correctly.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// timeNow returns the current time in UTC
var timeNow = func() time.Time {
	return time.Now().UTC()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// rows written by hand / other tools
		t, err = time.Parse(time.RFC3339Nano, s)
	}
	return t.UTC(), err
}

func encodeMap(in map[string]interface{}) (string, error) {
	if in == nil {
		return "{}", nil
	}
	data, err := json.Marshal(in)
	return string(data), err
}

func decodeMap(in []byte) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if len(in) == 0 {
		return out, nil
	}
	return out, json.Unmarshal(in, &out)
}

func encodeEvents(in []*structs.JobEvent) (string, error) {
	if in == nil {
		return "[]", nil
	}
	data, err := json.Marshal(in)
	return string(data), err
}

func decodeEvents(in []byte) ([]*structs.JobEvent, error) {
	out := []*structs.JobEvent{}
	if len(in) == 0 {
		return out, nil
	}
	return out, json.Unmarshal(in, &out)
}

// nullable turns "" into a SQL NULL.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// patchColumns returns the columns & values a patch touches, in a stable order.
// updated_at is always included (last).
func patchColumns(p *structs.JobPatch, now interface{}) ([]string, []interface{}) {
	cols := []string{}
	args := []interface{}{}
	if p != nil {
		if p.Status != nil {
			cols = append(cols, "status")
			args = append(args, string(*p.Status))
		}
		if p.Error != nil {
			cols = append(cols, "error")
			args = append(args, nullable(*p.Error))
		}
		if p.S3Key != nil {
			cols = append(cols, "s3_key")
			args = append(args, nullable(*p.S3Key))
		}
		if p.PlatePath != nil {
			cols = append(cols, "plate_path")
			args = append(args, nullable(*p.PlatePath))
		}
		if p.ZipPath != nil {
			cols = append(cols, "zip_path")
			args = append(args, nullable(*p.ZipPath))
		}
	}
	cols = append(cols, "updated_at")
	args = append(args, now)
	return cols, args
}

// patchTime is the patch's own timestamp, or fallback if it has none.
func patchTime(p *structs.JobPatch, fallback time.Time) time.Time {
	if p == nil || p.UpdatedAt.IsZero() {
		return fallback
	}
	return p.UpdatedAt
}

// toSqlSet renders "a=$1, b=$2" (or "a=?, b=?") for an UPDATE.
func toSqlSet(cols []string, placeholder func(int) string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s=%s", c, placeholder(i+1))
	}
	return strings.Join(parts, ", ")
}

// toSqlIn converts a list of strings into a SQL IN clause
func toSqlIn(offset int, field string, args []string, placeholder func(int) string) (string, []interface{}) {
	if len(args) == 0 {
		return "", []interface{}{}
	}
	vals := []string{}
	ifargs := []interface{}{}
	for i, a := range args {
		vals = append(vals, placeholder(i+offset))
		ifargs = append(ifargs, a)
	}
	return fmt.Sprintf("%s IN (%s)", field, strings.Join(vals, ", ")), ifargs
}

// toSqlQuery converts query filters into a WHERE clause & args
func toSqlQuery(q *structs.Query, placeholder func(int) string) (string, []interface{}) {
	and := []string{}
	args := []interface{}{}
	in := []struct {
		field string
		vals  []string
	}{
		{"id", q.JobIDs},
		{"status", statusToStrings(q.Statuses)},
	}
	for _, f := range in {
		if len(f.vals) == 0 {
			continue
		}
		s, a := toSqlIn(len(args)+1, f.field, f.vals, placeholder)
		and = append(and, s)
		args = append(args, a...)
	}
	if len(and) == 0 {
		return "", args
	}
	return fmt.Sprintf("WHERE %s", strings.Join(and, " AND ")), args
}

// statusToStrings converts a list of statuses into a list of strings
func statusToStrings(in []structs.Status) []string {
	if len(in) == 0 {
		return nil
	}
	out := []string{}
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}

func dollar(i int) string {
	return fmt.Sprintf("$%d", i)
}

func question(int) string {
	return "?"
}

// upsertJobSql inserts or fully replaces a job, the VALUES placeholders are filled in per driver.
const upsertJobSql = `INSERT INTO jobs (id, display_label, effective_label, status, created_at, updated_at, pdf_filename, pdf_path,
	submitted_overrides, overrides, resolved_config, output_dir, plate_path, zip_path, s3_key, error, events)
	VALUES (%s)
	ON CONFLICT (id) DO UPDATE SET
		display_label=excluded.display_label,
		effective_label=excluded.effective_label,
		status=excluded.status,
		created_at=excluded.created_at,
		updated_at=excluded.updated_at,
		pdf_filename=excluded.pdf_filename,
		pdf_path=excluded.pdf_path,
		submitted_overrides=excluded.submitted_overrides,
		overrides=excluded.overrides,
		resolved_config=excluded.resolved_config,
		output_dir=excluded.output_dir,
		plate_path=excluded.plate_path,
		zip_path=excluded.zip_path,
		s3_key=excluded.s3_key,
		error=excluded.error,
		events=excluded.events;`

// placeholders returns n comma separated placeholders
func placeholders(n int, placeholder func(int) string) string {
	vals := make([]string, n)
	for i := 0; i < n; i++ {
		vals[i] = placeholder(i + 1)
	}
	return strings.Join(vals, ", ")
}

// toJobSqlArgs converts a job into args for upsertJobSql. Timestamps are passed in
// already converted as drivers disagree on how they'd like them.
func toJobSqlArgs(j *structs.Job, created, updated interface{}) ([]interface{}, error) {
	submitted, err := encodeMap(j.SubmittedOverrides)
	if err != nil {
		return nil, err
	}
	overrides, err := encodeMap(j.Overrides)
	if err != nil {
		return nil, err
	}
	resolved, err := encodeMap(j.ResolvedConfig)
	if err != nil {
		return nil, err
	}
	events, err := encodeEvents(j.Events)
	if err != nil {
		return nil, err
	}
	return []interface{}{
		j.ID,
		j.DisplayLabel,
		j.Label,
		string(j.Status),
		created,
		updated,
		j.PDFFilename,
		j.PDFPath,
		submitted,
		overrides,
		resolved,
		j.OutputDir,
		nullable(j.PlatePath),
		nullable(j.ZipPath),
		nullable(j.S3Key),
		nullable(j.Error),
		events,
	}, nil
}

// decodeJobBlobs unpacks the JSON text columns of a job row
func decodeJobBlobs(j *structs.Job, submitted, overrides, resolved, events []byte) error {
	var err error
	j.SubmittedOverrides, err = decodeMap(submitted)
	if err != nil {
		return err
	}
	j.Overrides, err = decodeMap(overrides)
	if err != nil {
		return err
	}
	j.ResolvedConfig, err = decodeMap(resolved)
	if err != nil {
		return err
	}
	j.Events, err = decodeEvents(events)
	return err
}
