package structs

import (
	"os"
	"time"
)

// JobEvent is a single, append only, entry in a Job's history.
type JobEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Job is one request to run the pipeline over an uploaded document.
type Job struct {
	ID           string `json:"id"`
	DisplayLabel string `json:"display_label"`

	// Label is the filesystem safe, unique, label (the effective label).
	Label string `json:"label"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PDFFilename string `json:"pdf_filename"`
	PDFPath     string `json:"pdf_path"`

	// SubmittedOverrides are exactly what the caller sent us.
	SubmittedOverrides map[string]interface{} `json:"submitted_overrides"`

	// Overrides are the submitted overrides plus the keys we inject ("label", "pdf_path").
	Overrides map[string]interface{} `json:"overrides"`

	// ResolvedConfig is the merged & expanded configuration handed to the pipeline.
	ResolvedConfig map[string]interface{} `json:"resolved_config"`

	OutputDir string `json:"output_dir"`
	PlatePath string `json:"plate_path,omitempty"`
	ZipPath   string `json:"zip_path,omitempty"`
	S3Key     string `json:"s3_key,omitempty"`
	Error     string `json:"error,omitempty"`

	Events []*JobEvent `json:"events"`
}

// JobPatch lists the fields of a Job that may change after creation.
// Nil fields are left untouched.
type JobPatch struct {
	Status    *Status
	Error     *string
	S3Key     *string
	PlatePath *string
	ZipPath   *string

	// UpdatedAt is when the change was made. Zero lets the store stamp it.
	UpdatedAt time.Time
}

// Apply sets all non-nil patch fields on the job and bumps UpdatedAt.
func (p *JobPatch) Apply(j *Job, now time.Time) {
	if p != nil {
		if p.Status != nil {
			j.Status = *p.Status
		}
		if p.Error != nil {
			j.Error = *p.Error
		}
		if p.S3Key != nil {
			j.S3Key = *p.S3Key
		}
		if p.PlatePath != nil {
			j.PlatePath = *p.PlatePath
		}
		if p.ZipPath != nil {
			j.ZipPath = *p.ZipPath
		}
	}
	j.UpdatedAt = now
}

// IsEmpty is true if the patch changes nothing but the update time.
func (p *JobPatch) IsEmpty() bool {
	return p == nil || (p.Status == nil && p.Error == nil && p.S3Key == nil && p.PlatePath == nil && p.ZipPath == nil)
}

// JobSummary is the lightweight form of a Job used in listings.
type JobSummary struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	DisplayLabel   string    `json:"display_label"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	PDFFilename    string    `json:"pdf_filename"`
	OutputDir      string    `json:"output_dir"`
	PlateAvailable bool      `json:"plate_available"`
	ZipAvailable   bool      `json:"zip_available"`
}

// JobDetail is everything we know about a Job.
type JobDetail struct {
	JobSummary

	SubmittedOverrides map[string]interface{} `json:"submitted_overrides"`
	EffectiveOverrides map[string]interface{} `json:"effective_overrides"`
	ResolvedConfig     map[string]interface{} `json:"resolved_config"`
	Events             []*JobEvent            `json:"events"`
	Error              string                 `json:"error,omitempty"`
	S3Key              string                 `json:"s3_key,omitempty"`
}

// JobStatusView is the minimal status poll response.
type JobStatusView struct {
	Status         Status `json:"status"`
	Error          string `json:"error,omitempty"`
	PlateAvailable bool   `json:"plate_available"`
	ZipAvailable   bool   `json:"zip_available"`
}

func (j *Job) Summary() *JobSummary {
	return &JobSummary{
		ID:             j.ID,
		Label:          j.Label,
		DisplayLabel:   j.DisplayLabel,
		Status:         j.Status,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
		PDFFilename:    j.PDFFilename,
		OutputDir:      j.OutputDir,
		PlateAvailable: j.PlateAvailable(),
		ZipAvailable:   j.S3Key != "",
	}
}

func (j *Job) Detail() *JobDetail {
	c := j.Copy()
	return &JobDetail{
		JobSummary:         *j.Summary(),
		SubmittedOverrides: c.SubmittedOverrides,
		EffectiveOverrides: c.Overrides,
		ResolvedConfig:     c.ResolvedConfig,
		Events:             c.Events,
		Error:              c.Error,
		S3Key:              c.S3Key,
	}
}

func (j *Job) StatusView() *JobStatusView {
	return &JobStatusView{Status: j.Status, Error: j.Error, PlateAvailable: j.PlateAvailable(), ZipAvailable: j.S3Key != ""}
}

// PlateAvailable is true if a plate has been recorded and still exists on disk.
func (j *Job) PlateAvailable() bool {
	if j.PlatePath == "" {
		return false
	}
	_, err := os.Stat(j.PlatePath)
	return err == nil
}

// Copy returns a deep copy of the job.
func (j *Job) Copy() *Job {
	out := *j
	out.SubmittedOverrides = CopyMap(j.SubmittedOverrides)
	out.Overrides = CopyMap(j.Overrides)
	out.ResolvedConfig = CopyMap(j.ResolvedConfig)
	out.Events = make([]*JobEvent, len(j.Events))
	for i, e := range j.Events {
		ev := *e
		out.Events[i] = &ev
	}
	return &out
}

// CopyMap deep copies a JSON / YAML style map.
func CopyMap(in map[string]interface{}) map[string]interface{} {
	if in == nil {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return CopyMap(t)
	case []interface{}:
		l := make([]interface{}, len(t))
		for i, x := range t {
			l[i] = copyValue(x)
		}
		return l
	case []string:
		return append([]string{}, t...)
	case map[string]string:
		m := make(map[string]string, len(t))
		for k, x := range t {
			m[k] = x
		}
		return m
	default:
		return v
	}
}
