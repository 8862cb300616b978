package structs

// CreateJobRequest is what a caller hands over to start a new Job.
//
// PDFPath must point at an already stored upload; storing uploads is the
// transport's concern (see pkg/api/http/server).
type CreateJobRequest struct {
	DisplayLabel string                 `json:"display_label"`
	PDFFilename  string                 `json:"pdf_filename"`
	PDFPath      string                 `json:"pdf_path"`
	Overrides    map[string]interface{} `json:"overrides,omitempty"`
}

// RegenerateRequest asks for a completed job to be run again with some
// sections regenerated from scratch and / or edited per instruction.
type RegenerateRequest struct {
	RegenerateSections []string          `json:"regenerate_sections,omitempty"`
	EditSections       map[string]string `json:"edit_sections,omitempty"`
}

// DownloadResponse is a time limited link to a job's packaged output.
type DownloadResponse struct {
	URL              string `json:"download_url"`
	ExpiresInSeconds int64  `json:"expires_in_seconds"`
}
