package common

const (
	// API_HEALTH reports the server is up
	API_HEALTH = "/healthz"

	// API_CONFIG describes the default pipeline configuration
	API_CONFIG = "/api/v1/config/defaults"

	// API_JOBS is used to list jobs or create one (multipart upload)
	API_JOBS = "/api/v1/jobs"

	// API_JOB gets or deletes (admin) a single job
	API_JOB = "/api/v1/jobs/{id}"

	// API_JOB_STATUS is the light weight status poll
	API_JOB_STATUS = "/api/v1/jobs/{id}/status"

	// API_JOB_PLATE reads or replaces a completed job's plate
	API_JOB_PLATE = "/api/v1/jobs/{id}/plate"

	// API_JOB_REGENERATE runs a completed job again with some sections redone
	API_JOB_REGENERATE = "/api/v1/jobs/{id}/regenerate"

	// API_JOB_DOWNLOAD returns a presigned link to the job's archive
	API_JOB_DOWNLOAD = "/api/v1/jobs/{id}/download"

	// API_JOB_OUTPUTS serves files from the job's output dir
	API_JOB_OUTPUTS = "/api/v1/jobs/{id}/outputs/"

	// API_KEYS lists or creates api keys (admin)
	API_KEYS = "/api/v1/keys"

	// API_KEY revokes an api key (admin)
	API_KEY = "/api/v1/keys/{id}"
)

const (
	// HEADER_API_KEY carries the caller's api key
	HEADER_API_KEY = "X-API-Key"

	// HEADER_ADMIN_TOKEN carries the admin token for key & job administration
	HEADER_ADMIN_TOKEN = "X-Admin-Token"
)

const (
	// FORM_PDF is the multipart field holding the uploaded document
	FORM_PDF = "pdf"

	// FORM_LABEL is the optional display label
	FORM_LABEL = "label"

	// FORM_CONFIG is a JSON object of config overrides
	FORM_CONFIG = "config"
)
