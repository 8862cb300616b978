package common

const (
	StatusOK    = "ok"
	StatusSaved = "saved"
)

// StatusResponse is returned by calls that have nothing else to say.
type StatusResponse struct {
	Status string `json:"status"`
}

// DeleteResponse reports if a delete / revoke changed anything.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
