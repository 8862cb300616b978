package client

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/voidshard/platen/pkg/api/http/common"
	"github.com/voidshard/platen/pkg/structs"
)

type Client struct {
	url        *url.URL
	key        string
	adminToken string
	http       *http.Client
}

func New(address string) (*Client, error) {
	u, err := url.Parse(address)
	return &Client{url: u, http: &http.Client{Timeout: 5 * time.Minute}}, err
}

// WithKey sets the X-API-Key sent with every request.
func (c *Client) WithKey(key string) *Client {
	c.key = key
	return c
}

// WithAdminToken sets the X-Admin-Token sent with every request.
func (c *Client) WithAdminToken(token string) *Client {
	c.adminToken = token
	return c
}

func (c *Client) Health() error {
	var out common.StatusResponse
	return c.genericGet(c.addr(common.API_HEALTH), &out)
}

func (c *Client) ConfigMetadata() (*structs.ConfigMetadata, error) {
	var out structs.ConfigMetadata
	return &out, c.genericGet(c.addr(common.API_CONFIG), &out)
}

func (c *Client) Jobs(q *structs.Query) ([]*structs.JobSummary, error) {
	addr := c.addr(common.API_JOBS)
	setQueryString(addr, q)
	var out []*structs.JobSummary
	err := c.genericGet(addr, &out)
	return out, err
}

func (c *Client) Job(id string) (*structs.JobDetail, error) {
	var out structs.JobDetail
	return &out, c.genericGet(c.jobAddr(common.API_JOB, id), &out)
}

func (c *Client) JobStatus(id string) (*structs.JobStatusView, error) {
	var out structs.JobStatusView
	return &out, c.genericGet(c.jobAddr(common.API_JOB_STATUS, id), &out)
}

// CreateJob uploads the PDF at pdfPath & starts a job for it.
func (c *Client) CreateJob(pdfPath, label string, overrides map[string]interface{}) (*structs.JobSummary, error) {
	body, contentType, err := uploadForm(pdfPath, label, overrides)
	if err != nil {
		return nil, err
	}
	var out structs.JobSummary
	return &out, c.genericDo(http.MethodPost, c.addr(common.API_JOBS), contentType, body, &out)
}

func (c *Client) RegenerateJob(id string, req *structs.RegenerateRequest) (*structs.JobSummary, error) {
	var out structs.JobSummary
	return &out, c.genericSend(http.MethodPost, c.jobAddr(common.API_JOB_REGENERATE, id), req, &out)
}

func (c *Client) DeleteJob(id string) (bool, error) {
	var out common.DeleteResponse
	err := c.genericDo(http.MethodDelete, c.jobAddr(common.API_JOB, id), "", nil, &out)
	return out.Deleted, err
}

func (c *Client) LoadPlate(id string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.genericGet(c.jobAddr(common.API_JOB_PLATE, id), &out)
	return out, err
}

func (c *Client) SavePlate(id string, plate json.RawMessage) error {
	var out common.StatusResponse
	return c.genericSend(http.MethodPut, c.jobAddr(common.API_JOB_PLATE, id), plate, &out)
}

func (c *Client) DownloadURL(id string) (*structs.DownloadResponse, error) {
	var out structs.DownloadResponse
	return &out, c.genericGet(c.jobAddr(common.API_JOB_DOWNLOAD, id), &out)
}

func (c *Client) Keys() ([]*structs.APIKey, error) {
	var out []*structs.APIKey
	err := c.genericGet(c.addr(common.API_KEYS), &out)
	return out, err
}

func (c *Client) CreateKey(req *structs.CreateKeyRequest) (*structs.CreateKeyResponse, error) {
	var out structs.CreateKeyResponse
	return &out, c.genericSend(http.MethodPost, c.addr(common.API_KEYS), req, &out)
}

func (c *Client) RevokeKey(id string) (bool, error) {
	var out common.DeleteResponse
	err := c.genericDo(http.MethodDelete, c.jobAddr(common.API_KEY, id), "", nil, &out)
	return out.Deleted, err
}

func (c *Client) addr(path string) *url.URL {
	return &url.URL{Scheme: c.url.Scheme, Host: c.url.Host, Path: path}
}

// jobAddr fills the {id} of a route.
func (c *Client) jobAddr(route, id string) *url.URL {
	return c.addr(strings.Replace(route, "{id}", url.PathEscape(id), 1))
}
