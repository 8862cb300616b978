package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/voidshard/platen/pkg/api/http/common"
	ie "github.com/voidshard/platen/pkg/errors"
	"github.com/voidshard/platen/pkg/structs"
)

// statusErrors turns server status codes back into Platen errors
var statusErrors = map[int]error{
	http.StatusBadRequest:          ie.ErrValidation,
	http.StatusUnauthorized:        ie.ErrUnauthorized,
	http.StatusForbidden:           ie.ErrQuotaExceeded,
	http.StatusNotFound:            ie.ErrNotFound,
	http.StatusConflict:            ie.ErrInvalidState,
	http.StatusUnprocessableEntity: ie.ErrConfiguration,
	http.StatusTooManyRequests:     ie.ErrRateLimited,
	http.StatusBadGateway:          ie.ErrStorage,
	http.StatusServiceUnavailable:  ie.ErrQueue,
}

// genericDo sends a request & unmarshals the response into out (if not nil).
func (c *Client) genericDo(method string, addr *url.URL, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequest(method, addr.String(), body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.key != "" {
		req.Header.Set(common.HEADER_API_KEY, c.key)
	}
	if c.adminToken != "" {
		req.Header.Set(common.HEADER_ADMIN_TOKEN, c.adminToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 { // some error code, assume message is error message
		if sentinel, ok := statusErrors[resp.StatusCode]; ok {
			return fmt.Errorf("%w status code %d, returned %s", sentinel, resp.StatusCode, bytes.TrimSpace(data))
		}
		return fmt.Errorf("bad status code %d, returned %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	return json.Unmarshal(data, out)
}

// genericGet is a helper to GET data from a given URL and unmarshal the response.
// Implies the Query string is already set, if needed.
func (c *Client) genericGet(addr *url.URL, out interface{}) error {
	return c.genericDo(http.MethodGet, addr, "", nil, out)
}

// genericSend is a helper to send JSON with the given method & unmarshal the response
func (c *Client) genericSend(method string, addr *url.URL, in interface{}, out interface{}) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.genericDo(method, addr, "application/json", bytes.NewBuffer(data), out)
}

// uploadForm builds the multipart body for job creation.
func uploadForm(pdfPath, label string, overrides map[string]interface{}) (*bytes.Buffer, string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	part, err := mw.CreateFormFile(common.FORM_PDF, filepath.Base(pdfPath))
	if err != nil {
		return nil, "", err
	}
	_, err = io.Copy(part, f)
	if err != nil {
		return nil, "", err
	}

	if label != "" {
		err = mw.WriteField(common.FORM_LABEL, label)
		if err != nil {
			return nil, "", err
		}
	}
	if len(overrides) > 0 {
		data, err := json.Marshal(overrides)
		if err != nil {
			return nil, "", err
		}
		err = mw.WriteField(common.FORM_CONFIG, string(data))
		if err != nil {
			return nil, "", err
		}
	}

	err = mw.Close()
	if err != nil {
		return nil, "", err
	}
	return body, mw.FormDataContentType(), nil
}

// setQueryString sets the query string of a URL based on the given query object.
func setQueryString(u *url.URL, q *structs.Query) {
	if q == nil {
		return
	}
	q.Sanitize()
	values := u.Query()

	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		values.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.JobIDs != nil {
		values["job_ids"] = q.JobIDs
	}
	if q.Statuses != nil {
		ss := []string{}
		for _, s := range q.Statuses {
			ss = append(ss, string(s))
		}
		values["statuses"] = ss
	}

	u.RawQuery = values.Encode()
}
