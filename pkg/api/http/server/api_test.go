package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/voidshard/platen/internal/mocks/pkg/api_mock"
	"github.com/voidshard/platen/internal/mocks/pkg/ratelimit_mock"
	"github.com/voidshard/platen/pkg/api/http/common"
	ie "github.com/voidshard/platen/pkg/errors"
	"github.com/voidshard/platen/pkg/structs"
)

const (
	testJobID    = "0123456789abcdef0123456789abcdef"
	testAdmin    = "let-me-in"
	testKeyRaw   = "plt_secret"
	testRemoteIP = "192.0.2.1" // httptest.NewRequest default
)

type testServer struct {
	s   *Server
	svc *api_mock.MockAPI
	lim *ratelimit_mock.MockLimiter
	h   http.Handler
}

// newTestServer returns a server whose limiter allows everything unless told otherwise.
func newTestServer(t *testing.T, opts *Options, allow bool) *testServer {
	ctrl := gomock.NewController(t)
	if opts == nil {
		opts = &Options{}
	}
	lim := ratelimit_mock.NewMockLimiter(ctrl)
	if allow {
		lim.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
	}
	opts.Limiter = lim

	s := NewServer(opts)
	svc := api_mock.NewMockAPI(ctrl)
	s.svc = svc
	return &testServer{s: s, svc: svc, lim: lim, h: s.router()}
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.h.ServeHTTP(rec, req)
	return rec
}

type upload struct {
	Filename    string
	ContentType string
	Label       string
	Config      string
}

func newUploadRequest(t *testing.T, u *upload) *http.Request {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	if u.Filename != "-" {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, common.FORM_PDF, u.Filename))
		if u.ContentType != "" {
			hdr.Set("Content-Type", u.ContentType)
		}
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte("%PDF-1.4"))
	}
	if u.Label != "" {
		mw.WriteField(common.FORM_LABEL, u.Label)
	}
	if u.Config != "" {
		mw.WriteField(common.FORM_CONFIG, u.Config)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, common.API_JOBS, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestMapError(t *testing.T) {
	cases := []struct {
		Name   string
		Err    error
		Expect int
	}{
		{"Nil", nil, http.StatusOK},
		{"Validation", fmt.Errorf("%w bad", ie.ErrValidation), http.StatusBadRequest},
		{"NotFound", fmt.Errorf("%w job", ie.ErrNotFound), http.StatusNotFound},
		{"InvalidState", fmt.Errorf("%w running", ie.ErrInvalidState), http.StatusConflict},
		{"Configuration", fmt.Errorf("%w unknown key", ie.ErrConfiguration), http.StatusUnprocessableEntity},
		{"Unauthorized", ie.ErrUnauthorized, http.StatusUnauthorized},
		{"Quota", ie.ErrQuotaExceeded, http.StatusForbidden},
		{"Rate", ie.ErrRateLimited, http.StatusTooManyRequests},
		{"Storage", fmt.Errorf("%w presign", ie.ErrStorage), http.StatusBadGateway},
		{"Queue", fmt.Errorf("%w redis down", ie.ErrQueue), http.StatusServiceUnavailable},
		{"Persistence", ie.ErrPersistence, http.StatusInternalServerError},
		{"Unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, mapError(c.Err))
		})
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil, true)

	rec := ts.do(httptest.NewRequest(http.MethodGet, common.API_HEALTH, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestConfigDefaults(t *testing.T) {
	ts := newTestServer(t, nil, true)
	ts.svc.EXPECT().ConfigMetadata().Return(&structs.ConfigMetadata{RenderStrategies: []string{"dynamic"}})

	rec := ts.do(httptest.NewRequest(http.MethodGet, common.API_CONFIG, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	result := &structs.ConfigMetadata{}
	assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), result))
	assert.Equal(t, []string{"dynamic"}, result.RenderStrategies)
}

func TestGetJobs(t *testing.T) {
	ts := newTestServer(t, nil, true)

	ts.svc.EXPECT().Jobs(gomock.Any()).DoAndReturn(func(q *structs.Query) ([]*structs.JobSummary, error) {
		assert.Equal(t, 5, q.Limit)
		assert.Equal(t, 10, q.Offset)
		assert.Equal(t, []structs.Status{structs.FAILED}, q.Statuses)
		return []*structs.JobSummary{{ID: testJobID}}, nil
	})

	rec := ts.do(httptest.NewRequest(http.MethodGet, common.API_JOBS+"?limit=5&offset=10&statuses=failed", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	result := []*structs.JobSummary{}
	assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, len(result))
	assert.Equal(t, testJobID, result[0].ID)
}

func TestGetJobsBadQuery(t *testing.T) {
	cases := []struct {
		Name  string
		Query string
	}{
		{"Limit", "limit=many"},
		{"Offset", "offset=-x"},
		{"Status", "statuses=paused"},
		{"JobID", "job_ids=../../etc"},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			ts := newTestServer(t, nil, true)

			rec := ts.do(httptest.NewRequest(http.MethodGet, common.API_JOBS+"?"+c.Query, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateJob(t *testing.T) {
	ts := newTestServer(t, nil, true)

	ts.svc.EXPECT().StoreUpload("My Book.pdf", gomock.Any()).DoAndReturn(func(name string, r io.Reader) (string, error) {
		data, err := io.ReadAll(r)
		assert.Nil(t, err)
		assert.Equal(t, "%PDF-1.4", string(data))
		return "/uploads/x/My-Book.pdf", nil
	})
	ts.svc.EXPECT().CreateJob(gomock.Any()).DoAndReturn(func(req *structs.CreateJobRequest) (*structs.JobSummary, error) {
		assert.Equal(t, "My Book", req.DisplayLabel)
		assert.Equal(t, "My Book.pdf", req.PDFFilename)
		assert.Equal(t, "/uploads/x/My-Book.pdf", req.PDFPath)
		assert.Equal(t, map[string]interface{}{"model": "gpt-4o-mini"}, req.Overrides)
		return &structs.JobSummary{ID: testJobID, Status: structs.PENDING}, nil
	})

	rec := ts.do(newUploadRequest(t, &upload{
		Filename: "My Book.pdf",
		Config:   `{"model": "gpt-4o-mini", "temperature": null}`,
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	result := &structs.JobSummary{}
	assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), result))
	assert.Equal(t, testJobID, result.ID)
	assert.Equal(t, structs.PENDING, result.Status)
}

func TestCreateJobByContentType(t *testing.T) {
	ts := newTestServer(t, nil, true)

	ts.svc.EXPECT().StoreUpload("scan", gomock.Any()).Return("/uploads/x/scan.pdf", nil)
	ts.svc.EXPECT().CreateJob(gomock.Any()).DoAndReturn(func(req *structs.CreateJobRequest) (*structs.JobSummary, error) {
		assert.Equal(t, "Scanned", req.DisplayLabel)
		assert.Equal(t, map[string]interface{}{}, req.Overrides)
		return &structs.JobSummary{ID: testJobID}, nil
	})

	rec := ts.do(newUploadRequest(t, &upload{Filename: "scan", ContentType: pdfContentType, Label: "Scanned"}))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateJobInvalid(t *testing.T) {
	cases := []struct {
		Name   string
		Upload *upload
	}{
		{"NoFile", &upload{Filename: "-"}},
		{"NotPDF", &upload{Filename: "notes.txt", ContentType: "text/plain"}},
		{"BadConfig", &upload{Filename: "a.pdf", Config: `{"model":`}},
		{"ConfigNotObject", &upload{Filename: "a.pdf", Config: `[1, 2]`}},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			ts := newTestServer(t, nil, true)

			rec := ts.do(newUploadRequest(t, c.Upload))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateJobQuota(t *testing.T) {
	key := &structs.APIKey{ID: "k1", IsActive: true}

	cases := []struct {
		Name       string
		ReserveErr error
		StoreErr   error
		CreateErr  error
		Refund     bool
		Expect     int
	}{
		{Name: "Created", Expect: http.StatusOK},
		{Name: "Exceeded", ReserveErr: fmt.Errorf("%w k1", ie.ErrQuotaExceeded), Expect: http.StatusForbidden},
		{Name: "UploadFailed", StoreErr: fmt.Errorf("%w disk full", ie.ErrPersistence), Refund: true, Expect: http.StatusInternalServerError},
		{Name: "CreateFailed", CreateErr: fmt.Errorf("%w unknown key", ie.ErrConfiguration), Refund: true, Expect: http.StatusUnprocessableEntity},
		{Name: "QueueFailed", CreateErr: fmt.Errorf("%w redis down", ie.ErrQueue), Refund: true, Expect: http.StatusServiceUnavailable},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			ts := newTestServer(t, &Options{RequireKey: true}, true)

			ts.svc.EXPECT().ValidateKey(testKeyRaw).Return(key, nil)
			ts.svc.EXPECT().ReserveQuota("k1").Return(c.ReserveErr)
			if c.ReserveErr == nil {
				ts.svc.EXPECT().StoreUpload(gomock.Any(), gomock.Any()).Return("/uploads/x/a.pdf", c.StoreErr)
			}
			if c.ReserveErr == nil && c.StoreErr == nil {
				ts.svc.EXPECT().CreateJob(gomock.Any()).Return(&structs.JobSummary{ID: testJobID}, c.CreateErr)
			}
			if c.Refund {
				ts.svc.EXPECT().RefundQuota("k1").Return(nil)
			}

			req := newUploadRequest(t, &upload{Filename: "a.pdf"})
			req.Header.Set(common.HEADER_API_KEY, testKeyRaw)

			rec := ts.do(req)

			assert.Equal(t, c.Expect, rec.Code)
		})
	}
}

func TestCreateJobRequiresKey(t *testing.T) {
	ts := newTestServer(t, &Options{RequireKey: true}, true)

	rec := ts.do(newUploadRequest(t, &upload{Filename: "a.pdf"}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInvalidKeyRefused(t *testing.T) {
	ts := newTestServer(t, nil, true)
	ts.svc.EXPECT().ValidateKey("plt_nope").Return(nil, fmt.Errorf("%w api key", ie.ErrNotFound))

	req := httptest.NewRequest(http.MethodGet, common.API_JOBS, nil)
	req.Header.Set(common.HEADER_API_KEY, "plt_nope")

	rec := ts.do(req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cases := []struct {
		Name     string
		Key      *structs.APIKey
		ExpectID string
		Allow    bool
		LimitErr error
		Expect   int
	}{
		{"AnonymousAllowed", nil, "ip:" + testRemoteIP, true, nil, http.StatusOK},
		{"AnonymousLimited", nil, "ip:" + testRemoteIP, false, nil, http.StatusTooManyRequests},
		{"KeyLimited", &structs.APIKey{ID: "k1"}, "key:k1", false, nil, http.StatusTooManyRequests},
		{"LimiterDown", nil, "ip:" + testRemoteIP, false, fmt.Errorf("redis gone"), http.StatusOK},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			ts := newTestServer(t, nil, false)

			req := httptest.NewRequest(http.MethodGet, common.API_JOBS, nil)
			if c.Key != nil {
				req.Header.Set(common.HEADER_API_KEY, testKeyRaw)
				ts.svc.EXPECT().ValidateKey(testKeyRaw).Return(c.Key, nil)
			}
			ts.lim.EXPECT().Allow(gomock.Any(), c.ExpectID).Return(c.Allow, c.LimitErr)
			if c.Expect == http.StatusOK {
				ts.svc.EXPECT().Jobs(gomock.Any()).Return([]*structs.JobSummary{}, nil)
			}

			rec := ts.do(req)

			assert.Equal(t, c.Expect, rec.Code)
		})
	}
}

func TestGlobalRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	global := ratelimit_mock.NewMockLimiter(ctrl)
	global.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(false, nil)

	ts := newTestServer(t, &Options{Global: global}, false)

	rec := ts.do(httptest.NewRequest(http.MethodGet, common.API_JOBS, nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestHealthNotRateLimited(t *testing.T) {
	ts := newTestServer(t, nil, false)

	rec := ts.do(httptest.NewRequest(http.MethodGet, common.API_HEALTH, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJobLookups(t *testing.T) {
	notFound := fmt.Errorf("%w job %s", ie.ErrNotFound, testJobID)

	cases := []struct {
		Name   string
		Path   string
		Setup  func(svc *api_mock.MockAPI)
		Expect int
		Body   string
	}{
		{
			Name: "Job",
			Path: "/api/v1/jobs/" + testJobID,
			Setup: func(svc *api_mock.MockAPI) {
				svc.EXPECT().Job(testJobID).Return(&structs.JobDetail{JobSummary: structs.JobSummary{ID: testJobID}}, nil)
			},
			Expect: http.StatusOK,
		},
		{
			Name: "JobMissing",
			Path: "/api/v1/jobs/" + testJobID,
			Setup: func(svc *api_mock.MockAPI) {
				svc.EXPECT().Job(testJobID).Return(nil, notFound)
			},
			Expect: http.StatusNotFound,
		},
		{
			Name: "Status",
			Path: "/api/v1/jobs/" + testJobID + "/status",
			Setup: func(svc *api_mock.MockAPI) {
				svc.EXPECT().JobStatus(testJobID).Return(&structs.JobStatusView{Status: structs.FAILED, Error: "boom"}, nil)
			},
			Expect: http.StatusOK,
			Body:   `{"status": "failed", "error": "boom", "plate_available": false, "zip_available": false}`,
		},
		{
			Name: "Download",
			Path: "/api/v1/jobs/" + testJobID + "/download",
			Setup: func(svc *api_mock.MockAPI) {
				svc.EXPECT().DownloadURL(gomock.Any(), testJobID).Return(&structs.DownloadResponse{URL: "https://s3/x", ExpiresInSeconds: 3600}, nil)
			},
			Expect: http.StatusOK,
			Body:   `{"download_url": "https://s3/x", "expires_in_seconds": 3600}`,
		},
		{
			Name: "DownloadPresignFails",
			Path: "/api/v1/jobs/" + testJobID + "/download",
			Setup: func(svc *api_mock.MockAPI) {
				svc.EXPECT().DownloadURL(gomock.Any(), testJobID).Return(nil, fmt.Errorf("%w presign", ie.ErrStorage))
			},
			Expect: http.StatusBadGateway,
		},
		{
			Name: "Plate",
			Path: "/api/v1/jobs/" + testJobID + "/plate",
			Setup: func(svc *api_mock.MockAPI) {
				svc.EXPECT().LoadPlate(testJobID).Return(json.RawMessage(`{"sections": []}`), nil)
			},
			Expect: http.StatusOK,
			Body:   `{"sections": []}`,
		},
		{
			Name: "OutputMissing",
			Path: "/api/v1/jobs/" + testJobID + "/outputs/pages/nope.html",
			Setup: func(svc *api_mock.MockAPI) {
				svc.EXPECT().OutputFile(testJobID, "pages/nope.html").Return("", fmt.Errorf("%w output", ie.ErrNotFound))
			},
			Expect: http.StatusNotFound,
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			ts := newTestServer(t, nil, true)
			c.Setup(ts.svc)

			rec := ts.do(httptest.NewRequest(http.MethodGet, c.Path, nil))

			assert.Equal(t, c.Expect, rec.Code)
			if c.Body != "" {
				assert.JSONEq(t, c.Body, rec.Body.String())
			}
		})
	}
}

func TestOutputServesFile(t *testing.T) {
	ts := newTestServer(t, nil, true)

	path := filepath.Join(t.TempDir(), "page1.html")
	os.WriteFile(path, []byte("<h1>hi</h1>"), 0644)
	ts.svc.EXPECT().OutputFile(testJobID, "pages/page1.html").Return(path, nil)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+testJobID+"/outputs/pages/page1.html", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<h1>hi</h1>", rec.Body.String())
}

func TestSavePlate(t *testing.T) {
	cases := []struct {
		Name   string
		Err    error
		Expect int
	}{
		{"Saved", nil, http.StatusOK},
		{"NotCompleted", fmt.Errorf("%w job must be completed", ie.ErrInvalidState), http.StatusConflict},
		{"NotObject", fmt.Errorf("%w plate must be a JSON object", ie.ErrValidation), http.StatusBadRequest},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			ts := newTestServer(t, nil, true)
			ts.svc.EXPECT().SavePlate(testJobID, json.RawMessage(`{"title": "x"}`)).Return(c.Err)

			rec := ts.do(httptest.NewRequest(http.MethodPut, "/api/v1/jobs/"+testJobID+"/plate", strings.NewReader(`{"title": "x"}`)))

			assert.Equal(t, c.Expect, rec.Code)
			if c.Err == nil {
				assert.JSONEq(t, `{"status": "saved"}`, rec.Body.String())
			}
		})
	}
}

func TestRegenerate(t *testing.T) {
	key := &structs.APIKey{ID: "k1", IsActive: true}

	cases := []struct {
		Name   string
		Err    error
		Expect int
	}{
		{"Created", nil, http.StatusOK},
		{"NotCompleted", fmt.Errorf("%w source not completed", ie.ErrInvalidState), http.StatusConflict},
		{"Overlap", fmt.Errorf("%w section in both", ie.ErrValidation), http.StatusBadRequest},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			ts := newTestServer(t, nil, true)

			ts.svc.EXPECT().ValidateKey(testKeyRaw).Return(key, nil)
			ts.svc.EXPECT().ReserveQuota("k1").Return(nil)
			ts.svc.EXPECT().RegenerateJob(testJobID, gomock.Any()).DoAndReturn(func(id string, req *structs.RegenerateRequest) (*structs.JobSummary, error) {
				assert.Equal(t, []string{"s1"}, req.RegenerateSections)
				if c.Err != nil {
					return nil, c.Err
				}
				return &structs.JobSummary{ID: "fedcba9876543210fedcba9876543210"}, nil
			})
			if c.Err != nil {
				ts.svc.EXPECT().RefundQuota("k1").Return(nil)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/"+testJobID+"/regenerate", strings.NewReader(`{"regenerate_sections": ["s1"]}`))
			req.Header.Set(common.HEADER_API_KEY, testKeyRaw)

			rec := ts.do(req)

			assert.Equal(t, c.Expect, rec.Code)
		})
	}
}

func TestRegenerateUnknownField(t *testing.T) {
	ts := newTestServer(t, nil, true)

	rec := ts.do(httptest.NewRequest(http.MethodPost, "/api/v1/jobs/"+testJobID+"/regenerate", strings.NewReader(`{"sections": ["s1"]}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutes(t *testing.T) {
	cases := []struct {
		Name   string
		Token  string
		Given  string
		Expect int
	}{
		{"Disabled", "", testAdmin, http.StatusForbidden},
		{"Missing", testAdmin, "", http.StatusUnauthorized},
		{"Wrong", testAdmin, "let-me-out", http.StatusUnauthorized},
		{"Allowed", testAdmin, testAdmin, http.StatusOK},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			ts := newTestServer(t, &Options{AdminToken: c.Token}, true)
			if c.Expect == http.StatusOK {
				ts.svc.EXPECT().Keys().Return([]*structs.APIKey{{ID: "k1"}}, nil)
			}

			req := httptest.NewRequest(http.MethodGet, common.API_KEYS, nil)
			if c.Given != "" {
				req.Header.Set(common.HEADER_ADMIN_TOKEN, c.Given)
			}

			rec := ts.do(req)

			assert.Equal(t, c.Expect, rec.Code)
		})
	}
}

func TestCreateKey(t *testing.T) {
	ts := newTestServer(t, &Options{AdminToken: testAdmin}, true)
	ts.svc.EXPECT().CreateKey(&structs.CreateKeyRequest{Owner: "alice", MaxGenerations: 5}).Return(&structs.CreateKeyResponse{
		Key:    testKeyRaw,
		Record: &structs.APIKey{ID: "k1", Owner: "alice", MaxGenerations: 5, IsActive: true},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, common.API_KEYS, strings.NewReader(`{"owner": "alice", "max_generations": 5}`))
	req.Header.Set(common.HEADER_ADMIN_TOKEN, testAdmin)

	rec := ts.do(req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	result := &structs.CreateKeyResponse{}
	assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), result))
	assert.Equal(t, testKeyRaw, result.Key)
	assert.Equal(t, "k1", result.Record.ID)
}

func TestRevokeKeyAndDeleteJob(t *testing.T) {
	cases := []struct {
		Name   string
		Method string
		Path   string
		Setup  func(svc *api_mock.MockAPI)
		Expect int
	}{
		{
			Name: "Revoked",
			Path: "/api/v1/keys/k1",
			Setup: func(svc *api_mock.MockAPI) {
				svc.EXPECT().RevokeKey("k1").Return(true, nil)
			},
			Expect: http.StatusOK,
		},
		{
			Name: "RevokeMissing",
			Path: "/api/v1/keys/k1",
			Setup: func(svc *api_mock.MockAPI) {
				svc.EXPECT().RevokeKey("k1").Return(false, nil)
			},
			Expect: http.StatusNotFound,
		},
		{
			Name: "Deleted",
			Path: "/api/v1/jobs/" + testJobID,
			Setup: func(svc *api_mock.MockAPI) {
				svc.EXPECT().DeleteJob(testJobID).Return(true, nil)
			},
			Expect: http.StatusOK,
		},
		{
			Name: "DeleteRunning",
			Path: "/api/v1/jobs/" + testJobID,
			Setup: func(svc *api_mock.MockAPI) {
				svc.EXPECT().DeleteJob(testJobID).Return(false, fmt.Errorf("%w job is running", ie.ErrInvalidState))
			},
			Expect: http.StatusConflict,
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			ts := newTestServer(t, &Options{AdminToken: testAdmin}, true)
			c.Setup(ts.svc)

			req := httptest.NewRequest(http.MethodDelete, c.Path, nil)
			req.Header.Set(common.HEADER_ADMIN_TOKEN, testAdmin)

			rec := ts.do(req)

			assert.Equal(t, c.Expect, rec.Code)
		})
	}
}

func TestIdentifyAttachesKey(t *testing.T) {
	ts := newTestServer(t, nil, true)
	key := &structs.APIKey{ID: "k1"}
	ts.svc.EXPECT().ValidateKey(testKeyRaw).Return(key, nil)

	var seen *structs.APIKey
	h := ts.s.identify(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = callerKey(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, common.API_JOBS, nil)
	req.Header.Set(common.HEADER_API_KEY, testKeyRaw)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, key, seen)
	assert.Nil(t, callerKey(context.Background()))
}

func TestParseOverrides(t *testing.T) {
	out, err := parseOverrides(`{"a": null, "b": {"c": null}, "d": 1}`)

	assert.Nil(t, err)
	assert.Equal(t, map[string]interface{}{"b": map[string]interface{}{"c": nil}, "d": float64(1)}, out)

	_, err = parseOverrides(`nope`)
	assert.True(t, errors.Is(err, ie.ErrValidation))
}
