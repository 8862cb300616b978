package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/voidshard/platen/pkg/api/http/common"
	ie "github.com/voidshard/platen/pkg/errors"
	"github.com/voidshard/platen/pkg/structs"
)

const (
	// multipart parts past this are spooled to disk
	multipartMemory = 8 << 20

	pdfContentType = "application/pdf"
)

func (s *Server) Jobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getJobs(w, r)
	case http.MethodPost:
		s.createJob(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) getJobs(w http.ResponseWriter, r *http.Request) {
	q := &structs.Query{}
	err := unmarshalQuery(w, r, q)
	if err != nil {
		return
	}

	items, err := s.svc.Jobs(q)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	if s.opts.Debug {
		log.Println(r.URL, "returned", len(items), "items")
	}

	writeJson(w, items)
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	err := r.ParseMultipartForm(multipartMemory)
	if err != nil {
		http.Error(w, fmt.Sprintf("bad multipart form: %v", err), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(common.FORM_PDF)
	if err != nil {
		http.Error(w, "a pdf file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		http.Error(w, "PDF file must have a filename", http.StatusBadRequest)
		return
	}
	if !isPDF(header) {
		http.Error(w, "Only PDF uploads are supported", http.StatusBadRequest)
		return
	}

	overrides, err := parseOverrides(r.FormValue(common.FORM_CONFIG))
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	refund, err := s.reserve(r)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	path, err := s.svc.StoreUpload(header.Filename, file)
	if err != nil {
		refund()
		http.Error(w, err.Error(), mapError(err))
		return
	}

	display := r.FormValue(common.FORM_LABEL)
	if display == "" {
		display = strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename))
	}

	summary, err := s.svc.CreateJob(&structs.CreateJobRequest{
		DisplayLabel: display,
		PDFFilename:  header.Filename,
		PDFPath:      path,
		Overrides:    overrides,
	})
	if err != nil {
		refund()
		http.Error(w, err.Error(), mapError(err))
		return
	}

	writeJson(w, summary)
}

func (s *Server) Job(w http.ResponseWriter, r *http.Request) {
	detail, err := s.svc.Job(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, detail)
}

func (s *Server) JobStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.JobStatus(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, st)
}

func (s *Server) DeleteJob(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.svc.DeleteJob(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	if !deleted {
		http.Error(w, "Job not found", http.StatusNotFound)
		return
	}
	writeJson(w, &common.DeleteResponse{Deleted: true})
}

func (s *Server) Plate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	switch r.Method {
	case http.MethodGet:
		plate, err := s.svc.LoadPlate(id)
		if err != nil {
			http.Error(w, err.Error(), mapError(err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(plate)
	case http.MethodPut:
		if r.Body == nil {
			http.Error(w, "No body", http.StatusBadRequest)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		err = s.svc.SavePlate(id, json.RawMessage(body))
		if err != nil {
			http.Error(w, err.Error(), mapError(err))
			return
		}
		writeJson(w, &common.StatusResponse{Status: common.StatusSaved})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) Regenerate(w http.ResponseWriter, r *http.Request) {
	req := &structs.RegenerateRequest{}
	err := unmarshalJson(w, r, req)
	if err != nil {
		return
	}

	refund, err := s.reserve(r)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	summary, err := s.svc.RegenerateJob(mux.Vars(r)["id"], req)
	if err != nil {
		refund()
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, summary)
}

func (s *Server) Download(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.DownloadURL(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	writeJson(w, resp)
}

func (s *Server) Output(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	path, err := s.svc.OutputFile(vars["id"], vars["path"])
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	http.ServeFile(w, r, path)
}

// reserve charges the caller's key for one job. The returned func hands the
// charge back if the job is not created after all.
func (s *Server) reserve(r *http.Request) (func(), error) {
	key := callerKey(r.Context())
	if key == nil {
		if s.opts.RequireKey {
			return nil, fmt.Errorf("%w an api key is required", ie.ErrUnauthorized)
		}
		return func() {}, nil
	}

	err := s.svc.ReserveQuota(key.ID)
	if err != nil {
		return nil, err
	}
	return func() {
		err := s.svc.RefundQuota(key.ID)
		if err != nil {
			log.Println("[Server] failed to refund quota for key", key.ID, err)
		}
	}, nil
}

// isPDF accepts a .pdf name or a pdf content type.
func isPDF(h *multipart.FileHeader) bool {
	if strings.HasSuffix(strings.ToLower(h.Filename), ".pdf") {
		return true
	}
	return h.Header.Get("Content-Type") == pdfContentType
}
