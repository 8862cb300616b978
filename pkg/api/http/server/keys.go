package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/voidshard/platen/pkg/api/http/common"
	"github.com/voidshard/platen/pkg/structs"
)

func (s *Server) Keys(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		keys, err := s.svc.Keys()
		if err != nil {
			http.Error(w, err.Error(), mapError(err))
			return
		}
		writeJson(w, keys)
	case http.MethodPost:
		req := &structs.CreateKeyRequest{}
		err := unmarshalJson(w, r, req)
		if err != nil {
			return
		}
		resp, err := s.svc.CreateKey(req)
		if err != nil {
			http.Error(w, err.Error(), mapError(err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		writeJson(w, resp)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) RevokeKey(w http.ResponseWriter, r *http.Request) {
	revoked, err := s.svc.RevokeKey(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	if !revoked {
		http.Error(w, "Key not found", http.StatusNotFound)
		return
	}
	writeJson(w, &common.DeleteResponse{Deleted: true})
}
