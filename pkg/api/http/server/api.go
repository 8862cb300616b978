package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/voidshard/platen/pkg/api"
	"github.com/voidshard/platen/pkg/api/http/common"
)

const (
	wait = 30 * time.Second
)

type Server struct {
	opts       *Options
	svc        api.API
	exit       chan os.Signal
	httpserver *http.Server
}

// sweeper is a limiter that needs a background janitor.
type sweeper interface {
	Run(ctx context.Context)
}

func (s *Server) ServeForever(svc api.API) error {

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	if sw, ok := s.opts.Limiter.(sweeper); ok {
		go sw.Run(ctx)
	}

	s.httpserver = &http.Server{
		Handler:      s.Handler(svc),
		Addr:         s.opts.Addr,
		TLSConfig:    s.opts.TLSConfig,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  5 * time.Minute, // uploads
	}

	go func() {
		log.Println("[Server] listening on", s.httpserver.Addr)
		var err error
		if s.opts.TLSConfig != nil {
			err = s.httpserver.ListenAndServeTLS("", "")
		} else {
			err = s.httpserver.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Println("[Server]", err)
		}
	}()

	signal.Notify(s.exit, os.Interrupt, syscall.SIGTERM)
	<-s.exit

	log.Println("[Server] shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	err := s.httpserver.Shutdown(shutCtx)
	if err != nil {
		log.Println("[Server] shutdown:", err)
	}
	return svc.Close()
}

// Handler returns the routes serving svc, without listening.
func (s *Server) Handler(svc api.API) http.Handler {
	s.svc = svc
	return s.router()
}

func (s *Server) router() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc(common.API_HEALTH, s.Health).Methods(http.MethodGet)

	// every api route identifies the caller & is rate limited
	v1 := func(h http.HandlerFunc) http.Handler {
		return s.identify(s.rateLimit(h))
	}

	router.Handle(common.API_CONFIG, v1(s.ConfigDefaults)).Methods(http.MethodGet)
	router.Handle(common.API_JOBS, v1(s.Jobs)).Methods(http.MethodGet, http.MethodPost)
	router.Handle(common.API_JOB, v1(s.Job)).Methods(http.MethodGet)
	router.Handle(common.API_JOB, v1(s.admin(s.DeleteJob))).Methods(http.MethodDelete)
	router.Handle(common.API_JOB_STATUS, v1(s.JobStatus)).Methods(http.MethodGet)
	router.Handle(common.API_JOB_PLATE, v1(s.Plate)).Methods(http.MethodGet, http.MethodPut)
	router.Handle(common.API_JOB_REGENERATE, v1(s.Regenerate)).Methods(http.MethodPost)
	router.Handle(common.API_JOB_DOWNLOAD, v1(s.Download)).Methods(http.MethodGet)
	router.Handle(common.API_JOB_OUTPUTS+"{path:.+}", v1(s.Output)).Methods(http.MethodGet)
	router.Handle(common.API_KEYS, v1(s.admin(s.Keys))).Methods(http.MethodGet, http.MethodPost)
	router.Handle(common.API_KEY, v1(s.admin(s.RevokeKey))).Methods(http.MethodDelete)

	if s.opts.Static != "" {
		log.Println("[Server] serving static files from", s.opts.Static)
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.opts.Static)))
	}

	if s.opts.Debug {
		log.Println("[Server] debug enabled, adding per-request logging middleware")
		router.Use(loggingMiddleware)
	}

	return router
}

func (s *Server) Close() error {
	s.exit <- os.Interrupt
	return nil
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(&common.StatusResponse{Status: common.StatusOK})
}

func (s *Server) ConfigDefaults(w http.ResponseWriter, r *http.Request) {
	writeJson(w, s.svc.ConfigMetadata())
}

func NewServer(opts *Options) *Server {
	if opts == nil {
		opts = &Options{}
	}
	opts.SetDefaults()
	return &Server{
		opts: opts,
		exit: make(chan os.Signal, 1),
	}
}
