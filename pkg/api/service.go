package api

import (
	"github.com/hashicorp/go-multierror"

	"github.com/voidshard/platen/internal/core"
	"github.com/voidshard/platen/pkg/config"
	"github.com/voidshard/platen/pkg/database"
	"github.com/voidshard/platen/pkg/pipeline"
	"github.com/voidshard/platen/pkg/quota"
	"github.com/voidshard/platen/pkg/queue"
	"github.com/voidshard/platen/pkg/storage"
	"github.com/voidshard/platen/pkg/structs"
)

// Service joins the job manager & the key ledger over one database.
type Service struct {
	*core.Manager

	db   database.Database
	keys *quota.Ledger
}

// New builds everything Platen needs from options.
func New(opts *Options) (*Service, error) {
	if opts == nil {
		opts = OptionsDefault()
	}
	opts.SetDefaults()

	exec, err := pipeline.NewCommand(opts.PipelineCommand)
	if err != nil {
		return nil, err
	}

	cfg, err := config.NewResolver(opts.Config)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(opts.Storage)
	if err != nil {
		return nil, err
	}

	db, err := database.New(opts.Database)
	if err != nil {
		return nil, err
	}

	qu, err := queue.New(opts.Queue)
	if err != nil {
		db.Close()
		return nil, err
	}

	svc, err := NewAPI(db, qu, cfg, exec, store, opts.Manager)
	if err != nil {
		qu.Close()
		db.Close()
		return nil, err
	}
	return svc, nil
}

// NewAPI builds a Service from already made parts.
func NewAPI(db database.Database, qu queue.Queue, cfg core.ConfigResolver, exec pipeline.Executor, store storage.Store, opts *core.Options) (*Service, error) {
	mgr, err := core.NewManager(db, qu, cfg, exec, store, opts)
	if err != nil {
		return nil, err
	}
	return &Service{Manager: mgr, db: db, keys: quota.NewLedger(db)}, nil
}

// Close stops the workers, then the database.
func (s *Service) Close() error {
	var errs error
	err := s.Manager.Close()
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	err = s.db.Close()
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs
}

func (s *Service) CreateKey(req *structs.CreateKeyRequest) (*structs.CreateKeyResponse, error) {
	raw, rec, err := s.keys.CreateKey(req.Owner, req.MaxGenerations)
	if err != nil {
		return nil, err
	}
	return &structs.CreateKeyResponse{Key: raw, Record: rec}, nil
}

func (s *Service) ValidateKey(raw string) (*structs.APIKey, error) {
	return s.keys.ValidateKey(raw)
}

func (s *Service) Keys() ([]*structs.APIKey, error) {
	return s.keys.Keys()
}

func (s *Service) RevokeKey(id string) (bool, error) {
	return s.keys.RevokeKey(id)
}

func (s *Service) ReserveQuota(keyID string) error {
	return s.keys.Reserve(keyID)
}

func (s *Service) RefundQuota(keyID string) error {
	return s.keys.Refund(keyID)
}
