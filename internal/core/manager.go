package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cast"

	"github.com/voidshard/platen/internal/utils"
	"github.com/voidshard/platen/pkg/database"
	ie "github.com/voidshard/platen/pkg/errors"
	"github.com/voidshard/platen/pkg/pipeline"
	"github.com/voidshard/platen/pkg/queue"
	"github.com/voidshard/platen/pkg/storage"
	"github.com/voidshard/platen/pkg/structs"
)

const (
	configFilename             = "config.yaml"
	submittedOverridesFilename = "submitted_overrides.json"
	effectiveOverridesFilename = "effective_overrides.json"
	plateFilename              = "plate.json"

	keyLabel              = "label"
	keyPDFPath            = "pdf_path"
	keyRunOutputDir       = "run_output_dir"
	keyRegenerateSections = "regenerate_sections"
	keyEditSections       = "edit_sections"

	maxDisplayLabelLength = 500
	hydrateBatchSize      = 1000

	msgRegistered = "Job registered and awaiting execution."
)

var (
	timeNow = func() time.Time { return time.Now().UTC() }
)

// ConfigResolver turns job overrides into a full pipeline configuration.
type ConfigResolver interface {
	Resolve(overrides map[string]interface{}) (map[string]interface{}, error)
	Metadata() *structs.ConfigMetadata
}

// Manager owns the lifecycle of every job: creation, dispatch, execution &
// queries. The registry is the live view; the JobStore is written through on
// every change so jobs survive a restart.
type Manager struct {
	opts *Options

	db    database.JobStore
	qu    queue.Queue
	cfg   ConfigResolver
	exec  pipeline.Executor
	store storage.Store

	jobs *registry
}

// NewManager loads known jobs from the store & registers with the queue.
//
// Jobs that were PENDING or RUNNING when the last process stopped are loaded
// as they were; they are not dispatched again.
func NewManager(db database.JobStore, qu queue.Queue, cfg ConfigResolver, exec pipeline.Executor, store storage.Store, opts *Options) (*Manager, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.SetDefaults()
	if store == nil {
		store = &storage.Noop{}
	}

	m := &Manager{
		opts:  opts,
		db:    db,
		qu:    qu,
		cfg:   cfg,
		exec:  exec,
		store: store,
		jobs:  newRegistry(),
	}

	m.hydrate()

	err := qu.Register(m.execute)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) hydrate() {
	loaded := []*structs.Job{}
	for {
		batch, err := m.db.Jobs(&structs.Query{Limit: hydrateBatchSize, Offset: len(loaded)})
		if err != nil {
			log.Println("[Manager] failed to load jobs, starting empty:", err)
			return
		}
		loaded = append(loaded, batch...)
		if len(batch) < hydrateBatchSize {
			break
		}
	}
	for _, j := range loaded {
		m.jobs.add(j)
	}
	log.Println("[Manager] loaded", len(loaded), "jobs")
}

// Close stops the queue, waiting for running jobs.
func (m *Manager) Close() error {
	var errs error
	err := m.qu.Close()
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs
}

// CreateJob resolves the config for a new job, writes it out, records the job
// & hands it to the queue. It does not wait for the job to run.
func (m *Manager) CreateJob(req *structs.CreateJobRequest) (*structs.JobSummary, error) {
	if req == nil {
		return nil, fmt.Errorf("%w request is required", ie.ErrValidation)
	}
	if strings.TrimSpace(req.PDFPath) == "" {
		return nil, fmt.Errorf("%w pdf path is required", ie.ErrValidation)
	}
	display := strings.TrimSpace(req.DisplayLabel)
	if display == "" {
		display = strings.TrimSuffix(req.PDFFilename, filepath.Ext(req.PDFFilename))
	}
	if len(display) > maxDisplayLabelLength {
		return nil, fmt.Errorf("%w label exceeds max length %d", ie.ErrValidation, maxDisplayLabelLength)
	}

	id := utils.NewRandomID()
	label := utils.EffectiveLabel(display, id)

	submitted := structs.CopyMap(req.Overrides)
	if submitted == nil {
		submitted = map[string]interface{}{}
	}
	overrides := structs.CopyMap(submitted)
	overrides[keyLabel] = label
	overrides[keyPDFPath] = req.PDFPath

	resolved, err := m.cfg.Resolve(overrides)
	if err != nil {
		return nil, err
	}

	outDir := cast.ToString(resolved[keyRunOutputDir])
	if outDir == "" {
		outDir = filepath.Join(m.opts.OutputRoot, label)
	}
	resolved[keyRunOutputDir] = outDir

	now := timeNow()
	j := &structs.Job{
		ID:                 id,
		DisplayLabel:       display,
		Label:              label,
		Status:             structs.PENDING,
		CreatedAt:          now,
		UpdatedAt:          now,
		PDFFilename:        req.PDFFilename,
		PDFPath:            req.PDFPath,
		SubmittedOverrides: submitted,
		Overrides:          overrides,
		ResolvedConfig:     resolved,
		OutputDir:          outDir,
		Events:             []*structs.JobEvent{{Timestamp: now, Message: msgRegistered}},
	}

	err = writeJobFiles(j)
	if err != nil {
		return nil, fmt.Errorf("%w failed to write job files: %v", ie.ErrPersistence, err)
	}

	err = m.db.SaveJob(j)
	if err != nil {
		log.Println("[Manager] failed to persist job", id, "continuing in memory:", err)
	}
	m.jobs.add(j)

	log.Println("[Manager] created job", id, label)
	err = m.qu.Enqueue(id)
	if err != nil {
		// never ran, so it never existed
		log.Println("[Manager] failed to queue job", id, "removing it:", err)
		m.jobs.remove(id, nil)
		_, dberr := m.db.DeleteJob(id)
		if dberr != nil {
			log.Println("[Manager] failed to remove unqueued job", id, dberr)
		}
		return nil, fmt.Errorf("%w failed to queue job: %v", ie.ErrQueue, err)
	}

	final, ok := m.jobs.get(id)
	if !ok {
		return j.Summary(), nil
	}
	return final.Summary(), nil
}

// RegenerateJob starts a new job from a completed one, with the given sections
// redone or edited.
func (m *Manager) RegenerateJob(sourceID string, req *structs.RegenerateRequest) (*structs.JobSummary, error) {
	if req == nil {
		req = &structs.RegenerateRequest{}
	}
	if len(req.RegenerateSections) == 0 && len(req.EditSections) == 0 {
		return nil, fmt.Errorf("%w at least one of regenerate_sections or edit_sections must be provided", ie.ErrValidation)
	}
	for _, s := range req.RegenerateSections {
		if _, ok := req.EditSections[s]; ok {
			return nil, fmt.Errorf("%w section %s cannot be both regenerated and edited", ie.ErrValidation, s)
		}
	}

	src, ok := m.jobs.get(sourceID)
	if !ok {
		return nil, fmt.Errorf("%w source job %s", ie.ErrNotFound, sourceID)
	}
	if src.Status != structs.COMPLETED {
		return nil, fmt.Errorf("%w source job must be completed (current status: %s)", ie.ErrInvalidState, src.Status)
	}

	return m.CreateJob(&structs.CreateJobRequest{
		DisplayLabel: fmt.Sprintf("%s (regenerated)", src.DisplayLabel),
		PDFFilename:  src.PDFFilename,
		PDFPath:      src.PDFPath,
		Overrides:    regenerateOverrides(src.SubmittedOverrides, req),
	})
}

func regenerateOverrides(submitted map[string]interface{}, req *structs.RegenerateRequest) map[string]interface{} {
	out := structs.CopyMap(submitted)
	if out == nil {
		out = map[string]interface{}{}
	}
	if len(req.RegenerateSections) > 0 {
		sections := make([]interface{}, len(req.RegenerateSections))
		for i, s := range req.RegenerateSections {
			sections[i] = s
		}
		out[keyRegenerateSections] = sections
	}
	if len(req.EditSections) > 0 {
		edits := make(map[string]interface{}, len(req.EditSections))
		for k, v := range req.EditSections {
			edits[k] = v
		}
		out[keyEditSections] = edits
	}
	return out
}

func (m *Manager) Job(id string) (*structs.JobDetail, error) {
	j, ok := m.jobs.get(id)
	if !ok {
		return nil, fmt.Errorf("%w job %s", ie.ErrNotFound, id)
	}
	return j.Detail(), nil
}

func (m *Manager) JobStatus(id string) (*structs.JobStatusView, error) {
	j, ok := m.jobs.get(id)
	if !ok {
		return nil, fmt.Errorf("%w job %s", ie.ErrNotFound, id)
	}
	return j.StatusView(), nil
}

// Jobs returns summaries, newest first.
func (m *Manager) Jobs(q *structs.Query) ([]*structs.JobSummary, error) {
	found := m.jobs.list(q)
	out := make([]*structs.JobSummary, len(found))
	for i, j := range found {
		out[i] = j.Summary()
	}
	return out, nil
}

func (m *Manager) ConfigMetadata() *structs.ConfigMetadata {
	return m.cfg.Metadata()
}

// DeleteJob forgets a job. Running jobs can't be deleted. Files on disk are left alone.
func (m *Manager) DeleteJob(id string) (bool, error) {
	removed, err := m.jobs.remove(id, func(j *structs.Job) error {
		if j.Status == structs.RUNNING {
			return fmt.Errorf("%w job %s is running", ie.ErrInvalidState, id)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	deleted, err := m.db.DeleteJob(id)
	if err != nil {
		return removed, fmt.Errorf("%w %v", ie.ErrPersistence, err)
	}
	return removed || deleted, nil
}

// DownloadURL returns a presigned link to the job's uploaded archive.
func (m *Manager) DownloadURL(ctx context.Context, id string) (*structs.DownloadResponse, error) {
	j, ok := m.jobs.get(id)
	if !ok {
		return nil, fmt.Errorf("%w job %s", ie.ErrNotFound, id)
	}
	if j.S3Key == "" {
		return nil, fmt.Errorf("%w job %s has no uploaded archive", ie.ErrNotFound, id)
	}

	u, err := m.store.PresignedURL(ctx, j.S3Key, m.opts.PresignExpiry)
	if err != nil {
		if !errors.Is(err, ie.ErrStorage) {
			err = fmt.Errorf("%w %v", ie.ErrStorage, err)
		}
		return nil, err
	}
	return &structs.DownloadResponse{URL: u, ExpiresInSeconds: int64(m.opts.PresignExpiry / time.Second)}, nil
}

// transition applies patch & appends events to a job, in memory & durably,
// under the registry lock. Store failures are logged, not returned.
func (m *Manager) transition(id string, patch *structs.JobPatch, events ...string) {
	_, err := m.jobs.update(id, func(j *structs.Job) error {
		now := timeNow()
		if patch != nil {
			if patch.Status != nil && *patch.Status != j.Status && !structs.CanTransition(j.Status, *patch.Status) {
				return fmt.Errorf("%w job %s cannot move from %s to %s", ie.ErrInvalidState, id, j.Status, *patch.Status)
			}
			patch.UpdatedAt = now
			patch.Apply(j, now)
			// an event write stamps updated_at itself
			if !patch.IsEmpty() || len(events) == 0 {
				dberr := m.db.UpdateJob(id, patch)
				if dberr != nil {
					log.Println("[Manager] failed to persist update for job", id, dberr)
				}
			}
		}
		for _, msg := range events {
			e := &structs.JobEvent{Timestamp: now, Message: msg}
			j.Events = append(j.Events, e)
			j.UpdatedAt = now
			dberr := m.db.AppendJobEvent(id, e)
			if dberr != nil {
				log.Println("[Manager] failed to persist event for job", id, dberr)
			}
		}
		return nil
	})
	if err != nil {
		log.Println("[Manager] update of job", id, "failed:", err)
	}
}

func writeJobFiles(j *structs.Job) error {
	err := os.MkdirAll(j.OutputDir, 0755)
	if err != nil {
		return err
	}

	err = pipeline.WriteConfig(filepath.Join(j.OutputDir, configFilename), j.ResolvedConfig)
	if err != nil {
		return err
	}

	for name, data := range map[string]map[string]interface{}{
		submittedOverridesFilename: j.SubmittedOverrides,
		effectiveOverridesFilename: j.Overrides,
	} {
		encoded, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return err
		}
		err = os.WriteFile(filepath.Join(j.OutputDir, name), encoded, 0644)
		if err != nil {
			return err
		}
	}
	return nil
}
