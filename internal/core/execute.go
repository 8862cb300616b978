package core

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"

	ie "github.com/voidshard/platen/pkg/errors"
	"github.com/voidshard/platen/pkg/storage"
	"github.com/voidshard/platen/pkg/structs"
)

const (
	msgStarted       = "Pipeline execution started."
	msgZipping       = "Creating zip archive..."
	msgUploading     = "Uploading to S3..."
	msgUploaded      = "Upload to S3 completed."
	msgUploadSkipped = "S3 upload skipped (not configured or unavailable)."
	msgCompleted     = "Pipeline execution completed."
	msgFailedPrefix  = "Pipeline failed: "
)

// execute is the queue handler; it runs one job start to finish. Only an
// unknown id is an error: job failures end up on the job record.
func (m *Manager) execute(ctx context.Context, id string) error {
	j, ok := m.jobs.get(id)
	if !ok {
		return fmt.Errorf("%w job %s is not held by this instance", ie.ErrNotFound, id)
	}
	if j.Status != structs.PENDING {
		log.Println("[Manager] job", id, "is", j.Status, "not running again")
		return nil
	}

	running := structs.RUNNING
	m.transition(id, &structs.JobPatch{Status: &running}, msgStarted)

	// always bump updated_at at the end, whatever happened
	defer m.transition(id, &structs.JobPatch{})

	defer func() {
		if r := recover(); r != nil {
			log.Println("[Manager] recovered from panic running job", id, r, string(debug.Stack()))
			m.fail(id, fmt.Errorf("panic: %v", r))
		}
	}()

	log.Println("[Manager] running job", id, j.Label)
	err := m.run(ctx, j)
	if err != nil {
		log.Println("[Manager] job", id, "failed:", err)
		m.fail(id, err)
		return nil
	}
	log.Println("[Manager] job", id, "completed")
	return nil
}

// run calls the pipeline then packages & uploads the output.
func (m *Manager) run(ctx context.Context, j *structs.Job) error {
	err := m.exec.Run(ctx, structs.CopyMap(j.ResolvedConfig))
	if err != nil {
		return err
	}

	completed := structs.COMPLETED
	patch := &structs.JobPatch{Status: &completed}

	platePath := filepath.Join(j.OutputDir, plateFilename)
	if _, err := os.Stat(platePath); err == nil {
		patch.PlatePath = &platePath
	}

	m.transition(j.ID, nil, msgZipping)
	zipPath := filepath.Join(filepath.Dir(j.OutputDir), j.Label+".zip")
	err = storage.ZipDir(j.OutputDir, zipPath)
	if err != nil {
		return fmt.Errorf("failed to create zip archive: %w", err)
	}
	patch.ZipPath = &zipPath

	m.transition(j.ID, nil, msgUploading)
	key := s3Key(j.Label)
	if m.store.Upload(ctx, zipPath, key) {
		patch.S3Key = &key
		m.transition(j.ID, nil, msgUploaded)
	} else {
		m.transition(j.ID, nil, msgUploadSkipped)
	}

	m.transition(j.ID, patch, msgCompleted)
	return nil
}

func (m *Manager) fail(id string, err error) {
	failed := structs.FAILED
	msg := err.Error()
	m.transition(id, &structs.JobPatch{Status: &failed, Error: &msg}, msgFailedPrefix+msg)
}

func s3Key(label string) string {
	return fmt.Sprintf("jobs/%s/%s.zip", label, label)
}
