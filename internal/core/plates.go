package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	ie "github.com/voidshard/platen/pkg/errors"
	"github.com/voidshard/platen/pkg/structs"
)

const msgPlateUpdated = "Plate updated via API."

// SavePlate replaces a completed job's plate.json with the given JSON object.
func (m *Manager) SavePlate(id string, plate json.RawMessage) error {
	var obj map[string]interface{}
	err := json.Unmarshal(plate, &obj)
	if err != nil || obj == nil {
		return fmt.Errorf("%w plate must be a JSON object", ie.ErrValidation)
	}

	var indented bytes.Buffer
	err = json.Indent(&indented, plate, "", "  ")
	if err != nil {
		return fmt.Errorf("%w %v", ie.ErrValidation, err)
	}

	_, err = m.jobs.update(id, func(j *structs.Job) error {
		if j.Status != structs.COMPLETED {
			return fmt.Errorf("%w job must be completed before saving plate edits (current status: %s)", ie.ErrInvalidState, j.Status)
		}

		path := platePath(j)
		err := os.WriteFile(path, indented.Bytes(), 0644)
		if err != nil {
			return fmt.Errorf("%w failed to write plate: %v", ie.ErrPersistence, err)
		}

		now := timeNow()
		patch := &structs.JobPatch{PlatePath: &path}
		patch.Apply(j, now)
		e := &structs.JobEvent{Timestamp: now, Message: msgPlateUpdated}
		j.Events = append(j.Events, e)

		err = m.db.UpdateJob(id, patch)
		if err != nil {
			log.Println("[Manager] failed to persist plate path for job", id, err)
		}
		err = m.db.AppendJobEvent(id, e)
		if err != nil {
			log.Println("[Manager] failed to persist event for job", id, err)
		}
		return nil
	})
	return err
}

// LoadPlate returns a job's plate.json
func (m *Manager) LoadPlate(id string) (json.RawMessage, error) {
	j, ok := m.jobs.get(id)
	if !ok {
		return nil, fmt.Errorf("%w job %s", ie.ErrNotFound, id)
	}

	data, err := os.ReadFile(platePath(j))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w plate file not found for job %s", ie.ErrNotFound, id)
	} else if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("plate file for job %s is not valid JSON", id)
	}
	return json.RawMessage(data), nil
}

// OutputFile returns the path of a file inside the job's output dir. Paths
// that would leave the output dir are refused.
func (m *Manager) OutputFile(id, rel string) (string, error) {
	j, ok := m.jobs.get(id)
	if !ok {
		return "", fmt.Errorf("%w job %s", ie.ErrNotFound, id)
	}

	if rel == "" || filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("%w invalid output path %q", ie.ErrValidation, rel)
	}
	root, err := filepath.Abs(j.OutputDir)
	if err != nil {
		return "", err
	}
	full := filepath.Join(root, filepath.FromSlash(rel))
	if !within(root, full) {
		return "", fmt.Errorf("%w invalid output path %q", ie.ErrValidation, rel)
	}

	// symlinks must not lead out either
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("%w output dir for job %s", ie.ErrNotFound, id)
	}
	realFull, err := filepath.EvalSymlinks(full)
	if err != nil {
		return "", fmt.Errorf("%w output %s for job %s", ie.ErrNotFound, rel, id)
	}
	if !within(realRoot, realFull) {
		return "", fmt.Errorf("%w invalid output path %q", ie.ErrValidation, rel)
	}

	info, err := os.Stat(realFull)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w output %s for job %s", ie.ErrNotFound, rel, id)
	}
	return realFull, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "."
}

func platePath(j *structs.Job) string {
	if j.PlatePath != "" {
		return j.PlatePath
	}
	return filepath.Join(j.OutputDir, plateFilename)
}
