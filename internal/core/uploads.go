package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/voidshard/platen/internal/utils"
	ie "github.com/voidshard/platen/pkg/errors"
)

// StoreUpload copies an uploaded document to <UploadRoot>/<random id>/<sanitized name>
// and returns the stored path.
func (m *Manager) StoreUpload(filename string, r io.Reader) (string, error) {
	dir := filepath.Join(m.opts.UploadRoot, utils.NewRandomID())
	err := os.MkdirAll(dir, 0750)
	if err != nil {
		return "", fmt.Errorf("%w failed to make upload dir: %v", ie.ErrPersistence, err)
	}

	path := filepath.Join(dir, utils.SanitizeFilename(filename))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0640)
	if err != nil {
		return "", fmt.Errorf("%w failed to create upload: %v", ie.ErrPersistence, err)
	}

	_, err = io.Copy(f, r)
	cerr := f.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("%w failed to write upload: %v", ie.ErrPersistence, err)
	}
	return path, nil
}
