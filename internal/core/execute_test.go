package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/voidshard/platen/internal/mocks/pkg/pipeline_mock"
	"github.com/voidshard/platen/pkg/config"
	"github.com/voidshard/platen/pkg/database"
	ie "github.com/voidshard/platen/pkg/errors"
	"github.com/voidshard/platen/pkg/pipeline"
	"github.com/voidshard/platen/pkg/queue"
	"github.com/voidshard/platen/pkg/storage"
	"github.com/voidshard/platen/pkg/structs"
)

// writesPlate is a pipeline that produces a plate & one section file
var writesPlate = pipeline.Func(func(ctx context.Context, cfg map[string]interface{}) error {
	out := cfg["run_output_dir"].(string)
	err := os.WriteFile(filepath.Join(out, plateFilename), []byte(`{"sections": []}`), 0644)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(out, "section-1.html"), []byte("<p>1</p>"), 0644)
})

func TestExecute(t *testing.T) {
	cases := []struct {
		Name         string
		Exec         pipeline.Executor
		Uploaded     bool
		ExpectStatus structs.Status
		ExpectError  string
		ExpectEvents []string
		ExpectPlate  bool
		ExpectZip    bool
	}{
		{
			Name:         "CompletedAndUploaded",
			Exec:         writesPlate,
			Uploaded:     true,
			ExpectStatus: structs.COMPLETED,
			ExpectEvents: []string{msgRegistered, msgStarted, msgZipping, msgUploading, msgUploaded, msgCompleted},
			ExpectPlate:  true,
			ExpectZip:    true,
		},
		{
			Name:         "CompletedUploadSkipped",
			Exec:         writesPlate,
			Uploaded:     false,
			ExpectStatus: structs.COMPLETED,
			ExpectEvents: []string{msgRegistered, msgStarted, msgZipping, msgUploading, msgUploadSkipped, msgCompleted},
			ExpectPlate:  true,
			ExpectZip:    true,
		},
		{
			Name: "CompletedWithoutPlate",
			Exec: pipeline.Func(func(ctx context.Context, cfg map[string]interface{}) error {
				return nil
			}),
			Uploaded:     false,
			ExpectStatus: structs.COMPLETED,
			ExpectEvents: []string{msgRegistered, msgStarted, msgZipping, msgUploading, msgUploadSkipped, msgCompleted},
			ExpectZip:    true,
		},
		{
			Name: "PipelineFails",
			Exec: pipeline.Func(func(ctx context.Context, cfg map[string]interface{}) error {
				return fmt.Errorf("model unavailable")
			}),
			ExpectStatus: structs.FAILED,
			ExpectError:  "model unavailable",
			ExpectEvents: []string{msgRegistered, msgStarted, msgFailedPrefix + "model unavailable"},
		},
		{
			Name: "PipelinePanics",
			Exec: pipeline.Func(func(ctx context.Context, cfg map[string]interface{}) error {
				panic("segfault in stage 3")
			}),
			ExpectStatus: structs.FAILED,
			ExpectError:  "panic: segfault in stage 3",
			ExpectEvents: []string{msgRegistered, msgStarted, msgFailedPrefix + "panic: segfault in stage 3"},
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			f := newFixture(t, c.Exec)
			f.allowWrites()
			s := f.create(t, "Book", nil)

			zipPath := filepath.Join(f.out, s.Label+".zip")
			key := fmt.Sprintf("jobs/%s/%s.zip", s.Label, s.Label)
			if c.ExpectStatus == structs.COMPLETED {
				f.store.EXPECT().Upload(gomock.Any(), zipPath, key).Return(c.Uploaded)
			}

			f.handler(context.Background(), s.ID)

			j, ok := f.m.jobs.get(s.ID)
			assert.True(t, ok)
			assert.Equal(t, c.ExpectStatus, j.Status)
			assert.Equal(t, c.ExpectError, j.Error)
			assert.Equal(t, c.ExpectEvents, eventMessages(j))
			assert.Equal(t, c.ExpectPlate, j.PlateAvailable())

			if c.ExpectZip {
				assert.Equal(t, zipPath, j.ZipPath)
				_, err := os.Stat(zipPath)
				assert.Nil(t, err)
			} else {
				assert.Equal(t, "", j.ZipPath)
			}
			if c.Uploaded {
				assert.Equal(t, key, j.S3Key)
				assert.True(t, j.Summary().ZipAvailable)
			} else {
				assert.Equal(t, "", j.S3Key)
			}
			assert.True(t, j.UpdatedAt.After(j.CreatedAt))
		})
	}
}

func TestExecuteHandsResolvedConfigToPipeline(t *testing.T) {
	exec := pipeline_mock.NewMockExecutor(gomock.NewController(t))
	f := newFixture(t, exec)
	f.allowWrites()
	s := f.create(t, "Book", map[string]interface{}{"model": "gpt-4o-mini"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	exec.EXPECT().Run(ctx, gomock.Any()).DoAndReturn(func(ctx context.Context, cfg map[string]interface{}) error {
		assert.Equal(t, s.OutputDir, cfg["run_output_dir"])
		assert.Equal(t, s.Label, cfg["label"])
		assert.Equal(t, "/uploads/book.pdf", cfg["pdf_path"])
		assert.Equal(t, "gpt-4o-mini", cfg["model"])
		return nil
	})
	f.store.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(false)

	f.handler(ctx, s.ID)

	st, err := f.m.JobStatus(s.ID)
	assert.Nil(t, err)
	assert.Equal(t, structs.COMPLETED, st.Status)
}

func TestExecuteOnlyRunsPendingJobs(t *testing.T) {
	cases := []struct {
		Name   string
		Status structs.Status
	}{
		{"Running", structs.RUNNING},
		{"Completed", structs.COMPLETED},
		{"Failed", structs.FAILED},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			ran := false
			f := newFixture(t, pipeline.Func(func(ctx context.Context, cfg map[string]interface{}) error {
				ran = true
				return nil
			}))
			j := f.seed(c.Status)

			f.handler(context.Background(), j.ID)

			assert.False(t, ran)
			after, _ := f.m.jobs.get(j.ID)
			assert.Equal(t, c.Status, after.Status)
		})
	}
}

func TestExecuteUnknownJob(t *testing.T) {
	f := newFixture(t, nil)

	// no store expectations: nothing may be written for an id we don't hold
	err := f.handler(context.Background(), "ffffffffffffffffffffffffffffffff")

	assert.True(t, errors.Is(err, ie.ErrNotFound))
}

func TestExecuteStoreFailuresDoNotStopJob(t *testing.T) {
	f := newFixture(t, writesPlate)
	f.db.EXPECT().SaveJob(gomock.Any()).Return(nil)
	f.db.EXPECT().UpdateJob(gomock.Any(), gomock.Any()).Return(fmt.Errorf("locked")).AnyTimes()
	f.db.EXPECT().AppendJobEvent(gomock.Any(), gomock.Any()).Return(fmt.Errorf("locked")).AnyTimes()
	f.store.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(false)
	s := f.create(t, "Book", nil)

	f.handler(context.Background(), s.ID)

	st, err := f.m.JobStatus(s.ID)
	assert.Nil(t, err)
	assert.Equal(t, structs.COMPLETED, st.Status)
}

func TestPlates(t *testing.T) {
	f := newFixture(t, writesPlate)
	f.allowWrites()
	f.store.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(false)
	s := f.create(t, "Book", nil)

	err := f.m.SavePlate(s.ID, json.RawMessage(`{"a": 1}`))
	assert.True(t, errors.Is(err, ie.ErrInvalidState))

	f.handler(context.Background(), s.ID)

	plate, err := f.m.LoadPlate(s.ID)
	assert.Nil(t, err)
	assert.JSONEq(t, `{"sections": []}`, string(plate))

	cases := []struct {
		Name  string
		Given string
	}{
		{"Array", `[1, 2]`},
		{"Scalar", `"x"`},
		{"Null", `null`},
		{"Broken", `{"a": `},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			err := f.m.SavePlate(s.ID, json.RawMessage(c.Given))
			assert.True(t, errors.Is(err, ie.ErrValidation))
		})
	}

	err = f.m.SavePlate(s.ID, json.RawMessage(`{"sections":[{"id":"s1"}],"title":"T"}`))
	assert.Nil(t, err)

	data, err := os.ReadFile(filepath.Join(s.OutputDir, plateFilename))
	assert.Nil(t, err)
	assert.Equal(t, "{\n  \"sections\": [\n    {\n      \"id\": \"s1\"\n    }\n  ],\n  \"title\": \"T\"\n}", string(data))

	j, _ := f.m.jobs.get(s.ID)
	assert.Equal(t, msgPlateUpdated, j.Events[len(j.Events)-1].Message)
	assert.Equal(t, structs.COMPLETED, j.Status)
}

func TestLoadPlateMissing(t *testing.T) {
	f := newFixture(t, nil)
	j := f.seed(structs.COMPLETED)

	_, err := f.m.LoadPlate(j.ID)

	assert.True(t, errors.Is(err, ie.ErrNotFound))
}

func TestOutputFile(t *testing.T) {
	f := newFixture(t, nil)
	j := f.seed(structs.COMPLETED)
	os.MkdirAll(filepath.Join(j.OutputDir, "sections"), 0755)
	os.WriteFile(filepath.Join(j.OutputDir, "sections", "s1.html"), []byte("<p/>"), 0644)
	os.WriteFile(filepath.Join(f.out, "secret.txt"), []byte("no"), 0644)
	os.Symlink(filepath.Join(f.out, "secret.txt"), filepath.Join(j.OutputDir, "link.txt"))

	cases := []struct {
		Name      string
		Given     string
		ExpectErr error
	}{
		{"Nested", "sections/s1.html", nil},
		{"Missing", "sections/s2.html", ie.ErrNotFound},
		{"Directory", "sections", ie.ErrNotFound},
		{"Empty", "", ie.ErrValidation},
		{"Absolute", "/etc/passwd", ie.ErrValidation},
		{"Parent", "../secret.txt", ie.ErrValidation},
		{"SneakyParent", "sections/../../secret.txt", ie.ErrValidation},
		{"Root", ".", ie.ErrValidation},
		{"SymlinkOut", "link.txt", ie.ErrValidation},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			path, err := f.m.OutputFile(j.ID, c.Given)

			if c.ExpectErr != nil {
				assert.True(t, errors.Is(err, c.ExpectErr), err)
				return
			}
			assert.Nil(t, err)
			data, err := os.ReadFile(path)
			assert.Nil(t, err)
			assert.Equal(t, "<p/>", string(data))
		})
	}
}

// TestEndToEnd runs jobs through a real store & worker pool, then restarts
// over the same store.
func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	dbOpts := &database.Options{URL: filepath.Join(dir, "platen.db")}
	cfg, err := config.NewResolver(nil)
	assert.Nil(t, err)

	db, err := database.NewSQLite(dbOpts)
	assert.Nil(t, err)

	exec := pipeline.Func(func(ctx context.Context, c map[string]interface{}) error {
		if c["model"] == "broken" {
			return fmt.Errorf("model broken")
		}
		return writesPlate(ctx, c)
	})
	m, err := NewManager(db, queue.NewPool(&queue.Options{Workers: 2}), cfg, exec, &storage.Noop{}, &Options{OutputRoot: filepath.Join(dir, "output")})
	assert.Nil(t, err)

	good, err := m.CreateJob(&structs.CreateJobRequest{DisplayLabel: "Good", PDFPath: "/p.pdf", PDFFilename: "p.pdf"})
	assert.Nil(t, err)
	bad, err := m.CreateJob(&structs.CreateJobRequest{DisplayLabel: "Bad", PDFPath: "/p.pdf", Overrides: map[string]interface{}{"model": "broken"}})
	assert.Nil(t, err)

	waitFor := func(id string) *structs.JobStatusView {
		deadline := time.Now().Add(10 * time.Second)
		for time.Now().Before(deadline) {
			st, err := m.JobStatus(id)
			assert.Nil(t, err)
			if structs.IsFinalStatus(st.Status) {
				return st
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Fatalf("job %s did not finish", id)
		return nil
	}

	assert.Equal(t, structs.COMPLETED, waitFor(good.ID).Status)
	badStatus := waitFor(bad.ID)
	assert.Equal(t, structs.FAILED, badStatus.Status)
	assert.Equal(t, "model broken", badStatus.Error)

	regen, err := m.RegenerateJob(good.ID, &structs.RegenerateRequest{RegenerateSections: []string{"s1"}})
	assert.Nil(t, err)
	assert.Equal(t, structs.COMPLETED, waitFor(regen.ID).Status)

	assert.Nil(t, m.Close())
	assert.Nil(t, db.Close())

	// restart
	db, err = database.NewSQLite(dbOpts)
	assert.Nil(t, err)
	defer db.Close()
	m, err = NewManager(db, queue.NewPool(&queue.Options{}), cfg, exec, &storage.Noop{}, &Options{OutputRoot: filepath.Join(dir, "output")})
	assert.Nil(t, err)
	defer m.Close()

	jobs, err := m.Jobs(nil)
	assert.Nil(t, err)
	assert.Equal(t, 3, len(jobs))
	assert.Equal(t, regen.ID, jobs[0].ID)

	detail, err := m.Job(good.ID)
	assert.Nil(t, err)
	assert.Equal(t, structs.COMPLETED, detail.Status)
	assert.True(t, detail.PlateAvailable)
	assert.Equal(t, []string{msgRegistered, msgStarted, msgZipping, msgUploading, msgUploadSkipped, msgCompleted}, func() []string {
		out := []string{}
		for _, e := range detail.Events {
			out = append(out, e.Message)
		}
		return out
	}())

	detail, err = m.Job(regen.ID)
	assert.Nil(t, err)
	assert.Equal(t, "Good (regenerated)", detail.DisplayLabel)
	assert.Equal(t, []interface{}{"s1"}, detail.SubmittedOverrides["regenerate_sections"])
}
