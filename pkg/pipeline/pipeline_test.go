package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	ie "github.com/voidshard/platen/pkg/errors"
)

func shell(script string) *Command {
	// "$1" is --config & "$2" the config path
	return &Command{Bin: "sh", Args: []string{"-c", script, "pipeline"}}
}

func TestNewCommand(t *testing.T) {
	cases := []struct {
		Name       string
		Given      string
		ExpectBin  string
		ExpectArgs []string
		ExpectErr  error
	}{
		{"Bare", "platen-pipeline", "platen-pipeline", []string{}, nil},
		{"WithArgs", " python -m pipeline  run ", "python", []string{"-m", "pipeline", "run"}, nil},
		{"Empty", "  ", "", nil, ie.ErrConfiguration},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			cmd, err := NewCommand(c.Given)

			if c.ExpectErr != nil {
				assert.True(t, errors.Is(err, c.ExpectErr))
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, c.ExpectBin, cmd.Bin)
			assert.Equal(t, c.ExpectArgs, cmd.Args)
		})
	}
}

func TestCommandRun(t *testing.T) {
	cases := []struct {
		Name        string
		Script      string
		ExpectErr   bool
		ExpectInErr string
	}{
		{
			Name:   "Success",
			Script: `test "$1" = "--config" && test -f "$2" && echo '{}' > plate.json`,
		},
		{
			Name:        "FailureUsesStderr",
			Script:      `echo "warming up" >&2; echo "crop stage exploded" >&2; exit 3`,
			ExpectErr:   true,
			ExpectInErr: "crop stage exploded",
		},
		{
			Name:        "FailureWithoutStderr",
			Script:      `exit 4`,
			ExpectErr:   true,
			ExpectInErr: "exit status 4",
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			out := t.TempDir()
			cfg := map[string]interface{}{"run_output_dir": out, "label": "demo"}

			err := shell(c.Script).Run(context.Background(), cfg)

			if !c.ExpectErr {
				assert.Nil(t, err)
				_, err = os.Stat(filepath.Join(out, "plate.json"))
				assert.Nil(t, err)
				return
			}
			assert.True(t, errors.Is(err, ie.ErrPipeline))
			assert.Contains(t, err.Error(), c.ExpectInErr)
		})
	}
}

func TestCommandRunWritesConfigOnlyIfMissing(t *testing.T) {
	out := t.TempDir()
	path := filepath.Join(out, configFilename)
	cfg := map[string]interface{}{"run_output_dir": out, "label": "demo"}

	err := shell("true").Run(context.Background(), cfg)
	assert.Nil(t, err)

	data, err := os.ReadFile(path)
	assert.Nil(t, err)
	decoded := map[string]interface{}{}
	assert.Nil(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "demo", decoded["label"])

	err = os.WriteFile(path, []byte("label: kept\n"), 0644)
	assert.Nil(t, err)

	err = shell("true").Run(context.Background(), cfg)
	assert.Nil(t, err)

	data, err = os.ReadFile(path)
	assert.Nil(t, err)
	assert.Equal(t, "label: kept\n", string(data))
}

func TestCommandRunRequiresOutputDir(t *testing.T) {
	err := shell("true").Run(context.Background(), map[string]interface{}{})

	assert.True(t, errors.Is(err, ie.ErrPipeline))
}

func TestCommandRunCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := shell("sleep 30").Run(ctx, map[string]interface{}{"run_output_dir": t.TempDir()})

	assert.True(t, errors.Is(err, ie.ErrPipeline))
	assert.Contains(t, err.Error(), "cancelled")
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestCommandRunCancelledStopsChildren(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := shell("(sleep 1; touch late) & sleep 30; true").Run(ctx, map[string]interface{}{"run_output_dir": dir})

	assert.True(t, errors.Is(err, ie.ErrPipeline))
	assert.Less(t, time.Since(start), 5*time.Second)

	time.Sleep(1500 * time.Millisecond)
	_, err = os.Stat(filepath.Join(dir, "late"))
	assert.True(t, os.IsNotExist(err))
}

func TestFunc(t *testing.T) {
	var seen map[string]interface{}
	f := Func(func(ctx context.Context, cfg map[string]interface{}) error {
		seen = cfg
		return nil
	})

	err := f.Run(context.Background(), map[string]interface{}{"a": 1})

	assert.Nil(t, err)
	assert.Equal(t, 1, seen["a"])
}

func TestTail(t *testing.T) {
	assert.Equal(t, "abc", tail("abc", 5))
	assert.Equal(t, "cde", tail("abcde", 3))
	assert.True(t, strings.HasSuffix(tail(strings.Repeat("x", 5000)+"end", stderrTail), "end"))
}
