package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	ie "github.com/voidshard/platen/pkg/errors"
)

const (
	configFilename = "config.yaml"

	// how much of stderr is kept for the error message
	stderrTail = 2048

	killGrace = 10 * time.Second
)

// Command runs the pipeline as an external program: <Bin> <Args...> --config <path>
type Command struct {
	Bin  string
	Args []string
	Env  []string
}

// NewCommand splits a command line on whitespace into a Command.
func NewCommand(cmdline string) (*Command, error) {
	parts := strings.Fields(cmdline)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w pipeline command is empty", ie.ErrConfiguration)
	}
	return &Command{Bin: parts[0], Args: parts[1:]}, nil
}

// Run writes cfg to <run_output_dir>/config.yaml if it isn't there already & runs the command.
func (c *Command) Run(ctx context.Context, cfg map[string]interface{}) error {
	outDir := cast.ToString(cfg["run_output_dir"])
	if outDir == "" {
		return fmt.Errorf("%w run_output_dir is not set", ie.ErrPipeline)
	}

	path := filepath.Join(outDir, configFilename)
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		err = WriteConfig(path, cfg)
	}
	if err != nil {
		return fmt.Errorf("%w %v", ie.ErrPipeline, err)
	}

	args := append(append([]string{}, c.Args...), "--config", path)
	cmd := exec.CommandContext(ctx, c.Bin, args...)
	cmd.Env = append(os.Environ(), c.Env...)
	cmd.Dir = outDir
	// the pipeline and anything it starts share a process group, signalled as one
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	var escalate *time.Timer
	cmd.Cancel = func() error {
		pgid := cmd.Process.Pid
		escalate = time.AfterFunc(killGrace, func() { syscall.Kill(-pgid, syscall.SIGKILL) })
		err := syscall.Kill(-pgid, syscall.SIGTERM)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
	cmd.WaitDelay = killGrace + time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = &prefixWriter{prefix: fmt.Sprintf("[Pipeline] %s:", filepath.Base(outDir))}

	err = cmd.Run()
	if escalate != nil {
		escalate.Stop()
	}
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%w cancelled: %v", ie.ErrPipeline, ctx.Err())
	}

	msg := tail(strings.TrimSpace(stderr.String()), stderrTail)
	if msg == "" {
		msg = err.Error()
	}
	return fmt.Errorf("%w %s", ie.ErrPipeline, msg)
}

// WriteConfig writes cfg as YAML to path
func WriteConfig(path string, cfg map[string]interface{}) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	err = os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// prefixWriter logs each line written to it
type prefixWriter struct {
	prefix string
	buf    []byte
}

func (w *prefixWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		log.Println(w.prefix, string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}
