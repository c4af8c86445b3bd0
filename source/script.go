package source

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"antcss/tokens"
)

//go:embed worker.mjs
var workerScript []byte

// Script runs embedded worker with JavaScript runtime (node, bun) in project
// directory which has antd installed.
type Script struct {
	runtime string
	dir     string
	timeout time.Duration
	log     *zap.Logger
}

// NewScript creates script source. Zero timeout means no limit.
func NewScript(runtime, dir string, timeout time.Duration, log *zap.Logger) *Script {
	if log == nil {
		log = zap.NewNop()
	}
	if runtime == "" {
		runtime = "node"
	}
	return &Script{runtime: runtime, dir: dir, timeout: timeout, log: log.Named("script")}
}

type request struct {
	Command    string   `json:"command"`
	Algorithms []string `json:"algorithms,omitempty"`
	CacheKey   string   `json:"cacheKey,omitempty"`
	Hashed     bool     `json:"hashed,omitempty"`
}

type cssResponse struct {
	CSS string `json:"css"`
}

type componentsResponse struct {
	Components []string `json:"components"`
}

func (s *Script) Tokens(ctx context.Context, algorithms []string) (*tokens.Set, error) {
	out, err := s.call(ctx, request{Command: "tokens", Algorithms: algorithms})
	if err != nil {
		return nil, err
	}
	set, err := tokens.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("failed to parse tokens output: %w", err)
	}
	return set, nil
}

func (s *Script) Stylesheet(ctx context.Context, opts StyleOptions) (string, error) {
	out, err := s.call(ctx, request{Command: "styles", CacheKey: opts.CacheKey, Hashed: opts.Hashed})
	if err != nil {
		return "", err
	}
	var resp cssResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return "", fmt.Errorf("failed to parse styles output: %w", err)
	}
	return resp.CSS, nil
}

func (s *Script) Reset(ctx context.Context) (string, error) {
	out, err := s.call(ctx, request{Command: "reset"})
	if err != nil {
		return "", err
	}
	var resp cssResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return "", fmt.Errorf("failed to parse reset output: %w", err)
	}
	return resp.CSS, nil
}

func (s *Script) Components(ctx context.Context) ([]string, error) {
	out, err := s.call(ctx, request{Command: "components"})
	if err != nil {
		return nil, err
	}
	var resp componentsResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse components output: %w", err)
	}
	return resp.Components, nil
}

// call executes worker with request on stdin and returns its stdout.
func (s *Script) call(ctx context.Context, req request) ([]byte, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()

	// Write the embedded script to a temp file.
	tmpFile, err := os.CreateTemp("", "antcss-worker-*.mjs")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(workerScript); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write worker script: %w", err)
	}
	tmpFile.Close()

	input, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	cmd := exec.CommandContext(ctx, s.runtime, tmpFile.Name())
	cmd.Stdin = bytes.NewReader(input)
	cmd.Dir = s.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.log.Debug("Running worker", zap.String("runtime", filepath.Base(s.runtime)), zap.String("command", req.Command))

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("worker command %q failed: %w (stderr: %s)", req.Command, err, stderr.String())
	}

	s.log.Debug("Worker completed", zap.String("command", req.Command), zap.Int("bytes", stdout.Len()), zap.Duration("elapsed", time.Since(start)))
	return stdout.Bytes(), nil
}
