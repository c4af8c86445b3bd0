package format

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Biome formats text by piping it through "biome format" command line.
type Biome struct {
	binary  string
	timeout time.Duration
	log     *zap.Logger

	mu       sync.Mutex
	path     string
	projects map[int]biomeProject
	next     int
}

type biomeProject struct {
	dir  string
	opts Options
}

// NewBiome creates engine using biome executable (name or path).
func NewBiome(binary string, log *zap.Logger) *Biome {
	if log == nil {
		log = zap.NewNop()
	}
	if binary == "" {
		binary = "biome"
	}
	return &Biome{binary: binary, timeout: 30 * time.Second, log: log, projects: make(map[int]biomeProject)}
}

func (b *Biome) Open(project string) (int, error) {
	path, err := exec.LookPath(b.binary)
	if err != nil {
		return 0, fmt.Errorf("biome executable not found: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.path = path
	b.next++
	b.projects[b.next] = biomeProject{dir: project, opts: Options{IndentStyle: "space", IndentWidth: 2}}
	b.log.Debug("Biome project opened", zap.String("binary", path), zap.String("project", project))
	return b.next, nil
}

func (b *Biome) Configure(key int, opts Options) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.projects[key]
	if !ok {
		return ErrNotOpen
	}
	p.opts = opts
	b.projects[key] = p
	return nil
}

func (b *Biome) Format(key int, text, filePath string) (string, error) {
	b.mu.Lock()
	p, ok := b.projects[key]
	path := b.path
	b.mu.Unlock()
	if !ok {
		return "", ErrNotOpen
	}

	style := p.opts.IndentStyle
	if style == "" {
		style = "space"
	}
	args := []string{
		"format",
		"--stdin-file-path=" + filePath,
		"--indent-style=" + style,
	}
	if p.opts.IndentWidth > 0 {
		args = append(args, "--indent-width="+strconv.Itoa(p.opts.IndentWidth))
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = p.dir
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("biome failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 && len(text) != 0 {
		return "", fmt.Errorf("biome produced no output for %s", filePath)
	}
	return stdout.String(), nil
}

func (b *Biome) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.projects)
	return nil
}
