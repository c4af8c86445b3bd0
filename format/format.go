// Package format wraps code formatting engines. Formatting is cosmetic:
// whatever goes wrong the original text is returned.
package format

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Options are applied to engine project after it has been opened.
type Options struct {
	IndentStyle string // "space" or "tab"
	IndentWidth int
}

// Indent returns single indentation level.
func (o Options) Indent() string {
	if o.IndentStyle == "tab" {
		return "\t"
	}
	w := o.IndentWidth
	if w <= 0 {
		w = 2
	}
	return strings.Repeat(" ", w)
}

// Engine is a formatting backend. Keys returned by Open identify engine
// project and are passed back on every call.
type Engine interface {
	Open(project string) (int, error)
	Configure(key int, opts Options) error
	Format(key int, text, filePath string) (string, error)
	Close() error
}

// New returns engine by name: "builtin", "biome" or "none".
func New(name, binary string, log *zap.Logger) (Engine, error) {
	switch name {
	case "builtin", "":
		return NewBuiltin(log), nil
	case "biome":
		return NewBiome(binary, log), nil
	case "none":
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown formatter engine %q", name)
	}
}

// Service owns an engine for the duration of a run. It is opened exactly
// once even when first used concurrently.
type Service struct {
	engine  Engine
	project string
	opts    Options
	log     *zap.Logger

	once  sync.Once
	key   int
	err   error
	ready atomic.Bool
}

// NewService creates service for engine. Nothing happens until Open.
func NewService(engine Engine, project string, opts Options, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{engine: engine, project: project, opts: opts, log: log.Named("format")}
}

// Open opens and configures engine project. Repeated calls return result
// of the first one.
func (s *Service) Open() error {
	s.once.Do(func() {
		key, err := s.engine.Open(s.project)
		if err == nil {
			err = s.engine.Configure(key, s.opts)
		}
		if err != nil {
			s.err = fmt.Errorf("unable to open formatter: %w", err)
			return
		}
		s.key = key
		s.ready.Store(true)
	})
	return s.err
}

// Format returns formatted text or text itself when service is not open or
// engine fails.
func (s *Service) Format(text, fileName string) string {
	if !s.ready.Load() {
		return text
	}
	out, err := s.engine.Format(s.key, text, fileName)
	if err != nil {
		s.log.Debug("Formatting failed, keeping text as is", zap.String("file", fileName), zap.Error(err))
		return text
	}
	return out
}

// Close releases engine.
func (s *Service) Close() error {
	if !s.ready.Swap(false) {
		return nil
	}
	return s.engine.Close()
}

// ErrNotOpen is returned by engines when called with unknown key.
var ErrNotOpen = errors.New("formatter project is not open")

// None leaves everything as is.
type None struct{}

func (None) Open(string) (int, error)                     { return 1, nil }
func (None) Configure(int, Options) error                 { return nil }
func (None) Format(_ int, text, _ string) (string, error) { return text, nil }
func (None) Close() error                                 { return nil }
