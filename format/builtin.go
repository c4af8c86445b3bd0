package format

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"antcss/css"
)

// Builtin formats CSS with css.Printer and JSON with encoding/json. Other
// files are returned unchanged.
type Builtin struct {
	log *zap.Logger

	mu       sync.Mutex
	projects map[int]*css.Printer
	jsonInd  map[int]string
	next     int
}

// NewBuiltin creates native engine.
func NewBuiltin(log *zap.Logger) *Builtin {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builtin{log: log, projects: make(map[int]*css.Printer), jsonInd: make(map[int]string)}
}

func (b *Builtin) Open(string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.projects[b.next] = css.NewPrinter("", b.log)
	b.jsonInd[b.next] = "  "
	return b.next, nil
}

func (b *Builtin) Configure(key int, opts Options) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.projects[key]; !ok {
		return ErrNotOpen
	}
	b.projects[key] = css.NewPrinter(opts.Indent(), b.log)
	b.jsonInd[key] = opts.Indent()
	return nil
}

func (b *Builtin) Format(key int, text, filePath string) (string, error) {
	b.mu.Lock()
	printer, ok := b.projects[key]
	indent := b.jsonInd[key]
	b.mu.Unlock()
	if !ok {
		return "", ErrNotOpen
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".css":
		out, err := printer.Print([]byte(text), filePath)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case ".json":
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(text), "", indent); err != nil {
			return "", err
		}
		buf.WriteByte('\n')
		return buf.String(), nil
	default:
		return text, nil
	}
}

func (b *Builtin) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.projects)
	clear(b.jsonInd)
	return nil
}
