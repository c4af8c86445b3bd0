package generate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"antcss/format"
	"antcss/utils/debug"
)

const (
	tokensDir     = "tokens"
	componentsDir = "components"
)

// writer formats text and stores it under output directory.
type writer struct {
	out string
	fmt *format.Service
	log *zap.Logger
}

// write formats text according to extension of rel and saves it, returns
// number of bytes written.
func (w *writer) write(rel, text string) (int, error) {
	if w.fmt != nil {
		text = w.fmt.Format(text, filepath.Base(rel))
	}
	return w.save(rel, text)
}

// save stores text without formatting.
func (w *writer) save(rel, text string) (int, error) {
	name := filepath.Join(w.out, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return 0, fmt.Errorf("unable to create directory for '%s': %w", rel, err)
	}
	if err := os.WriteFile(name, []byte(text), 0644); err != nil {
		return 0, fmt.Errorf("unable to write '%s': %w", rel, err)
	}
	w.log.Info("Written", zap.String("file", rel), zap.String("size", debug.FormatSize(len(text))))
	return len(text), nil
}

// prepareOutput makes sure output directory with its subdirectories exists.
// When clean is requested existing content is removed first. Refuses to
// remove file system roots and current working directory or any of its
// parents.
func prepareOutput(out string, clean bool, log *zap.Logger) error {
	if out == "" {
		return errors.New("output directory is not specified")
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("unable to resolve output directory: %w", err)
	}

	if clean {
		if abs == filepath.VolumeName(abs)+string(filepath.Separator) {
			return fmt.Errorf("refusing to clean file system root '%s'", abs)
		}
		if wd, err := os.Getwd(); err == nil && contains(abs, wd) {
			return fmt.Errorf("refusing to clean '%s' holding current working directory", abs)
		}
		log.Debug("Cleaning output directory", zap.String("dir", abs))
		if err := os.RemoveAll(abs); err != nil {
			return fmt.Errorf("unable to clean output directory: %w", err)
		}
	}

	for _, dir := range []string{abs, filepath.Join(abs, tokensDir), filepath.Join(abs, componentsDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}
	}
	return nil
}

// contains reports whether path is dir itself or lies inside it.
func contains(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
