package generate

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/maruel/natural"
	"go.uber.org/zap"

	"antcss/config"
	"antcss/tokens"
	"antcss/utils/debug"
)

// Entry point files produced by Assembler.
const (
	IndexFile      = "index.css"
	BundleFile     = "all.css"
	baseFile       = "base.css"
	cacheSize      = 256
	tokensMark     = "/* ========== Design Tokens (Light Theme) ========== */"
	baseMark       = "/* ========== Base/Reset Styles ========== */"
	componentsMark = "/* ========== Component Styles ========== */"
)

// HeaderData is available to entry point header templates.
type HeaderData struct {
	File       string
	Theme      string
	Selector   string
	Components []string
}

type cachedFile struct {
	mod  time.Time
	size int64
	text string
}

// Assembler inlines previously generated files into self-contained entry
// points: index.css (light tokens and base), one file per additional theme
// with its tokens only and optional all.css with every component. Missing
// inputs are skipped. Inputs are cached by modification time and size, so
// repeated assembly while watching rereads only changed files. Rewrites which
// keep both must be reported with Invalidate.
type Assembler struct {
	out       string
	bundleAll bool
	index     *template.Template
	theme     *template.Template
	all       *template.Template
	cache     *lru.Cache[string, cachedFile]
	log       *zap.Logger
}

// NewAssembler parses configured header templates.
func NewAssembler(out string, cfg *config.Config, log *zap.Logger) (*Assembler, error) {
	cache, err := lru.New[string, cachedFile](cacheSize)
	if err != nil {
		return nil, err
	}
	a := &Assembler{
		out:       out,
		bundleAll: cfg.Entries.BundleAll,
		cache:     cache,
		log:       log.Named("assemble"),
	}
	for _, t := range []struct {
		dst  **template.Template
		name string
		text string
	}{
		{&a.index, string(config.IndexHeaderFieldName), cfg.Entries.IndexHeader},
		{&a.theme, string(config.ThemeHeaderFieldName), cfg.Entries.ThemeHeader},
		{&a.all, string(config.AllHeaderFieldName), cfg.Entries.AllHeader},
	} {
		tmpl, err := template.New(t.name).Funcs(sprig.FuncMap()).Parse(t.text)
		if err != nil {
			return nil, fmt.Errorf("unable to parse %s template: %w", t.name, err)
		}
		*t.dst = tmpl
	}
	return a, nil
}

// Outputs returns names of files produced by Assemble relative to output
// directory.
func (a *Assembler) Outputs() []string {
	names := []string{IndexFile}
	for _, theme := range tokens.Themes[1:] {
		names = append(names, theme.Name+".css")
	}
	if a.bundleAll {
		names = append(names, BundleFile)
	}
	return names
}

// Assemble writes all entry points.
func (a *Assembler) Assemble() error {
	light := tokens.Themes[0]
	lightTokens, haveTokens := a.read(light.CSSFile())
	base, haveBase := a.read(baseFile)

	foundation := func(parts []string) []string {
		if haveTokens {
			parts = append(parts, tokensMark, lightTokens, "")
		}
		if haveBase {
			parts = append(parts, baseMark, base, "")
		}
		return parts
	}

	header, err := a.header(a.index, HeaderData{File: IndexFile, Theme: light.Name, Selector: light.Selector})
	if err != nil {
		return err
	}
	if err := a.save(IndexFile, strings.Join(foundation([]string{header, ""}), "\n")); err != nil {
		return err
	}

	for _, theme := range tokens.Themes[1:] {
		name := theme.Name + ".css"
		header, err := a.header(a.theme, HeaderData{File: name, Theme: theme.Name, Selector: theme.Selector})
		if err != nil {
			return err
		}
		text := header + "\n"
		if themed, ok := a.read(theme.CSSFile()); ok {
			text += themed
		}
		if err := a.save(name, text); err != nil {
			return err
		}
	}

	if !a.bundleAll {
		return nil
	}

	files := a.components()
	header, err = a.header(a.all, HeaderData{File: BundleFile, Theme: light.Name, Selector: light.Selector, Components: files})
	if err != nil {
		return err
	}
	parts := foundation([]string{header, ""})
	if len(files) > 0 {
		parts = append(parts, componentsMark)
		for _, f := range files {
			if text, ok := a.read(path.Join(componentsDir, f)); ok {
				parts = append(parts, text)
			}
		}
	}
	parts = append(parts, "")
	return a.save(BundleFile, strings.Join(parts, "\n"))
}

func (a *Assembler) header(tmpl *template.Template, data HeaderData) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("unable to render %s header: %w", data.File, err)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// components lists component stylesheets in natural order.
func (a *Assembler) components() []string {
	entries, err := os.ReadDir(filepath.Join(a.out, componentsDir))
	if err != nil {
		a.log.Debug("No component styles", zap.Error(err))
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".css") {
			files = append(files, e.Name())
		}
	}
	sort.Sort(natural.StringSlice(files))
	return files
}

// read returns content of rel, false when file is not available.
func (a *Assembler) read(rel string) (string, bool) {
	name := filepath.Join(a.out, filepath.FromSlash(rel))
	fi, err := os.Stat(name)
	if err != nil || !fi.Mode().IsRegular() {
		a.log.Debug("Input is missing, skipping", zap.String("file", rel))
		return "", false
	}
	if c, ok := a.cache.Get(name); ok && c.mod.Equal(fi.ModTime()) && c.size == fi.Size() {
		return c.text, true
	}
	data, err := os.ReadFile(name)
	if err != nil {
		a.log.Debug("Input is not readable, skipping", zap.String("file", rel), zap.Error(err))
		return "", false
	}
	a.cache.Add(name, cachedFile{mod: fi.ModTime(), size: fi.Size(), text: string(data)})
	return string(data), true
}

// Invalidate drops cached content of file name, so next assembly rereads it.
func (a *Assembler) Invalidate(name string) {
	a.cache.Remove(filepath.Clean(name))
}

func (a *Assembler) save(rel, text string) error {
	if err := os.MkdirAll(a.out, 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(a.out, rel), []byte(text), 0644); err != nil {
		return fmt.Errorf("unable to write '%s': %w", rel, err)
	}
	a.log.Info("Written", zap.String("file", rel), zap.String("size", debug.FormatSize(len(text))))
	return nil
}
