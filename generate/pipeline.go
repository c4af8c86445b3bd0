// Package generate drives extraction of design tokens and component
// stylesheets into a directory of plain CSS files.
package generate

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"antcss/catalog"
	"antcss/config"
	"antcss/css"
	"antcss/format"
	"antcss/source"
	"antcss/tokens"
	"antcss/utils/debug"
)

var (
	//go:embed assets/enhancements.css
	enhancementsCSS string
	//go:embed assets/icon.css
	iconCSS string
	//go:embed assets/wave.css
	waveCSS string
)

const baseBanner = `/**
 * Base styles for Ant Design Web Components
 * - Reset from antd/dist/reset.css
 * - Token-based enhancements
 * - Keyframe animations extracted from Ant Design
 */`

// KeyframesFile receives animations when splitting offline.
const KeyframesFile = "keyframes.css"

// Sources are external collaborators providing tokens and stylesheets.
type Sources struct {
	Tokens source.TokenSource
	Styles source.StyleSource
	// Lister is optional, used when component discovery is requested.
	Lister source.ComponentLister
}

// Pipeline runs complete build. It is single use.
type Pipeline struct {
	cfg     *config.Config
	src     Sources
	table   *catalog.Table
	cleaner *css.Cleaner
	rpt     *config.Report
	log     *zap.Logger

	w         *writer
	assembler *Assembler
	summary   *debug.TreeWriter
}

// NewPipeline prepares pipeline writing into out. Formatter service is owned
// by caller and must be opened by it.
func NewPipeline(cfg *config.Config, out string, src Sources, formatter *format.Service, rpt *config.Report, log *zap.Logger) (*Pipeline, error) {
	table, err := catalog.NewTable(cfg.Components.Prefixes, cfg.Components.Skip)
	if err != nil {
		return nil, err
	}
	assembler, err := NewAssembler(out, cfg, log)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:   cfg,
		src:   src,
		table: table,
		cleaner: css.NewCleaner(css.CleanOptions{
			ScopeClass:   cfg.Selectors.ScopeClass,
			WrapperClass: cfg.Selectors.WrapperClass,
		}),
		rpt:       rpt,
		log:       log,
		w:         &writer{out: out, fmt: formatter, log: log},
		assembler: assembler,
		summary:   debug.NewTreeWriter(),
	}, nil
}

// Build runs all stages in order. Any error aborts the run.
func (p *Pipeline) Build(ctx context.Context) error {
	if p.src.Tokens == nil || p.src.Styles == nil {
		return errors.New("token and style sources are required")
	}
	start := time.Now()
	p.summary.Line(0, "build")
	p.summary.TextBlock(1, "output", p.w.out)

	if err := prepareOutput(p.w.out, p.cfg.Output.Clean, p.log); err != nil {
		return err
	}

	p.log.Info("Step 1: Design tokens")
	if err := p.generateTokens(ctx); err != nil {
		return fmt.Errorf("unable to generate tokens: %w", err)
	}

	p.log.Info("Step 2: Extracting stylesheet")
	raw, err := p.extractStyles(ctx)
	if err != nil {
		return fmt.Errorf("unable to extract stylesheet: %w", err)
	}

	p.log.Info("Step 3: Base styles")
	if err := p.generateBase(ctx, raw); err != nil {
		return fmt.Errorf("unable to generate base styles: %w", err)
	}

	p.log.Info("Step 4: Component styles")
	cleaned := p.cleaner.Clean(raw)
	p.rpt.StoreData("styles/cleaned.css", []byte(cleaned))
	if err := p.splitComponents(ctx, cleaned); err != nil {
		return fmt.Errorf("unable to split component styles: %w", err)
	}
	if err := p.writeExtensions(); err != nil {
		return fmt.Errorf("unable to write extensions: %w", err)
	}

	p.log.Info("Step 5: Entry points")
	if err := p.assembler.Assemble(); err != nil {
		return fmt.Errorf("unable to assemble entry points: %w", err)
	}

	p.rpt.StoreData("summary.txt", []byte(p.summary.String()))
	if err := p.rpt.StoreCopy("output", p.w.out); err != nil {
		p.log.Warn("Unable to store output in debug report", zap.Error(err))
	}
	p.log.Info("Build complete", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Split processes already extracted raw stylesheet: component files,
// extensions and standalone keyframes.css. Nothing is cleaned and no
// external source is used.
func (p *Pipeline) Split(ctx context.Context, raw string) error {
	p.summary.Line(0, "split")
	p.summary.TextBlock(1, "output", p.w.out)

	if err := prepareOutput(p.w.out, false, p.log); err != nil {
		return err
	}
	p.rpt.StoreData("styles/raw.css", []byte(raw))

	cleaned := p.cleaner.Clean(raw)
	p.rpt.StoreData("styles/cleaned.css", []byte(cleaned))
	if err := p.splitComponents(ctx, cleaned); err != nil {
		return fmt.Errorf("unable to split component styles: %w", err)
	}
	if err := p.writeExtensions(); err != nil {
		return fmt.Errorf("unable to write extensions: %w", err)
	}
	if p.cfg.Keyframes.Enable {
		if text := css.ExtractKeyframes(raw, p.cfg.Keyframes.Dedupe); text != "" {
			n, err := p.w.write(KeyframesFile, text)
			if err != nil {
				return err
			}
			p.summary.Size(1, KeyframesFile, n)
		}
	}
	p.rpt.StoreData("summary.txt", []byte(p.summary.String()))
	return nil
}

func (p *Pipeline) generateTokens(ctx context.Context) error {
	p.summary.Line(1, "tokens")
	for _, theme := range tokens.Themes {
		if err := ctx.Err(); err != nil {
			return err
		}
		set, err := p.src.Tokens.Tokens(ctx, theme.Algorithms)
		if err != nil {
			return fmt.Errorf("theme %s: %w", theme.Name, err)
		}

		p.summary.Line(2, "theme=%s", theme.Name)
		p.summary.TextBlock(3, "selector", theme.Selector)

		n, err := p.w.write(theme.CSSFile(), theme.Stylesheet(set, p.cfg.Tokens.Prefix)+"\n")
		if err != nil {
			return err
		}
		p.summary.Size(3, path.Base(theme.CSSFile()), n)

		if !p.cfg.Tokens.JSON {
			continue
		}
		data, err := tokens.RenderJSON(set)
		if err != nil {
			return fmt.Errorf("theme %s: %w", theme.Name, err)
		}
		if n, err = p.w.write(theme.JSONFile(), string(data)+"\n"); err != nil {
			return err
		}
		p.summary.Size(3, path.Base(theme.JSONFile()), n)
	}
	return nil
}

// extractStyles gets raw full stylesheet. It is called once per run, result
// feeds both keyframes and component splitting.
func (p *Pipeline) extractStyles(ctx context.Context) (string, error) {
	raw, err := p.src.Styles.Stylesheet(ctx, source.StyleOptions{
		CacheKey: p.cfg.Source.CacheKey,
		Hashed:   p.cfg.Source.Hashed,
	})
	if err != nil {
		return "", err
	}
	p.log.Debug("Stylesheet extracted", zap.String("size", debug.FormatSize(len(raw))))
	p.rpt.StoreData("styles/raw.css", []byte(raw))
	return raw, nil
}

func (p *Pipeline) generateBase(ctx context.Context, raw string) error {
	reset, err := p.src.Styles.Reset(ctx)
	if err != nil {
		return fmt.Errorf("unable to get reset stylesheet: %w", err)
	}

	parts := []string{baseBanner, "", reset, p.asset(enhancementsCSS)}
	if p.cfg.Keyframes.Enable {
		parts = append(parts, css.ExtractKeyframes(raw, p.cfg.Keyframes.Dedupe))
	}
	n, err := p.w.write("base.css", strings.Join(parts, "\n"))
	if err != nil {
		return err
	}
	p.summary.Size(1, "base.css", n)
	return nil
}

type splitResult struct {
	group   catalog.Group
	size    int
	written bool
	err     error
}

func (p *Pipeline) componentNames(ctx context.Context) ([]string, error) {
	if !p.cfg.Components.Discover {
		return p.cfg.Components.Names, nil
	}
	if p.src.Lister == nil {
		p.log.Warn("Component discovery is not supported by source, using configured list")
		return p.cfg.Components.Names, nil
	}
	names, err := p.src.Lister.Components(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to discover components: %w", err)
	}
	if len(names) == 0 {
		p.log.Warn("Source did not report any components, using configured list")
		return p.cfg.Components.Names, nil
	}
	return names, nil
}

// splitComponents writes one file per class prefix. Extraction is a pure
// function of cleaned text so groups are processed in parallel.
func (p *Pipeline) splitComponents(ctx context.Context, cleaned string) error {
	names, err := p.componentNames(ctx)
	if err != nil {
		return err
	}
	groups := catalog.Groups(p.table.Descriptors(names))
	results := make([]splitResult, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Components.EffectiveWorkers())
	for i, grp := range groups {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			selector := css.ComponentSelector(p.cfg.Components.ClassPrefix, grp.Prefix)
			text := css.ExtractComponent(cleaned, grp.Label(), selector)
			results[i] = splitResult{group: grp, size: len(text)}
			if len(text) <= p.cfg.Components.MinSize {
				p.log.Debug("Component skipped", zap.String("component", grp.Label()), zap.Int("size", len(text)))
				return nil
			}
			n, err := p.w.write(path.Join(componentsDir, grp.Prefix+".css"), text)
			results[i] = splitResult{group: grp, size: n, written: err == nil, err: err}
			return nil
		})
	}
	err = g.Wait()

	var (
		count, total int
		skipped      []catalog.Group
	)
	p.summary.Line(1, "components")
	for _, r := range results {
		err = multierr.Append(err, r.err)
		if !r.written {
			if r.err == nil && r.group.Prefix != "" {
				skipped = append(skipped, r.group)
			}
			continue
		}
		count++
		total += r.size
		p.summary.Size(2, r.group.Prefix+".css", r.size)
		p.summary.TextBlock(3, "members", r.group.Label())
	}
	if len(skipped) > 0 {
		p.summary.Line(1, "skipped")
		for _, s := range skipped {
			p.summary.TextBlock(2, s.Prefix, s.Label())
		}
	}
	if err != nil {
		return err
	}
	p.log.Info("Summary", zap.Int("components", count), zap.Int("skipped", len(skipped)), zap.String("total", debug.FormatSize(total)))
	return nil
}

func (p *Pipeline) writeExtensions() error {
	exts := []struct {
		enabled bool
		name    string
		text    string
	}{
		{p.cfg.Extensions.Icon, "icon.css", iconCSS},
		{p.cfg.Extensions.Wave, "wave.css", waveCSS},
	}
	p.summary.Line(1, "extensions")
	for _, ext := range exts {
		if !ext.enabled {
			continue
		}
		n, err := p.w.write(path.Join(componentsDir, ext.name), p.asset(ext.text))
		if err != nil {
			return err
		}
		p.summary.Size(2, ext.name, n)
	}
	return nil
}

// asset adjusts embedded stylesheet to configured variable and class
// prefixes.
func (p *Pipeline) asset(text string) string {
	if prefix := p.cfg.Tokens.Prefix; prefix != tokens.DefaultPrefix {
		text = strings.ReplaceAll(text, "--"+tokens.DefaultPrefix+"-", "--"+prefix+"-")
	}
	if prefix := p.cfg.Components.ClassPrefix; prefix != tokens.DefaultPrefix {
		text = strings.ReplaceAll(text, "."+tokens.DefaultPrefix+"-", "."+prefix+"-")
	}
	return text
}
