package generate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"antcss/config"
	"antcss/format"
	"antcss/source"
	"antcss/state"
)

// Build is the action of build command: complete pipeline.
func Build(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	out := env.ResolveOutput(cmd.Args().First())
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	formatter := newFormatter(env.Cfg, log)
	defer func() {
		if er := formatter.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close formatter: %w", er))
		}
	}()

	p, err := NewPipeline(env.Cfg, out, NewSources(env.Cfg, log), formatter, env.Rpt, log)
	if err != nil {
		return err
	}

	log.Info("Extracting Ant Design tokens and component styles", zap.String("destination", out), zap.String("source", env.Cfg.Source.Kind))
	return p.Build(ctx)
}

// Assemble is the action of assemble command: entry points only.
func Assemble(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	a, err := NewAssembler(env.ResolveOutput(cmd.Args().First()), env.Cfg, env.Log)
	if err != nil {
		return err
	}
	return a.Assemble()
}

// Split is the action of split command: splits raw stylesheet file without
// any JavaScript runtime.
func Split(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("split")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input stylesheet has been specified")
	}
	raw, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read input stylesheet: %w", err)
	}
	out := env.ResolveOutput(cmd.Args().Get(1))

	formatter := newFormatter(env.Cfg, log)
	defer func() {
		if er := formatter.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close formatter: %w", er))
		}
	}()

	p, err := NewPipeline(env.Cfg, out, Sources{}, formatter, env.Rpt, log)
	if err != nil {
		return err
	}

	log.Info("Splitting stylesheet", zap.String("source", src), zap.String("destination", out))
	defer func(start time.Time) {
		log.Info("Splitting completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return p.Split(ctx, string(raw))
}

// Watch is the action of watch command: re-assembles entry points whenever
// generated inputs change, until interrupted.
func Watch(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	a, err := NewAssembler(env.ResolveOutput(cmd.Args().First()), env.Cfg, env.Log)
	if err != nil {
		return err
	}
	debounce := env.Cfg.Watch.Debounce
	if d := cmd.Duration("debounce"); d > 0 {
		debounce = d
	}
	return NewWatcher(a, debounce, env.Log).Run(ctx, nil)
}

// NewSources creates configured token and style sources.
func NewSources(cfg *config.Config, log *zap.Logger) Sources {
	switch cfg.Source.Kind {
	case "dir":
		d := source.NewDir(cfg.Source.DumpDir)
		return Sources{Tokens: d, Styles: d, Lister: d}
	default:
		s := source.NewScript(cfg.Source.Runtime, cfg.Source.ProjectDir, cfg.Source.Timeout, log)
		return Sources{Tokens: s, Styles: s, Lister: s}
	}
}

// newFormatter opens configured formatter. Formatting is cosmetic, when
// engine is not available output is written as is.
func newFormatter(cfg *config.Config, log *zap.Logger) *format.Service {
	engine, err := format.New(cfg.Formatter.Engine, cfg.Formatter.Binary, log)
	if err != nil {
		log.Warn("Unknown formatter, output will not be formatted", zap.Error(err))
		engine = format.None{}
	}
	project := cfg.Source.ProjectDir
	if project == "" {
		project = "."
	}
	svc := format.NewService(engine, project, format.Options{
		IndentStyle: cfg.Formatter.IndentStyle,
		IndentWidth: cfg.Formatter.IndentWidth,
	}, log)
	if err := svc.Open(); err != nil {
		log.Warn("Formatter is not available, output will not be formatted", zap.Error(err))
	}
	return svc
}
