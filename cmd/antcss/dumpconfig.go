package main

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"antcss/config"
	"antcss/state"
)

func dumpConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		dst  io.Writer = os.Stdout
		name           = "STDOUT"
	)
	if arg := cmd.Args().First(); arg != "" {
		f, err := os.Create(arg)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", arg, err)
		}
		defer f.Close()
		dst, name = f, arg
	}

	kind, err := writeConfiguration(dst, env.Cfg, cmd.Bool("default"))
	if err != nil {
		return err
	}
	env.Log.Info("Configuration written", zap.String("kind", kind), zap.String("file", name))
	return nil
}

// writeConfiguration writes either embedded defaults or cfg as YAML, returns
// which one was written.
func writeConfiguration(w io.Writer, cfg *config.Config, defaults bool) (string, error) {
	var (
		kind = "actual"
		data []byte
		err  error
	)
	if defaults {
		kind = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(cfg)
	}
	if err != nil {
		return kind, fmt.Errorf("unable to get %s configuration: %w", kind, err)
	}
	if _, err := w.Write(data); err != nil {
		return kind, fmt.Errorf("unable to write configuration: %w", err)
	}
	return kind, nil
}
