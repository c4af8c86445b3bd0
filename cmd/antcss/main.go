package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"antcss/generate"
	"antcss/misc"
	"antcss/state"
)

const buildHelp = `%s
DESTINATION:
    output directory, if absent - value of output.dir from configuration

    When output.clean is set DESTINATION is emptied first. Token computation
    and style extraction are performed either by running embedded worker with
    JavaScript runtime in source.project_dir (source.kind: script) or by
    reading files previously dumped into source.dump_dir (source.kind: dir):
        <algorithm>-tokens.json, full.css, reset.css, components.json
`

const splitHelp = `%s
SOURCE:
    path to full stylesheet produced by static style extraction

DESTINATION:
    output directory, if absent - value of output.dir from configuration,
    it is never cleaned by this command
`

const dumpConfigHelp = `%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Writes effective configuration: embedded defaults merged with configuration
file. Use --default to see embedded defaults alone.
`

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:               "build",
			Usage:              "Generates tokens, base, component and entry point stylesheets",
			Action:             generate.Build,
			ArgsUsage:          "[DESTINATION]",
			CustomHelpTemplate: fmt.Sprintf(buildHelp, cli.CommandHelpTemplate),
		},
		{
			Name:      "assemble",
			Usage:     "Re-generates entry point stylesheets from already generated files",
			Action:    generate.Assemble,
			ArgsUsage: "[DESTINATION]",
		},
		{
			Name:               "split",
			Usage:              "Splits previously extracted full stylesheet into component files",
			Action:             generate.Split,
			ArgsUsage:          "SOURCE [DESTINATION]",
			CustomHelpTemplate: fmt.Sprintf(splitHelp, cli.CommandHelpTemplate),
		},
		{
			Name:      "watch",
			Usage:     "Watches generated files and re-assembles entry points on change",
			Action:    generate.Watch,
			ArgsUsage: "[DESTINATION]",
			Flags: []cli.Flag{
				&cli.DurationFlag{Name: "debounce", Usage: "wait `DURATION` after last change before assembling (overrides watch.debounce)"},
			},
		},
		{
			Name:  "dumpconfig",
			Usage: "Dumps either default or actual configuration (YAML)",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
			},
			Action:             dumpConfiguration,
			ArgsUsage:          "DESTINATION",
			CustomHelpTemplate: fmt.Sprintf(dumpConfigHelp, cli.CommandHelpTemplate),
		},
	}
}

func main() {
	// watch runs until interrupted, worker processes are killed with context
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	cmds := commands()
	for _, c := range cmds {
		c.OnUsageError = passUsageError
	}
	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "extracts Ant Design tokens and component styles into plain CSS files",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          setup,
		After:           teardown,
		OnUsageError:    passUsageError,
		ExitErrHandler:  logError,
		CommandNotFound: unknownCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: cmds,
	}

	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		// log is either not ready yet or already closed
		if !errLogged {
			fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		}
		os.Exit(1)
	}
}
