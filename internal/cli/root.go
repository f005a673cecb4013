// Package cli implements the curl-mapper command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"curl-mapper/internal/config"
)

// Version is set at build time with -ldflags "-X curl-mapper/internal/cli.Version=...".
var Version = "dev"

type rootOptions struct {
	cfgPath string
	color   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "curl-mapper",
		Short:         "Turn curl commands into mappable request fields",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fs := cmd.PersistentFlags()
	fs.StringVarP(&opts.cfgPath, "config", "c", "", "config yaml path (default "+config.DefaultPath+" when present)")
	fs.StringVar(&opts.color, "color", "", "table colour: auto, always or never")

	cmd.AddCommand(
		newParseCmd(),
		newFieldsCmd(opts),
		newFlattenCmd(opts),
		newSuggestCmd(opts),
		newScenarioCmd(opts),
		newDiscoverCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// Execute runs the command line in args. Output goes to stdout and stderr;
// ctx is cancelled to stop long-running commands such as serve.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return root.ExecuteContext(ctx)
}

func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return nil, err
	}

	if c := strings.TrimSpace(o.color); c != "" {
		switch c {
		case config.ColorAuto, config.ColorAlways, config.ColorNever:
			cfg.Output.Color = c
		default:
			return nil, fmt.Errorf("invalid --color %q (want auto, always or never)", c)
		}
	}

	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "curl-mapper", Version)
			return err
		},
	}
}
