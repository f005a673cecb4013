package cli

import (
	"bytes"

	"github.com/spf13/cobra"

	"curl-mapper/internal/curl"
	"curl-mapper/internal/render"
)

type discoverOptions struct {
	json bool
}

func newDiscoverCmd(root *rootOptions) *cobra.Command {
	var opts discoverOptions

	cmd := &cobra.Command{
		Use:   "discover <file|->",
		Short: "Find curl commands in markdown, html or plain text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscover(cmd, root, args[0], opts)
		},
	}

	fs := cmd.Flags()
	fs.BoolVar(&opts.json, "json", false, "print json instead of a table")

	return cmd
}

func runDiscover(cmd *cobra.Command, root *rootOptions, path string, opts discoverOptions) error {
	cfg, err := root.load()
	if err != nil {
		return err
	}

	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	var snippets []curl.Snippet

	switch {
	case isHTML(path):
		if snippets, err = curl.FindInHTML(bytes.NewReader(data)); err != nil {
			return err
		}
	case isMarkdown(path):
		snippets = curl.FindInText(string(data))
		if head, ok := curl.FromMarkdown(string(data)); ok && len(snippets) > 0 {
			snippets[0].APIName = head.APIName
			snippets[0].APIURL = head.APIURL
		}
	default:
		snippets = curl.FindInText(string(data))
	}

	if opts.json {
		if snippets == nil {
			snippets = []curl.Snippet{}
		}

		return writeJSON(cmd.OutOrStdout(), snippets)
	}

	return render.New(cmd.OutOrStdout(), cfg.Output.Color).Snippets(snippets)
}
