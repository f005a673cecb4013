package cli

import (
	"fmt"
	"log"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"curl-mapper/internal/companion"
	"curl-mapper/internal/curl"
	"curl-mapper/internal/extract"
	"curl-mapper/internal/field"
	"curl-mapper/internal/match"
	"curl-mapper/internal/render"
	"curl-mapper/internal/scenario"
)

type parseOptions struct {
	dump bool
}

func newParseCmd() *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a curl command into method, url, headers and body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], opts)
		},
	}

	fs := cmd.Flags()
	fs.BoolVar(&opts.dump, "dump", false, "print a Go value dump instead of json")

	return cmd
}

func runParse(cmd *cobra.Command, path string, opts parseOptions) error {
	snippet, err := readCommand(cmd, path)
	if err != nil {
		return err
	}

	req, err := curl.Parse(snippet.Command)
	if err != nil {
		return fmt.Errorf("failed to parse command: %w", err)
	}

	if opts.dump {
		spew.Fdump(cmd.OutOrStdout(), req)
		return nil
	}

	return writeJSON(cmd.OutOrStdout(), req)
}

type fieldsOptions struct {
	docs         []string
	scenarioPath string
	auto         bool
	json         bool
}

func newFieldsCmd(root *rootOptions) *cobra.Command {
	var opts fieldsOptions

	cmd := &cobra.Command{
		Use:   "fields <file|->",
		Short: "List the header and body fields of a curl command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(cmd, root, args[0], opts)
		},
	}

	fs := cmd.Flags()
	fs.StringSliceVar(&opts.docs, "docs", nil, "companion document files or directories")
	fs.StringVar(&opts.scenarioPath, "scenario", "", "apply the bindings of a saved scenario")
	fs.BoolVar(&opts.auto, "auto", false, "bind body fields to high-confidence suggestions from --docs")
	fs.BoolVar(&opts.json, "json", false, "print json instead of a table")

	return cmd
}

func runFields(cmd *cobra.Command, root *rootOptions, path string, opts fieldsOptions) error {
	cfg, err := root.load()
	if err != nil {
		return err
	}

	snippet, err := readCommand(cmd, path)
	if err != nil {
		return err
	}

	_, fields, err := extract.Command(snippet.Command)
	if err != nil {
		return fmt.Errorf("failed to parse command: %w", err)
	}

	var set *companion.Set
	if len(opts.docs) > 0 || cfg.Companion.Dir != "" {
		if set, err = loadDocuments(cfg, opts.docs); err != nil {
			return err
		}
	}

	if opts.scenarioPath != "" {
		s, err := scenario.LoadFile(opts.scenarioPath)
		if err != nil {
			return err
		}

		bound, diags := scenario.Apply(s, fields)
		if set != nil {
			diags.Merge(scenario.Validate(s, set))
		}

		logDiagnostics(diags)

		fields = bound
	}

	if opts.auto {
		autoBind(fields, set.Documents())
	}

	if set != nil {
		logDiagnostics(companion.ValidateMappings(fields, set))
	}

	if opts.json {
		return writeJSON(cmd.OutOrStdout(), fields)
	}

	return render.New(cmd.OutOrStdout(), cfg.Output.Color).Fields(fields)
}

// autoBind maps every unmapped body field whose best candidate is a clear
// winner.
func autoBind(fields field.List, docs []field.Document) {
	for i, f := range fields {
		if !isBodyField(f) || f.Mapping != nil {
			continue
		}

		best := match.RankCandidates(f.Path, docs).HighConfidence(match.DefaultMinScore, match.DefaultMinGap)
		if best == nil {
			continue
		}

		if err := fields.SetEditable(i, true); err != nil {
			continue
		}

		if err := fields.Bind(i, best.SourceID, best.Path); err != nil {
			continue
		}

		log.Printf("auto-bound field: path=%q source=%q target=%q score=%.3f", f.Path, best.SourceID, best.Path, best.Score)
	}
}
