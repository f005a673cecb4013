package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"curl-mapper/internal/companion"
	"curl-mapper/internal/extract"
	"curl-mapper/internal/match"
	"curl-mapper/internal/render"
	"curl-mapper/internal/value"
)

var errDocumentInvalid = errors.New("companion document has errors")

type flattenOptions struct {
	format string
	json   bool
}

func newFlattenCmd(root *rootOptions) *cobra.Command {
	var opts flattenOptions

	cmd := &cobra.Command{
		Use:   "flatten <document>",
		Short: "Flatten a companion JSON or YAML document into dot paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlatten(cmd, root, args[0], opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.format, "format", "", "json or yaml (default: from the file extension)")
	fs.BoolVar(&opts.json, "json", false, "print json instead of a table")

	return cmd
}

func runFlatten(cmd *cobra.Command, root *rootOptions, path string, opts flattenOptions) error {
	cfg, err := root.load()
	if err != nil {
		return err
	}

	format := value.FormatFromName(path)
	if strings.TrimSpace(opts.format) != "" {
		if format, err = value.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	content, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	id := filepath.Base(path)
	if path == "-" {
		id = "stdin"
	}

	doc, diags := companion.Load(id, id, content, format)

	if opts.json {
		err = writeJSON(cmd.OutOrStdout(), doc)
	} else {
		err = render.New(cmd.OutOrStdout(), cfg.Output.Color).Document(doc)
	}

	if err != nil {
		return err
	}

	if err := render.New(cmd.ErrOrStderr(), cfg.Output.Color).Diagnostics(diags); err != nil {
		return err
	}

	if diags.HasErrors() {
		return fmt.Errorf("%s: %w", path, errDocumentInvalid)
	}

	return nil
}

type suggestOptions struct {
	fieldPath string
	docs      []string
	limit     int
	json      bool
}

func newSuggestCmd(root *rootOptions) *cobra.Command {
	var opts suggestOptions

	cmd := &cobra.Command{
		Use:   "suggest <file|->",
		Short: "Rank companion document paths for one request field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(cmd, root, args[0], opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.fieldPath, "field", "f", "", "request field path, e.g. body.user.name")
	fs.StringSliceVar(&opts.docs, "docs", nil, "companion document files or directories")
	fs.IntVarP(&opts.limit, "limit", "n", 0, "maximum number of candidates (default from config)")
	fs.BoolVar(&opts.json, "json", false, "print json instead of a table")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func runSuggest(cmd *cobra.Command, root *rootOptions, path string, opts suggestOptions) error {
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

	if _, ok := fields.Find(opts.fieldPath); !ok {
		return fmt.Errorf("field %q is not present in the command", opts.fieldPath)
	}

	set, err := loadDocuments(cfg, opts.docs)
	if err != nil {
		return err
	}

	limit := opts.limit
	if limit <= 0 {
		limit = cfg.Suggest.Limit
	}

	candidates, diags := match.Suggest(opts.fieldPath, set.Documents(), 0)
	logDiagnostics(diags)

	candidates = candidates.AboveThreshold(cfg.Suggest.MinScore).Top(limit)

	if opts.json {
		if candidates == nil {
			candidates = match.CandidateList{}
		}

		return writeJSON(cmd.OutOrStdout(), candidates)
	}

	return render.New(cmd.OutOrStdout(), cfg.Output.Color).Suggestions(opts.fieldPath, candidates)
}
