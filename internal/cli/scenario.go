package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"curl-mapper/internal/extract"
	"curl-mapper/internal/scenario"
)

var (
	errBadMapping = errors.New("mapping must look like path=document:target")
	errUnresolved = errors.New("scenario has unresolved bindings")
)

type scenarioOptions struct {
	docs   []string
	maps   []string
	name   string
	url    string
	output string
	strict bool
}

func newScenarioCmd(root *rootOptions) *cobra.Command {
	var opts scenarioOptions

	cmd := &cobra.Command{
		Use:   "scenario <file|->",
		Short: "Build a mapping scenario for a curl command",
		Long: "Build a mapping scenario for a curl command.\n\n" +
			"Each --map binds a body field to a path of a companion document:\n" +
			"  --map body.user.name=users.json:user.firstName",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, root, args[0], opts)
		},
	}

	fs := cmd.Flags()
	fs.StringSliceVar(&opts.docs, "docs", nil, "companion document files or directories")
	fs.StringArrayVarP(&opts.maps, "map", "m", nil, "binding as path=document:target (repeatable)")
	fs.StringVar(&opts.name, "name", "", "API name (default: from markdown, else "+scenario.DefaultName+")")
	fs.StringVar(&opts.url, "url", "", "API url (default: from markdown, else the command url)")
	fs.StringVarP(&opts.output, "output", "o", "", "write the scenario yaml to this file instead of stdout")
	fs.BoolVar(&opts.strict, "strict", false, "fail when a binding does not resolve")

	return cmd
}

func runScenario(cmd *cobra.Command, root *rootOptions, path string, opts scenarioOptions) error {
	cfg, err := root.load()
	if err != nil {
		return err
	}

	snippet, err := readCommand(cmd, path)
	if err != nil {
		return err
	}

	req, fields, err := extract.Command(snippet.Command)
	if err != nil {
		return fmt.Errorf("failed to parse command: %w", err)
	}

	draft := &scenario.Scenario{}
	for _, m := range opts.maps {
		b, err := parseMapping(m)
		if err != nil {
			return err
		}

		draft.Bindings = append(draft.Bindings, b)
	}

	set, err := loadDocuments(cfg, opts.docs)
	if err != nil {
		return err
	}

	bound, diags := scenario.Apply(draft, fields)

	s := scenario.Build(scenario.BuildOptions{
		Name:    firstNonEmpty(opts.name, snippet.APIName),
		URL:     firstNonEmpty(opts.url, snippet.APIURL, req.URL),
		Method:  req.Method,
		Command: snippet.Command,
		Sources: set.IDs(),
	}, bound)

	diags.Merge(scenario.Validate(s, set))
	logDiagnostics(diags)

	if opts.strict && (diags.HasErrors() || len(diags.Warnings) > 0) {
		return fmt.Errorf("%w: %d errors, %d warnings", errUnresolved, len(diags.Errors), len(diags.Warnings))
	}

	if opts.output != "" {
		if err := scenario.WriteFile(s, opts.output); err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bindings)\n", opts.output, len(s.Bindings))

		return err
	}

	data, err := scenario.Marshal(s)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}

// parseMapping reads "body.user.name=users.json:user.firstName".
func parseMapping(text string) (scenario.Binding, error) {
	fieldPath, ref, ok := strings.Cut(text, "=")
	if !ok {
		return scenario.Binding{}, fmt.Errorf("%w: %q", errBadMapping, text)
	}

	source, target, ok := strings.Cut(ref, ":")

	fieldPath = strings.TrimSpace(fieldPath)
	source = strings.TrimSpace(source)
	target = strings.TrimSpace(target)

	if !ok || fieldPath == "" || source == "" || target == "" {
		return scenario.Binding{}, fmt.Errorf("%w: %q", errBadMapping, text)
	}

	return scenario.Binding{
		Field:  fieldPath,
		Type:   scenario.BindingDynamic,
		Source: source,
		Target: target,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
