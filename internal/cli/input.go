package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"curl-mapper/internal/companion"
	"curl-mapper/internal/config"
	"curl-mapper/internal/curl"
	"curl-mapper/internal/diagnostic"
	"curl-mapper/internal/field"
)

var errNoCommand = errors.New("no curl command found in input")

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}

		return b, nil
	}

	// #nosec G304 -- path is provided by the user on the command line.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return b, nil
}

// readCommand loads the curl command held in path. Markdown files contribute
// their first fenced curl block and the "API Name:"/"API URL:" lines; other
// files use their first fenced block or, failing that, the whole text.
func readCommand(cmd *cobra.Command, path string) (curl.Snippet, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return curl.Snippet{}, err
	}

	text := string(data)

	if isMarkdown(path) {
		s, ok := curl.FromMarkdown(text)
		if !ok {
			return s, fmt.Errorf("%s: %w", path, errNoCommand)
		}

		return s, nil
	}

	if found := curl.FindInText(text); len(found) > 0 {
		return found[0], nil
	}

	if strings.TrimSpace(text) == "" {
		return curl.Snippet{}, fmt.Errorf("%s: %w", path, errNoCommand)
	}

	return curl.Snippet{Command: strings.TrimSpace(text)}, nil
}

// loadDocuments loads companion documents from files and directories. With
// no paths the configured companion directory is used, if any.
func loadDocuments(cfg *config.Config, paths []string) (*companion.Set, error) {
	cache, err := companion.NewCache(cfg.Companion.CacheSize)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 && cfg.Companion.Dir != "" {
		paths = []string{cfg.Companion.Dir}
	}

	set := companion.NewSet()
	diags := &diagnostic.Diagnostics{}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat companion path: %w", err)
		}

		if info.IsDir() {
			dirSet, d, err := companion.LoadDir(p, cache)
			if err != nil {
				return nil, err
			}

			for _, doc := range dirSet.Documents() {
				set.Put(doc)
			}

			diags.Merge(d)

			continue
		}

		doc, d, err := companion.LoadFile(p)
		if err != nil {
			return nil, err
		}

		set.Put(doc)
		diags.Merge(d)
	}

	logDiagnostics(diags)

	return set, nil
}

func logDiagnostics(d *diagnostic.Diagnostics) {
	for _, diag := range d.All() {
		log.Printf("%s: code=%s source=%q field=%q message=%q",
			diag.Severity, diag.Code, diag.Source, diag.FieldPath, diag.Message)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}

	return nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}

func isBodyField(f field.Field) bool {
	return strings.HasPrefix(f.Path, field.PrefixBody+".")
}
