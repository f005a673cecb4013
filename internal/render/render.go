package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"curl-mapper/internal/config"
	"curl-mapper/internal/curl"
	"curl-mapper/internal/diagnostic"
	"curl-mapper/internal/field"
	"curl-mapper/internal/match"
)

// maxValueWidth truncates long values in table cells.
const maxValueWidth = 48

// Renderer writes tables to w.
type Renderer struct {
	w     io.Writer
	color bool

	header lipgloss.Style
	cell   lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
	err    lipgloss.Style
}

// New returns a Renderer for w. mode is one of the config.Color* values.
func New(w io.Writer, mode string) *Renderer {
	r := &Renderer{w: w, color: UseColor(w, mode)}

	r.cell = lipgloss.NewStyle().Padding(0, 1)
	r.header = r.cell
	r.muted = lipgloss.NewStyle()
	r.warn = lipgloss.NewStyle()
	r.err = lipgloss.NewStyle()

	if r.color {
		r.header = r.header.Bold(true).Foreground(lipgloss.Color("12"))
		r.muted = r.muted.Foreground(lipgloss.Color("8"))
		r.warn = r.warn.Foreground(lipgloss.Color("11"))
		r.err = r.err.Bold(true).Foreground(lipgloss.Color("9"))
	}

	return r
}

// UseColor decides whether output to w should be coloured.
func UseColor(w io.Writer, mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Fields prints a field list.
func (r *Renderer) Fields(list field.List) error {
	if len(list) == 0 {
		return r.line(r.muted.Render("no fields"))
	}

	rows := make([][]string, 0, len(list))
	for _, f := range list {
		rows = append(rows, []string{
			f.Path,
			truncate(f.Value),
			string(f.Type),
			yesNo(f.Editable),
			mappingText(f.Mapping),
		})
	}

	return r.table([]string{"PATH", "VALUE", "TYPE", "EDITABLE", "MAPPING"}, rows)
}

// Document prints one flattened document under a title line.
func (r *Renderer) Document(doc field.Document) error {
	if err := r.line(r.header.Render(doc.ID)); err != nil {
		return err
	}

	return r.Fields(doc.Fields)
}

// Documents prints a summary row per document.
func (r *Renderer) Documents(docs []field.Document) error {
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{d.ID, d.Name, strconv.Itoa(len(d.Fields))})
	}

	return r.table([]string{"ID", "NAME", "FIELDS"}, rows)
}

// Suggestions prints ranked candidates for one field.
func (r *Renderer) Suggestions(fieldPath string, candidates match.CandidateList) error {
	if err := r.line("suggestions for " + r.header.Render(fieldPath)); err != nil {
		return err
	}

	if len(candidates) == 0 {
		return r.line(r.muted.Render("no candidates"))
	}

	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []string{
			fmt.Sprintf("%.3f", c.Score),
			c.SourceID,
			c.Path,
			string(c.Type),
			truncate(c.Value),
		})
	}

	return r.table([]string{"SCORE", "SOURCE", "PATH", "TYPE", "VALUE"}, rows)
}

// Snippets prints discovered commands.
func (r *Renderer) Snippets(snippets []curl.Snippet) error {
	if len(snippets) == 0 {
		return r.line(r.muted.Render("no curl commands found"))
	}

	rows := make([][]string, 0, len(snippets))
	for i, s := range snippets {
		rows = append(rows, []string{strconv.Itoa(i + 1), s.APIName, s.APIURL, truncate(oneLine(s.Command))})
	}

	return r.table([]string{"#", "API NAME", "API URL", "COMMAND"}, rows)
}

// Diagnostics prints one line per diagnostic, errors first.
func (r *Renderer) Diagnostics(d *diagnostic.Diagnostics) error {
	for _, diag := range d.All() {
		style := r.muted

		switch diag.Severity {
		case diagnostic.SeverityError:
			style = r.err
		case diagnostic.SeverityWarning:
			style = r.warn
		case diagnostic.SeverityInfo:
		}

		if err := r.line(style.Render(diag.Severity.String()) + " " + diag.String()); err != nil {
			return err
		}
	}

	return nil
}

func (r *Renderer) table(headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}

			return r.cell
		})

	return r.line(t.String())
}

func (r *Renderer) line(s string) error {
	_, err := fmt.Fprintln(r.w, s)
	return err
}

func mappingText(m *field.Mapping) string {
	switch {
	case m == nil:
		return ""
	case m.TargetPath == "":
		return m.SourceID + ":?"
	default:
		return m.SourceID + ":" + m.TargetPath
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxValueWidth {
		return s
	}

	return string(runes[:maxValueWidth-1]) + "…"
}
