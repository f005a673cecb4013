package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"curl-mapper/internal/curl"
	"curl-mapper/internal/diagnostic"
	"curl-mapper/internal/extract"
	"curl-mapper/internal/field"
	"curl-mapper/internal/match"
	"curl-mapper/internal/scenario"
	"curl-mapper/internal/value"
)

type commandRequest struct {
	Command string `json:"command"`
}

type documentInput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Format  string `json:"format"`
}

type suggestRequest struct {
	Path      string          `json:"path"`
	Documents []documentInput `json:"documents"`
	Limit     int             `json:"limit"`
}

type bindingInput struct {
	Path   string `json:"path"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type scenarioRequest struct {
	Command string         `json:"command"`
	Name    string         `json:"name"`
	URL     string         `json:"url"`
	Fields  []bindingInput `json:"fields"`
}

func (s *Server) handleDocuments(c *gin.Context) {
	docs := s.documents().Documents()
	if docs == nil {
		docs = []field.Document{}
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (s *Server) handleParse(c *gin.Context) {
	var in commandRequest
	if !bindJSON(c, &in) {
		return
	}

	req, err := curl.Parse(in.Command)
	if err != nil {
		writeParseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": req})
}

func (s *Server) handleFields(c *gin.Context) {
	var in commandRequest
	if !bindJSON(c, &in) {
		return
	}

	req, fields, err := extract.Command(in.Command)
	if err != nil {
		writeParseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": req, "fields": nonNil(fields)})
}

func (s *Server) handleFlatten(c *gin.Context) {
	var in documentInput
	if !bindJSON(c, &in) {
		return
	}

	doc, diags, err := s.loadDocument(in)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_format", err)
		return
	}

	doc.Fields = nonNil(doc.Fields)

	c.JSON(http.StatusOK, gin.H{"document": doc, "diagnostics": diags})
}

func (s *Server) handleSuggest(c *gin.Context) {
	var in suggestRequest
	if !bindJSON(c, &in) {
		return
	}

	if strings.TrimSpace(in.Path) == "" {
		writeError(c, http.StatusBadRequest, "invalid_request", errors.New("path is required"))
		return
	}

	diags := &diagnostic.Diagnostics{}

	docs := s.documents().Documents()
	if len(in.Documents) > 0 {
		docs = make([]field.Document, 0, len(in.Documents))

		for _, d := range in.Documents {
			doc, dd, err := s.loadDocument(d)
			if err != nil {
				writeError(c, http.StatusBadRequest, "invalid_format", err)
				return
			}

			diags.Merge(dd)
			docs = append(docs, doc)
		}
	}

	limit := in.Limit
	if limit <= 0 {
		limit = s.opts.Config.Suggest.Limit
	}

	candidates, sd := match.Suggest(in.Path, docs, 0)
	diags.Merge(sd)

	candidates = candidates.AboveThreshold(s.opts.Config.Suggest.MinScore).Top(limit)
	if candidates == nil {
		candidates = match.CandidateList{}
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates, "diagnostics": diags})
}

func (s *Server) handleScenario(c *gin.Context) {
	var in scenarioRequest
	if !bindJSON(c, &in) {
		return
	}

	req, fields, err := extract.Command(in.Command)
	if err != nil {
		writeParseError(c, err)
		return
	}

	draft := &scenario.Scenario{}
	for _, b := range in.Fields {
		draft.Bindings = append(draft.Bindings, scenario.Binding{
			Field:  b.Path,
			Type:   scenario.BindingDynamic,
			Source: b.Source,
			Target: b.Target,
		})
	}

	bound, diags := scenario.Apply(draft, fields)

	sc := scenario.Build(scenario.BuildOptions{
		Name:    in.Name,
		URL:     firstNonEmpty(in.URL, req.URL),
		Method:  req.Method,
		Command: in.Command,
	}, bound)

	diags.Merge(scenario.Validate(sc, s.documents()))

	c.JSON(http.StatusOK, gin.H{"scenario": sc, "diagnostics": diags})
}

func (s *Server) loadDocument(in documentInput) (field.Document, *diagnostic.Diagnostics, error) {
	format := value.FormatFromName(in.ID)
	if strings.TrimSpace(in.Format) != "" {
		f, err := value.ParseFormat(in.Format)
		if err != nil {
			return field.Document{}, nil, err
		}

		format = f
	}

	name := firstNonEmpty(in.Name, in.ID)
	doc, diags := s.opts.Cache.Load(in.ID, name, []byte(in.Content), format)

	return doc, diags, nil
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", err)
		return false
	}

	return true
}

func writeParseError(c *gin.Context, err error) {
	if errors.Is(err, curl.ErrNoURL) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no_url_found"})
		return
	}

	writeError(c, http.StatusBadRequest, "invalid_command", err)
}

func writeError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, gin.H{"error": code, "message": err.Error()})
}

func nonNil(l field.List) field.List {
	if l == nil {
		return field.List{}
	}

	return l
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
