package scenario

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"curl-mapper/internal/field"
)

const (
	// CurrentVersion is written to new scenarios.
	CurrentVersion = "1"
	// BindingDynamic marks a value drawn from another document.
	BindingDynamic = "dynamic"
	// DefaultName is used when neither a name nor a command file is known.
	DefaultName = "API"
	// UnknownURL is used when no API URL is known.
	UnknownURL = "N/A"
)

// Scenario is a saved set of field bindings for one command.
type Scenario struct {
	Version   string    `yaml:"version"             json:"version"`
	ID        string    `yaml:"id"                  json:"id"`
	Name      string    `yaml:"name"                json:"name"`
	URL       string    `yaml:"url"                 json:"url"`
	Method    string    `yaml:"method,omitempty"    json:"method,omitempty"`
	Command   string    `yaml:"command,omitempty"   json:"command,omitempty"`
	Sources   []string  `yaml:"sources,omitempty"   json:"sources,omitempty"`
	Bindings  []Binding `yaml:"bindings"            json:"bindings"`
	CreatedAt time.Time `yaml:"created_at"          json:"createdAt"`
}

// Binding redirects one field's value to a field of a source document.
type Binding struct {
	Field  string `yaml:"field"           json:"field"`
	Type   string `yaml:"type"            json:"type"`
	Source string `yaml:"source"          json:"source"`
	Target string `yaml:"target"          json:"target"`
	Value  string `yaml:"value,omitempty" json:"value,omitempty"`
}

// BuildOptions describes the command a scenario is built for.
type BuildOptions struct {
	Name    string
	URL     string
	Method  string
	Command string
	// Sources lists the companion documents offered for mapping. When empty
	// it is derived from the bindings.
	Sources []string
	// Now is used for CreatedAt; time.Now when nil.
	Now func() time.Time
}

// Build creates a scenario from the complete mappings in fields.
func Build(opts BuildOptions, fields field.List) *Scenario {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	s := &Scenario{
		Version:   CurrentVersion,
		ID:        uuid.New().String(),
		Name:      firstNonEmpty(opts.Name, DefaultName),
		URL:       firstNonEmpty(opts.URL, UnknownURL),
		Method:    opts.Method,
		Command:   strings.TrimSpace(opts.Command),
		Sources:   append([]string(nil), opts.Sources...),
		Bindings:  []Binding{},
		CreatedAt: now().UTC(),
	}

	for _, f := range fields.Mapped() {
		s.Bindings = append(s.Bindings, Binding{
			Field:  f.Path,
			Type:   BindingDynamic,
			Source: f.Mapping.SourceID,
			Target: f.Mapping.TargetPath,
			Value:  f.Value,
		})
	}

	if len(s.Sources) == 0 {
		s.Sources = s.BindingSources()
	}

	return s
}

// BindingSources returns the distinct binding sources in first-use order.
func (s *Scenario) BindingSources() []string {
	seen := make(map[string]struct{})

	var out []string

	for _, b := range s.Bindings {
		if _, ok := seen[b.Source]; ok {
			continue
		}

		seen[b.Source] = struct{}{}
		out = append(out, b.Source)
	}

	return out
}

// Binding returns the binding for a field path.
func (s *Scenario) Binding(fieldPath string) (Binding, bool) {
	for _, b := range s.Bindings {
		if b.Field == fieldPath {
			return b, true
		}
	}

	return Binding{}, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	return ""
}
