package field

// TypeTag is the semantic type of a field value.
type TypeTag string

const (
	TypeString  TypeTag = "string"
	TypeNumber  TypeTag = "number"
	TypeBoolean TypeTag = "boolean"
	TypeNull    TypeTag = "null"
	TypeArray   TypeTag = "array"
	TypeDate    TypeTag = "date"
	TypeEmail   TypeTag = "email"
	TypeURL     TypeTag = "url"
)

// IsValid returns true if t is one of the known tags.
func (t TypeTag) IsValid() bool {
	switch t {
	case TypeString, TypeNumber, TypeBoolean, TypeNull, TypeArray, TypeDate, TypeEmail, TypeURL:
		return true
	default:
		return false
	}
}

// Mapping binds a field to a leaf of another flattened document.
type Mapping struct {
	// SourceID identifies the companion document.
	SourceID string `json:"sourceId" yaml:"source"`
	// TargetPath is a path within that document's flattened field list.
	// Empty until the user picks a target.
	TargetPath string `json:"targetPath" yaml:"target"`
}

// IsComplete returns true when both the source and the target are chosen.
func (m *Mapping) IsComplete() bool {
	return m != nil && m.SourceID != "" && m.TargetPath != ""
}

// Field is a single named, typed datum extracted from some source.
type Field struct {
	// Path is the dotted identifier, e.g. "body.user.address.city".
	Path string `json:"path"`
	// Value is the textual form of the current value.
	Value string `json:"value"`
	// Type is the inferred semantic type.
	Type TypeTag `json:"type"`
	// Editable marks fields the user may override or map.
	Editable bool `json:"editable"`
	// Mapping is set only when the field is bound to another document.
	Mapping *Mapping `json:"mapping,omitempty"`
}

// List is an ordered field list. Order is first-seen traversal order.
type List []Field

// Document is the flattened form of one structured source document.
type Document struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Fields List   `json:"fields"`
}

// Paths returns the field paths in order.
func (l List) Paths() []string {
	out := make([]string, len(l))
	for i := range l {
		out[i] = l[i].Path
	}

	return out
}

// Index returns the position of the field with the given path, or -1.
func (l List) Index(path string) int {
	for i := range l {
		if l[i].Path == path {
			return i
		}
	}

	return -1
}

// Find returns the field with the given path.
func (l List) Find(path string) (Field, bool) {
	if i := l.Index(path); i >= 0 {
		return l[i], true
	}

	return Field{}, false
}

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	if l == nil {
		return nil
	}

	out := make(List, len(l))
	for i, f := range l {
		if f.Mapping != nil {
			m := *f.Mapping
			f.Mapping = &m
		}

		out[i] = f
	}

	return out
}
