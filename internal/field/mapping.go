package field

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when an index does not address a field.
	ErrIndexOutOfRange = errors.New("field index out of range")
	// ErrNotEditable is returned when editing or mapping a locked field.
	ErrNotEditable = errors.New("field is not editable")
	// ErrNoSource is returned when a target path is chosen before a source document.
	ErrNoSource = errors.New("no source document selected")
)

func (l List) at(i int) (*Field, error) {
	if i < 0 || i >= len(l) {
		return nil, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(l))
	}

	return &l[i], nil
}

func (l List) editableAt(i int) (*Field, error) {
	f, err := l.at(i)
	if err != nil {
		return nil, err
	}

	if !f.Editable {
		return nil, fmt.Errorf("%w: %s", ErrNotEditable, f.Path)
	}

	return f, nil
}

// SetEditable toggles whether the field at i may be overridden or mapped.
// Locking a field drops its mapping.
func (l List) SetEditable(i int, editable bool) error {
	f, err := l.at(i)
	if err != nil {
		return err
	}

	f.Editable = editable
	if !editable {
		f.Mapping = nil
	}

	return nil
}

// SelectSource binds the field at i to a companion document. Choosing a
// different document resets the target path. An empty sourceID removes the
// mapping.
func (l List) SelectSource(i int, sourceID string) error {
	f, err := l.editableAt(i)
	if err != nil {
		return err
	}

	switch {
	case sourceID == "":
		f.Mapping = nil
	case f.Mapping == nil || f.Mapping.SourceID != sourceID:
		f.Mapping = &Mapping{SourceID: sourceID}
	}

	return nil
}

// SelectTarget sets the target path within the already selected source document.
func (l List) SelectTarget(i int, targetPath string) error {
	f, err := l.editableAt(i)
	if err != nil {
		return err
	}

	if f.Mapping == nil || f.Mapping.SourceID == "" {
		return fmt.Errorf("%w: %s", ErrNoSource, f.Path)
	}

	m := *f.Mapping
	m.TargetPath = targetPath
	f.Mapping = &m

	return nil
}

// Bind is SelectSource followed by SelectTarget.
func (l List) Bind(i int, sourceID, targetPath string) error {
	if err := l.SelectSource(i, sourceID); err != nil {
		return err
	}

	if sourceID == "" {
		return nil
	}

	return l.SelectTarget(i, targetPath)
}

// ClearMapping removes the mapping of the field at i, leaving Editable as is.
func (l List) ClearMapping(i int) error {
	f, err := l.at(i)
	if err != nil {
		return err
	}

	f.Mapping = nil

	return nil
}

// SetValue overrides the value of an editable field.
func (l List) SetValue(i int, v string) error {
	f, err := l.editableAt(i)
	if err != nil {
		return err
	}

	f.Value = v

	return nil
}

// ClearMappings returns a copy of the list with every mapping removed.
func (l List) ClearMappings() List {
	out := l.Clone()
	for i := range out {
		out[i].Mapping = nil
	}

	return out
}

// Mapped returns the editable fields whose mapping names both a source and a target.
func (l List) Mapped() List {
	var out List

	for _, f := range l {
		if f.Editable && f.Mapping.IsComplete() {
			out = append(out, f)
		}
	}

	return out.Clone()
}
