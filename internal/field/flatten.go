package field

import "curl-mapper/internal/value"

// Flatten walks an object-shaped value and returns its leaf fields in
// traversal order, with paths rooted at prefix. Non-object input yields an
// empty list.
//
// An array of objects is represented by its first element's shape, flattened
// under the array's own key with no index segment. Empty arrays produce
// nothing. When two leaves end up sharing a path (keys that contain dots can
// do this), the first one seen is kept.
func Flatten(v value.Value, prefix string) List {
	if !v.IsObject() {
		return nil
	}

	f := flattener{seen: make(map[string]struct{})}
	f.object(v, prefix)

	return f.out
}

type flattener struct {
	out  List
	seen map[string]struct{}
}

func (f *flattener) object(obj value.Value, prefix string) {
	for _, m := range obj.Members() {
		v := m.Value
		path := JoinPath(prefix, m.Key)

		switch {
		case v.IsArray() && v.Len() == 0:
			continue
		case v.IsArray() && v.Items()[0].IsObject():
			f.object(v.Items()[0], path)
		case v.IsObject():
			f.object(v, path)
		default:
			f.leaf(path, v)
		}
	}
}

func (f *flattener) leaf(path string, v value.Value) {
	if _, dup := f.seen[path]; dup {
		return
	}

	f.seen[path] = struct{}{}
	f.out = append(f.out, Field{
		Path:  path,
		Value: v.Text(),
		Type:  Infer(v),
	})
}
