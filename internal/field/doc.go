// Package field defines the Field record and the pure transformations that
// produce field lists: type inference over scalar values and structural
// flattening of nested objects into dotted-path leaves.
//
// It also holds the field mapping model. Any editable field can be bound to a
// (source document, target path) pair drawn from a companion document's own
// flattened field list.
//
// # Flattening rules
//
// Only object-shaped input is flattened. For each member, in order:
//
//   - non-empty array whose first element is an object: recurse into that
//     first element with "prefix.key" (no index in the path)
//   - object: recurse with "prefix.key"
//   - empty array: dropped
//   - anything else: one leaf Field
//
// # Mapping invariants
//
//   - a Mapping exists only on an editable field
//   - turning Editable off clears the Mapping
//   - choosing a different source document clears the target path
//
// No type compatibility is checked between a field and its mapping target.
package field
