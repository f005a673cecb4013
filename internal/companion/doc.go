// Package companion loads companion documents (JSON or YAML) into flattened
// field documents that serve as mapping sources.
//
// A Set holds the documents available for mapping. A Cache avoids
// re-flattening unchanged content, and a Watcher keeps a Set in sync with a
// directory on disk.
package companion
