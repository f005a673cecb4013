// Package value provides the structured value used throughout curl-mapper:
// a tagged variant over JSON-like data that keeps object member order.
//
// A Value is one of:
//
//	Null | Bool | Number | String | Array<Value> | Object<ordered members>
//
// Object members keep their first-seen position. A repeated key replaces the
// earlier value in place, which is what JSON.parse does in a browser.
// Numbers keep the literal text they were written with, so "1.50" stays
// "1.50" in the textual form.
//
// Decoders:
//   - DecodeJSON: strict JSON, one value, trailing whitespace only
//   - DecodeYAML: YAML 1.2 via gopkg.in/yaml.v3 nodes (mapping order preserved)
//   - Decode: dispatches on Format
package value
