// Package scenario saves the mappings chosen for one curl command so they
// can be re-applied to a fresh extraction later.
//
// A scenario file is YAML:
//
//	version: "1"
//	id: 6f1c2e1a-8d2b-4f7e-9a55-0c4b1f3e7d21
//	name: Create User
//	url: https://api.example.com/users
//	method: POST
//	command: curl -X POST https://api.example.com/users -d '{"name":"Jo"}'
//	sources:
//	  - users.json
//	bindings:
//	  - field: body.name
//	    type: dynamic
//	    source: users.json
//	    target: user.firstName
//	    value: Jo
//	created_at: 2024-05-01T10:00:00Z
//
// Only editable fields with both a source and a target become bindings.
package scenario
