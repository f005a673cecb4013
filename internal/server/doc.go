// Package server exposes the parser, extractor, flattener, suggestions and
// scenario builder over a JSON HTTP API.
//
//	GET  /healthz
//	GET  /v1/documents   companion documents currently loaded
//	POST /v1/parse       {command}
//	POST /v1/fields      {command}
//	POST /v1/flatten     {id, name, content, format}
//	POST /v1/suggest     {path, documents, limit}
//	POST /v1/scenario    {command, name, url, fields}
//
// A command without a URL is answered with 422 {"error":"no_url_found"}.
package server
