package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curl-mapper/internal/companion"
	"curl-mapper/internal/field"
)

const exampleCommand = `curl -X POST 'https://api.x.com/u' -H 'Content-Type: application/json' -d '{"name":"Jo","age":30}'`

func newTestServer(t *testing.T, docs ...field.Document) *Server {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cache, err := companion.NewCache(16)
	require.NoError(t, err)

	set := companion.NewSet(docs...)

	return New(Options{
		Documents: func() *companion.Set { return set },
		Cache:     cache,
	})
}

func do(t *testing.T, s *Server, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *strings.Reader

	switch b := body.(type) {
	case nil:
		reader = strings.NewReader("")
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)

		reader = strings.NewReader(string(data))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}

	return w, out
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	w, out := do(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, out["ok"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "rid-1")

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "rid-1", w.Header().Get(RequestIDHeader))
}

func TestParse(t *testing.T) {
	s := newTestServer(t)

	w, out := do(t, s, http.MethodPost, "/v1/parse", gin.H{"command": exampleCommand})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req := out["request"].(map[string]any)
	assert.Equal(t, "POST", req["method"])
	assert.Equal(t, "https://api.x.com/u", req["url"])
	assert.Equal(t, map[string]any{"Content-Type": "application/json"}, req["headers"])
	assert.Equal(t, map[string]any{"name": "Jo", "age": float64(30)}, req["body"])
}

func TestParse_NoURL(t *testing.T) {
	s := newTestServer(t)

	w, out := do(t, s, http.MethodPost, "/v1/parse", gin.H{"command": "curl -X POST"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "no_url_found", out["error"])
}

func TestParse_BadJSON(t *testing.T) {
	s := newTestServer(t)

	w, out := do(t, s, http.MethodPost, "/v1/parse", "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", out["error"])
}

func TestFields(t *testing.T) {
	s := newTestServer(t)

	w, out := do(t, s, http.MethodPost, "/v1/fields", gin.H{"command": exampleCommand})
	require.Equal(t, http.StatusOK, w.Code)

	fields := out["fields"].([]any)
	require.Len(t, fields, 3)

	first := fields[0].(map[string]any)
	assert.Equal(t, "header.Content-Type", first["path"])
	assert.Equal(t, false, first["editable"])
	assert.Equal(t, "number", fields[2].(map[string]any)["type"])

	w, out = do(t, s, http.MethodPost, "/v1/fields", gin.H{"command": "no url here"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "no_url_found", out["error"])
}

func TestFlatten(t *testing.T) {
	s := newTestServer(t)

	w, out := do(t, s, http.MethodPost, "/v1/flatten", gin.H{
		"id":      "users.yaml",
		"content": "user:\n  firstName: Ann\n",
	})
	require.Equal(t, http.StatusOK, w.Code)

	doc := out["document"].(map[string]any)
	assert.Equal(t, "users.yaml", doc["id"])
	assert.Len(t, doc["fields"], 1)
}

func TestFlatten_DecodeFailure(t *testing.T) {
	s := newTestServer(t)

	w, out := do(t, s, http.MethodPost, "/v1/flatten", gin.H{"id": "bad.json", "content": "{"})
	require.Equal(t, http.StatusOK, w.Code)

	doc := out["document"].(map[string]any)
	assert.Equal(t, []any{}, doc["fields"])

	diags := out["diagnostics"].(map[string]any)
	errs := diags["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "companion_decode_failed", errs[0].(map[string]any)["code"])

	w, out = do(t, s, http.MethodPost, "/v1/flatten", gin.H{"id": "x", "content": "{}", "format": "toml"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_format", out["error"])
}

func TestSuggest(t *testing.T) {
	s := newTestServer(t, field.Document{ID: "loaded.json", Fields: field.List{{Path: "name", Type: field.TypeString}}})

	w, out := do(t, s, http.MethodPost, "/v1/suggest", gin.H{
		"path": "body.name",
		"documents": []gin.H{
			{"id": "users.json", "content": `{"user":{"name":"Ann","email":"a@b.co"}}`},
		},
		"limit": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	candidates := out["candidates"].([]any)
	require.Len(t, candidates, 1)
	assert.Equal(t, "users.json", candidates[0].(map[string]any)["sourceId"])

	// Without inline documents the loaded set is used.
	w, out = do(t, s, http.MethodPost, "/v1/suggest", gin.H{"path": "body.name"})
	require.Equal(t, http.StatusOK, w.Code)

	candidates = out["candidates"].([]any)
	require.Len(t, candidates, 1)
	assert.Equal(t, "loaded.json", candidates[0].(map[string]any)["sourceId"])

	w, _ = do(t, s, http.MethodPost, "/v1/suggest", gin.H{"path": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScenario(t *testing.T) {
	s := newTestServer(t, field.Document{ID: "users.json", Fields: field.List{{Path: "user.firstName", Type: field.TypeString}}})

	w, out := do(t, s, http.MethodPost, "/v1/scenario", gin.H{
		"command": exampleCommand,
		"name":    "Create User",
		"fields": []gin.H{
			{"path": "body.name", "source": "users.json", "target": "user.firstName"},
			{"path": "body.missing", "source": "users.json", "target": "user.x"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	sc := out["scenario"].(map[string]any)
	assert.Equal(t, "Create User", sc["name"])
	assert.Equal(t, "https://api.x.com/u", sc["url"])
	assert.Equal(t, "POST", sc["method"])

	bindings := sc["bindings"].([]any)
	require.Len(t, bindings, 1)
	assert.Equal(t, "Jo", bindings[0].(map[string]any)["value"])

	warnings := out["diagnostics"].(map[string]any)["warnings"].([]any)
	require.Len(t, warnings, 1)
	assert.Equal(t, "binding_field_missing", warnings[0].(map[string]any)["code"])
}

func TestDocuments(t *testing.T) {
	s := newTestServer(t, field.Document{ID: "a.json"}, field.Document{ID: "b.json"})

	w, out := do(t, s, http.MethodGet, "/v1/documents", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, out["documents"], 2)

	empty := New(Options{})
	w, out = do(t, empty, http.MethodGet, "/v1/documents", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, out["documents"])
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}

		_ = resp.Body.Close()

		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
