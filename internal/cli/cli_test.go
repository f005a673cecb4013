package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curl-mapper/internal/curl"
	"curl-mapper/internal/field"
	"curl-mapper/internal/match"
	"curl-mapper/internal/scenario"
)

const createUser = `curl -X POST 'https://api.x.com/u' -H 'Content-Type: application/json' -d '{"name":"Jo","age":30}'`

const usersDoc = `{"user":{"name":"Ann","email":"a@b.co"}}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--color", "never"))

	err := root.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestVersionCmdOutput(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "curl-mapper "+Version, strings.TrimSpace(out))
}

func TestExecute(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, Execute(context.Background(), []string{"version"}, &out, &errOut))
	assert.Contains(t, out.String(), Version)

	err := Execute(context.Background(), []string{"nope"}, &out, &errOut)
	require.Error(t, err)
}

func TestRootCmdHasSubcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"parse", "fields", "flatten", "suggest", "scenario", "discover", "serve", "version"} {
		_, _, err := root.Find([]string{name})
		assert.NoError(t, err, name)
	}
}

func TestParseCmd(t *testing.T) {
	path := writeFile(t, t.TempDir(), "create.sh", createUser+"\n")

	out, err := run(t, "", "parse", path)
	require.NoError(t, err)

	var req curl.Request
	require.NoError(t, json.Unmarshal([]byte(out), &req))
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, "https://api.x.com/u", req.URL)
	assert.True(t, req.BodyDecoded)
}

func TestParseCmd_Stdin(t *testing.T) {
	out, err := run(t, "curl https://e.com/ping", "parse", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"url": "https://e.com/ping"`)
}

func TestParseCmd_Dump(t *testing.T) {
	out, err := run(t, createUser, "parse", "--dump", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `Method: (string) (len=4) "POST"`)
}

func TestParseCmd_Markdown(t *testing.T) {
	md := "API Name: Ping\n\n```bash\ncurl -X HEAD https://e.com/ping\n```\n"
	path := writeFile(t, t.TempDir(), "ping.md", md)

	out, err := run(t, "", "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"method": "HEAD"`)

	empty := writeFile(t, t.TempDir(), "empty.md", "# nothing\n")
	_, err = run(t, "", "parse", empty)
	require.ErrorIs(t, err, errNoCommand)
}

func TestParseCmd_NoURL(t *testing.T) {
	_, err := run(t, "curl -X POST -d '{}'", "parse", "-")
	require.ErrorIs(t, err, curl.ErrNoURL)
}

func TestFieldsCmd(t *testing.T) {
	out, err := run(t, createUser, "fields", "--json", "-")
	require.NoError(t, err)

	var fields field.List
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	assert.Equal(t, []string{"header.Content-Type", "body.name", "body.age"}, fields.Paths())

	out, err = run(t, createUser, "fields", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "body.name")
	assert.Contains(t, out, "PATH")
}

func TestFieldsCmd_AutoBind(t *testing.T) {
	dir := t.TempDir()
	docs := writeFile(t, dir, "users.json", usersDoc)

	out, err := run(t, createUser, "fields", "--json", "--auto", "--docs", docs, "-")
	require.NoError(t, err)

	var fields field.List
	require.NoError(t, json.Unmarshal([]byte(out), &fields))

	name, ok := fields.Find("body.name")
	require.True(t, ok)
	assert.True(t, name.Editable)
	assert.Equal(t, &field.Mapping{SourceID: "users.json", TargetPath: "user.name"}, name.Mapping)

	age, _ := fields.Find("body.age")
	assert.Nil(t, age.Mapping)

	header, _ := fields.Find("header.Content-Type")
	assert.False(t, header.Editable)
}

func TestFieldsCmd_Scenario(t *testing.T) {
	dir := t.TempDir()
	docs := writeFile(t, dir, "users.json", usersDoc)
	sc := writeFile(t, dir, "s.yaml", `version: "1"
name: Create User
url: https://api.x.com/u
bindings:
  - field: body.name
    source: users.json
    target: user.name
`)

	out, err := run(t, createUser, "fields", "--json", "--docs", docs, "--scenario", sc, "-")
	require.NoError(t, err)

	var fields field.List
	require.NoError(t, json.Unmarshal([]byte(out), &fields))
	assert.Equal(t, []string{"body.name"}, fields.Mapped().Paths())
}

func TestFlattenCmd(t *testing.T) {
	path := writeFile(t, t.TempDir(), "users.yaml", "user:\n  firstName: Ann\n  tags: [a, b]\n")

	out, err := run(t, "", "flatten", "--json", path)
	require.NoError(t, err)

	var doc field.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "users.yaml", doc.ID)
	assert.Equal(t, []string{"user.firstName", "user.tags"}, doc.Fields.Paths())

	out, err = run(t, "", "flatten", path)
	require.NoError(t, err)
	assert.Contains(t, out, "user.firstName")
	assert.Contains(t, out, "Ann")
}

func TestFlattenCmd_Errors(t *testing.T) {
	bad := writeFile(t, t.TempDir(), "bad.json", "{")

	_, err := run(t, "", "flatten", bad)
	require.ErrorIs(t, err, errDocumentInvalid)

	_, err = run(t, "{}", "flatten", "--format", "toml", "-")
	require.Error(t, err)
}

func TestSuggestCmd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users.json", usersDoc)
	writeFile(t, dir, "orders.yaml", "order:\n  id: 7\n")

	out, err := run(t, createUser, "suggest", "--json", "--field", "body.name", "--docs", dir, "--limit", "2", "-")
	require.NoError(t, err)

	var candidates match.CandidateList
	require.NoError(t, json.Unmarshal([]byte(out), &candidates))
	require.Len(t, candidates, 2)
	assert.Equal(t, "users.json", candidates[0].SourceID)
	assert.Equal(t, "user.name", candidates[0].Path)

	out, err = run(t, createUser, "suggest", "-f", "body.name", "--docs", dir, "-")
	require.NoError(t, err)
	assert.Contains(t, out, "suggestions for body.name")
	assert.Contains(t, out, "user.name")
}

func TestSuggestCmd_UnknownField(t *testing.T) {
	docs := writeFile(t, t.TempDir(), "users.json", usersDoc)

	_, err := run(t, createUser, "suggest", "--field", "body.nope", "--docs", docs, "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "body.nope")

	_, err = run(t, createUser, "suggest", "--docs", docs, "-")
	require.Error(t, err)
}

func TestScenarioCmd(t *testing.T) {
	dir := t.TempDir()
	docs := writeFile(t, dir, "users.json", usersDoc)
	md := writeFile(t, dir, "create.md", "API Name: Create User\nAPI URL: https://docs.x.com/u\n\n```bash\n"+createUser+"\n```\n")
	outPath := filepath.Join(dir, "create.yaml")

	out, err := run(t, "", "scenario", md, "--docs", docs, "--map", "body.name=users.json:user.name", "-o", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+outPath)

	s, err := scenario.LoadFile(outPath)
	require.NoError(t, err)

	assert.Equal(t, "Create User", s.Name)
	assert.Equal(t, "https://docs.x.com/u", s.URL)
	assert.Equal(t, "POST", s.Method)
	assert.Equal(t, []string{"users.json"}, s.Sources)
	require.Len(t, s.Bindings, 1)
	assert.Equal(t, scenario.Binding{
		Field:  "body.name",
		Type:   scenario.BindingDynamic,
		Source: "users.json",
		Target: "user.name",
		Value:  "Jo",
	}, s.Bindings[0])
}

func TestScenarioCmd_Stdout(t *testing.T) {
	out, err := run(t, createUser, "scenario", "-")
	require.NoError(t, err)

	s, err := scenario.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, scenario.DefaultName, s.Name)
	assert.Equal(t, "https://api.x.com/u", s.URL)
	assert.Empty(t, s.Bindings)
}

func TestScenarioCmd_Strict(t *testing.T) {
	docs := writeFile(t, t.TempDir(), "users.json", usersDoc)

	_, err := run(t, createUser, "scenario", "--strict", "--docs", docs, "--map", "body.name=users.json:user.gone", "-")
	require.ErrorIs(t, err, errUnresolved)

	_, err = run(t, createUser, "scenario", "--map", "body.name", "-")
	require.ErrorIs(t, err, errBadMapping)
}

func TestParseMapping(t *testing.T) {
	tests := []struct {
		in      string
		want    scenario.Binding
		wantErr bool
	}{
		{
			in:   "body.user.name=users.json:user.firstName",
			want: scenario.Binding{Field: "body.user.name", Type: scenario.BindingDynamic, Source: "users.json", Target: "user.firstName"},
		},
		{
			in:   " body.a = d.yaml : x.y ",
			want: scenario.Binding{Field: "body.a", Type: scenario.BindingDynamic, Source: "d.yaml", Target: "x.y"},
		},
		{in: "body.a", wantErr: true},
		{in: "body.a=doc", wantErr: true},
		{in: "=doc:x", wantErr: true},
		{in: "body.a=:x", wantErr: true},
		{in: "body.a=doc:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseMapping(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, errBadMapping)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscoverCmd(t *testing.T) {
	dir := t.TempDir()
	html := writeFile(t, dir, "api.html", `<pre><code>curl https://e.com/a</code></pre><p>text</p><code>curl -X POST https://e.com/b</code>`)

	out, err := run(t, "", "discover", "--json", html)
	require.NoError(t, err)

	var snippets []curl.Snippet
	require.NoError(t, json.Unmarshal([]byte(out), &snippets))
	require.Len(t, snippets, 2)
	assert.Equal(t, "curl -X POST https://e.com/b", snippets[1].Command)

	md := writeFile(t, dir, "api.md", "API Name: A\n```sh\ncurl https://e.com/a\n```\n```sh\ncurl https://e.com/b\n```\n")

	out, err = run(t, "", "discover", "--json", md)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &snippets))
	require.Len(t, snippets, 2)
	assert.Equal(t, "A", snippets[0].APIName)
	assert.Empty(t, snippets[1].APIName)

	out, err = run(t, "nothing here", "discover", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "no curl commands found")
}

func TestRootOptions_InvalidColor(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"fields", "--color", "purple", "-"})
	root.SetIn(strings.NewReader(createUser))

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--color")
}
