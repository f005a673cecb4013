package curl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMarkdown = "# Create user\n\n" +
	"API Name: Create User\n" +
	"API URL: https://api.example.com/users\n\n" +
	"```bash\n" +
	"curl -X POST 'https://api.example.com/users' \\\n" +
	"  -H 'Content-Type: application/json' \\\n" +
	"  -d '{\"name\":\"Jo\"}'\n" +
	"```\n\n" +
	"```sh\ncurl https://api.example.com/health\n```\n"

func TestFromMarkdown(t *testing.T) {
	s, ok := FromMarkdown(sampleMarkdown)
	require.True(t, ok)

	assert.Equal(t, "Create User", s.APIName)
	assert.Equal(t, "https://api.example.com/users", s.APIURL)
	assert.True(t, strings.HasPrefix(s.Command, "curl -X POST"))
	assert.NotContains(t, s.Command, "health")

	req, err := Parse(s.Command)
	require.NoError(t, err)
	assert.Equal(t, "POST", req.Method)
	assert.True(t, req.BodyDecoded)
}

func TestFromMarkdown_CompactLabels(t *testing.T) {
	s, ok := FromMarkdown("apiname: Orders\napiUrl:https://x.com/o\n")
	assert.False(t, ok)
	assert.Equal(t, "Orders", s.APIName)
	assert.Equal(t, "https://x.com/o", s.APIURL)
	assert.Empty(t, s.Command)
}

func TestFindInText(t *testing.T) {
	got := FindInText(sampleMarkdown)
	require.Len(t, got, 2)
	assert.Equal(t, "curl https://api.example.com/health", got[1].Command)

	got = FindInText("  curl https://e.com -s\n")
	require.Len(t, got, 1)
	assert.Equal(t, "curl https://e.com -s", got[0].Command)

	assert.Empty(t, FindInText("curling is a sport"))
	assert.Empty(t, FindInText("no commands here"))
}

func TestFindInHTML(t *testing.T) {
	html := `<html><body>
<p>Use <code>curl https://inline.example.com</code> to check.</p>
<pre><code>curl -X DELETE https://api.example.com/users/1</code></pre>
<pre>echo not a curl</pre>
<code>ls -la</code>
</body></html>`

	got, err := FindInHTML(strings.NewReader(html))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "curl https://inline.example.com", got[0].Command)
	assert.Equal(t, "curl -X DELETE https://api.example.com/users/1", got[1].Command)
}
