package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/pagekit/maintenance"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_Render(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "page.html", "Hi {{user.name}}{{#if admin}} (admin){{/if}}")

	tests := []struct {
		name string
		data string
		want string
	}{
		{"yaml", "user:\n  name: Ada\nadmin: true\n", "Hi Ada (admin)"},
		{"json", `{"user":{"name":"Bob"},"admin":false}`, "Hi Bob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := writeFile(t, dir, "data."+tt.name, tt.data)
			var stdout, stderr bytes.Buffer
			code := run([]string{"render", "-template", tmpl, "-data", data}, &stdout, &stderr)
			require.Equal(t, 0, code, stderr.String())
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

func TestRun_RenderStrictMissingVariable(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "page.html", "{{greeting}} {{name}}")
	data := writeFile(t, dir, "data.yaml", "greeting: hello\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"render", "-strict", "-template", tmpl, "-data", data}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "name")
	assert.Empty(t, stdout.String())
}

func TestRun_RenderUnsupportedData(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeFile(t, dir, "page.html", "{{x}}")
	data := writeFile(t, dir, "data.ini", "x=1")

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"render", "-template", tmpl, "-data", data}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unsupported data file")
}

func TestRun_Vars(t *testing.T) {
	tmpl := writeFile(t, t.TempDir(), "page.html", "{{#if show}}{{title}}{{/if}} {{title}}")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"vars", "-template", tmpl}, &stdout, &stderr))
	assert.Equal(t, "show\ntitle\n", stdout.String())
}

func TestRun_Schema(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"schema"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), `"allowed_paths"`)
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage: pagekit")

	stderr.Reset()
	assert.Equal(t, 2, run([]string{"bogus"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `unknown command "bogus"`)
}

func TestRun_ServeWatchNeedsConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"serve", "-watch"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "-watch requires -config")
}

func TestLoadServeOptions_EnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "maintenance.yaml", "title: From file\n")
	t.Setenv(maintenance.EnvTitle, "From env")

	opts, err := loadServeOptions(path)
	require.NoError(t, err)
	assert.Equal(t, "From env", opts.Title)
}

func TestNewRouter_GatesSite(t *testing.T) {
	opts := maintenance.DefaultOptions()
	opts.Template = "<p>{{title}}</p>"
	opts.Title = "Down"
	gate := maintenance.NewGate(opts, maintenance.NewRenderer(nil), nil)
	router := newRouter(gate, "")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))
	assert.Equal(t, "<p>Down</p>", rec.Body.String())

	opts.Enabled = false
	gate.SetOptions(opts)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))
	assert.Equal(t, "site is up: /anything\n", rec.Body.String())
}
