package main

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
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestFilterScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   string
		args []string
		want string
	}{
		{"remove usings", "using System;\n\nclass A {}\n", []string{"--remove-usings"}, "class A {}\n"},
		{"remove comments", "// hello\nclass A {}\n", []string{"--remove-comments"}, "\nclass A {}\n"},
		{"both", "using System;\n// c\nclass A {}\n", []string{"--remove-comments", "--remove-usings"}, "class A {}\n"},
		{"no flags", "class A {}\n", nil, "class A {}\n"},
		{"unterminated comment", "/* oops\nclass A {}\n", []string{"--remove-comments"}, ""},
		{"unknown flag ignored", "using A;\nclass B {}\n", []string{"--frobnicate", "--remove-usings"}, "class B {}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, tt.in, tt.args...)
			require.Equal(t, 0, res.code, res.stderr)
			assert.Equal(t, tt.want, res.stdout)
			assert.Empty(t, res.stderr)
		})
	}
}

func TestFilterRejectsTooLargeInput(t *testing.T) {
	res := runCLI(t, "class A {}\n", "--max-size", "4B")
	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "csclean:")
}

func TestFilterInvalidMaxSize(t *testing.T) {
	res := runCLI(t, "", "--max-size", "lots")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, `invalid --max-size "lots"`)
}

func TestFilterDiagnostics(t *testing.T) {
	res := runCLI(t, "/* oops\nclass A {}\n", "--diagnostics", "--color", "off")
	require.Equal(t, 0, res.code)
	assert.Equal(t, "/* oops\nclass A {}\n", res.stdout)
	assert.Contains(t, res.stderr, "LEX1003")

	res = runCLI(t, "/* oops\n", "--diagnostics=json")
	require.Equal(t, 0, res.code)
	var payload struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Code string `json:"code"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stderr), &payload))
	require.Equal(t, 1, payload.Count)
	assert.Equal(t, "LEX1003", payload.Diagnostics[0].Code)
}

func TestFilterTimings(t *testing.T) {
	res := runCLI(t, "class A {}\n", "--timings")
	require.Equal(t, 0, res.code)
	for _, phase := range []string{"lex", "build", "print"} {
		assert.Contains(t, res.stderr, phase)
	}
}

func TestTraceToStderr(t *testing.T) {
	res := runCLI(t, "using A;\n", "--remove-usings", "--trace", "-")
	require.Equal(t, 0, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "filter")
}

func TestTokenizeFormats(t *testing.T) {
	res := runCLI(t, "int x; // c\n", "tokenize")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "(trailing:")

	res = runCLI(t, "int x;\n", "tokenize", "--format", "json")
	require.Equal(t, 0, res.code, res.stderr)
	var toks []map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &toks))
	assert.Len(t, toks, 4)

	res = runCLI(t, "int x;\n", "tokenize", "--format", "yaml")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "kind:")
}

func TestTokenizeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.cs")
	require.NoError(t, os.WriteFile(path, []byte("class A {}\n"), 0o600))
	res := runCLI(t, "", "tokenize", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "class")

	res = runCLI(t, "", "tokenize", filepath.Join(t.TempDir(), "missing.cs"))
	assert.Equal(t, 1, res.code)
}

func TestTree(t *testing.T) {
	res := runCLI(t, "using A;\nclass B {}\n", "tree", "--remove-usings")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "[usings removed]")

	res = runCLI(t, "using A;\nclass B {}\n", "tree", "--format", "bogus")
	assert.Equal(t, 1, res.code)
}

func TestVersionJSON(t *testing.T) {
	res := runCLI(t, "", "version", "--format", "json", "--full")
	require.Equal(t, 0, res.code, res.stderr)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &payload))
	assert.Equal(t, "csclean", payload.Tool)
	assert.NotEmpty(t, payload.Version)
	assert.NotEmpty(t, payload.GitCommit)

	res = runCLI(t, "", "version", "--format", "xml")
	assert.Equal(t, 1, res.code)
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestConcatDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.cs":     "using A;\n// c\nclass A {}\n",
		"b.txt":    "not C#\n",
		"bin/x.cs": "class X {}\n",
		"z.cs":     "class Z {}",
	})
	res := runCLI(t, "", "concat", dir, "--remove-usings", "--remove-comments",
		"--no-cache", "--progress", "off", "--config", writeConfig(t, ""))
	require.Equal(t, 0, res.code, res.stderr)

	want := "\n============ " + filepath.Join(dir, "a.cs") + " ============\nclass A {}\n" +
		"\n============ " + filepath.Join(dir, "z.cs") + " ============\nclass Z {}\n"
	assert.Equal(t, want, res.stdout)
	assert.Contains(t, res.stderr, "2 files written to stdout")
}

func TestConcatClearCache(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	stale := filepath.Join(cacheHome, "csclean", "stale.mp")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o600))

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.cs": "class A {}\n"})
	res := runCLI(t, "", "concat", dir, "--clear-cache", "--headers=false",
		"--progress", "off", "--config", writeConfig(t, ""))
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "class A {}\n", res.stdout)
	assert.NoFileExists(t, stale)
	assert.DirExists(t, filepath.Join(cacheHome, "csclean"))
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "csclean.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestConcatProfileAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.cs":  "// c\nclass A {}\n",
		"b.txt": "text\n",
	})
	out := filepath.Join(t.TempDir(), "out.txt")
	cfg := writeConfig(t, `
default_profile = "plain"

[profiles.plain]
headers = false
ext = ["cs", ".txt"]
remove_comments = true
no_cache = true
progress = "off"
output = "`+filepath.ToSlash(out)+`"
`)

	res := runCLI(t, "", "concat", dir, "--config", cfg, "--quiet")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stdout)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "\nclass A {}\ntext\n", string(got))

	// флаги важнее профиля
	res = runCLI(t, "", "concat", dir, "--config", cfg, "--quiet", "--ext", ".cs", "--remove-comments=false", "-o", "-")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "// c\nclass A {}\n", res.stdout)
}

func TestConcatErrors(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "x\n"})
	cfg := writeConfig(t, "[profiles.p]\nheaders = true\n")

	res := runCLI(t, "", "concat", dir, "--config", cfg, "--progress", "off")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "no matching files")

	res = runCLI(t, "", "concat", dir, "--config", cfg, "--profile", "missing")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "known: p")

	res = runCLI(t, "", "concat", dir, "--config", cfg, "--progress", "sometimes")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid --progress")

	bad := writeConfig(t, "[profiles.p]\nheaderz = true\n")
	res = runCLI(t, "", "concat", dir, "--config", bad)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "unknown keys")
}

func TestReadUIMode(t *testing.T) {
	mode, err := readUIMode(" ON ")
	require.NoError(t, err)
	assert.Equal(t, uiModeOn, mode)
	assert.True(t, shouldUseTUI(uiModeOn, &bytes.Buffer{}))
	assert.False(t, shouldUseTUI(uiModeAuto, &bytes.Buffer{}))
	assert.False(t, shouldUseTUI(uiModeOff, os.Stderr))
}
