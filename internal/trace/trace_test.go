package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestNewOffReturnsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatalf("expected disabled tracer")
	}
	// не должно паниковать
	Begin(tr, ScopePass, "lex", nil).WithExtra("k", "v").End("")
}

func TestStreamTracerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Format: FormatText, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithTracer(context.Background(), tr)

	ctx, run := StartSpan(ctx, ScopeDriver, "filter")
	_, lex := StartSpan(ctx, ScopePass, "lex")
	lex.WithExtra("tokens", "3").End("")
	_, file := StartSpan(ctx, ScopeFile, "file:a.cs")
	file.End("")
	run.End("ok")

	out := buf.String()
	for _, want := range []string{"→ filter", "→ lex", "← lex {tokens=3}", "← filter (ok)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in trace:\n%s", want, out)
		}
	}
	if strings.Contains(out, "file:a.cs") {
		t.Errorf("file scope must be filtered at phase level:\n%s", out)
	}
}

func TestNDJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	sp := Begin(tr, ScopePass, "print", nil)
	sp.End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 events, got %d", len(lines))
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev["kind"] != "end" || ev["name"] != "print" || ev["detail"] != "done" || ev["scope"] != "pass" {
		t.Errorf("unexpected event %v", ev)
	}
}

func TestErrorWrittenAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatText)
	Begin(tr, ScopeDriver, "filter", nil).End("")
	Error(tr, "read", errors.New("boom"))
	if out := buf.String(); strings.Contains(out, "filter") || !strings.Contains(out, "read {error=boom}") {
		t.Errorf("unexpected trace output:\n%s", out)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("expected error for unknown level")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat(ndjson) = %v, %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Errorf("expected error for unknown format")
	}
}

func TestAutoFormatFromExtension(t *testing.T) {
	path := t.TempDir() + "/run.ndjson"
	tr, err := New(Config{Level: LevelPhase, OutputPath: path})
	if err != nil {
		t.Fatal(err)
	}
	st, ok := tr.(*StreamTracer)
	if !ok || st.format != FormatNDJSON {
		t.Errorf("expected ndjson stream tracer, got %#v", tr)
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNestedSpansIndentByDepth(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	ctx := WithTracer(context.Background(), tr)

	ctx, run := StartSpan(ctx, ScopeDriver, "concat")
	_, node := StartSpan(ctx, ScopeNode, "strip")
	if node.ID() != 0 {
		t.Fatalf("node scope must be filtered at detail level")
	}
	Point(tr, ScopeFile, "done", "A.cs", CurrentSpan(ctx))
	run.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 events, got:\n%s", buf.String())
	}
	if !strings.Contains(lines[0], "] → concat") || !strings.Contains(lines[1], "]   • done (A.cs)") {
		t.Errorf("unexpected indentation:\n%s", buf.String())
	}
}

func TestFileOutputIsFlushedOnClose(t *testing.T) {
	path := t.TempDir() + "/run.trace"
	tr, err := New(Config{Level: LevelPhase, OutputPath: path})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "filter", nil).End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "← filter") {
		t.Errorf("trace file misses events:\n%s", data)
	}
}

func TestStderrTargetStaysOpen(t *testing.T) {
	var stderr bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, OutputPath: "-", Stderr: &stderr})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePass, "lex", nil).End("3 tokens")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr.String(), "← lex (3 tokens)") {
		t.Errorf("unexpected stderr:\n%s", stderr.String())
	}
}
