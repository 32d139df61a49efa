package diagfmt

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"csclean/internal/diag"
	"csclean/internal/lexer"
	"csclean/internal/source"
)

func lexWithBag(fs *source.FileSet, id source.FileID) *diag.Bag {
	bag := diag.NewBag(16)
	lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return bag
}

func TestPrettyUnderlinesSpan(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<stdin>", []byte("class A {\n\tvar s = \"abc\n}\n"))
	bag := lexWithBag(fs, id)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	got := buf.String()

	want := "<stdin>:2:10: WARNING LEX1002: unterminated string literal\n" +
		" 2 |     var s = \"abc\n" +
		"   |             ^~~~\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.cs", []byte("/* open"))
	bag := lexWithBag(fs, id)

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output contains escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escapes: %q", colored.String())
	}
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	base := filepath.Join(t.TempDir(), "project")
	path := filepath.Join(base, "src", "test.cs")
	id := fs.Add(path, []byte("var s = \"unterminated\n"), 0)
	bag := lexWithBag(fs, id)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, filepath.ToSlash(path) + ":1:9:"},
		{"relative", PathModeRelative, "\nsrc/test.cs:1:9:"},
		{"basename", PathModeBasename, "\ntest.cs:1:9:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode, BaseDir: base})
			if !strings.Contains("\n"+buf.String(), tt.contains) {
				t.Errorf("expected %q in:\n%s", tt.contains, buf.String())
			}
		})
	}
}

func TestPrettyReportsDropped(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.cs", []byte("` ` `"))
	bag := diag.NewBag(1)
	lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.Contains(buf.String(), "... 2 more diagnostics not shown") {
		t.Errorf("missing dropped line:\n%s", buf.String())
	}
}
