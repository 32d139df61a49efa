package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"csclean/internal/edit"
	"csclean/internal/source"
	"csclean/internal/syntax"
)

func parseUnit(src string) (*source.FileSet, *syntax.CompilationUnit) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<stdin>", []byte(src))
	return fs, syntax.Parse(fs.Get(id), syntax.Options{})
}

func TestFormatTreePretty(t *testing.T) {
	fs, cu := parseUnit("extern alias L;\nusing static System.Math;\nusing D = System.IO;\nnamespace App;\nclass A {}\n// end\n")
	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, cu, fs); err != nil {
		t.Fatal(err)
	}
	want := `CompilationUnit <stdin>
├─ Extern L (1:1-1:16)
├─ Using static System.Math (2:1-2:26)
├─ Using D = System.IO (3:1-3:21)
├─ Member namespace App [file-scoped] (4:1-4:15)
├─ Member class A (5:1-5:11)
└─ EOF (trivia: LineComment, Newline)
`
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatTreeJSONAfterEdit(t *testing.T) {
	fs, cu := parseUnit("using A;\nusing B;\n\nclass C\n{\n}\n")
	cu = edit.RemoveUsings(cu)

	var buf bytes.Buffer
	if err := FormatTree(&buf, cu, fs, DumpJSON); err != nil {
		t.Fatal(err)
	}
	var out TreeOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if !out.UsingsRemoved || len(out.Usings) != 0 {
		t.Errorf("usings should be gone: %+v", out)
	}
	if len(out.Members) != 1 || out.Members[0].Kind != "class" || out.Members[0].Name != "C" {
		t.Fatalf("unexpected members %+v", out.Members)
	}
	if out.Members[0].Lines != (RangeOutput{StartLine: 4, EndLine: 6}) {
		t.Errorf("member lines = %+v", out.Members[0].Lines)
	}
}
