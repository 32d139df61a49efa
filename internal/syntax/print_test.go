package syntax

import (
	"bytes"
	"strings"
	"testing"
)

var roundTripCorpus = []string{
	"",
	"\n\n",
	"using System;\n\nclass A {}\n",
	"// hello\nclass A {}\n",
	"/* oops\nclass A {}\n",
	"using System;\r\nusing System.IO;\r\n\r\nnamespace N\r\n{\r\n}\r\n",
	"\ufeff// bom\nusing X;\rclass A{}",
	"#if DEBUG\nusing Dbg;\n#endif\nclass A {} // tail\n/// doc\n",
	"class A { string s = $\"{x /* y */}\"; char c = '}'; }\n}}}{{{",
	"using\n",
	"global using global::System;\nextern alias",
}

func TestPrintRoundTrip(t *testing.T) {
	for _, src := range roundTripCorpus {
		cu, _ := parseString(t, src)
		if got := cu.String(); got != src {
			t.Errorf("String():\nwant %q\ngot  %q", src, got)
		}
		var buf bytes.Buffer
		if err := Print(&buf, cu); err != nil {
			t.Fatalf("Print: %v", err)
		}
		if !bytes.Equal(buf.Bytes(), []byte(src)) || !bytes.Equal(cu.Bytes(), []byte(src)) {
			t.Errorf("Print/Bytes mismatch for %q", src)
		}
	}
}

func TestTokensEndWithEOF(t *testing.T) {
	cu, _ := parseString(t, "using A;\nclass B {}\n// end\n")
	var texts []string
	for tok := range cu.Tokens() {
		texts = append(texts, tok.Text)
	}
	if got := strings.Join(texts, "|"); got != "using|A|;|class|B|{|}|" {
		t.Errorf("tokens = %q", got)
	}
	if got := FullText(cu.Members[0].Tokens); got != "class B {}\n" {
		t.Errorf("member full text = %q", got)
	}
	if got := cu.EOF.FullText(); got != "// end\n" {
		t.Errorf("EOF full text = %q", got)
	}
}
