package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"csclean/internal/source"
	"csclean/internal/syntax"
	"csclean/internal/token"
)

type RangeOutput struct {
	StartLine uint32 `json:"start_line" yaml:"start_line"`
	EndLine   uint32 `json:"end_line" yaml:"end_line"`
}

type ExternOutput struct {
	Name       string      `json:"name" yaml:"name"`
	Terminated bool        `json:"terminated" yaml:"terminated"`
	Lines      RangeOutput `json:"lines" yaml:"lines"`
}

type UsingOutput struct {
	Name   string      `json:"name" yaml:"name"`
	Alias  string      `json:"alias,omitempty" yaml:"alias,omitempty"`
	Global bool        `json:"global,omitempty" yaml:"global,omitempty"`
	Static bool        `json:"static,omitempty" yaml:"static,omitempty"`
	Lines  RangeOutput `json:"lines" yaml:"lines"`
}

type MemberOutput struct {
	Kind       string      `json:"kind" yaml:"kind"`
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	FileScoped bool        `json:"file_scoped,omitempty" yaml:"file_scoped,omitempty"`
	Tokens     int         `json:"tokens" yaml:"tokens"`
	Lines      RangeOutput `json:"lines" yaml:"lines"`
}

type TreeOutput struct {
	File          string         `json:"file" yaml:"file"`
	Externs       []ExternOutput `json:"externs,omitempty" yaml:"externs,omitempty"`
	Usings        []UsingOutput  `json:"usings,omitempty" yaml:"usings,omitempty"`
	Members       []MemberOutput `json:"members,omitempty" yaml:"members,omitempty"`
	EOFTrivia     []TriviaOutput `json:"eof_trivia,omitempty" yaml:"eof_trivia,omitempty"`
	UsingsRemoved bool           `json:"usings_removed,omitempty" yaml:"usings_removed,omitempty"`
}

func lineRange(fs *source.FileSet, span source.Span) RangeOutput {
	start, end := fs.Resolve(span)
	return RangeOutput{StartLine: start.Line, EndLine: end.Line}
}

// BuildTreeOutput converts a compilation unit into the serializable form.
func BuildTreeOutput(cu *syntax.CompilationUnit, fs *source.FileSet) TreeOutput {
	out := TreeOutput{
		File:          formatPath(fs.Get(cu.File), PathModeAuto, ""),
		EOFTrivia:     triviaOutputs(cu.EOF.Leading),
		UsingsRemoved: cu.UsingsRemoved,
	}
	for _, e := range cu.Externs {
		out.Externs = append(out.Externs, ExternOutput{Name: e.Name(), Terminated: e.Terminated, Lines: lineRange(fs, e.Span())})
	}
	for _, u := range cu.Usings {
		out.Usings = append(out.Usings, UsingOutput{
			Name:   u.Name(),
			Alias:  u.Alias(),
			Global: u.IsGlobal(),
			Static: u.IsStatic(),
			Lines:  lineRange(fs, u.Span()),
		})
	}
	for _, m := range cu.Members {
		out.Members = append(out.Members, MemberOutput{
			Kind:       m.Kind(),
			Name:       m.Name(),
			FileScoped: m.FileScoped(),
			Tokens:     len(m.Tokens),
			Lines:      lineRange(fs, m.Span()),
		})
	}
	return out
}

// FormatTree dispatches on the dump format.
func FormatTree(w io.Writer, cu *syntax.CompilationUnit, fs *source.FileSet, format DumpFormat) error {
	switch format {
	case DumpJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(BuildTreeOutput(cu, fs))
	case DumpYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(BuildTreeOutput(cu, fs)); err != nil {
			return err
		}
		return enc.Close()
	case DumpPretty, "":
		return FormatTreePretty(w, cu, fs)
	}
	return fmt.Errorf("unknown format %q (expected pretty|json|yaml)", format)
}

// FormatTreePretty печатает дерево в виде
//
//	CompilationUnit <path>
//	├─ Using System (1-1)
//	└─ EOF
func FormatTreePretty(w io.Writer, cu *syntax.CompilationUnit, fs *source.FileSet) error {
	var lines []string
	for _, e := range cu.Externs {
		lines = append(lines, fmt.Sprintf("Extern %s (%s)", e.Name(), formatSpan(e.Span(), fs)))
	}
	for _, u := range cu.Usings {
		lines = append(lines, "Using "+usingLabel(u)+" ("+formatSpan(u.Span(), fs)+")")
	}
	for _, m := range cu.Members {
		label := "Member " + m.Kind()
		if name := m.Name(); name != "" {
			label += " " + name
		}
		if m.FileScoped() {
			label += " [file-scoped]"
		}
		lines = append(lines, fmt.Sprintf("%s (%s)", label, formatSpan(m.Span(), fs)))
	}
	lines = append(lines, "EOF"+eofLabel(cu.EOF))

	header := "CompilationUnit " + formatPath(fs.Get(cu.File), PathModeAuto, "")
	if cu.UsingsRemoved {
		header += " [usings removed]"
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for i, line := range lines {
		prefix := "├─ "
		if i == len(lines)-1 {
			prefix = "└─ "
		}
		if _, err := fmt.Fprintln(w, prefix+line); err != nil {
			return err
		}
	}
	return nil
}

func usingLabel(u *syntax.UsingDirective) string {
	var parts []string
	if u.IsGlobal() {
		parts = append(parts, "global")
	}
	if u.IsStatic() {
		parts = append(parts, "static")
	}
	if alias := u.Alias(); alias != "" {
		parts = append(parts, alias, "=")
	}
	parts = append(parts, u.Name())
	return strings.Join(parts, " ")
}

func eofLabel(eof token.Token) string {
	if len(eof.Leading) == 0 {
		return ""
	}
	return " (trivia: " + triviaKinds(eof.Leading) + ")"
}
