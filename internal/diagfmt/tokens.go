package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"csclean/internal/source"
	"csclean/internal/token"
)

type TriviaOutput struct {
	Kind  string         `json:"kind" yaml:"kind"`
	Text  string         `json:"text" yaml:"text"`
	Parts []TriviaOutput `json:"parts,omitempty" yaml:"parts,omitempty"`
}

type TokenOutput struct {
	Kind     string         `json:"kind" yaml:"kind"`
	Text     string         `json:"text,omitempty" yaml:"text,omitempty"`
	Start    uint32         `json:"start" yaml:"start"`
	End      uint32         `json:"end" yaml:"end"`
	Line     uint32         `json:"line" yaml:"line"`
	Col      uint32         `json:"col" yaml:"col"`
	Leading  []TriviaOutput `json:"leading,omitempty" yaml:"leading,omitempty"`
	Trailing []TriviaOutput `json:"trailing,omitempty" yaml:"trailing,omitempty"`
}

func triviaOutputs(list []token.Trivia) []TriviaOutput {
	if len(list) == 0 {
		return nil // убираем пустые массивы из вывода
	}
	out := make([]TriviaOutput, len(list))
	for i, tv := range list {
		out[i] = TriviaOutput{Kind: tv.Kind.String(), Text: tv.Text, Parts: triviaOutputs(tv.Parts)}
	}
	return out
}

// BuildTokensOutput converts tokens into the serializable form.
func BuildTokensOutput(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		pos, _ := fs.Resolve(tok.Span)
		out = append(out, TokenOutput{
			Kind:     tok.Kind.String(),
			Text:     tok.Text,
			Start:    tok.Span.Start,
			End:      tok.Span.End,
			Line:     pos.Line,
			Col:      pos.Col,
			Leading:  triviaOutputs(tok.Leading),
			Trailing: triviaOutputs(tok.Trailing),
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokens dispatches on the dump format.
func FormatTokens(w io.Writer, tokens []token.Token, fs *source.FileSet, format DumpFormat) error {
	switch format {
	case DumpJSON:
		return FormatTokensJSON(w, tokens, fs)
	case DumpYAML:
		return FormatTokensYAML(w, tokens, fs)
	case DumpPretty, "":
		return FormatTokensPretty(w, tokens, fs)
	}
	return fmt.Errorf("unknown format %q (expected pretty|json|yaml)", format)
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-22s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)

		if len(tok.Leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", triviaKinds(tok.Leading))
		}
		if len(tok.Trailing) > 0 {
			fmt.Fprintf(w, " (trailing: %s)", triviaKinds(tok.Trailing))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

func triviaKinds(list []token.Trivia) string {
	kinds := make([]string, len(list))
	for i, tv := range list {
		kinds[i] = tv.Kind.String()
	}
	return strings.Join(kinds, ", ")
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens, fs))
}

// FormatTokensYAML выводит токены в YAML формате
func FormatTokensYAML(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildTokensOutput(tokens, fs)); err != nil {
		return err
	}
	return enc.Close()
}
