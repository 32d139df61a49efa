// Package edit implements the two tree transformations: removing file-level
// using directives and stripping comments. Both are pure: they return a new
// CompilationUnit and share every node they did not touch.
package edit

import (
	"csclean/internal/syntax"
	"csclean/internal/token"
)

// Options selects the passes Apply runs.
type Options struct {
	RemoveUsings  bool
	StripComments bool
}

// Any reports whether at least one pass is requested.
func (o Options) Any() bool { return o.RemoveUsings || o.StripComments }

// Apply runs the requested passes. The passes commute, so the order here
// does not affect the result.
func Apply(cu *syntax.CompilationUnit, opts Options) *syntax.CompilationUnit {
	if opts.RemoveUsings {
		cu = RemoveUsings(cu)
	}
	if opts.StripComments {
		cu = StripComments(cu)
	}
	return cu
}

// RemoveUsings drops every using directive together with all of its trivia.
// The first token after the deletion site loses its leading blank trivia,
// so no empty line is left where the directives were. Without directives
// the unit is returned unchanged.
func RemoveUsings(cu *syntax.CompilationUnit) *syntax.CompilationUnit {
	if len(cu.Usings) == 0 {
		return cu
	}
	out := *cu
	out.Usings = nil
	out.UsingsRemoved = true
	trimDeletionSite(&out)
	return &out
}

// StripComments empties every comment trivia in the unit; whitespace and
// line breaks around it stay.
func StripComments(cu *syntax.CompilationUnit) *syntax.CompilationUnit {
	out := *cu
	var c1, c2, c3, c4 bool
	out.Externs, c1 = mapNodes(cu.Externs, func(e *syntax.ExternAlias) (*syntax.ExternAlias, bool) {
		toks, ok := stripTokens(e.Tokens)
		if !ok {
			return e, false
		}
		n := *e
		n.Tokens = toks
		return &n, true
	})
	out.Usings, c2 = mapNodes(cu.Usings, func(u *syntax.UsingDirective) (*syntax.UsingDirective, bool) {
		toks, ok := stripTokens(u.Tokens)
		if !ok {
			return u, false
		}
		n := *u
		n.Tokens = toks
		return &n, true
	})
	out.Members, c3 = mapNodes(cu.Members, func(m *syntax.Member) (*syntax.Member, bool) {
		toks, ok := stripTokens(m.Tokens)
		if !ok {
			return m, false
		}
		return &syntax.Member{Tokens: toks}, true
	})
	out.EOF, c4 = stripToken(cu.EOF)

	changed := c1 || c2 || c3 || c4
	if out.UsingsRemoved && trimDeletionSite(&out) {
		changed = true
	}
	if !changed {
		return cu
	}
	return &out
}

// mapNodes — copy-on-write map: срез копируется только при первом изменении.
func mapNodes[T any](in []T, f func(T) (T, bool)) ([]T, bool) {
	var out []T
	for i, n := range in {
		m, changed := f(n)
		if !changed {
			if out != nil {
				out = append(out, n)
			}
			continue
		}
		if out == nil {
			out = make([]T, i, len(in))
			copy(out, in[:i])
		}
		out = append(out, m)
	}
	if out == nil {
		return in, false
	}
	return out, true
}

func stripTokens(toks []token.Token) ([]token.Token, bool) {
	return mapNodes(toks, stripToken)
}

func stripToken(t token.Token) (token.Token, bool) {
	lead, lc := mapNodes(t.Leading, stripTrivia)
	trail, tc := mapNodes(t.Trailing, stripTrivia)
	if !lc && !tc {
		return t, false
	}
	t.Leading, t.Trailing = lead, trail
	return t, true
}

func stripTrivia(tv token.Trivia) (token.Trivia, bool) {
	if tv.Kind.IsComment() && tv.Text != "" {
		return tv.Stripped(), true
	}
	return tv, false
}
