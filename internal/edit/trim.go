package edit

import (
	"csclean/internal/syntax"
	"csclean/internal/token"
)

// trimDeletionSite убирает пустую leading-тривию первого токена после
// места удаления using-директив: первый токен первого члена или EOF.
// Reports whether anything changed.
func trimDeletionSite(cu *syntax.CompilationUnit) bool {
	if len(cu.Members) == 0 {
		lead, ok := trimBlank(cu.EOF.Leading)
		if ok {
			cu.EOF.Leading = lead
		}
		return ok
	}

	first := cu.Members[0]
	if len(first.Tokens) == 0 {
		return false
	}
	lead, ok := trimBlank(first.Tokens[0].Leading)
	if !ok {
		return false
	}
	toks := make([]token.Token, len(first.Tokens))
	copy(toks, first.Tokens)
	toks[0].Leading = lead

	members := make([]*syntax.Member, len(cu.Members))
	copy(members, cu.Members)
	members[0] = &syntax.Member{Tokens: toks}
	cu.Members = members
	return true
}

// trimBlank drops whitespace, newlines and emptied trivia up to the first
// trivia with visible text.
func trimBlank(tv []token.Trivia) ([]token.Trivia, bool) {
	i := 0
	for i < len(tv) && (tv[i].Kind.IsBlank() || tv[i].Text == "") {
		i++
	}
	if i == 0 {
		return tv, false
	}
	return tv[i:], true
}
