// Package token defines lexical token kinds and trivia for C# source.
// Invariants:
//   - Token.Text is the exact source slice of the token (Span matches it).
//   - Every byte of the input belongs either to a token's Text or to one of its
//     Leading/Trailing trivia; concatenating them in order reproduces the input.
//   - Trailing trivia never crosses a line break: it ends with (and includes)
//     the first end-of-line after the token.
//   - Documentation comments and preprocessor directives only occur in
//     Leading trivia.
//   - The EOF token has empty Text; its Leading holds the trivia at end of file.
//   - Contextual keywords (global, var, alias, record, ...) are identifiers.
package token
