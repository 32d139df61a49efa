// Package diag defines the diagnostic model shared by the lexer and the
// syntax builder.
//
// Malformed C# is never fatal: an unterminated comment or string still lexes
// into a token or trivia, and the pipeline keeps going. Such findings are
// recorded as Diagnostics so the CLI can show them on request (--diagnostics)
// without changing the produced text.
//
// Producers emit through a Reporter; BagReporter collects into a Bag, which
// caps the number of stored items and supports sorting and deduplication.
// Rendering lives in internal/diagfmt.
package diag
