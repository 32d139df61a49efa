// Package syntax builds the concrete syntax tree of a C# compilation unit:
// extern aliases, file-level using directives and opaque top-level members.
// The tree keeps every byte of the input; Print reproduces it exactly.
package syntax
