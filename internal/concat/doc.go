// Package concat gathers source files and joins them into one text,
// optionally cleaning C# files on the way.
package concat
