// Package lexer splits C# source into tokens and attaches every other
// byte of the input to them as trivia, so the token stream prints back
// to the exact original text.
//
// Правило привязки: trailing-тривия токена идёт до первого перевода
// строки включительно, всё остальное становится leading-тривией
// следующего токена. Хвост файла висит на EOF.
package lexer
