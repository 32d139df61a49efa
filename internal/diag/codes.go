package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedChar         Code = 1004
	LexTokenTooLong             Code = 1005
	LexBadNumber                Code = 1006

	// Структура компиляционной единицы
	SynInfo                  Code = 2000
	SynUnterminatedUsing     Code = 2001
	SynUnterminatedExtern    Code = 2002
	SynUnbalancedBraces      Code = 2003
	SynUsingAfterDeclaration Code = 2004

	// Ввод-вывод
	IOInfo          Code = 4000
	IOInputTooLarge Code = 4001
	IOReadFailed    Code = 4002
	IOWriteFailed   Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexUnterminatedChar:         "Unterminated character literal",
	LexTokenTooLong:             "Token too long",
	LexBadNumber:                "Bad number",
	SynInfo:                     "Syntax information",
	SynUnterminatedUsing:        "Using directive without semicolon",
	SynUnterminatedExtern:       "Extern alias without semicolon",
	SynUnbalancedBraces:         "Unbalanced braces",
	SynUsingAfterDeclaration:    "Using directive after declaration",
	IOInfo:                      "IO information",
	IOInputTooLarge:             "Input too large",
	IOReadFailed:                "Read failed",
	IOWriteFailed:               "Write failed",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
