package token

import "strconv"

var kindNames = [...]string{
	Invalid:                "Invalid",
	EOF:                    "EOF",
	Ident:                  "Ident",
	Keyword:                "Keyword",
	NumberLit:              "NumberLit",
	CharLit:                "CharLit",
	StringLit:              "StringLit",
	VerbatimStringLit:      "VerbatimStringLit",
	InterpolatedStringLit:  "InterpolatedStringLit",
	RawStringLit:           "RawStringLit",
	LBrace:                 "LBrace",
	RBrace:                 "RBrace",
	LParen:                 "LParen",
	RParen:                 "RParen",
	LBracket:               "LBracket",
	RBracket:               "RBracket",
	Semicolon:              "Semicolon",
	Comma:                  "Comma",
	Dot:                    "Dot",
	DotDot:                 "DotDot",
	Colon:                  "Colon",
	ColonColon:             "ColonColon",
	Question:               "Question",
	QuestionDot:            "QuestionDot",
	QuestionQuestion:       "QuestionQuestion",
	QuestionQuestionAssign: "QuestionQuestionAssign",
	Plus:                   "Plus",
	Minus:                  "Minus",
	Star:                   "Star",
	Slash:                  "Slash",
	Percent:                "Percent",
	Amp:                    "Amp",
	Pipe:                   "Pipe",
	Caret:                  "Caret",
	Bang:                   "Bang",
	Tilde:                  "Tilde",
	Assign:                 "Assign",
	Lt:                     "Lt",
	Gt:                     "Gt",
	LtEq:                   "LtEq",
	GtEq:                   "GtEq",
	EqEq:                   "EqEq",
	BangEq:                 "BangEq",
	AndAnd:                 "AndAnd",
	OrOr:                   "OrOr",
	PlusPlus:               "PlusPlus",
	MinusMinus:             "MinusMinus",
	Shl:                    "Shl",
	Shr:                    "Shr",
	UShr:                   "UShr",
	PlusAssign:             "PlusAssign",
	MinusAssign:            "MinusAssign",
	StarAssign:             "StarAssign",
	SlashAssign:            "SlashAssign",
	PercentAssign:          "PercentAssign",
	AmpAssign:              "AmpAssign",
	PipeAssign:             "PipeAssign",
	CaretAssign:            "CaretAssign",
	ShlAssign:              "ShlAssign",
	ShrAssign:              "ShrAssign",
	UShrAssign:             "UShrAssign",
	Arrow:                  "Arrow",
	FatArrow:               "FatArrow",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

var triviaNames = [...]string{
	TriviaSpace:        "Space",
	TriviaNewline:      "Newline",
	TriviaLineComment:  "LineComment",
	TriviaBlockComment: "BlockComment",
	TriviaDocLine:      "DocLine",
	TriviaDocBlock:     "DocBlock",
	TriviaDocExterior:  "DocExterior",
	TriviaDirective:    "Directive",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaNames) && triviaNames[k] != "" {
		return triviaNames[k]
	}
	return "TriviaKind(" + strconv.Itoa(int(k)) + ")"
}
