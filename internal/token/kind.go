package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates a character sequence that is not a C# token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier, including @-verbatim identifiers.
	Ident
	// Keyword represents a reserved C# keyword; Text tells which one.
	Keyword

	// NumberLit represents an integer or real literal with optional suffix.
	NumberLit
	// CharLit represents a character literal.
	CharLit
	// StringLit represents a regular string literal.
	StringLit
	// VerbatimStringLit represents an @"..." string literal.
	VerbatimStringLit
	// InterpolatedStringLit represents a $"..." or $@"..." string literal.
	InterpolatedStringLit
	// RawStringLit represents a """...""" string literal (optionally $-prefixed).
	RawStringLit

	LBrace                 // {
	RBrace                 // }
	LParen                 // (
	RParen                 // )
	LBracket               // [
	RBracket               // ]
	Semicolon              // ;
	Comma                  // ,
	Dot                    // .
	DotDot                 // ..
	Colon                  // :
	ColonColon             // ::
	Question               // ?
	QuestionDot            // ?.
	QuestionQuestion       // ??
	QuestionQuestionAssign // ??=
	Plus                   // +
	Minus                  // -
	Star                   // *
	Slash                  // /
	Percent                // %
	Amp                    // &
	Pipe                   // |
	Caret                  // ^
	Bang                   // !
	Tilde                  // ~
	Assign                 // =
	Lt                     // <
	Gt                     // >
	LtEq                   // <=
	GtEq                   // >=
	EqEq                   // ==
	BangEq                 // !=
	AndAnd                 // &&
	OrOr                   // ||
	PlusPlus               // ++
	MinusMinus             // --
	Shl                    // <<
	Shr                    // >>
	UShr                   // >>>
	PlusAssign             // +=
	MinusAssign            // -=
	StarAssign             // *=
	SlashAssign            // /=
	PercentAssign          // %=
	AmpAssign              // &=
	PipeAssign             // |=
	CaretAssign            // ^=
	ShlAssign              // <<=
	ShrAssign              // >>=
	UShrAssign             // >>>=
	Arrow                  // ->
	FatArrow               // =>
)
