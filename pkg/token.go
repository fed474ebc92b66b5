package koru

import (
	"fmt"
	"strconv"
)

// TokenKind identifies the category of a scanned token.
type TokenKind uint64

const (
	TokenEOF TokenKind = iota
	TokenComment
	TokenNumber
	TokenIdentifier

	TokenDef
	TokenExtern
	TokenBinary

	TokenLParen
	TokenRParen
	TokenComma
	TokenOp
)

var keywordTable = map[string]TokenKind{
	"def":    TokenDef,
	"extern": TokenExtern,
	"binary": TokenBinary,
}

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenComment:
		return "Comment"
	case TokenNumber:
		return "Number"
	case TokenIdentifier:
		return "Identifier"
	case TokenDef:
		return "Def"
	case TokenExtern:
		return "Extern"
	case TokenBinary:
		return "Binary"
	case TokenLParen:
		return "LParen"
	case TokenRParen:
		return "RParen"
	case TokenComma:
		return "Comma"
	case TokenOp:
		return "Op"
	}

	return "Unknown"
}

// Token is a single lexical unit. Tokens are immutable values: the lexer
// produces them and the parser only ever reads them by position.
//
// Text always holds the raw source slice the token was scanned from. Num is
// set only for TokenNumber, Op only for TokenOp.
type Token struct {
	Kind TokenKind
	Text string
	Num  float64
	Op   rune
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIdentifier:
		return fmt.Sprintf("Identifier(%s)", t.Text)
	case TokenNumber:
		return fmt.Sprintf("Number(%s)", strconv.FormatFloat(t.Num, 'g', -1, 64))
	case TokenOp:
		return fmt.Sprintf("Op(%c)", t.Op)
	case TokenComment:
		return fmt.Sprintf("Comment(%s)", t.Text)
	}

	return t.Kind.String()
}
