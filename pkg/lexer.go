package koru

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const eof rune = 0

type stateFunc func(l *Lexer) stateFunc

// Lexer converts a character stream into a sequence of Tokens. It is a small
// state machine that feeds tokens through a channel; use Run with Chan for
// the lazy form, or RunBlocking to materialize the whole input at once.
//
// Lexing never fails: an exhausted input yields a TokenEOF marker and any
// unrecognized punctuation becomes a TokenOp carrying the character.
type Lexer struct {
	reader *bufio.Reader
	out    chan Token
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		out:    make(chan Token),
	}
}

// Chan returns the channel tokens are emitted on while Run is active. The
// channel is closed after the TokenEOF marker is sent; the sequence is not
// restartable.
func (l *Lexer) Chan() chan Token {
	return l.out
}

func (l *Lexer) Run() {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	close(l.out)
}

// RunBlocking tokenizes the entire input and returns the tokens in order,
// including the trailing TokenEOF marker.
func (l *Lexer) RunBlocking() []Token {
	go l.Run()

	var tokens []Token
	for t := range l.Chan() {
		tokens = append(tokens, t)
	}

	return tokens
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r := l.peek(); {
		case r == eof:
			l.emit(Token{Kind: TokenEOF})
			return nil
		case unicode.IsSpace(r):
			l.next()
		case r == '#':
			return commentState
		case r == '.' || isDigit(r):
			return numberState
		case r == '_' || unicode.IsLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

// commentState consumes a '#' line comment through the end of the line. The
// comment body is carried on the token; callers typically discard it.
func commentState(l *Lexer) stateFunc {
	l.next() // skip the '#'

	var body strings.Builder
	for r := l.peek(); r != eof; r = l.peek() {
		l.next()
		if r == '\n' || r == '\r' {
			break
		}

		body.WriteRune(r)
	}

	return l.emit(Token{Kind: TokenComment, Text: body.String()})
}

// numberState scans a maximal run of digits, dots and hex letters. The
// continue set accepts a-f and stray dots, so the capture may fail to parse;
// such literals scan as zero rather than erroring.
func numberState(l *Lexer) stateFunc {
	var raw strings.Builder
	for r := l.peek(); isNumberRune(r); r = l.peek() {
		raw.WriteRune(l.next())
	}

	text := raw.String()
	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		val = 0
	}

	return l.emit(Token{Kind: TokenNumber, Text: text, Num: val})
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); isIdentRune(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	text := id.String()
	if kind, ok := keywordTable[text]; ok {
		return l.emit(Token{Kind: kind, Text: text})
	}

	return l.emit(Token{Kind: TokenIdentifier, Text: text})
}

func operatorState(l *Lexer) stateFunc {
	switch r := l.next(); r {
	case '(':
		return l.emit(Token{Kind: TokenLParen, Text: "("})
	case ')':
		return l.emit(Token{Kind: TokenRParen, Text: ")"})
	case ',':
		return l.emit(Token{Kind: TokenComma, Text: ","})
	default:
		return l.emit(Token{Kind: TokenOp, Text: string(r), Op: r})
	}
}

func (l *Lexer) emit(tok Token) stateFunc {
	l.out <- tok
	return defaultState
}

func (l *Lexer) peek() rune {
	r := l.next()
	_ = l.reader.UnreadRune()

	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return eof
		}

		return utf8.RuneError
	}

	return r
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isNumberRune(r rune) bool {
	return r == '.' || isDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
