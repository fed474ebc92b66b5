package koru

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"go.koru.dev/internal/test"
)

func TestLexer(t *testing.T) {
	cases := []struct {
		data   string
		expect []Token
	}{
		{
			"def foo(a, b) a+b",
			[]Token{
				{Kind: TokenDef, Text: "def"},
				{Kind: TokenIdentifier, Text: "foo"},
				{Kind: TokenLParen, Text: "("},
				{Kind: TokenIdentifier, Text: "a"},
				{Kind: TokenComma, Text: ","},
				{Kind: TokenIdentifier, Text: "b"},
				{Kind: TokenRParen, Text: ")"},
				{Kind: TokenIdentifier, Text: "a"},
				{Kind: TokenOp, Text: "+", Op: '+'},
				{Kind: TokenIdentifier, Text: "b"},
				{Kind: TokenEOF},
			},
		},
		{
			"# this is a comment\nx",
			[]Token{
				{Kind: TokenComment, Text: " this is a comment"},
				{Kind: TokenIdentifier, Text: "x"},
				{Kind: TokenEOF},
			},
		},
		{
			"# a comment at end of stream",
			[]Token{
				{Kind: TokenComment, Text: " a comment at end of stream"},
				{Kind: TokenEOF},
			},
		},
		{
			"extern binary unary",
			[]Token{
				{Kind: TokenExtern, Text: "extern"},
				{Kind: TokenBinary, Text: "binary"},
				{Kind: TokenIdentifier, Text: "unary"},
				{Kind: TokenEOF},
			},
		},
		{
			"únicódeShouldBeVàlid + _x1",
			[]Token{
				{Kind: TokenIdentifier, Text: "únicódeShouldBeVàlid"},
				{Kind: TokenOp, Text: "+", Op: '+'},
				{Kind: TokenIdentifier, Text: "_x1"},
				{Kind: TokenEOF},
			},
		},
		{
			"1.5 .5 2.",
			[]Token{
				{Kind: TokenNumber, Text: "1.5", Num: 1.5},
				{Kind: TokenNumber, Text: ".5", Num: 0.5},
				{Kind: TokenNumber, Text: "2.", Num: 2},
				{Kind: TokenEOF},
			},
		},
		{
			// The number scan accepts hex letters and stray dots; captures
			// that fail to parse scan as zero.
			"1.2.3 1f",
			[]Token{
				{Kind: TokenNumber, Text: "1.2.3", Num: 0},
				{Kind: TokenNumber, Text: "1f", Num: 0},
				{Kind: TokenEOF},
			},
		},
		{
			"x<y*2",
			[]Token{
				{Kind: TokenIdentifier, Text: "x"},
				{Kind: TokenOp, Text: "<", Op: '<'},
				{Kind: TokenIdentifier, Text: "y"},
				{Kind: TokenOp, Text: "*", Op: '*'},
				{Kind: TokenNumber, Text: "2", Num: 2},
				{Kind: TokenEOF},
			},
		},
		{
			"@ ; ~",
			[]Token{
				{Kind: TokenOp, Text: "@", Op: '@'},
				{Kind: TokenOp, Text: ";", Op: ';'},
				{Kind: TokenOp, Text: "~", Op: '~'},
				{Kind: TokenEOF},
			},
		},
		{
			"",
			[]Token{
				{Kind: TokenEOF},
			},
		},
		{
			"   \t\n  ",
			[]Token{
				{Kind: TokenEOF},
			},
		},
	}

	for _, c := range cases {
		r := strings.NewReader(c.data)
		l := NewLexer(r)

		assert.Equal(t, c.expect, l.RunBlocking(), "input: %q", c.data)
	}
}

func TestLexerChan(t *testing.T) {
	l := NewLexer(strings.NewReader("def"))
	go l.Run()

	tok, ok := <-l.Chan()
	assert.True(t, ok)
	assert.Equal(t, Token{Kind: TokenDef, Text: "def"}, tok)

	tok, ok = <-l.Chan()
	assert.True(t, ok)
	assert.Equal(t, Token{Kind: TokenEOF}, tok)

	_, ok = <-l.Chan()
	assert.False(t, ok)
}

// Use a package-level variable to avoid compiler optimisation
var benchResult []Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		// Setup
		b.StopTimer()
		data := test.GetRandomSource(size)
		r := strings.NewReader(data)
		l := NewLexer(r)

		b.StartTimer()

		benchResult = l.RunBlocking()
	}
}

func BenchmarkLexer100(b *testing.B) {
	benchmarkLexer(100, b)
}

func BenchmarkLexer1000(b *testing.B) {
	benchmarkLexer(1000, b)
}

func BenchmarkLexer10000(b *testing.B) {
	benchmarkLexer(10000, b)
}

func BenchmarkLexer100000(b *testing.B) {
	benchmarkLexer(100000, b)
}
