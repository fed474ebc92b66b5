package test

import (
	"math/rand"
	"strings"
)

const validTokens = "def;extern;binary;foo;bar;x;y;acc;(;);,;1;42;2.5;0.125;+;-;*;/;<;!;|;:;=;# a line comment\n;\n"

func GetRandomSource(size int) string {
	return GetRandomSourceWithSep(size, " ")
}

func GetRandomSourceWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}
