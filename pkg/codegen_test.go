package koru

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// generate parses input in a fresh session and lowers every construct,
// returning the printed IR of the last one.
func generate(t *testing.T, gen *Generator, s *Session, input string) string {
	t.Helper()

	funcs, err := s.ParseChunk(input)
	assert.NoError(t, err, "input: %q", input)
	assert.NotEmpty(t, funcs)

	var last string
	for _, fn := range funcs {
		f, err := gen.Generate(fn)
		assert.NoError(t, err, "input: %q", input)
		last = f.LLString()
	}

	return last
}

func TestGenerateDefinition(t *testing.T) {
	ir := generate(t, NewGenerator(), NewSession(), "def add(a b) a+b")

	assert.Contains(t, ir, "define double @add(double %a, double %b)")
	assert.Contains(t, ir, "fadd")
	assert.Contains(t, ir, "ret double")
}

func TestGenerateExtern(t *testing.T) {
	ir := generate(t, NewGenerator(), NewSession(), "extern sin(x)")

	assert.Contains(t, ir, "declare double @sin(double %x)")
}

func TestGenerateTopLevelExpr(t *testing.T) {
	ir := generate(t, NewGenerator(), NewSession(), "2+3*4")

	assert.Contains(t, ir, "define double @anon()")
	assert.Contains(t, ir, "fmul")
	assert.Contains(t, ir, "fadd")
}

func TestGenerateComparison(t *testing.T) {
	ir := generate(t, NewGenerator(), NewSession(), "def lt(a b) a<b")

	assert.Contains(t, ir, "fcmp ult")
	assert.Contains(t, ir, "uitofp")
}

func TestGenerateArithmetic(t *testing.T) {
	ir := generate(t, NewGenerator(), NewSession(), "def calc(a b) a-b/a")

	assert.Contains(t, ir, "fsub")
	assert.Contains(t, ir, "fdiv")
}

func TestGenerateCustomOperator(t *testing.T) {
	gen := NewGenerator()
	s := NewSession()

	ir := generate(t, gen, s, "def binary: 1 (a b) a+b; 1 : 2")

	// The custom operator lowers to a call of its definition.
	assert.Contains(t, ir, "call double")
	assert.Contains(t, ir, "binary:")
}

func TestGenerateNativeCallbacks(t *testing.T) {
	ir := generate(t, NewGenerator(), NewSession(), "printd(1)")

	assert.Contains(t, ir, "call double @printd")
}

func TestGenerateErrors(t *testing.T) {
	cases := []struct {
		input   string
		message string
	}{
		{"def f(x) y", "undefined variable"},
		{"g(1)", "call to undefined function"},
		{"printd(1, 2)", "takes 1 arguments, got 2"},
		{"1 ^ 2", "undefined binary operator"},
	}

	for _, c := range cases {
		s := NewSession()
		s.Precedence().Insert('^', 30) // parseable, but never defined

		funcs, err := s.ParseChunk(c.input)
		assert.NoError(t, err, "input: %q", c.input)
		assert.Len(t, funcs, 1)

		_, err = NewGenerator().Generate(funcs[0])
		assert.ErrorContains(t, err, c.message, "input: %q", c.input)
	}
}

func TestGeneratorModule(t *testing.T) {
	gen := NewGenerator()
	s := NewSession()

	generate(t, gen, s, "def f(x) x")
	generate(t, gen, s, "extern cos(x)")

	mod := gen.Module().String()
	assert.Contains(t, mod, "@putchard")
	assert.Contains(t, mod, "@printd")
	assert.Contains(t, mod, "@f")
	assert.Contains(t, mod, "@cos")
}
