package koru

// Session owns the state that outlives a single parse: the precedence table
// that custom operator declarations mutate. One Session backs one REPL (or
// one batch run); constructs parsed earlier in the session affect how later
// chunks parse.
type Session struct {
	prec *PrecedenceTable
}

func NewSession() *Session {
	return &Session{prec: NewPrecedenceTable()}
}

// Precedence returns the session's shared operator table.
func (s *Session) Precedence() *PrecedenceTable {
	return s.prec
}

// NewParser returns a parser over input sharing the session's table.
func (s *Session) NewParser(input string) *Parser {
	return NewParser(input, s.prec)
}

// ParseChunk parses every top-level construct in input, in order. Bare ';'
// tokens between constructs are no-op statement terminators and are consumed
// here, not by the parser. The first failure aborts the rest of the chunk;
// constructs parsed before the failure are returned alongside the error.
func (s *Session) ParseChunk(input string) ([]*Function, error) {
	p := s.NewParser(input)

	var funcs []*Function
	for !p.AtEOF() {
		tok, err := p.Current()
		if err != nil {
			return funcs, err
		}

		if tok.Kind == TokenOp && tok.Op == ';' {
			_ = p.Advance() // a terminator may end the chunk
			continue
		}

		var fn *Function
		switch tok.Kind {
		case TokenDef:
			fn, err = p.ParseDefinition()
		case TokenExtern:
			fn, err = p.ParseExtern()
		default:
			fn, err = p.ParseTopLevelExpr()
		}

		if err != nil {
			return funcs, err
		}

		funcs = append(funcs, fn)
	}

	return funcs, nil
}
