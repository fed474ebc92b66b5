package koru

import "strings"

// Parser turns a materialized token buffer into Function values. It walks
// the buffer once, left to right, with a single cursor. The precedence table
// is shared by reference with the session so that custom operator
// declarations take effect for every later parse.
//
// A Parser handles one input chunk; create a new one per chunk.
type Parser struct {
	tokens []Token
	pos    int
	prec   *PrecedenceTable
}

// NewParser tokenizes input eagerly and returns a parser over the resulting
// buffer. Comment tokens and the EOF marker are dropped from the buffer.
func NewParser(input string, prec *PrecedenceTable) *Parser {
	toks := NewLexer(strings.NewReader(input)).RunBlocking()
	return NewParserFromTokens(toks, prec)
}

// NewParserFromTokens returns a parser over an already-lexed token sequence.
func NewParserFromTokens(tokens []Token, prec *PrecedenceTable) *Parser {
	buf := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == TokenComment || tok.Kind == TokenEOF {
			continue
		}

		buf = append(buf, tok)
	}

	return &Parser{
		tokens: buf,
		prec:   prec,
	}
}

// Current returns the token at the cursor, or an ErrUnexpectedEOF failure if
// the cursor is at or past the end of the buffer.
func (p *Parser) Current() (Token, error) {
	if p.AtEOF() {
		return Token{}, eofErrorf("no tokens left")
	}

	return p.tokens[p.pos], nil
}

// Advance moves the cursor forward by one. It fails with ErrUnexpectedEOF
// when the new position is out of range, which makes "consume and fail if
// nothing follows" a single operation. Callers at positions where the stream
// may legally end ignore the returned error.
func (p *Parser) Advance() error {
	p.pos++
	if p.AtEOF() {
		return eofErrorf("no tokens left")
	}

	return nil
}

// AtEOF reports whether the cursor has passed the last token.
func (p *Parser) AtEOF() bool {
	return p.pos >= len(p.tokens)
}

// Parse reads one top-level construct, dispatching on the first token:
// a definition, an extern declaration, or a wrapped top-level expression.
// Leftover tokens after the construct are an error.
func (p *Parser) Parse() (*Function, error) {
	tok, err := p.Current()
	if err != nil {
		return nil, err
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
		return nil, err
	}

	if !p.AtEOF() {
		return nil, eofErrorf("unexpected token after parsed expression")
	}

	return fn, nil
}

// ParseDefinition parses a function or custom-operator definition.
//
//	definition ::= 'def' prototype expression
func (p *Parser) ParseDefinition() (*Function, error) {
	if err := p.Advance(); err != nil { // eat 'def'
		return nil, err
	}

	proto, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}

	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Function{Proto: proto, Body: body}, nil
}

// ParseExtern parses an external declaration, a prototype with no body.
//
//	extern ::= 'extern' prototype
func (p *Parser) ParseExtern() (*Function, error) {
	if err := p.Advance(); err != nil { // eat 'extern'
		return nil, err
	}

	proto, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}

	return &Function{Proto: proto}, nil
}

// ParseTopLevelExpr parses a bare expression and wraps it in an anonymous
// zero-parameter Function so the backend can treat it like any definition.
func (p *Parser) ParseTopLevelExpr() (*Function, error) {
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Function{
		Proto:  Prototype{Name: anonymousName},
		Body:   body,
		IsAnon: true,
	}, nil
}

// parsePrototype parses a function or custom-operator signature.
//
//	prototype ::= identifier '(' identifier* ')'
//	            | 'binary' op-char number? '(' identifier* ')'
//
// The operator form synthesizes the name "binary<op>" and registers the
// declared precedence in the shared table before the parameter list is read,
// so the operator is usable inside its own definition body. Parameters may
// be separated by whitespace or commas.
func (p *Parser) parsePrototype() (Prototype, error) {
	tok, err := p.Current()
	if err != nil {
		return Prototype{}, err
	}

	var proto Prototype
	switch tok.Kind {
	case TokenIdentifier:
		proto.Name = tok.Text
		if err := p.Advance(); err != nil {
			return Prototype{}, err
		}

	case TokenBinary:
		if err := p.Advance(); err != nil {
			return Prototype{}, err
		}

		opTok, err := p.Current()
		if err != nil {
			return Prototype{}, err
		}
		if opTok.Kind != TokenOp {
			return Prototype{}, syntaxErrorf("expected operator in custom operator declaration")
		}
		if err := p.Advance(); err != nil {
			return Prototype{}, err
		}

		proto.Name = "binary" + string(opTok.Op)
		proto.IsOperator = true

		if num, err := p.Current(); err == nil && num.Kind == TokenNumber {
			proto.Precedence = int(num.Num)
			if err := p.Advance(); err != nil {
				return Prototype{}, err
			}
		}

		p.prec.Insert(opTok.Op, proto.Precedence)

	default:
		return Prototype{}, syntaxErrorf("expected identifier in prototype declaration, got %s", tok.Kind)
	}

	tok, err = p.Current()
	if err != nil {
		return Prototype{}, err
	}
	if tok.Kind != TokenLParen {
		return Prototype{}, syntaxErrorf("expected '(' in prototype declaration")
	}
	if err := p.Advance(); err != nil {
		return Prototype{}, err
	}

	for {
		tok, err := p.Current()
		if err != nil {
			return Prototype{}, err
		}

		switch tok.Kind {
		case TokenRParen:
			_ = p.Advance() // a prototype may end the input
			return proto, nil
		case TokenIdentifier:
			proto.Args = append(proto.Args, tok.Text)
			if err := p.Advance(); err != nil {
				return Prototype{}, err
			}
		case TokenComma:
			if err := p.Advance(); err != nil {
				return Prototype{}, err
			}
		default:
			return Prototype{}, syntaxErrorf("expected ',' or ')' in prototype declaration, got %s", tok.Kind)
		}
	}
}

// parseExpr parses a full expression: a unary expression followed by any
// number of precedence-resolved binary operator applications.
//
//	expression ::= unary binop-rhs
func (p *Parser) parseExpr() (Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return p.parseBinaryRHS(0, lhs)
}

// parseUnary treats any leading operator character as a prefix application,
// producing a call to the synthesized "unary<op>" name.
//
//	unary ::= op-char unary | primary
func (p *Parser) parseUnary() (Expr, error) {
	tok, err := p.Current()
	if err != nil {
		return nil, err
	}

	if tok.Kind != TokenOp {
		return p.parsePrimary()
	}

	if err := p.Advance(); err != nil {
		return nil, err
	}

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &CallExpr{
		Callee: "unary" + string(tok.Op),
		Args:   []Expr{operand},
	}, nil
}

// parseBinaryRHS climbs binary operators to the right of lhs. Operators
// below min (or non-operator tokens, which look up as -1) terminate the
// climb. Equal-precedence chains fold left-associatively; a tighter operator
// after the right-hand side claims it first via the recursive call.
func (p *Parser) parseBinaryRHS(min int, lhs Expr) (Expr, error) {
	for {
		prec := p.tokenPrecedence()
		if prec < min || p.AtEOF() {
			return lhs, nil
		}

		tok, err := p.Current()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenOp {
			return nil, syntaxErrorf("expected binary operator, got %s", tok.Kind)
		}
		if err := p.Advance(); err != nil {
			return nil, err
		}

		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		if prec < p.tokenPrecedence() {
			rhs, err = p.parseBinaryRHS(prec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &BinaryExpr{Op: tok.Op, LHS: lhs, RHS: rhs}
	}
}

// tokenPrecedence returns the binding power of the current token, or -1 when
// the stream is exhausted or the token is not an operator.
func (p *Parser) tokenPrecedence() int {
	tok, err := p.Current()
	if err != nil || tok.Kind != TokenOp {
		return -1
	}

	return p.prec.Lookup(tok.Op)
}

// parsePrimary parses the leaf forms of an expression.
//
//	primary ::= identifier-expr | number | '(' expression ')'
func (p *Parser) parsePrimary() (Expr, error) {
	tok, err := p.Current()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case TokenIdentifier:
		return p.parseIdentExpr()
	case TokenNumber:
		return p.parseNumberExpr()
	case TokenLParen:
		return p.parseParenExpr()
	default:
		return nil, syntaxErrorf("unknown token %s when expecting an expression", tok.Kind)
	}
}

func (p *Parser) parseNumberExpr() (Expr, error) {
	tok, err := p.Current()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenNumber {
		return nil, syntaxErrorf("expected number literal, got %s", tok.Kind)
	}

	_ = p.Advance() // a literal may end the input

	return &NumberExpr{Value: tok.Num}, nil
}

func (p *Parser) parseParenExpr() (Expr, error) {
	tok, err := p.Current()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenLParen {
		return nil, syntaxErrorf("expected '(' at start of parenthesized expression")
	}
	if err := p.Advance(); err != nil {
		return nil, err
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	tok, err = p.Current()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenRParen {
		return nil, syntaxErrorf("expected ')' at end of parenthesized expression")
	}

	_ = p.Advance() // a parenthesized expression may end the input

	return expr, nil
}

// parseIdentExpr parses either a bare variable reference or a call,
// distinguished by whether '(' immediately follows the identifier.
//
//	identifier-expr ::= identifier ('(' (expression (',' expression)*)? ')')?
func (p *Parser) parseIdentExpr() (Expr, error) {
	tok, err := p.Current()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenIdentifier {
		return nil, syntaxErrorf("expected identifier, got %s", tok.Kind)
	}
	name := tok.Text

	// A trailing identifier is a plain variable reference.
	if err := p.Advance(); err != nil {
		return &VariableExpr{Name: name}, nil
	}

	tok, err = p.Current()
	if err != nil || tok.Kind != TokenLParen {
		return &VariableExpr{Name: name}, nil
	}

	if err := p.Advance(); err != nil {
		return nil, syntaxErrorf("unterminated argument list in call to '%s'", name)
	}

	tok, err = p.Current()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenRParen {
		_ = p.Advance() // a call may end the input
		return &CallExpr{Callee: name}, nil
	}

	var args []Expr
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		tok, err := p.Current()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case TokenComma:
			if err := p.Advance(); err != nil {
				return nil, err
			}
		case TokenRParen:
			_ = p.Advance() // a call may end the input
			return &CallExpr{Callee: name, Args: args}, nil
		default:
			return nil, syntaxErrorf("expected ',' or ')' in call to '%s', got %s", name, tok.Kind)
		}
	}
}
