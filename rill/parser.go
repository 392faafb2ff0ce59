package rill

import "strconv"

// parser is a recursive-descent parser with single-token lookahead and
// explicit checkpoints. It records only the first syntax error it hits;
// later productions must not overwrite it (spec §4.2).
type parser struct {
	tokens []Token
	pos    int
	err    *ParseError
}

// Parse builds an AST Root from a token stream. The returned error, if
// non-nil, is always a *ParseError — the first one the parser recorded.
func Parse(tokens []Token) (*Root, error) {
	p := &parser{tokens: tokens}
	root := p.parseRoot()
	if p.err != nil {
		return nil, p.err
	}
	return root, nil
}

func (p *parser) peek() Token {
	return p.peekAt(0)
}

func (p *parser) peekAt(n int) Token {
	idx := p.pos + n
	if idx < len(p.tokens) {
		return p.tokens[idx]
	}
	return p.eofToken()
}

func (p *parser) eofToken() Token {
	if len(p.tokens) == 0 {
		return Token{Kind: EOF, Row: 1, Column: 1}
	}
	last := p.tokens[len(p.tokens)-1]
	return Token{Kind: EOF, Row: last.Row, Column: last.Column}
}

func (p *parser) atEOF() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) advance() Token {
	tok := p.peek()
	if !p.atEOF() {
		p.pos++
	}
	return tok
}

func (p *parser) checkpoint() int {
	return p.pos
}

func (p *parser) restore(mark int) {
	p.pos = mark
}

// expectKind consumes the next token if it matches kind, else records the
// first error (if none recorded yet) and returns ok=false.
func (p *parser) expectKind(kind Kind) (Token, bool) {
	tok := p.peek()
	if tok.Kind != kind {
		p.fail(kind, Token{}, "")
		return tok, false
	}
	return p.advance(), true
}

func (p *parser) fail(wantKind Kind, got Token, category Expectable) {
	if p.err != nil {
		return
	}
	tok := got
	if tok.Kind == Illegal && category == "" && wantKind == Illegal {
		tok = p.peek()
	}
	if tok == (Token{}) {
		tok = p.peek()
	}
	p.err = &ParseError{
		Row:          tok.Row,
		Column:       tok.Column,
		WantKind:     wantKind,
		WantCategory: category,
		Got:          tok,
	}
}

func (p *parser) failCategory(category Expectable) {
	p.fail(Illegal, p.peek(), category)
}

// expectStatementEnd consumes a single Newline, or accepts end-of-input,
// as every simple statement form requires (spec §4.2).
func (p *parser) expectStatementEnd() bool {
	if p.atEOF() {
		return true
	}
	if p.peek().Kind == Newline {
		p.advance()
		return true
	}
	p.fail(Newline, Token{}, "")
	return false
}

func parseInt64(text string) (int64, error) {
	return strconv.ParseInt(text, 10, 64)
}
