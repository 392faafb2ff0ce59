package rill

import "fmt"

// LexError reports an unterminated string literal, the only fatal
// tokenizer failure (spec §4.1, §7).
type LexError struct {
	Row, Column int
	Message     string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Row, e.Column, e.Message)
}

// lexer turns source bytes into a flat token stream. It is a pure function
// of its input: no state survives past Tokenize.
type lexer struct {
	src string
	pos int

	row, col int
	ch       byte
	eof      bool
}

func newLexer(src string) *lexer {
	l := &lexer{src: src, row: 1, col: 0}
	l.advance()
	return l
}

func (l *lexer) advance() {
	if l.pos >= len(l.src) {
		l.eof = true
		l.ch = 0
		return
	}
	l.ch = l.src[l.pos]
	l.pos++
	if l.ch == '\n' {
		l.row++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *lexer) peekAt(offset int) byte {
	idx := l.pos - 1 + offset
	if idx < 0 || idx >= len(l.src) {
		return 0
	}
	return l.src[idx]
}

func (l *lexer) peek() byte {
	return l.peekAt(1)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// Tokenize converts source bytes into an ordered token stream. It is
// infallible except for an unterminated string literal (spec §4.1).
func Tokenize(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token

	for !l.eof {
		switch {
		case l.ch == '\n':
			tok := l.readNewlineRun(len(tokens) > 0)
			if tok != nil {
				tokens = append(tokens, *tok)
			}
			continue
		case isSpace(l.ch):
			l.advance()
			continue
		case l.ch == '#':
			l.skipComment()
			continue
		}

		tok, err := l.readToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}

	return tokens, nil
}

// readNewlineRun consumes one or more newlines, plus any whitespace and
// comments interleaved with them, and produces at most one Newline token
// for the whole run — never as the very first token in the stream.
func (l *lexer) readNewlineRun(hasPrior ...bool) *Token {
	row, col := l.row, l.col
	sawNewline := false
	for !l.eof {
		switch {
		case l.ch == '\n':
			sawNewline = true
			l.advance()
		case isSpace(l.ch):
			l.advance()
		case l.ch == '#':
			l.skipComment()
		default:
			goto done
		}
	}
done:
	if !sawNewline || (len(hasPrior) > 0 && !hasPrior[0]) {
		return nil
	}
	return &Token{Kind: Newline, Value: "\n", Row: row, Column: col}
}

func (l *lexer) skipComment() {
	for !l.eof && l.ch != '\n' {
		l.advance()
	}
	if !l.eof {
		l.advance() // consume the newline terminating the comment
	}
}

func (l *lexer) readToken() (Token, error) {
	row, col := l.row, l.col

	if l.ch == '$' {
		return l.readVariable(row, col)
	}
	if isAlpha(l.ch) {
		if tok, ok := l.readKeyword(row, col); ok {
			return tok, nil
		}
		if tok, ok := l.readIdentifier(row, col); ok {
			return tok, nil
		}
	}
	if tok, ok := l.readOperator(row, col); ok {
		return tok, nil
	}
	if l.ch == '"' {
		return l.readString(row, col)
	}
	if tok, ok := l.readInteger(row, col); ok {
		return tok, nil
	}
	return l.readBareword(row, col), nil
}

func (l *lexer) readVariable(row, col int) (Token, error) {
	start := l.pos - 1
	l.advance() // consume '$'
	if !isAlpha(l.ch) {
		// not actually a variable; the whole run becomes one bareword
		end := start + 1
		for end < len(l.src) && !isSpace(l.src[end]) && l.src[end] != '\n' {
			end++
		}
		l.seekTo(end)
		return Token{Kind: Bareword, Value: l.src[start:end], Row: row, Column: col}, nil
	}
	end := l.pos - 1
	for end < len(l.src) && isAlnum(l.src[end]) {
		end++
	}
	l.seekTo(end)
	name := l.src[start+1 : end]
	return Token{Kind: VariableTok, Value: name, Row: row, Column: col}, nil
}

func (l *lexer) readKeyword(row, col int) (Token, bool) {
	start := l.pos - 1
	end := start
	for end < len(l.src) && isAlnum(l.src[end]) {
		end++
	}
	word := l.src[start:end]
	kind, ok := keywords[word]
	if !ok {
		return Token{}, false
	}
	// boundary check: keyword must be followed by a non-identifier char
	if end < len(l.src) && isAlnum(l.src[end]) {
		return Token{}, false
	}
	l.seekTo(end)
	return Token{Kind: kind, Value: word, Row: row, Column: col}, true
}

func (l *lexer) readIdentifier(row, col int) (Token, bool) {
	start := l.pos - 1
	end := start
	for end < len(l.src) && isAlnum(l.src[end]) {
		end++
	}
	if end >= len(l.src) {
		l.seekTo(end)
		return Token{Kind: Identifier, Value: l.src[start:end], Row: row, Column: col}, true
	}
	next := l.src[end]
	if next == '-' || next == '+' || next == '/' || next == '*' {
		// reject: let bareword recognition absorb the whole run instead
		return Token{}, false
	}
	l.seekTo(end)
	return Token{Kind: Identifier, Value: l.src[start:end], Row: row, Column: col}, true
}

// readOperator greedily matches the longest operator starting at the
// cursor, except that a bare -, +, *, or / is left for bareword
// recognition instead when an alphabetic character follows the whole run
// of that same punctuation byte — so "--help" is rejected as an operator
// on the first dash (the run covers both dashes, and 'h' follows), not
// just "-help" on the second.
func (l *lexer) readOperator(row, col int) (Token, bool) {
	start := l.pos - 1
	best := ""
	for length := 2; length >= 1; length-- {
		if start+length > len(l.src) {
			continue
		}
		candidate := l.src[start : start+length]
		if _, ok := operators[candidate]; ok {
			best = candidate
			break
		}
	}
	if best == "" {
		return Token{}, false
	}
	if len(best) == 1 {
		switch best[0] {
		case '-', '+', '*', '/':
			end := start
			for end < len(l.src) && l.src[end] == best[0] {
				end++
			}
			if end < len(l.src) && isAlpha(l.src[end]) {
				return Token{}, false
			}
		}
	}
	l.seekTo(start + len(best))
	return Token{Kind: operators[best], Value: best, Row: row, Column: col}, true
}

func (l *lexer) readString(row, col int) (Token, error) {
	start := l.pos // byte after opening quote
	l.advance()    // consume opening quote
	for {
		if l.eof {
			return Token{}, &LexError{Row: row, Column: col, Message: "unterminated string literal"}
		}
		if l.ch == '\\' {
			l.advance()
			if l.eof {
				return Token{}, &LexError{Row: row, Column: col, Message: "unterminated string literal"}
			}
			l.advance()
			continue
		}
		if l.ch == '"' {
			break
		}
		l.advance()
	}
	value := l.src[start : l.pos-1]
	l.advance() // consume closing quote
	return Token{Kind: StringTok, Value: value, Row: row, Column: col}, nil
}

func (l *lexer) readInteger(row, col int) (Token, bool) {
	start := l.pos - 1
	end := start
	if l.src[end] == '-' {
		if end+1 >= len(l.src) || !isDigit(l.src[end+1]) {
			return Token{}, false
		}
		end++
	}
	if end >= len(l.src) || !isDigit(l.src[end]) {
		return Token{}, false
	}
	for end < len(l.src) && isDigit(l.src[end]) {
		end++
	}
	if end < len(l.src) {
		terminator := l.src[end]
		if !isSpace(terminator) && terminator != '\n' {
			if _, isOp := operators[string(terminator)]; !isOp {
				return Token{}, false
			}
		}
	}
	l.seekTo(end)
	return Token{Kind: Integer, Value: l.src[start:end], Row: row, Column: col}, true
}

// readBareword consumes a run of non-whitespace bytes, stopping early at a
// ')' so that a bareword can be the last argument of a parenthesized call.
func (l *lexer) readBareword(row, col int) Token {
	start := l.pos - 1
	end := start
	for end < len(l.src) && !isSpace(l.src[end]) && l.src[end] != '\n' && l.src[end] != ')' {
		end++
	}
	if end == start {
		end++ // always consume at least one byte to guarantee progress
	}
	l.seekTo(end)
	return Token{Kind: Bareword, Value: l.src[start:end], Row: row, Column: col}
}

// seekTo repositions the cursor so that l.ch is the byte at src[target],
// recomputing row/col by replaying consumed bytes. The lexer only ever
// seeks forward within the current token attempt, so this stays cheap.
func (l *lexer) seekTo(target int) {
	for l.pos-1 < target && !l.eof {
		l.advance()
	}
}
