package rill

// parseRoot consumes the whole token stream as a sequence of top-level
// statements interleaved with `fn` declarations (spec §4.2). A later `fn`
// with the same name overwrites an earlier one — last one wins, see
// DESIGN.md's open-question ledger.
func (p *parser) parseRoot() *Root {
	root := &Root{Functions: make(map[string]*FnDeclaration)}
	p.skipNewlines()
	for !p.atEOF() && p.err == nil {
		if p.peek().Kind == Fn {
			fn := p.parseFnDecl()
			if fn == nil {
				break
			}
			root.Functions[fn.Name] = fn
		} else {
			stmt := p.parseStatement()
			if stmt == nil {
				break
			}
			root.Statements = append(root.Statements, stmt)
		}
		p.skipNewlines()
	}
	return root
}

func (p *parser) skipNewlines() {
	for p.peek().Kind == Newline {
		p.advance()
	}
}

func (p *parser) parseFnDecl() *FnDeclaration {
	tok, ok := p.expectKind(Fn)
	if !ok {
		return nil
	}
	name, ok := p.expectKind(Identifier)
	if !ok {
		return nil
	}
	var params []string
	for p.peek().Kind == Identifier {
		params = append(params, p.advance().Value)
	}
	body := p.parseScope(true)
	if body == nil {
		return nil
	}
	return &FnDeclaration{base: base{Tok: tok}, Name: name.Value, Params: params, Body: body}
}

// parseStatement implements spec §4.2's statement alternatives. Assignment
// and the function-call statement form both require a checkpoint/restore:
// either can fail partway through and fall back to a plainer expression.
func (p *parser) parseStatement() Statement {
	tok := p.peek()
	switch tok.Kind {
	case Var:
		return p.parseDeclaration()
	case Return:
		return p.parseReturn()
	case LBrace:
		body := p.parseScope(true)
		if body == nil {
			return nil
		}
		return body
	case If:
		return p.parseBranch()
	case While, For:
		return p.parseLoop()
	}

	if tok.Kind == VariableTok {
		mark := p.checkpoint()
		savedErr := p.err
		if stmt := p.tryParseAssignment(); stmt != nil && p.err == savedErr {
			return stmt
		}
		p.restore(mark)
		p.err = savedErr
	}

	if tok.Kind == Identifier {
		mark := p.checkpoint()
		savedErr := p.err
		if stmt := p.tryParseFunctionCallStatement(); stmt != nil && p.err == savedErr {
			return stmt
		}
		p.restore(mark)
		p.err = savedErr
	}

	return p.parseExprStatement()
}

func (p *parser) parseDeclaration() Statement {
	tok, ok := p.expectKind(Var)
	if !ok {
		return nil
	}
	name, ok := p.expectKind(Identifier)
	if !ok {
		return nil
	}
	if _, ok := p.expectKind(Assign); !ok {
		return nil
	}
	value := p.parseExpr()
	if value == nil {
		return nil
	}
	if !p.expectStatementEnd() {
		return nil
	}
	return &DeclarationStmt{base: base{Tok: tok}, Name: name.Value, Value: value}
}

// tryParseAssignment attempts `'$'IDENT '=' expr NEWLINE`. It returns nil
// without guaranteeing the cursor is untouched — callers must restore from
// their own checkpoint on failure, per spec §4.2's "restore the cursor so
// a standalone $x can still appear as an expression" policy.
func (p *parser) tryParseAssignment() Statement {
	target := p.parseVariableExpr()
	if target == nil {
		return nil
	}
	if p.peek().Kind != Assign {
		return nil
	}
	tok := p.advance()
	value := p.parseExpr()
	if value == nil {
		return nil
	}
	if !p.expectStatementEnd() {
		return nil
	}
	return &AssignmentStmt{base: base{Tok: tok}, Target: target, Value: value}
}

func (p *parser) tryParseFunctionCallStatement() Statement {
	call := p.parseFunctionCall()
	if call == nil {
		return nil
	}
	if !p.expectStatementEnd() {
		return nil
	}
	return call
}

func (p *parser) parseExprStatement() Statement {
	tok := p.peek()
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	if !p.expectStatementEnd() {
		return nil
	}
	return &ExprStmt{base: base{Tok: tok}, Expr: expr}
}

func (p *parser) parseReturn() Statement {
	tok, ok := p.expectKind(Return)
	if !ok {
		return nil
	}
	stmt := &ReturnStmt{base: base{Tok: tok}}
	if p.peek().Kind == Newline || p.atEOF() || p.peek().Kind == RBrace {
		return stmt
	}
	stmt.Value = p.parseExpr()
	if stmt.Value == nil {
		return nil
	}
	if !p.expectStatementEnd() {
		return nil
	}
	return stmt
}

// parseScope implements `'{' NEWLINE statement* '}' NEWLINE?`. When
// consumeTrailing is false the caller owns whatever follows the closing
// brace — branch bodies need this so the whole if/else chain ends in
// exactly one trailing newline, not one per arm (spec §4.2's
// scopeNoTrailingNL).
func (p *parser) parseScope(consumeTrailing bool) *ScopeStmt {
	open, ok := p.expectKind(LBrace)
	if !ok {
		return nil
	}
	p.skipNewlines()
	scope := &ScopeStmt{base: base{Tok: open}}
	for p.peek().Kind != RBrace && !p.atEOF() && p.err == nil {
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		scope.Body = append(scope.Body, stmt)
		p.skipNewlines()
	}
	if _, ok := p.expectKind(RBrace); !ok {
		return nil
	}
	if consumeTrailing && p.peek().Kind == Newline {
		p.advance()
	}
	return scope
}

// parseBranch implements `'if' expr scopeNoTrailingNL ('else' (branch |
// scope))? NEWLINE` — the trailing NEWLINE is consumed exactly once, at
// the outermost level of an if/else-if/else chain.
func (p *parser) parseBranch() Statement {
	branch := p.parseIfTail()
	if branch == nil {
		return nil
	}
	if !p.expectStatementEnd() {
		return nil
	}
	return branch
}

func (p *parser) parseIfTail() *BranchStmt {
	tok, ok := p.expectKind(If)
	if !ok {
		return nil
	}
	cond := p.parseExpr()
	if cond == nil {
		return nil
	}
	then := p.parseScope(false)
	if then == nil {
		return nil
	}
	branch := &BranchStmt{base: base{Tok: tok}, Condition: cond, Then: then}
	if p.peek().Kind == Else {
		p.advance()
		if p.peek().Kind == If {
			branch.Else = p.parseIfTail()
			if branch.Else == nil {
				return nil
			}
		} else {
			elseScope := p.parseScope(false)
			if elseScope == nil {
				return nil
			}
			branch.Else = elseScope
		}
	}
	return branch
}

// parseLoop implements `'while' expr scope | 'for' IDENT 'in' expr scope`.
func (p *parser) parseLoop() Statement {
	tok := p.peek()
	if tok.Kind == While {
		p.advance()
		cond := p.parseExpr()
		if cond == nil {
			return nil
		}
		body := p.parseScope(true)
		if body == nil {
			return nil
		}
		return &LoopStmt{base: base{Tok: tok}, Condition: cond, Body: body}
	}

	p.advance() // 'for'
	iter, ok := p.expectKind(Identifier)
	if !ok {
		return nil
	}
	if _, ok := p.expectKind(In); !ok {
		return nil
	}
	iterable := p.parseExpr()
	if iterable == nil {
		return nil
	}
	body := p.parseScope(true)
	if body == nil {
		return nil
	}
	return &LoopStmt{base: base{Tok: tok}, Iterator: iter.Value, Iterable: iterable, Body: body}
}
