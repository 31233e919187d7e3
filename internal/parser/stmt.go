package parser

import (
	"github.com/waxlang/waxc/internal/ast"
	"github.com/waxlang/waxc/internal/token"
)

// parseBlock optionally consumes a leading '{' (when enclosed), then
// repeats parseStatement until either '}' (when enclosed) or EOF.
func (p *Parser) parseBlock(enclosed bool) (ast.Block, error) {
	if enclosed {
		if _, err := p.expect(token.LBRACE); err != nil {
			return nil, err
		}
	}

	var stmts ast.Block
	for {
		if enclosed && p.at(token.RBRACE) {
			p.next()
			return stmts, nil
		}
		if p.at(token.EOF) {
			if enclosed {
				return nil, errEOF()
			}
			return stmts, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

// parseStatement dispatches on the first token.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.peek().Kind {
	case token.TYPE:
		return p.parseTypeDef()
	case token.LET:
		return p.parseVarDef()
	case token.IMPORT:
		return p.parseImport()
	case token.WHILE:
		return p.parseWhile()
	case token.LOOP:
		return p.parseLoop()
	case token.BREAK:
		p.next()
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{}, nil
	case token.CONTINUE:
		p.next()
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{}, nil
	case token.RETURN:
		return p.parseReturn()
	case token.IF:
		return p.parseIf()
	default:
		return p.parseAssignOrExprStatement()
	}
}

func (p *Parser) parseTypeDef() (ast.Statement, error) {
	p.next() // 'type'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	typ, err := p.ParseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.TypeDefStmt{Name: nameTok.Literal, Type: typ}, nil
}

func (p *Parser) parseVarDef() (ast.Statement, error) {
	p.next() // 'let'
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}

	var annot ast.Type
	if p.at(token.COLON) {
		p.next()
		t, err := p.ParseType()
		if err != nil {
			return nil, err
		}
		annot = t
	}

	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	val, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.VarDefStmt{Name: nameTok.Literal, Type: annot, Value: val}, nil
}

// parseImport handles "import ident [as alias], ... from "path";".
func (p *Parser) parseImport() (ast.Statement, error) {
	p.next() // 'import'

	var items []ast.ImportItem
	for {
		nameTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		alias := nameTok.Literal
		if p.at(token.AS) {
			p.next()
			aliasTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			alias = aliasTok.Literal
		}
		items = append(items, ast.ImportItem{Name: nameTok.Literal, Alias: alias})

		if p.at(token.COMMA) {
			p.next()
			continue
		}
		break
	}

	if _, err := p.expect(token.FROM); err != nil {
		return nil, err
	}
	pathTok, err := p.expect(token.STRING)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ImportStmt{Path: pathTok.Literal, Imports: items}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	p.next() // 'while'
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(true)
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body}, nil
}

func (p *Parser) parseLoop() (ast.Statement, error) {
	p.next() // 'loop'
	body, err := p.parseBlock(true)
	if err != nil {
		return nil, err
	}
	return &ast.LoopStmt{Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	p.next() // 'return'
	if p.at(token.SEMICOLON) {
		p.next()
		return &ast.ReturnStmt{}, nil
	}
	val, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Value: val}, nil
}

// parseIf parses "if cond { block } (else if cond { block })* (else {
// block })?" iteratively; each "else if" becomes the nested *IfStmt in
// the outer Else slot to preserve chain semantics with bounded
// recursion.
func (p *Parser) parseIf() (ast.Statement, error) {
	p.next() // 'if'
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(true)
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Cond: cond, Body: body}

	if !p.at(token.ELSE) {
		return stmt, nil
	}
	p.next() // 'else'
	if p.at(token.IF) {
		nested, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		stmt.Else = nested
		return stmt, nil
	}
	elseBody, err := p.parseBlock(true)
	if err != nil {
		return nil, err
	}
	stmt.Else = elseBody
	return stmt, nil
}

var compoundAssignOps = map[token.Kind]ast.BinaryOp{
	token.PLUS_ASSIGN:    ast.OpAdd,
	token.MINUS_ASSIGN:   ast.OpSub,
	token.STAR_ASSIGN:    ast.OpMul,
	token.SLASH_ASSIGN:   ast.OpDiv,
	token.PERCENT_ASSIGN: ast.OpMod,
}

// parseAssignOrExprStatement parses an expression; if followed by '='
// or a compound-assignment operator, produces an Assign (desugaring
// compound forms into Assign{lhs, rhs: Op(lhs, rhs)} with the lhs
// cloned); otherwise an Expr statement.
func (p *Parser) parseAssignOrExprStatement() (ast.Statement, error) {
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if p.at(token.ASSIGN) {
		p.next()
		rhs, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Lhs: expr, Rhs: rhs}, nil
	}

	if op, ok := compoundAssignOps[p.peek().Kind]; ok {
		p.next()
		rhs, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SEMICOLON); err != nil {
			return nil, err
		}
		desugared := &ast.BinaryExpr{Op: op, Left: ast.CloneLValue(expr), Right: rhs}
		return &ast.AssignStmt{Lhs: expr, Rhs: desugared}, nil
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Value: expr}, nil
}
