package parser

import (
	"strconv"

	"github.com/waxlang/waxc/internal/ast"
	"github.com/waxlang/waxc/internal/token"
)

// ParseExpression parses a full expression at the lowest precedence
// level (`or`).
func (p *Parser) ParseExpression() (ast.Expression, error) {
	return p.parseOr()
}

// Level 1: `or`, right-associative.
func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if p.at(token.OR) {
		p.next()
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: ast.OpOr, Left: left, Right: right}, nil
	}
	return left, nil
}

// Level 2: `and`, right-associative.
func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	if p.at(token.AND) {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: ast.OpAnd, Left: left, Right: right}, nil
	}
	return left, nil
}

// Level 3: `not`, prefix, right-associative.
func (p *Parser) parseNot() (ast.Expression, error) {
	if p.at(token.NOT) {
		p.next()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.NotExpr{Operand: operand}, nil
	}
	return p.parseComparison()
}

var comparisonOps = map[token.Kind]ast.BinaryOp{
	token.EQ: ast.OpEq,
	token.GE: ast.OpGe,
	token.GT: ast.OpGt,
	token.LE: ast.OpLe,
	token.LT: ast.OpLt,
}

// Level 4: comparison, right-associative.
func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if op, ok := comparisonOps[p.peek().Kind]; ok {
		p.next()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: op, Left: left, Right: right}, nil
	}
	return left, nil
}

// Level 5: additive, left-associative.
func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Kind {
		case token.PLUS:
			op = ast.OpAdd
		case token.MINUS:
			op = ast.OpSub
		default:
			return left, nil
		}
		p.next()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

// Level 6: multiplicative, left-associative.
func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnaryMinus()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Kind {
		case token.STAR:
			op = ast.OpMul
		case token.SLASH:
			op = ast.OpDiv
		case token.PERCENT:
			op = ast.OpMod
		default:
			return left, nil
		}
		p.next()
		right, err := p.parseUnaryMinus()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

// Level 7: unary minus, prefix, right-associative.
func (p *Parser) parseUnaryMinus() (ast.Expression, error) {
	if p.at(token.MINUS) {
		p.next()
		operand, err := p.parseUnaryMinus()
		if err != nil {
			return nil, err
		}
		return &ast.NegExpr{Operand: operand}, nil
	}
	return p.parseRefDeref()
}

// Level 8: `&` (ref), `*` (deref), prefix, right-associative.
func (p *Parser) parseRefDeref() (ast.Expression, error) {
	switch p.peek().Kind {
	case token.AMP:
		p.next()
		operand, err := p.parseRefDeref()
		if err != nil {
			return nil, err
		}
		return &ast.RefExpr{Operand: operand}, nil
	case token.STAR:
		p.next()
		operand, err := p.parseRefDeref()
		if err != nil {
			return nil, err
		}
		return &ast.DerefExpr{Operand: operand}, nil
	default:
		return p.parsePostfix()
	}
}

// Level 9: postfix call/index/field-access, left-associative, chained.
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case token.LPAREN:
			args, err := p.parseCallArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpr{Callee: expr, Args: args}
		case token.LBRACKET:
			p.next()
			idx, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{Target: expr, Index: idx}
		case token.DOT:
			p.next()
			fieldTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			expr = &ast.FieldExpr{Target: expr, Field: fieldTok.Literal}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseCallArguments() ([]ast.Expression, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expression
	if !p.at(token.RPAREN) {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.at(token.COMMA) {
				p.next()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// Level 10: atoms.
func (p *Parser) parseAtom() (ast.Expression, error) {
	t := p.peek()
	switch t.Kind {
	case token.INT:
		p.next()
		v, err := parseIntLiteral(t.Literal)
		if err != nil {
			return nil, errUnknown("invalid integer literal %q: %v", t.Literal, err)
		}
		return &ast.IntLiteral{Value: v}, nil
	case token.NULL:
		p.next()
		return &ast.NullLiteral{}, nil
	case token.FLOAT:
		p.next()
		v, err := strconv.ParseFloat(t.Literal, 64)
		if err != nil {
			return nil, errUnknown("invalid float literal %q: %v", t.Literal, err)
		}
		return &ast.FloatLiteral{Value: v}, nil
	case token.CHAR:
		p.next()
		var v byte
		if len(t.Literal) > 0 {
			v = t.Literal[0]
		}
		return &ast.CharLiteral{Value: v}, nil
	case token.BOOL:
		p.next()
		return &ast.BoolLiteral{Value: t.Literal == "true"}, nil
	case token.STRING:
		p.next()
		return &ast.StringLiteral{Value: t.Literal}, nil
	case token.IDENT:
		p.next()
		return &ast.Identifier{Name: t.Literal}, nil
	case token.LBRACE:
		return p.parseStructLiteral()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LPAREN:
		return p.parseParenOrFunctionLiteral()
	case token.EOF:
		return nil, errEOF()
	default:
		return nil, errUnexpected(t)
	}
}

func (p *Parser) parseStructLiteral() (ast.Expression, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	fields := map[string]ast.Expression{}
	var order []string
	if !p.at(token.RBRACE) {
		for {
			nameTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			if _, ok := fields[nameTok.Literal]; ok {
				return nil, errUnknown("duplicate struct literal key %q", nameTok.Literal)
			}
			if _, err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			val, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			fields[nameTok.Literal] = val
			order = append(order, nameTok.Literal)

			if p.at(token.COMMA) {
				p.next()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.StructLiteral{Fields: fields, Order: order}, nil
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	if _, err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}
	var elems []ast.Expression
	if !p.at(token.RBRACKET) {
		for {
			el, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
			if p.at(token.COMMA) {
				p.next()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ArrayLiteral{Elements: elems}, nil
}

// parseParenOrFunctionLiteral disambiguates a function literal
// "(args?) [: ret]? => block" from a parenthesized expression or
// tuple literal. The disambiguator speculatively parses "(" then
// either ")" or "ident :"; on failure it must not have consumed any
// tokens from the caller's perspective, so lookahead runs against a
// cloned lexer.
func (p *Parser) parseParenOrFunctionLiteral() (ast.Expression, error) {
	if p.looksLikeFunctionLiteral() {
		return p.parseFunctionLiteral()
	}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var elems []ast.Expression
	if !p.at(token.RPAREN) {
		for {
			el, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
			if p.at(token.COMMA) {
				p.next()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return &ast.TupleLiteral{Elements: elems}, nil
}

// looksLikeFunctionLiteral runs the bounded "(" then ")" or "ident :"
// lookahead on a cloned lexer, consuming nothing from p.
func (p *Parser) looksLikeFunctionLiteral() bool {
	clone := p.lex.Clone()
	if clone.Next().Kind != token.LPAREN {
		return false
	}
	first := clone.Next()
	if first.Kind == token.RPAREN {
		return true
	}
	if first.Kind != token.IDENT {
		return false
	}
	return clone.Next().Kind == token.COLON
}

func (p *Parser) parseFunctionLiteral() (ast.Expression, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.Param
	if !p.at(token.RPAREN) {
		for {
			nameTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			paramType, err := p.ParseType()
			if err != nil {
				return nil, err
			}
			params = append(params, ast.Param{Name: nameTok.Literal, Type: paramType})
			if p.at(token.COMMA) {
				p.next()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	var ret ast.Type = &ast.Primitive{Kind: ast.VoidType}
	if p.at(token.COLON) {
		p.next()
		t, err := p.ParseType()
		if err != nil {
			return nil, err
		}
		ret = t
	}

	if _, err := p.expect(token.FAT_ARROW); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(true)
	if err != nil {
		return nil, err
	}
	return &ast.FunctionLiteral{Args: params, Ret: ret, Body: body}, nil
}
