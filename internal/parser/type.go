package parser

import (
	"github.com/waxlang/waxc/internal/ast"
	"github.com/waxlang/waxc/internal/token"
)

// ParseType parses a non-array head, then greedily applies zero or
// more suffix brackets: "[N]" -> SizedArray, "[]" -> Array.
func (p *Parser) ParseType() (ast.Type, error) {
	head, err := p.parseTypeHead()
	if err != nil {
		return nil, err
	}
	return p.parseArraySuffixes(head)
}

func (p *Parser) parseArraySuffixes(head ast.Type) (ast.Type, error) {
	for p.at(token.LBRACKET) {
		p.next() // consume '['
		if p.at(token.RBRACKET) {
			p.next()
			head = &ast.Array{Elem: head}
			continue
		}
		lenTok, err := p.expect(token.INT)
		if err != nil {
			return nil, err
		}
		n, err := parseIntLiteral(lenTok.Literal)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, errUnknown("array length must be non-negative, got %d", n)
		}
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		head = &ast.SizedArray{Elem: head, Len: n}
	}
	return head, nil
}

func (p *Parser) parseTypeHead() (ast.Type, error) {
	t := p.peek()
	switch t.Kind {
	case token.INT_TYPE:
		p.next()
		return &ast.Primitive{Kind: ast.IntType}, nil
	case token.FLOAT_TYPE:
		p.next()
		return &ast.Primitive{Kind: ast.FloatType}, nil
	case token.STRING_TYPE:
		p.next()
		return &ast.Primitive{Kind: ast.StringType}, nil
	case token.BOOL_TYPE:
		p.next()
		return &ast.Primitive{Kind: ast.BoolType}, nil
	case token.CHAR_TYPE:
		p.next()
		return &ast.Primitive{Kind: ast.CharType}, nil
	case token.VOID_TYPE:
		p.next()
		return &ast.Primitive{Kind: ast.VoidType}, nil
	case token.AMP:
		p.next()
		elem, err := p.ParseType()
		if err != nil {
			return nil, err
		}
		return &ast.Ptr{Elem: elem}, nil
	case token.IDENT:
		p.next()
		return &ast.Named{Name: t.Literal}, nil
	case token.LPAREN:
		return p.parseTupleOrFunctionType()
	case token.LBRACE:
		return p.parseStructType()
	case token.EOF:
		return nil, errEOF()
	default:
		return nil, errUnexpected(t)
	}
}

// parseTupleOrFunctionType parses "(T1, T2, ...)" as a Tuple unless
// followed by "=>", in which case it is a Function's parameter list.
// The empty tuple "()" is the zero-arg function head.
func (p *Parser) parseTupleOrFunctionType() (ast.Type, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var elems []ast.Type
	if !p.at(token.RPAREN) {
		for {
			elem, err := p.ParseType()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
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

	if p.at(token.FAT_ARROW) {
		p.next()
		ret, err := p.ParseType()
		if err != nil {
			return nil, err
		}
		return &ast.Function{Args: elems, Ret: ret}, nil
	}

	return &ast.Tuple{Fields: elems}, nil
}

// parseStructType parses "{ name: T, ... }", rejecting duplicate field
// names.
func (p *Parser) parseStructType() (ast.Type, error) {
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var fields []ast.StructField
	if !p.at(token.RBRACE) {
		for {
			nameTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			if seen[nameTok.Literal] {
				return nil, errUnknown("duplicate struct field %q", nameTok.Literal)
			}
			seen[nameTok.Literal] = true

			if _, err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			fieldType, err := p.ParseType()
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.StructField{Name: nameTok.Literal, Type: fieldType})

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
	return &ast.Struct{Fields: fields}, nil
}
