package parse

import (
	"fmt"
	"strconv"

	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/value"
)

// parseExpr is the entry point for any expression, starting at the
// lowest-precedence level (logical or).
func (p *parser) parseExpr() (ast.Expr, error) {
	return p.parseLogicalOr()
}

func (p *parser) parseLogicalOr() (ast.Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("or") {
		pos := p.advance().Pos
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = binaryNode(value.OpOr, left, right, pos)
	}
	return left, nil
}

func (p *parser) parseLogicalAnd() (ast.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("and") {
		pos := p.advance().Pos
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = binaryNode(value.OpAnd, left, right, pos)
	}
	return left, nil
}

var equalityOps = map[string]value.BinaryOp{"==": value.OpEqual, "!=": value.OpNotEqual}

func (p *parser) parseEquality() (ast.Expr, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokenOperator {
		op, ok := equalityOps[p.peek().Text]
		if !ok {
			break
		}
		pos := p.advance().Pos
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = binaryNode(op, left, right, pos)
	}
	return left, nil
}

var relationalOps = map[string]value.BinaryOp{
	"<": value.OpLess, "<=": value.OpLessEq, ">": value.OpGreater, ">=": value.OpGreaterEq,
}

func (p *parser) parseRelational() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokenOperator {
		op, ok := relationalOps[p.peek().Text]
		if !ok {
			break
		}
		pos := p.advance().Pos
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = binaryNode(op, left, right, pos)
	}
	return left, nil
}

var additiveOps = map[string]value.BinaryOp{"+": value.OpAdd, "-": value.OpSub}

func (p *parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokenOperator {
		op, ok := additiveOps[p.peek().Text]
		if !ok {
			break
		}
		pos := p.advance().Pos
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = binaryNode(op, left, right, pos)
	}
	return left, nil
}

var multiplicativeOps = map[string]value.BinaryOp{"*": value.OpMul, "/": value.OpDiv, "%": value.OpMod}

func (p *parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseTypeTest()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokenOperator {
		op, ok := multiplicativeOps[p.peek().Text]
		if !ok {
			break
		}
		pos := p.advance().Pos
		right, err := p.parseTypeTest()
		if err != nil {
			return nil, err
		}
		left = binaryNode(op, left, right, pos)
	}
	return left, nil
}

func (p *parser) parseTypeTest() (ast.Expr, error) {
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.isKeyword("is") {
		pos := p.advance().Pos
		hintTok := p.peek()
		hint, ok := typeHintKeywords[hintTok.Text]
		if !ok {
			return nil, p.errorf(diag.UnexpectedToken, "%w: expected a type name after 'is', got %q", ErrUnexpectedToken, hintTok.Text)
		}
		p.advance()
		n := &ast.TypeTest{Operand: operand, TypeHint: hint}
		n.Position = pos
		return n, nil
	}
	return operand, nil
}

func binaryNode(op value.BinaryOp, left, right ast.Expr, pos ast.Position) ast.Expr {
	n := &ast.Binary{Op: op, Left: left, Right: right}
	n.Position = pos
	return n
}

func (p *parser) parseUnary() (ast.Expr, error) {
	if p.isOp("-") {
		pos := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		n := &ast.Unary{Op: value.OpNeg, Operand: operand}
		n.Position = pos
		return n, nil
	}
	if p.isKeyword("not") {
		pos := p.advance().Pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		n := &ast.Unary{Op: value.OpNot, Operand: operand}
		n.Position = pos
		return n, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isOp("."):
			pos := p.advance().Pos
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			n := &ast.PropertyAccess{Object: expr, Name: name.Text}
			n.Position = pos
			expr = n
		case p.isOp("?."):
			pos := p.advance().Pos
			name, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			n := &ast.PropertyAccess{Object: expr, Name: name.Text, Optional: true}
			n.Position = pos
			expr = n
		case p.isOp("["):
			pos := p.advance().Pos
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectOp("]"); err != nil {
				return nil, err
			}
			n := &ast.IndexAccess{Collection: expr, Index: idx}
			n.Position = pos
			expr = n
		case p.isOp("("):
			pos := p.advance().Pos
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			call := &ast.Call{Args: args}
			call.Position = pos
			if ident, ok := expr.(*ast.Identifier); ok {
				call.Name = ident.Name
			} else {
				call.Callee = expr
			}
			expr = call
		default:
			return expr, nil
		}
	}
}

func (p *parser) parseArgList() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.isOp(")") {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.isOp(",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectOp(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	t := p.peek()

	// Lambda forms: `ident => expr` and `(p1, p2) => expr`.
	if t.Kind == TokenIdent && p.peekAt(1).Kind == TokenOperator && p.peekAt(1).Text == "=>" {
		pos := t.Pos
		p.advance()
		p.advance() // '=>'
		body, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		n := &ast.Lambda{Params: []string{t.Text}, Body: body}
		n.Position = pos
		return n, nil
	}
	if t.Kind == TokenOperator && t.Text == "(" {
		if params, ok := p.tryLambdaParamList(); ok {
			pos := t.Pos
			body, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			n := &ast.Lambda{Params: params, Body: body}
			n.Position = pos
			return n, nil
		}
	}

	switch {
	case t.Kind == TokenNumber:
		p.advance()
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, newSyntaxError(diag.InvalidNumberLiteral, t.Pos, fmt.Errorf("%w: %q", ErrInvalidNumberLiteral, t.Text))
		}
		n := &ast.Literal{Value: value.Number(f)}
		n.Position = t.Pos
		return n, nil
	case t.Kind == TokenString:
		p.advance()
		n := &ast.Literal{Value: value.Str(t.Text)}
		n.Position = t.Pos
		return n, nil
	case p.isKeyword("true"):
		p.advance()
		n := &ast.Literal{Value: value.True}
		n.Position = t.Pos
		return n, nil
	case p.isKeyword("false"):
		p.advance()
		n := &ast.Literal{Value: value.False}
		n.Position = t.Pos
		return n, nil
	case p.isKeyword("null"):
		p.advance()
		n := &ast.Literal{Value: value.Null}
		n.Position = t.Pos
		return n, nil
	case t.Kind == TokenIdent:
		p.advance()
		n := &ast.Identifier{Name: t.Text}
		n.Position = t.Pos
		return n, nil
	case p.isOp("("):
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return inner, nil
	case p.isOp("["):
		return p.parseArrayLit()
	case p.isOp("{"):
		return p.parseObjectLit()
	default:
		return nil, p.errorf(diag.UnexpectedToken, "%w: got %q", ErrUnexpectedToken, t.Text)
	}
}

// tryLambdaParamList speculatively parses "(" ident ("," ident)* ")" "=>"
// and, only if that whole shape matches, consumes it and returns the
// parameter names. Otherwise it leaves the parser position untouched so
// the caller falls back to parsing a parenthesized expression.
func (p *parser) tryLambdaParamList() ([]string, bool) {
	save := p.pos
	p.advance() // '('
	var params []string
	for {
		if p.isOp(")") {
			break
		}
		if p.peek().Kind != TokenIdent {
			p.pos = save
			return nil, false
		}
		params = append(params, p.advance().Text)
		if p.isOp(",") {
			p.advance()
			continue
		}
		break
	}
	if !p.isOp(")") {
		p.pos = save
		return nil, false
	}
	p.advance() // ')'
	if !p.isOp("=>") {
		p.pos = save
		return nil, false
	}
	p.advance() // '=>'
	return params, true
}

func (p *parser) parseArrayLit() (ast.Expr, error) {
	pos := p.advance().Pos // '['
	n := &ast.ArrayLit{}
	n.Position = pos
	if p.isOp("]") {
		p.advance()
		return n, nil
	}
	for {
		el, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		n.Elements = append(n.Elements, el)
		if p.isOp(",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectOp("]"); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *parser) parseObjectLit() (ast.Expr, error) {
	pos := p.advance().Pos // '{'
	n := &ast.ObjectLit{}
	n.Position = pos
	if p.isOp("}") {
		p.advance()
		return n, nil
	}
	for {
		var key string
		switch {
		case p.peek().Kind == TokenIdent || p.peek().Kind == TokenKeyword:
			key = p.advance().Text
		case p.peek().Kind == TokenString:
			key = p.advance().Text
		default:
			return nil, p.errorf(diag.UnexpectedToken, "%w: expected an object key, got %q", ErrUnexpectedToken, p.peek().Text)
		}
		if _, err := p.expectOp(":"); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		n.Fields = append(n.Fields, ast.ObjectField{Key: key, Value: val})
		if p.isOp(",") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return n, nil
}
