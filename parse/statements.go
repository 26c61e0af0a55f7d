package parse

import (
	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/value"
)

var typeHintKeywords = map[string]value.TypeHint{
	"Any": value.TypeAny, "Null": value.TypeNull, "Boolean": value.TypeBoolean,
	"Number": value.TypeNumber, "String": value.TypeString,
	"Array": value.TypeArray, "Object": value.TypeObject,
}

func (p *parser) parseVarDecl() (ast.Stmt, error) {
	pos := p.advance().Pos // 'var'
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{Name: name.Text}
	decl.Position = pos

	if p.isOp(":") {
		p.advance()
		hintTok := p.peek()
		hint, ok := typeHintKeywords[hintTok.Text]
		if !ok {
			return nil, p.errorf(diag.UnexpectedToken, "%w: expected a type name, got %q", ErrUnexpectedToken, hintTok.Text)
		}
		p.advance()
		decl.TypeHint = hint
		decl.HasTypeHint = true
	}

	if p.isOp("=") {
		p.advance()
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	return decl, nil
}

var assignOps = map[string]ast.AssignOp{
	"=": ast.AssignSet, "+=": ast.AssignAddSet, "-=": ast.AssignSubSet,
	"*=": ast.AssignMulSet, "/=": ast.AssignDivSet, "%=": ast.AssignModSet,
}

func (p *parser) parseExprStmtOrAssignment() (ast.Stmt, error) {
	pos := p.peek().Pos
	target, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind == TokenOperator {
		if op, ok := assignOps[p.peek().Text]; ok {
			p.advance()
			rhs, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			stmt := &ast.Assignment{Target: target, Op: op, Value: rhs}
			stmt.Position = pos
			return stmt, nil
		}
	}
	stmt := &ast.ExprStmt{Expr: target}
	stmt.Position = pos
	return stmt, nil
}

func (p *parser) parseIf() (ast.Stmt, error) {
	pos := p.advance().Pos // 'if'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Cond: cond, Then: thenBlock}
	stmt.Position = pos

	for p.isKeyword("else") && p.peekAt(1).Kind == TokenKeyword && p.peekAt(1).Text == "if" {
		p.advance() // else
		p.advance() // if
		elifCond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elifBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.ElseIfs = append(stmt.ElseIfs, ast.ElseIf{Cond: elifCond, Body: elifBody})
	}
	if p.isKeyword("else") {
		p.advance()
		elseBlock, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBlock
	}
	return stmt, nil
}

func (p *parser) parseSwitch() (ast.Stmt, error) {
	pos := p.advance().Pos // 'switch'
	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp("{"); err != nil {
		return nil, err
	}
	stmt := &ast.Switch{Scrutinee: scrutinee}
	stmt.Position = pos

	for p.isKeyword("case") {
		p.advance()
		var comparands []ast.Expr
		for {
			c, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			comparands = append(comparands, c)
			if p.isOp(",") {
				p.advance()
				continue
			}
			break
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Cases = append(stmt.Cases, ast.SwitchCase{Comparands: comparands, Body: body})
	}
	if p.isKeyword("default") {
		p.advance()
		def, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Default = def
	}
	if _, err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) parseWhile() (ast.Stmt, error) {
	pos := p.advance().Pos // 'while'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.While{Cond: cond, Body: body}
	stmt.Position = pos
	return stmt, nil
}

func (p *parser) parseFor() (ast.Stmt, error) {
	pos := p.advance().Pos // 'for'
	varTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("from"); err != nil {
		return nil, err
	}
	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("to"); err != nil {
		return nil, err
	}
	end, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	stmt := &ast.For{Var: varTok.Text, Start: start, End: end, Direction: ast.Ascending}
	stmt.Position = pos

	if p.isKeyword("step") {
		p.advance()
		step, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Step = step
	}
	if p.isKeyword("ascending") {
		p.advance()
		stmt.Direction = ast.Ascending
	} else if p.isKeyword("descending") {
		p.advance()
		stmt.Direction = ast.Descending
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *parser) parseForEach() (ast.Stmt, error) {
	pos := p.advance().Pos // 'foreach'
	varTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("in"); err != nil {
		return nil, err
	}
	coll, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.ForEach{Var: varTok.Text, Collection: coll, Body: body}
	stmt.Position = pos
	return stmt, nil
}

// startsExpr reports whether the current token can begin an expression,
// distinguishing `return` / `fail` with no message from ones with one.
func (p *parser) startsExpr() bool {
	t := p.peek()
	switch t.Kind {
	case TokenEOF:
		return false
	case TokenOperator:
		return t.Text == "(" || t.Text == "[" || t.Text == "{" || t.Text == "-"
	case TokenKeyword:
		return t.Text == "true" || t.Text == "false" || t.Text == "null" || t.Text == "not"
	default:
		return true
	}
}

func (p *parser) parseReturn() (ast.Stmt, error) {
	pos := p.advance().Pos // 'return'
	stmt := &ast.Return{}
	stmt.Position = pos
	if p.startsExpr() {
		msg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Message = msg
	}
	return stmt, nil
}

func (p *parser) parseFail() (ast.Stmt, error) {
	pos := p.advance().Pos // 'fail'
	stmt := &ast.Fail{}
	stmt.Position = pos
	if p.startsExpr() {
		msg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Message = msg
	}
	return stmt, nil
}
