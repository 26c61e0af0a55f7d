package parse

import (
	"fmt"

	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/diag"
)

// parser is a recursive-descent parser over a flat token stream,
// producing the ast package's tree. Mostly one token of lookahead;
// peekAt(1) looks one token further (`else if`, `x =>`), and
// tryLambdaParamList backtracks when a `(` does not open a lambda.
type parser struct {
	tokens []Token
	pos    int
}

// Parse tokenizes and parses src into a top-level ast.Block, or returns
// the first syntax error encountered (lexical or grammatical).
func Parse(src string) (ast.Block, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	block, err := p.parseStmts(nil)
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, p.errorf(diag.UnexpectedToken, "%w: trailing input after program end: %q", ErrUnexpectedToken, p.peek().Text)
	}
	return block, nil
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *parser) atEOF() bool {
	return p.peek().Kind == TokenEOF
}

func (p *parser) advance() Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(code diag.Code, format string, args ...any) error {
	return newSyntaxError(code, p.peek().Pos, fmt.Errorf(format, args...))
}

func (p *parser) isOp(text string) bool {
	t := p.peek()
	return t.Kind == TokenOperator && t.Text == text
}

func (p *parser) isKeyword(text string) bool {
	t := p.peek()
	return t.Kind == TokenKeyword && t.Text == text
}

func (p *parser) expectOp(text string) (Token, error) {
	if !p.isOp(text) {
		return Token{}, p.errorf(diag.UnexpectedToken, "%w: expected %q, got %q", ErrUnexpectedToken, text, p.peek().Text)
	}
	return p.advance(), nil
}

func (p *parser) expectKeyword(text string) (Token, error) {
	if !p.isKeyword(text) {
		return Token{}, p.errorf(diag.UnexpectedToken, "%w: expected keyword %q, got %q", ErrUnexpectedToken, text, p.peek().Text)
	}
	return p.advance(), nil
}

func (p *parser) expectIdent() (Token, error) {
	if p.peek().Kind != TokenIdent {
		return Token{}, p.errorf(diag.UnexpectedToken, "%w: expected identifier, got %q", ErrUnexpectedToken, p.peek().Text)
	}
	return p.advance(), nil
}

// parseStmts parses statements until one of the stop tokens (operator
// text, e.g. "}") is seen or EOF is reached.
func (p *parser) parseStmts(stop []string) (ast.Block, error) {
	var block ast.Block
	for {
		if p.atEOF() {
			return block, nil
		}
		if t := p.peek(); t.Kind == TokenOperator {
			for _, s := range stop {
				if t.Text == s {
					return block, nil
				}
			}
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block = append(block, stmt)
	}
}

func (p *parser) parseBlock() (ast.Block, error) {
	if _, err := p.expectOp("{"); err != nil {
		return nil, err
	}
	block, err := p.parseStmts([]string{"}"})
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp("}"); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *parser) parseStmt() (ast.Stmt, error) {
	switch {
	case p.isKeyword("var"):
		return p.parseVarDecl()
	case p.isKeyword("if"):
		return p.parseIf()
	case p.isKeyword("switch"):
		return p.parseSwitch()
	case p.isKeyword("while"):
		return p.parseWhile()
	case p.isKeyword("for"):
		return p.parseFor()
	case p.isKeyword("foreach"):
		return p.parseForEach()
	case p.isKeyword("return"):
		return p.parseReturn()
	case p.isKeyword("fail"):
		return p.parseFail()
	case p.isKeyword("break"):
		pos := p.advance().Pos
		n := &ast.Break{}
		n.Position = pos
		return n, nil
	case p.isKeyword("continue"):
		pos := p.advance().Pos
		n := &ast.Continue{}
		n.Position = pos
		return n, nil
	default:
		return p.parseExprStmtOrAssignment()
	}
}
