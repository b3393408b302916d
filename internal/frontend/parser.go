// Package frontend lexes and parses ChocoPy-subset source into the
// untyped AST. Hand-written recursive descent: predictive, no
// backtracking, errors collected with positions rather than stopping at
// the first one.
package frontend

import (
	"fmt"
	"strconv"

	"github.com/roach88/choc/internal/ast"
)

// Parse lexes and parses source text. On success the returned error
// slice is empty; otherwise the program may be nil or partial and must
// not be used.
func Parse(source string) (*ast.Program, []error) {
	toks, errs := tokenize(source)
	p := &parser{toks: toks, errs: errs}
	prog := p.program()
	return prog, p.errs
}

type parser struct {
	toks []Token
	pos  int
	errs []error
}

func (p *parser) program() *ast.Program {
	prog := &ast.Program{}
	declsDone := false

	p.skipNewlines()
	for !p.check(EOF) {
		switch {
		case p.check(DEF):
			fn := p.funcDef()
			if fn != nil {
				if declsDone {
					p.errorAt(fn.Pos(), "All declarations must come before statements")
				} else {
					prog.Funcs = append(prog.Funcs, fn)
				}
			}
		case p.atVarDef():
			vd := p.varDef()
			if vd != nil {
				if declsDone {
					p.errorAt(vd.Pos(), "All declarations must come before statements")
				} else {
					prog.Globals = append(prog.Globals, vd)
				}
			}
		default:
			declsDone = true
			if s := p.statement(); s != nil {
				prog.Body = append(prog.Body, s)
			}
		}
		p.skipNewlines()
	}
	return prog
}

// atVarDef reports whether the upcoming tokens look like a variable
// definition: NAME ':' type.
func (p *parser) atVarDef() bool {
	return p.check(NAME) && p.peekAhead(1).Type == COLON
}

// varDef parses "name: type = literal" followed by a newline.
func (p *parser) varDef() *ast.VarDef {
	name := p.cur()
	p.advance()
	p.expect(COLON, "expected ':'")
	typeName, ok := p.typeAnnotation()
	if !ok {
		p.syncLine()
		return nil
	}
	if !p.expect(ASSIGN, "Expected initializing value") {
		p.syncLine()
		return nil
	}
	value := p.literal()
	if value == nil {
		p.syncLine()
		return nil
	}
	p.expect(NEWLINE, "expected end of line")
	return &ast.VarDef{
		Position: ast.Position{Line: name.Line, Col: name.Col},
		Name:     &ast.Ident{Position: ast.Position{Line: name.Line, Col: name.Col}, Name: name.Lexeme},
		TypeName: typeName,
		Value:    value,
	}
}

// literal parses the literal initializer of a VarDef. Expressions are
// rejected: definitions only take compile-time constants.
func (p *parser) literal() ast.Expr {
	tok := p.cur()
	pos := ast.Position{Line: tok.Line, Col: tok.Col}
	switch tok.Type {
	case INT:
		p.advance()
		return p.intLit(tok, pos, false)
	case MINUS:
		p.advance()
		if !p.check(INT) {
			p.errorHere("Expected literal value")
			return nil
		}
		num := p.cur()
		p.advance()
		return p.intLit(num, pos, true)
	case STRING:
		p.advance()
		return &ast.StrLit{Position: pos, Value: tok.Lexeme}
	case TRUE:
		p.advance()
		return &ast.BoolLit{Position: pos, Value: true}
	case FALSE:
		p.advance()
		return &ast.BoolLit{Position: pos, Value: false}
	case NONE:
		p.advance()
		return &ast.NoneLit{Position: pos}
	default:
		p.errorHere("Expected literal value")
		return nil
	}
}

func (p *parser) intLit(tok Token, pos ast.Position, neg bool) ast.Expr {
	v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		p.errorAt(pos, "Integer literal out of range")
		return nil
	}
	if neg {
		v = -v
	}
	return &ast.IntLit{Position: pos, Value: v}
}

func (p *parser) typeAnnotation() (string, bool) {
	if !p.check(NAME) {
		p.errorHere("Unsupported type annotation")
		return "", false
	}
	name := p.cur().Lexeme
	p.advance()
	return name, true
}

func (p *parser) funcDef() *ast.FuncDef {
	defTok := p.cur()
	p.advance() // def
	if !p.check(NAME) {
		p.errorHere("expected function name")
		p.syncLine()
		return nil
	}
	nameTok := p.cur()
	p.advance()
	if !p.expect(LPAREN, "expected '('") {
		p.syncLine()
		return nil
	}

	var params []*ast.Param
	if !p.check(RPAREN) {
		for {
			if !p.check(NAME) {
				p.errorHere("expected parameter name")
				p.syncLine()
				return nil
			}
			pTok := p.cur()
			p.advance()
			if !p.expect(COLON, "Missing type annotation") {
				p.syncLine()
				return nil
			}
			pType, ok := p.typeAnnotation()
			if !ok {
				p.syncLine()
				return nil
			}
			params = append(params, &ast.Param{
				Position: ast.Position{Line: pTok.Line, Col: pTok.Col},
				Name:     pTok.Lexeme,
				TypeName: pType,
			})
			if !p.check(COMMA) {
				break
			}
			p.advance()
		}
	}
	if !p.expect(RPAREN, "expected ')'") {
		p.syncLine()
		return nil
	}

	returnName := ""
	if p.check(ARROW) {
		p.advance()
		rt, ok := p.typeAnnotation()
		if !ok {
			p.syncLine()
			return nil
		}
		returnName = rt
	}
	if !p.expect(COLON, "expected ':'") || !p.expect(NEWLINE, "expected newline after ':'") {
		p.syncLine()
		return nil
	}
	if !p.expect(INDENT, "expected indented function body") {
		return nil
	}

	fn := &ast.FuncDef{
		Position:   ast.Position{Line: defTok.Line, Col: defTok.Col},
		Name:       &ast.Ident{Position: ast.Position{Line: nameTok.Line, Col: nameTok.Col}, Name: nameTok.Lexeme},
		Params:     params,
		ReturnName: returnName,
	}

	// Local definitions come first, then statements.
	declsDone := false
	p.skipNewlines()
	for !p.check(DEDENT) && !p.check(EOF) {
		switch {
		case p.check(DEF):
			p.errorHere("Nested definitions are unsupported")
			p.skipSuite()
		case p.atVarDef():
			vd := p.varDef()
			if vd != nil {
				if declsDone {
					p.errorAt(vd.Pos(), "All declarations must come before statements")
				} else {
					fn.Locals = append(fn.Locals, vd)
				}
			}
		default:
			declsDone = true
			if s := p.statement(); s != nil {
				fn.Body = append(fn.Body, s)
			}
		}
		p.skipNewlines()
	}
	p.expect(DEDENT, "expected dedent")
	return fn
}

func (p *parser) statement() ast.Stmt {
	tok := p.cur()
	pos := ast.Position{Line: tok.Line, Col: tok.Col}
	switch tok.Type {
	case PASS:
		p.advance()
		p.expect(NEWLINE, "expected end of line")
		return &ast.Pass{Position: pos}
	case RETURN:
		p.advance()
		var value ast.Expr
		if !p.check(NEWLINE) && !p.check(EOF) {
			value = p.expression()
		}
		p.expect(NEWLINE, "expected end of line")
		return &ast.Return{Position: pos, Value: value}
	case IF:
		return p.ifStmt()
	case WHILE:
		return p.whileStmt()
	case DEF:
		p.errorHere("Nested definitions are unsupported")
		p.skipSuite()
		return nil
	default:
		return p.exprOrAssign()
	}
}

// exprOrAssign parses either a bare expression statement or a chained
// assignment "a = b = expr". Assignment targets must be names.
func (p *parser) exprOrAssign() ast.Stmt {
	start := p.cur()
	pos := ast.Position{Line: start.Line, Col: start.Col}
	first := p.expression()
	if first == nil {
		p.syncLine()
		return nil
	}

	if !p.check(ASSIGN) {
		p.expect(NEWLINE, "expected end of line")
		return &ast.ExprStmt{Position: pos, X: first}
	}

	// Collect "= expr" chains. All but the last expression are targets.
	exprs := []ast.Expr{first}
	for p.check(ASSIGN) {
		p.advance()
		e := p.expression()
		if e == nil {
			p.syncLine()
			return nil
		}
		exprs = append(exprs, e)
	}
	p.expect(NEWLINE, "expected end of line")

	targets := make([]*ast.Ident, 0, len(exprs)-1)
	for _, e := range exprs[:len(exprs)-1] {
		id, ok := e.(*ast.Ident)
		if !ok {
			p.errorAt(e.Pos(), "Invalid assignment target")
			return nil
		}
		targets = append(targets, id)
	}
	return &ast.Assign{Position: pos, Targets: targets, Value: exprs[len(exprs)-1]}
}

func (p *parser) ifStmt() ast.Stmt {
	tok := p.cur()
	pos := ast.Position{Line: tok.Line, Col: tok.Col}
	p.advance() // if / elif
	cond := p.expression()
	if cond == nil {
		p.syncLine()
		return nil
	}
	p.expect(COLON, "expected ':'")
	then := p.block()

	var elseBody []ast.Stmt
	switch {
	case p.check(ELIF):
		// Desugar: elif becomes a nested If as the sole else statement.
		if nested := p.ifStmt(); nested != nil {
			elseBody = []ast.Stmt{nested}
		}
	case p.check(ELSE):
		p.advance()
		p.expect(COLON, "expected ':'")
		elseBody = p.block()
	}
	return &ast.If{Position: pos, Cond: cond, Then: then, Else: elseBody}
}

func (p *parser) whileStmt() ast.Stmt {
	tok := p.cur()
	pos := ast.Position{Line: tok.Line, Col: tok.Col}
	p.advance()
	cond := p.expression()
	if cond == nil {
		p.syncLine()
		return nil
	}
	p.expect(COLON, "expected ':'")
	body := p.block()
	return &ast.While{Position: pos, Cond: cond, Body: body}
}

// block parses an indented statement suite. Variable definitions are
// rejected inside control-flow bodies.
func (p *parser) block() []ast.Stmt {
	if !p.expect(NEWLINE, "expected newline after ':'") {
		p.syncLine()
		return nil
	}
	if !p.expect(INDENT, "expected indented block") {
		return nil
	}
	var stmts []ast.Stmt
	p.skipNewlines()
	for !p.check(DEDENT) && !p.check(EOF) {
		if p.atVarDef() {
			p.errorHere("Cannot declare variables inside a statement body")
			p.syncLine()
			p.skipNewlines()
			continue
		}
		if s := p.statement(); s != nil {
			stmts = append(stmts, s)
		}
		p.skipNewlines()
	}
	p.expect(DEDENT, "expected dedent")
	return stmts
}

// EXPRESSIONS
//
// Precedence, lowest first: ternary, or, and, not, comparison,
// additive, multiplicative, unary minus, primary.

func (p *parser) expression() ast.Expr {
	return p.ternary()
}

func (p *parser) ternary() ast.Expr {
	then := p.orExpr()
	if then == nil || !p.check(IF) {
		return then
	}
	p.advance()
	cond := p.orExpr()
	if cond == nil {
		return nil
	}
	if !p.expect(ELSE, "expected 'else' in conditional expression") {
		return nil
	}
	els := p.ternary()
	if els == nil {
		return nil
	}
	return &ast.Cond{Position: then.Pos(), Cond: cond, Then: then, Else: els}
}

func (p *parser) orExpr() ast.Expr {
	left := p.andExpr()
	for left != nil && p.check(OR) {
		p.advance()
		right := p.andExpr()
		if right == nil {
			return nil
		}
		left = &ast.Binary{Position: left.Pos(), Op: ast.OpOr, X: left, Y: right}
	}
	return left
}

func (p *parser) andExpr() ast.Expr {
	left := p.notExpr()
	for left != nil && p.check(AND) {
		p.advance()
		right := p.notExpr()
		if right == nil {
			return nil
		}
		left = &ast.Binary{Position: left.Pos(), Op: ast.OpAnd, X: left, Y: right}
	}
	return left
}

func (p *parser) notExpr() ast.Expr {
	if p.check(NOT) {
		tok := p.cur()
		p.advance()
		operand := p.notExpr()
		if operand == nil {
			return nil
		}
		return &ast.Unary{
			Position: ast.Position{Line: tok.Line, Col: tok.Col},
			Op:       ast.UnaryNot,
			X:        operand,
		}
	}
	return p.comparison()
}

var compareOps = map[TokenType]ast.BinOp{
	LT: ast.OpLt,
	LE: ast.OpLe,
	GT: ast.OpGt,
	GE: ast.OpGe,
	EQ: ast.OpEq,
	NE: ast.OpNe,
}

func (p *parser) comparison() ast.Expr {
	left := p.additive()
	if left == nil {
		return nil
	}
	op, ok := compareOps[p.cur().Type]
	if !ok {
		return left
	}
	p.advance()
	right := p.additive()
	if right == nil {
		return nil
	}
	if _, chained := compareOps[p.cur().Type]; chained {
		p.errorHere("Unsupported compare between more than 2 operands")
		return nil
	}
	return &ast.Binary{Position: left.Pos(), Op: op, X: left, Y: right}
}

func (p *parser) additive() ast.Expr {
	left := p.multiplicative()
	for left != nil && (p.check(PLUS) || p.check(MINUS)) {
		op := ast.OpAdd
		if p.check(MINUS) {
			op = ast.OpSub
		}
		p.advance()
		right := p.multiplicative()
		if right == nil {
			return nil
		}
		left = &ast.Binary{Position: left.Pos(), Op: op, X: left, Y: right}
	}
	return left
}

func (p *parser) multiplicative() ast.Expr {
	left := p.unary()
	for left != nil && (p.check(STAR) || p.check(SLASHSLASH) || p.check(PERCENT)) {
		var op ast.BinOp
		switch p.cur().Type {
		case STAR:
			op = ast.OpMul
		case SLASHSLASH:
			op = ast.OpDiv
		case PERCENT:
			op = ast.OpMod
		}
		p.advance()
		right := p.unary()
		if right == nil {
			return nil
		}
		left = &ast.Binary{Position: left.Pos(), Op: op, X: left, Y: right}
	}
	return left
}

func (p *parser) unary() ast.Expr {
	if p.check(MINUS) {
		tok := p.cur()
		p.advance()
		operand := p.unary()
		if operand == nil {
			return nil
		}
		return &ast.Unary{
			Position: ast.Position{Line: tok.Line, Col: tok.Col},
			Op:       ast.UnaryNeg,
			X:        operand,
		}
	}
	return p.primary()
}

func (p *parser) primary() ast.Expr {
	tok := p.cur()
	pos := ast.Position{Line: tok.Line, Col: tok.Col}
	switch tok.Type {
	case INT:
		p.advance()
		return p.intLit(tok, pos, false)
	case STRING:
		p.advance()
		return &ast.StrLit{Position: pos, Value: tok.Lexeme}
	case TRUE:
		p.advance()
		return &ast.BoolLit{Position: pos, Value: true}
	case FALSE:
		p.advance()
		return &ast.BoolLit{Position: pos, Value: false}
	case NONE:
		p.advance()
		return &ast.NoneLit{Position: pos}
	case NAME:
		p.advance()
		ident := &ast.Ident{Position: pos, Name: tok.Lexeme}
		if !p.check(LPAREN) {
			return ident
		}
		p.advance()
		var args []ast.Expr
		if !p.check(RPAREN) {
			for {
				arg := p.expression()
				if arg == nil {
					return nil
				}
				args = append(args, arg)
				if !p.check(COMMA) {
					break
				}
				p.advance()
			}
		}
		if !p.expect(RPAREN, "expected ')'") {
			return nil
		}
		return &ast.Call{Position: pos, Func: ident, Args: args}
	case LPAREN:
		p.advance()
		inner := p.expression()
		if inner == nil {
			return nil
		}
		if !p.expect(RPAREN, "expected ')'") {
			return nil
		}
		return inner
	default:
		p.errorHere(fmt.Sprintf("Unexpected token: %s", tok.Type))
		return nil
	}
}

// TOKEN CURSOR

func (p *parser) cur() Token {
	return p.toks[p.pos]
}

func (p *parser) peekAhead(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos+n]
}

func (p *parser) check(typ TokenType) bool {
	return p.cur().Type == typ
}

func (p *parser) advance() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
}

func (p *parser) expect(typ TokenType, msg string) bool {
	if p.check(typ) {
		p.advance()
		return true
	}
	p.errorHere(msg)
	return false
}

func (p *parser) skipNewlines() {
	for p.check(NEWLINE) {
		p.advance()
	}
}

// syncLine advances to just past the next NEWLINE so that one malformed
// statement does not cascade into nonsense errors.
func (p *parser) syncLine() {
	for !p.check(NEWLINE) && !p.check(EOF) {
		p.advance()
	}
	if p.check(NEWLINE) {
		p.advance()
	}
}

// skipSuite discards a whole indented suite, used when a construct like
// a nested def is rejected outright.
func (p *parser) skipSuite() {
	for !p.check(NEWLINE) && !p.check(EOF) {
		p.advance()
	}
	if p.check(NEWLINE) {
		p.advance()
	}
	if !p.check(INDENT) {
		return
	}
	depth := 0
	for !p.check(EOF) {
		switch p.cur().Type {
		case INDENT:
			depth++
		case DEDENT:
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

func (p *parser) errorHere(msg string) {
	tok := p.cur()
	p.errs = append(p.errs, &ParseError{Line: tok.Line, Col: tok.Col, Message: msg})
}

func (p *parser) errorAt(pos ast.Position, msg string) {
	p.errs = append(p.errs, &ParseError{Line: pos.Line, Col: pos.Col, Message: msg})
}
