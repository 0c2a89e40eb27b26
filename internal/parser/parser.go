// Package parser turns spec source text into the syntax tree consumed by the
// lint rules. It covers the testing-dialect subset: receiver chains, paren
// and paren-less argument lists, literals, `key: value` and `key => value`
// pairs, splats, lambdas and both block styles.
package parser

import (
	"fmt"

	"github.com/speclint/speclint/internal/syntax"
)

type parser struct {
	src  []byte
	toks []token
	pos  int

	// bareArgDepth disables `do` block attachment while parsing paren-less
	// arguments, where a trailing do-block belongs to the outer call
	bareArgDepth int
}

// Parse parses src and returns the file with its tree and comments.
func Parse(filename string, src []byte) (*syntax.File, error) {
	toks, comments, err := tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	p := &parser{src: src, toks: toks}
	stmts, err := p.parseStmts()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if !p.at(tEOF) {
		return nil, fmt.Errorf("%s: %s", filename, p.errUnexpected())
	}
	root := &syntax.Node{Kind: syntax.KindRoot, Children: stmts, Start: 0, End: len(src)}
	return syntax.NewFile(filename, src, root, comments), nil
}

func (p *parser) cur() token { return p.toks[p.pos] }

func (p *parser) at(typ tokenType) bool { return p.toks[p.pos].typ == typ }

func (p *parser) atAny(typs ...tokenType) bool {
	for _, t := range typs {
		if p.at(t) {
			return true
		}
	}
	return false
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.typ != tEOF {
		p.pos++
	}
	return tok
}

func (p *parser) accept(typ tokenType) (token, bool) {
	if p.at(typ) {
		return p.next(), true
	}
	return token{}, false
}

func (p *parser) expect(typ tokenType) (token, error) {
	if p.at(typ) {
		return p.next(), nil
	}
	return token{}, fmt.Errorf("%s, want %s", p.errUnexpected(), typ)
}

func (p *parser) errUnexpected() string {
	tok := p.cur()
	line, col := offsetPosition(p.src, tok.pos)
	if tok.typ == tEOF {
		return fmt.Sprintf("%d:%d: unexpected end of file", line, col)
	}
	return fmt.Sprintf("%d:%d: unexpected %s %q", line, col, tok.typ, tok.val)
}

func offsetPosition(src []byte, offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func (p *parser) skipSeparators() {
	for p.atAny(tNewline, tSemicolon) {
		p.pos++
	}
}

func (p *parser) skipNewlines() {
	for p.at(tNewline) {
		p.pos++
	}
}

// parseStmts parses statements until EOF or one of the stop tokens.
func (p *parser) parseStmts(stops ...tokenType) ([]*syntax.Node, error) {
	var out []*syntax.Node
	for {
		p.skipSeparators()
		if p.at(tEOF) || p.atAny(stops...) {
			return out, nil
		}
		n, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
		if !p.atAny(tNewline, tSemicolon, tEOF) && !p.atAny(stops...) {
			return nil, fmt.Errorf("%s after expression", p.errUnexpected())
		}
	}
}

// parseExpr parses a full expression including binary operators, which are
// folded left-associatively into receiver calls (`a + b` is `a.+(b)`).
func (p *parser) parseExpr() (*syntax.Node, error) {
	n, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(tOp) {
		op := p.next()
		p.skipNewlines()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		n = &syntax.Node{
			Kind:     syntax.KindCall,
			Value:    op.val,
			Recv:     n,
			Children: []*syntax.Node{rhs},
			Start:    n.Start,
			End:      rhs.End,
		}
	}
	return n, nil
}

func isUnaryOp(val string) bool {
	switch val {
	case "-", "!", "&", "~":
		return true
	}
	return false
}

func (p *parser) parseUnary() (*syntax.Node, error) {
	if p.at(tOp) && isUnaryOp(p.cur().val) {
		op := p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if operand.Kind == syntax.KindInt && op.val == "-" {
			return &syntax.Node{
				Kind:  syntax.KindInt,
				Value: op.val + operand.Value,
				Start: op.pos,
				End:   operand.End,
			}, nil
		}
		return &syntax.Node{
			Kind:     syntax.KindCall,
			Value:    op.val,
			Children: []*syntax.Node{operand},
			Start:    op.pos,
			End:      operand.End,
		}, nil
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any number of method
// calls and index expressions.
func (p *parser) parsePostfix() (*syntax.Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(tDot):
			p.next()
			sel, err := p.expect(tIdent)
			if err != nil {
				return nil, err
			}
			call := &syntax.Node{
				Kind:  syntax.KindCall,
				Value: sel.val,
				Recv:  n,
				Start: n.Start,
				End:   sel.end,
			}
			n, err = p.parseCallTail(call)
			if err != nil {
				return nil, err
			}
		case p.at(tLBracket):
			p.next()
			var args []*syntax.Node
			for !p.at(tRBracket) {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if _, ok := p.accept(tComma); !ok {
					break
				}
			}
			close, err := p.expect(tRBracket)
			if err != nil {
				return nil, err
			}
			n = &syntax.Node{
				Kind:     syntax.KindCall,
				Value:    "[]",
				Recv:     n,
				Children: args,
				Start:    n.Start,
				End:      close.end,
			}
		default:
			return n, nil
		}
	}
}

func (p *parser) parsePrimary() (*syntax.Node, error) {
	tok := p.cur()
	switch tok.typ {
	case tInt:
		p.next()
		return &syntax.Node{Kind: syntax.KindInt, Value: tok.val, Start: tok.pos, End: tok.end}, nil
	case tString:
		p.next()
		return &syntax.Node{Kind: syntax.KindString, Value: tok.val, Start: tok.pos, End: tok.end}, nil
	case tSymbol:
		p.next()
		return &syntax.Node{Kind: syntax.KindSymbol, Value: tok.val, Start: tok.pos, End: tok.end}, nil
	case tConst:
		p.next()
		return &syntax.Node{Kind: syntax.KindConst, Value: tok.val, Start: tok.pos, End: tok.end}, nil
	case tArrow:
		return p.parseLambda()
	case tLBracket:
		return p.parseArray()
	case tLParen:
		p.next()
		p.skipNewlines()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipNewlines()
		close, err := p.expect(tRParen)
		if err != nil {
			return nil, err
		}
		inner.Start = tok.pos
		inner.End = close.end
		return inner, nil
	case tIdent:
		return p.parseIdentOrCall()
	default:
		return nil, fmt.Errorf("%s", p.errUnexpected())
	}
}

func (p *parser) parseIdentOrCall() (*syntax.Node, error) {
	tok := p.next()
	switch tok.val {
	case "true", "false":
		return &syntax.Node{Kind: syntax.KindBool, Value: tok.val, Start: tok.pos, End: tok.end}, nil
	case "nil":
		return &syntax.Node{Kind: syntax.KindNil, Value: tok.val, Start: tok.pos, End: tok.end}, nil
	}
	callish := p.at(tLParen) || p.startsBareArg() || p.at(tLBrace) ||
		(p.at(tDo) && p.bareArgDepth == 0)
	if !callish {
		return &syntax.Node{Kind: syntax.KindIdent, Value: tok.val, Start: tok.pos, End: tok.end}, nil
	}
	call := &syntax.Node{Kind: syntax.KindCall, Value: tok.val, Start: tok.pos, End: tok.end}
	return p.parseCallTail(call)
}

// startsBareArg reports whether the current token can begin a paren-less
// argument.
func (p *parser) startsBareArg() bool {
	switch p.cur().typ {
	case tString, tSymbol, tInt, tIdent, tConst, tLabel, tArrow, tLBracket:
		return true
	case tOp:
		v := p.cur().val
		return v == "*" || v == "**"
	}
	return false
}

// parseCallTail parses the arguments and optional block of call. The result
// is the call itself, or the enclosing block node when a block follows.
func (p *parser) parseCallTail(call *syntax.Node) (*syntax.Node, error) {
	switch {
	case p.at(tLParen):
		p.next()
		p.skipNewlines()
		for !p.at(tRParen) {
			arg, err := p.parseArg()
			if err != nil {
				return nil, err
			}
			call.Children = append(call.Children, arg)
			if _, ok := p.accept(tComma); !ok {
				break
			}
			p.skipNewlines()
		}
		p.skipNewlines()
		close, err := p.expect(tRParen)
		if err != nil {
			return nil, err
		}
		call.End = close.end
	case p.startsBareArg():
		p.bareArgDepth++
		for {
			arg, err := p.parseArg()
			if err != nil {
				p.bareArgDepth--
				return nil, err
			}
			call.Children = append(call.Children, arg)
			call.End = arg.End
			if _, ok := p.accept(tComma); !ok {
				break
			}
			p.skipNewlines()
		}
		p.bareArgDepth--
	}

	switch {
	case p.at(tDo) && p.bareArgDepth == 0:
		return p.parseBlock(call, tEnd)
	case p.at(tLBrace):
		return p.parseBlock(call, tRBrace)
	}
	return call, nil
}

// parseArg parses one argument: a pair, a splat, a hash literal or a plain
// expression. A `{` at argument position is always a hash literal: blocks
// only appear after the argument list, never inside it.
func (p *parser) parseArg() (*syntax.Node, error) {
	switch {
	case p.at(tLabel):
		tok := p.next()
		key := &syntax.Node{Kind: syntax.KindSymbol, Value: tok.val, Start: tok.pos, End: tok.end - 1}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &syntax.Node{
			Kind:     syntax.KindPair,
			Children: []*syntax.Node{key, val},
			Start:    tok.pos,
			End:      val.End,
		}, nil
	case p.at(tOp) && (p.cur().val == "*" || p.cur().val == "**"):
		tok := p.next()
		ex, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &syntax.Node{
			Kind:     syntax.KindSplat,
			Children: []*syntax.Node{ex},
			Start:    tok.pos,
			End:      ex.End,
		}, nil
	case p.at(tLBrace):
		return p.parseHash()
	}

	ex, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept(tRocket); ok {
		p.skipNewlines()
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &syntax.Node{
			Kind:     syntax.KindRocketPair,
			Children: []*syntax.Node{ex, val},
			Start:    ex.Start,
			End:      val.End,
		}, nil
	}
	return ex, nil
}

func (p *parser) parseHash() (*syntax.Node, error) {
	open := p.next()
	hash := &syntax.Node{Kind: syntax.KindHash, Start: open.pos}
	p.skipNewlines()
	for !p.at(tRBrace) {
		pair, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		hash.Children = append(hash.Children, pair)
		if _, ok := p.accept(tComma); !ok {
			break
		}
		p.skipNewlines()
	}
	p.skipNewlines()
	close, err := p.expect(tRBrace)
	if err != nil {
		return nil, err
	}
	hash.End = close.end
	return hash, nil
}

func (p *parser) parseArray() (*syntax.Node, error) {
	open := p.next()
	arr := &syntax.Node{Kind: syntax.KindArray, Start: open.pos}
	p.skipNewlines()
	for !p.at(tRBracket) {
		el, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		arr.Children = append(arr.Children, el)
		if _, ok := p.accept(tComma); !ok {
			break
		}
		p.skipNewlines()
	}
	p.skipNewlines()
	close, err := p.expect(tRBracket)
	if err != nil {
		return nil, err
	}
	arr.End = close.end
	return arr, nil
}

// parseBlock parses a `do … end` or `{ … }` block attached to call.
func (p *parser) parseBlock(call *syntax.Node, closer tokenType) (*syntax.Node, error) {
	savedDepth := p.bareArgDepth
	p.bareArgDepth = 0
	defer func() { p.bareArgDepth = savedDepth }()

	open := p.next()
	params, err := p.parseBlockParams(open.end)
	if err != nil {
		return nil, err
	}
	stmts, err := p.parseStmts(closer)
	if err != nil {
		return nil, err
	}
	close, err := p.expect(closer)
	if err != nil {
		return nil, err
	}
	body := &syntax.Node{Kind: syntax.KindBody, Children: stmts, Start: params.End, End: close.pos}
	if len(stmts) > 0 {
		body.Start = stmts[0].Start
		body.End = stmts[len(stmts)-1].End
	}
	return &syntax.Node{
		Kind:     syntax.KindBlock,
		Children: []*syntax.Node{call, params, body},
		Start:    call.Start,
		End:      close.end,
	}, nil
}

// parseBlockParams parses an optional `|a, b|` parameter list. The returned
// params node is zero-width at pos when no parameters are present.
func (p *parser) parseBlockParams(pos int) (*syntax.Node, error) {
	params := &syntax.Node{Kind: syntax.KindParams, Start: pos, End: pos}
	open, ok := p.accept(tPipe)
	if !ok {
		return params, nil
	}
	params.Start = open.pos
	for !p.at(tPipe) {
		name, err := p.expect(tIdent)
		if err != nil {
			return nil, err
		}
		params.Children = append(params.Children, &syntax.Node{
			Kind:  syntax.KindIdent,
			Value: name.val,
			Start: name.pos,
			End:   name.end,
		})
		if _, ok := p.accept(tComma); !ok {
			break
		}
	}
	close, err := p.expect(tPipe)
	if err != nil {
		return nil, err
	}
	params.End = close.end
	return params, nil
}

func (p *parser) parseLambda() (*syntax.Node, error) {
	arrow := p.next()
	params := &syntax.Node{Kind: syntax.KindParams, Start: arrow.end, End: arrow.end}
	if _, ok := p.accept(tLParen); ok {
		params.Start = p.cur().pos
		for !p.at(tRParen) {
			name, err := p.expect(tIdent)
			if err != nil {
				return nil, err
			}
			params.Children = append(params.Children, &syntax.Node{
				Kind:  syntax.KindIdent,
				Value: name.val,
				Start: name.pos,
				End:   name.end,
			})
			if _, ok := p.accept(tComma); !ok {
				break
			}
		}
		close, err := p.expect(tRParen)
		if err != nil {
			return nil, err
		}
		params.End = close.end
	}

	var closer tokenType
	switch {
	case p.at(tLBrace):
		closer = tRBrace
	case p.at(tDo):
		closer = tEnd
	default:
		return nil, fmt.Errorf("%s, want lambda body", p.errUnexpected())
	}

	savedDepth := p.bareArgDepth
	p.bareArgDepth = 0
	p.next()
	stmts, err := p.parseStmts(closer)
	if err != nil {
		p.bareArgDepth = savedDepth
		return nil, err
	}
	close, err := p.expect(closer)
	p.bareArgDepth = savedDepth
	if err != nil {
		return nil, err
	}
	body := &syntax.Node{Kind: syntax.KindBody, Children: stmts, Start: params.End, End: close.pos}
	if len(stmts) > 0 {
		body.Start = stmts[0].Start
		body.End = stmts[len(stmts)-1].End
	}
	return &syntax.Node{
		Kind:     syntax.KindLambda,
		Children: []*syntax.Node{params, body},
		Start:    arrow.pos,
		End:      close.end,
	}, nil
}
