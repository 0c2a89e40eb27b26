package parser

import (
	"fmt"
	"strings"

	"github.com/speclint/speclint/internal/syntax"
)

type tokenType int

const (
	tEOF tokenType = iota
	tNewline
	tSemicolon
	tIdent
	tConst
	tInt
	tString
	tSymbol
	tLabel // `key:` in a pair
	tComma
	tDot
	tLParen
	tRParen
	tLBrace
	tRBrace
	tLBracket
	tRBracket
	tPipe
	tDo
	tEnd
	tRocket // =>
	tArrow  // ->
	tOp     // catch-all operator token
)

var tokenNames = map[tokenType]string{
	tEOF:       "end of file",
	tNewline:   "newline",
	tSemicolon: "';'",
	tIdent:     "identifier",
	tConst:     "constant",
	tInt:       "number",
	tString:    "string",
	tSymbol:    "symbol",
	tLabel:     "label",
	tComma:     "','",
	tDot:       "'.'",
	tLParen:    "'('",
	tRParen:    "')'",
	tLBrace:    "'{'",
	tRBrace:    "'}'",
	tLBracket:  "'['",
	tRBracket:  "']'",
	tPipe:      "'|'",
	tDo:        "'do'",
	tEnd:       "'end'",
	tRocket:    "'=>'",
	tArrow:     "'->'",
	tOp:        "operator",
}

func (t tokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown token"
}

// token is one lexeme. pos/end are byte offsets, end exclusive. val holds
// the decoded content for strings and symbols and the raw text otherwise.
type token struct {
	typ tokenType
	val string
	pos int
	end int
}

type lexer struct {
	src      []byte
	pos      int
	tokens   []token
	comments []syntax.Comment
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// tokenize splits src into tokens, collecting comments on the side.
func tokenize(src []byte) ([]token, []syntax.Comment, error) {
	lx := &lexer{src: src}
	if err := lx.run(); err != nil {
		return nil, nil, err
	}
	return lx.tokens, lx.comments, nil
}

func (lx *lexer) run() error {
	for lx.pos < len(lx.src) {
		b := lx.src[lx.pos]
		switch {
		case b == ' ' || b == '\t' || b == '\r':
			lx.pos++
		case b == '\n':
			lx.emit(tNewline, "\n", lx.pos, lx.pos+1)
			lx.pos++
		case b == '#':
			lx.lexComment()
		case b == '\'' || b == '"':
			if err := lx.lexString(b); err != nil {
				return err
			}
		case b == ':':
			if err := lx.lexSymbol(); err != nil {
				return err
			}
		case isDigit(b):
			lx.lexNumber()
		case isIdentStart(b):
			lx.lexIdent()
		default:
			if err := lx.lexPunct(); err != nil {
				return err
			}
		}
	}
	lx.emit(tEOF, "", lx.pos, lx.pos)
	return nil
}

func (lx *lexer) emit(typ tokenType, val string, pos, end int) {
	lx.tokens = append(lx.tokens, token{typ: typ, val: val, pos: pos, end: end})
}

func (lx *lexer) peekAt(offset int) byte {
	if lx.pos+offset >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+offset]
}

func (lx *lexer) lexComment() {
	start := lx.pos
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
		lx.pos++
	}
	lx.comments = append(lx.comments, syntax.Comment{
		Start: start,
		End:   lx.pos,
		Text:  string(lx.src[start:lx.pos]),
	})
}

func (lx *lexer) lexString(quote byte) error {
	start := lx.pos
	lx.pos++
	var sb strings.Builder
	for lx.pos < len(lx.src) {
		b := lx.src[lx.pos]
		if b == '\\' && lx.pos+1 < len(lx.src) {
			sb.WriteByte(lx.src[lx.pos+1])
			lx.pos += 2
			continue
		}
		if b == quote {
			lx.pos++
			lx.emit(tString, sb.String(), start, lx.pos)
			return nil
		}
		if b == '\n' {
			return fmt.Errorf("offset %d: unterminated string literal", start)
		}
		sb.WriteByte(b)
		lx.pos++
	}
	return fmt.Errorf("offset %d: unterminated string literal", start)
}

func (lx *lexer) lexSymbol() error {
	start := lx.pos
	next := lx.peekAt(1)
	if next == '"' || next == '\'' {
		// :"quoted symbol"
		lx.pos++
		quote := lx.src[lx.pos]
		if err := lx.lexString(quote); err != nil {
			return err
		}
		last := &lx.tokens[len(lx.tokens)-1]
		last.typ = tSymbol
		last.pos = start
		return nil
	}
	if !isIdentStart(next) {
		return fmt.Errorf("offset %d: unexpected ':'", start)
	}
	lx.pos++
	for lx.pos < len(lx.src) && isIdentByte(lx.src[lx.pos]) {
		lx.pos++
	}
	if lx.pos < len(lx.src) && (lx.src[lx.pos] == '?' || lx.src[lx.pos] == '!') {
		lx.pos++
	}
	lx.emit(tSymbol, string(lx.src[start+1:lx.pos]), start, lx.pos)
	return nil
}

func (lx *lexer) lexNumber() {
	start := lx.pos
	for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
		lx.pos++
	}
	// a dot only belongs to the number when a digit follows; `3.times`
	// keeps the dot as a method-call token
	if lx.pos+1 < len(lx.src) && lx.src[lx.pos] == '.' && isDigit(lx.src[lx.pos+1]) {
		lx.pos++
		for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
			lx.pos++
		}
	}
	lx.emit(tInt, string(lx.src[start:lx.pos]), start, lx.pos)
}

func (lx *lexer) lexIdent() {
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentByte(lx.src[lx.pos]) {
		lx.pos++
	}
	if lx.pos < len(lx.src) && (lx.src[lx.pos] == '?' || lx.src[lx.pos] == '!') {
		lx.pos++
	}
	word := string(lx.src[start:lx.pos])

	// `key:` directly followed by the key name becomes a label unless the
	// colon starts a `::` scope operator
	if lx.pos < len(lx.src) && lx.src[lx.pos] == ':' && lx.peekAt(1) != ':' {
		lx.pos++
		lx.emit(tLabel, word, start, lx.pos)
		return
	}

	switch word {
	case "do":
		lx.emit(tDo, word, start, lx.pos)
	case "end":
		lx.emit(tEnd, word, start, lx.pos)
	default:
		if word[0] >= 'A' && word[0] <= 'Z' {
			lx.emit(tConst, word, start, lx.pos)
		} else {
			lx.emit(tIdent, word, start, lx.pos)
		}
	}
}

// two-byte operators that lex as a single tOp token
var doubleOps = map[string]bool{
	"==": true, "!=": true, "<=": true, ">=": true, "&&": true,
	"||": true, "**": true, "<<": true, ">>": true, "+=": true,
	"-=": true, "*=": true, "/=": true,
}

func (lx *lexer) lexPunct() error {
	start := lx.pos
	b := lx.src[lx.pos]
	switch b {
	case ',':
		lx.emitSingle(tComma)
	case '.':
		lx.emitSingle(tDot)
	case ';':
		lx.emitSingle(tSemicolon)
	case '(':
		lx.emitSingle(tLParen)
	case ')':
		lx.emitSingle(tRParen)
	case '{':
		lx.emitSingle(tLBrace)
	case '}':
		lx.emitSingle(tRBrace)
	case '[':
		lx.emitSingle(tLBracket)
	case ']':
		lx.emitSingle(tRBracket)
	case '|':
		if lx.peekAt(1) == '|' {
			lx.emitDouble(tOp)
		} else {
			lx.emitSingle(tPipe)
		}
	case '=':
		if lx.peekAt(1) == '>' {
			lx.emitDouble(tRocket)
		} else if lx.peekAt(1) == '=' {
			lx.emitDouble(tOp)
		} else {
			lx.emitSingle(tOp)
		}
	case '-':
		if lx.peekAt(1) == '>' {
			lx.emitDouble(tArrow)
		} else if lx.peekAt(1) == '=' {
			lx.emitDouble(tOp)
		} else {
			lx.emitSingle(tOp)
		}
	case '+', '*', '/', '<', '>', '!', '&', '%', '^':
		two := string(lx.src[start : start+1])
		if lx.pos+1 < len(lx.src) {
			two = string(lx.src[start : start+2])
		}
		if doubleOps[two] {
			lx.emitDouble(tOp)
		} else {
			lx.emitSingle(tOp)
		}
	default:
		return fmt.Errorf("offset %d: unexpected character %q", start, string(b))
	}
	return nil
}

func (lx *lexer) emitSingle(typ tokenType) {
	lx.emit(typ, string(lx.src[lx.pos:lx.pos+1]), lx.pos, lx.pos+1)
	lx.pos++
}

func (lx *lexer) emitDouble(typ tokenType) {
	lx.emit(typ, string(lx.src[lx.pos:lx.pos+2]), lx.pos, lx.pos+2)
	lx.pos += 2
}
