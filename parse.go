package parsemath

import (
	"errors"
	"io"
	"strings"
)

// Expr   = BitOr
// BitOr  = BitAnd { '|' BitAnd }
// BitAnd = Sum { '&' Sum }
// Sum    = Term { ('+' | '-') Term }
// Term   = Power { ('*' | '/') Power }
// Power  = Unary [ '^' Power ]
// Unary  = '-' Unary | Atom
// Atom   = num | '(' Expr ')'

// Parser is a recursive-descent parser holding one token of lookahead.
type Parser struct {
	scan *Tokenizer
	// cur is the lookahead token.
	cur   Token
	cfg   parsecfg
	depth int
}

// NewParser creates a parser over a string and scans its first token. The
// only possible error is a LexError for that token.
func NewParser(src string, opts ...ParseOption) (*Parser, error) {
	return NewParserReader(strings.NewReader(src), opts...)
}

// NewParserReader creates a parser over a rune source and scans its first
// token.
func NewParserReader(src io.RuneScanner, opts ...ParseOption) (*Parser, error) {
	cfg := newParseCfg(opts)
	p := Parser{scan: lex(src, cfg), cfg: cfg}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Parse parses one complete expression. Unless the parser was created with
// IgnoreTrailing, the expression must extend to the end of the input.
func (p *Parser) Parse() (*Node, error) {
	n, err := p.binary(precOr)
	if err != nil {
		return nil, err
	}
	if p.cfg.trailing {
		return n, nil
	}
	switch tok := p.cur; tok.Kind {
	case TokenEOF:
		return n, nil
	case TokenRightParen:
		return nil, &BracketError{Col: tok.Pos, Right: ")"}
	default:
		return nil, &UnexpectedTokenError{Col: tok.Pos, Got: tok.Kind, Want: "operator or end of input"}
	}
}

// Parse parses an expression so it can be evaluated. The given options are
// applied in order.
func Parse(src string, opts ...ParseOption) (*Node, error) {
	return ParseReader(strings.NewReader(src), opts...)
}

// ParseReader parses an expression from a rune source.
func ParseReader(src io.RuneScanner, opts ...ParseOption) (*Node, error) {
	p, err := NewParserReader(src, opts...)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// advance scans the next token into the lookahead.
func (p *Parser) advance() error {
	tok, err := p.scan.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// Already past the end; keep reporting EOF.
			p.cur = Token{Kind: TokenEOF, Pos: p.cur.Pos}
			return nil
		}
		return err
	}
	p.cur = tok
	return nil
}

// enter records one more level of nesting. Callers must call leave when
// they finish the nested construct, even on error.
func (p *Parser) enter() error {
	p.depth++
	if p.cfg.maxDepth > 0 && p.depth > p.cfg.maxDepth {
		return &DepthError{Col: p.cur.Pos, Max: p.cfg.maxDepth}
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// Precedence levels of the left-associative binary operators, loosest first.
const (
	precOr = iota
	precAnd
	precSum
	precTerm
)

// binop gets the binary operator for a token kind and its precedence level.
// If there is no such operator, the result is NodeNone and -1.
func binop(k TokenKind) (NodeKind, int) {
	switch k {
	case TokenOr:
		return NodeOr, precOr
	case TokenAnd:
		return NodeAnd, precAnd
	case TokenAdd:
		return NodeAdd, precSum
	case TokenSubtract:
		return NodeSubtract, precSum
	case TokenMultiply:
		return NodeMultiply, precTerm
	case TokenDivide:
		return NodeDivide, precTerm
	default:
		return NodeNone, -1
	}
}

// binary parses a left-associative chain of operators at precedence prec,
// with operands from the next tighter level.
func (p *Parser) binary(prec int) (*Node, error) {
	if prec > precTerm {
		return p.power()
	}
	n, err := p.binary(prec + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, q := binop(p.cur.Kind)
		if q != prec {
			return n, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.binary(prec + 1)
		if err != nil {
			return nil, err
		}
		n = &Node{Kind: op, Left: n, Right: rhs}
	}
}

// power parses an exponentiation. The exponent recurses so that ^ is
// right-associative.
func (p *Parser) power() (*Node, error) {
	n, err := p.unary()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != TokenCaret {
		return n, nil
	}
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.power()
	if err != nil {
		return nil, err
	}
	return &Node{Kind: NodeCaret, Left: n, Right: rhs}, nil
}

func (p *Parser) unary() (*Node, error) {
	if p.cur.Kind != TokenSubtract {
		return p.atom()
	}
	defer p.leave()
	if err := p.enter(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	x, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &Node{Kind: NodeNegative, Left: x}, nil
}

func (p *Parser) atom() (*Node, error) {
	switch tok := p.cur; tok.Kind {
	case TokenNum:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Node{Kind: NodeNumber, Value: tok.Value}, nil
	case TokenLeftParen:
		defer p.leave()
		if err := p.enter(); err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.binary(precOr)
		if err != nil {
			return nil, err
		}
		switch end := p.cur; end.Kind {
		case TokenRightParen:
			if err := p.advance(); err != nil {
				return nil, err
			}
			return n, nil
		case TokenEOF:
			return nil, &BracketError{Col: tok.Pos, Left: "("}
		default:
			return nil, &UnexpectedTokenError{Col: end.Pos, Got: end.Kind, Want: `operator or ")"`}
		}
	case TokenEOF:
		return nil, &EmptyExpressionError{Col: tok.Pos}
	case TokenRightParen:
		return nil, &EmptyExpressionError{Col: tok.Pos, End: ")"}
	default:
		return nil, &UnexpectedTokenError{Col: tok.Pos, Got: tok.Kind, Want: `number or "("`}
	}
}
