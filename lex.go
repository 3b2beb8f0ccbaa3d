package parsemath

import (
	"errors"
	"io"
	"iter"
	"strconv"
	"strings"
	"unicode"
)

// Token is a single lexical unit of an expression.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Value is the value of a TokenNum. It is zero for other kinds.
	Value float64
	// Pos is the column of the first rune of the token, counting from 1.
	Pos int
}

func (t Token) String() string {
	s := t.Kind.String()
	if t.Kind == TokenNum {
		s += ":" + strconv.FormatFloat(t.Value, 'g', -1, 64)
	}
	return s + "@" + strconv.Itoa(t.Pos)
}

// TokenKind identifies the type of a token.
type TokenKind int

const (
	TokenNone TokenKind = iota
	// TokenEOF indicates the end of the input.
	TokenEOF
	// TokenNum is a number.
	TokenNum

	TokenAdd
	TokenSubtract
	TokenMultiply
	TokenDivide
	TokenCaret
	TokenLeftParen
	TokenRightParen
	TokenAnd
	TokenOr
)

var tokenNames = [...]string{
	TokenNone:       "None",
	TokenEOF:        "EOF",
	TokenNum:        "Num",
	TokenAdd:        "Add",
	TokenSubtract:   "Subtract",
	TokenMultiply:   "Multiply",
	TokenDivide:     "Divide",
	TokenCaret:      "Caret",
	TokenLeftParen:  "LeftParen",
	TokenRightParen: "RightParen",
	TokenAnd:        "And",
	TokenOr:         "Or",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// describe names the token kind the way it appears in error messages.
func (k TokenKind) describe() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenNum:
		return "number"
	}
	if i := strings.IndexByte(opkinds, byte(k)); i >= 0 {
		return strconv.Quote(Operators[i : i+1])
	}
	return k.String()
}

// Operators contains the characters which are lexed as single-character
// tokens, including parentheses.
const Operators = "+-*/^()&|"

// opkinds holds the token kind for each byte of Operators.
var opkinds = string([]byte{
	byte(TokenAdd),
	byte(TokenSubtract),
	byte(TokenMultiply),
	byte(TokenDivide),
	byte(TokenCaret),
	byte(TokenLeftParen),
	byte(TokenRightParen),
	byte(TokenAnd),
	byte(TokenOr),
})

// Tokenizer scans tokens from an expression one at a time.
type Tokenizer struct {
	src    io.RuneScanner
	buf    strings.Builder
	rune   int
	strict bool
	eof    bool
	err    error
}

// NewTokenizer creates a tokenizer over a string. Only options that affect
// scanning, i.e. Strict, have any effect.
func NewTokenizer(src string, opts ...ParseOption) *Tokenizer {
	return NewTokenizerReader(strings.NewReader(src), opts...)
}

// NewTokenizerReader creates a tokenizer over a rune source.
func NewTokenizerReader(src io.RuneScanner, opts ...ParseOption) *Tokenizer {
	return lex(src, newParseCfg(opts))
}

func lex(src io.RuneScanner, cfg parsecfg) *Tokenizer {
	return &Tokenizer{
		src:    src,
		rune:   1,
		strict: cfg.strict,
	}
}

// readRune reads a rune from the src and updates the tokenizer's position.
func (l *Tokenizer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the tokenizer's
// position. Panics if unreading returns an error.
func (l *Tokenizer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// Next scans the next token from the input. The first time the input runs
// out, the result is a TokenEOF token with a nil error. After that, the
// result is an empty token with io.EOF. Once Next returns any other error,
// it returns the same error on every later call.
func (l *Tokenizer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	if l.eof {
		return Token{}, io.EOF
	}
	tok, err := l.next()
	if err != nil {
		l.err = err
	}
	return tok, err
}

func (l *Tokenizer) next() (Token, error) {
	defer l.buf.Reset()
	tok := Token{Pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.Kind = TokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case !l.strict && unicode.IsSpace(r):
			tok.Pos++
			continue
		case '0' <= r && r <= '9':
			l.unreadRune()
			v, err := l.scanNum()
			if err != nil {
				return tok, err
			}
			tok.Kind = TokenNum
			tok.Value = v
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.Kind = TokenKind(opkinds[k])
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

// scanNum scans a run of digits containing at most one decimal point.
func (l *Tokenizer) scanNum() (float64, error) {
	var dot bool
scan:
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}
		switch {
		case '0' <= r && r <= '9':
		case r == '.':
			if dot {
				l.buf.WriteRune(r)
				return 0, l.error("number")
			}
			dot = true
		default:
			l.unreadRune()
			break scan
		}
		l.buf.WriteRune(r)
	}
	v, err := strconv.ParseFloat(l.buf.String(), 64)
	if err != nil {
		// Out of range literals parse as infinity, which we keep.
		var ne *strconv.NumError
		if !errors.As(err, &ne) || !errors.Is(ne.Err, strconv.ErrRange) {
			return 0, l.error("number")
		}
	}
	return v, nil
}

func (l *Tokenizer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune - 1,
	}
}

// Tokens returns the sequence of tokens in src through the TokenEOF token.
// If scanning fails, the sequence ends after yielding the error.
func Tokens(src string, opts ...ParseOption) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		l := NewTokenizer(src, opts...)
		for {
			tok, err := l.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// Tokenize scans all tokens in src, including the final TokenEOF.
func Tokenize(src string, opts ...ParseOption) ([]Token, error) {
	var r []Token
	for tok, err := range Tokens(src, opts...) {
		if err != nil {
			return r, err
		}
		r = append(r, tok)
	}
	return r, nil
}

// LexError indicates an invalid token. It implements InputError and
// unwraps to ErrLexical.
type LexError struct {
	// Text is the token the tokenizer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the tokenizer was scanning. This is "number"
	// or the empty string if a token kind hadn't been decided.
	Kind string
	// Col is the column of the invalid rune.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + strconv.Quote(err.Text)
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + strconv.Quote(err.Text)
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Unwrap() error {
	return ErrLexical
}
