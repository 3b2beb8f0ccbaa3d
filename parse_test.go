package parsemath

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(1)", "1"},
		{"multi", "((((1))))", "1"},
		{"spaces", " 1 +\t2 ", "1+2"},

		{"neg", "-1", "(-(1))"},
		{"add", "1+2", "((1)+(2))"},
		{"sub", "1-2", "((1)-(2))"},
		{"mul", "1*2", "((1)*(2))"},
		{"div", "1/2", "((1)/(2))"},
		{"pow", "1^2", "((1)^(2))"},
		{"and", "1&2", "((1)&(2))"},
		{"or", "1|2", "((1)|(2))"},

		{"add4", "1+2+3+4", "((1+2)+3)+4"},
		{"sub4", "1-2-3-4", "((1-2)-3)-4"},
		{"mul4", "1*2*3*4", "((1*2)*3)*4"},
		{"div4", "1/2/3/4", "((1/2)/3)/4"},
		{"pow4", "1^2^3^4", "1^(2^(3^4))"},
		{"and4", "1&2&3&4", "((1&2)&3)&4"},
		{"or4", "1|2|3|4", "((1|2)|3)|4"},
		{"addsub", "1+2-3+4", "((1+2)-3)+4"},
		{"muldiv", "1*2/3*4", "((1*2)/3)*4"},

		{"desc", "1^2*3+4", "((1^2)*3)+4"},
		{"asc", "1+2*3^4", "1+(2*(3^4))"},
		{"orand", "1|2&3", "1|(2&3)"},
		{"andor", "1&2|3", "(1&2)|3"},
		{"addor", "3+3|4", "(3+3)|4"},
		{"andadd", "1&2+3", "1&(2+3)"},
		{"bitmix", "1|2&3+4*5^6", "1|(2&(3+(4*(5^6))))"},
		{"mixed", "3+2-1*5/4", "(3+2)-((1*5)/4)"},

		{"negneg", "--1", "-(-1)"},
		{"negsub", "-1-1", "(-1)-1"},
		{"negpow", "-2^2", "(-2)^2"},
		{"powneg", "2^-1", "2^(-1)"},
		{"pownegpow", "2^-3^-4", "2^(-(3)^(-4))"},
		{"pownegneg", "2^--3", "2^(-(-3))"},
		{"negparen", "-(1+2)", "-((1)+(2))"},
		{"negmul", "-1*-2", "(-1)*(-2)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := Parse(c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			if diff := cmp.Diff(b, a); diff != "" {
				t.Errorf("mismatched AST for %q and %q (-%s +%s):\n%s", c.a, c.b, c.b, c.a, diff)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	cases := []struct {
		name string
		src  string
		n    *Node
	}{
		{"num", "34.5", Num(34.5)},
		{"sum", "1+2-3", Binary(NodeSubtract, Binary(NodeAdd, Num(1), Num(2)), Num(3))},
		{"pow-right", "2^3^2", Binary(NodeCaret, Num(2), Binary(NodeCaret, Num(3), Num(2)))},
		{"neg-base", "-2^2", Binary(NodeCaret, Neg(Num(2)), Num(2))},
		{"or-last", "3+3|4", Binary(NodeOr, Binary(NodeAdd, Num(3), Num(3)), Num(4))},
		{"paren", "(1+2)*3", Binary(NodeMultiply, Binary(NodeAdd, Num(1), Num(2)), Num(3))},
		{"negneg", "--5", Neg(Neg(Num(5)))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if diff := cmp.Diff(c.n, a); diff != "" {
				t.Errorf("mismatched AST from %q (-want +got):\n%s", c.src, diff)
			}
		})
	}
}

func TestNodeString(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "(1)"},
		{"frac", "0.25", "(0.25)"},
		{"neg", "-1", "(-(1))"},
		{"add", "1+2", "((1) + (2))"},
		{"pow", "2^3^2", "((2) ^ ((3) ^ (2)))"},
		{"bits", "1|2&3", "((1) | ((2) & (3)))"},
		{"big", "123456789012", "(123456789012)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := a.String(); got != c.want {
				t.Errorf("%q formats as %q, want %q", c.src, got, c.want)
			}
		})
	}
	var nilnode *Node
	if s := nilnode.String(); s != "$" {
		t.Errorf("nil node formats as %q", s)
	}
	if s := (&Node{Kind: NodeAdd, Left: Num(1)}).String(); s != "((1) + $)" {
		t.Errorf("node with missing child formats as %q", s)
	}
}

func TestNodeStringRoundTrip(t *testing.T) {
	cases := []string{
		"1", "-1", "1+2-3", "3+2-1*5/4", "3+3|4", "2^3^2", "-2^2", "2^-1",
		"((1+2)*(3-4))/5", "1|2&3+4*5^6", "--1", "-(1+2)^-(3&4)",
		"1.5*0.125/1000000", "7&3|8",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			a, err := Parse(src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", src, err)
			}
			s := a.String()
			b, err := Parse(s)
			if err != nil {
				t.Fatalf("%q -> %q failed to parse: %v", src, s, err)
			}
			if diff := cmp.Diff(a, b); diff != "" {
				t.Errorf("mismatched AST for %q and %q:\n%s", src, s, diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		kind error
		pos  int
		res  []string
	}{
		{"empty", "", new(EmptyExpressionError), ErrSyntax, 1, []string{`(?i)\bno\b.*\bexpression\b`}},
		{"emptyparen", "()", new(EmptyExpressionError), ErrSyntax, 2, []string{`(?i)\bno\b.*\bexpression\b`, `\)`}},
		{"emptyoperand", "1*", new(EmptyExpressionError), ErrSyntax, 3, []string{`(?i)\bno\b.*\bexpression\b`, `(?i)\bend\b`}},
		{"emptyunary", "1*-", new(EmptyExpressionError), ErrSyntax, 4, []string{`(?i)\bend\b`}},
		{"emptyparenop", "(1+)", new(EmptyExpressionError), ErrSyntax, 4, []string{`\)`}},
		{"left", "(1+2", new(BracketError), ErrSyntax, 1, []string{`(?i)\bbracket\b`, `\(`}},
		{"leftnested", "((1)", new(BracketError), ErrSyntax, 1, []string{`(?i)\bopen bracket\b`}},
		{"right", "1)", new(BracketError), ErrSyntax, 2, []string{`(?i)\bbracket\b`, `\)`}},
		{"rightextra", "(1))", new(BracketError), ErrSyntax, 4, []string{`(?i)\bclose bracket\b`}},
		{"leadop", "*1", new(UnexpectedTokenError), ErrSyntax, 1, []string{`(?i)\bunexpected\b`, `"\*"`, `(?i)\bnumber\b`}},
		{"plus", "+1", new(UnexpectedTokenError), ErrSyntax, 1, []string{`"\+"`}},
		{"doubleop", "1+*2", new(UnexpectedTokenError), ErrSyntax, 3, []string{`"\*"`}},
		{"trailingnum", "1 2", new(UnexpectedTokenError), ErrSyntax, 3, []string{`(?i)\bnumber\b`, `(?i)\bend of input\b`}},
		{"trailingparen", "2(3)", new(UnexpectedTokenError), ErrSyntax, 2, []string{`"\("`}},
		{"parennum", "(1 2)", new(UnexpectedTokenError), ErrSyntax, 4, []string{`"\)"`}},
		{"lexer", "2^(-$)", new(LexError), ErrLexical, 5, []string{`\$`}},
		{"lexfirst", "#", new(LexError), ErrLexical, 1, []string{`#`}},
		{"lexnum", "1.2.3+4", new(LexError), ErrLexical, 4, []string{`(?i)\bnumber\b`}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("wrong error type from %q: want %T, got %T", c.src, c.err, err)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, c.kind) {
				t.Errorf("error %v from %q is not %v", err, c.src, c.kind)
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Fatalf("error %#v from %q is not an InputError", err, c.src)
			}
			if ie.Pos() != c.pos {
				t.Errorf("error from %q at position %d, want %d", c.src, ie.Pos(), c.pos)
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
		})
	}
}

func TestNewParserLexError(t *testing.T) {
	p, err := NewParser("#1")
	if p != nil {
		t.Errorf("got parser for bad first token")
	}
	if !errors.Is(err, ErrLexical) {
		t.Errorf("want lexical error, got %v", err)
	}
	// Errors after the first token are reported by Parse.
	p, err = NewParser("1+#")
	if err != nil {
		t.Fatalf("NewParser failed early: %v", err)
	}
	if _, err := p.Parse(); !errors.Is(err, ErrLexical) {
		t.Errorf("want lexical error from Parse, got %v", err)
	}
}

func TestIgnoreTrailing(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1+2)3", "1+2"},
		{"1 2", "1"},
		{"(4)(5)", "4"},
		{"7", "7"},
	}
	for _, c := range cases {
		a, err := Parse(c.src, IgnoreTrailing())
		if err != nil {
			t.Errorf("%q failed to parse ignoring trailing input: %v", c.src, err)
			continue
		}
		b, err := Parse(c.want)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", c.want, err)
		}
		if diff := cmp.Diff(b, a); diff != "" {
			t.Errorf("%q parsed wrong ignoring trailing input:\n%s", c.src, diff)
		}
		if _, err := Parse(c.src); c.src != c.want && !errors.Is(err, ErrSyntax) {
			t.Errorf("%q parsed without IgnoreTrailing: %v", c.src, err)
		}
	}
}

func TestMaxDepth(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		depth int
		ok    bool
	}{
		{"parens-ok", strings.Repeat("(", 3) + "1" + strings.Repeat(")", 3), 3, true},
		{"parens-deep", strings.Repeat("(", 4) + "1" + strings.Repeat(")", 4), 3, false},
		{"neg-ok", "---1", 3, true},
		{"neg-deep", "----1", 3, false},
		{"pow-ok", "2^2^2^2", 3, true},
		{"pow-deep", "2^2^2^2^2", 3, false},
		{"mixed-deep", "-(2^(1))", 3, false},
		{"sum-long", strings.Repeat("1+", 5000) + "1", 3, true},
		{"unlimited", strings.Repeat("(", 5000) + "1" + strings.Repeat(")", 5000), 0, true},
		{"siblings", "(1)+(2)+((3))", 2, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.src, MaxDepth(c.depth))
			if c.ok {
				if err != nil {
					t.Errorf("failed to parse with max depth %d: %v", c.depth, err)
				}
				return
			}
			var de *DepthError
			if !errors.As(err, &de) {
				t.Fatalf("want *DepthError, got %#v", err)
			}
			if de.Max != c.depth {
				t.Errorf("error reports max %d, want %d", de.Max, c.depth)
			}
			if !errors.Is(err, ErrTooComplex) {
				t.Errorf("%v is not ErrTooComplex", err)
			}
		})
	}

	deep := strings.Repeat("(", DefaultMaxDepth+1) + "1" + strings.Repeat(")", DefaultMaxDepth+1)
	if _, err := Parse(deep); !errors.Is(err, ErrTooComplex) {
		t.Errorf("default depth limit not applied: %v", err)
	}
}

func TestPreset(t *testing.T) {
	preset := Preset(Strict(), MaxDepth(1))
	if _, err := Parse("1 + 1", preset); !errors.Is(err, ErrLexical) {
		t.Errorf("preset did not apply Strict: %v", err)
	}
	if _, err := Parse("((1))", preset); !errors.Is(err, ErrTooComplex) {
		t.Errorf("preset did not apply MaxDepth: %v", err)
	}
	if _, err := Parse("((1))", preset, MaxDepth(2)); err != nil {
		t.Errorf("later option did not override preset: %v", err)
	}
}

func TestParseReaderContinues(t *testing.T) {
	p, err := NewParser("1+2")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Parse(); err != nil {
		t.Fatal(err)
	}
	// The input is consumed, so a second parse finds nothing.
	var ee *EmptyExpressionError
	if _, err := p.Parse(); !errors.As(err, &ee) {
		t.Errorf("second parse gave %#v, want *EmptyExpressionError", err)
	}
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"descasc", "1^2*3+4+5*6^7"},
		{"descasc-parens", "(((1^2)*3)+4)+5*(6^7)"},
		{"ascdesc", "1+2*3^4^5*6+7"},
		{"bits", "1|2&3|4&5"},
		{"nums", "1.5^1.25*11.75+0.125+0.5*3.5^2.25"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			var src strings.Reader
			for i := 0; i < b.N; i++ {
				src.Reset(c.src)
				ParseReader(&src)
			}
		})
	}
}
