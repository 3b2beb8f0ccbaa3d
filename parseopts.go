package parsemath

// DefaultMaxDepth is the nesting limit used when no MaxDepth option is given.
const DefaultMaxDepth = 1000

// ParseOption is an option for tokenizing and parsing.
type ParseOption interface {
	parseOption(parsecfg) parsecfg
}

type (
	strictopt struct{}
	depthopt  int
	trailopt  struct{}
	presetopt []ParseOption
)

// parsecfg holds the configuration for one parse.
type parsecfg struct {
	// strict makes whitespace a lexical error.
	strict bool
	// maxDepth is the maximum nesting of groups, negations, and
	// exponentiations. Zero means no limit.
	maxDepth int
	// trailing allows input to follow a complete expression.
	trailing bool
}

func newParseCfg(opts []ParseOption) parsecfg {
	p := parsecfg{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	return p
}

// Strict tells the tokenizer to reject whitespace instead of skipping it.
func Strict() ParseOption {
	return strictopt{}
}

func (strictopt) parseOption(p parsecfg) parsecfg {
	p.strict = true
	return p
}

// MaxDepth limits how deeply parenthesized groups, negations, and chains of
// exponentiation may nest. Deeper expressions fail to parse with a
// DepthError. A limit of 0 disables the check. Panics if n is negative.
func MaxDepth(n int) ParseOption {
	if n < 0 {
		panic("parsemath: negative max depth")
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsecfg) parsecfg {
	p.maxDepth = int(o)
	return p
}

// IgnoreTrailing tells the parser to stop after the first complete
// expression without checking that the rest of the input is empty. For
// example, "1+2)3" parses as "1+2".
func IgnoreTrailing() ParseOption {
	return trailopt{}
}

func (trailopt) parseOption(p parsecfg) parsecfg {
	p.trailing = true
	return p
}

// Preset bundles options so that they can be passed around as one. Options
// given after a preset override the preset's settings.
func Preset(opts ...ParseOption) ParseOption {
	return append(presetopt(nil), opts...)
}

func (o presetopt) parseOption(p parsecfg) parsecfg {
	for _, opt := range o {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	return p
}
