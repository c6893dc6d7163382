package intellisense

import (
	"slices"

	"umlsense/internal/grammar"
	"umlsense/internal/token"
)

// Candidates is what the grammar accepts at the caret.
type Candidates struct {
	// Tokens maps an expected kind to the kinds that must follow it on the
	// same path (e.g. ABSTRACT -> [CLASS]).
	Tokens map[token.Kind][]token.Kind
	// Rules maps an expected preferred rule to the rule stack that led to it.
	Rules map[grammar.RuleID][]grammar.RuleID
}

// Empty reports whether nothing is expected.
func (c Candidates) Empty() bool {
	return len(c.Tokens) == 0 && len(c.Rules) == 0
}

// HasRule reports whether r was collected.
func (c Candidates) HasRule(r grammar.RuleID) bool {
	_, ok := c.Rules[r]
	return ok
}

// CollectOptions configures Collect.
type CollectOptions struct {
	// Entry is the rule the tree was parsed with.
	Entry grammar.RuleID
	// Ignored kinds never become candidates.
	Ignored []token.Kind
	// Preferred rules are reported as rules instead of being expanded into
	// their tokens.
	Preferred []grammar.RuleID
}

// DefaultIgnored lists the kinds that are syntactically present but never
// worth suggesting.
var DefaultIgnored = []token.Kind{
	token.EOF, token.WS, token.AnythingElse, token.Newline,
	token.AbstractMod, token.StaticMod,
	token.Colon, token.Comma,
	token.BlockComment, token.LineComment,
	token.LParen, token.LCurly, token.LSquare,
	token.RParen, token.RCurly, token.RSquare,
}

// DefaultPreferred asks for class-name references as a rule.
var DefaultPreferred = []grammar.RuleID{grammar.RuleClassName}

// DefaultCollectOptions returns the options used by completion.
func DefaultCollectOptions() CollectOptions {
	return CollectOptions{
		Entry:     grammar.RuleUml,
		Ignored:   DefaultIgnored,
		Preferred: DefaultPreferred,
	}
}

// Collect walks the grammar from its entry rule over the default-channel
// tokens up to caretIndex and records every token kind and preferred rule
// that could start at the caret. caretIndex is a stream index; hidden tokens
// are skipped forward to the next default token.
//
// Every path that reaches the caret counts, not only the one the tree took.
// On an empty line inside `class Foo {` the opening line also parses as a
// junk_line, so statement starters (class, title, enduml, class names) are
// collected next to the member starters.
func Collect(tokens []token.Token, caretIndex int, opts CollectOptions) Candidates {
	c := &collector{
		ignored:   make(map[token.Kind]bool, len(opts.Ignored)),
		preferred: make(map[grammar.RuleID]bool, len(opts.Preferred)),
		memo:      make(map[memoKey][]int),
		out: Candidates{
			Tokens: make(map[token.Kind][]token.Kind),
			Rules:  make(map[grammar.RuleID][]grammar.RuleID),
		},
	}
	for _, k := range opts.Ignored {
		c.ignored[k] = true
	}
	for _, r := range opts.Preferred {
		c.preferred[r] = true
	}
	for i := range tokens {
		if tokens[i].Channel == token.DefaultChannel {
			c.kinds = append(c.kinds, tokens[i].Kind)
			if tokens[i].Index < caretIndex {
				c.caret = len(c.kinds)
			}
		}
	}
	if len(c.kinds) == 0 {
		return c.out
	}
	c.caret = min(c.caret, len(c.kinds)-1)

	c.ref(opts.Entry, []int{0})
	return c.out
}

type memoKey struct {
	rule  grammar.RuleID
	start int
}

type collector struct {
	kinds     []token.Kind // default-channel kinds, EOF last
	caret     int          // position in kinds
	ignored   map[token.Kind]bool
	preferred map[grammar.RuleID]bool
	memo      map[memoKey][]int
	stack     []grammar.RuleID
	out       Candidates
}

// eval returns the set of positions reachable after matching e from any of
// ps. Positions never pass the caret: a token expected at the caret is
// recorded and the path ends there.
func (c *collector) eval(e grammar.Expr, ps []int, follow []token.Kind) []int {
	if len(ps) == 0 {
		return nil
	}
	switch x := e.(type) {
	case grammar.Tok:
		var out []int
		for _, p := range ps {
			switch {
			case p == c.caret:
				c.record(x.Kind, follow)
			case p < len(c.kinds) && c.kinds[p] == x.Kind && x.Kind != token.EOF:
				out = append(out, p+1)
			}
		}
		return out
	case grammar.NotTok:
		var out []int
		for _, p := range ps {
			if p != c.caret && p < len(c.kinds) && !x.Excludes(c.kinds[p]) && c.kinds[p] != token.EOF {
				out = append(out, p+1)
			}
		}
		return out
	case grammar.Peek:
		var out []int
		for _, p := range ps {
			if p != c.caret && p < len(c.kinds) && c.kinds[p] == x.Kind {
				out = append(out, p)
			}
		}
		return out
	case grammar.Cut:
		return ps
	case grammar.Ref:
		return c.ref(x.Rule, ps)
	case grammar.Seq:
		cur := ps
		for i, item := range x.Items {
			var f []token.Kind
			if _, ok := item.(grammar.Tok); ok {
				f = c.following(x.Items[i+1:])
			}
			cur = c.eval(item, cur, f)
			if len(cur) == 0 {
				return nil
			}
		}
		return cur
	case grammar.Alt:
		var out []int
		for _, a := range x.Alts {
			out = union(out, c.eval(a, ps, follow))
		}
		return out
	case grammar.Opt:
		return union(ps, c.eval(x.X, ps, follow))
	case grammar.Star:
		return c.repeat(x.X, ps, follow)
	case grammar.Plus:
		return c.repeat(x.X, c.eval(x.X, ps, follow), follow)
	}
	return nil
}

func (c *collector) repeat(e grammar.Expr, ps []int, follow []token.Kind) []int {
	all := union(nil, ps)
	frontier := all
	for len(frontier) > 0 {
		next := c.eval(e, frontier, follow)
		frontier = frontier[:0:0]
		for _, p := range next {
			if !slices.Contains(all, p) {
				frontier = append(frontier, p)
			}
		}
		all = union(all, frontier)
	}
	return all
}

func (c *collector) ref(r grammar.RuleID, ps []int) []int {
	var out []int
	for _, p := range ps {
		if p == c.caret && c.preferred[r] {
			c.recordRule(r)
			continue
		}
		key := memoKey{rule: r, start: p}
		res, seen := c.memo[key]
		if !seen {
			// in progress: a recursive call at the same start matches nothing
			c.memo[key] = nil
			c.stack = append(c.stack, r)
			res = c.eval(grammar.Body(r), []int{p}, nil)
			c.stack = c.stack[:len(c.stack)-1]
			c.memo[key] = res
		}
		out = union(out, res)
	}
	return out
}

// following collects the plain tokens that must come next in a sequence.
func (c *collector) following(rest []grammar.Expr) []token.Kind {
	var out []token.Kind
	for _, item := range rest {
		t, ok := item.(grammar.Tok)
		if !ok || c.ignored[t.Kind] {
			break
		}
		out = append(out, t.Kind)
	}
	return out
}

func (c *collector) record(k token.Kind, follow []token.Kind) {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if c.preferred[c.stack[i]] {
			c.recordRule(c.stack[i])
			return
		}
	}
	if c.ignored[k] {
		return
	}
	if _, ok := c.out.Tokens[k]; ok {
		return
	}
	c.out.Tokens[k] = slices.Clone(follow)
}

func (c *collector) recordRule(r grammar.RuleID) {
	if _, ok := c.out.Rules[r]; ok {
		return
	}
	c.out.Rules[r] = slices.Clone(c.stack)
}

// union returns the sorted, duplicate-free merge of two position sets.
// Neither argument is modified: memoised results are shared.
func union(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	for _, p := range b {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	return out
}
