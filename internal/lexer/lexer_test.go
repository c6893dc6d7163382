package lexer_test

import (
	"strings"
	"testing"

	"umlsense/internal/lexer"
	"umlsense/internal/source"
	"umlsense/internal/token"
)

type collect struct {
	kinds []string
	msgs  []string
}

func (c *collect) Report(kind string, _ source.Span, msg string) {
	c.kinds = append(c.kinds, kind)
	c.msgs = append(c.msgs, msg)
}

func defaultKinds(toks []token.Token) []token.Kind {
	var out []token.Kind
	for _, t := range toks {
		if t.Channel == token.DefaultChannel {
			out = append(out, t.Kind)
		}
	}
	return out
}

func expectKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	got := defaultKinds(lexer.Tokenize(src, lexer.Options{}))
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", src, i, got[i], want[i], got)
		}
	}
}

func TestMarkersAndKeywords(t *testing.T) {
	expectKinds(t, "@startuml\nabstract class Foo\n@enduml",
		token.StartUml, token.Newline, token.KwAbstract, token.KwClass, token.Ident, token.Newline, token.EndUml)
	expectKinds(t, "Class interface enum extends implements title",
		token.Ident, token.KwInterface, token.KwEnum, token.KwExtends, token.KwImplements, token.KwTitle)
	expectKinds(t, "@startumlx", token.AnythingElse, token.Ident)
}

func TestConnectors(t *testing.T) {
	for _, c := range []string{"--", "..", "-->", "<--", "--*", "*--", "--o", "o--", "<|--", "--|>", "..|>", "<|..",
		"*-->", "<--*", "o-->", "<--o", ".", "->", "<-", "-*", "*-", "-o", "o-", "<|-", "-|>", ".|>", "<|.",
		"*->", "<-*", "o->", "<-o"} {
		toks := lexer.Tokenize("A "+c+" B", lexer.Options{})
		kinds := defaultKinds(toks)
		if len(kinds) != 4 || kinds[1] != token.Connector {
			t.Fatalf("%q: got %v", c, kinds)
		}
		var conn string
		for _, tk := range toks {
			if tk.Kind == token.Connector {
				conn = tk.Text
			}
		}
		if conn != c {
			t.Fatalf("connector text %q, want %q", conn, c)
		}
	}
}

func TestMinusAndTailDisambiguation(t *testing.T) {
	expectKinds(t, "-string privateVariable", token.Minus, token.Ident, token.Ident)
	expectKinds(t, "Foo--oBar", token.Ident, token.Connector, token.Ident)
	expectKinds(t, "Foo--o Bar", token.Ident, token.Connector, token.Ident)
	expectKinds(t, "oval", token.Ident)
}

func TestMembersAndModifiers(t *testing.T) {
	expectKinds(t, "+{static} int X", token.Plus, token.StaticMod, token.Ident, token.Ident)
	expectKinds(t, "#{abstract} char m(int p)",
		token.Hash, token.AbstractMod, token.Ident, token.Ident, token.LParen, token.Ident, token.Ident, token.RParen)
	expectKinds(t, "~void f()", token.Tilde, token.Ident, token.Ident, token.LParen, token.RParen)
	expectKinds(t, "String[] names", token.Ident, token.LSquare, token.RSquare, token.Ident)
	expectKinds(t, "{{ }} { }", token.EmbedOpen, token.EmbedClose, token.LCurly, token.RCurly)
	expectKinds(t, `class A <<Entity>> "x"`, token.KwClass, token.Ident, token.Stereotype, token.String)
}

func TestCommentsAreHidden(t *testing.T) {
	src := "class Foo 'comment\n// other\n/' block\n'/ class"
	expectKinds(t, src, token.KwClass, token.Ident, token.Newline, token.Newline, token.KwClass)
}

func TestRoundTripAndSingleEOF(t *testing.T) {
	inputs := []string{
		"",
		"lorem ipsum\n\n@startuml\nclass Foo {\n  +int x\n}\n@enduml\n",
		"\x00\xff@@@ <<< ¿ünïcode? \"open\n/' never closed",
		"A <|-- B : extends\r\n",
	}
	for _, in := range inputs {
		toks := lexer.Tokenize(in, lexer.Options{})
		var sb strings.Builder
		eofs := 0
		for i, tk := range toks {
			if tk.Index != i {
				t.Fatalf("%q: token %d has index %d", in, i, tk.Index)
			}
			if tk.Kind == token.EOF {
				eofs++
			}
			sb.WriteString(tk.Text)
		}
		if eofs != 1 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("%q: expected exactly one trailing EOF, got %d", in, eofs)
		}
		if sb.String() != in {
			t.Fatalf("round trip mismatch: %q != %q", sb.String(), in)
		}
	}
}

func TestLineAndColumn(t *testing.T) {
	toks := lexer.Tokenize("ab\n  ünï cd", lexer.Options{})
	// ab, \n, WS, ünï, WS, cd, EOF
	want := []struct{ line, col int }{{1, 0}, {1, 2}, {2, 0}, {2, 2}, {2, 5}, {2, 6}, {2, 8}}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens: %v", len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Line != w.line || toks[i].Column != w.col {
			t.Fatalf("token %d %v at %d:%d, want %d:%d", i, toks[i], toks[i].Line, toks[i].Column, w.line, w.col)
		}
	}
}

func TestUnterminatedReported(t *testing.T) {
	rep := &collect{}
	toks := lexer.Tokenize("\"abc\n/' x", lexer.Options{Reporter: rep})
	if len(rep.kinds) != 2 || rep.kinds[0] != lexer.UnterminatedString || rep.kinds[1] != lexer.UnterminatedBlockComment {
		t.Fatalf("unexpected reports %v", rep.kinds)
	}
	if toks[0].Kind != token.String || toks[0].Text != "\"abc" {
		t.Fatalf("string token = %v", toks[0])
	}
}
