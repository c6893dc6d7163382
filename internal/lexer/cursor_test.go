package lexer

import "testing"

func TestCursorMarkReset(t *testing.T) {
	c := NewCursor("abc", 0)
	m := c.Mark()
	if !c.Eat('a') || c.Eat('x') {
		t.Fatal("Eat mismatch")
	}
	c.Advance(10)
	if !c.EOF() || c.Off != 3 {
		t.Fatalf("Advance must clamp, off=%d", c.Off)
	}
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 3 {
		t.Fatalf("span %v", sp)
	}
	c.Reset(m)
	if c.Peek() != 'a' || c.PeekAt(2) != 'c' || c.PeekAt(3) != 0 {
		t.Fatal("peek after reset")
	}
	if !c.HasPrefix("abc") || c.HasPrefix("abcd") {
		t.Fatal("HasPrefix")
	}
}
