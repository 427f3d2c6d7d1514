package lexer

import "testing"

func collect(input string) []Token {
	l := New(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	return toks
}

func TestNextTokenPunctuationAndOperators(t *testing.T) {
	input := `, ; ( ) [ ] { } . + - * / = <> < <= > >= :=`
	want := []TokenType{
		COMMA, SEMI, LPAREN, RPAREN, LBRACK, RBRACK, LBRACE, RBRACE,
		DOT, PLUS, MINUS, TIMES, DIVIDE, EQ, NEQ, LT, LE, GT, GE, ASSIGN, EOF,
	}
	toks := collect(input)
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, w)
		}
	}
}

func TestNextTokenKeywords(t *testing.T) {
	input := "let var type function if then else while for to do break nil array of in end"
	want := []TokenType{
		LET, VAR, TYPE, FUNCTION, IF, THEN, ELSE, WHILE, FOR, TO, DO,
		BREAK, NIL, ARRAY, OF, IN, END, EOF,
	}
	toks := collect(input)
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d (%q): got %v, want %v", i, toks[i].Literal, toks[i].Type, w)
		}
	}
}

func TestNextTokenIdentifiersAndInts(t *testing.T) {
	toks := collect("myVar1 _underscore 42 007")
	want := []struct {
		typ TokenType
		lit string
	}{
		{IDENT, "myVar1"},
		{IDENT, "_underscore"},
		{INT, "42"},
		{INT, "007"},
		{EOF, ""},
	}
	for i, w := range want {
		if toks[i].Type != w.typ || toks[i].Literal != w.lit {
			t.Errorf("token %d: got (%v,%q), want (%v,%q)", i, toks[i].Type, toks[i].Literal, w.typ, w.lit)
		}
	}
}

func TestNextTokenStringEscapes(t *testing.T) {
	toks := collect(`"hello\nworld" "a\"b" "\065"`)
	want := []string{"hello\nworld", `a"b`, "A"}
	for i, w := range want {
		if toks[i].Type != STRING || toks[i].Literal != w {
			t.Errorf("token %d: got (%v,%q), want STRING %q", i, toks[i].Type, toks[i].Literal, w)
		}
	}
}

func TestNextTokenSkipsBlockComments(t *testing.T) {
	toks := collect("1 /* comment /* nested */ still comment */ 2")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3 (two ints + EOF): %+v", len(toks), toks)
	}
	if toks[0].Literal != "1" || toks[1].Literal != "2" {
		t.Fatalf("unexpected literals: %q %q", toks[0].Literal, toks[1].Literal)
	}
}

func TestNextTokenTracksLineAndColumn(t *testing.T) {
	l := New("ab\ncd")
	tok := l.NextToken()
	if tok.Pos != (Position{Line: 1, Column: 1}) {
		t.Fatalf("first token pos = %+v", tok.Pos)
	}
	tok = l.NextToken()
	if tok.Pos != (Position{Line: 2, Column: 1}) {
		t.Fatalf("second token pos = %+v", tok.Pos)
	}
}

func TestNextTokenIllegalCharacter(t *testing.T) {
	toks := collect("@")
	if toks[0].Type != ILLEGAL {
		t.Fatalf("got %v, want ILLEGAL", toks[0].Type)
	}
}
