package css

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Selector tokenizer

type SelectorTokenType int

const (
	TokenIdent   SelectorTokenType = iota // button
	TokenID                               // #name
	TokenClass                            // .name
	TokenTag                              // :name
	TokenStar                             // *
	TokenChild                            // >
	TokenComma                            // ,
	TokenSpace                            // run of whitespace
	TokenEOF
)

var tokenNames = map[SelectorTokenType]string{
	TokenIdent: "identifier",
	TokenID:    "id",
	TokenClass: "class",
	TokenTag:   "tag",
	TokenStar:  "'*'",
	TokenChild: "'>'",
	TokenComma: "','",
	TokenSpace: "whitespace",
	TokenEOF:   "end of input",
}

func (t SelectorTokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("token(%d)", int(t))
}

type SelectorToken struct {
	Type  SelectorTokenType
	Value string // name without its sigil
	Pos   int    // byte offset in the source
}

// ErrSelectorSyntax is wrapped by every selector parse failure.
var ErrSelectorSyntax = errors.New("selector syntax error")

// SelectorError reports where a selector failed to parse.
type SelectorError struct {
	Source string
	Pos    int
	Msg    string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("selector %q at offset %d: %s", e.Source, e.Pos, e.Msg)
}

func (e *SelectorError) Unwrap() error { return ErrSelectorSyntax }

type SelectorTokenizer struct {
	input string
	pos   int
}

func NewSelectorTokenizer(input string) *SelectorTokenizer {
	return &SelectorTokenizer{input: input}
}

func (t *SelectorTokenizer) errorf(pos int, format string, args ...any) error {
	return &SelectorError{Source: t.input, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (t *SelectorTokenizer) NextToken() (SelectorToken, error) {
	if t.pos >= len(t.input) {
		return SelectorToken{Type: TokenEOF, Pos: t.pos}, nil
	}

	start := t.pos
	ch := t.input[t.pos]

	switch {
	case isSpace(ch):
		for t.pos < len(t.input) && isSpace(t.input[t.pos]) {
			t.pos++
		}
		return SelectorToken{Type: TokenSpace, Pos: start}, nil
	case ch == '*':
		t.pos++
		return SelectorToken{Type: TokenStar, Value: "*", Pos: start}, nil
	case ch == '>':
		t.pos++
		return SelectorToken{Type: TokenChild, Value: ">", Pos: start}, nil
	case ch == ',':
		t.pos++
		return SelectorToken{Type: TokenComma, Value: ",", Pos: start}, nil
	case ch == '#', ch == '.', ch == ':':
		t.pos++
		name := t.readName()
		if name == "" {
			return SelectorToken{}, t.errorf(start, "expected a name after %q", ch)
		}
		typ := TokenID
		if ch == '.' {
			typ = TokenClass
		} else if ch == ':' {
			typ = TokenTag
		}
		return SelectorToken{Type: typ, Value: name, Pos: start}, nil
	case isNameStart(ch):
		return SelectorToken{Type: TokenIdent, Value: t.readName(), Pos: start}, nil
	}

	return SelectorToken{}, t.errorf(start, "unexpected character %q", ch)
}

// Tokens returns every token up to and excluding EOF.
func (t *SelectorTokenizer) Tokens() ([]SelectorToken, error) {
	var tokens []SelectorToken
	for {
		tok, err := t.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func (t *SelectorTokenizer) readName() string {
	start := t.pos
	for t.pos < len(t.input) && isNameChar(t.input[t.pos]) {
		t.pos++
	}
	return t.input[start:t.pos]
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

// Bytes of multi-byte UTF-8 sequences count as name characters, so
// non-ASCII names such as "café" read as one token.
func isNameStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= utf8.RuneSelf
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || ch == '-' || (ch >= '0' && ch <= '9')
}
