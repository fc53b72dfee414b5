package syntax

import (
	"fmt"
	"unicode/utf8"
)

// TokenKind identifies the type of a lexical token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenLiteral
	TokenAnyByte  // .
	TokenStar     // *
	TokenPlus     // +
	TokenQuestion // ?
	TokenAlt      // |
	TokenLParen   // (
	TokenRParen   // )
)

// String returns a human-readable representation of the TokenKind
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenLiteral:
		return "Literal"
	case TokenAnyByte:
		return "AnyByte"
	case TokenStar:
		return "Star"
	case TokenPlus:
		return "Plus"
	case TokenQuestion:
		return "Question"
	case TokenAlt:
		return "Alt"
	case TokenLParen:
		return "LParen"
	case TokenRParen:
		return "RParen"
	default:
		return fmt.Sprintf("TokenKind(%d)", k)
	}
}

// Token is a single lexical unit of a pattern.
type Token struct {
	Kind TokenKind
	Byte byte // TokenLiteral only
	Pos  int  // byte offset of the token in the pattern
}

// String returns a human-readable representation of the token
func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "EOF"
	case TokenLiteral:
		return fmt.Sprintf("Literal(%q)", t.Byte)
	default:
		return t.Kind.String()
	}
}

// startsAtom reports whether the token can begin an atom.
func (t Token) startsAtom() bool {
	return t.Kind == TokenLiteral || t.Kind == TokenAnyByte || t.Kind == TokenLParen
}

// Lexer produces tokens from a pattern one character at a time.
//
// Once the input is exhausted every further call to Next returns TokenEOF.
// A Lexer cannot be rewound; after a *LexError it keeps reporting the same
// error.
type Lexer struct {
	input string
	pos   int
}

// NewLexer returns a lexer over pattern.
func NewLexer(pattern string) *Lexer {
	return &Lexer{input: pattern}
}

// Next returns the next token, consuming exactly one source character.
func (l *Lexer) Next() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Pos: len(l.input)}, nil
	}

	pos := l.pos
	c := l.input[pos]

	var kind TokenKind
	switch {
	case isASCIIAlnum(c):
		kind = TokenLiteral
	case c == '.':
		kind = TokenAnyByte
	case c == '*':
		kind = TokenStar
	case c == '+':
		kind = TokenPlus
	case c == '?':
		kind = TokenQuestion
	case c == '|':
		kind = TokenAlt
	case c == '(':
		kind = TokenLParen
	case c == ')':
		kind = TokenRParen
	default:
		r := rune(c)
		if c >= utf8.RuneSelf {
			r, _ = utf8.DecodeRuneInString(l.input[pos:])
		}
		return Token{}, &LexError{Char: r, Pos: pos}
	}

	l.pos++
	tok := Token{Kind: kind, Pos: pos}
	if kind == TokenLiteral {
		tok.Byte = c
	}
	return tok, nil
}

// Tokenize lexes the whole pattern, including the trailing TokenEOF.
func Tokenize(pattern string) ([]Token, error) {
	l := NewLexer(pattern)
	tokens := make([]Token, 0, len(pattern)+1)
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func isASCIIAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
