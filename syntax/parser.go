package syntax

// Parser is a recursive-descent parser with one token of lookahead.
type Parser struct {
	lexer *Lexer
	cur   Token
	open  []int // positions of unclosed '('
}

// Parse parses pattern into a syntax tree.
//
// The whole pattern must be consumed: input left over after a complete
// expression (for example the ')' in "a)") is reported as
// ErrUnexpectedToken rather than ignored. Lexical failures are returned as
// *LexError, grammar failures as *ParseError.
func Parse(pattern string) (*Node, error) {
	p := &Parser{lexer: NewLexer(pattern)}
	if err := p.advance(); err != nil {
		return nil, err
	}

	node, err := p.parseAlt()
	if err != nil {
		return nil, err
	}

	if p.cur.Kind != TokenEOF {
		return nil, p.unexpected()
	}
	return node, nil
}

func (p *Parser) advance() error {
	tok, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// unexpected reports the current token. End of input inside a group is
// reported against the innermost unclosed '('.
func (p *Parser) unexpected() *ParseError {
	if p.cur.Kind == TokenEOF && len(p.open) > 0 {
		return &ParseError{Kind: ErrUnterminatedGroup, Pos: p.open[len(p.open)-1], Token: p.cur}
	}
	return &ParseError{Kind: ErrUnexpectedToken, Pos: p.cur.Pos, Token: p.cur}
}

// parseAlt folds concat ('|' concat)* to the left.
func (p *Parser) parseAlt() (*Node, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}

	for p.cur.Kind == TokenAlt {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		left = Alternate(left, right)
	}
	return left, nil
}

// parseConcat folds rep+ to the left.
func (p *Parser) parseConcat() (*Node, error) {
	left, err := p.parseRep()
	if err != nil {
		return nil, err
	}

	for p.cur.startsAtom() {
		right, err := p.parseRep()
		if err != nil {
			return nil, err
		}
		left = Concat(left, right)
	}
	return left, nil
}

// parseRep applies postfix operators left to right, so "a*?" is Quest(Star(a)).
func (p *Parser) parseRep() (*Node, error) {
	node, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.cur.Kind {
		case TokenStar:
			node = Star(node)
		case TokenPlus:
			node = Plus(node)
		case TokenQuestion:
			node = Quest(node)
		default:
			return node, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseAtom() (*Node, error) {
	switch p.cur.Kind {
	case TokenLiteral:
		node := Literal(p.cur.Byte)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return node, nil

	case TokenAnyByte:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return AnyByte(), nil

	case TokenLParen:
		p.open = append(p.open, p.cur.Pos)
		if err := p.advance(); err != nil {
			return nil, err
		}
		node, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind != TokenRParen {
			return nil, p.unexpected()
		}
		p.open = p.open[:len(p.open)-1]
		if err := p.advance(); err != nil {
			return nil, err
		}
		return node, nil

	default:
		return nil, p.unexpected()
	}
}

// MustParse is like Parse but panics if the pattern cannot be parsed.
// It simplifies building trees for tests and package-level variables.
func MustParse(pattern string) *Node {
	node, err := Parse(pattern)
	if err != nil {
		panic("syntax: Parse(`" + pattern + "`): " + err.Error())
	}
	return node
}
