package selector

import "fmt"

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdentifier
	tokenEquals    // = or ==
	tokenNotEquals // !=
	tokenIn
	tokenNotIn
	tokenNot // !
	tokenOpenParen
	tokenCloseParen
	tokenComma
)

type token struct {
	kind tokenKind
	pos  int
	text string
}

func isSpecial(c byte) bool {
	switch c {
	case ' ', '\t', '(', ')', ',', '=', '!':
		return true
	}
	return false
}

// lex splits a selector expression into tokens. It never fails:
// characters outside the label grammar end up inside identifier tokens
// and are rejected by requirement validation, which knows the position.
func lex(input string) []token {
	var tokens []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(':
			tokens = append(tokens, token{tokenOpenParen, i, "("})
			i++
		case c == ')':
			tokens = append(tokens, token{tokenCloseParen, i, ")"})
			i++
		case c == ',':
			tokens = append(tokens, token{tokenComma, i, ","})
			i++
		case c == '=':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, token{tokenEquals, i, "=="})
				i += 2
			} else {
				tokens = append(tokens, token{tokenEquals, i, "="})
				i++
			}
		case c == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, token{tokenNotEquals, i, "!="})
				i += 2
			} else {
				tokens = append(tokens, token{tokenNot, i, "!"})
				i++
			}
		default:
			start := i
			for i < len(input) && !isSpecial(input[i]) {
				i++
			}
			text := input[start:i]
			kind := tokenIdentifier
			switch text {
			case "in":
				kind = tokenIn
			case "notin":
				kind = tokenNotIn
			}
			tokens = append(tokens, token{kind, start, text})
		}
	}
	return append(tokens, token{tokenEOF, len(input), ""})
}

type parser struct {
	tokens []token
	pos    int
	limits Limits
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) *ParseError {
	return &ParseError{Pos: t.pos, Token: t.text, Message: fmt.Sprintf(format, args...)}
}

// Parse converts a textual selector expression into a Selector using
// the default limits. The grammar supports equality-based requirements
// (key=value, key==value, key!=value), set-based requirements
// (key in (v1,v2), key notin (v1)), bare keys (existence) and !key
// (non-existence), joined by top-level commas.
//
// The empty string parses to a selector that matches everything.
// On malformed input a *ParseError is returned and no selector.
func Parse(input string) (Selector, error) {
	return ParseWithLimits(input, DefaultLimits())
}

// ParseWithLimits is Parse with caller-supplied length limits.
func ParseWithLimits(input string, limits Limits) (Selector, error) {
	p := &parser{tokens: lex(input), limits: limits}

	sel := Everything()
	if p.peek().kind == tokenEOF {
		return sel, nil
	}

	for {
		req, err := p.parseRequirement()
		if err != nil {
			return nil, err
		}
		sel = append(sel, req)

		switch t := p.next(); t.kind {
		case tokenEOF:
			return sel, nil
		case tokenComma:
			// next iteration parses the following requirement
		default:
			return nil, p.errorf(t, "expected ',' or end of selector")
		}
	}
}

func (p *parser) parseRequirement() (Requirement, error) {
	t := p.next()
	switch t.kind {
	case tokenNot:
		key := p.next()
		if key.kind != tokenIdentifier {
			return Requirement{}, p.errorf(key, "expected label key after '!'")
		}
		return p.newRequirement(key, DoesNotExist, nil)

	case tokenIdentifier:
		switch op := p.peek(); op.kind {
		case tokenEOF, tokenComma:
			return p.newRequirement(t, Exists, nil)
		case tokenEquals:
			p.next()
			return p.newRequirement(t, Equals, []string{p.parseOptionalValue()})
		case tokenNotEquals:
			p.next()
			return p.newRequirement(t, NotEquals, []string{p.parseOptionalValue()})
		case tokenIn:
			p.next()
			values, err := p.parseValueList()
			if err != nil {
				return Requirement{}, err
			}
			return p.newRequirement(t, In, values)
		case tokenNotIn:
			p.next()
			values, err := p.parseValueList()
			if err != nil {
				return Requirement{}, err
			}
			return p.newRequirement(t, NotIn, values)
		default:
			return Requirement{}, p.errorf(op, "expected operator after label key")
		}

	default:
		return Requirement{}, p.errorf(t, "expected label key or '!'")
	}
}

// parseOptionalValue consumes an identifier if one follows; equality
// requirements may carry the empty value (key= matches an empty label).
func (p *parser) parseOptionalValue() string {
	if p.peek().kind == tokenIdentifier {
		return p.next().text
	}
	return ""
}

// parseValueList consumes a parenthesized, comma-separated value list.
// Empty entries between commas denote the empty value; a fully empty
// list is a parse error.
func (p *parser) parseValueList() ([]string, error) {
	open := p.next()
	if open.kind != tokenOpenParen {
		return nil, p.errorf(open, "expected '(' after set operator")
	}

	var values []string
	expectValue := true
	for {
		t := p.next()
		switch t.kind {
		case tokenIdentifier:
			if !expectValue {
				return nil, p.errorf(t, "expected ',' or ')'")
			}
			values = append(values, t.text)
			expectValue = false
		case tokenComma:
			if expectValue {
				values = append(values, "")
			}
			expectValue = true
		case tokenCloseParen:
			if expectValue {
				if len(values) == 0 {
					return nil, p.errorf(t, "'in' and 'notin' operators require at least one value")
				}
				values = append(values, "")
			}
			return values, nil
		case tokenEOF:
			return nil, p.errorf(t, "unclosed '(' in value list")
		default:
			return nil, p.errorf(t, "unexpected token in value list")
		}
	}
}

// newRequirement builds a requirement and rewrites validation failures
// into parse errors carrying the position of the requirement's key.
func (p *parser) newRequirement(key token, op Operator, values []string) (Requirement, error) {
	req, err := NewRequirementWithLimits(key.text, op, values, p.limits)
	if err != nil {
		return Requirement{}, &ParseError{Pos: key.pos, Token: key.text, Message: err.Error()}
	}
	return req, nil
}
