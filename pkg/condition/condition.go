package condition

import (
	"fmt"
	"strings"
	"unicode"
)

// value is the tri-state result of evaluating a subexpression. Unresolved
// bare facts are undefined and propagate through '&&'/'||' by ordinary
// short-circuit rules; comparisons always collapse to a definite value.
type value int

const (
	vFalse value = iota
	vTrue
	vUndef
)

// Evaluate parses expr and evaluates it against facts.
//
// An empty or blank expression evaluates to true (no gate). On a parse
// failure the result is true and the returned error describes the defect;
// callers are expected to log it and carry on. An expression whose result is
// undefined (a bare fact never supplied) evaluates to false.
func Evaluate(expr string, facts map[string]bool) (bool, error) {
	if strings.TrimSpace(expr) == "" {
		return true, nil
	}

	node, err := parse(expr)
	if err != nil {
		return true, fmt.Errorf("condition %q: %w", expr, err)
	}

	switch node.eval(facts) {
	case vTrue:
		return true, nil
	default:
		return false, nil
	}
}

// MustParse is a validation helper: it parses expr and reports the defect
// without evaluating. Used by authoring-time validators.
func MustParse(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := parse(expr)
	return err
}

// --- AST ---

type node interface {
	eval(facts map[string]bool) value
}

// fact is a bare fact reference. Absent facts are undefined.
type fact struct {
	name string
}

func (f fact) eval(facts map[string]bool) value {
	v, ok := facts[f.name]
	if !ok {
		return vUndef
	}
	if v {
		return vTrue
	}
	return vFalse
}

// literal is the keyword true or false.
type literal struct {
	val bool
}

func (l literal) eval(map[string]bool) value {
	if l.val {
		return vTrue
	}
	return vFalse
}

// compare is 'fact == literal' or 'fact != literal'. An absent fact is
// treated as false before comparing, so the comparison fails closed rather
// than staying undefined.
type compare struct {
	name   string
	negate bool
	expect bool
}

func (c compare) eval(facts map[string]bool) value {
	actual := facts[c.name]
	match := actual == c.expect
	if c.negate {
		match = !match
	}
	if match {
		return vTrue
	}
	return vFalse
}

type binary struct {
	op          string // "&&" or "||"
	left, right node
}

func (b binary) eval(facts map[string]bool) value {
	l := b.left.eval(facts)

	if b.op == "&&" {
		if l == vFalse {
			return vFalse
		}
		r := b.right.eval(facts)
		if r == vFalse {
			return vFalse
		}
		if l == vUndef || r == vUndef {
			return vUndef
		}
		return vTrue
	}

	// "||"
	if l == vTrue {
		return vTrue
	}
	r := b.right.eval(facts)
	if r == vTrue {
		return vTrue
	}
	if l == vUndef || r == vUndef {
		return vUndef
	}
	return vFalse
}

// --- Lexer ---

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokEq              // ==
	tokNeq             // !=
	tokAnd             // &&
	tokOr              // ||
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	text string
}

func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case c == '=':
			if i+1 < len(input) && input[i+1] == '=' {
				toks = append(toks, token{tokEq, "=="})
				i += 2
			} else {
				return nil, fmt.Errorf("unexpected '=' at offset %d", i)
			}
		case c == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				toks = append(toks, token{tokNeq, "!="})
				i += 2
			} else {
				return nil, fmt.Errorf("unexpected '!' at offset %d", i)
			}
		case c == '&':
			if i+1 < len(input) && input[i+1] == '&' {
				toks = append(toks, token{tokAnd, "&&"})
				i += 2
			} else {
				return nil, fmt.Errorf("unexpected '&' at offset %d", i)
			}
		case c == '|':
			if i+1 < len(input) && input[i+1] == '|' {
				toks = append(toks, token{tokOr, "||"})
				i += 2
			} else {
				return nil, fmt.Errorf("unexpected '|' at offset %d", i)
			}
		case isIdentStart(rune(c)):
			start := i
			for i < len(input) && isIdentPart(rune(input[i])) {
				i++
			}
			toks = append(toks, token{tokIdent, input[start:i]})
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", c, i)
		}
	}
	toks = append(toks, token{tokEOF, ""})
	return toks, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// --- Parser ---
//
// expr   := and ( '||' and )*
// and    := term ( '&&' term )*
// term   := IDENT ( ('=='|'!=') ('true'|'false') )? | 'true' | 'false' | '(' expr ')'

type parser struct {
	toks []token
	pos  int
}

func parse(input string) (node, error) {
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("unexpected trailing %q", p.peek().text)
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = binary{op: "||", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binary{op: "&&", left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (node, error) {
	switch t := p.next(); t.kind {
	case tokLParen:
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("expected ')', got %q", closing.text)
		}
		return inner, nil

	case tokIdent:
		if t.text == "true" || t.text == "false" {
			return literal{val: t.text == "true"}, nil
		}
		op := p.peek()
		if op.kind != tokEq && op.kind != tokNeq {
			return fact{name: t.text}, nil
		}
		p.next()
		rhs := p.next()
		if rhs.kind != tokIdent || (rhs.text != "true" && rhs.text != "false") {
			return nil, fmt.Errorf("expected 'true' or 'false' after %q, got %q", op.text, rhs.text)
		}
		return compare{
			name:   t.text,
			negate: op.kind == tokNeq,
			expect: rhs.text == "true",
		}, nil

	default:
		return nil, fmt.Errorf("unexpected %q", t.text)
	}
}
