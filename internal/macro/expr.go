package macro

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrSyntax indicates an expression the evaluator cannot parse.
	ErrSyntax = errors.New("invalid expression")

	// ErrDivideByZero indicates a division or modulo by zero.
	ErrDivideByZero = errors.New("division by zero")
)

// Eval evaluates a restricted C constant expression and returns its
// textual value. Integers support + - * / % << >> & | ^ ~ ! and
// parentheses with C semantics; a lone string literal evaluates to its
// contents. Identifiers and calls are rejected.
func Eval(expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if s, ok := stringLiteral(expr); ok {
		return s, nil
	}
	v, err := EvalInt(expr)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(v, 10), nil
}

// EvalInt evaluates expr as an integer expression.
func EvalInt(expr string) (int64, error) {
	toks, err := tokenize(expr)
	if err != nil {
		return 0, err
	}
	p := &exprParser{toks: toks}
	v, err := p.parseBinary(0)
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.toks) {
		return 0, fmt.Errorf("%w: unexpected %q", ErrSyntax, p.toks[p.pos].text)
	}
	return v, nil
}

// ParseInt parses a C integer literal: decimal, 0x, 0b, 0o or leading-0
// octal, with any U/L suffix ignored.
func ParseInt(s string) (int64, error) {
	s = strings.TrimRight(strings.TrimSpace(s), "uUlL")
	if s == "" {
		return 0, fmt.Errorf("%w: empty literal", ErrSyntax)
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		// Values such as 0xFFFFFFFFFFFFFFFF only fit unsigned.
		u, uerr := strconv.ParseUint(s, 0, 64)
		if uerr != nil {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
		return int64(u), nil
	}
	return v, nil
}

func stringLiteral(expr string) (string, bool) {
	if len(expr) < 2 || expr[0] != '"' || expr[len(expr)-1] != '"' {
		return "", false
	}
	s, err := strconv.Unquote(expr)
	if err != nil {
		return "", false
	}
	return s, true
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	val  int64
}

func tokenize(expr string) ([]token, error) {
	var toks []token
	for i := 0; i < len(expr); {
		ch := expr[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case ch == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		case ch >= '0' && ch <= '9':
			j := i
			for j < len(expr) && (isAlnum(expr[j])) {
				j++
			}
			v, err := ParseInt(expr[i:j])
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokNumber, text: expr[i:j], val: v})
			i = j
		case strings.HasPrefix(expr[i:], "<<") || strings.HasPrefix(expr[i:], ">>"):
			toks = append(toks, token{kind: tokOp, text: expr[i : i+2]})
			i += 2
		case strings.ContainsRune("+-*/%&|^~!", rune(ch)):
			toks = append(toks, token{kind: tokOp, text: string(ch)})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, string(ch))
		}
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	return toks, nil
}

func isAlnum(b byte) bool {
	return b == '_' || unicode.IsLetter(rune(b)) || unicode.IsDigit(rune(b))
}

// binary operator precedence, lowest first, as in C.
var precedence = map[string]int{
	"|":  1,
	"^":  2,
	"&":  3,
	"<<": 4,
	">>": 4,
	"+":  5,
	"-":  5,
	"*":  6,
	"/":  6,
	"%":  6,
}

type exprParser struct {
	toks []token
	pos  int
}

func (p *exprParser) peek() *token {
	if p.pos >= len(p.toks) {
		return nil
	}
	return &p.toks[p.pos]
}

// parseBinary is a precedence-climbing parser for left-associative
// binary operators.
func (p *exprParser) parseBinary(minPrec int) (int64, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		tok := p.peek()
		if tok == nil || tok.kind != tokOp {
			return lhs, nil
		}
		prec, ok := precedence[tok.text]
		if !ok || prec <= minPrec {
			return lhs, nil
		}
		p.pos++
		rhs, err := p.parseBinary(prec)
		if err != nil {
			return 0, err
		}
		lhs, err = apply(tok.text, lhs, rhs)
		if err != nil {
			return 0, err
		}
	}
}

func (p *exprParser) parseUnary() (int64, error) {
	tok := p.peek()
	if tok == nil {
		return 0, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	switch tok.kind {
	case tokNumber:
		p.pos++
		return tok.val, nil
	case tokLParen:
		p.pos++
		v, err := p.parseBinary(0)
		if err != nil {
			return 0, err
		}
		if next := p.peek(); next == nil || next.kind != tokRParen {
			return 0, fmt.Errorf("%w: missing )", ErrSyntax)
		}
		p.pos++
		return v, nil
	case tokOp:
		p.pos++
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		switch tok.text {
		case "-":
			return -v, nil
		case "+":
			return v, nil
		case "~":
			return ^v, nil
		case "!":
			if v == 0 {
				return 1, nil
			}
			return 0, nil
		}
	}
	return 0, fmt.Errorf("%w: unexpected %q", ErrSyntax, tok.text)
}

func apply(op string, a, b int64) (int64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	case "%":
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a % b, nil
	case "<<", ">>":
		if b < 0 || b >= 64 {
			return 0, fmt.Errorf("%w: shift count %d out of range", ErrSyntax, b)
		}
		if op == "<<" {
			return a << uint64(b), nil
		}
		return a >> uint64(b), nil
	case "&":
		return a & b, nil
	case "|":
		return a | b, nil
	case "^":
		return a ^ b, nil
	}
	return 0, fmt.Errorf("%w: unknown operator %q", ErrSyntax, op)
}
