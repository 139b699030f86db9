// Package molwt computes molecular weights from chemical formulas such as
// "Mg(NO3)2" or "(C4H12N)2O".
package molwt

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ParseError points at the offending position of a formula.
type ParseError struct {
	Formula string
	Pos     int
	Msg     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("molwt: %s at position %d:\n%s\n%s^", e.Msg, e.Pos, e.Formula, strings.Repeat(" ", e.Pos))
}

// Weight returns the molecular weight of formula in g/mol.
func Weight(formula string) (float64, error) {
	counts, err := Composition(formula)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for symbol, n := range counts {
		el, _ := Lookup(symbol)
		total += el.Weight * float64(n)
	}
	return total, nil
}

// Composition returns the number of atoms of every element in formula.
func Composition(formula string) (map[string]int, error) {
	p := &parser{input: []rune(formula), formula: formula}
	counts, err := p.sequence()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.input) {
		return nil, p.errorf("expected end of input")
	}
	return counts, nil
}

// Symbols returns the element symbols of formula in alphabetical order.
func Symbols(formula string) ([]string, error) {
	counts, err := Composition(formula)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(counts))
	for symbol := range counts {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out, nil
}

// parser is a recursive descent parser over
//
//	sequence := (group | element) count? ...
//	group    := '(' sequence ')'
type parser struct {
	input   []rune
	formula string
	pos     int
}

func (p *parser) sequence() (map[string]int, error) {
	counts := map[string]int{}
	start := p.pos
	for p.pos < len(p.input) {
		r := p.input[p.pos]
		var part map[string]int
		switch {
		case r == '(':
			p.pos++
			inner, err := p.sequence()
			if err != nil {
				return nil, err
			}
			if p.pos >= len(p.input) || p.input[p.pos] != ')' {
				return nil, p.errorf("expected right paren")
			}
			p.pos++
			part = inner
		case unicode.IsUpper(r):
			symbol, err := p.element()
			if err != nil {
				return nil, err
			}
			part = map[string]int{symbol: 1}
		default:
			if p.pos == start {
				return nil, p.errorf("empty sequence")
			}
			return counts, nil
		}

		n := p.count()
		for symbol, c := range part {
			counts[symbol] += c * n
		}
	}
	if p.pos == start {
		return nil, p.errorf("empty sequence")
	}
	return counts, nil
}

func (p *parser) element() (string, error) {
	begin := p.pos
	p.pos++
	for p.pos < len(p.input) && unicode.IsLower(p.input[p.pos]) {
		p.pos++
	}
	symbol := string(p.input[begin:p.pos])
	if _, ok := Lookup(symbol); !ok {
		p.pos = begin
		return "", p.errorf(fmt.Sprintf("%q is not an element symbol", symbol))
	}
	return symbol, nil
}

func (p *parser) count() int {
	n := 0
	digits := 0
	for p.pos < len(p.input) && unicode.IsDigit(p.input[p.pos]) {
		n = n*10 + int(p.input[p.pos]-'0')
		p.pos++
		digits++
	}
	if digits == 0 {
		return 1
	}
	return n
}

func (p *parser) errorf(msg string) error {
	return &ParseError{Formula: p.formula, Pos: p.pos, Msg: msg}
}
