// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package sfv

import (
	"encoding/base64"
	"strings"

	"github.com/sigproto/httpsig/pkg/sigerr"
)

// parser walks a Structured Field string left to right, tracking the byte
// offset so parse failures can report where they occurred.
type parser struct {
	s   string
	pos int
}

func newParser(s string) *parser { return &parser{s: s} }

func (p *parser) eof() bool { return p.pos >= len(p.s) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.s[p.pos]
}

func (p *parser) advance() byte {
	c := p.s[p.pos]
	p.pos++
	return c
}

func (p *parser) errf(code sigerr.Code, format string, args ...any) error {
	return sigerr.AtOffset(code, p.pos, format, args...)
}

func (p *parser) skipSP() {
	for !p.eof() && p.s[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) skipOWS() {
	for !p.eof() && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

// ParseItem parses a Structured Field Item: a bare item plus parameters.
func ParseItem(s string) (Item, error) {
	p := newParser(s)
	p.skipSP()
	item, err := p.parseItem()
	if err != nil {
		return Item{}, err
	}
	p.trimTrailingSP()
	if !p.eof() {
		return Item{}, p.errf(sigerr.InvalidStructuredHeader, "unexpected trailing data")
	}
	return item, nil
}

// ParseItemOrInnerList parses a single Item or a parenthesized inner list
// plus its parameters. Used to decode values that are themselves List/
// Dictionary members taken in isolation, such as a Signature-Input
// dictionary entry's inner-list value.
func ParseItemOrInnerList(s string) (Item, error) {
	p := newParser(s)
	p.skipSP()
	item, err := p.parseItemOrInnerList()
	if err != nil {
		return Item{}, err
	}
	p.trimTrailingSP()
	if !p.eof() {
		return Item{}, p.errf(sigerr.InvalidStructuredHeader, "unexpected trailing data")
	}
	return item, nil
}

// ParseList parses a Structured Field List.
func ParseList(s string) (List, error) {
	p := newParser(s)
	p.skipSP()
	if p.eof() {
		return List{}, nil
	}
	var list List
	for {
		member, err := p.parseItemOrInnerList()
		if err != nil {
			return nil, err
		}
		list = append(list, member)
		p.skipOWS()
		if p.eof() {
			break
		}
		if p.peek() != ',' {
			return nil, p.errf(sigerr.InvalidStructuredHeader, "expected ',' between list members")
		}
		p.advance()
		p.skipOWS()
		if p.eof() {
			return nil, p.errf(sigerr.InvalidStructuredHeader, "trailing comma in list")
		}
	}
	p.trimTrailingSP()
	if !p.eof() {
		return nil, p.errf(sigerr.InvalidStructuredHeader, "unexpected trailing data")
	}
	return list, nil
}

// ParseDictionary parses a Structured Field Dictionary.
func ParseDictionary(s string) (*Dictionary, error) {
	p := newParser(s)
	p.skipSP()
	dict := NewDictionary()
	if p.eof() {
		return dict, nil
	}
	for {
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		var value Member
		if !p.eof() && p.peek() == '=' {
			p.advance()
			value, err = p.parseItemOrInnerList()
			if err != nil {
				return nil, err
			}
		} else {
			params, err := p.parseParams()
			if err != nil {
				return nil, err
			}
			value = Item{Kind: KindBoolean, Bool: true, Params: params}
		}
		dict.Set(key, value)
		p.skipOWS()
		if p.eof() {
			break
		}
		if p.peek() != ',' {
			return nil, p.errf(sigerr.InvalidStructuredHeader, "expected ',' between dictionary entries")
		}
		p.advance()
		p.skipOWS()
		if p.eof() {
			return nil, p.errf(sigerr.InvalidStructuredHeader, "trailing comma in dictionary")
		}
	}
	p.trimTrailingSP()
	if !p.eof() {
		return nil, p.errf(sigerr.InvalidStructuredHeader, "unexpected trailing data")
	}
	return dict, nil
}

// trimTrailingSP allows (only) trailing SP after the last construct, per
// spec: "remaining characters other than trailing SP cause a parse error".
func (p *parser) trimTrailingSP() {
	for !p.eof() && p.s[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) parseKey() (string, error) {
	start := p.pos
	if p.eof() || !(isLCAlpha(p.peek()) || p.peek() == '*') {
		return "", p.errf(sigerr.InvalidStructuredHeader, "invalid dictionary/parameter key")
	}
	for !p.eof() {
		c := p.peek()
		if isLCAlpha(c) || isDigit(c) || c == '_' || c == '-' || c == '.' || c == '*' {
			p.pos++
			continue
		}
		break
	}
	return p.s[start:p.pos], nil
}

func isLCAlpha(c byte) bool { return c >= 'a' && c <= 'z' }

func (p *parser) parseItemOrInnerList() (Item, error) {
	if !p.eof() && p.peek() == '(' {
		return p.parseInnerList()
	}
	return p.parseItem()
}

func (p *parser) parseInnerList() (Item, error) {
	p.advance() // '('
	var members []Item
	for {
		p.skipSP()
		if p.eof() {
			return Item{}, p.errf(sigerr.InvalidStructuredHeader, "unterminated inner list")
		}
		if p.peek() == ')' {
			p.advance()
			break
		}
		item, err := p.parseItem()
		if err != nil {
			return Item{}, err
		}
		members = append(members, item)
		if p.eof() {
			return Item{}, p.errf(sigerr.InvalidStructuredHeader, "unterminated inner list")
		}
		if p.peek() == ')' {
			p.advance()
			break
		}
		if p.peek() != ' ' {
			return Item{}, p.errf(sigerr.InvalidStructuredHeader, "expected SP between inner-list members")
		}
	}
	params, err := p.parseParams()
	if err != nil {
		return Item{}, err
	}
	return Item{Kind: KindInnerList, InnerList: members, Params: params}, nil
}

func (p *parser) parseItem() (Item, error) {
	bare, err := p.parseBareItem()
	if err != nil {
		return Item{}, err
	}
	params, err := p.parseParams()
	if err != nil {
		return Item{}, err
	}
	bare.Params = params
	return bare, nil
}

func (p *parser) parseParams() (*Params, error) {
	params := NewParams()
	for !p.eof() && p.peek() == ';' {
		p.advance()
		p.skipSP()
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		var value Item
		if !p.eof() && p.peek() == '=' {
			p.advance()
			value, err = p.parseBareItem()
			if err != nil {
				return nil, err
			}
		} else {
			value = Item{Kind: KindBoolean, Bool: true}
		}
		params.Set(key, value)
	}
	return params, nil
}

func (p *parser) parseBareItem() (Item, error) {
	if p.eof() {
		return Item{}, p.errf(sigerr.InvalidStructuredHeader, "unexpected end of input")
	}
	switch c := p.peek(); {
	case c == '-' || isDigit(c):
		return p.parseNumber()
	case c == '"':
		return p.parseString()
	case c == ':':
		return p.parseBytes()
	case c == '?':
		return p.parseBoolean()
	case c == '*' || isAlpha(c):
		return p.parseToken()
	default:
		return Item{}, p.errf(sigerr.InvalidStructuredHeader, "unexpected character %q", c)
	}
}

func (p *parser) parseNumber() (Item, error) {
	start := p.pos
	neg := false
	if p.peek() == '-' {
		neg = true
		p.advance()
	}
	digitsStart := p.pos
	for !p.eof() && isDigit(p.peek()) {
		p.advance()
	}
	intDigits := p.pos - digitsStart
	if intDigits == 0 {
		return Item{}, p.errf(sigerr.InvalidStructuredHeader, "expected digit in number")
	}
	if !p.eof() && p.peek() == '.' {
		if intDigits > 12 {
			return Item{}, p.errf(sigerr.InvalidStructuredHeader, "decimal integer part exceeds 12 digits")
		}
		p.advance()
		fracStart := p.pos
		for !p.eof() && isDigit(p.peek()) {
			p.advance()
		}
		fracDigits := p.pos - fracStart
		if fracDigits == 0 {
			return Item{}, p.errf(sigerr.InvalidStructuredHeader, "expected digit after '.'")
		}
		if fracDigits > 3 {
			return Item{}, p.errf(sigerr.InvalidStructuredHeader, "decimal fractional part exceeds 3 digits")
		}
		intStr := p.s[digitsStart : digitsStart+intDigits]
		fracStr := p.s[fracStart:p.pos]
		for len(fracStr) < 3 {
			fracStr += "0"
		}
		var scaled int64
		for _, d := range intStr {
			scaled = scaled*10 + int64(d-'0')
		}
		scaled *= 1000
		var fracVal int64
		for _, d := range fracStr {
			fracVal = fracVal*10 + int64(d-'0')
		}
		scaled += fracVal
		if neg {
			scaled = -scaled
		}
		return decimalFromScaled(scaled).asItem(), nil
	}
	if intDigits > 16 {
		return Item{}, p.errf(sigerr.InvalidStructuredHeader, "integer exceeds 16 digits")
	}
	numStr := p.s[digitsStart:p.pos]
	var v int64
	for _, d := range numStr {
		v = v*10 + int64(d-'0')
	}
	if neg {
		v = -v
	}
	if v < minInteger || v > maxInteger {
		return Item{}, p.errf(sigerr.InvalidStructuredHeader, "integer %d out of range", v)
	}
	_ = start
	return Item{Kind: KindInteger, Integer: v}, nil
}

func (d Decimal) asItem() Item { return Item{Kind: KindDecimal, Decimal: d} }

func (p *parser) parseString() (Item, error) {
	p.advance() // opening quote
	var b strings.Builder
	for {
		if p.eof() {
			return Item{}, p.errf(sigerr.InvalidStructuredHeader, "unterminated string")
		}
		c := p.advance()
		switch {
		case c == '"':
			return Item{Kind: KindString, Str: b.String()}, nil
		case c == '\\':
			if p.eof() {
				return Item{}, p.errf(sigerr.InvalidStructuredHeader, "unterminated escape in string")
			}
			esc := p.advance()
			if esc != '\\' && esc != '"' {
				return Item{}, p.errf(sigerr.InvalidStructuredHeader, "invalid escape %q", esc)
			}
			b.WriteByte(esc)
		case c < 0x20 || c > 0x7E:
			return Item{}, p.errf(sigerr.InvalidStructuredHeader, "control character in string")
		default:
			b.WriteByte(c)
		}
	}
}

func (p *parser) parseBytes() (Item, error) {
	p.advance() // ':'
	start := p.pos
	for !p.eof() && p.peek() != ':' {
		p.advance()
	}
	if p.eof() {
		return Item{}, p.errf(sigerr.InvalidStructuredHeader, "unterminated byte sequence")
	}
	encoded := p.s[start:p.pos]
	p.advance() // closing ':'
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Item{}, p.errf(sigerr.InvalidStructuredHeader, "invalid base64 in byte sequence: %v", err)
	}
	return NewBytes(raw), nil
}

func (p *parser) parseBoolean() (Item, error) {
	p.advance() // '?'
	if p.eof() {
		return Item{}, p.errf(sigerr.InvalidStructuredHeader, "unterminated boolean")
	}
	c := p.advance()
	switch c {
	case '0':
		return Item{Kind: KindBoolean, Bool: false}, nil
	case '1':
		return Item{Kind: KindBoolean, Bool: true}, nil
	default:
		return Item{}, p.errf(sigerr.InvalidStructuredHeader, "invalid boolean %q", c)
	}
}

func (p *parser) parseToken() (Item, error) {
	start := p.pos
	p.advance() // first char already validated by caller's dispatch
	for !p.eof() {
		c := p.peek()
		if isTchar(c) || c == ':' || c == '/' {
			p.pos++
			continue
		}
		break
	}
	return Item{Kind: KindToken, Str: p.s[start:p.pos]}, nil
}
