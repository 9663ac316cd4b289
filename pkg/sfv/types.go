// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package sfv

import (
	"fmt"

	"github.com/sigproto/httpsig/pkg/sigerr"
)

// Kind tags the one variant an Item actually holds.
type Kind int

const (
	KindInteger Kind = iota
	KindDecimal
	KindString
	KindToken
	KindBytes
	KindBoolean
	KindInnerList
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindToken:
		return "token"
	case KindBytes:
		return "bytes"
	case KindBoolean:
		return "boolean"
	case KindInnerList:
		return "inner-list"
	default:
		return "unknown"
	}
}

// integer bounds per spec: signed 64-bit integer in [-10^15, 10^15].
const (
	minInteger = -1_000_000_000_000_000
	maxInteger = 1_000_000_000_000_000
)

// maxDecimalIntegerPart is the decimal type's own bound: at most 12 integer
// digits, distinct from maxInteger (the Integer type's 10^15 bound).
const maxDecimalIntegerPart = 1_000_000_000_000

// Decimal is a fixed-point number with up to 12 integer digits and up to 3
// fractional digits, stored internally scaled by 1000.
type Decimal struct {
	scaled int64
}

// NewDecimal builds a Decimal from a float64, half-even rounding to 3
// fractional digits at construction.
func NewDecimal(v float64) (Decimal, error) {
	scaled := roundHalfEven(v * 1000)
	if scaled <= -maxDecimalIntegerPart*1000 || scaled >= maxDecimalIntegerPart*1000 {
		return Decimal{}, sigerr.New(sigerr.InvalidStructuredHeader, "decimal integer part exceeds 12 digits")
	}
	return Decimal{scaled: scaled}, nil
}

// decimalFromScaled builds a Decimal from an already-scaled (x1000) integer,
// used by the parser which reads digits directly without float conversion.
func decimalFromScaled(scaled int64) Decimal {
	return Decimal{scaled: scaled}
}

func roundHalfEven(v float64) int64 {
	floor := int64(v)
	frac := v - float64(floor)
	switch {
	case frac > 0.5:
		return floor + 1
	case frac < 0.5 && frac > -0.5:
		return floor
	case frac == 0.5:
		if floor%2 == 0 {
			return floor
		}
		return floor + 1
	case frac < -0.5:
		return floor - 1
	default: // frac == -0.5
		if floor%2 == 0 {
			return floor
		}
		return floor - 1
	}
}

// Float64 returns the decimal's value as a float64.
func (d Decimal) Float64() float64 { return float64(d.scaled) / 1000 }

// String renders the canonical form: exactly one '.' and at least one
// fractional digit, trailing zeros trimmed down to that minimum.
func (d Decimal) String() string {
	neg := d.scaled < 0
	v := d.scaled
	if neg {
		v = -v
	}
	intPart := v / 1000
	frac := v % 1000
	s := fmt.Sprintf("%d.%03d", intPart, frac)
	// trim trailing zeros but keep at least one fractional digit
	for len(s) > 0 && s[len(s)-1] == '0' {
		if s[len(s)-2] == '.' {
			break
		}
		s = s[:len(s)-1]
	}
	if neg {
		s = "-" + s
	}
	return s
}

// Params is an insertion-ordered mapping from lowercase parameter key to a
// bare Item (an Item whose own Params is always empty). Duplicate keys:
// last value wins, but the key's original position is kept — matching the
// same policy used for Dictionary entries.
type Params struct {
	keys   []string
	values map[string]Item
}

// NewParams builds an empty Params set.
func NewParams() *Params {
	return &Params{values: make(map[string]Item)}
}

// Set inserts or updates a parameter, preserving first-insertion order.
func (p *Params) Set(key string, value Item) {
	if p.values == nil {
		p.values = make(map[string]Item)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get looks up a parameter by key.
func (p *Params) Get(key string) (Item, bool) {
	if p == nil || p.values == nil {
		return Item{}, false
	}
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the parameter keys in insertion order.
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	return p.keys
}

// Len reports the number of parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Item is the Structured Field "bare item" sum type plus its Parameters.
type Item struct {
	Kind Kind

	Integer int64
	Decimal Decimal
	Str     string // used for both KindString and KindToken
	Bytes   []byte
	Bool    bool

	// InnerList holds the member items when Kind == KindInnerList. Each
	// member item may itself carry Params (the grammar forbids nesting
	// another inner list inside it).
	InnerList []Item

	Params *Params
}

func (i Item) paramsOrEmpty() *Params {
	if i.Params == nil {
		return NewParams()
	}
	return i.Params
}

// NewInteger builds an Integer item, validating the [-10^15, 10^15] range.
func NewInteger(v int64) (Item, error) {
	if v < minInteger || v > maxInteger {
		return Item{}, sigerr.New(sigerr.InvalidStructuredHeader, "integer %d out of range", v)
	}
	return Item{Kind: KindInteger, Integer: v}, nil
}

// NewString builds a String item, validating that it only contains the
// printable-ASCII subset %x20-%x7E.
func NewString(s string) (Item, error) {
	for _, r := range s {
		if r < 0x20 || r > 0x7E {
			return Item{}, sigerr.New(sigerr.InvalidStructuredHeader, "string contains non-printable-ASCII byte %q", r)
		}
	}
	return Item{Kind: KindString, Str: s}, nil
}

// NewToken builds a Token item, validating `(ALPHA|*|/) (tchar|:|/)*`.
func NewToken(s string) (Item, error) {
	if !isValidToken(s) {
		return Item{}, sigerr.New(sigerr.InvalidStructuredHeader, "invalid token %q", s)
	}
	return Item{Kind: KindToken, Str: s}, nil
}

// NewBytes builds a byte-sequence item from arbitrary octets.
func NewBytes(b []byte) Item {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Item{Kind: KindBytes, Bytes: cp}
}

// NewBoolean builds a Boolean item.
func NewBoolean(b bool) Item {
	return Item{Kind: KindBoolean, Bool: b}
}

// NewInnerList builds an inner-list item from its member items.
func NewInnerList(members ...Item) Item {
	return Item{Kind: KindInnerList, InnerList: members}
}

func isValidToken(s string) bool {
	if s == "" {
		return false
	}
	first := s[0]
	if !(isAlpha(first) || first == '*') {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(isTchar(c) || c == ':' || c == '/') {
			return false
		}
	}
	return true
}

func isAlpha(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isTchar(c byte) bool {
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return isAlpha(c) || isDigit(c)
}

// Member is a top-level List entry or Dictionary value: a bare item or an
// inner list (Kind == KindInnerList), both represented by Item.
type Member = Item

// List is an ordered sequence of items-or-inner-lists.
type List []Member

// DictEntry is one Dictionary entry.
type DictEntry struct {
	Key   string
	Value Member
}

// Dictionary is an ordered mapping from key to item-or-inner-list.
// Duplicate keys during Set: last value wins, first-seen position kept.
type Dictionary struct {
	entries []DictEntry
	index   map[string]int
}

// NewDictionary builds an empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{index: make(map[string]int)}
}

// Set inserts or updates a dictionary entry.
func (d *Dictionary) Set(key string, value Member) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, exists := d.index[key]; exists {
		d.entries[i].Value = value
		return
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, DictEntry{Key: key, Value: value})
}

// Get looks up an entry by key.
func (d *Dictionary) Get(key string) (Member, bool) {
	if d == nil || d.index == nil {
		return Item{}, false
	}
	i, ok := d.index[key]
	if !ok {
		return Item{}, false
	}
	return d.entries[i].Value, true
}

// Entries returns the dictionary entries in insertion order.
func (d *Dictionary) Entries() []DictEntry {
	if d == nil {
		return nil
	}
	return d.entries
}

// Len reports the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}
