// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package sfv

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/sigproto/httpsig/pkg/sigerr"
)

// SerializeItem renders a single Item (bare item plus parameters), or an
// inner list plus its parameters, in canonical form.
func SerializeItem(item Item) (string, error) {
	var b strings.Builder
	if err := writeMember(&b, item); err != nil {
		return "", err
	}
	return b.String(), nil
}

// SerializeList renders a List in canonical form.
func SerializeList(list List) (string, error) {
	var b strings.Builder
	for i, member := range list {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := writeMember(&b, member); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// SerializeDictionary renders a Dictionary in canonical form.
func SerializeDictionary(dict *Dictionary) (string, error) {
	var b strings.Builder
	for i, entry := range dict.Entries() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(entry.Key)
		if entry.Value.Kind == KindBoolean && entry.Value.Bool {
			if err := writeParams(&b, entry.Value.paramsOrEmpty()); err != nil {
				return "", err
			}
			continue
		}
		b.WriteByte('=')
		if err := writeMember(&b, entry.Value); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeMember(b *strings.Builder, m Member) error {
	if m.Kind == KindInnerList {
		return writeInnerList(b, m)
	}
	return writeItem(b, m)
}

func writeInnerList(b *strings.Builder, item Item) error {
	b.WriteByte('(')
	for i, member := range item.InnerList {
		if i > 0 {
			b.WriteByte(' ')
		}
		if err := writeItem(b, member); err != nil {
			return err
		}
	}
	b.WriteByte(')')
	return writeParams(b, item.paramsOrEmpty())
}

func writeItem(b *strings.Builder, item Item) error {
	if err := writeBareItem(b, item); err != nil {
		return err
	}
	return writeParams(b, item.paramsOrEmpty())
}

func writeBareItem(b *strings.Builder, item Item) error {
	switch item.Kind {
	case KindInteger:
		if item.Integer < minInteger || item.Integer > maxInteger {
			return sigerr.New(sigerr.InvalidStructuredHeader, "integer %d out of range", item.Integer)
		}
		b.WriteString(strconv.FormatInt(item.Integer, 10))
	case KindDecimal:
		b.WriteString(item.Decimal.String())
	case KindString:
		b.WriteByte('"')
		for _, r := range item.Str {
			if r == '"' || r == '\\' {
				b.WriteByte('\\')
			}
			if r < 0x20 || r > 0x7E {
				return sigerr.New(sigerr.InvalidStructuredHeader, "string contains non-printable-ASCII byte %q", r)
			}
			b.WriteRune(r)
		}
		b.WriteByte('"')
	case KindToken:
		if !isValidToken(item.Str) {
			return sigerr.New(sigerr.InvalidStructuredHeader, "invalid token %q", item.Str)
		}
		b.WriteString(item.Str)
	case KindBytes:
		b.WriteByte(':')
		b.WriteString(base64.StdEncoding.EncodeToString(item.Bytes))
		b.WriteByte(':')
	case KindBoolean:
		if item.Bool {
			b.WriteString("?1")
		} else {
			b.WriteString("?0")
		}
	case KindInnerList:
		return sigerr.New(sigerr.InvalidStructuredHeader, "inner list cannot appear as a bare item")
	default:
		return sigerr.New(sigerr.InvalidStructuredHeader, "unknown item kind %v", item.Kind)
	}
	return nil
}

func writeParams(b *strings.Builder, params *Params) error {
	for _, key := range params.Keys() {
		v, _ := params.Get(key)
		b.WriteByte(';')
		b.WriteString(key)
		if v.Kind == KindBoolean && v.Bool {
			continue
		}
		b.WriteByte('=')
		if err := writeBareItem(b, v); err != nil {
			return err
		}
	}
	return nil
}
