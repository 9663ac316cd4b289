// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
//
// sage-a2a-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// sage-a2a-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with sage-a2a-go.  If not, see <https://www.gnu.org/licenses/>.

// Package sfv implements the Structured Field Values grammar (RFC 8941):
// Items, Lists, Dictionaries and their Parameters. Every header value this
// module reads or writes — Signature-Input, Signature, Content-Digest,
// Want-Content-Digest, and any component selected with the sf/key/bs flags —
// is expressed in this grammar, so this package has no dependency on the
// rest of the module.
//
// # Values
//
//	item, _ := sfv.ParseItem(`"hello world"`)
//	list, _ := sfv.ParseList(`sig1, sig2;foo=1`)
//	dict, _ := sfv.ParseDictionary(`a=1, b=2;x=?0`)
//
// Parsing and serialization round-trip: parse(serialize(x)) == x for any
// constructible value, and serialize(parse(s)) yields a canonical,
// idempotent form.
package sfv
