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

// Package digest computes and verifies the Content-Digest and
// Want-Content-Digest header fields, layered directly on pkg/sfv: both
// fields are Structured Dictionaries, so this package never touches raw
// header strings outside of sfv.ParseDictionary/SerializeDictionary.
//
//	value, _ := digest.Calculate([]byte(`{"id":5}`), digest.SHA256)
//	err := digest.Verify(value, []byte(`{"id":5}`))
package digest
