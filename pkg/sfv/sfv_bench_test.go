// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package sfv

import "testing"

func BenchmarkParseItem_Integer(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := ParseItem("1719234000"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseDictionary_SignatureInput(b *testing.B) {
	const input = `sig1=("@method" "@authority" "@path" "content-digest");keyid="test-key";alg="ed25519";created=1719234000`
	for i := 0; i < b.N; i++ {
		if _, err := ParseDictionary(input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSerializeDictionary_SignatureInput(b *testing.B) {
	dict, err := ParseDictionary(`sig1=("@method" "@authority" "@path" "content-digest");keyid="test-key";alg="ed25519";created=1719234000`)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := SerializeDictionary(dict); err != nil {
			b.Fatal(err)
		}
	}
}
