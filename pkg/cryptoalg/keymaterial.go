// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package cryptoalg

import (
	"encoding/base64"
	"fmt"
)

// derBytes normalizes material accepted for asymmetric keys — a DER byte
// slice or a base64-encoded DER string — into raw DER bytes. A material
// value that is already a decoded key object is returned via ok=false so
// the caller can type-assert it directly.
func derBytes(material any) (der []byte, ok bool, err error) {
	switch v := material.(type) {
	case []byte:
		return v, true, nil
	case string:
		b, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, true, fmt.Errorf("decoding base64 key material: %w", err)
		}
		return b, true, nil
	default:
		return nil, false, nil
	}
}

// rawBytes normalizes HMAC key material: raw bytes or a base64 string.
func rawBytes(material any) ([]byte, error) {
	switch v := material.(type) {
	case []byte:
		return v, nil
	case string:
		if b, err := base64.StdEncoding.DecodeString(v); err == nil {
			return b, nil
		}
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported HMAC key material type %T", material)
	}
}
