// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package cryptoalg

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
)

type hmacSHA256Adapter struct{}

func (hmacSHA256Adapter) decodePrivate(material any) (any, error) { return rawBytes(material) }
func (hmacSHA256Adapter) decodePublic(material any) (any, error)  { return rawBytes(material) }

func (hmacSHA256Adapter) sign(key any, base []byte) ([]byte, error) {
	secret, ok := key.([]byte)
	if !ok {
		return nil, fmt.Errorf("expected []byte HMAC secret, got %T", key)
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write(base)
	return mac.Sum(nil), nil
}

func (a hmacSHA256Adapter) verify(key any, base, sig []byte) error {
	computed, err := a.sign(key, base)
	if err != nil {
		return err
	}
	if !hmac.Equal(computed, sig) {
		return fmt.Errorf("HMAC does not match")
	}
	return nil
}
