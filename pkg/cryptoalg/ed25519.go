// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package cryptoalg

import (
	stdcrypto "crypto/ed25519"
	"crypto/x509"
	"fmt"

	"filippo.io/edwards25519"
)

type ed25519Adapter struct{}

func (ed25519Adapter) decodePrivate(material any) (any, error) {
	if key, ok := material.(stdcrypto.PrivateKey); ok {
		return key, nil
	}
	der, isDER, err := derBytes(material)
	if err != nil {
		return nil, err
	}
	if !isDER {
		return nil, fmt.Errorf("unsupported Ed25519 private key material type %T", material)
	}
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing PKCS#8 Ed25519 private key: %w", err)
	}
	edKey, ok := key.(stdcrypto.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("PKCS#8 key is not an Ed25519 private key")
	}
	return edKey, nil
}

func (ed25519Adapter) decodePublic(material any) (any, error) {
	if key, ok := material.(stdcrypto.PublicKey); ok {
		return key, nil
	}
	der, isDER, err := derBytes(material)
	if err != nil {
		return nil, err
	}
	if !isDER {
		return nil, fmt.Errorf("unsupported Ed25519 public key material type %T", material)
	}
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing X.509 Ed25519 public key: %w", err)
	}
	edKey, ok := key.(stdcrypto.PublicKey)
	if !ok {
		return nil, fmt.Errorf("X.509 key is not an Ed25519 public key")
	}
	return edKey, nil
}

func (ed25519Adapter) sign(key any, base []byte) ([]byte, error) {
	priv, ok := key.(stdcrypto.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("expected ed25519.PrivateKey, got %T", key)
	}
	return stdcrypto.Sign(priv, base), nil
}

// verify rejects non-canonical S scalars before falling back to the stdlib
// verifier, which alone would silently accept a handful of S values
// congruent mod L that RFC 8032 requires be rejected.
func (ed25519Adapter) verify(key any, base, sig []byte) error {
	pub, ok := key.(stdcrypto.PublicKey)
	if !ok {
		return fmt.Errorf("expected ed25519.PublicKey, got %T", key)
	}
	if len(sig) != stdcrypto.SignatureSize {
		return fmt.Errorf("Ed25519 signature must be exactly %d bytes, got %d", stdcrypto.SignatureSize, len(sig))
	}
	s := sig[32:64]
	if _, err := new(edwards25519.Scalar).SetCanonicalBytes(s); err != nil {
		return fmt.Errorf("non-canonical S scalar: %w", err)
	}
	if !stdcrypto.Verify(pub, base, sig) {
		return fmt.Errorf("Ed25519 signature does not verify")
	}
	return nil
}
