// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package cryptoalg

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/x509"
	"encoding/asn1"
	"fmt"
	"math/big"
)

type ecdsaAdapter struct {
	curveBits int
}

func (a ecdsaAdapter) curve() elliptic.Curve {
	if a.curveBits == 384 {
		return elliptic.P384()
	}
	return elliptic.P256()
}

func (a ecdsaAdapter) coordSize() int { return (a.curveBits + 7) / 8 }

func (a ecdsaAdapter) decodePrivate(material any) (any, error) {
	if key, ok := material.(*ecdsa.PrivateKey); ok {
		return key, nil
	}
	der, isDER, err := derBytes(material)
	if err != nil {
		return nil, err
	}
	if !isDER {
		return nil, fmt.Errorf("unsupported ECDSA private key material type %T", material)
	}
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing PKCS#8 ECDSA private key: %w", err)
	}
	ecKey, ok := key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("PKCS#8 key is not an ECDSA private key")
	}
	if ecKey.Curve != a.curve() {
		return nil, fmt.Errorf("ECDSA key curve does not match algorithm")
	}
	return ecKey, nil
}

func (a ecdsaAdapter) decodePublic(material any) (any, error) {
	if key, ok := material.(*ecdsa.PublicKey); ok {
		return key, nil
	}
	der, isDER, err := derBytes(material)
	if err != nil {
		return nil, err
	}
	if !isDER {
		return nil, fmt.Errorf("unsupported ECDSA public key material type %T", material)
	}
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing X.509 ECDSA public key: %w", err)
	}
	ecKey, ok := key.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("X.509 key is not an ECDSA public key")
	}
	if ecKey.Curve != a.curve() {
		return nil, fmt.Errorf("ECDSA key curve does not match algorithm")
	}
	return ecKey, nil
}

func (a ecdsaAdapter) hash(base []byte) []byte {
	if a.curveBits == 384 {
		h := sha512.Sum384(base)
		return h[:]
	}
	h := sha256.Sum256(base)
	return h[:]
}

func (a ecdsaAdapter) sign(key any, base []byte) ([]byte, error) {
	priv, ok := key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("expected *ecdsa.PrivateKey, got %T", key)
	}
	r, s, err := ecdsa.Sign(rand.Reader, priv, a.hash(base))
	if err != nil {
		return nil, err
	}
	return encodeP1363(r, s, a.coordSize()), nil
}

func (a ecdsaAdapter) verify(key any, base, sig []byte) error {
	pub, ok := key.(*ecdsa.PublicKey)
	if !ok {
		return fmt.Errorf("expected *ecdsa.PublicKey, got %T", key)
	}
	r, s, err := toRaw(sig, a.coordSize())
	if err != nil {
		return err
	}
	if !ecdsa.Verify(pub, a.hash(base), r, s) {
		return fmt.Errorf("ECDSA signature does not verify")
	}
	return nil
}

// encodeP1363 renders r and s as the IEEE P1363 fixed-width wire form
// r‖s, each left-padded to coordSize bytes.
func encodeP1363(r, s *big.Int, coordSize int) []byte {
	out := make([]byte, 2*coordSize)
	r.FillBytes(out[:coordSize])
	s.FillBytes(out[coordSize:])
	return out
}

// toRaw coerces an ECDSA signature to (r, s), grounded on the same
// leniency the teacher's toRaw64 applies: a fixed-width P1363 signature is
// split into its two coordSize-byte halves, while a DER-encoded one (as
// some providers emit) is decoded into its r and s integers.
func toRaw(sig []byte, coordSize int) (r, s *big.Int, err error) {
	if len(sig) == 2*coordSize {
		return new(big.Int).SetBytes(sig[:coordSize]), new(big.Int).SetBytes(sig[coordSize:]), nil
	}
	if len(sig) >= 8 && sig[0] == 0x30 {
		var ds struct{ R, S *big.Int }
		if _, err := asn1.Unmarshal(sig, &ds); err != nil {
			return nil, nil, fmt.Errorf("asn.1 unmarshal: %w", err)
		}
		if ds.R == nil || ds.S == nil || ds.R.Sign() <= 0 || ds.S.Sign() <= 0 {
			return nil, nil, fmt.Errorf("invalid DER r/s")
		}
		return ds.R, ds.S, nil
	}
	return nil, nil, fmt.Errorf("unsupported ECDSA signature format (len=%d)", len(sig))
}
