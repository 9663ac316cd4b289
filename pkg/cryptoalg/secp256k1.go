// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package cryptoalg

import (
	"crypto/sha256"
	"encoding/asn1"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// secp256k1Adapter backs ecdsa-secp256k1-sha256, grounded on the teacher's
// getAlgorithm mapping crypto.KeyTypeSecp256k1 to "es256k". crypto/x509
// does not register the secp256k1 curve, so key material here is the raw
// serialized form rather than PKCS#8/X.509 DER: a 32-byte scalar for
// private keys, a compressed or uncompressed SEC1 point for public keys.
type secp256k1Adapter struct{}

func (secp256k1Adapter) decodePrivate(material any) (any, error) {
	if key, ok := material.(*secp256k1.PrivateKey); ok {
		return key, nil
	}
	raw, _, err := derBytes(material)
	if err != nil {
		return nil, err
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("secp256k1 private key must be 32 raw bytes, got %d", len(raw))
	}
	return secp256k1.PrivKeyFromBytes(raw), nil
}

func (secp256k1Adapter) decodePublic(material any) (any, error) {
	if key, ok := material.(*secp256k1.PublicKey); ok {
		return key, nil
	}
	raw, _, err := derBytes(material)
	if err != nil {
		return nil, err
	}
	pub, err := secp256k1.ParsePubKey(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing SEC1 secp256k1 public key: %w", err)
	}
	return pub, nil
}

func (secp256k1Adapter) sign(key any, base []byte) ([]byte, error) {
	priv, ok := key.(*secp256k1.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("expected *secp256k1.PrivateKey, got %T", key)
	}
	hash := sha256.Sum256(base)
	sig := ecdsa.Sign(priv, hash[:])
	r, s, err := parseDERSignature(sig.Serialize())
	if err != nil {
		return nil, err
	}
	return encodeP1363(r, s, 32), nil
}

func (secp256k1Adapter) verify(key any, base, sig []byte) error {
	pub, ok := key.(*secp256k1.PublicKey)
	if !ok {
		return fmt.Errorf("expected *secp256k1.PublicKey, got %T", key)
	}
	r, s, err := toRaw(sig, 32)
	if err != nil {
		return err
	}
	der, err := encodeDERSignature(r, s)
	if err != nil {
		return err
	}
	parsed, err := ecdsa.ParseDERSignature(der)
	if err != nil {
		return fmt.Errorf("re-encoding signature for verification: %w", err)
	}
	hash := sha256.Sum256(base)
	if !parsed.Verify(hash[:], pub) {
		return fmt.Errorf("secp256k1 signature does not verify")
	}
	return nil
}

func parseDERSignature(der []byte) (r, s *big.Int, err error) {
	var ds struct{ R, S *big.Int }
	if _, err := asn1.Unmarshal(der, &ds); err != nil {
		return nil, nil, fmt.Errorf("asn.1 unmarshal: %w", err)
	}
	return ds.R, ds.S, nil
}

func encodeDERSignature(r, s *big.Int) ([]byte, error) {
	return asn1.Marshal(struct{ R, S *big.Int }{r, s})
}
