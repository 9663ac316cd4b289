// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package cryptoalg

import "github.com/sigproto/httpsig/pkg/sigerr"

// Algorithm is a registered signature algorithm token, as it appears in the
// alg signature parameter.
type Algorithm string

const (
	RSAv15SHA256 Algorithm = "rsa-v1_5-sha256"
	RSAPSSSHA512 Algorithm = "rsa-pss-sha512"
	ECDSAP256    Algorithm = "ecdsa-p256-sha256"
	ECDSAP384    Algorithm = "ecdsa-p384-sha384"
	Ed25519      Algorithm = "ed25519"
	HMACSHA256   Algorithm = "hmac-sha256"

	// ECDSASecp256k1 extends the registry with the curve the teacher's key
	// abstraction (crypto.KeyTypeSecp256k1) already supports.
	ECDSASecp256k1 Algorithm = "ecdsa-secp256k1-sha256"
)

// adapter is the per-algorithm primitive: decode keys, sign, verify.
type adapter interface {
	decodePrivate(material any) (any, error)
	decodePublic(material any) (any, error)
	sign(key any, base []byte) ([]byte, error)
	verify(key any, base, sig []byte) error
}

var adapters = map[Algorithm]adapter{
	RSAv15SHA256:   rsaV15SHA256Adapter{},
	RSAPSSSHA512:   rsaPSSSHA512Adapter{},
	ECDSAP256:      ecdsaAdapter{curveBits: 256},
	ECDSAP384:      ecdsaAdapter{curveBits: 384},
	Ed25519:        ed25519Adapter{},
	HMACSHA256:     hmacSHA256Adapter{},
	ECDSASecp256k1: secp256k1Adapter{},
}

func lookup(alg Algorithm) (adapter, error) {
	a, ok := adapters[alg]
	if !ok {
		return nil, sigerr.New(sigerr.UnsupportedAlgorithm, "unsupported signature algorithm %q", alg)
	}
	return a, nil
}

// DecodePrivateKey decodes signing key material for alg. material may be
// an already-decoded key object, a base64-encoded DER string, or a DER/raw
// byte slice (HMAC only).
func DecodePrivateKey(alg Algorithm, material any) (any, error) {
	a, err := lookup(alg)
	if err != nil {
		return nil, err
	}
	key, err := a.decodePrivate(material)
	if err != nil {
		return nil, sigerr.Wrap(sigerr.KeyError, err, "decoding private key for %s", alg)
	}
	return key, nil
}

// DecodePublicKey decodes verification key material for alg.
func DecodePublicKey(alg Algorithm, material any) (any, error) {
	a, err := lookup(alg)
	if err != nil {
		return nil, err
	}
	key, err := a.decodePublic(material)
	if err != nil {
		return nil, sigerr.Wrap(sigerr.KeyError, err, "decoding public key for %s", alg)
	}
	return key, nil
}

// Sign computes the wire-form signature bytes for base under key using alg.
func Sign(alg Algorithm, key any, base []byte) ([]byte, error) {
	a, err := lookup(alg)
	if err != nil {
		return nil, err
	}
	sig, err := a.sign(key, base)
	if err != nil {
		return nil, sigerr.Wrap(sigerr.CryptoError, err, "signing with %s", alg)
	}
	return sig, nil
}

// Verify checks sig against base under key using alg.
func Verify(alg Algorithm, key any, base, sig []byte) error {
	a, err := lookup(alg)
	if err != nil {
		return err
	}
	if err := a.verify(key, base, sig); err != nil {
		return sigerr.Wrap(sigerr.InvalidSignature, err, "verifying with %s", alg)
	}
	return nil
}
