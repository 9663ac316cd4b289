// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package cryptoalg

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEd25519_SignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	sig, err := Sign(Ed25519, priv, []byte("signature base"))
	require.NoError(t, err)
	assert.Len(t, sig, ed25519.SignatureSize)
	assert.NoError(t, Verify(Ed25519, pub, []byte("signature base"), sig))
}

func TestEd25519_WrongKeyFails(t *testing.T) {
	_, priv, _ := ed25519.GenerateKey(rand.Reader)
	other, _, _ := ed25519.GenerateKey(rand.Reader)

	sig, err := Sign(Ed25519, priv, []byte("base"))
	require.NoError(t, err)
	assert.Error(t, Verify(Ed25519, other, []byte("base"), sig))
}

func TestECDSAP256_SignatureIsP1363NotDER(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	sig, err := Sign(ECDSAP256, priv, []byte("base"))
	require.NoError(t, err)
	assert.Len(t, sig, 64)
	assert.NotEqual(t, byte(0x30), sig[0], "P1363 signature must not look like a DER sequence")
	assert.NoError(t, Verify(ECDSAP256, &priv.PublicKey, []byte("base"), sig))
}

func TestECDSAP384_SignVerifyRoundTrip(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)

	sig, err := Sign(ECDSAP384, priv, []byte("base"))
	require.NoError(t, err)
	assert.Len(t, sig, 96)
	assert.NoError(t, Verify(ECDSAP384, &priv.PublicKey, []byte("base"), sig))
}

func TestRSAv15_SignVerifyRoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	sig, err := Sign(RSAv15SHA256, priv, []byte("base"))
	require.NoError(t, err)
	assert.NoError(t, Verify(RSAv15SHA256, &priv.PublicKey, []byte("base"), sig))
}

func TestRSAPSS_SignVerifyRoundTrip(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	sig, err := Sign(RSAPSSSHA512, priv, []byte("base"))
	require.NoError(t, err)
	assert.NoError(t, Verify(RSAPSSSHA512, &priv.PublicKey, []byte("base"), sig))
}

func TestHMACSHA256_SignVerifyRoundTrip(t *testing.T) {
	secret := []byte("shared-secret")
	sig, err := Sign(HMACSHA256, secret, []byte("base"))
	require.NoError(t, err)
	assert.NoError(t, Verify(HMACSHA256, secret, []byte("base"), sig))
}

func TestSecp256k1_SignVerifyRoundTrip(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	sig, err := Sign(ECDSASecp256k1, priv, []byte("base"))
	require.NoError(t, err)
	assert.Len(t, sig, 64)
	assert.NoError(t, Verify(ECDSASecp256k1, priv.PubKey(), []byte("base"), sig))
}

func TestDecodePrivateKey_UnsupportedAlgorithm(t *testing.T) {
	_, err := DecodePrivateKey(Algorithm("rsa-v1_5-sha1"), []byte{})
	require.Error(t, err)
}

func TestDecodePublicKey_FromBase64DER(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(priv.Public())
	require.NoError(t, err)

	key, err := DecodePublicKey(Ed25519, base64.StdEncoding.EncodeToString(der))
	require.NoError(t, err)
	_, ok := key.(ed25519.PublicKey)
	assert.True(t, ok)
}
