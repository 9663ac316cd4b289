// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package cryptoalg

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/x509"
	"fmt"
)

func decodeRSAPrivate(material any) (*rsa.PrivateKey, error) {
	if key, ok := material.(*rsa.PrivateKey); ok {
		return key, nil
	}
	der, isDER, err := derBytes(material)
	if err != nil {
		return nil, err
	}
	if !isDER {
		return nil, fmt.Errorf("unsupported RSA private key material type %T", material)
	}
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing PKCS#8 RSA private key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("PKCS#8 key is not an RSA private key")
	}
	return rsaKey, nil
}

func decodeRSAPublic(material any) (*rsa.PublicKey, error) {
	if key, ok := material.(*rsa.PublicKey); ok {
		return key, nil
	}
	der, isDER, err := derBytes(material)
	if err != nil {
		return nil, err
	}
	if !isDER {
		return nil, fmt.Errorf("unsupported RSA public key material type %T", material)
	}
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parsing X.509 RSA public key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("X.509 key is not an RSA public key")
	}
	return rsaKey, nil
}

type rsaV15SHA256Adapter struct{}

func (rsaV15SHA256Adapter) decodePrivate(material any) (any, error) { return decodeRSAPrivate(material) }
func (rsaV15SHA256Adapter) decodePublic(material any) (any, error)  { return decodeRSAPublic(material) }

func (rsaV15SHA256Adapter) sign(key any, base []byte) ([]byte, error) {
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("expected *rsa.PrivateKey, got %T", key)
	}
	hash := sha256.Sum256(base)
	return rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, hash[:])
}

func (rsaV15SHA256Adapter) verify(key any, base, sig []byte) error {
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("expected *rsa.PublicKey, got %T", key)
	}
	hash := sha256.Sum256(base)
	return rsa.VerifyPKCS1v15(pub, crypto.SHA256, hash[:], sig)
}

type rsaPSSSHA512Adapter struct{}

func (rsaPSSSHA512Adapter) decodePrivate(material any) (any, error) { return decodeRSAPrivate(material) }
func (rsaPSSSHA512Adapter) decodePublic(material any) (any, error)  { return decodeRSAPublic(material) }

var rsaPSSOpts = &rsa.PSSOptions{SaltLength: 64, Hash: crypto.SHA512}

func (rsaPSSSHA512Adapter) sign(key any, base []byte) ([]byte, error) {
	priv, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("expected *rsa.PrivateKey, got %T", key)
	}
	hash := sha512.Sum512(base)
	return rsa.SignPSS(rand.Reader, priv, crypto.SHA512, hash[:], rsaPSSOpts)
}

func (rsaPSSSHA512Adapter) verify(key any, base, sig []byte) error {
	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return fmt.Errorf("expected *rsa.PublicKey, got %T", key)
	}
	hash := sha512.Sum512(base)
	return rsa.VerifyPSS(pub, crypto.SHA512, hash[:], sig, rsaPSSOpts)
}
