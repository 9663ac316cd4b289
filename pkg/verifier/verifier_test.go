// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package verifier

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/sigproto/httpsig/pkg/component"
	"github.com/sigproto/httpsig/pkg/cryptoalg"
	"github.com/sigproto/httpsig/pkg/policy"
	"github.com/sigproto/httpsig/pkg/sigerr"
	"github.com/sigproto/httpsig/pkg/signature"
	"github.com/sigproto/httpsig/pkg/signer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() *component.Context {
	headers := component.NewFields()
	headers.Add("Content-Type", "application/json")
	return &component.Context{
		Method:    "POST",
		Scheme:    "https",
		Authority: "example.com",
		Path:      "/foo",
		Headers:   headers,
	}
}

func signFixture(t *testing.T, components []signature.Declared, params *signature.Parameters) (string, string, ed25519.PublicKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	result, err := signer.New().Sign(context.Background(), &signer.Spec{
		Label:      "sig1",
		Context:    testContext(),
		Components: components,
		Parameters: params,
		Algorithm:  cryptoalg.Ed25519,
		Key:        priv,
	})
	require.NoError(t, err)
	return result.SignatureInput, result.Signature, pub
}

func keyGetterFor(pub ed25519.PublicKey) KeyGetter {
	return func(string) (cryptoalg.Algorithm, any, error) {
		return cryptoalg.Ed25519, pub, nil
	}
}

func TestVerify_SuccessRoundTrip(t *testing.T) {
	components := []signature.Declared{
		{Component: component.Component{Name: component.Method}},
		{Component: component.Component{Name: "content-type"}},
	}
	sigInput, sig, pub := signFixture(t, components, signature.NewParameters().SetKeyID("k1").SetCreated(1000))

	err := New().Verify(context.Background(), &VerificationSpec{
		SignatureInput: sigInput,
		Signature:      sig,
		Context:        testContext(),
		Now:            time.Unix(1005, 0),
		MaximumSkew:    5 * time.Second,
		KeyGetter:      keyGetterFor(pub),
	})
	assert.NoError(t, err)
}

func TestVerify_AmbiguousLabelNoEntries(t *testing.T) {
	err := New().Verify(context.Background(), &VerificationSpec{
		SignatureInput: "",
		Signature:      "",
		Context:        testContext(),
		KeyGetter:      func(string) (cryptoalg.Algorithm, any, error) { return "", nil, nil },
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigerr.Sentinel(sigerr.AmbiguousLabel))
}

func TestVerify_AmbiguousLabelMultipleEntries(t *testing.T) {
	components := []signature.Declared{{Component: component.Component{Name: component.Method}}}
	sigInput, sig, pub := signFixture(t, components, signature.NewParameters().SetCreated(1000))
	sigInput += ", sig2=sig1"

	err := New().Verify(context.Background(), &VerificationSpec{
		SignatureInput: sigInput,
		Signature:      sig,
		Context:        testContext(),
		Now:            time.Unix(1000, 0),
		KeyGetter:      keyGetterFor(pub),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigerr.Sentinel(sigerr.AmbiguousLabel))
}

func TestVerify_RequiredComponentMissing(t *testing.T) {
	components := []signature.Declared{{Component: component.Component{Name: component.Method}}}
	sigInput, sig, pub := signFixture(t, components, signature.NewParameters().SetCreated(1000))

	err := New().Verify(context.Background(), &VerificationSpec{
		SignatureInput: sigInput,
		Signature:      sig,
		Context:        testContext(),
		Now:            time.Unix(1000, 0),
		RequiredComponents: []component.Component{
			{Name: "content-type"},
		},
		KeyGetter: keyGetterFor(pub),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigerr.Sentinel(sigerr.MissingComponent))
}

func TestVerify_RequiredIfPresentMissing(t *testing.T) {
	components := []signature.Declared{{Component: component.Component{Name: component.Method}}}
	sigInput, sig, pub := signFixture(t, components, signature.NewParameters().SetCreated(1000))

	err := New().Verify(context.Background(), &VerificationSpec{
		SignatureInput: sigInput,
		Signature:      sig,
		Context:        testContext(),
		Now:            time.Unix(1000, 0),
		RequiredIfPresentComponents: []component.Component{
			{Name: "content-type"},
		},
		KeyGetter: keyGetterFor(pub),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigerr.Sentinel(sigerr.MissingComponent))
}

func TestVerify_ForbiddenParameterPresent(t *testing.T) {
	components := []signature.Declared{{Component: component.Component{Name: component.Method}}}
	sigInput, sig, pub := signFixture(t, components, signature.NewParameters().SetCreated(1000).SetTag("test"))

	err := New().Verify(context.Background(), &VerificationSpec{
		SignatureInput:      sigInput,
		Signature:           sig,
		Context:             testContext(),
		Now:                 time.Unix(1000, 0),
		ForbiddenParameters: []string{"tag"},
		KeyGetter:           keyGetterFor(pub),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigerr.Sentinel(sigerr.ForbiddenParameter))
}

func TestVerify_MissingRequiredParameter(t *testing.T) {
	components := []signature.Declared{{Component: component.Component{Name: component.Method}}}
	sigInput, sig, pub := signFixture(t, components, signature.NewParameters().SetCreated(1000))

	err := New().Verify(context.Background(), &VerificationSpec{
		SignatureInput:     sigInput,
		Signature:          sig,
		Context:            testContext(),
		Now:                time.Unix(1000, 0),
		RequiredParameters: []string{"nonce"},
		KeyGetter:          keyGetterFor(pub),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigerr.Sentinel(sigerr.MissingParameter))
}

func TestVerify_FutureSignature(t *testing.T) {
	components := []signature.Declared{{Component: component.Component{Name: component.Method}}}
	sigInput, sig, pub := signFixture(t, components, signature.NewParameters().SetCreated(2000))

	err := New().Verify(context.Background(), &VerificationSpec{
		SignatureInput: sigInput,
		Signature:      sig,
		Context:        testContext(),
		Now:            time.Unix(1000, 0),
		MaximumSkew:    5 * time.Second,
		KeyGetter:      keyGetterFor(pub),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigerr.Sentinel(sigerr.FutureSignature))
}

func TestVerify_TooOld(t *testing.T) {
	components := []signature.Declared{{Component: component.Component{Name: component.Method}}}
	sigInput, sig, pub := signFixture(t, components, signature.NewParameters().SetCreated(1000))

	maxAge := 10 * time.Second
	err := New().Verify(context.Background(), &VerificationSpec{
		SignatureInput: sigInput,
		Signature:      sig,
		Context:        testContext(),
		Now:            time.Unix(2000, 0),
		MaximumAge:     &maxAge,
		KeyGetter:      keyGetterFor(pub),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigerr.Sentinel(sigerr.TooOld))
}

func TestVerify_Expired(t *testing.T) {
	components := []signature.Declared{{Component: component.Component{Name: component.Method}}}
	sigInput, sig, pub := signFixture(t, components, signature.NewParameters().SetCreated(1000).SetExpires(1010))

	err := New().Verify(context.Background(), &VerificationSpec{
		SignatureInput: sigInput,
		Signature:      sig,
		Context:        testContext(),
		Now:            time.Unix(1100, 0),
		MaximumSkew:    5 * time.Second,
		KeyGetter:      keyGetterFor(pub),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigerr.Sentinel(sigerr.Expired))
}

func TestVerify_KeyGetterErrorWrapped(t *testing.T) {
	components := []signature.Declared{{Component: component.Component{Name: component.Method}}}
	sigInput, sig, _ := signFixture(t, components, signature.NewParameters().SetCreated(1000).SetKeyID("missing"))

	err := New().Verify(context.Background(), &VerificationSpec{
		SignatureInput: sigInput,
		Signature:      sig,
		Context:        testContext(),
		Now:            time.Unix(1000, 0),
		KeyGetter: func(keyID string) (cryptoalg.Algorithm, any, error) {
			return "", nil, assertErr("no such key")
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigerr.Sentinel(sigerr.KeyError))
}

type assertErr string

func (e assertErr) Error() string { return string(e) }

func TestVerify_PolicySeedsMaximumAge(t *testing.T) {
	components := []signature.Declared{{Component: component.Component{Name: component.Method}}}
	sigInput, sig, pub := signFixture(t, components, signature.NewParameters().SetCreated(1000))

	maxAge := int64(10)
	err := New().Verify(context.Background(), &VerificationSpec{
		SignatureInput: sigInput,
		Signature:      sig,
		Context:        testContext(),
		Now:            time.Unix(2000, 0),
		Policy:         &policy.Policy{DefaultMaximumAgeSeconds: &maxAge},
		KeyGetter:      keyGetterFor(pub),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigerr.Sentinel(sigerr.TooOld))
}

func TestVerifyAll_MixedResultsInInputOrder(t *testing.T) {
	components := []signature.Declared{{Component: component.Component{Name: component.Method}}}
	goodInput, goodSig, goodPub := signFixture(t, components, signature.NewParameters().SetCreated(1000))
	badInput, badSig, _ := signFixture(t, components, signature.NewParameters().SetCreated(2000))

	results := New().VerifyAll(context.Background(), []*VerificationSpec{
		{
			SignatureInput: goodInput,
			Signature:      goodSig,
			Context:        testContext(),
			Now:            time.Unix(1000, 0),
			KeyGetter:      keyGetterFor(goodPub),
		},
		{
			SignatureInput: badInput,
			Signature:      badSig,
			Context:        testContext(),
			Now:            time.Unix(1000, 0),
			MaximumSkew:    5 * time.Second,
			KeyGetter:      keyGetterFor(goodPub),
		},
	})

	require.Len(t, results, 2)
	assert.NoError(t, results[0])
	require.Error(t, results[1])
	assert.ErrorIs(t, results[1], sigerr.Sentinel(sigerr.FutureSignature))
}

func TestVerify_InvalidSignatureBytesTampered(t *testing.T) {
	components := []signature.Declared{{Component: component.Component{Name: component.Method}}}
	sigInput, _, pub := signFixture(t, components, signature.NewParameters().SetCreated(1000))

	// a well-formed but unrelated signature value of the right length
	forged := "sig1=:AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA==:"

	err := New().Verify(context.Background(), &VerificationSpec{
		SignatureInput: sigInput,
		Signature:      forged,
		Context:        testContext(),
		Now:            time.Unix(1000, 0),
		KeyGetter:      keyGetterFor(pub),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigerr.Sentinel(sigerr.InvalidSignature))
}

func TestVerify_PolicyRejectsDisallowedAlgorithm(t *testing.T) {
	components := []signature.Declared{{Component: component.Component{Name: component.Method}}}
	sigInput, sig, pub := signFixture(t, components, signature.NewParameters().SetCreated(1000))

	err := New().Verify(context.Background(), &VerificationSpec{
		SignatureInput: sigInput,
		Signature:      sig,
		Context:        testContext(),
		Now:            time.Unix(1000, 0),
		KeyGetter:      keyGetterFor(pub),
		Policy:         &policy.Policy{AllowedAlgorithms: []string{"ecdsa-p256-sha256"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sigerr.Sentinel(sigerr.UnsupportedAlgorithm))
}
