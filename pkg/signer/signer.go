// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package signer

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sigproto/httpsig/pkg/component"
	"github.com/sigproto/httpsig/pkg/cryptoalg"
	"github.com/sigproto/httpsig/pkg/policy"
	"github.com/sigproto/httpsig/pkg/sfv"
	"github.com/sigproto/httpsig/pkg/sigerr"
	"github.com/sigproto/httpsig/pkg/signature"
)

// Spec is an immutable bundle binding everything a single Sign call needs:
// the label under which the signature is registered, the message context,
// the declared components, the signature parameters, and the signing key.
// Policy is optional; when set and Components is empty, its
// RequiredComponents seed the declared component list.
type Spec struct {
	Label      string
	Context    *component.Context
	Components []signature.Declared
	Parameters *signature.Parameters
	Algorithm  cryptoalg.Algorithm
	Key        any
	Policy     *policy.Policy
}

// Result carries the two output header values plus the base string for
// debugging, per §4.6 step 5.
type Result struct {
	SignatureInput string
	Signature      string
	Base           string
}

// Signer is a stateless value computation: build base, sign, format.
type Signer struct{}

// New returns a ready-to-use Signer.
func New() *Signer { return &Signer{} }

// Sign validates spec, builds the signature base, signs it with the chosen
// algorithm, and formats Signature-Input/Signature.
func (s *Signer) Sign(ctx context.Context, spec *Spec) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if spec == nil {
		return nil, sigerr.New(sigerr.MissingParameter, "signing spec is nil")
	}
	if spec.Label == "" {
		return nil, sigerr.New(sigerr.MissingParameter, "signature label is required")
	}
	components := spec.Components
	if len(components) == 0 && spec.Policy != nil {
		for _, name := range spec.Policy.RequiredComponents {
			components = append(components, signature.Declared{Component: component.Component{Name: name}})
		}
	}
	if len(components) == 0 {
		return nil, sigerr.New(sigerr.MissingComponent, "at least one component must be declared")
	}
	if spec.Policy != nil && !spec.Policy.AlgorithmAllowed(string(spec.Algorithm)) {
		return nil, sigerr.New(sigerr.UnsupportedAlgorithm, "algorithm %q is not in the policy allow-list", spec.Algorithm)
	}

	params := spec.Parameters
	if params == nil {
		params = signature.NewParameters()
	}
	if _, ok := params.Nonce(); !ok {
		params.SetNonce(uuid.NewString())
	}

	base, err := signature.Build(spec.Context, components, params)
	if err != nil {
		return nil, err
	}

	sig, err := cryptoalg.Sign(spec.Algorithm, spec.Key, []byte(base.String))
	if err != nil {
		return nil, err
	}

	sigValue, err := sfv.SerializeItem(sfv.NewBytes(sig))
	if err != nil {
		return nil, err
	}

	log.Printf("signer: signed label=%q algorithm=%s components=%d", spec.Label, spec.Algorithm, len(base.Covered))

	return &Result{
		SignatureInput: spec.Label + "=" + base.ParamsLine,
		Signature:      spec.Label + "=" + sigValue,
		Base:           base.String,
	}, nil
}
