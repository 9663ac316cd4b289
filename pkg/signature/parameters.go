// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package signature

import "github.com/sigproto/httpsig/pkg/sfv"

// Parameters is the ordered subset of signature parameters
// {created, expires, nonce, alg, keyid, tag}. Order is insertion order, the
// same order in which they appear as the @signature-params inner list's own
// parameters.
type Parameters struct {
	p *sfv.Params
}

// NewParameters builds an empty, ordered parameter set.
func NewParameters() *Parameters {
	return &Parameters{p: sfv.NewParams()}
}

func (p *Parameters) SetCreated(unixSeconds int64) *Parameters {
	item, _ := sfv.NewInteger(unixSeconds)
	p.p.Set("created", item)
	return p
}

func (p *Parameters) SetExpires(unixSeconds int64) *Parameters {
	item, _ := sfv.NewInteger(unixSeconds)
	p.p.Set("expires", item)
	return p
}

func (p *Parameters) SetNonce(nonce string) *Parameters {
	item, _ := sfv.NewString(nonce)
	p.p.Set("nonce", item)
	return p
}

func (p *Parameters) SetAlg(alg string) *Parameters {
	item, _ := sfv.NewToken(alg)
	p.p.Set("alg", item)
	return p
}

func (p *Parameters) SetKeyID(keyID string) *Parameters {
	item, _ := sfv.NewString(keyID)
	p.p.Set("keyid", item)
	return p
}

func (p *Parameters) SetTag(tag string) *Parameters {
	item, _ := sfv.NewString(tag)
	p.p.Set("tag", item)
	return p
}

// Created returns the created parameter, if set.
func (p *Parameters) Created() (int64, bool) {
	item, ok := p.p.Get("created")
	return item.Integer, ok
}

// Expires returns the expires parameter, if set.
func (p *Parameters) Expires() (int64, bool) {
	item, ok := p.p.Get("expires")
	return item.Integer, ok
}

// Nonce returns the nonce parameter, if set.
func (p *Parameters) Nonce() (string, bool) {
	item, ok := p.p.Get("nonce")
	return item.Str, ok
}

// Alg returns the alg parameter, if set.
func (p *Parameters) Alg() (string, bool) {
	item, ok := p.p.Get("alg")
	return item.Str, ok
}

// KeyID returns the keyid parameter, if set.
func (p *Parameters) KeyID() (string, bool) {
	item, ok := p.p.Get("keyid")
	return item.Str, ok
}

// Tag returns the tag parameter, if set.
func (p *Parameters) Tag() (string, bool) {
	item, ok := p.p.Get("tag")
	return item.Str, ok
}

// Has reports whether key is present, for required/forbidden-parameter
// enforcement by the verifier.
func (p *Parameters) Has(key string) bool {
	_, ok := p.p.Get(key)
	return ok
}

// sfvParams exposes the underlying ordered set for base construction.
func (p *Parameters) sfvParams() *sfv.Params { return p.p }

// parametersFromSFV wraps an already-parsed ordered parameter set, used by
// the verifier when rebuilding Parameters from a parsed Signature-Input
// inner list.
func parametersFromSFV(p *sfv.Params) *Parameters {
	if p == nil {
		p = sfv.NewParams()
	}
	return &Parameters{p: p}
}
