// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package signature

import (
	"strings"

	"github.com/sigproto/httpsig/pkg/component"
	"github.com/sigproto/httpsig/pkg/sfv"
	"github.com/sigproto/httpsig/pkg/sigerr"
)

// Declared is a component as declared by the caller, annotated with whether
// its absence from the context is tolerated ("used-if-present" in §4.4) or
// fatal.
type Declared struct {
	component.Component
	UsedIfPresent bool
}

// Base is the result of building a signature base: the full base string
// (ready to be signed or to be verified against a signature), the
// @signature-params value alone (the value that belongs verbatim in the
// Signature-Input dictionary entry), and the identifiers that actually
// ended up covered (used-if-present components absent from the context are
// dropped from both).
type Base struct {
	String     string
	ParamsLine string
	Covered    []component.Component
}

// Build renders the signature base for declared components resolved
// against ctx, with params as the @signature-params parameters.
func Build(ctx *component.Context, declared []Declared, params *Parameters) (Base, error) {
	seen := make(map[string]bool, len(declared))
	var lines []string
	var covered []component.Component

	for _, d := range declared {
		ident, err := d.Identifier()
		if err != nil {
			return Base{}, err
		}
		if seen[ident] {
			return Base{}, sigerr.New(sigerr.DuplicateComponent, "duplicate component identifier %s", ident)
		}
		seen[ident] = true

		componentLines, ok, err := component.Resolve(ctx, d.Component)
		if err != nil {
			return Base{}, err
		}
		if !ok {
			if d.UsedIfPresent {
				continue
			}
			return Base{}, sigerr.New(sigerr.MissingComponent, "component %s not present in context", ident)
		}
		lines = append(lines, componentLines...)
		covered = append(covered, d.Component)
	}

	paramsLine, err := buildParamsLine(covered, params)
	if err != nil {
		return Base{}, err
	}
	lines = append(lines, `"@signature-params": `+paramsLine)

	return Base{
		String:     strings.Join(lines, "\n"),
		ParamsLine: paramsLine,
		Covered:    covered,
	}, nil
}

func buildParamsLine(covered []component.Component, params *Parameters) (string, error) {
	members := make([]sfv.Item, 0, len(covered))
	for _, c := range covered {
		members = append(members, c.Item())
	}
	innerList := sfv.Item{Kind: sfv.KindInnerList, InnerList: members, Params: params.sfvParams()}
	return sfv.SerializeItem(innerList)
}
