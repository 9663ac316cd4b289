// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package signature

import (
	"github.com/sigproto/httpsig/pkg/component"
	"github.com/sigproto/httpsig/pkg/sfv"
	"github.com/sigproto/httpsig/pkg/sigerr"
)

// ParseEntry decodes a Signature-Input dictionary entry's value (an
// inner-list SF Item) into the ordered components it names, and the
// signature parameters carried by the inner list itself.
func ParseEntry(entry sfv.Item) ([]component.Component, *Parameters, error) {
	if entry.Kind != sfv.KindInnerList {
		return nil, nil, sigerr.New(sigerr.InvalidStructuredHeader, "Signature-Input entry is not an inner list")
	}
	components := make([]component.Component, 0, len(entry.InnerList))
	for _, member := range entry.InnerList {
		c, err := component.FromItem(member)
		if err != nil {
			return nil, nil, err
		}
		components = append(components, c)
	}
	return components, parametersFromSFV(entry.Params), nil
}
