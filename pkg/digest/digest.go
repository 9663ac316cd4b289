// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package digest

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"

	"github.com/sigproto/httpsig/pkg/sfv"
	"github.com/sigproto/httpsig/pkg/sigerr"
)

// Algorithm identifies a supported Content-Digest hash algorithm by its
// Structured Field token, per the Digest Fields draft's registry.
type Algorithm string

const (
	SHA256 Algorithm = "sha-256"
	SHA512 Algorithm = "sha-512"
)

func (a Algorithm) sum(body []byte) ([]byte, bool) {
	switch a {
	case SHA256:
		h := sha256.Sum256(body)
		return h[:], true
	case SHA512:
		h := sha512.Sum512(body)
		return h[:], true
	default:
		return nil, false
	}
}

// Calculate computes the Content-Digest field value for body using alg,
// returning a Structured Dictionary containing exactly one entry keyed by
// the algorithm token.
func Calculate(body []byte, alg Algorithm) (string, error) {
	sum, ok := alg.sum(body)
	if !ok {
		return "", sigerr.New(sigerr.UnsupportedAlgorithm, "unsupported digest algorithm %q", alg)
	}
	dict := sfv.NewDictionary()
	dict.Set(string(alg), sfv.NewBytes(sum))
	return sfv.SerializeDictionary(dict)
}

// CalculateForWantHeader parses wantHeader as a Structured Dictionary of
// decimal quality weights in [0,1], selects the highest-weight supported
// algorithm (ties broken by first occurrence), and returns the
// Content-Digest value for that algorithm.
func CalculateForWantHeader(body []byte, wantHeader string) (string, error) {
	dict, err := sfv.ParseDictionary(wantHeader)
	if err != nil {
		return "", sigerr.Wrap(sigerr.InvalidStructuredHeader, err, "parsing Want-Content-Digest")
	}
	alg, ok := selectAlgorithm(dict)
	if !ok {
		return "", sigerr.New(sigerr.UnsupportedAlgorithm, "no supported algorithm in Want-Content-Digest")
	}
	return Calculate(body, alg)
}

func selectAlgorithm(dict *sfv.Dictionary) (Algorithm, bool) {
	var (
		best   Algorithm
		bestWt float64
		found  bool
	)
	for _, entry := range dict.Entries() {
		alg := Algorithm(entry.Key)
		if _, ok := alg.sum(nil); !ok {
			continue
		}
		wt := 1.0
		switch entry.Value.Kind {
		case sfv.KindDecimal:
			wt = entry.Value.Decimal.Float64()
		case sfv.KindInteger:
			wt = float64(entry.Value.Integer)
		}
		if wt <= 0 {
			continue
		}
		if !found || wt > bestWt {
			best, bestWt, found = alg, wt, true
		}
	}
	return best, found
}

// Verify parses header as a Content-Digest Structured Dictionary and checks
// that every entry's hash matches body, recomputed with the matching
// algorithm. Fails with MISMATCH on any disagreement, UNSUPPORTED_ALGORITHM
// if header names no algorithm this package implements.
func Verify(header string, body []byte) error {
	dict, err := sfv.ParseDictionary(header)
	if err != nil {
		return sigerr.Wrap(sigerr.InvalidStructuredHeader, err, "parsing Content-Digest")
	}
	if dict.Len() == 0 {
		return sigerr.New(sigerr.InvalidStructuredHeader, "Content-Digest has no entries")
	}
	supported := false
	for _, entry := range dict.Entries() {
		alg := Algorithm(entry.Key)
		sum, ok := alg.sum(body)
		if !ok {
			continue
		}
		supported = true
		if entry.Value.Kind != sfv.KindBytes {
			return sigerr.New(sigerr.InvalidStructuredHeader, "Content-Digest entry %q is not a byte sequence", entry.Key)
		}
		if !bytes.Equal(entry.Value.Bytes, sum) {
			return sigerr.New(sigerr.Mismatch, "Content-Digest entry %q does not match body", entry.Key)
		}
	}
	if !supported {
		return sigerr.New(sigerr.UnsupportedAlgorithm, "Content-Digest names no supported algorithm")
	}
	return nil
}
