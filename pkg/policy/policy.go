// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package policy

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Policy seeds the defaults a Signer or Verifier falls back to when a
// call site doesn't override them explicitly.
type Policy struct {
	DefaultMaximumSkewSeconds int64    `yaml:"default_maximum_skew_seconds"`
	DefaultMaximumAgeSeconds  *int64   `yaml:"default_maximum_age_seconds"`
	RequiredComponents        []string `yaml:"required_components"`
	AllowedAlgorithms         []string `yaml:"allowed_algorithms"`
}

// DefaultMaximumSkew returns the configured skew as a time.Duration.
func (p *Policy) DefaultMaximumSkew() time.Duration {
	if p == nil {
		return 0
	}
	return time.Duration(p.DefaultMaximumSkewSeconds) * time.Second
}

// DefaultMaximumAge returns the configured maximum age, or nil if unset.
func (p *Policy) DefaultMaximumAge() *time.Duration {
	if p == nil || p.DefaultMaximumAgeSeconds == nil {
		return nil
	}
	d := time.Duration(*p.DefaultMaximumAgeSeconds) * time.Second
	return &d
}

// AlgorithmAllowed reports whether alg is in the allow-list, or true if the
// allow-list is empty (no restriction configured).
func (p *Policy) AlgorithmAllowed(alg string) bool {
	if p == nil || len(p.AllowedAlgorithms) == 0 {
		return true
	}
	for _, a := range p.AllowedAlgorithms {
		if a == alg {
			return true
		}
	}
	return false
}

// Load reads and parses a policy file at path.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file %s: %w", path, err)
	}
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing policy file %s: %w", path, err)
	}
	return &p, nil
}
