// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package policy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicyFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_ParsesAllFields(t *testing.T) {
	path := writePolicyFile(t, `
default_maximum_skew_seconds: 300
default_maximum_age_seconds: 3600
required_components:
  - "@method"
  - "@authority"
allowed_algorithms:
  - ed25519
  - ecdsa-p256-sha256
`)
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 300*time.Second, p.DefaultMaximumSkew())
	require.NotNil(t, p.DefaultMaximumAge())
	assert.Equal(t, time.Hour, *p.DefaultMaximumAge())
	assert.Equal(t, []string{"@method", "@authority"}, p.RequiredComponents)
	assert.True(t, p.AlgorithmAllowed("ed25519"))
	assert.False(t, p.AlgorithmAllowed("hmac-sha256"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestPolicy_AlgorithmAllowed_EmptyListAllowsAll(t *testing.T) {
	p := &Policy{}
	assert.True(t, p.AlgorithmAllowed("anything"))
}

func TestPolicy_NilReceiverSafe(t *testing.T) {
	var p *Policy
	assert.Equal(t, time.Duration(0), p.DefaultMaximumSkew())
	assert.Nil(t, p.DefaultMaximumAge())
	assert.True(t, p.AlgorithmAllowed("ed25519"))
}
