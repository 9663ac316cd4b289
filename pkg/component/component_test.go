// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() *Context {
	headers := NewFields()
	headers.Add("Content-Type", "application/json")
	headers.Add("Content-Digest", "sha-256=:Zsg9Nyzj13UPzkyaQlnA7wbgTfBaZmH02OVyiRjpydE=:")
	return &Context{
		Method:    "POST",
		Scheme:    "https",
		Authority: "example.com",
		Path:      "/foo",
		Headers:   headers,
	}
}

func TestResolve_DerivedComponents(t *testing.T) {
	ctx := testContext()

	tests := []struct {
		name string
		comp Component
		want string
	}{
		{name: "method", comp: Component{Name: Method}, want: `"@method": POST`},
		{name: "authority", comp: Component{Name: Authority}, want: `"@authority": example.com`},
		{name: "scheme", comp: Component{Name: Scheme}, want: `"@scheme": https`},
		{name: "path", comp: Component{Name: Path}, want: `"@path": /foo`},
		{name: "query empty", comp: Component{Name: Query}, want: `"@query": ?`},
		{name: "request-target", comp: Component{Name: RequestTarget}, want: `"@request-target": POST /foo`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, ok, err := Resolve(ctx, tt.comp)
			require.NoError(t, err)
			require.True(t, ok)
			require.Len(t, lines, 1)
			assert.Equal(t, tt.want, lines[0])
		})
	}
}

func TestResolve_PathEmptyDefaultsToSlash(t *testing.T) {
	ctx := testContext()
	ctx.Path = ""
	lines, ok, err := Resolve(ctx, Component{Name: Path})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{`"@path": /`}, lines)
}

func TestResolve_AuthorityStripsDefaultPort(t *testing.T) {
	ctx := testContext()
	ctx.Authority = "example.com:443"
	lines, ok, err := Resolve(ctx, Component{Name: Authority})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{`"@authority": example.com`}, lines)
}

func TestResolve_Header(t *testing.T) {
	ctx := testContext()
	lines, ok, err := Resolve(ctx, Component{Name: "content-type"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{`"content-type": application/json`}, lines)
}

func TestResolve_HeaderMissing(t *testing.T) {
	ctx := testContext()
	_, ok, err := Resolve(ctx, Component{Name: "authorization"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolve_HeaderJoinsMultipleLines(t *testing.T) {
	ctx := testContext()
	ctx.Headers.Add("X-Multi", "b")
	ctx.Headers.Add("X-Multi", " c ")
	lines, ok, err := Resolve(ctx, Component{Name: "x-multi"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{`"x-multi": b, c`}, lines)
}

func TestResolve_QueryParam(t *testing.T) {
	ctx := testContext()
	ctx.HasQuery = true
	ctx.RawQuery = "id=123&format=json"

	lines, ok, err := Resolve(ctx, Component{Name: QueryParam, Flags: Flags{HasName: true, Name: "id"}})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{`"@query-param";name="id": 123`}, lines)
}

// TestResolve_QueryParamRepeatedOccurrenceExpandsToMultipleLines covers
// spec.md §4.3's component table and §8 boundary behavior #3: a
// repeated-name @query-param expands into one base line per occurrence,
// in URL order, not just the first.
func TestResolve_QueryParamRepeatedOccurrenceExpandsToMultipleLines(t *testing.T) {
	ctx := testContext()
	ctx.HasQuery = true
	ctx.RawQuery = "a=1&a=2&a=3"

	lines, ok, err := Resolve(ctx, Component{Name: QueryParam, Flags: Flags{HasName: true, Name: "a"}})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{
		`"@query-param";name="a": 1`,
		`"@query-param";name="a": 2`,
		`"@query-param";name="a": 3`,
	}, lines)
}

func TestResolve_StatusAbsent(t *testing.T) {
	ctx := testContext()
	_, ok, err := Resolve(ctx, Component{Name: Status})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolve_SFAndBSExclusive(t *testing.T) {
	ctx := testContext()
	_, _, err := Resolve(ctx, Component{Name: "content-type", Flags: Flags{SF: true, BS: true}})
	require.Error(t, err)
}

func TestResolve_BSFlag(t *testing.T) {
	ctx := testContext()
	lines, ok, err := Resolve(ctx, Component{Name: "content-type", Flags: Flags{BS: true}})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{`"content-type";bs: :YXBwbGljYXRpb24vanNvbg==:`}, lines)
}

func TestResolve_KeyFlagOnDictionaryHeader(t *testing.T) {
	ctx := testContext()
	ctx.Headers.Add("Example-Dict", `a=1, b=2`)
	lines, ok, err := Resolve(ctx, Component{Name: "example-dict", Flags: Flags{HasKey: true, Key: "b"}})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{`"example-dict";key="b": 2`}, lines)
}

func TestComponent_Identifier(t *testing.T) {
	c := Component{Name: QueryParam, Flags: Flags{HasName: true, Name: "id"}}
	ident, err := c.Identifier()
	require.NoError(t, err)
	assert.Equal(t, `"@query-param";name="id"`, ident)
}
