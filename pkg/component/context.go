// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package component

import "strings"

// Fields is a case-insensitive, order-preserving multimap of HTTP field
// lines. Keys are stored lowercase; Values returns all field-lines for a
// name in the order they were added.
type Fields struct {
	keys   []string
	values map[string][]string
}

// NewFields builds an empty Fields multimap.
func NewFields() *Fields {
	return &Fields{values: make(map[string][]string)}
}

// Add appends a field-line under name, preserving insertion order both of
// names and of repeated values for the same name.
func (f *Fields) Add(name, value string) {
	key := strings.ToLower(name)
	if f.values == nil {
		f.values = make(map[string][]string)
	}
	if _, exists := f.values[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.values[key] = append(f.values[key], value)
}

// Values returns the field-lines stored under name (case-insensitive).
func (f *Fields) Values(name string) ([]string, bool) {
	if f == nil || f.values == nil {
		return nil, false
	}
	v, ok := f.values[strings.ToLower(name)]
	return v, ok
}

// Context is the material a Component is resolved against: the request or
// response line, its target URI, headers, trailers, and optionally a
// related context used by components flagged req.
type Context struct {
	Method string

	// TargetURI is the absolute URI as provided by the caller. If empty,
	// it is reconstructed from Scheme, Authority, Path, and RawQuery.
	TargetURI string

	Scheme    string
	Authority string
	Path      string
	RawQuery  string
	HasQuery  bool

	Status    int
	HasStatus bool

	Headers  *Fields
	Trailers *Fields

	// Related is the paired request context for a response's req flag.
	Related *Context
}

func (c *Context) headers() *Fields {
	if c == nil || c.Headers == nil {
		return NewFields()
	}
	return c.Headers
}

func (c *Context) trailers() *Fields {
	if c == nil || c.Trailers == nil {
		return NewFields()
	}
	return c.Trailers
}

func (c *Context) targetURI() string {
	if c.TargetURI != "" {
		return c.TargetURI
	}
	path := c.Path
	if path == "" {
		path = "/"
	}
	uri := c.Scheme + "://" + c.authority() + path
	if c.HasQuery {
		uri += "?" + c.RawQuery
	}
	return uri
}

func (c *Context) authority() string {
	return stripDefaultPort(strings.ToLower(c.Authority), c.Scheme)
}

func stripDefaultPort(authority, scheme string) string {
	host, port, ok := strings.Cut(authority, ":")
	if !ok {
		return authority
	}
	switch strings.ToLower(scheme) {
	case "http":
		if port == "80" {
			return host
		}
	case "https":
		if port == "443" {
			return host
		}
	}
	return authority
}
