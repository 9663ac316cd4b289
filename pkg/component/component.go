// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package component

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/sigproto/httpsig/pkg/sfv"
	"github.com/sigproto/httpsig/pkg/sigerr"
)

// Flags is the flag set a Component may carry: sf, key, bs, tr, req, name.
// Zero value is "no flags set".
type Flags struct {
	SF bool

	Key    string
	HasKey bool

	BS bool
	Tr bool

	Req bool

	Name    string
	HasName bool
}

// Component is a single signature component identifier: a lowercase name
// plus its flag set.
type Component struct {
	Name  string
	Flags Flags
}

// Derived component names, per the HTTP Message Signatures draft.
const (
	Method        = "@method"
	TargetURI     = "@target-uri"
	Authority     = "@authority"
	Scheme        = "@scheme"
	RequestTarget = "@request-target"
	Path          = "@path"
	Query         = "@query"
	QueryParam    = "@query-param"
	Status        = "@status"
)

func (c Component) isDerived() bool { return strings.HasPrefix(c.Name, "@") }

// Item renders the component identifier as an SF Item: a quoted string
// whose Params hold the flags in the fixed order sf, key, bs, req, tr, name.
// This is the same Item embedded in the @signature-params inner list.
func (c Component) Item() sfv.Item {
	params := sfv.NewParams()
	if c.Flags.SF {
		params.Set("sf", sfv.NewBoolean(true))
	}
	if c.Flags.HasKey {
		params.Set("key", mustString(c.Flags.Key))
	}
	if c.Flags.BS {
		params.Set("bs", sfv.NewBoolean(true))
	}
	if c.Flags.Req {
		params.Set("req", sfv.NewBoolean(true))
	}
	if c.Flags.Tr {
		params.Set("tr", sfv.NewBoolean(true))
	}
	if c.Flags.HasName {
		params.Set("name", mustString(c.Flags.Name))
	}
	item := sfv.Item{Kind: sfv.KindString, Str: c.Name, Params: params}
	return item
}

// FromItem parses a component identifier out of an SF Item as it appears
// inside a parsed @signature-params inner list: a string bare item plus
// the fixed-order sf/key/bs/req/tr/name parameters.
func FromItem(item sfv.Item) (Component, error) {
	if item.Kind != sfv.KindString {
		return Component{}, sigerr.New(sigerr.InvalidStructuredHeader, "component identifier is not a string")
	}
	flags := Flags{}
	params := item.Params
	if v, ok := params.Get("sf"); ok {
		flags.SF = v.Bool
	}
	if v, ok := params.Get("key"); ok {
		flags.HasKey, flags.Key = true, v.Str
	}
	if v, ok := params.Get("bs"); ok {
		flags.BS = v.Bool
	}
	if v, ok := params.Get("req"); ok {
		flags.Req = v.Bool
	}
	if v, ok := params.Get("tr"); ok {
		flags.Tr = v.Bool
	}
	if v, ok := params.Get("name"); ok {
		flags.HasName, flags.Name = true, v.Str
	}
	return Component{Name: item.Str, Flags: flags}, nil
}

func mustString(s string) sfv.Item {
	item, err := sfv.NewString(s)
	if err != nil {
		// Flag values are caller-controlled tokens/names; a non-ASCII
		// value here is a programmer error, not a runtime condition.
		return sfv.Item{Kind: sfv.KindString, Str: s}
	}
	return item
}

// Identifier renders the component's identifier string exactly as it
// appears inside the @signature-params inner list, e.g. `"content-digest"`
// or `"@query-param";name="id"`.
func (c Component) Identifier() (string, error) {
	return sfv.SerializeItem(c.Item())
}

// Resolve produces the canonical signature-base lines for c against ctx,
// along with whether the underlying value was present. A missing value
// returns (nil, false, nil); callers decide whether that is fatal. Most
// components resolve to exactly one line, but a repeated-name
// `@query-param` expands into one line per occurrence, in URL order, per
// the draft's component table.
func Resolve(ctx *Context, c Component) ([]string, bool, error) {
	if c.Flags.SF && c.Flags.BS {
		return nil, false, sigerr.New(sigerr.ForbiddenParameter, "component %q requests both sf and bs", c.Name)
	}

	target := ctx
	if c.Flags.Req {
		if ctx.Related == nil {
			return nil, false, sigerr.New(sigerr.MissingComponent, "component %q flagged req but no related context", c.Name)
		}
		target = ctx.Related
	}

	var values []string
	var ok bool
	var err error
	if c.isDerived() {
		values, ok, err = resolveDerived(target, c)
	} else {
		values, ok, err = resolveHeader(target, c)
	}
	if err != nil || !ok {
		return nil, ok, err
	}

	ident, err := c.Identifier()
	if err != nil {
		return nil, false, err
	}
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = ident + ": " + v
	}
	return lines, true, nil
}

func resolveDerived(ctx *Context, c Component) ([]string, bool, error) {
	switch c.Name {
	case Method:
		return []string{strings.ToUpper(ctx.Method)}, true, nil
	case TargetURI:
		return []string{ctx.targetURI()}, true, nil
	case Authority:
		return []string{ctx.authority()}, true, nil
	case Scheme:
		return []string{strings.ToLower(ctx.Scheme)}, true, nil
	case RequestTarget:
		path := ctx.Path
		if path == "" {
			path = "/"
		}
		if ctx.HasQuery {
			path += "?" + ctx.RawQuery
		}
		return []string{ctx.Method + " " + path}, true, nil
	case Path:
		path := ctx.Path
		if path == "" {
			path = "/"
		}
		return []string{path}, true, nil
	case Query:
		if !ctx.HasQuery {
			return []string{"?"}, true, nil
		}
		return []string{"?" + ctx.RawQuery}, true, nil
	case QueryParam:
		if !c.Flags.HasName {
			return nil, false, sigerr.New(sigerr.MissingParameter, "@query-param requires a name parameter")
		}
		return resolveQueryParam(ctx, c.Flags.Name)
	case Status:
		if !ctx.HasStatus {
			return nil, false, nil
		}
		return []string{strconv.Itoa(ctx.Status)}, true, nil
	default:
		return nil, false, sigerr.New(sigerr.MissingComponent, "unknown derived component %q", c.Name)
	}
}

// resolveQueryParam returns one value per occurrence of name in the query
// string, in URL order — not just the first — so a repeated-name
// @query-param expands into multiple base lines. url.Values stores same-key
// values in a slice in the order encountered while scanning rawQuery, so
// query[name] is already occurrence-ordered.
func resolveQueryParam(ctx *Context, name string) ([]string, bool, error) {
	query, err := url.ParseQuery(ctx.RawQuery)
	if err != nil {
		return nil, false, sigerr.Wrap(sigerr.InvalidStructuredHeader, err, "parsing query for @query-param")
	}
	occurrences, ok := query[name]
	if !ok || len(occurrences) == 0 {
		return nil, false, nil
	}
	// url.ParseQuery already percent-decoded each value; re-encode per
	// RFC 3986 so a value containing reserved characters round-trips.
	// QueryEscape writes a space as '+' (a literal '+' is already %2B), so
	// that one case is rewritten to %20.
	values := make([]string, len(occurrences))
	for i, v := range occurrences {
		values[i] = strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
	}
	return values, true, nil
}

func resolveHeader(ctx *Context, c Component) ([]string, bool, error) {
	var values []string
	var ok bool
	if c.Flags.Tr {
		values, ok = ctx.trailers().Values(c.Name)
	} else {
		values, ok = ctx.headers().Values(c.Name)
	}
	if !ok || len(values) == 0 {
		return nil, false, nil
	}
	trimmed := make([]string, len(values))
	for i, v := range values {
		trimmed[i] = strings.Trim(v, " \t")
	}
	joined := strings.Join(trimmed, ", ")

	switch {
	case c.Flags.BS:
		parts := make([]string, len(trimmed))
		for i, v := range trimmed {
			b, err := sfv.SerializeItem(sfv.NewBytes([]byte(v)))
			if err != nil {
				return nil, false, err
			}
			parts[i] = b
		}
		return []string{strings.Join(parts, ", ")}, true, nil
	case c.Flags.SF:
		if c.Flags.HasKey {
			value, ok, err := resolveDictionaryKey(joined, c.Flags.Key)
			if err != nil || !ok {
				return nil, ok, err
			}
			return []string{value}, true, nil
		}
		value, err := reserializeStructured(joined)
		if err != nil {
			return nil, false, err
		}
		return []string{value}, true, nil
	case c.Flags.HasKey:
		value, ok, err := resolveDictionaryKey(joined, c.Flags.Key)
		if err != nil || !ok {
			return nil, ok, err
		}
		return []string{value}, true, nil
	default:
		return []string{joined}, true, nil
	}
}

// reserializeStructured parses joined as whichever Structured Field kind it
// is (dictionary, list, or item) and re-serializes it in canonical form.
// Most headers eligible for sf are either an Item or a Dictionary/List; we
// try item first since it's the common case (e.g. a single token or
// boolean), falling back to dictionary then list.
func reserializeStructured(joined string) (string, error) {
	if item, err := sfv.ParseItem(joined); err == nil {
		return sfv.SerializeItem(item)
	}
	if dict, err := sfv.ParseDictionary(joined); err == nil {
		return sfv.SerializeDictionary(dict)
	}
	list, err := sfv.ParseList(joined)
	if err != nil {
		return "", sigerr.Wrap(sigerr.InvalidStructuredHeader, err, "header is not a valid Structured Field")
	}
	return sfv.SerializeList(list)
}

func resolveDictionaryKey(joined, key string) (string, bool, error) {
	dict, err := sfv.ParseDictionary(joined)
	if err != nil {
		return "", false, sigerr.Wrap(sigerr.InvalidStructuredHeader, err, "header is not a valid Structured Dictionary")
	}
	member, ok := dict.Get(key)
	if !ok {
		return "", false, nil
	}
	value, err := sfv.SerializeItem(member)
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
