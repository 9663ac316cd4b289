// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
//
// sage-a2a-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// sage-a2a-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with sage-a2a-go.  If not, see <https://www.gnu.org/licenses/>.

// Package sigerr defines the single error type surfaced at the boundary of
// every package in this module: Structured Fields, the digest engine, the
// component resolver, the base builder, the crypto adapter, and the
// signer/verifier. Every failure carries one of a closed set of sub-codes.
package sigerr

import "fmt"

// Code is a closed sub-code identifying the kind of failure.
type Code string

const (
	InvalidStructuredHeader Code = "INVALID_STRUCTURED_HEADER"
	MissingComponent        Code = "MISSING_COMPONENT"
	DuplicateComponent      Code = "DUPLICATE_COMPONENT"
	UnsupportedAlgorithm    Code = "UNSUPPORTED_ALGORITHM"
	KeyError                Code = "KEY_ERROR"
	CryptoError             Code = "CRYPTO_ERROR"
	InvalidSignature        Code = "INVALID_SIGNATURE"
	MissingParameter        Code = "MISSING_PARAMETER"
	ForbiddenParameter      Code = "FORBIDDEN_PARAMETER"
	AmbiguousLabel          Code = "AMBIGUOUS_LABEL"
	FutureSignature         Code = "FUTURE_SIGNATURE"
	TooOld                  Code = "TOO_OLD"
	Expired                 Code = "EXPIRED"
	Mismatch                Code = "MISMATCH"
)

// Error is the single error type surfaced at package boundaries.
type Error struct {
	Code Code
	// Offset is the byte offset of a parse failure, or -1 when not applicable.
	Offset int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s (offset %d)", e.Code, e.Msg, e.Offset)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, sigerr.MissingComponent) style checks by comparing
// codes, since Code is not itself an error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a boundary error with no wrapped cause and no byte offset.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Offset: -1, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates a boundary error wrapping a cause, e.g. a public-key-getter
// failure surfaced as the cause of KEY_ERROR.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Offset: -1, Msg: fmt.Sprintf(format, args...), Err: err}
}

// AtOffset creates a parse error carrying a byte offset for diagnostics.
func AtOffset(code Code, offset int, format string, args ...any) *Error {
	return &Error{Code: code, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// Sentinel returns a bare *Error carrying only a code, suitable as a
// comparison target for errors.Is(err, sigerr.Sentinel(sigerr.Expired)).
func Sentinel(code Code) *Error {
	return &Error{Code: code, Offset: -1}
}
