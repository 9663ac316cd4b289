// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-a2a-go.
// Licensed under the LGPL v3 or later: https://www.gnu.org/licenses/

package verifier

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sigproto/httpsig/pkg/component"
	"github.com/sigproto/httpsig/pkg/cryptoalg"
	"github.com/sigproto/httpsig/pkg/policy"
	"github.com/sigproto/httpsig/pkg/sfv"
	"github.com/sigproto/httpsig/pkg/sigerr"
	"github.com/sigproto/httpsig/pkg/signature"
	"golang.org/x/sync/errgroup"
)

// KeyGetter resolves a keyid to the algorithm and key material to verify
// with. A getter failure is wrapped as the cause of KEY_ERROR.
type KeyGetter func(keyID string) (cryptoalg.Algorithm, any, error)

// VerificationSpec is an immutable bundle binding the raw header values,
// the message context, policy constraints, and the key getter.
type VerificationSpec struct {
	// Label selects which Signature-Input entry to verify. If empty and
	// exactly one entry exists, that entry is used.
	Label string

	SignatureInput string
	Signature      string
	Context        *component.Context

	RequiredComponents          []component.Component
	RequiredIfPresentComponents []component.Component
	RequiredParameters          []string
	ForbiddenParameters         []string

	// MaximumSkew and MaximumAge, when zero/nil, fall back to Policy's
	// defaults if Policy is set. Now is used as given.
	Now         time.Time
	MaximumSkew time.Duration
	MaximumAge  *time.Duration

	KeyGetter KeyGetter
	Policy    *policy.Policy
}

// Verifier is a stateless value computation.
type Verifier struct{}

// New returns a ready-to-use Verifier.
func New() *Verifier { return &Verifier{} }

// Verify implements §4.7: select the entry, enforce component/parameter
// policy and clock checks, rebuild the base from the parsed identifiers,
// and check the signature.
func (v *Verifier) Verify(ctx context.Context, spec *VerificationSpec) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if spec == nil {
		return sigerr.New(sigerr.MissingParameter, "verification spec is nil")
	}

	inputDict, err := sfv.ParseDictionary(spec.SignatureInput)
	if err != nil {
		return sigerr.Wrap(sigerr.InvalidStructuredHeader, err, "parsing Signature-Input")
	}
	label, entry, err := selectEntry(inputDict, spec.Label)
	if err != nil {
		return err
	}

	parsedComponents, params, err := signature.ParseEntry(entry)
	if err != nil {
		return err
	}

	if err := enforceRequiredComponents(parsedComponents, spec.RequiredComponents); err != nil {
		return err
	}
	if err := enforceRequiredIfPresent(spec.Context, parsedComponents, spec.RequiredIfPresentComponents); err != nil {
		return err
	}
	if err := enforceParameters(params, spec.RequiredParameters, spec.ForbiddenParameters); err != nil {
		return err
	}
	maximumSkew := spec.MaximumSkew
	maximumAge := spec.MaximumAge
	if spec.Policy != nil {
		if maximumSkew == 0 {
			maximumSkew = spec.Policy.DefaultMaximumSkew()
		}
		if maximumAge == nil {
			maximumAge = spec.Policy.DefaultMaximumAge()
		}
	}
	if err := enforceClock(params, spec.Now, maximumSkew, maximumAge); err != nil {
		return err
	}

	declared := make([]signature.Declared, len(parsedComponents))
	for i, c := range parsedComponents {
		declared[i] = signature.Declared{Component: c}
	}
	base, err := signature.Build(spec.Context, declared, params)
	if err != nil {
		return err
	}

	keyID, _ := params.KeyID()
	alg, _ := params.Alg()
	if spec.KeyGetter == nil {
		return sigerr.New(sigerr.KeyError, "no key getter configured")
	}
	resolvedAlg, key, err := spec.KeyGetter(keyID)
	if err != nil {
		return sigerr.Wrap(sigerr.KeyError, err, "resolving key for keyid %q", keyID)
	}
	if alg != "" {
		resolvedAlg = cryptoalg.Algorithm(alg)
	}
	if spec.Policy != nil && !spec.Policy.AlgorithmAllowed(string(resolvedAlg)) {
		return sigerr.New(sigerr.UnsupportedAlgorithm, "algorithm %q is not in the policy allow-list", resolvedAlg)
	}

	sigDict, err := sfv.ParseDictionary(spec.Signature)
	if err != nil {
		return sigerr.Wrap(sigerr.InvalidStructuredHeader, err, "parsing Signature")
	}
	sigItem, ok := sigDict.Get(label)
	if !ok {
		return sigerr.New(sigerr.MissingParameter, "Signature has no entry for label %q", label)
	}
	if sigItem.Kind != sfv.KindBytes {
		return sigerr.New(sigerr.InvalidStructuredHeader, "Signature entry %q is not a byte sequence", label)
	}

	if err := cryptoalg.Verify(resolvedAlg, key, []byte(base.String), sigItem.Bytes); err != nil {
		return err
	}

	log.Printf("verifier: verified label=%q algorithm=%s components=%d", label, resolvedAlg, len(parsedComponents))
	return nil
}

// VerifyAll verifies N independent specs concurrently, e.g. a request
// signature alongside a nested related-request signature, and returns a
// per-spec error slice in input order. A nil entry means that spec passed.
func (v *Verifier) VerifyAll(ctx context.Context, specs []*VerificationSpec) []error {
	results := make([]error, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			results[i] = v.Verify(gctx, spec)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func selectEntry(dict *sfv.Dictionary, label string) (string, sfv.Item, error) {
	if label != "" {
		entry, ok := dict.Get(label)
		if !ok {
			return "", sfv.Item{}, sigerr.New(sigerr.AmbiguousLabel, "no Signature-Input entry labeled %q", label)
		}
		return label, entry, nil
	}
	entries := dict.Entries()
	if len(entries) != 1 {
		return "", sfv.Item{}, sigerr.New(sigerr.AmbiguousLabel, "Signature-Input has %d entries, label required", len(entries))
	}
	return entries[0].Key, entries[0].Value, nil
}

func enforceRequiredComponents(parsed, required []component.Component) error {
	for _, req := range required {
		reqID, err := req.Identifier()
		if err != nil {
			return err
		}
		found := false
		for _, p := range parsed {
			pID, err := p.Identifier()
			if err != nil {
				return err
			}
			if pID == reqID {
				found = true
				break
			}
		}
		if !found {
			return sigerr.New(sigerr.MissingComponent, "required component %s not covered by signature", reqID)
		}
	}
	return nil
}

func enforceRequiredIfPresent(ctx *component.Context, parsed, requiredIfPresent []component.Component) error {
	for _, rip := range requiredIfPresent {
		_, present, err := component.Resolve(ctx, rip)
		if err != nil {
			return err
		}
		if !present {
			continue
		}
		ripID, err := rip.Identifier()
		if err != nil {
			return err
		}
		found := false
		for _, p := range parsed {
			pID, err := p.Identifier()
			if err != nil {
				return err
			}
			if pID == ripID {
				found = true
				break
			}
		}
		if !found {
			return sigerr.New(sigerr.MissingComponent, "component %s is present in context and required-if-present but not covered", ripID)
		}
	}
	return nil
}

func enforceParameters(params *signature.Parameters, required, forbidden []string) error {
	for _, key := range required {
		if !params.Has(key) {
			return sigerr.New(sigerr.MissingParameter, "required signature parameter %q absent", key)
		}
	}
	for _, key := range forbidden {
		if params.Has(key) {
			return sigerr.New(sigerr.ForbiddenParameter, "forbidden signature parameter %q present", key)
		}
	}
	return nil
}

func enforceClock(params *signature.Parameters, now time.Time, maximumSkew time.Duration, maximumAge *time.Duration) error {
	nowUnix := now.Unix()
	if created, ok := params.Created(); ok {
		if nowUnix < created-int64(maximumSkew.Seconds()) {
			return sigerr.New(sigerr.FutureSignature, "created=%d is in the future beyond skew %s", created, maximumSkew)
		}
		if maximumAge != nil && nowUnix > created+int64(maximumAge.Seconds()) {
			return sigerr.New(sigerr.TooOld, "created=%d exceeds maximum age %s", created, *maximumAge)
		}
	}
	if expires, ok := params.Expires(); ok {
		if nowUnix > expires+int64(maximumSkew.Seconds()) {
			return sigerr.New(sigerr.Expired, "expires=%d has passed beyond skew %s", expires, maximumSkew)
		}
	}
	return nil
}
