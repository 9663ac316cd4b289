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

package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"log"
	"time"

	"github.com/sigproto/httpsig/pkg/component"
	"github.com/sigproto/httpsig/pkg/cryptoalg"
	"github.com/sigproto/httpsig/pkg/signature"
	"github.com/sigproto/httpsig/pkg/signer"
	"github.com/sigproto/httpsig/pkg/verifier"
)

func main() {
	fmt.Println("HTTP Message Signatures - Verify Request Example")
	fmt.Println("==================================================")

	ctx := context.Background()

	fmt.Println("\n1. Generating a key pair and signing a request (stand-in for a received one)...")
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatalf("failed to generate key pair: %v", err)
	}

	headers := component.NewFields()
	headers.Add("Content-Type", "application/json")
	msgCtx := &component.Context{
		Method:    "POST",
		Scheme:    "https",
		Authority: "example.com",
		Path:      "/items",
		Headers:   headers,
	}

	signed, err := signer.New().Sign(ctx, &signer.Spec{
		Label:   "sig1",
		Context: msgCtx,
		Components: []signature.Declared{
			{Component: component.Component{Name: component.Method}},
			{Component: component.Component{Name: "content-type"}},
		},
		Parameters: signature.NewParameters().SetKeyID("example-key").SetCreated(time.Now().Unix()),
		Algorithm:  cryptoalg.Ed25519,
		Key:        priv,
	})
	if err != nil {
		log.Fatalf("failed to sign: %v", err)
	}
	fmt.Printf("   Signature-Input: %s\n", signed.SignatureInput)

	fmt.Println("\n2. Verifying the signed request against a key registry...")
	keyRegistry := map[string]ed25519.PublicKey{"example-key": pub}

	err = verifier.New().Verify(ctx, &verifier.VerificationSpec{
		SignatureInput: signed.SignatureInput,
		Signature:      signed.Signature,
		Context:        msgCtx,
		RequiredComponents: []component.Component{
			{Name: component.Method},
		},
		Now:         time.Now(),
		MaximumSkew: 5 * time.Second,
		KeyGetter: func(keyID string) (cryptoalg.Algorithm, any, error) {
			key, ok := keyRegistry[keyID]
			if !ok {
				return "", nil, fmt.Errorf("unknown keyid %q", keyID)
			}
			return cryptoalg.Ed25519, key, nil
		},
	})
	if err != nil {
		log.Fatalf("verification failed: %v", err)
	}

	fmt.Println("\n3. Verification succeeded.")
}
