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

	"github.com/mr-tron/base58"
	"github.com/sigproto/httpsig/pkg/component"
	"github.com/sigproto/httpsig/pkg/cryptoalg"
	"github.com/sigproto/httpsig/pkg/digest"
	"github.com/sigproto/httpsig/pkg/signature"
	"github.com/sigproto/httpsig/pkg/signer"
)

func main() {
	fmt.Println("HTTP Message Signatures - Sign Request Example")
	fmt.Println("================================================")

	ctx := context.Background()

	fmt.Println("\n1. Generating an Ed25519 signing key...")
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatalf("failed to generate key pair: %v", err)
	}
	fmt.Printf("   key fingerprint: %s\n", base58.Encode(pub))

	fmt.Println("\n2. Computing a Content-Digest for the request body...")
	body := []byte(`{"hello":"world"}`)
	contentDigest, err := digest.Calculate(body, digest.SHA256)
	if err != nil {
		log.Fatalf("failed to compute digest: %v", err)
	}
	fmt.Printf("   Content-Digest: %s\n", contentDigest)

	fmt.Println("\n3. Building the message context...")
	headers := component.NewFields()
	headers.Add("Content-Type", "application/json")
	headers.Add("Content-Digest", contentDigest)
	msgCtx := &component.Context{
		Method:    "POST",
		Scheme:    "https",
		Authority: "example.com",
		Path:      "/items",
		Headers:   headers,
	}

	fmt.Println("\n4. Signing the request...")
	spec := &signer.Spec{
		Label:   "sig1",
		Context: msgCtx,
		Components: []signature.Declared{
			{Component: component.Component{Name: component.Method}},
			{Component: component.Component{Name: component.Path}},
			{Component: component.Component{Name: component.Authority}},
			{Component: component.Component{Name: "content-type"}},
			{Component: component.Component{Name: "content-digest"}},
		},
		Parameters: signature.NewParameters().SetKeyID("example-key").SetCreated(1700000000),
		Algorithm:  cryptoalg.Ed25519,
		Key:        priv,
	}

	result, err := signer.New().Sign(ctx, spec)
	if err != nil {
		log.Fatalf("failed to sign request: %v", err)
	}

	fmt.Println("\n5. Resulting headers:")
	fmt.Printf("   Signature-Input: %s\n", result.SignatureInput)
	fmt.Printf("   Signature: %s\n", result.Signature)
	fmt.Printf("   Content-Digest: %s\n", contentDigest)
}
