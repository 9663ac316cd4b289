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
	"fmt"
	"log"

	"github.com/sigproto/httpsig/pkg/digest"
)

func main() {
	fmt.Println("HTTP Message Signatures - Content-Digest Example")
	fmt.Println("==================================================")

	body := []byte(`{"hello":"world"}`)

	fmt.Println("\n1. Computing a Content-Digest (sha-256)...")
	sha256Digest, err := digest.Calculate(body, digest.SHA256)
	if err != nil {
		log.Fatalf("failed to compute digest: %v", err)
	}
	fmt.Printf("   Content-Digest: %s\n", sha256Digest)

	fmt.Println("\n2. Verifying the digest against the body...")
	if err := digest.Verify(sha256Digest, body); err != nil {
		log.Fatalf("digest verification failed: %v", err)
	}
	fmt.Println("   verified OK")

	fmt.Println("\n3. Honoring a Want-Content-Digest negotiation header...")
	want := `sha-256=1, sha-512=3`
	negotiated, err := digest.CalculateForWantHeader(body, want)
	if err != nil {
		log.Fatalf("failed to negotiate digest algorithm: %v", err)
	}
	fmt.Printf("   negotiated Content-Digest (sha-512 wins on weight): %s\n", negotiated)

	fmt.Println("\n4. Detecting a tampered body...")
	tampered := []byte(`{"hello":"mallory"}`)
	if err := digest.Verify(sha256Digest, tampered); err != nil {
		fmt.Printf("   correctly rejected: %v\n", err)
	} else {
		log.Fatal("expected mismatch was not detected")
	}
}
