// Copyright 2025 Wavemark Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package aead provides a reference encrypted-hash strategy built on
// XChaCha20-Poly1305 with a blake2b-derived key. The payload format core
// fixes no cryptographic primitive; this package is an opt-in
// implementation of the encryption.Strategy capability for deployments
// that do not bring their own.
//
// The sealed payload carries the ciphertext with the 16-byte Poly1305 tag
// detached into the artifact tag slot. Strategy metadata is a CBOR map
// naming the algorithm, key ID, and nonce, so a consumer can verify it is
// opening with a compatible configuration before touching key material.
package aead

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/wavemark-io/gowavemark/encryption"
)

// AlgorithmID identifies this construction in strategy metadata and the
// strategy registry.
const AlgorithmID = "xchacha20poly1305-blake2b"

const tagSize = chacha20poly1305.Overhead

// Strategy implements encryption.Strategy using XChaCha20-Poly1305. A
// Strategy is immutable after construction and safe for concurrent use.
type Strategy struct {
	aead  cipher.AEAD
	keyID string
	// Fixed nonce for deterministic output; nil means a random nonce per
	// Seal call
	nonce []byte
}

// StrategyOptionFunc modifies the strategy configuration during New.
type StrategyOptionFunc func(*Strategy)

// WithKeyID names the key material so Open can reject payloads sealed
// under a different key.
func WithKeyID(keyID string) StrategyOptionFunc {
	return func(s *Strategy) {
		s.keyID = keyID
	}
}

// WithNonce fixes the nonce used for every Seal call, making output
// deterministic. The nonce must be chacha20poly1305.NonceSizeX bytes.
// Reusing a nonce across different payloads under the same key weakens
// the construction; intended for tests and content-addressed stores.
func WithNonce(nonce []byte) StrategyOptionFunc {
	return func(s *Strategy) {
		s.nonce = nonce
	}
}

// New derives a cipher key from the supplied key material and key ID and
// returns a ready strategy. The derivation is
// blake2b-256(keyMaterial || keyID), so the same material under different
// key IDs yields independent cipher keys.
func New(keyMaterial []byte, options ...StrategyOptionFunc) (*Strategy, error) {
	if len(keyMaterial) == 0 {
		return nil, encryption.InvalidConfigurationError{
			Reason: "key material cannot be empty",
		}
	}
	s := &Strategy{}
	for _, option := range options {
		option(s)
	}
	if s.nonce != nil && len(s.nonce) != chacha20poly1305.NonceSizeX {
		return nil, encryption.InvalidConfigurationError{
			Reason: fmt.Sprintf(
				"nonce must be %d bytes",
				chacha20poly1305.NonceSizeX,
			),
		}
	}

	hasher, err := blake2b.New256(nil)
	if err != nil {
		return nil, encryption.CryptoFailureError{
			Reason: "initialize key derivation",
			Err:    err,
		}
	}
	hasher.Write(keyMaterial)
	hasher.Write([]byte(s.keyID))
	key := hasher.Sum(nil)

	aeadCipher, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, encryption.CryptoFailureError{
			Reason: "initialize cipher",
			Err:    err,
		}
	}
	s.aead = aeadCipher
	return s, nil
}

// strategyMetadata is the CBOR structure stored in the artifact metadata
// slot.
type strategyMetadata struct {
	Algorithm string `cbor:"alg"`
	KeyID     string `cbor:"key_id,omitempty"`
	Nonce     []byte `cbor:"nonce"`
}

// Seal encrypts the payload, binding the context's channel ID and
// associated data as AAD.
func (s *Strategy) Seal(
	payload []byte,
	ctx *encryption.Context,
) (*encryption.Artifacts, error) {
	nonce := s.nonce
	if nonce == nil {
		nonce = make([]byte, chacha20poly1305.NonceSizeX)
		if _, err := rand.Read(nonce); err != nil {
			return nil, encryption.CryptoFailureError{
				Reason: "generate nonce",
				Err:    err,
			}
		}
	}

	aad, err := encodeAAD(ctx)
	if err != nil {
		return nil, err
	}
	sealed := s.aead.Seal(nil, nonce, payload, aad)

	metadata, err := cbor.Marshal(strategyMetadata{
		Algorithm: AlgorithmID,
		KeyID:     s.keyID,
		Nonce:     nonce,
	})
	if err != nil {
		return nil, encryption.CryptoFailureError{
			Reason: "encode strategy metadata",
			Err:    err,
		}
	}

	// Detach the trailing Poly1305 tag into the artifact tag slot
	split := len(sealed) - tagSize
	return &encryption.Artifacts{
		SealedPayload: sealed[:split],
		Tag:           sealed[split:],
		Metadata:      metadata,
	}, nil
}

// Open verifies the metadata and tag and recovers the plaintext payload.
func (s *Strategy) Open(
	sealed []byte,
	artifacts *encryption.Artifacts,
	ctx *encryption.Context,
) ([]byte, error) {
	if artifacts == nil {
		return nil, encryption.RejectedPayloadError{
			Reason: "missing encryption artifacts",
		}
	}
	if len(artifacts.Tag) != tagSize {
		return nil, encryption.RejectedPayloadError{
			Reason: fmt.Sprintf(
				"authentication tag must be %d bytes",
				tagSize,
			),
		}
	}

	var metadata strategyMetadata
	if err := cbor.Unmarshal(artifacts.Metadata, &metadata); err != nil {
		return nil, encryption.RejectedPayloadError{
			Reason: "strategy metadata is malformed",
		}
	}
	if metadata.Algorithm != AlgorithmID {
		return nil, encryption.InvalidConfigurationError{
			Reason: "payload was sealed with algorithm '" +
				metadata.Algorithm + "'",
		}
	}
	if metadata.KeyID != s.keyID {
		return nil, encryption.InvalidConfigurationError{
			Reason: "payload was sealed under a different key ID",
		}
	}
	if len(metadata.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, encryption.RejectedPayloadError{
			Reason: "nonce has unexpected length",
		}
	}

	aad, err := encodeAAD(ctx)
	if err != nil {
		return nil, err
	}
	ciphertext := make([]byte, 0, len(sealed)+tagSize)
	ciphertext = append(ciphertext, sealed...)
	ciphertext = append(ciphertext, artifacts.Tag...)

	plain, openErr := s.aead.Open(nil, metadata.Nonce, ciphertext, aad)
	if openErr != nil {
		return nil, encryption.CryptoFailureError{
			Reason: "payload authentication failed",
			Err:    openErr,
		}
	}
	return plain, nil
}

// AlgorithmID returns the identifier for this construction.
func (s *Strategy) AlgorithmID() string {
	return AlgorithmID
}

// encodeAAD folds the per-call context into a single deterministic AAD
// buffer. CBOR keeps the channel ID and associated data unambiguously
// delimited.
func encodeAAD(ctx *encryption.Context) ([]byte, error) {
	if ctx == nil {
		ctx = &encryption.Context{}
	}
	aad, err := cbor.Marshal([]any{ctx.ChannelID, ctx.AssociatedData})
	if err != nil {
		return nil, encryption.CryptoFailureError{
			Reason: "encode associated data",
			Err:    err,
		}
	}
	return aad, nil
}
