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

// Package encryption defines the sealing/opening capability that protects
// watermark payload bytes. The package fixes no cryptographic primitive:
// callers supply a Strategy implementation and the codec invokes it through
// this interface. The only built-in strategy is the no-op passthrough used
// for ModeNone.
package encryption

// Strategy is the capability invoked to protect and recover payload bytes.
//
// A single Strategy instance is shared across codecs and may be called from
// multiple goroutines concurrently; implementations must be safe for
// concurrent use. Each Seal/Open call is independent and stateless from the
// format layer's perspective.
type Strategy interface {
	// Seal applies the strategy's protection to payload, returning the
	// sealed bytes plus any detached tag or strategy metadata.
	Seal(payload []byte, ctx *Context) (*Artifacts, error)

	// Open reverses Seal, verifying any tag or authentication data and
	// recovering the original payload bytes.
	Open(sealed []byte, artifacts *Artifacts, ctx *Context) ([]byte, error)

	// AlgorithmID identifies the hashing/encryption construction, for
	// registry lookup and logging.
	AlgorithmID() string
}

// ModeKind selects how payload bytes are wrapped on the wire.
type ModeKind uint8

const (
	// ModeKindNone leaves payload bytes untouched.
	ModeKindNone ModeKind = iota
	// ModeKindEncryptedHash wraps payload bytes using a caller-supplied
	// encrypted-hash strategy.
	ModeKindEncryptedHash
)

// Mode is the encryption selector bound into codec options.
type Mode struct {
	Kind   ModeKind
	Config *Config
}

// None returns the mode that leaves payload bytes unprotected.
func None() Mode {
	return Mode{Kind: ModeKindNone}
}

// EncryptedHash returns the mode that seals payload bytes with the
// strategy named in cfg.
func EncryptedHash(cfg Config) Mode {
	return Mode{Kind: ModeKindEncryptedHash, Config: &cfg}
}

// IsNone reports whether payload bytes will remain unprotected.
func (m Mode) IsNone() bool {
	return m.Kind == ModeKindNone
}

// IsEncryptedHash reports whether payload bytes require an encrypted-hash
// transform.
func (m Mode) IsEncryptedHash() bool {
	return m.Kind == ModeKindEncryptedHash
}

// Config carries the strategy handle and optional key material hints for
// the encrypted-hash mode. The strategy is shared, not owned: the format
// layer holds the same instance the caller registered.
type Config struct {
	// Strategy performs the hashing, key usage, and encryption steps.
	Strategy Strategy
	// KeyID optionally names the key material the strategy should use.
	KeyID string
	// Nonce optionally supplies caller-provided randomness to strategies
	// that require it.
	Nonce []byte
}

// Context is ambient, per-call data passed to strategies. It is never
// persisted by the format layer.
type Context struct {
	// ChannelID optionally identifies the stream or session for domain
	// separation.
	ChannelID string
	// AssociatedData binds the ciphertext to higher-level state without
	// being encrypted or stored inline.
	AssociatedData []byte
}

// Artifacts is the result of sealing payload bytes and the input to
// opening them.
type Artifacts struct {
	// SealedPayload is transported in place of the plaintext payload.
	SealedPayload []byte
	// Tag is the detached authentication tag or digest, when the strategy
	// produces one.
	Tag []byte
	// Metadata is strategy-specific data consumers may need to persist.
	Metadata []byte
}

// Passthrough wraps payload bytes in artifacts without protection.
func Passthrough(payload []byte) *Artifacts {
	return &Artifacts{SealedPayload: payload}
}

// NoEncryption is the built-in passthrough strategy backing ModeNone.
type NoEncryption struct{}

// Seal returns the payload unchanged.
func (NoEncryption) Seal(payload []byte, _ *Context) (*Artifacts, error) {
	sealed := make([]byte, len(payload))
	copy(sealed, payload)
	return Passthrough(sealed), nil
}

// Open returns the sealed bytes unchanged.
func (NoEncryption) Open(
	sealed []byte,
	_ *Artifacts,
	_ *Context,
) ([]byte, error) {
	plain := make([]byte, len(sealed))
	copy(plain, sealed)
	return plain, nil
}

// AlgorithmID returns the passthrough scheme name.
func (NoEncryption) AlgorithmID() string {
	return "none"
}
