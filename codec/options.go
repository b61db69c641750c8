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

package codec

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/wavemark-io/gowavemark/encryption"
	"github.com/wavemark-io/gowavemark/payload"
)

// Options is the configuration a codec instance is bound to for both
// encode and decode.
type Options struct {
	Version     Version
	Constraints payload.Constraints
	Encryption  encryption.Mode
}

// DefaultOptions returns the latest version, default constraints, and no
// encryption.
func DefaultOptions() Options {
	return Options{
		Version:     VersionLatest,
		Constraints: payload.DefaultConstraints(),
		Encryption:  encryption.None(),
	}
}

// bind validates the options and detaches them from caller-owned memory.
// The strategy handle itself is shared, never cloned; only the surrounding
// config (key ID, nonce) is copied so later caller mutation cannot reach a
// live codec.
func (o Options) bind() (Options, error) {
	if !o.Encryption.IsEncryptedHash() {
		return o, nil
	}
	src := o.Encryption.Config
	if src == nil || src.Strategy == nil {
		return Options{}, encryption.InvalidConfigurationError{
			Reason: "encrypted-hash mode requires a strategy",
		}
	}
	cfg := encryption.Config{
		Strategy: src.Strategy,
		KeyID:    src.KeyID,
	}
	if len(src.Nonce) > 0 {
		err := copier.CopyWithOption(
			&cfg.Nonce,
			&src.Nonce,
			copier.Option{DeepCopy: true},
		)
		if err != nil {
			return Options{}, fmt.Errorf("copy encryption nonce: %w", err)
		}
	}
	o.Encryption.Config = &cfg
	return o, nil
}
