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

package wavemark

import (
	"log/slog"

	"github.com/wavemark-io/gowavemark/codec"
	"github.com/wavemark-io/gowavemark/encryption"
	"github.com/wavemark-io/gowavemark/payload"
)

type formatConfig struct {
	codecOptions      codec.Options
	encryptionContext encryption.Context
	logger            *slog.Logger
}

// FormatOptionFunc represents a function used to modify the FormatBuilder
// configuration
type FormatOptionFunc func(*formatConfig)

// WithCodecOptions specifies the full codec options to bind
func WithCodecOptions(options codec.Options) FormatOptionFunc {
	return func(c *formatConfig) {
		c.codecOptions = options
	}
}

// WithConstraints specifies custom payload constraints
func WithConstraints(constraints payload.Constraints) FormatOptionFunc {
	return func(c *formatConfig) {
		c.codecOptions.Constraints = constraints
	}
}

// WithEncryptionMode specifies the encryption mode to use when serializing
func WithEncryptionMode(mode encryption.Mode) FormatOptionFunc {
	return func(c *formatConfig) {
		c.codecOptions.Encryption = mode
	}
}

// WithEncryptionContext specifies the ambient encryption context (channel
// ID, associated data)
func WithEncryptionContext(ctx encryption.Context) FormatOptionFunc {
	return func(c *formatConfig) {
		c.encryptionContext = ctx
	}
}

// WithLogger specifies a logger. If none is provided, slog.Default() is
// used
func WithLogger(logger *slog.Logger) FormatOptionFunc {
	return func(c *formatConfig) {
		c.logger = logger
	}
}
