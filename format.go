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

// Package wavemark composes the payload data model, binary codec, and
// encryption abstraction into a single entry point for producers of
// watermark payload bytes.
package wavemark

import (
	"fmt"
	"log/slog"

	"github.com/wavemark-io/gowavemark/codec"
	"github.com/wavemark-io/gowavemark/encryption"
	"github.com/wavemark-io/gowavemark/payload"
)

// FormatBuilder collects metadata fields, configures encryption, and
// yields ready-to-embed byte payloads.
type FormatBuilder struct {
	payload           *payload.Builder
	codec             *codec.FrameCodec
	encryptionContext encryption.Context
	logger            *slog.Logger
}

// NewFormatBuilder starts a builder with default codec options, modified
// by any provided option functions.
func NewFormatBuilder(
	options ...FormatOptionFunc,
) (*FormatBuilder, error) {
	cfg := formatConfig{
		codecOptions: codec.DefaultOptions(),
	}
	for _, option := range options {
		option(&cfg)
	}
	frameCodec, err := codec.New(cfg.codecOptions)
	if err != nil {
		return nil, err
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &FormatBuilder{
		payload:           payload.NewBuilderWithConstraints(cfg.codecOptions.Constraints),
		codec:             frameCodec,
		encryptionContext: cfg.encryptionContext,
		logger:            logger,
	}, nil
}

// SetEncryptionMode replaces the encryption mode, rebinding the codec with
// updated options.
func (f *FormatBuilder) SetEncryptionMode(mode encryption.Mode) error {
	options := f.codec.Options()
	options.Encryption = mode
	frameCodec, err := codec.New(options)
	if err != nil {
		return err
	}
	f.codec = frameCodec
	return nil
}

// SetEncryptionContext replaces the ambient encryption context (channel
// ID, AAD) used when sealing.
func (f *FormatBuilder) SetEncryptionContext(ctx encryption.Context) {
	f.encryptionContext = ctx
}

// Payload exposes the underlying payload builder for typed field setters.
func (f *FormatBuilder) Payload() *payload.Builder {
	return f.payload
}

// AddField proxies a field insertion to the payload builder.
func (f *FormatBuilder) AddField(field payload.Field) error {
	return f.payload.PutField(field)
}

// AddFields proxies multiple field insertions to the payload builder.
func (f *FormatBuilder) AddFields(fields ...payload.Field) error {
	return f.payload.ExtendFields(fields...)
}

// Build finalizes the payload into a frame and encodes it with the
// current codec and encryption context, returning both together. The
// builder is consumed.
func (f *FormatBuilder) Build() (*FormatOutput, error) {
	frame, err := f.payload.Build()
	if err != nil {
		return nil, fmt.Errorf("build payload frame: %w", err)
	}
	data, err := f.codec.Encode(frame, &f.encryptionContext)
	if err != nil {
		return nil, fmt.Errorf("encode payload frame: %w", err)
	}
	f.logger.Debug(
		"encoded watermark payload",
		"fields", frame.Len(),
		"bytes", len(data),
		"encrypted", f.codec.Options().Encryption.IsEncryptedHash(),
	)
	return &FormatOutput{Frame: frame, Bytes: data}, nil
}

// FormatOutput pairs the logical frame with its serialized bytes.
type FormatOutput struct {
	Frame *payload.Frame
	Bytes []byte
}

// IntoBytes returns just the byte payload when the logical frame is no
// longer needed.
func (o *FormatOutput) IntoBytes() []byte {
	return o.Bytes
}
