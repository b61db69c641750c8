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
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavemark-io/gowavemark/aead"
	"github.com/wavemark-io/gowavemark/codec"
	"github.com/wavemark-io/gowavemark/encryption"
	"github.com/wavemark-io/gowavemark/payload"
)

func TestBuildAndDecodeDemoTrack(t *testing.T) {
	builder, err := NewFormatBuilder()
	require.NoError(t, err)
	require.NoError(t, builder.Payload().SetAccountID("acct_demo"))
	require.NoError(t, builder.Payload().SetText("content.title", "Demo Track"))
	require.NoError(
		t,
		builder.Payload().SetInt("content.duration_seconds", 185),
	)

	output, err := builder.Build()
	require.NoError(t, err)
	assert.NotEmpty(t, output.Bytes)

	frameCodec, err := codec.New(codec.DefaultOptions())
	require.NoError(t, err)
	decoded, err := frameCodec.Decode(output.Bytes, nil)
	require.NoError(t, err)

	accountID, ok := decoded.AccountID()
	require.True(t, ok)
	assert.Equal(t, "acct_demo", accountID.String())

	titleKey, err := payload.ParseKey("content.title")
	require.NoError(t, err)
	title, ok := decoded.Get(titleKey)
	require.True(t, ok)
	assert.Equal(t, payload.TextValue("Demo Track"), title)

	durationKey, err := payload.ParseKey("content.duration_seconds")
	require.NoError(t, err)
	duration, ok := decoded.Get(durationKey)
	require.True(t, ok)
	assert.Equal(t, payload.IntValue(185), duration)

	// The builder seeds issued_at automatically
	_, ok = decoded.IssuedAt()
	assert.True(t, ok)
	assert.Equal(t, 4, decoded.Len())
}

func TestFormatBuilderEncrypted(t *testing.T) {
	strategy, err := aead.New(
		[]byte("0123456789abcdef0123456789abcdef"),
		aead.WithKeyID("account-key-1"),
	)
	require.NoError(t, err)

	mode := encryption.EncryptedHash(encryption.Config{
		Strategy: strategy,
		KeyID:    "account-key-1",
	})
	ctx := encryption.Context{
		ChannelID:      "stream-session-9",
		AssociatedData: []byte("aad"),
	}
	builder, err := NewFormatBuilder(
		WithEncryptionMode(mode),
		WithEncryptionContext(ctx),
	)
	require.NoError(t, err)
	require.NoError(t, builder.Payload().SetAccountID("acct_demo"))

	output, err := builder.Build()
	require.NoError(t, err)
	assert.Equal(t, byte(1), output.Bytes[4])

	options := codec.DefaultOptions()
	options.Encryption = mode
	frameCodec, err := codec.New(options)
	require.NoError(t, err)
	decoded, err := frameCodec.Decode(output.Bytes, &ctx)
	require.NoError(t, err)
	assert.True(t, decoded.Equal(output.Frame))
}

func TestSetEncryptionModeRebindsCodec(t *testing.T) {
	builder, err := NewFormatBuilder()
	require.NoError(t, err)
	require.NoError(t, builder.Payload().SetAccountID("acct_demo"))

	strategy, err := aead.New([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	err = builder.SetEncryptionMode(encryption.EncryptedHash(
		encryption.Config{Strategy: strategy},
	))
	require.NoError(t, err)

	output, err := builder.Build()
	require.NoError(t, err)
	assert.Equal(t, byte(1), output.Bytes[4])
}

func TestSetEncryptionModeRequiresStrategy(t *testing.T) {
	builder, err := NewFormatBuilder()
	require.NoError(t, err)
	err = builder.SetEncryptionMode(encryption.Mode{
		Kind: encryption.ModeKindEncryptedHash,
	})
	var invalid encryption.InvalidConfigurationError
	assert.ErrorAs(t, err, &invalid)
}

func TestWithConstraints(t *testing.T) {
	constraints := payload.DefaultConstraints()
	constraints.MaxTextBytes = 4
	builder, err := NewFormatBuilder(WithConstraints(constraints))
	require.NoError(t, err)
	err = builder.Payload().SetText("content.title", "Demo Track")
	var tooLarge payload.ValueTooLargeError
	assert.ErrorAs(t, err, &tooLarge)
}

func TestAddFields(t *testing.T) {
	title, err := payload.NewField(
		"content.title",
		payload.TextValue("Demo Track"),
	)
	require.NoError(t, err)
	explicit, err := payload.NewField(
		"content.explicit",
		payload.BoolValue(false),
	)
	require.NoError(t, err)

	builder, err := NewFormatBuilder()
	require.NoError(t, err)
	require.NoError(t, builder.AddFields(title, explicit))
	output, err := builder.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, output.Frame.Len())
	assert.Equal(t, output.Bytes, output.IntoBytes())
}

func TestBufferCarrierLoopback(t *testing.T) {
	builder, err := NewFormatBuilder()
	require.NoError(t, err)
	require.NoError(t, builder.Payload().SetAccountID("acct_demo"))
	output, err := builder.Build()
	require.NoError(t, err)

	carrier := &BufferCarrier{}
	ctx := context.Background()
	require.NoError(t, carrier.Embed(ctx, output.Bytes))
	recovered, err := carrier.Recover(ctx)
	require.NoError(t, err)

	frameCodec, err := codec.New(codec.DefaultOptions())
	require.NoError(t, err)
	decoded, err := frameCodec.Decode(recovered, nil)
	require.NoError(t, err)
	assert.True(t, decoded.Equal(output.Frame))
}

func TestBufferCarrierEmpty(t *testing.T) {
	carrier := &BufferCarrier{}
	_, err := carrier.Recover(context.Background())
	assert.True(t, errors.Is(err, ErrNoPayloadEmbedded))
}

func TestBufferCarrierHonorsContext(t *testing.T) {
	carrier := &BufferCarrier{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, carrier.Embed(ctx, []byte{1}))
	_, err := carrier.Recover(ctx)
	assert.Error(t, err)
}
