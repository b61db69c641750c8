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

package encryption

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestNoEncryptionPassthrough(t *testing.T) {
	strategy := NoEncryption{}
	payload := []byte("plain bytes")
	ctx := &Context{}

	artifacts, err := strategy.Seal(payload, ctx)
	require.NoError(t, err)
	assert.Equal(t, payload, artifacts.SealedPayload)
	assert.Nil(t, artifacts.Tag)
	assert.Nil(t, artifacts.Metadata)

	plain, err := strategy.Open(artifacts.SealedPayload, artifacts, ctx)
	require.NoError(t, err)
	assert.Equal(t, payload, plain)
}

func TestNoEncryptionCopiesInput(t *testing.T) {
	strategy := NoEncryption{}
	payload := []byte{1, 2, 3}
	artifacts, err := strategy.Seal(payload, &Context{})
	require.NoError(t, err)

	payload[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, artifacts.SealedPayload)
}

func TestModeSelectors(t *testing.T) {
	none := None()
	assert.True(t, none.IsNone())
	assert.False(t, none.IsEncryptedHash())

	sealed := EncryptedHash(Config{Strategy: NoEncryption{}})
	assert.False(t, sealed.IsNone())
	assert.True(t, sealed.IsEncryptedHash())
	require.NotNil(t, sealed.Config)
	assert.Equal(t, "none", sealed.Config.Strategy.AlgorithmID())
}

func TestRegistry(t *testing.T) {
	strategy := NoEncryption{}
	require.NoError(t, Register(strategy))
	defer Deregister(strategy.AlgorithmID())

	found, ok := Lookup("none")
	require.True(t, ok)
	assert.Equal(t, "none", found.AlgorithmID())

	// Duplicate registration is a configuration error
	err := Register(NoEncryption{})
	var invalid InvalidConfigurationError
	assert.ErrorAs(t, err, &invalid)

	Deregister("none")
	_, ok = Lookup("none")
	assert.False(t, ok)
}

func TestRegisterNilStrategy(t *testing.T) {
	err := Register(nil)
	var invalid InvalidConfigurationError
	assert.ErrorAs(t, err, &invalid)
}

func TestErrorTaxonomy(t *testing.T) {
	wrapped := fmt.Errorf("codec: %w", ErrUnsupportedMode)
	assert.True(t, errors.Is(wrapped, ErrUnsupportedMode))

	var cryptoErr CryptoFailureError
	inner := errors.New("cipher: message authentication failed")
	err := fmt.Errorf(
		"open: %w",
		CryptoFailureError{Reason: "payload authentication failed", Err: inner},
	)
	require.ErrorAs(t, err, &cryptoErr)
	assert.True(t, errors.Is(err, inner))

	var rejected RejectedPayloadError
	err = fmt.Errorf("seal: %w", RejectedPayloadError{Reason: "too large"})
	assert.ErrorAs(t, err, &rejected)
}

func TestConcurrentSealOpen(t *testing.T) {
	defer goleak.VerifyNone(t)

	strategy := NoEncryption{}
	ctx := &Context{ChannelID: "channel-1"}
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			payload := []byte(fmt.Sprintf("payload-%d", n))
			for range 100 {
				artifacts, err := strategy.Seal(payload, ctx)
				if err != nil {
					t.Error(err)
					return
				}
				plain, err := strategy.Open(
					artifacts.SealedPayload,
					artifacts,
					ctx,
				)
				if err != nil {
					t.Error(err)
					return
				}
				if string(plain) != string(payload) {
					t.Errorf("round trip mismatch for %d", n)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
