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

package payload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyWellKnown(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{name: "account_id", want: KeyAccountID},
		{name: "session_id", want: KeySessionID},
		{name: "content_id", want: KeyContentID},
		{name: "issued_at", want: KeyIssuedAt},
		{name: "expires_at", want: KeyExpiresAt},
	}
	for _, test := range tests {
		key, err := ParseKey(test.name)
		require.NoError(t, err)
		assert.Equal(t, test.want, key)
		assert.True(t, key.IsWellKnown())
	}
}

func TestParseKeyCustom(t *testing.T) {
	key, err := ParseKey("content.duration_seconds")
	require.NoError(t, err)
	assert.False(t, key.IsWellKnown())
	assert.Equal(t, "content.duration_seconds", key.String())
}

func TestCustomKeyInvalid(t *testing.T) {
	invalid := []string{
		"Content.Title",
		"content title",
		"content-title",
		"título",
	}
	for _, name := range invalid {
		_, err := CustomKey(name)
		var invalidKey InvalidCustomKeyError
		assert.ErrorAs(t, err, &invalidKey, "key %q should be rejected", name)
	}
}

func TestCustomKeyEmpty(t *testing.T) {
	_, err := CustomKey("")
	assert.True(t, errors.Is(err, ErrEmptyKey))
}

func TestKeyOrdering(t *testing.T) {
	a, err := CustomKey("aaa")
	require.NoError(t, err)
	b, err := CustomKey("bbb")
	require.NoError(t, err)
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.Less(a))
}
