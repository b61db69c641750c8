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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromUnixRange(t *testing.T) {
	// Inclusive bounds
	_, err := FromUnix(timestampMinUnix)
	require.NoError(t, err)
	_, err = FromUnix(timestampMaxUnix)
	require.NoError(t, err)

	var invalid InvalidTimestampError
	_, err = FromUnix(timestampMinUnix - 1)
	assert.ErrorAs(t, err, &invalid)
	_, err = FromUnix(timestampMaxUnix + 1)
	assert.ErrorAs(t, err, &invalid)
}

func TestFromUnixRoundTrip(t *testing.T) {
	ts, err := FromUnix(1_700_000_000)
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_000), ts.Unix())
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), ts.Time())
}

func TestFromTimeTruncatesSubseconds(t *testing.T) {
	instant := time.Date(2023, 11, 14, 22, 13, 20, 999_999_999, time.UTC)
	ts, err := FromTime(instant)
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_000), ts.Unix())
}

func TestTimestampBefore(t *testing.T) {
	earlier, err := FromUnix(100)
	require.NoError(t, err)
	later, err := FromUnix(200)
	require.NoError(t, err)
	assert.True(t, earlier.Before(later))
	assert.False(t, later.Before(earlier))
}

func TestNowIsInRange(t *testing.T) {
	ts := Now()
	assert.Greater(t, ts.Unix(), int64(0))
	assert.Less(t, ts.Unix(), timestampMaxUnix)
}
