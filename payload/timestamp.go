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

import "time"

// Timestamp range supported by the payload format, in seconds relative to
// the Unix epoch
const (
	// 100 years before the epoch
	timestampMinUnix int64 = -3_155_760_000
	// end of year 9999
	timestampMaxUnix int64 = 253_402_300_800
)

// Timestamp is a point in time anchored to the Unix epoch with second
// precision. Sub-second precision is intentionally dropped so a timestamp
// survives a wire round trip unchanged.
type Timestamp struct {
	seconds int64
}

// Now returns the current time truncated to whole seconds.
func Now() Timestamp {
	return Timestamp{seconds: time.Now().Unix()}
}

// FromUnix creates a timestamp from seconds since the Unix epoch. Values
// outside [epoch - 100 years, year 9999] are rejected.
func FromUnix(secs int64) (Timestamp, error) {
	if secs < timestampMinUnix {
		return Timestamp{}, InvalidTimestampError{
			Reason: "timestamp precedes supported range",
		}
	}
	if secs > timestampMaxUnix {
		return Timestamp{}, InvalidTimestampError{
			Reason: "timestamp exceeds supported range",
		}
	}
	return Timestamp{seconds: secs}, nil
}

// FromTime creates a timestamp from a time.Time, truncating to seconds.
func FromTime(t time.Time) (Timestamp, error) {
	return FromUnix(t.Unix())
}

// Unix returns seconds since the Unix epoch.
func (t Timestamp) Unix() int64 {
	return t.seconds
}

// Time returns the timestamp as a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.Unix(t.seconds, 0).UTC()
}

// Before reports whether t is earlier than other.
func (t Timestamp) Before(other Timestamp) bool {
	return t.seconds < other.seconds
}
