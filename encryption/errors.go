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

import "errors"

// ErrUnsupportedMode is returned when a requested mode is not available,
// e.g. a strategy that refuses the configured construction
var ErrUnsupportedMode = errors.New("encryption mode is not supported")

// InvalidConfigurationError reports a bad configuration parameter supplied
// by the caller.
type InvalidConfigurationError struct {
	Reason string
}

func (e InvalidConfigurationError) Error() string {
	return "invalid encryption configuration: " + e.Reason
}

// RejectedPayloadError reports that a strategy refused the input payload
// (size, format, etc.).
type RejectedPayloadError struct {
	Reason string
}

func (e RejectedPayloadError) Error() string {
	return "payload rejected by encryption strategy: " + e.Reason
}

// CryptoFailureError reports a failed cryptographic operation, including
// authentication failures when opening sealed payloads.
type CryptoFailureError struct {
	Reason string
	Err    error
}

func (e CryptoFailureError) Error() string {
	if e.Err != nil {
		return "cryptographic operation failed: " + e.Reason + ": " + e.Err.Error()
	}
	return "cryptographic operation failed: " + e.Reason
}

func (e CryptoFailureError) Unwrap() error {
	return e.Err
}
