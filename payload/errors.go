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
	"fmt"
)

// ErrEmptyKey is returned when a metadata key is empty
var ErrEmptyKey = errors.New("metadata keys cannot be empty")

// KeyTooLongError is returned when a key exceeds the configured limit.
type KeyTooLongError struct {
	Key   Key
	Limit int
}

func (e KeyTooLongError) Error() string {
	return fmt.Sprintf(
		"metadata key '%s' exceeds maximum length %d",
		e.Key,
		e.Limit,
	)
}

// ValueTooLargeError is returned when a text or blob value exceeds the
// configured limit for its kind.
type ValueTooLargeError struct {
	Key   Key
	Limit int
}

func (e ValueTooLargeError) Error() string {
	return fmt.Sprintf(
		"metadata value for '%s' exceeds %d bytes",
		e.Key,
		e.Limit,
	)
}

// TooManyFieldsError is returned by Build when the field count exceeds the
// configured limit.
type TooManyFieldsError struct {
	Limit int
}

func (e TooManyFieldsError) Error() string {
	return fmt.Sprintf(
		"payload exceeds the maximum of %d metadata fields",
		e.Limit,
	)
}

// InvalidAccountIDError is returned when an account identifier fails
// structural validation.
type InvalidAccountIDError struct {
	Reason string
}

func (e InvalidAccountIDError) Error() string {
	return "account id is invalid: " + e.Reason
}

// InvalidCustomKeyError is returned when a custom key contains characters
// outside the allowed set.
type InvalidCustomKeyError struct {
	Reason string
}

func (e InvalidCustomKeyError) Error() string {
	return "custom key is invalid: " + e.Reason
}

// InvalidTimestampError is returned when a timestamp falls outside the
// supported range.
type InvalidTimestampError struct {
	Reason string
}

func (e InvalidTimestampError) Error() string {
	return "timestamp is invalid: " + e.Reason
}
