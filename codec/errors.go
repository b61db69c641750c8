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
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is returned when the input buffer ends before a
// declared length or fixed-width value could be read
var ErrUnexpectedEOF = errors.New("unexpected end of payload")

// HeaderError reports a malformed or unacceptable frame header, including
// envelope/mode mismatches.
type HeaderError struct {
	Reason string
}

func (e HeaderError) Error() string {
	return "invalid codec header: " + e.Reason
}

// UnsupportedVersionError reports a major version mismatch between the
// wire bytes and the configured codec.
type UnsupportedVersionError struct {
	ExpectedMajor uint8
	Found         Version
}

func (e UnsupportedVersionError) Error() string {
	return fmt.Sprintf(
		"unsupported payload version: expected major %d but found %s",
		e.ExpectedMajor,
		e.Found,
	)
}

// LengthOverflowError reports a value that does not fit its wire width.
// Overflow is an encoding error, never silent truncation.
type LengthOverflowError struct {
	Field string
}

func (e LengthOverflowError) Error() string {
	return e.Field + " exceeds representable length"
}

// InvalidUTF8Error reports a string field whose bytes are not valid UTF-8.
type InvalidUTF8Error struct {
	Field string
}

func (e InvalidUTF8Error) Error() string {
	return e.Field + " is not valid UTF-8"
}

// UnsupportedFieldTypeError reports an unrecognized value type tag.
type UnsupportedFieldTypeError struct {
	Tag uint8
}

func (e UnsupportedFieldTypeError) Error() string {
	return fmt.Sprintf("unsupported field type tag 0x%02X", e.Tag)
}
