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

import "bytes"

// ValueKind enumerates the closed set of value representations. Each kind
// corresponds 1:1 to a wire type tag in the binary codec.
type ValueKind uint8

const (
	KindAccount   ValueKind = 0x01
	KindTimestamp ValueKind = 0x02
	KindText      ValueKind = 0x10
	KindInt       ValueKind = 0x11
	KindBool      ValueKind = 0x12
	KindBlob      ValueKind = 0x13
)

// Value is the tagged union over metadata value representations. It is a
// closed interface: only the types in this package implement it, so both
// encoder and decoder can match exhaustively on Kind.
type Value interface {
	// Kind returns the wire type tag for the value.
	Kind() ValueKind
	// Equal reports structural equality with another value.
	Equal(other Value) bool

	isValue()
}

// AccountValue holds a validated account identifier.
type AccountValue struct {
	ID AccountID
}

func (v AccountValue) Kind() ValueKind { return KindAccount }
func (v AccountValue) isValue()        {}

func (v AccountValue) Equal(other Value) bool {
	o, ok := other.(AccountValue)
	return ok && v.ID == o.ID
}

// TimestampValue holds an epoch-anchored point in time.
type TimestampValue struct {
	Time Timestamp
}

func (v TimestampValue) Kind() ValueKind { return KindTimestamp }
func (v TimestampValue) isValue()        {}

func (v TimestampValue) Equal(other Value) bool {
	o, ok := other.(TimestampValue)
	return ok && v.Time == o.Time
}

// TextValue holds a UTF-8 string.
type TextValue string

func (v TextValue) Kind() ValueKind { return KindText }
func (v TextValue) isValue()        {}

func (v TextValue) Equal(other Value) bool {
	o, ok := other.(TextValue)
	return ok && v == o
}

// IntValue holds a 64-bit signed integer.
type IntValue int64

func (v IntValue) Kind() ValueKind { return KindInt }
func (v IntValue) isValue()        {}

func (v IntValue) Equal(other Value) bool {
	o, ok := other.(IntValue)
	return ok && v == o
}

// BoolValue holds a boolean.
type BoolValue bool

func (v BoolValue) Kind() ValueKind { return KindBool }
func (v BoolValue) isValue()        {}

func (v BoolValue) Equal(other Value) bool {
	o, ok := other.(BoolValue)
	return ok && v == o
}

// BlobValue holds an opaque byte blob.
type BlobValue []byte

func (v BlobValue) Kind() ValueKind { return KindBlob }
func (v BlobValue) isValue()        {}

func (v BlobValue) Equal(other Value) bool {
	o, ok := other.(BlobValue)
	return ok && bytes.Equal(v, o)
}

// AsAccountID returns the account identifier when the value holds one.
func AsAccountID(v Value) (AccountID, bool) {
	if av, ok := v.(AccountValue); ok {
		return av.ID, true
	}
	return AccountID{}, false
}

// AsTimestamp returns the timestamp when the value holds one.
func AsTimestamp(v Value) (Timestamp, bool) {
	if tv, ok := v.(TimestampValue); ok {
		return tv.Time, true
	}
	return Timestamp{}, false
}
