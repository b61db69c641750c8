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

// Package payload models the typed metadata carried in a watermark payload.
// Application code assembles fields through a Builder, which enforces size
// and count constraints, and receives an immutable Frame ready for
// serialization. The model intentionally avoids encoding and cryptographic
// details so callers can focus on expressing domain data.
package payload

import "sort"

// Constraints cap the size and shape of metadata so it can be transported
// in watermark payloads with predictable bounds. Constraints are plain
// values, copied into every builder and frame they govern.
type Constraints struct {
	MaxFields    int
	MaxKeyBytes  int
	MaxTextBytes int
	MaxBlobBytes int
}

// DefaultConstraints returns the standard payload limits.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxFields:    32,
		MaxKeyBytes:  64,
		MaxTextBytes: 512,
		MaxBlobBytes: 1024,
	}
}

// Field ties a key to a typed value.
type Field struct {
	Key   Key
	Value Value
}

// NewField constructs a metadata field from a raw key name and value,
// validating the key.
func NewField(name string, value Value) (Field, error) {
	key, err := ParseKey(name)
	if err != nil {
		return Field{}, err
	}
	return Field{Key: key, Value: value}, nil
}

// Builder accumulates metadata fields while enforcing constraints.
//
// A new builder seeds an issued_at field with the current time so
// downstream pipelines can rely on it being present; callers can override
// it before Build. The builder is consumed by Build and must not be used
// afterwards.
type Builder struct {
	constraints Constraints
	fields      map[Key]Value
}

// NewBuilder constructs a builder with default constraints.
func NewBuilder() *Builder {
	return NewBuilderWithConstraints(DefaultConstraints())
}

// NewBuilderWithConstraints constructs a builder with custom constraints.
func NewBuilderWithConstraints(constraints Constraints) *Builder {
	b := &Builder{
		constraints: constraints,
		fields:      make(map[Key]Value),
	}
	// Default issued_at keeps downstream pipelines consistent. Callers can override.
	b.fields[KeyIssuedAt] = TimestampValue{Time: Now()}
	return b
}

// PutField inserts a field after validating constraints. An existing value
// for the same key is overwritten. On failure the builder is unchanged.
func (b *Builder) PutField(field Field) error {
	if err := b.validate(field); err != nil {
		return err
	}
	b.fields[field.Key] = field.Value
	return nil
}

// ExtendFields inserts multiple fields, stopping at the first failure.
func (b *Builder) ExtendFields(fields ...Field) error {
	for _, field := range fields {
		if err := b.PutField(field); err != nil {
			return err
		}
	}
	return nil
}

// SetAccountID sets the well-known account identifier field.
func (b *Builder) SetAccountID(id string) error {
	accountID, err := NewAccountID(id)
	if err != nil {
		return err
	}
	return b.PutField(Field{Key: KeyAccountID, Value: AccountValue{ID: accountID}})
}

// SetIssuedAt overrides the default issuance timestamp.
func (b *Builder) SetIssuedAt(ts Timestamp) error {
	return b.PutField(Field{Key: KeyIssuedAt, Value: TimestampValue{Time: ts}})
}

// SetExpiresAt sets the well-known expiration timestamp field.
func (b *Builder) SetExpiresAt(ts Timestamp) error {
	return b.PutField(Field{Key: KeyExpiresAt, Value: TimestampValue{Time: ts}})
}

// SetText sets a UTF-8 text field.
func (b *Builder) SetText(name string, value string) error {
	key, err := ParseKey(name)
	if err != nil {
		return err
	}
	return b.PutField(Field{Key: key, Value: TextValue(value)})
}

// SetInt sets a 64-bit signed integer field.
func (b *Builder) SetInt(name string, value int64) error {
	key, err := ParseKey(name)
	if err != nil {
		return err
	}
	return b.PutField(Field{Key: key, Value: IntValue(value)})
}

// SetBool sets a boolean field.
func (b *Builder) SetBool(name string, value bool) error {
	key, err := ParseKey(name)
	if err != nil {
		return err
	}
	return b.PutField(Field{Key: key, Value: BoolValue(value)})
}

// SetBlob sets an opaque binary field.
func (b *Builder) SetBlob(name string, value []byte) error {
	key, err := ParseKey(name)
	if err != nil {
		return err
	}
	return b.PutField(Field{Key: key, Value: BlobValue(value)})
}

// Build finalizes the builder into an immutable frame. The field count
// limit is enforced here rather than incrementally, so a builder may
// transiently exceed it and be corrected by overwrites before Build. The
// builder is consumed and must not be reused.
func (b *Builder) Build() (*Frame, error) {
	if len(b.fields) > b.constraints.MaxFields {
		return nil, TooManyFieldsError{Limit: b.constraints.MaxFields}
	}
	frame := &Frame{
		fields:      b.fields,
		constraints: b.constraints,
	}
	b.fields = nil
	return frame, nil
}

func (b *Builder) validate(field Field) error {
	keyLen := len(field.Key.String())
	if keyLen == 0 {
		return ErrEmptyKey
	}
	if keyLen > b.constraints.MaxKeyBytes {
		return KeyTooLongError{Key: field.Key, Limit: b.constraints.MaxKeyBytes}
	}
	switch value := field.Value.(type) {
	case TextValue:
		if len(value) > b.constraints.MaxTextBytes {
			return ValueTooLargeError{
				Key:   field.Key,
				Limit: b.constraints.MaxTextBytes,
			}
		}
	case BlobValue:
		if len(value) > b.constraints.MaxBlobBytes {
			return ValueTooLargeError{
				Key:   field.Key,
				Limit: b.constraints.MaxBlobBytes,
			}
		}
	case AccountValue:
		// NewAccountID validated the identifier; only the zero value can
		// reach here unvalidated
		if value.ID == (AccountID{}) {
			return InvalidAccountIDError{
				Reason: "account identifiers cannot be empty",
			}
		}
	}
	return nil
}

// Frame is an immutable, validated set of metadata fields plus the
// constraints in effect when it was built. Frames are created only by
// Builder.Build (or the FromFields convenience wrapper) and never mutated.
type Frame struct {
	fields      map[Key]Value
	constraints Constraints
}

// FromFields builds a frame directly from a list of fields using default
// constraints.
func FromFields(fields ...Field) (*Frame, error) {
	builder := NewBuilder()
	if err := builder.ExtendFields(fields...); err != nil {
		return nil, err
	}
	return builder.Build()
}

// Constraints returns the constraints the frame was built under.
func (f *Frame) Constraints() Constraints {
	return f.constraints
}

// Len returns the number of fields in the frame.
func (f *Frame) Len() int {
	return len(f.fields)
}

// Get returns the value for a key, if present.
func (f *Frame) Get(key Key) (Value, bool) {
	value, ok := f.fields[key]
	return value, ok
}

// Fields returns the frame's fields in canonical key order.
func (f *Frame) Fields() []Field {
	fields := make([]Field, 0, len(f.fields))
	for key, value := range f.fields {
		fields = append(fields, Field{Key: key, Value: value})
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Key.Less(fields[j].Key)
	})
	return fields
}

// AccountID returns the well-known account identifier field, if present.
func (f *Frame) AccountID() (AccountID, bool) {
	value, ok := f.fields[KeyAccountID]
	if !ok {
		return AccountID{}, false
	}
	return AsAccountID(value)
}

// IssuedAt returns the issuance timestamp, if present.
func (f *Frame) IssuedAt() (Timestamp, bool) {
	value, ok := f.fields[KeyIssuedAt]
	if !ok {
		return Timestamp{}, false
	}
	return AsTimestamp(value)
}

// ExpiresAt returns the expiration timestamp, if present.
func (f *Frame) ExpiresAt() (Timestamp, bool) {
	value, ok := f.fields[KeyExpiresAt]
	if !ok {
		return Timestamp{}, false
	}
	return AsTimestamp(value)
}

// Equal reports structural equality: same constraints and the same set of
// key/value pairs.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.constraints != other.constraints {
		return false
	}
	if len(f.fields) != len(other.fields) {
		return false
	}
	for key, value := range f.fields {
		otherValue, ok := other.fields[key]
		if !ok || !value.Equal(otherValue) {
			return false
		}
	}
	return true
}
