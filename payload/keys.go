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

// Well-known metadata keys with reserved wire semantics. Custom keys are
// created via CustomKey or ParseKey.
var (
	KeyAccountID = Key{name: "account_id"}
	KeySessionID = Key{name: "session_id"}
	KeyContentID = Key{name: "content_id"}
	KeyIssuedAt  = Key{name: "issued_at"}
	KeyExpiresAt = Key{name: "expires_at"}
)

var wellKnownKeys = map[string]Key{
	"account_id": KeyAccountID,
	"session_id": KeySessionID,
	"content_id": KeyContentID,
	"issued_at":  KeyIssuedAt,
	"expires_at": KeyExpiresAt,
}

// Key identifies a metadata field. Keys compare by their canonical string,
// which is also the ordering used when iterating or serializing a frame.
// The zero value is not a valid key.
type Key struct {
	name string
}

// CustomKey creates an application-defined key. Custom keys must be
// non-empty ASCII lowercase letters, digits, '_', or '.'
func CustomKey(name string) (Key, error) {
	if name == "" {
		return Key{}, ErrEmptyKey
	}
	for _, c := range []byte(name) {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' &&
			c != '.' {
			return Key{}, InvalidCustomKeyError{
				Reason: "keys must be lowercase ASCII alphanumerics, '.', or '_'",
			}
		}
	}
	return Key{name: name}, nil
}

// ParseKey maps the five reserved names to their well-known keys and
// validates anything else as a custom key.
func ParseKey(name string) (Key, error) {
	if key, ok := wellKnownKeys[name]; ok {
		return key, nil
	}
	return CustomKey(name)
}

// String returns the canonical wire representation of the key.
func (k Key) String() string {
	return k.name
}

// IsWellKnown reports whether the key is one of the five reserved fields.
func (k Key) IsWellKnown() bool {
	_, ok := wellKnownKeys[k.name]
	return ok
}

// Less reports whether k orders before other in canonical key order.
func (k Key) Less(other Key) bool {
	return k.name < other.name
}
