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

import "strings"

// AccountIDMaxLen is the maximum length of an account identifier in bytes
const AccountIDMaxLen = 64

// AccountID scopes metadata to a watermark operator account. Validation
// happens once at construction; an AccountID obtained from NewAccountID is
// structurally valid for its entire lifetime. The zero value is not valid.
type AccountID struct {
	id string
}

// NewAccountID validates and wraps an account identifier. Identifiers must
// be non-empty, at most AccountIDMaxLen bytes, and consist of ASCII
// alphanumerics plus '-' or '_'.
func NewAccountID(id string) (AccountID, error) {
	if strings.TrimSpace(id) == "" {
		return AccountID{}, InvalidAccountIDError{
			Reason: "account identifiers cannot be empty",
		}
	}
	if len(id) > AccountIDMaxLen {
		return AccountID{}, InvalidAccountIDError{
			Reason: "account identifier exceeds maximum length",
		}
	}
	for _, c := range []byte(id) {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') && c != '_' && c != '-' {
			return AccountID{}, InvalidAccountIDError{
				Reason: "account identifier must be alphanumeric plus '-' or '_'",
			}
		}
	}
	return AccountID{id: id}, nil
}

// String returns the identifier string.
func (a AccountID) String() string {
	return a.id
}
