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

import "fmt"

const (
	// Total length of the static frame header
	headerLen = 8
	// Length of the encrypted-hash envelope preamble: u16 tag length,
	// u16 metadata length, u32 sealed payload length
	encryptedPreambleLen = 8
)

// Magic literal "WM" at the start of every frame
var magicBytes = []byte{0x57, 0x4D}

// Version is the semantic codec version carried in the frame header.
// Decoders reject a major mismatch and accept any minor version.
type Version struct {
	Major uint8
	Minor uint8
}

// VersionLatest is the most recent codec version supported by the library.
var VersionLatest = Version{Major: 1, Minor: 0}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// appendHeader writes the 8-byte frame header: magic, version, envelope
// flag, and three reserved zero bytes.
func (v Version) appendHeader(buf []byte, envelope Envelope) []byte {
	buf = append(buf, magicBytes...)
	buf = append(buf, v.Major, v.Minor, byte(envelope), 0, 0, 0)
	return buf
}

// Envelope describes how the body following the header is structured.
type Envelope uint8

const (
	EnvelopePlain         Envelope = 0
	EnvelopeEncryptedHash Envelope = 1
)

func envelopeFromFlag(flag byte) (Envelope, bool) {
	switch flag {
	case 0:
		return EnvelopePlain, true
	case 1:
		return EnvelopeEncryptedHash, true
	default:
		return 0, false
	}
}
