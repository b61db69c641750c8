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

// Package codec serializes payload frames to and from the watermark wire
// format. All multi-byte integers are little-endian. Every frame starts
// with an 8-byte header (magic "WM", major/minor version, envelope flag,
// three reserved zero bytes) followed by either a plain field body or an
// encrypted-hash envelope whose sealed bytes contain the same plain body.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/wavemark-io/gowavemark/encryption"
	"github.com/wavemark-io/gowavemark/payload"
)

// FrameCodec converts payload frames to and from wire bytes. A codec is
// bound to immutable options at construction; Encode and Decode are
// otherwise pure functions of their arguments and safe for concurrent use.
type FrameCodec struct {
	options Options
}

// New constructs a codec bound to the supplied options. Encrypted-hash
// mode requires a strategy; the configuration is copied so the caller
// cannot mutate a live codec.
func New(options Options) (*FrameCodec, error) {
	bound, err := options.bind()
	if err != nil {
		return nil, err
	}
	return &FrameCodec{options: bound}, nil
}

// Options returns the options the codec was bound to.
func (c *FrameCodec) Options() Options {
	return c.options
}

// Encode serializes a frame, sealing the body when the codec is configured
// for encrypted-hash mode.
func (c *FrameCodec) Encode(
	frame *payload.Frame,
	ctx *encryption.Context,
) ([]byte, error) {
	if ctx == nil {
		ctx = &encryption.Context{}
	}
	plainBody, err := c.encodePlain(frame)
	if err != nil {
		return nil, err
	}
	if c.options.Encryption.IsEncryptedHash() {
		return c.wrapEncrypted(plainBody, ctx)
	}
	return c.wrapPlain(plainBody), nil
}

// Decode parses wire bytes back into a frame, verifying the header and
// version and opening the sealed body when one is present.
func (c *FrameCodec) Decode(
	data []byte,
	ctx *encryption.Context,
) (*payload.Frame, error) {
	if ctx == nil {
		ctx = &encryption.Context{}
	}
	if len(data) < headerLen {
		return nil, ErrUnexpectedEOF
	}
	if !bytes.Equal(data[:2], magicBytes) {
		return nil, HeaderError{Reason: "magic mismatch"}
	}
	found := Version{Major: data[2], Minor: data[3]}
	if found.Major != c.options.Version.Major {
		return nil, UnsupportedVersionError{
			ExpectedMajor: c.options.Version.Major,
			Found:         found,
		}
	}
	envelope, ok := envelopeFromFlag(data[4])
	if !ok {
		return nil, HeaderError{Reason: "unknown envelope flag"}
	}

	body := data[headerLen:]
	switch envelope {
	case EnvelopePlain:
		// Reject plaintext downgrades when the codec expects sealed frames
		if c.options.Encryption.IsEncryptedHash() {
			return nil, HeaderError{
				Reason: "plaintext payload encountered but codec expects encrypted hash",
			}
		}
		return c.decodePlain(body)
	case EnvelopeEncryptedHash:
		plainBody, err := c.unwrapEncrypted(body, ctx)
		if err != nil {
			return nil, err
		}
		return c.decodePlain(plainBody)
	default:
		return nil, HeaderError{Reason: "unknown envelope flag"}
	}
}

func (c *FrameCodec) wrapPlain(body []byte) []byte {
	buf := make([]byte, 0, headerLen+len(body))
	buf = c.options.Version.appendHeader(buf, EnvelopePlain)
	return append(buf, body...)
}

func (c *FrameCodec) wrapEncrypted(
	body []byte,
	ctx *encryption.Context,
) ([]byte, error) {
	artifacts, err := c.options.Encryption.Config.Strategy.Seal(body, ctx)
	if err != nil {
		return nil, fmt.Errorf("seal payload: %w", err)
	}
	if len(artifacts.Tag) > math.MaxUint16 {
		return nil, LengthOverflowError{Field: "tag"}
	}
	if len(artifacts.Metadata) > math.MaxUint16 {
		return nil, LengthOverflowError{Field: "encryption metadata"}
	}
	if uint64(len(artifacts.SealedPayload)) > math.MaxUint32 {
		return nil, LengthOverflowError{Field: "sealed payload"}
	}

	size := headerLen + encryptedPreambleLen +
		len(artifacts.Tag) + len(artifacts.Metadata) +
		len(artifacts.SealedPayload)
	buf := make([]byte, 0, size)
	buf = c.options.Version.appendHeader(buf, EnvelopeEncryptedHash)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(artifacts.Tag)))
	buf = binary.LittleEndian.AppendUint16(
		buf,
		uint16(len(artifacts.Metadata)),
	)
	buf = binary.LittleEndian.AppendUint32(
		buf,
		uint32(len(artifacts.SealedPayload)),
	)
	buf = append(buf, artifacts.Tag...)
	buf = append(buf, artifacts.Metadata...)
	buf = append(buf, artifacts.SealedPayload...)
	return buf, nil
}

func (c *FrameCodec) unwrapEncrypted(
	body []byte,
	ctx *encryption.Context,
) ([]byte, error) {
	if !c.options.Encryption.IsEncryptedHash() {
		return nil, HeaderError{
			Reason: "received encrypted payload but codec is in plaintext mode",
		}
	}
	if len(body) < encryptedPreambleLen {
		return nil, ErrUnexpectedEOF
	}
	tagLen := int(binary.LittleEndian.Uint16(body[0:2]))
	metadataLen := int(binary.LittleEndian.Uint16(body[2:4]))
	sealedLen := int(binary.LittleEndian.Uint32(body[4:8]))
	if len(body) < encryptedPreambleLen+tagLen+metadataLen+sealedLen {
		return nil, ErrUnexpectedEOF
	}

	offset := encryptedPreambleLen
	artifacts := &encryption.Artifacts{}
	if tagLen > 0 {
		artifacts.Tag = body[offset : offset+tagLen]
	}
	offset += tagLen
	if metadataLen > 0 {
		artifacts.Metadata = body[offset : offset+metadataLen]
	}
	offset += metadataLen
	artifacts.SealedPayload = body[offset : offset+sealedLen]

	plain, err := c.options.Encryption.Config.Strategy.Open(
		artifacts.SealedPayload,
		artifacts,
		ctx,
	)
	if err != nil {
		return nil, fmt.Errorf("open sealed payload: %w", err)
	}
	return plain, nil
}

func (c *FrameCodec) encodePlain(frame *payload.Frame) ([]byte, error) {
	fields := frame.Fields()
	if len(fields) > math.MaxUint16 {
		return nil, LengthOverflowError{Field: "field count"}
	}

	buf := binary.LittleEndian.AppendUint16(nil, uint16(len(fields)))
	for _, field := range fields {
		name := field.Key.String()
		if len(name) > math.MaxUint8 {
			return nil, LengthOverflowError{Field: "metadata key"}
		}
		buf = append(buf, uint8(len(name)))
		buf = append(buf, name...)
		buf = append(buf, byte(field.Value.Kind()))

		switch value := field.Value.(type) {
		case payload.AccountValue:
			id := value.ID.String()
			if len(id) > math.MaxUint8 {
				return nil, LengthOverflowError{Field: "account_id"}
			}
			buf = append(buf, uint8(len(id)))
			buf = append(buf, id...)
		case payload.TimestampValue:
			buf = binary.LittleEndian.AppendUint64(
				buf,
				uint64(value.Time.Unix()),
			)
		case payload.TextValue:
			if len(value) > math.MaxUint16 {
				return nil, LengthOverflowError{Field: "text value"}
			}
			buf = binary.LittleEndian.AppendUint16(buf, uint16(len(value)))
			buf = append(buf, value...)
		case payload.IntValue:
			buf = binary.LittleEndian.AppendUint64(buf, uint64(value))
		case payload.BoolValue:
			if value {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		case payload.BlobValue:
			if len(value) > math.MaxUint16 {
				return nil, LengthOverflowError{Field: "blob value"}
			}
			buf = binary.LittleEndian.AppendUint16(buf, uint16(len(value)))
			buf = append(buf, value...)
		default:
			return nil, UnsupportedFieldTypeError{
				Tag: uint8(field.Value.Kind()),
			}
		}
	}
	return buf, nil
}

func (c *FrameCodec) decodePlain(body []byte) (*payload.Frame, error) {
	r := &byteReader{data: body}
	fieldCount, err := r.u16()
	if err != nil {
		return nil, err
	}

	builder := payload.NewBuilderWithConstraints(c.options.Constraints)
	for range fieldCount {
		keyLen, err := r.u8()
		if err != nil {
			return nil, err
		}
		keyBytes, err := r.take(int(keyLen))
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(keyBytes) {
			return nil, InvalidUTF8Error{Field: "metadata key"}
		}
		key, err := payload.ParseKey(string(keyBytes))
		if err != nil {
			return nil, fmt.Errorf("parse metadata key: %w", err)
		}

		tag, err := r.u8()
		if err != nil {
			return nil, err
		}
		value, err := decodeValue(r, payload.ValueKind(tag))
		if err != nil {
			return nil, err
		}

		err = builder.PutField(payload.Field{Key: key, Value: value})
		if err != nil {
			return nil, fmt.Errorf("decoded field rejected: %w", err)
		}
	}

	frame, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("rebuild decoded frame: %w", err)
	}
	return frame, nil
}

func decodeValue(r *byteReader, kind payload.ValueKind) (payload.Value, error) {
	switch kind {
	case payload.KindAccount:
		idLen, err := r.u8()
		if err != nil {
			return nil, err
		}
		idBytes, err := r.take(int(idLen))
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(idBytes) {
			return nil, InvalidUTF8Error{Field: "account_id"}
		}
		id, err := payload.NewAccountID(string(idBytes))
		if err != nil {
			return nil, fmt.Errorf("decode account_id: %w", err)
		}
		return payload.AccountValue{ID: id}, nil
	case payload.KindTimestamp:
		raw, err := r.u64()
		if err != nil {
			return nil, err
		}
		ts, err := payload.FromUnix(int64(raw))
		if err != nil {
			return nil, fmt.Errorf("decode timestamp: %w", err)
		}
		return payload.TimestampValue{Time: ts}, nil
	case payload.KindText:
		textLen, err := r.u16()
		if err != nil {
			return nil, err
		}
		textBytes, err := r.take(int(textLen))
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(textBytes) {
			return nil, InvalidUTF8Error{Field: "text value"}
		}
		return payload.TextValue(textBytes), nil
	case payload.KindInt:
		raw, err := r.u64()
		if err != nil {
			return nil, err
		}
		return payload.IntValue(int64(raw)), nil
	case payload.KindBool:
		b, err := r.u8()
		if err != nil {
			return nil, err
		}
		switch b {
		case 0:
			return payload.BoolValue(false), nil
		case 1:
			return payload.BoolValue(true), nil
		default:
			return nil, HeaderError{Reason: "boolean value must be 0 or 1"}
		}
	case payload.KindBlob:
		blobLen, err := r.u16()
		if err != nil {
			return nil, err
		}
		blobBytes, err := r.take(int(blobLen))
		if err != nil {
			return nil, err
		}
		blob := make([]byte, len(blobBytes))
		copy(blob, blobBytes)
		return payload.BlobValue(blob), nil
	default:
		return nil, UnsupportedFieldTypeError{Tag: uint8(kind)}
	}
}

// byteReader walks a buffer with bounds checks. Every read verifies the
// remaining length before slicing so malformed input can never read out of
// bounds.
type byteReader struct {
	data []byte
	off  int
}

func (r *byteReader) u8() (uint8, error) {
	if r.off+1 > len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

func (r *byteReader) u16() (uint16, error) {
	if r.off+2 > len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

func (r *byteReader) u64() (uint64, error) {
	if r.off+8 > len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint64(r.data[r.off:])
	r.off += 8
	return v, nil
}

func (r *byteReader) take(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.data) {
		return nil, ErrUnexpectedEOF
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}
