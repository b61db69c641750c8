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

package wavemark

import (
	"context"
	"errors"
	"sync"
)

// Carrier is the boundary to the signal-embedding component. The format
// layer hands it an opaque byte buffer to hide inside a carrier signal and
// receives an opaque byte buffer back when recovering; how that happens is
// entirely the carrier's concern.
type Carrier interface {
	// Embed hides the payload bytes in the carrier signal.
	Embed(ctx context.Context, payload []byte) error
	// Recover extracts previously embedded payload bytes.
	Recover(ctx context.Context) ([]byte, error)
}

// ErrNoPayloadEmbedded is returned by BufferCarrier.Recover before any
// payload has been embedded
var ErrNoPayloadEmbedded = errors.New("no payload has been embedded")

// BufferCarrier is a loopback carrier that stores the payload in memory.
// It stands in for a real signal-embedding component in tests and
// pipelines under development.
type BufferCarrier struct {
	mutex   sync.Mutex
	payload []byte
}

// Embed stores a copy of the payload bytes.
func (b *BufferCarrier) Embed(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.payload = make([]byte, len(payload))
	copy(b.payload, payload)
	return nil
}

// Recover returns a copy of the most recently embedded payload bytes.
func (b *BufferCarrier) Recover(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.payload == nil {
		return nil, ErrNoPayloadEmbedded
	}
	payload := make([]byte, len(b.payload))
	copy(payload, b.payload)
	return payload, nil
}
