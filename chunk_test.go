package termrast

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeChunkSize(t *testing.T) {
	assert.Equal(t, 4, sanitizeChunkSize(1))
	assert.Equal(t, 8, sanitizeChunkSize(6))
	assert.Equal(t, 8, sanitizeChunkSize(8))
	assert.Equal(t, 4, sanitizeChunkSize(0))
	assert.Equal(t, 4, sanitizeChunkSize(-5))

	// Idempotent
	for _, size := range []int{1, 6, 8, 100, 3072} {
		once := sanitizeChunkSize(size)
		assert.Equal(t, once, sanitizeChunkSize(once))
	}
}

func TestChunkBase64Empty(t *testing.T) {
	chunks := chunkBase64(nil, 3072)
	require.Len(t, chunks, 1)
	assert.Equal(t, "", chunks[0])
}

func TestChunkBase64Splits(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 100) // encodes to 136 base64 bytes
	chunks := chunkBase64(data, 16)

	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		if i < len(chunks)-1 {
			assert.Len(t, chunk, 16)
		}
		assert.Zero(t, len(chunk)%4, "chunk %d length %d not a multiple of 4", i, len(chunk))
	}

	var joined string
	for _, chunk := range chunks {
		joined += chunk
	}
	decoded, err := base64.StdEncoding.DecodeString(joined)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestEncodeBase64ReusesBuffers(t *testing.T) {
	// Exercise the pool with payloads larger than the pooled capacity.
	big := bytes.Repeat([]byte{1, 2, 3}, 5000)
	first := encodeBase64(big)
	second := encodeBase64(big)
	assert.Equal(t, first, second)
	assert.Equal(t, base64.StdEncoding.EncodeToString(big), first)
}
