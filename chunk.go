package termrast

import (
	"encoding/base64"
	"sync"
)

// Base64 chunk sizes used by the graphics protocols. Kitty caps escape
// payloads at 4096 bytes; 3072 leaves headroom for parameters. iTerm2 has
// no hard cap, 4096 keeps lines manageable.
const (
	kittyChunkSize  = 3072
	iterm2ChunkSize = 4096
)

// Encoding buffers are reused across frames; animations encode one payload
// per frame.
var base64BufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, base64.StdEncoding.EncodedLen(kittyChunkSize)*2)
		return &buf
	},
}

// encodeBase64 base64-encodes src with buffer reuse.
func encodeBase64(src []byte) string {
	bufPtr := base64BufPool.Get().(*[]byte)
	defer base64BufPool.Put(bufPtr)

	n := base64.StdEncoding.EncodedLen(len(src))
	if cap(*bufPtr) < n {
		*bufPtr = make([]byte, n)
	} else {
		*bufPtr = (*bufPtr)[:n]
	}
	base64.StdEncoding.Encode(*bufPtr, src)
	return string(*bufPtr)
}

// chunkBase64 encodes data once and splits the encoded payload into chunks
// whose lengths are multiples of 4, so no boundary splits a base64 quantum.
// An empty payload yields exactly one empty chunk: every protocol encoder
// still emits its mandatory first-chunk metadata frame for a degenerate
// image.
func chunkBase64(data []byte, chunkSize int) []string {
	chunkSize = sanitizeChunkSize(chunkSize)
	encoded := encodeBase64(data)
	if encoded == "" {
		return []string{""}
	}

	chunks := make([]string, 0, (len(encoded)+chunkSize-1)/chunkSize)
	for i := 0; i < len(encoded); i += chunkSize {
		end := min(i+chunkSize, len(encoded))
		chunks = append(chunks, encoded[i:end])
	}
	return chunks
}

// sanitizeChunkSize rounds a requested chunk size up to the nearest
// multiple of 4, minimum 4.
func sanitizeChunkSize(chunkSize int) int {
	if chunkSize < 4 {
		chunkSize = 4
	}
	if r := chunkSize % 4; r != 0 {
		chunkSize += 4 - r
	}
	return chunkSize
}
