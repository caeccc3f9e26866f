package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload compression codec.
type Compression uint8

const (
	// CompressionNone stores the payload as-is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, good for hot data).
	CompressionLZ4 Compression = 1
	// CompressionZstd uses zstd block compression (better ratio, good for cold data).
	CompressionZstd Compression = 2
)

func (c Compression) valid() bool {
	return c <= CompressionZstd
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Compressed payloads carry an 8-byte block header:
// [UncompressedSize uint32][CompressedSize uint32][data...].
// CompressedSize == 0 means the data is stored uncompressed (the
// codec did not shrink it).
const blockHeaderLen = 8

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func compressPayload(payload []byte, c Compression) ([]byte, error) {
	if c == CompressionNone {
		return payload, nil
	}

	var compressed []byte
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n] // n == 0 means incompressible
	case CompressionZstd:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(payload, nil)
		zstdEncoderPool.Put(enc)
	}

	if len(compressed) == 0 || len(compressed) >= len(payload) {
		// Store uncompressed when the codec does not help.
		out := make([]byte, blockHeaderLen+len(payload))
		binary.LittleEndian.PutUint32(out[0:], uint32(len(payload)))
		binary.LittleEndian.PutUint32(out[4:], 0)
		copy(out[blockHeaderLen:], payload)
		return out, nil
	}

	out := make([]byte, blockHeaderLen+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(payload)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	copy(out[blockHeaderLen:], compressed)
	return out, nil
}

func decompressPayload(blob []byte, c Compression) ([]byte, error) {
	if c == CompressionNone {
		return blob, nil
	}
	if len(blob) < blockHeaderLen {
		return nil, errors.New("payload too small for block header")
	}
	uncompressedSize := binary.LittleEndian.Uint32(blob[0:])
	compressedSize := binary.LittleEndian.Uint32(blob[4:])
	data := blob[blockHeaderLen:]

	if compressedSize == 0 {
		if uint32(len(data)) != uncompressedSize {
			return nil, fmt.Errorf("stored payload is %d bytes, header says %d", len(data), uncompressedSize)
		}
		return data, nil
	}
	if uint32(len(data)) != compressedSize {
		return nil, fmt.Errorf("compressed payload is %d bytes, header says %d", len(data), compressedSize)
	}

	switch c {
	case CompressionLZ4:
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil
	case CompressionZstd:
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(data, nil)
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, err
		}
		if uint32(len(out)) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown compression codec %d", uint8(c))
	}
}
