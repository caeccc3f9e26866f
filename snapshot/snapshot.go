// Package snapshot persists BitVectors in a self-describing
// container: a fixed little-endian header carrying magic, version and
// compression codec, followed by the (optionally compressed) binary
// form of the vector.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/bitvec"
)

var (
	magic         = [4]byte{'B', 'V', 'S', '0'}
	headerVersion = uint16(1)
)

const (
	headerLen      = 16 // magic + version + flags + codec + reserved
	flagCompressed = uint16(1)
)

// ErrInvalidSnapshot is the sentinel all container-level read
// failures unwrap to. Payload-level corruption surfaces as
// bitvec.ErrCorrupt instead.
var ErrInvalidSnapshot = errors.New("snapshot: invalid container")

// Write serializes bv into the container format on w.
func Write(w io.Writer, bv *bitvec.BitVector, opts ...Option) error {
	o := applyOptions(opts)
	if !o.compression.valid() {
		return fmt.Errorf("snapshot: unknown compression codec %d", uint8(o.compression))
	}

	var hdr [headerLen]byte
	copy(hdr[0:4], magic[:])
	binary.LittleEndian.PutUint16(hdr[4:6], headerVersion)
	var flags uint16
	if o.compression != CompressionNone {
		flags |= flagCompressed
	}
	binary.LittleEndian.PutUint16(hdr[6:8], flags)
	hdr[8] = byte(o.compression)
	// hdr[9:16] reserved

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}

	payload := bv.Serialize()
	blob, err := compressPayload(payload, o.compression)
	if err != nil {
		return fmt.Errorf("snapshot: compress payload: %w", err)
	}
	if _, err := w.Write(blob); err != nil {
		return fmt.Errorf("snapshot: write payload: %w", err)
	}

	o.logger.Debug("snapshot written",
		slog.Uint64("bits", uint64(bv.Size())),
		slog.String("compression", o.compression.String()),
		slog.Int("payload_bytes", len(payload)),
		slog.Int("stored_bytes", headerLen+len(blob)))
	return nil
}

// Read parses a container written by Write and returns the contained
// BitVector.
func Read(r io.Reader) (*bitvec.BitVector, error) {
	var hdr [headerLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrInvalidSnapshot, err)
	}
	if [4]byte(hdr[0:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidSnapshot, hdr[0:4])
	}
	if v := binary.LittleEndian.Uint16(hdr[4:6]); v != headerVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, v)
	}
	flags := binary.LittleEndian.Uint16(hdr[6:8])
	comp := Compression(hdr[8])
	if !comp.valid() {
		return nil, fmt.Errorf("%w: unknown compression codec %d", ErrInvalidSnapshot, hdr[8])
	}
	if (flags&flagCompressed != 0) != (comp != CompressionNone) {
		return nil, fmt.Errorf("%w: compression flag disagrees with codec %s", ErrInvalidSnapshot, comp)
	}

	blob, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrInvalidSnapshot, err)
	}
	payload, err := decompressPayload(blob, comp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return bitvec.Deserialize(payload)
}
