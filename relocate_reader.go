package vrm_normalizer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/vrm-tools/vrm-normalizer-go/util/bytex"
)

// ErrShortRead is returned when the source is exhausted before a surviving
// region's bytes are fully read (§4.7: "failing only if the reader returns 0
// before completion").
var ErrShortRead = errors.New("vrm: short read while relocating buffer")

// traceFunc receives the "relocate: i/n" and "skip n" lines the original
// implementation printed unconditionally (SPEC_FULL.md §9); under --debug
// it writes to stderr, otherwise it is a no-op.
type traceFunc func(format string, args ...any)

func noopTrace(string, ...any) {}

// relocateBinary drives r — positioned immediately after the JSON chunk —
// through every original BIN chunk, producing one compacted, 4-byte-padded
// output chunk per surviving buffer, per §4.7. r is read strictly
// sequentially and blocking. Only the bytes of surviving regions are kept
// (in the returned chunks); deleted gaps and dead chunks are dropped through
// discard's pooled scratch buffer and never held in full.
func relocateBinary(r io.Reader, plan relocationPlan, totalBytes uint32, trace traceFunc) ([][]byte, error) {
	chunks := make([][]byte, 0, len(plan.RemainingChunkIndexes))

	var offset uint32
	var ordinal uint64
	for offset < totalBytes {
		trace("relocate: %d/%d", offset, totalBytes)

		var chunkLength, chunkKind uint32
		if err := binary.Read(r, binary.LittleEndian, &chunkLength); err != nil {
			return nil, fmt.Errorf("read bin chunk %d length: %w", ordinal, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &chunkKind); err != nil {
			return nil, fmt.Errorf("read bin chunk %d kind: %w", ordinal, err)
		}
		if GLBChunkKind(chunkKind) != GLBChunkKindBIN {
			return nil, fmt.Errorf("%w: bin chunk %d: 0x%08x", ErrUnexpectedChunkKind, ordinal, chunkKind)
		}

		newBufferIdx, keep := positionOf(plan.RemainingChunkIndexes, ordinal)
		if keep {
			out, err := copySurvivingRegions(r, chunkLength, plan.SurvivingRegions[newBufferIdx], trace)
			if err != nil {
				return nil, fmt.Errorf("relocate bin chunk %d: %w", ordinal, err)
			}
			chunks = append(chunks, out)
		} else {
			if err := discard(r, int64(chunkLength), trace); err != nil {
				return nil, fmt.Errorf("skip dead bin chunk %d: %w", ordinal, err)
			}
		}

		offset += glbChunkHeaderSize + chunkLength
		ordinal++
	}

	return chunks, nil
}

// positionOf returns the index of ordinal within indexes (its post-sweep
// buffer index) and whether it is present at all.
func positionOf(indexes []uint64, ordinal uint64) (int, bool) {
	for i, v := range indexes {
		if v == ordinal {
			return i, true
		}
	}
	return 0, false
}

// copySurvivingRegions reads chunkLength bytes from r, keeping only the
// bytes named by regions (already relative to the start of this chunk, in
// ascending order), and pads the result to a multiple of 4 with zeros.
func copySurvivingRegions(r io.Reader, chunkLength uint32, regions []region, trace traceFunc) ([]byte, error) {
	var out []byte
	var cursor uint64

	for _, reg := range regions {
		if cursor < reg.Offset {
			if err := discard(r, int64(reg.Offset-cursor), trace); err != nil {
				return nil, fmt.Errorf("skip to region: %w", err)
			}
			cursor = reg.Offset
		}

		dst := make([]byte, reg.Length)
		if err := readRegion(r, dst); err != nil {
			return nil, err
		}
		out = append(out, dst...)
		cursor = reg.Offset + reg.Length
	}

	if cursor < uint64(chunkLength) {
		if err := discard(r, int64(uint64(chunkLength)-cursor), trace); err != nil {
			return nil, fmt.Errorf("skip chunk remainder: %w", err)
		}
	}

	if pad := padLen(len(out), 4, binPadByte); pad != nil {
		out = append(out, pad...)
	}
	return out, nil
}

// readRegion fills dst completely, retrying short reads until satisfied —
// per §4.7, some readers legitimately return fewer bytes than requested —
// and failing only once a read returns no bytes before dst is full.
func readRegion(r io.Reader, dst []byte) error {
	var filled int
	for filled < len(dst) {
		n, err := r.Read(dst[filled:])
		filled += n
		if filled == len(dst) {
			return nil
		}
		if n == 0 {
			if err != nil && err != io.EOF {
				return fmt.Errorf("read region: %w", err)
			}
			return fmt.Errorf("%w: got %d of %d bytes", ErrShortRead, filled, len(dst))
		}
	}
	return nil
}

// discard reads and drops n bytes from r using a pooled scratch buffer, so
// skipping a dead chunk or a deleted gap never grows the heap. Each call
// emits a "skip n" trace line, mirroring the original implementation's
// unconditional stdout noise as a --debug-gated one (SPEC_FULL.md §9).
func discard(r io.Reader, n int64, trace traceFunc) error {
	if n <= 0 {
		return nil
	}
	trace("skip %d", n)
	buf := bytex.Get(uint64(minInt64(n, 64*1024)))
	defer bytex.Put(buf)

	for n > 0 {
		want := int64(len(buf))
		if n < want {
			want = n
		}
		read, err := io.ReadFull(r, buf[:want])
		n -= int64(read)
		if err != nil {
			return err
		}
	}
	return nil
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
