package vrm_normalizer

import (
	"encoding/binary"
	"fmt"
	"io"
)

// glbHeader is the fixed 12-byte GLB file header.
type glbHeader struct {
	Magic       uint32
	Version     uint32
	TotalLength uint32
}

// decodeGLBHeader reads and validates the 12-byte GLB header.
func decodeGLBHeader(r io.Reader) (glbHeader, error) {
	var h glbHeader
	if err := binary.Read(r, binary.LittleEndian, &h.Magic); err != nil {
		return h, fmt.Errorf("read magic: %w", err)
	}
	if h.Magic != GLBMagic {
		return h, fmt.Errorf("%w: 0x%08x", ErrInvalidGLBMagic, h.Magic)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.Version); err != nil {
		return h, fmt.Errorf("read version: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &h.TotalLength); err != nil {
		return h, fmt.Errorf("read total length: %w", err)
	}
	return h, nil
}

// decodedGLB is the result of decoding a GLB container up to (and including)
// the JSON chunk. The binary portion is deliberately left unread: the
// caller (the buffer relocator, §4.7) streams it directly from r so that no
// stage ever fully buffers the BIN region.
type decodedGLB struct {
	Header glbHeader
	// JSON is the parsed chunk-0 document.
	JSON Document
	// RemainingBinaryLength is the declared length, in bytes, of everything
	// after the JSON chunk — trusted as-is per spec.md §4.9/§9 (the upstream
	// TODO about not trusting json_length is preserved, not fixed).
	RemainingBinaryLength uint32
}

// decodeGLB parses the header and the mandatory JSON chunk from r, leaving r
// positioned at the start of the first BIN chunk (or EOF, if there is none).
func decodeGLB(r io.Reader) (decodedGLB, error) {
	var out decodedGLB

	h, err := decodeGLBHeader(r)
	if err != nil {
		return out, err
	}
	out.Header = h

	var jsonLength, jsonKind uint32
	if err := binary.Read(r, binary.LittleEndian, &jsonLength); err != nil {
		return out, fmt.Errorf("read json chunk length: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &jsonKind); err != nil {
		return out, fmt.Errorf("read json chunk kind: %w", err)
	}
	if GLBChunkKind(jsonKind) != GLBChunkKindJSON {
		return out, fmt.Errorf("%w: json chunk: 0x%08x", ErrUnexpectedChunkKind, jsonKind)
	}

	jsonBytes := make([]byte, jsonLength)
	if _, err := io.ReadFull(r, jsonBytes); err != nil {
		return out, fmt.Errorf("%w: json chunk: %w", ErrTruncatedChunk, err)
	}

	doc, err := DecodeDocument(jsonBytes)
	if err != nil {
		return out, fmt.Errorf("parse json chunk: %w", err)
	}
	out.JSON = doc

	const headerTail = 20 // magic+version+totalLength+jsonLength+jsonKind
	if h.TotalLength < uint32(headerTail)+jsonLength {
		out.RemainingBinaryLength = 0
	} else {
		out.RemainingBinaryLength = h.TotalLength - uint32(headerTail) - jsonLength
	}

	return out, nil
}
