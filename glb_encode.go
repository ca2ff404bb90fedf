package vrm_normalizer

import (
	"encoding/binary"
	"fmt"
	"io"
)

// encodeGLB writes a full GLB file: header, JSON chunk, then one BIN chunk
// per entry in chunks (each entry is already padded to a multiple of 4 by
// the binary relocator, per §4.7 step 4).
func encodeGLB(w io.Writer, version uint32, doc Document, chunks [][]byte) error {
	jsonBytes, err := EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encode json chunk: %w", err)
	}
	if pad := padLen(len(jsonBytes), 4, jsonPadByte); pad != nil {
		jsonBytes = append(jsonBytes, pad...)
	}

	var totalChunkBytes uint32
	for _, c := range chunks {
		totalChunkBytes += glbChunkHeaderSize + uint32(len(c))
	}

	totalLength := uint32(glbHeaderSize) + glbChunkHeaderSize + uint32(len(jsonBytes)) + totalChunkBytes

	if err := writeU32(w, GLBMagic); err != nil {
		return err
	}
	if err := writeU32(w, version); err != nil {
		return err
	}
	if err := writeU32(w, totalLength); err != nil {
		return err
	}

	if err := writeU32(w, uint32(len(jsonBytes))); err != nil {
		return err
	}
	if err := writeU32(w, uint32(GLBChunkKindJSON)); err != nil {
		return err
	}
	if _, err := w.Write(jsonBytes); err != nil {
		return fmt.Errorf("write json chunk: %w", err)
	}

	for i, c := range chunks {
		if err := writeU32(w, uint32(len(c))); err != nil {
			return err
		}
		if err := writeU32(w, uint32(GLBChunkKindBIN)); err != nil {
			return err
		}
		if _, err := w.Write(c); err != nil {
			return fmt.Errorf("write bin chunk %d: %w", i, err)
		}
	}

	return nil
}

func writeU32(w io.Writer, v uint32) error {
	if err := binary.Write(w, binary.LittleEndian, v); err != nil {
		return fmt.Errorf("write u32: %w", err)
	}
	return nil
}
