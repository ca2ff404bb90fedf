package vrm_normalizer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildGLB assembles a minimal, well-formed GLB byte sequence from a JSON
// document and zero or more already-padded BIN chunks, mirroring the layout
// spec.md §6/§9 describes. Shared by every test file in this package that
// needs a golden fixture.
func buildGLB(t *testing.T, doc Document, binChunks [][]byte) []byte {
	t.Helper()

	jsonBytes, err := EncodeDocument(doc)
	require.NoError(t, err)
	if pad := padLen(len(jsonBytes), 4, jsonPadByte); pad != nil {
		jsonBytes = append(jsonBytes, pad...)
	}

	var buf bytes.Buffer
	var total uint32
	for _, c := range binChunks {
		total += glbChunkHeaderSize + uint32(len(c))
	}
	total += uint32(glbHeaderSize) + glbChunkHeaderSize + uint32(len(jsonBytes))

	write32 := func(v uint32) { require.NoError(t, binary.Write(&buf, binary.LittleEndian, v)) }
	write32(GLBMagic)
	write32(2)
	write32(total)
	write32(uint32(len(jsonBytes)))
	write32(uint32(GLBChunkKindJSON))
	buf.Write(jsonBytes)
	for _, c := range binChunks {
		write32(uint32(len(c)))
		write32(uint32(GLBChunkKindBIN))
		buf.Write(c)
	}
	return buf.Bytes()
}

func TestDecodeGLBHeader(t *testing.T) {
	bs := buildGLB(t, Document{"asset": map[string]any{"version": "2.0"}}, nil)
	h, err := decodeGLBHeader(bytes.NewReader(bs))
	require.NoError(t, err)
	assert.Equal(t, GLBMagic, h.Magic)
	assert.Equal(t, uint32(2), h.Version)
	assert.Equal(t, uint32(len(bs)), h.TotalLength)
}

func TestDecodeGLBHeaderInvalidMagic(t *testing.T) {
	bs := buildGLB(t, Document{}, nil)
	bs[0] = 0x00
	_, err := decodeGLBHeader(bytes.NewReader(bs))
	assert.True(t, errors.Is(err, ErrInvalidGLBMagic))
}

func TestDecodeGLB(t *testing.T) {
	doc := Document{"asset": map[string]any{"version": "2.0"}, "buffers": []any{
		map[string]any{"byteLength": int64(4)},
	}}
	bin := []byte{1, 2, 3, 4}
	bs := buildGLB(t, doc, [][]byte{bin})

	out, err := decodeGLB(bytes.NewReader(bs))
	require.NoError(t, err)
	assert.Equal(t, "2.0", out.JSON["asset"].(map[string]any)["version"])
	assert.Equal(t, uint32(glbChunkHeaderSize+len(bin)), out.RemainingBinaryLength)
}

func TestDecodeGLBWrongChunkKind(t *testing.T) {
	doc := Document{"asset": map[string]any{}}
	bs := buildGLB(t, doc, nil)

	// Flip the JSON chunk's declared kind.
	kindOffset := glbHeaderSize + 4
	binary.LittleEndian.PutUint32(bs[kindOffset:], uint32(GLBChunkKindBIN))

	_, err := decodeGLB(bytes.NewReader(bs))
	assert.True(t, errors.Is(err, ErrUnexpectedChunkKind))
}

func TestEncodeGLBRoundtrip(t *testing.T) {
	doc := Document{"asset": map[string]any{"version": "2.0"}}
	var buf bytes.Buffer
	require.NoError(t, encodeGLB(&buf, 2, doc, [][]byte{{1, 2, 3, 4}}))

	out, err := decodeGLB(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "2.0", out.JSON["asset"].(map[string]any)["version"])
}

func TestAlignHelpers(t *testing.T) {
	assert.Equal(t, uint64(8), alignUp(5, 8))
	assert.Equal(t, uint64(8), alignUp(8, 8))
	assert.Equal(t, uint64(0), alignDown(5, 8))
	assert.Equal(t, uint64(8), alignDown(8, 8))
	assert.Nil(t, padLen(4, 4, 0x20))
	assert.Equal(t, []byte{0x20, 0x20}, padLen(2, 4, 0x20))
}
