package vrm_normalizer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleVRMDoc() Document {
	return Document{
		"asset": map[string]any{"version": "2.0"},
		"buffers": []any{
			map[string]any{"byteLength": int64(16)},
		},
		"bufferViews": []any{
			map[string]any{"buffer": int64(0), "byteOffset": int64(0), "byteLength": int64(8)},
			map[string]any{"buffer": int64(0), "byteOffset": int64(8), "byteLength": int64(8)},
		},
		"accessors": []any{
			map[string]any{"bufferView": int64(0)},
		},
		"meshes": []any{
			map[string]any{"primitives": []any{
				map[string]any{"attributes": map[string]any{"POSITION": int64(0)}},
			}},
		},
	}
}

func TestLoadNormalizeSaveRoundtrip(t *testing.T) {
	doc := simpleVRMDoc()
	payload := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	bs := buildGLB(t, doc, [][]byte{payload})

	v, err := Load(bytes.NewReader(bs))
	require.NoError(t, err)

	require.NoError(t, v.Normalize())

	out := v.Document()
	// bufferViews[1] is unreferenced by any accessor/image and is swept away.
	assert.Len(t, getArray(out, "bufferViews"), 1)
	assert.Len(t, getArray(out, "buffers"), 1)

	var buf bytes.Buffer
	require.NoError(t, v.Save(&buf))
	assert.NotZero(t, buf.Len())

	report := v.Report()
	assert.Equal(t, 2, report.Before.BufferViews)
	assert.Equal(t, 1, report.After.BufferViews)
}

func TestNormalizeTwiceErrors(t *testing.T) {
	doc := simpleVRMDoc()
	bs := buildGLB(t, doc, [][]byte{make([]byte, 16)})

	v, err := Load(bytes.NewReader(bs))
	require.NoError(t, err)
	require.NoError(t, v.Normalize())

	assert.Error(t, v.Normalize())
}

func TestSaveBeforeNormalizeErrors(t *testing.T) {
	doc := simpleVRMDoc()
	bs := buildGLB(t, doc, [][]byte{make([]byte, 16)})

	v, err := Load(bytes.NewReader(bs))
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, v.Save(&buf))
}

func TestNormalizeFileReturnsPopulatedReport(t *testing.T) {
	doc := simpleVRMDoc()
	bs := buildGLB(t, doc, [][]byte{make([]byte, 16)})

	var buf bytes.Buffer
	report, err := NormalizeFile("model.vrm", bytes.NewReader(bs), &buf)
	require.NoError(t, err)

	assert.Equal(t, "model.vrm", report.Path)
	assert.NotZero(t, buf.Len())
}
