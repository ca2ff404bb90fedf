package vrm_normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeDocumentRoundtrip(t *testing.T) {
	doc := Document{
		"asset": map[string]any{"version": "2.0"},
		"nodes": []any{map[string]any{"name": "root"}},
	}

	bs, err := EncodeDocument(doc)
	assert.NoError(t, err)

	out, err := DecodeDocument(bs)
	assert.NoError(t, err)
	assert.Equal(t, "2.0", out["asset"].(map[string]any)["version"])
}

func TestDecodeDocumentPreservesIntegerIndices(t *testing.T) {
	out, err := DecodeDocument([]byte(`{"materials":[{"index":9007199254740993}]}`))
	assert.NoError(t, err)

	materials := out["materials"].([]any)
	mat := materials[0].(map[string]any)
	assert.Equal(t, int64(9007199254740993), mat["index"])
}

func TestGetPathGetArrayGetObject(t *testing.T) {
	doc := Document{
		"extensions": map[string]any{
			"VRM": map[string]any{
				"meta": map[string]any{"title": "demo"},
			},
		},
		"materials": []any{map[string]any{"name": "m0"}},
	}

	assert.Equal(t, "demo", getObject(doc, "extensions", "VRM", "meta")["title"])
	assert.Nil(t, getObject(doc, "extensions", "VRM", "missing"))
	assert.Len(t, getArray(doc, "materials"), 1)
	assert.Nil(t, getArray(doc, "missing"))
}

func TestSetPathCreatesIntermediates(t *testing.T) {
	doc := Document{}
	setPath(doc, "demo", "extensions", "VRM", "meta", "title")
	assert.Equal(t, "demo", getObject(doc, "extensions", "VRM", "meta")["title"])
}

func TestAsUint64Index(t *testing.T) {
	cases := []struct {
		in    any
		out   uint64
		valid bool
	}{
		{int64(3), 3, true},
		{int64(-1), 0, false},
		{float64(3), 3, true},
		{float64(3.5), 0, false},
		{float64(-1), 0, false},
		{"3", 0, false},
		{nil, 0, false},
	}
	for _, c := range cases {
		got, ok := asUint64Index(c.in)
		assert.Equal(t, c.valid, ok)
		if ok {
			assert.Equal(t, c.out, got)
		}
	}
}
