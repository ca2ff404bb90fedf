package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnmarshalDecodesIntegersAsInt64(t *testing.T) {
	var v any
	assert.NoError(t, Unmarshal([]byte(`{"index":3,"ratio":1.5}`), &v))

	m := v.(map[string]any)
	assert.Equal(t, int64(3), m["index"])
	assert.Equal(t, float64(1.5), m["ratio"])
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	doc := map[string]any{"a": int64(1), "b": "s", "c": []any{int64(2), int64(3)}}
	bs, err := Marshal(doc)
	assert.NoError(t, err)

	var out any
	assert.NoError(t, Unmarshal(bs, &out))
	assert.Equal(t, doc, out)
}
