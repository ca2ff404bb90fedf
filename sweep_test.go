package vrm_normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingSink captures warnings instead of writing to stderr, for
// assertions in tests that exercise the out-of-range index path.
type recordingSink struct {
	messages []string
}

func (s *recordingSink) Warnf(format string, args ...any) {
	s.messages = append(s.messages, format)
}

func TestSweepDropsUnreferencedAndRemaps(t *testing.T) {
	doc := Document{
		"materials": []any{
			map[string]any{"name": "used"},
			map[string]any{"name": "unused"},
			map[string]any{"name": "used2"},
		},
		"meshes": []any{
			map[string]any{"primitives": []any{
				map[string]any{"material": int64(0)},
				map[string]any{"material": int64(2)},
			}},
		},
	}

	sink := &recordingSink{}
	result := sweep(doc, "materials", forEachMaterialIndex, sink)

	mats := doc["materials"].([]any)
	assert.Len(t, mats, 2)
	assert.Equal(t, "used", mats[0].(map[string]any)["name"])
	assert.Equal(t, "used2", mats[1].(map[string]any)["name"])

	prims := getArray(doc, "meshes")[0].(map[string]any)["primitives"].([]any)
	assert.Equal(t, int64(0), prims[0].(map[string]any)["material"])
	assert.Equal(t, int64(1), prims[1].(map[string]any)["material"])

	assert.Equal(t, []uint64{0, 2}, result.SurvivingOriginalIndexes)
	assert.Empty(t, sink.messages)
}

func TestSweepLeavesOutOfRangeReferenceUntouched(t *testing.T) {
	doc := Document{
		"materials": []any{
			map[string]any{"name": "only"},
		},
		"meshes": []any{
			map[string]any{"primitives": []any{
				map[string]any{"material": int64(0)},
				map[string]any{"material": int64(7)},
			}},
		},
	}

	sweep(doc, "materials", forEachMaterialIndex, &recordingSink{})

	prims := getArray(doc, "meshes")[0].(map[string]any)["primitives"].([]any)
	assert.Equal(t, int64(0), prims[0].(map[string]any)["material"])
	assert.Equal(t, int64(7), prims[1].(map[string]any)["material"])
}

func TestSweepWarnsOnNegativeIndex(t *testing.T) {
	doc := Document{
		"materials": []any{map[string]any{"name": "m0"}},
		"meshes": []any{
			map[string]any{"primitives": []any{
				map[string]any{"material": int64(-1)},
			}},
		},
	}

	sink := &recordingSink{}
	sweep(doc, "materials", forEachMaterialIndex, sink)
	assert.NotEmpty(t, sink.messages)
}

func TestSweepAllRunsUpstreamBeforeDownstream(t *testing.T) {
	doc := Document{
		"materials": []any{
			map[string]any{
				"pbrMetallicRoughness": map[string]any{
					"baseColorTexture": map[string]any{"index": int64(0)},
				},
			},
		},
		"textures": []any{
			map[string]any{"source": int64(0), "sampler": int64(0)},
		},
		"images":   []any{map[string]any{"bufferView": int64(0)}},
		"samplers": []any{map[string]any{}},
		"bufferViews": []any{
			map[string]any{"buffer": int64(0)},
		},
		"meshes": []any{
			map[string]any{"primitives": []any{
				map[string]any{"material": int64(0)},
			}},
		},
	}

	sweepAll(doc, &recordingSink{})

	assert.Len(t, doc["materials"].([]any), 1)
	assert.Len(t, doc["textures"].([]any), 1)
	assert.Len(t, doc["images"].([]any), 1)
	assert.Len(t, doc["samplers"].([]any), 1)
	assert.Len(t, doc["bufferViews"].([]any), 1)
}

func TestSweepAllDropsFullyUnreferencedChain(t *testing.T) {
	doc := Document{
		"materials": []any{},
		"textures": []any{
			map[string]any{"source": int64(0), "sampler": int64(0)},
		},
		"images":      []any{map[string]any{}},
		"samplers":    []any{map[string]any{}},
		"bufferViews": []any{map[string]any{}},
	}

	sweepAll(doc, &recordingSink{})

	assert.Empty(t, doc["textures"].([]any))
	assert.Empty(t, doc["images"].([]any))
	assert.Empty(t, doc["samplers"].([]any))
}
