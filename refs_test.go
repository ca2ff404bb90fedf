package vrm_normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectVisited(doc Document, enum enumerator) []any {
	var got []any
	enum(doc, func(v any) any {
		got = append(got, v)
		return v
	})
	return got
}

func TestForEachMaterialIndex(t *testing.T) {
	doc := Document{
		"meshes": []any{
			map[string]any{"primitives": []any{
				map[string]any{"material": int64(1)},
				map[string]any{},
			}},
		},
	}
	assert.Equal(t, []any{int64(1)}, collectVisited(doc, forEachMaterialIndex))
}

func TestForEachAccessorIndex(t *testing.T) {
	doc := Document{
		"skins": []any{map[string]any{"inverseBindMatrices": int64(0)}},
		"meshes": []any{
			map[string]any{"primitives": []any{
				map[string]any{
					"indices":    int64(1),
					"attributes": map[string]any{"POSITION": int64(2)},
					"targets": []any{
						map[string]any{"POSITION": int64(3)},
					},
				},
			}},
		},
	}
	got := collectVisited(doc, forEachAccessorIndex)
	assert.ElementsMatch(t, []any{int64(0), int64(1), int64(2), int64(3)}, got)
}

func TestForEachTextureIndexVisitsMToonQuirk(t *testing.T) {
	doc := Document{
		"extensions": map[string]any{
			"VRM": map[string]any{
				"materialProperties": []any{
					map[string]any{
						"textureProperties": map[string]any{
							"_MainTex":   int64(0),
							"_BumpMap":   int64(1),
							"_SphereAdd": int64(2),
						},
					},
				},
			},
		},
	}
	got := collectVisited(doc, forEachTextureIndex)
	// _BumpMap and _SphereAdd are intentionally never visited.
	assert.Equal(t, []any{int64(0)}, got)
}

func TestForEachTextureIndexMaterialAndMeta(t *testing.T) {
	doc := Document{
		"materials": []any{
			map[string]any{
				"pbrMetallicRoughness": map[string]any{
					"baseColorTexture":         map[string]any{"index": int64(0)},
					"metallicRoughnessTexture": map[string]any{"index": int64(1)},
				},
				"normalTexture":    map[string]any{"index": int64(2)},
				"occlusionTexture": map[string]any{"index": int64(3)},
				"emissiveTexture":  map[string]any{"index": int64(4)},
			},
		},
		"extensions": map[string]any{
			"VRM": map[string]any{
				"meta": map[string]any{"texture": int64(5)},
			},
		},
	}
	got := collectVisited(doc, forEachTextureIndex)
	assert.ElementsMatch(t, []any{int64(0), int64(1), int64(2), int64(3), int64(4), int64(5)}, got)
}

func TestForEachBufferViewIndexNestedSparse(t *testing.T) {
	doc := Document{
		"accessors": []any{
			map[string]any{
				"bufferView": int64(0),
				"sparse": map[string]any{
					"indices": map[string]any{"bufferView": int64(1)},
				},
				"values": map[string]any{
					"indices": map[string]any{"bufferView": int64(2)},
				},
			},
		},
		"images": []any{map[string]any{"bufferView": int64(3)}},
	}
	got := collectVisited(doc, forEachBufferViewIndex)
	assert.ElementsMatch(t, []any{int64(0), int64(1), int64(2), int64(3)}, got)
}

func TestVisitSiteSkipsNonNumeric(t *testing.T) {
	container := map[string]any{
		"a": "not-a-number",
		"b": nil,
		"c": int64(5),
	}
	var visited []any
	visitSite(container, "a", func(v any) any { visited = append(visited, v); return v })
	visitSite(container, "b", func(v any) any { visited = append(visited, v); return v })
	visitSite(container, "missing", func(v any) any { visited = append(visited, v); return v })
	visitSite(container, "c", func(v any) any { visited = append(visited, v); return v })
	assert.Equal(t, []any{int64(5)}, visited)
}
