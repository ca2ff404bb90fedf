package vrm_normalizer

import "sort"

// enumerator is the shape shared by every forEach*Index function in refs.go.
type enumerator func(doc Document, visit indexVisitor)

// sweepResult is what a single resource-kind sweep produces: the compacted
// document (mutated in place) plus the sorted original indexes that
// survived, needed downstream by the buffers sweep to map surviving-buffer
// new indexes back to original BIN chunk ordinals (§4.2 step 5).
type sweepResult struct {
	SurvivingOriginalIndexes []uint64
}

// sweep runs the generic resource-sweep algorithm (§4.2) for one index-space
// resource kind: collect used indexes, drop unreferenced array entries in
// descending order, build a stable ascending remap, then rewrite every
// reference site in place.
func sweep(doc Document, arrayKey string, enum enumerator, sink DiagnosticSink) sweepResult {
	used := map[uint64]struct{}{}
	enum(doc, func(v any) any {
		idx, ok := asUint64Index(v)
		if !ok {
			sink.Warnf("too large %s index: %s", arrayKey, formatIndex(v))
			return v
		}
		used[idx] = struct{}{}
		return v
	})

	arr, _ := doc[arrayKey].([]any)
	n := uint64(len(arr))

	for i := n; i > 0; i-- {
		idx := i - 1
		if _, ok := used[idx]; !ok {
			arr = append(arr[:idx], arr[idx+1:]...)
		}
	}
	if arr != nil {
		doc[arrayKey] = arr
	}

	surviving := make([]uint64, 0, len(used))
	for idx := range used {
		if idx < n {
			surviving = append(surviving, idx)
		}
	}
	sort.Slice(surviving, func(i, j int) bool { return surviving[i] < surviving[j] })

	remap := make(map[uint64]uint64, len(surviving))
	for newIdx, origIdx := range surviving {
		remap[origIdx] = uint64(newIdx)
	}

	enum(doc, func(v any) any {
		idx, ok := asUint64Index(v)
		if !ok {
			return v
		}
		newIdx, ok := remap[idx]
		if !ok {
			// Points past the original array length: undefined input,
			// left untouched per spec.md §8 ("minus any that pointed
			// past the original length, which are undefined inputs").
			return v
		}
		return int64(newIdx)
	})

	return sweepResult{SurvivingOriginalIndexes: surviving}
}

// sweepOrder is the fixed order §4.2 mandates: upstream before downstream,
// so that sweeping a downstream kind never resurrects a reference the
// upstream sweep already dropped.
var sweepOrder = []struct {
	ArrayKey  string
	Enumerate enumerator
}{
	{"materials", forEachMaterialIndex},
	{"textures", forEachTextureIndex},
	{"images", forEachImageIndex},
	{"accessors", forEachAccessorIndex},
	{"samplers", forEachSamplerIndex},
	{"bufferViews", forEachBufferViewIndex},
}

// sweepAll runs every resource-kind sweep except buffers, which is swept
// separately as the first step of buffer relocation planning (§4.6 step 1
// builds on the buffers sweep's surviving-index output).
func sweepAll(doc Document, sink DiagnosticSink) {
	for _, s := range sweepOrder {
		sweep(doc, s.ArrayKey, s.Enumerate, sink)
	}
}
