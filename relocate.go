package vrm_normalizer

import (
	"sort"

	"github.com/vrm-tools/vrm-normalizer-go/util/slicex"
)

// region is a half-open byte interval [Offset, Offset+Length) within one
// buffer.
type region struct {
	Offset uint64
	Length uint64
}

// relocationPlan is §4.6's output: which original BIN chunk ordinals
// survive, in post-sweep buffer-index order, and which byte regions of each
// survive after gap elimination.
type relocationPlan struct {
	// RemainingChunkIndexes[i] is the original chunk ordinal that now backs
	// post-sweep buffer index i.
	RemainingChunkIndexes []uint64
	// SurvivingRegions[i] are buffer i's surviving regions, in ascending
	// offset order.
	SurvivingRegions [][]region
}

// TotalChunkBytes is the Derived quantity from §4.6: the encoder uses it to
// compute the GLB total length before any binary bytes are copied.
func (p relocationPlan) TotalChunkBytes() uint64 {
	var total uint64
	for _, regions := range p.SurvivingRegions {
		total += glbChunkHeaderSize
		for _, r := range regions {
			total += r.Length
		}
	}
	return total
}

// planBufferRelocation runs §4.6 over doc, which must already have had the
// buffers sweep applied (its buffer-index references are post-sweep). It
// mutates every bufferView.byteOffset and buffers[i].byteLength in place.
// trace receives a "relocate: i/n" progress line per buffer when --debug is
// active (see SPEC_FULL.md §9); pass a no-op func otherwise.
func planBufferRelocation(doc Document, remainingChunkIndexes []uint64, trace traceFunc) relocationPlan {
	bufferViews := getArray(doc, "bufferViews")
	numBuffers := len(remainingChunkIndexes)

	regionsByBuffer := make([][]region, numBuffers)
	for _, bvAny := range bufferViews {
		bv, ok := bvAny.(map[string]any)
		if !ok {
			continue
		}
		bufIdx, ok := asUint64Index(bv["buffer"])
		if !ok || int(bufIdx) >= numBuffers {
			continue
		}
		offset := uint64(0)
		if v, ok := bv["byteOffset"]; ok {
			if o, ok := asUint64Index(v); ok {
				offset = o
			}
		}
		length, _ := asUint64Index(bv["byteLength"])
		regionsByBuffer[bufIdx] = append(regionsByBuffer[bufIdx], region{offset, length})
	}

	plan := relocationPlan{
		RemainingChunkIndexes: remainingChunkIndexes,
		SurvivingRegions:      make([][]region, numBuffers),
	}

	for bufIdx := 0; bufIdx < numBuffers; bufIdx++ {
		trace("relocate: %d/%d", bufIdx+1, numBuffers)

		regions := regionsByBuffer[bufIdx]
		sort.Slice(regions, func(i, j int) bool {
			if regions[i].Offset != regions[j].Offset {
				return regions[i].Offset < regions[j].Offset
			}
			return regions[i].Length < regions[j].Length
		})

		deleted := computeDeletedRegions(regions)
		rewriteBufferViewOffsets(bufferViews, uint64(bufIdx), deleted)

		bufferLength := uint64(0)
		if len(regions) > 0 {
			last := regions[len(regions)-1]
			bufferLength = alignUp(last.Offset+last.Length, 4)
		}
		surviving := computeSurvivingRegions(deleted, bufferLength)
		plan.SurvivingRegions[bufIdx] = surviving

		var survivingLen uint64
		for _, r := range surviving {
			survivingLen += r.Length
		}
		setBufferByteLength(doc, bufIdx, survivingLen)
	}

	return plan
}

// computeDeletedRegions walks regions (sorted by offset asc, then length
// asc) and records each 8-byte-aligned gap between them, per §4.6 step 3.
func computeDeletedRegions(regions []region) []region {
	var deleted []region
	nextOffset := uint64(0)
	for _, r := range regions {
		a := alignUp(nextOffset, 8)
		b := alignDown(r.Offset, 8)
		if a < b {
			deleted = append(deleted, region{Offset: a, Length: b - a})
		}
		if end := r.Offset + r.Length; nextOffset < end {
			nextOffset = end
		}
	}
	return deleted
}

// rewriteBufferViewOffsets subtracts, from each bufferView.byteOffset that
// targets bufIdx, the total length of every deleted region that precedes it
// entirely (§4.6 step 4). The deleted-region end offsets are sorted
// ascending, so the shift for a given byteOffset is a prefix sum located by
// binary search rather than a linear scan per bufferView.
func rewriteBufferViewOffsets(bufferViews []any, bufIdx uint64, deleted []region) {
	if len(deleted) == 0 {
		return
	}
	ends := make([]uint64, len(deleted))
	prefix := make([]uint64, len(deleted)+1)
	for i, d := range deleted {
		ends[i] = d.Offset + d.Length
		prefix[i+1] = prefix[i] + d.Length
	}

	for _, bvAny := range bufferViews {
		bv, ok := bvAny.(map[string]any)
		if !ok {
			continue
		}
		bi, ok := asUint64Index(bv["buffer"])
		if !ok || bi != bufIdx {
			continue
		}
		offset := uint64(0)
		if v, ok := bv["byteOffset"]; ok {
			if o, ok := asUint64Index(v); ok {
				offset = o
			}
		}
		shift := prefix[slicex.UpperBound(ends, offset)]
		bv["byteOffset"] = int64(offset - shift)
	}
}

// computeSurvivingRegions returns the complement of deleted within
// [0, bufferLength), per §4.6 step 5.
func computeSurvivingRegions(deleted []region, bufferLength uint64) []region {
	var surviving []region
	cursor := uint64(0)
	for _, d := range deleted {
		if cursor < d.Offset {
			surviving = append(surviving, region{cursor, d.Offset - cursor})
		}
		cursor = d.Offset + d.Length
	}
	if bufferLength > cursor {
		surviving = append(surviving, region{cursor, bufferLength - cursor})
	}
	return surviving
}

func setBufferByteLength(doc Document, bufIdx int, length uint64) {
	buffers := getArray(doc, "buffers")
	if bufIdx >= len(buffers) {
		return
	}
	if b, ok := buffers[bufIdx].(map[string]any); ok {
		b["byteLength"] = int64(length)
	}
}
