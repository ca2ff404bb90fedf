package vrm_normalizer

import "gonum.org/v1/gonum/stat"

// ResourceCounts is the per-resource-kind array length §4.2 sweeps over.
type ResourceCounts struct {
	Materials   int
	Textures    int
	Images      int
	Accessors   int
	Samplers    int
	BufferViews int
	Buffers     int
}

func countResources(doc Document) ResourceCounts {
	return ResourceCounts{
		Materials:   len(getArray(doc, "materials")),
		Textures:    len(getArray(doc, "textures")),
		Images:      len(getArray(doc, "images")),
		Accessors:   len(getArray(doc, "accessors")),
		Samplers:    len(getArray(doc, "samplers")),
		BufferViews: len(getArray(doc, "bufferViews")),
		Buffers:     len(getArray(doc, "buffers")),
	}
}

// FileReport is §6.4's per-file summary: resource counts before/after the
// sweep, and the binary chunk byte totals before/after relocation.
type FileReport struct {
	Path string

	Before ResourceCounts
	After  ResourceCounts

	BytesBefore uint64
	BytesAfter  uint64
}

// CompactionRatio is the fraction of binary bytes removed, in [0, 1]. A
// file with no binary chunks at all (BytesBefore == 0) reports 0, not NaN.
func (r FileReport) CompactionRatio() float64 {
	if r.BytesBefore == 0 {
		return 0
	}
	return 1 - float64(r.BytesAfter)/float64(r.BytesBefore)
}

// BatchSummary is the final aggregate row §6.4 adds when multiple files are
// processed: mean and standard deviation of the compaction ratio across the
// batch.
type BatchSummary struct {
	FileCount               int
	MeanCompactionRatio     float64
	StddevCompactionRatio   float64
}

// Summarize computes a BatchSummary over reports. It is the identity
// (zero-spread) summary for a single-file batch.
func Summarize(reports []FileReport) BatchSummary {
	ratios := make([]float64, len(reports))
	for i, r := range reports {
		ratios[i] = r.CompactionRatio()
	}

	s := BatchSummary{FileCount: len(reports)}
	if len(ratios) == 0 {
		return s
	}

	s.MeanCompactionRatio = stat.Mean(ratios, nil)
	if len(ratios) > 1 {
		s.StddevCompactionRatio = stat.StdDev(ratios, nil)
	}
	return s
}
