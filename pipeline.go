package vrm_normalizer

import (
	"fmt"
	"io"
	"os"
)

// VRM is a loaded, and possibly already-normalized, VRM document plus the
// still-unread binary tail of its source GLB container. Normalize runs the
// §2 pipeline over it; Save streams the normalized result to w.
type VRM struct {
	version uint32
	doc     Document
	src     io.Reader
	total   uint32
	sink    DiagnosticSink
	debug   bool

	normalized bool
	relocPlan  relocationPlan
	binChunks  [][]byte
	report     FileReport
}

// stderrSink is the default DiagnosticSink: warnings go to stderr, prefixed
// like every other CLI diagnostic (§7).
type stderrSink struct{}

func (stderrSink) Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "vrm: warning: "+format+"\n", args...)
}

// Load decodes a GLB container from r (its header and JSON chunk are read
// eagerly; the binary tail is left on r for Normalize to stream). r must
// remain valid and positioned until Normalize runs.
func Load(r io.Reader, opts ...VRMReadOption) (*VRM, error) {
	o := newVRMOptions(opts...)

	decoded, err := decodeGLB(r)
	if err != nil {
		return nil, fmt.Errorf("load vrm: %w", err)
	}

	return &VRM{
		version: decoded.Header.Version,
		doc:     decoded.JSON,
		src:     r,
		total:   decoded.RemainingBinaryLength,
		sink:    o.sink,
		debug:   o.Debug,
	}, nil
}

// trace returns the "relocate"/"skip" line emitter for the buffer
// relocation stage of Normalize: a no-op unless the caller passed UseDebug.
func (v *VRM) trace() traceFunc {
	if !v.debug {
		return noopTrace
	}
	return func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, "vrm: trace: "+format+"\n", args...)
	}
}

// Document exposes the (possibly already normalized) glTF JSON tree for
// inspection; callers must not retain a reference across Normalize.
func (v *VRM) Document() Document {
	return v.doc
}

// Normalize runs the full §2 pipeline in order: legacy-VRM upgrade, VRoid
// reduction, reference sweep, VRM-extension completion, then buffer
// relocation planning and the streaming binary relocation itself. It
// consumes v's source reader; calling it twice is an error.
func (v *VRM) Normalize() error {
	if v.normalized {
		return fmt.Errorf("vrm: already normalized")
	}

	v.report.Before = countResources(v.doc)
	v.report.BytesBefore = uint64(v.total)

	upgradeLegacyVRM(v.doc)
	reduceVRoid(v.doc)
	sweepAll(v.doc, v.sink)

	buffersResult := sweep(v.doc, "buffers", forEachBufferIndex, v.sink)
	completeVRMExtension(v.doc)

	trace := v.trace()
	plan := planBufferRelocation(v.doc, buffersResult.SurvivingOriginalIndexes, trace)
	chunks, err := relocateBinary(v.src, plan, v.total, trace)
	if err != nil {
		return fmt.Errorf("vrm: relocate buffers: %w", err)
	}

	v.relocPlan = plan
	v.binChunks = chunks
	v.report.After = countResources(v.doc)
	v.report.BytesAfter = plan.TotalChunkBytes()
	v.normalized = true
	return nil
}

// Report returns the §6.4 summary for this file. Normalize must have
// already run.
func (v *VRM) Report() FileReport {
	return v.report
}

// Save writes the normalized VRM as a GLB container to w. Normalize must
// have already run.
func (v *VRM) Save(w io.Writer) error {
	if !v.normalized {
		return fmt.Errorf("vrm: save called before normalize")
	}
	if err := encodeGLB(w, v.version, v.doc, v.binChunks); err != nil {
		return fmt.Errorf("vrm: save: %w", err)
	}
	return nil
}

// NormalizeFile is a single-file convenience path for library callers: load
// src, normalize it, write the result to dst, and return its §6.4 report.
// The CLI driver does not use it; it calls LoadLocal/LoadRemote, Normalize
// and Save itself so that it can open the output file between Load and
// Normalize.
func NormalizeFile(path string, src io.Reader, dst io.Writer, opts ...VRMReadOption) (FileReport, error) {
	v, err := Load(src, opts...)
	if err != nil {
		return FileReport{}, err
	}
	if err := v.Normalize(); err != nil {
		return FileReport{}, err
	}
	if err := v.Save(dst); err != nil {
		return FileReport{}, err
	}
	report := v.Report()
	report.Path = path
	return report, nil
}
