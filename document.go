package vrm_normalizer

import (
	"strconv"

	"github.com/vrm-tools/vrm-normalizer-go/util/json"
)

// Document is the untyped glTF JSON tree the pipeline reads and rewrites.
//
// The core never introduces a fixed schema: the legacy-upgrade and VRoid
// reducer stages read and write sibling keys ("extra", "extras") that no
// enumerator names, so every stage that walks the tree does so by path, not
// by struct field.
type Document = map[string]any

// DecodeDocument parses a JSON chunk into a Document.
//
// Numbers decode to int64 when they fit, falling back to float64, via the
// adapted json-iterator decoder in util/json — the sweep's remap tables are
// built from these values and need exact integer comparisons, not float64
// round-tripping.
func DecodeDocument(b []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// EncodeDocument serializes a Document to its canonical minified form:
// no whitespace, UTF-8, RFC 8259. Key ordering follows Go map iteration
// rules (unordered); a roundtrip on an already-clean file is therefore
// byte-identical modulo key order, which is the fallback the spec allows.
func EncodeDocument(doc Document) ([]byte, error) {
	return json.Marshal(doc)
}

// getPath walks dot-free path segments (already split) through a Document,
// stopping at the first missing or non-container segment. It never creates
// intermediate containers — use setPath for that.
func getPath(root any, segs ...string) (any, bool) {
	cur := root
	for _, s := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[s]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// getArray fetches root[seg0][seg1]... as a []any, or nil if any segment is
// absent or not an array. Absence of a parent array is never an error: per
// §4.1, "non-existence of parent arrays ... is not an error."
func getArray(root any, segs ...string) []any {
	v, ok := getPath(root, segs...)
	if !ok {
		return nil
	}
	arr, _ := v.([]any)
	return arr
}

// getObject fetches root[seg0][seg1]... as a map[string]any, or nil.
func getObject(root any, segs ...string) map[string]any {
	v, ok := getPath(root, segs...)
	if !ok {
		return nil
	}
	obj, _ := v.(map[string]any)
	return obj
}

// setPath sets root[segs...] = value, creating intermediate objects as
// needed. It is used only by the legacy-upgrade and VRM-meta-completion
// stages, which are the only stages that author new structure instead of
// purely rewriting indices.
func setPath(root map[string]any, value any, segs ...string) {
	cur := root
	for i, s := range segs {
		if i == len(segs)-1 {
			cur[s] = value
			return
		}
		next, ok := cur[s].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[s] = next
		}
		cur = next
	}
}

// asUint64Index reports whether v (a decoded JSON number) is representable
// as a non-negative 64-bit index, and returns it. Floats that carry a
// fractional part, or negative numbers, are not valid indices.
func asUint64Index(v any) (uint64, bool) {
	switch n := v.(type) {
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case float64:
		if n < 0 || n != float64(int64(n)) {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}

// DiagnosticSink receives non-fatal warnings produced while sweeping the
// document (an index too large to fit a uint64). Defaults to stderr; tests
// inject a sink that records messages instead.
type DiagnosticSink interface {
	Warnf(format string, args ...any)
}

// formatIndex renders a decoded JSON number for a diagnostic message.
func formatIndex(v any) string {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	default:
		return "<non-numeric>"
	}
}
