package vrm_normalizer

import (
	"fmt"

	"github.com/vrm-tools/vrm-normalizer-go/util/anyx"
)

// reduceVRoid shrinks VRoid-Studio-specific redundancies before the
// reference sweep runs (§4.4). The rest of the core treats this as an
// opaque JSON→JSON transform: any index it retargets is still visible to
// the downstream sweep's enumerators, so dead entries it creates are
// collected and removed exactly like any other unreferenced resource.
//
// An implementation may leave this as a no-op and still produce a correct,
// if larger, output (spec.md §4.4) — the two passes below are a concrete,
// but not exhaustive, instance of "known-redundant structures".
func reduceVRoid(doc Document) {
	dedupeVRoidSamplers(doc)
	pruneEmptySecondaryAnimationGroups(doc)
}

// dedupeVRoidSamplers retargets every texture.sampler reference to the
// first sampler with equivalent filter/wrap settings. VRoid Studio emits
// one sampler per texture even when every texture shares the same wrap and
// filter mode, so most scenes end up with many structurally identical
// samplers; the now-unreferenced duplicates are swept away by the ordinary
// samplers sweep that follows (§4.2).
func dedupeVRoidSamplers(doc Document) {
	samplers := getArray(doc, "samplers")
	if len(samplers) == 0 {
		return
	}

	canonical := map[string]int64{}
	remap := map[int64]int64{}
	for i, sAny := range samplers {
		s, _ := sAny.(map[string]any)
		key := samplerDedupeKey(s)
		if canon, ok := canonical[key]; ok {
			remap[int64(i)] = canon
			continue
		}
		canonical[key] = int64(i)
	}
	if len(remap) == 0 {
		return
	}

	forEachSamplerIndex(doc, func(v any) any {
		idx, ok := asUint64Index(v)
		if !ok {
			return v
		}
		if canon, ok := remap[int64(idx)]; ok {
			return canon
		}
		return v
	})
}

// samplerDedupeKey builds a stable string key from the four glTF sampler
// fields that affect rendering (magFilter, minFilter, wrapS, wrapT); name
// and extras are cosmetic and intentionally excluded.
func samplerDedupeKey(s map[string]any) string {
	field := func(k string) int64 {
		v, ok := s[k]
		if !ok {
			return -1
		}
		return anyx.Number[int64](v)
	}
	return fmt.Sprintf("%d:%d:%d:%d", field("magFilter"), field("minFilter"), field("wrapS"), field("wrapT"))
}

// pruneEmptySecondaryAnimationGroups removes VRM spring-bone bone groups and
// collider groups that carry no bones/colliders — VRoid Studio emits an
// empty colliderGroups entry per node even when that node has no physics
// colliders attached. These groups are referenced only by node index (not
// one of the seven index-space kinds the sweep enumerates, per spec.md §3),
// so pruning them needs no downstream remap.
func pruneEmptySecondaryAnimationGroups(doc Document) {
	secondary := getObject(doc, "extensions", "VRM", "secondaryAnimation")
	if secondary == nil {
		return
	}

	if groups := getArray(secondary, "boneGroups"); groups != nil {
		secondary["boneGroups"] = filterNonEmptyGroups(groups, "bones")
	}
	if groups := getArray(secondary, "colliderGroups"); groups != nil {
		secondary["colliderGroups"] = filterNonEmptyGroups(groups, "colliders")
	}
}

func filterNonEmptyGroups(groups []any, memberKey string) []any {
	kept := groups[:0:0]
	for _, gAny := range groups {
		g, ok := gAny.(map[string]any)
		if !ok {
			kept = append(kept, gAny)
			continue
		}
		members, _ := g[memberKey].([]any)
		if len(members) == 0 {
			continue
		}
		kept = append(kept, gAny)
	}
	return kept
}
