package vrm_normalizer

import (
	"strconv"

	"github.com/vrm-tools/vrm-normalizer-go/util/stringx"
)

// upgradeLegacyVRM applies the pre-0.36 VRM metadata upgrade (§4.3), ported
// from UniGLTF's ImporterContext.UpgradeSpecVersion (see the Rust original's
// Vrm::upgrade_chunk0, which links the same C# source).
//
// It is a no-op unless extensions.VRM.exporterVersion is absent AND
// extensions.VRM.version parses as "major.minor" with major == 0 and
// minor <= 35. Applying it twice is idempotent: the second pass finds
// "extra" already removed and targetNames already hoisted, so it changes
// nothing (spec.md §8).
func upgradeLegacyVRM(doc Document) {
	vrm := getObject(doc, "extensions", "VRM")
	if vrm == nil {
		return
	}
	if _, ok := vrm["exporterVersion"]; ok {
		return
	}

	versionStr, ok := vrm["version"].(string)
	if !ok {
		return
	}
	major, minor, ok := parseMajorMinor(versionStr)
	if !ok {
		return
	}
	if major > 0 || minor > 35 {
		return
	}

	for _, imgAny := range getArray(doc, "images") {
		img, ok := imgAny.(map[string]any)
		if !ok {
			continue
		}
		upgradeLegacyImage(img)
	}

	for _, meshAny := range getArray(doc, "meshes") {
		mesh, ok := meshAny.(map[string]any)
		if !ok {
			continue
		}
		for _, primAny := range getArray(mesh, "primitives") {
			prim, ok := primAny.(map[string]any)
			if !ok {
				continue
			}
			upgradeLegacyPrimitive(prim)
		}
	}
}

// parseMajorMinor parses a "major.minor[.patch...]" string into its first
// two dot-separated integer components.
func parseMajorMinor(s string) (major, minor int64, ok bool) {
	before, after, found := stringx.CutFromLeft(s, ".")
	if !found {
		return 0, 0, false
	}
	rest, _, _ := stringx.CutFromLeft(after, ".")

	major, err := strconv.ParseInt(before, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	minor, err = strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}

// upgradeLegacyImage hoists a non-empty extra.name into name when name is
// missing/empty, then removes the extra key unconditionally.
func upgradeLegacyImage(img map[string]any) {
	name, _ := img["name"].(string)
	extra, _ := img["extra"].(map[string]any)
	if name == "" && extra != nil {
		if extraName, ok := extra["name"].(string); ok && extraName != "" {
			img["name"] = extraName
		}
	}
	delete(img, "extra")
}

// upgradeLegacyPrimitive hoists morph-target names into
// primitive.extras.targetNames, then strips the now-redundant -1-valued
// joint/UV/weight attributes and the extra key from every target. If no
// targets remain, the targets key itself is removed.
func upgradeLegacyPrimitive(prim map[string]any) {
	targets := getArray(prim, "targets")

	var targetNames []any
	for _, tAny := range targets {
		target, ok := tAny.(map[string]any)
		if !ok {
			continue
		}
		extra, ok := target["extra"].(map[string]any)
		if !ok {
			continue
		}
		if name, ok := extra["name"].(string); ok {
			targetNames = append(targetNames, name)
		}
	}
	if len(targetNames) > 0 {
		setPath(prim, map[string]any{"targetNames": targetNames}, "extras")
	}

	for _, tAny := range targets {
		target, ok := tAny.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range [...]string{"JOINTS_0", "TEXCOORD_0", "WEIGHTS_0"} {
			if n, ok := target[key].(int64); ok && n == -1 {
				delete(target, key)
			}
		}
		delete(target, "extra")
	}

	if len(targets) == 0 {
		if _, hasTargets := prim["targets"]; hasTargets {
			delete(prim, "targets")
		}
	}
}
