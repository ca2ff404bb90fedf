package vrm_normalizer

// vrmMetaDefaults are the §4.5 default values, keyed bit-exact — including
// the "Ussage" misspelling VRM consumers require (spec.md §9: "do not
// correct them").
var vrmMetaDefaults = []struct{ Key, Default string }{
	{"title", ""},
	{"version", ""},
	{"author", ""},
	{"contactInformation", ""},
	{"reference", ""},
	{"allowedUserName", "OnlyAuthor"},
	{"violentUssageName", "Disallow"},
	{"sexualUssageName", "Disallow"},
	{"commercialUssageName", "Disallow"},
	{"otherPermissionUrl", ""},
	{"licenseName", "Redistribution_Prohibited"},
	{"otherLicenseUrl", ""},
}

// completeVRMExtension runs after the sweeps (§4.5): it ensures
// extensionsUsed contains "VRM", ensures extensions.VRM.meta is an object,
// and fills any absent/non-string default-keyed field. It never overwrites
// an existing non-empty string (idempotent, per spec.md §8).
func completeVRMExtension(doc Document) {
	used, _ := doc["extensionsUsed"].([]any)
	hasVRM := false
	for _, v := range used {
		if s, ok := v.(string); ok && s == "VRM" {
			hasVRM = true
			break
		}
	}
	if !hasVRM {
		used = append(used, "VRM")
	}
	doc["extensionsUsed"] = used

	meta := getObject(doc, "extensions", "VRM", "meta")
	if meta == nil {
		meta = map[string]any{}
		setPath(doc, meta, "extensions", "VRM", "meta")
	}

	for _, kv := range vrmMetaDefaults {
		if _, ok := meta[kv.Key].(string); ok {
			continue
		}
		meta[kv.Key] = kv.Default
	}
}
