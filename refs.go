package vrm_normalizer

// An indexVisitor is called once per present, numeric reference site. The
// visitor can replace the site's value (used by the sweep's remap pass) by
// returning the new value; returning the same value is a no-op read.
type indexVisitor func(v any) any

// visitSite reads container[key], and if it is present and numeric, replaces
// it with visit(v). Non-numeric and missing values are silently skipped —
// per §4.1, an enumerator visits only present, numeric sites.
func visitSite(container map[string]any, key string, visit indexVisitor) {
	if container == nil {
		return
	}
	v, ok := container[key]
	if !ok {
		return
	}
	switch v.(type) {
	case int64, float64:
		container[key] = visit(v)
	default:
		// null, string, object, array, bool: not a reference site.
	}
}

// forEachMaterialIndex visits /meshes[*]/primitives[*]/material.
func forEachMaterialIndex(doc Document, visit indexVisitor) {
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
			visitSite(prim, "material", visit)
		}
	}
}

// forEachAccessorIndex visits /skins[*]/inverseBindMatrices,
// /meshes[*]/primitives[*]/indices, every value in
// /meshes[*]/primitives[*]/attributes, and every value in
// /meshes[*]/primitives[*]/targets[*].
func forEachAccessorIndex(doc Document, visit indexVisitor) {
	for _, skinAny := range getArray(doc, "skins") {
		skin, ok := skinAny.(map[string]any)
		if !ok {
			continue
		}
		visitSite(skin, "inverseBindMatrices", visit)
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
			visitSite(prim, "indices", visit)

			if attrs, ok := prim["attributes"].(map[string]any); ok {
				for k, v := range attrs {
					switch v.(type) {
					case int64, float64:
						attrs[k] = visit(v)
					}
				}
			}

			for _, targetAny := range getArray(prim, "targets") {
				target, ok := targetAny.(map[string]any)
				if !ok {
					continue
				}
				for k, v := range target {
					switch v.(type) {
					case int64, float64:
						target[k] = visit(v)
					}
				}
			}
		}
	}
}

// forEachSamplerIndex visits /textures[*]/sampler.
func forEachSamplerIndex(doc Document, visit indexVisitor) {
	for _, texAny := range getArray(doc, "textures") {
		tex, ok := texAny.(map[string]any)
		if !ok {
			continue
		}
		visitSite(tex, "sampler", visit)
	}
}

// forEachImageIndex visits /textures[*]/source.
func forEachImageIndex(doc Document, visit indexVisitor) {
	for _, texAny := range getArray(doc, "textures") {
		tex, ok := texAny.(map[string]any)
		if !ok {
			continue
		}
		visitSite(tex, "source", visit)
	}
}

// mtoonTextureProperties are the MToon textureProperties keys the texture
// enumerator visits. _BumpMap and _SphereAdd are intentionally absent: the
// Rust original comments them out, and this spec preserves that quirk
// verbatim (see SPEC_FULL.md §10 / spec.md §9) — normal-map and matcap
// textures can be falsely reported as unreferenced and swept away.
var mtoonTextureProperties = []string{
	"_MainTex",
	"_ShadeTexture",
	// "_BumpMap",
	"_ReceiveShadowTexture",
	"_ShadingGradeTexture",
	// "_SphereAdd",
	"_EmissionMap",
	"_OutlineWidthTexture",
}

// forEachTextureIndex visits every texture reference site: PBR and extra
// material textures, the VRM meta thumbnail, and MToon textureProperties.
func forEachTextureIndex(doc Document, visit indexVisitor) {
	for _, matAny := range getArray(doc, "materials") {
		mat, ok := matAny.(map[string]any)
		if !ok {
			continue
		}
		if pbr, ok := mat["pbrMetallicRoughness"].(map[string]any); ok {
			for _, key := range [...]string{"baseColorTexture", "metallicRoughnessTexture"} {
				if tex, ok := pbr[key].(map[string]any); ok {
					visitSite(tex, "index", visit)
				}
			}
		}
		for _, key := range [...]string{"normalTexture", "occlusionTexture", "emissiveTexture"} {
			if tex, ok := mat[key].(map[string]any); ok {
				visitSite(tex, "index", visit)
			}
		}
	}

	if meta := getObject(doc, "extensions", "VRM", "meta"); meta != nil {
		visitSite(meta, "texture", visit)
	}

	for _, mpAny := range getArray(doc, "extensions", "VRM", "materialProperties") {
		mp, ok := mpAny.(map[string]any)
		if !ok {
			continue
		}
		texProps, ok := mp["textureProperties"].(map[string]any)
		if !ok {
			continue
		}
		for _, key := range mtoonTextureProperties {
			visitSite(texProps, key, visit)
		}
	}
}

// forEachBufferViewIndex visits /accessors[*]/bufferView,
// /accessors[*]/sparse/indices/bufferView, /accessors[*]/values/indices/bufferView,
// and /images[*]/bufferView.
func forEachBufferViewIndex(doc Document, visit indexVisitor) {
	for _, accAny := range getArray(doc, "accessors") {
		acc, ok := accAny.(map[string]any)
		if !ok {
			continue
		}
		visitSite(acc, "bufferView", visit)

		if sparse, ok := acc["sparse"].(map[string]any); ok {
			if indices, ok := sparse["indices"].(map[string]any); ok {
				visitSite(indices, "bufferView", visit)
			}
		}
		if values, ok := acc["values"].(map[string]any); ok {
			if indices, ok := values["indices"].(map[string]any); ok {
				visitSite(indices, "bufferView", visit)
			}
		}
	}

	for _, imgAny := range getArray(doc, "images") {
		img, ok := imgAny.(map[string]any)
		if !ok {
			continue
		}
		visitSite(img, "bufferView", visit)
	}
}

// forEachBufferIndex visits /bufferViews[*]/buffer.
func forEachBufferIndex(doc Document, visit indexVisitor) {
	for _, bvAny := range getArray(doc, "bufferViews") {
		bv, ok := bvAny.(map[string]any)
		if !ok {
			continue
		}
		visitSite(bv, "buffer", visit)
	}
}
